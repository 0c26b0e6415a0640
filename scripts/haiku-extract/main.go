package main

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/kalexmills/haiku-transformer/src/haiku"
	"github.com/kalexmills/haiku-transformer/src/haikubot"
	"github.com/kalexmills/haiku-transformer/src/haikubot/db"
	log "github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
)

var (
	inputPath = flag.StringP("input", "i", "scripts/haiku-extract/data/gen-chat.csv.txt", "chat export in CSV form: author,timestamp,channel,content")
	dbPath    = flag.StringP("db", "d", "scripts/haiku-extract/haikuDB.sqlite3", "sqlite database to store found haiku in")
	guildID   = flag.Int("guild", 690680416373571585, "guild ID to file the haiku under")
	channelID = flag.Int("channel", 704842231227482182, "channel ID to file the haiku under")
)

func main() {
	flag.Parse()

	f, err := os.Open(*inputPath)
	FatalError(err)
	defer f.Close()

	DB, err := db.Open(*dbPath)
	FatalError(err)
	defer DB.Close()

	found, err := extract(context.Background(), DB, csv.NewReader(f), *guildID, *channelID)
	FatalError(err)
	log.Printf("stored %d haiku", found)
}

// extract transforms the content column of every record and stores the ones which read as haiku.
// Message IDs are assigned in input order.
func extract(ctx context.Context, e db.Store, r *csv.Reader, guildID, channelID int) (int, error) {
	r.FieldsPerRecord = -1
	messageID := 0
	found := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return found, err
		}
		messageID++
		if len(record) < 4 {
			continue
		}
		transformed, ok := haiku.Transform(strings.TrimSpace(record[3]))
		if !ok {
			continue
		}
		err = db.CheckHash(ctx, e, messageID, haikubot.DuplicateHash(transformed))
		if errors.Is(err, db.ErrDuplicate) {
			continue
		}
		if err != nil {
			return found, err
		}
		_, err = db.HaikuDAO.Upsert(ctx, e, db.Haiku{
			GuildID:       guildID,
			ChannelID:     channelID,
			MessageID:     messageID,
			AuthorMention: record[0],
			Content:       transformed,
		})
		if err != nil {
			return found, err
		}
		found++
	}
	return found, nil
}

func FatalError(err error) {
	if err != nil {
		log.Fatalf("encountered error: %v", err)
	}
}
