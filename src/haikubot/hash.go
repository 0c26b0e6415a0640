package haikubot

import (
	"context"
	"crypto/md5"
	"database/sql"
	"strings"
	"unicode"

	"github.com/kalexmills/haiku-transformer/src/haikubot/db"
	log "github.com/sirupsen/logrus"
)

// DuplicateHash fingerprints a haiku so that copies differing only in case or punctuation collide.
// Letters of any script, spaces and line breaks are kept; every other rune is dropped.
func DuplicateHash(haiku string) [md5.Size]byte {
	return md5.Sum([]byte(hashStrip(haiku)))
}

func hashStrip(s string) string {
	stripped := stripRunes(s, func(r rune) bool {
		return unicode.IsLetter(r) || r == ' ' || r == '\n'
	})
	return strings.ToUpper(stripped)
}

func stripRunes(s string, keep func(rune) bool) string {
	var result strings.Builder
	for _, r := range s {
		if keep(r) {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// UpdateHashes ensures all haiku have their hashes loaded into the table. It's intended
// to be run on a separate goroutine on startup.
func UpdateHashes(sqlDB *sql.DB) {
	defer func() {
		if err := recover(); err != nil {
			log.Printf("recovered from panic in UpdateHashes: %v", err)
			return
		}
	}()
	log.Println("beginning UpdateHashes.")
	ctx := context.Background()
	rows, err := sqlDB.QueryContext(ctx, `SELECT message_id, content FROM haiku`)
	if err != nil {
		log.Println("encountered error while updating hashes,", err)
		return
	}
	defer rows.Close()

	type stored struct {
		messageID int
		content   string
	}
	var haiku []stored
	for rows.Next() {
		var h stored
		if err := rows.Scan(&h.messageID, &h.content); err != nil {
			log.Println("encountered error while scanning hashes,", err)
			return
		}
		haiku = append(haiku, h)
	}
	if err := rows.Err(); err != nil {
		log.Println("encountered error while reading haiku,", err)
		return
	}
	rows.Close()

	insertCount := 0
	for _, h := range haiku {
		hash := DuplicateHash(h.content)
		count, err := db.HaikuHashDAO.Upsert(ctx, sqlDB, h.messageID, hash[:])
		if err != nil {
			log.Println("could not upsert haiku hash,", err)
			continue
		}
		if count != 0 {
			insertCount++
		}
	}
	log.Printf("upserted %d haiku hashes", insertCount)
}
