package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonbodner/proteus"
	log "github.com/sirupsen/logrus"
)

// ErrDuplicate is returned by CheckHash when the same haiku was already recorded under another message.
var ErrDuplicate = errors.New("haiku was already recorded")

var HaikuHashDAO HaikuHashDaoImpl

type HaikuHashDaoImpl struct {
	Upsert    func(ctx context.Context, e proteus.ContextExecutor, mid int, md5Sum []byte) (int64, error) `proq:"q:upsert" prop:"mid,md5Sum"`
	FindByMD5 func(ctx context.Context, e proteus.ContextQuerier, md5Sum []byte) (int64, error)           `proq:"q:findByMD5" prop:"md5Sum"`
}

func init() {
	m := proteus.MapMapper{
		"upsert": `INSERT INTO haiku_hash (message_id, md5_sum) VALUES (:mid:, :md5Sum:)
				   ON CONFLICT (message_id)
				   DO UPDATE SET md5_sum = excluded.md5_sum`,
		"findByMD5": `SELECT message_id FROM haiku_hash WHERE md5_sum = :md5Sum: LIMIT 1`,
	}
	err := proteus.ShouldBuild(context.Background(), &HaikuHashDAO, proteus.Sqlite, m)
	if err != nil {
		panic(err)
	}
}

// CheckHash records hash for message mid, unless another message already holds the same hash, in
// which case an error wrapping ErrDuplicate is returned.
func CheckHash(ctx context.Context, e Store, mid int, hash [16]byte) error {
	midFound, err := HaikuHashDAO.FindByMD5(ctx, e, hash[:])
	if err != nil {
		return fmt.Errorf("error while looking up haiku hash: %w", err)
	}
	if midFound != 0 && midFound != int64(mid) {
		log.Println("haiku was found to be plagiarized; original message_id:", midFound)
		return fmt.Errorf("%w as message %d", ErrDuplicate, midFound)
	}
	_, err = HaikuHashDAO.Upsert(ctx, e, mid, hash[:])
	if err != nil {
		log.Println("could not store haiku hash in database,", err)
		return fmt.Errorf("error while storing haiku hash: %w", err)
	}
	return nil
}
