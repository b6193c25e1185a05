package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// sqlStore is shared by the concrete storages. ext is either the pool or a
// transaction.
type sqlStore struct {
	db  *sqlx.DB
	ext sqlx.ExtContext
	now func() time.Time
}

func newSQLStore(db *sqlx.DB) sqlStore {
	return sqlStore{db: db, ext: db, now: time.Now}
}

func (s sqlStore) inTx() bool {
	_, ok := s.ext.(*sqlx.Tx)
	return ok
}

// withTx begins a transaction unless one is already open, in which case fn
// joins it.
func (s sqlStore) withTx(ctx context.Context, fn func(sqlStore) error) (err error) {
	if s.inTx() {
		return fn(s)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(sqlStore{db: s.db, ext: tx, now: s.now}); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s sqlStore) ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
