package store // import "github.com/bookhive/bookhive/internal/store"

import (
	"database/sql"
	"sync"

	"github.com/bookhive/bookhive/internal/log"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Store owns every persisted row. Reads go straight to the database; all
// writes run through WithTx so interleaved ingestion and search fallbacks
// cannot race their read-then-write dedup checks.
type Store struct {
	db     *sql.DB
	dbLock sync.Mutex // dbLock serializes the write path (single-writer sqlite)
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) DBStats() sql.DBStats {
	return s.db.Stats()
}

func (s *Store) Ping() error {
	return s.db.Ping()
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Tx is a unit of work handed to WithTx. Every write operation hangs off Tx,
// never off Store, so a multi-row write is atomic by construction.
type Tx struct {
	tx *sql.Tx
}

// WithTx runs fn inside a single transaction. Any error from fn rolls back
// every write fn made and propagates to the caller; on success all writes
// commit and become visible together.
func (s *Store) WithTx(fn func(*Tx) error) error {
	s.dbLock.Lock()
	defer s.dbLock.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}

	if err := fn(&Tx{tx: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error("Rollback failed", zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}
	return nil
}
