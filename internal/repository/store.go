package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Reader is the read surface of one snapshot.
type Reader interface {
	GetByID(ctx context.Context, dest any, id string) (bool, error)
	ScanByIndex(ctx context.Context, dest any, column string, value any, orderBy ...string) error
}

// Store exposes read snapshots over the task tables.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// ReadSnapshot runs fn inside one read-only transaction. Every read made
// through the Reader observes the same committed state.
func (s *Store) ReadSnapshot(ctx context.Context, fn func(Reader) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Snapshot{tx: tx})
	}, &sql.TxOptions{ReadOnly: true})
}

// Snapshot is a read transaction handed out by ReadSnapshot. It is only
// valid until the callback returns.
type Snapshot struct {
	tx *gorm.DB
}

// GetByID loads the row whose primary key is id into dest, which must be a
// pointer to a model. found is false when no row matches.
func (s *Snapshot) GetByID(ctx context.Context, dest any, id string) (bool, error) {
	err := s.tx.WithContext(ctx).Where(clause.Eq{Column: clause.Column{Name: "id"}, Value: id}).Take(dest).Error
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("get by id: %w", err)
	}
}

// ScanByIndex loads every row where column equals value into dest, a pointer
// to a slice of models, sorted ascending by the given columns.
func (s *Snapshot) ScanByIndex(ctx context.Context, dest any, column string, value any, orderBy ...string) error {
	q := s.tx.WithContext(ctx).Where(clause.Eq{Column: clause.Column{Name: column}, Value: value})
	for _, col := range orderBy {
		q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: col}})
	}
	if err := q.Find(dest).Error; err != nil {
		return fmt.Errorf("scan by %s: %w", column, err)
	}
	return nil
}
