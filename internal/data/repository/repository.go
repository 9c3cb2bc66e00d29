package repository

import (
	"context"
	"errors"
	"fmt"

	"store-rating/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// ErrDuplicate is returned when a write hits a unique constraint.
var ErrDuplicate = errors.New("duplicate record")

// ErrNotFound is returned when a write matches no rows.
var ErrNotFound = errors.New("record not found")

const uniqueViolation = "23505"

type Repository struct {
	User   UserRepository
	Store  StoreRepository
	Rating RatingRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:   NewUserRepository(db, log),
		Store:  NewStoreRepository(db, log),
		Rating: NewRatingRepository(db, log),
	}
}

// execer is satisfied by both the pool handle and an open pgx.Tx.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// ListOptions carries pagination and ordering for list queries. SortBy is a
// logical key resolved against each repository's whitelist.
type ListOptions struct {
	Limit  int
	Offset int
	SortBy string
	Desc   bool
}

func (o ListOptions) direction() string {
	if o.Desc {
		return "DESC"
	}
	return "ASC"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// runInTx commits when fn succeeds and rolls back otherwise.
func runInTx(ctx context.Context, db database.PgxIface, log *zap.Logger, fn func(tx pgx.Tx) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			log.Error("Failed to rollback transaction", zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("commit transaction: %w", ErrDuplicate)
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
