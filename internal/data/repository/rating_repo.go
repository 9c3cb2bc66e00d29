package repository

import (
	"context"
	"fmt"

	"store-rating/internal/data/entity"
	"store-rating/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RatingRepository interface {
	// Upsert inserts or overwrites the (user, store) rating atomically and
	// reports whether a new row was created.
	Upsert(ctx context.Context, rating *entity.Rating) (bool, error)
	FindRaters(ctx context.Context, storeID uuid.UUID, opts ListOptions) ([]*entity.Rater, error)
	AggregateByStore(ctx context.Context, storeID uuid.UUID) (entity.RatingAggregate, error)
	CountAll(ctx context.Context) (int64, error)
}

var raterSortColumns = map[string]string{
	"name":    "u.name",
	"email":   "u.email",
	"address": "u.address",
	"rating":  "r.value",
}

// RaterSortKeys are the sortBy values accepted by the owner dashboard.
var RaterSortKeys = []string{"name", "email", "address", "rating"}

type ratingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRatingRepository(db database.PgxIface, log *zap.Logger) RatingRepository {
	return &ratingRepository{
		db:  db,
		log: log.With(zap.String("repository", "rating")),
	}
}

// Upsert relies on the (user_id, store_id) unique constraint; concurrent
// submissions for the same pair end up on one row. xmax = 0 only for a
// freshly inserted tuple.
func (r *ratingRepository) Upsert(ctx context.Context, rating *entity.Rating) (bool, error) {
	query := `
		INSERT INTO ratings (id, value, user_id, store_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, store_id)
		DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
		RETURNING id, created_at, (xmax = 0) AS inserted
	`

	var inserted bool
	err := r.db.QueryRow(ctx, query,
		rating.ID,
		rating.Value,
		rating.UserID,
		rating.StoreID,
		rating.CreatedAt,
		rating.UpdatedAt,
	).Scan(&rating.ID, &rating.CreatedAt, &inserted)

	if err != nil {
		r.log.Error("Failed to upsert rating",
			zap.Error(err),
			zap.String("user_id", rating.UserID.String()),
			zap.String("store_id", rating.StoreID.String()),
		)
		return false, fmt.Errorf("upsert rating for store %s by user %s: %w",
			rating.StoreID.String(), rating.UserID.String(), err)
	}

	return inserted, nil
}

// FindRaters lists who rated a store. Sorting by rating falls back to rater
// name and then rating id for equal values.
func (r *ratingRepository) FindRaters(ctx context.Context, storeID uuid.UUID, opts ListOptions) ([]*entity.Rater, error) {
	wb := newWhereBuilder()
	wb.equals("r.store_id", storeID)

	query := `
		SELECT r.id, u.name, u.email, u.address, r.value
		FROM ratings r
		JOIN users u ON u.id = r.user_id` +
		wb.String() +
		orderBy(raterSortColumns, "name", opts, "u.name ASC, r.id ASC") +
		wb.page(opts.Limit, opts.Offset)

	rows, err := r.db.Query(ctx, query, wb.args...)
	if err != nil {
		r.log.Error("Failed to find raters",
			zap.Error(err),
			zap.String("store_id", storeID.String()),
		)
		return nil, fmt.Errorf("find raters for store %s: %w", storeID.String(), err)
	}
	defer rows.Close()

	raters := []*entity.Rater{}
	for rows.Next() {
		var rt entity.Rater
		if err := rows.Scan(&rt.RatingID, &rt.Name, &rt.Email, &rt.Address, &rt.Value); err != nil {
			r.log.Error("Failed to scan rater row", zap.Error(err))
			return nil, fmt.Errorf("scan rater row: %w", err)
		}
		raters = append(raters, &rt)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate rater rows: %w", err)
	}

	return raters, nil
}

func (r *ratingRepository) AggregateByStore(ctx context.Context, storeID uuid.UUID) (entity.RatingAggregate, error) {
	query := `SELECT COALESCE(SUM(value), 0), COUNT(*) FROM ratings WHERE store_id = $1`

	var agg entity.RatingAggregate
	if err := r.db.QueryRow(ctx, query, storeID).Scan(&agg.Sum, &agg.Count); err != nil {
		r.log.Error("Failed to aggregate store ratings",
			zap.Error(err),
			zap.String("store_id", storeID.String()),
		)
		return entity.RatingAggregate{}, fmt.Errorf("aggregate ratings for store %s: %w", storeID.String(), err)
	}

	return agg, nil
}

func (r *ratingRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM ratings`).Scan(&count); err != nil {
		r.log.Error("Failed to count ratings", zap.Error(err))
		return 0, fmt.Errorf("count ratings: %w", err)
	}
	return count, nil
}
