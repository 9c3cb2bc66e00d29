package repository

import (
	"context"
	"errors"
	"fmt"

	"store-rating/internal/data/entity"
	"store-rating/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var (
	// ErrEmailUsedByUser and ErrEmailUsedByStore both wrap ErrDuplicate.
	ErrEmailUsedByUser  = fmt.Errorf("email already registered to a user: %w", ErrDuplicate)
	ErrEmailUsedByStore = fmt.Errorf("email already registered to a store: %w", ErrDuplicate)
)

// StoreFilter narrows store listings. ViewerID, when set, selects that
// user's own rating into StoreSummary.UserRating.
type StoreFilter struct {
	Name     string
	Email    string
	Address  string
	ViewerID uuid.UUID
}

type StoreRepository interface {
	CreateWithOwner(ctx context.Context, owner *entity.User, store *entity.Store) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Store, error)
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID) (*entity.Store, error)
	List(ctx context.Context, filter StoreFilter, opts ListOptions) ([]*entity.StoreSummary, error)
	Count(ctx context.Context, filter StoreFilter) (int64, error)
}

var storeSortColumns = map[string]string{
	"name":      "s.name",
	"email":     "s.email",
	"address":   "s.address",
	"rating":    "COALESCE(AVG(r.value), 0)",
	"createdAt": "s.created_at",
}

// StoreSortKeys are the sortBy values accepted by store listings.
var StoreSortKeys = []string{"name", "email", "address", "rating", "createdAt"}

type storeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewStoreRepository(db database.PgxIface, log *zap.Logger) StoreRepository {
	return &storeRepository{
		db:  db,
		log: log.With(zap.String("repository", "store")),
	}
}

// CreateWithOwner inserts the owner and the store in one transaction. The
// email is checked against both tables first; the unique constraints remain
// the final guard for concurrent inserts.
func (r *storeRepository) CreateWithOwner(ctx context.Context, owner *entity.User, store *entity.Store) error {
	err := runInTx(ctx, r.db, r.log, func(tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, owner.Email).Scan(&exists); err != nil {
			return fmt.Errorf("check user email: %w", err)
		}
		if exists {
			return ErrEmailUsedByUser
		}

		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM stores WHERE email = $1)`, store.Email).Scan(&exists); err != nil {
			return fmt.Errorf("check store email: %w", err)
		}
		if exists {
			return ErrEmailUsedByStore
		}

		if err := insertUser(ctx, tx, owner); err != nil {
			if isUniqueViolation(err) {
				return ErrEmailUsedByUser
			}
			return fmt.Errorf("insert owner: %w", err)
		}

		store.OwnerID = owner.ID
		_, err := tx.Exec(ctx, `
			INSERT INTO stores (id, name, email, address, owner_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			store.ID,
			store.Name,
			store.Email,
			store.Address,
			store.OwnerID,
			store.CreatedAt,
			store.UpdatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrEmailUsedByStore
			}
			return fmt.Errorf("insert store: %w", err)
		}
		return nil
	})

	if err != nil {
		if !errors.Is(err, ErrDuplicate) {
			r.log.Error("Failed to create store with owner",
				zap.Error(err),
				zap.String("email", store.Email),
			)
		}
		return fmt.Errorf("create store %s: %w", store.Email, err)
	}

	return nil
}

const selectStoreSQL = `
	SELECT id, name, email, address, owner_id, created_at, updated_at
	FROM stores
`

func (r *storeRepository) findOne(ctx context.Context, where string, arg any) (*entity.Store, error) {
	var store entity.Store
	err := r.db.QueryRow(ctx, selectStoreSQL+where, arg).Scan(
		&store.ID,
		&store.Name,
		&store.Email,
		&store.Address,
		&store.OwnerID,
		&store.CreatedAt,
		&store.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	store, err := r.findOne(ctx, ` WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to find store by ID",
			zap.Error(err),
			zap.String("store_id", id.String()),
		)
		return nil, fmt.Errorf("find store by ID %s: %w", id.String(), err)
	}
	return store, nil
}

func (r *storeRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) (*entity.Store, error) {
	store, err := r.findOne(ctx, ` WHERE owner_id = $1`, ownerID)
	if err != nil {
		r.log.Error("Failed to find store by owner",
			zap.Error(err),
			zap.String("owner_id", ownerID.String()),
		)
		return nil, fmt.Errorf("find store by owner %s: %w", ownerID.String(), err)
	}
	return store, nil
}

func storeWhere(filter StoreFilter, args ...any) *whereBuilder {
	wb := newWhereBuilder(args...)
	wb.contains("s.name", filter.Name)
	wb.contains("s.email", filter.Email)
	wb.contains("s.address", filter.Address)
	return wb
}

// List returns one page of stores with their rating aggregates. $1 is always
// the viewer id; uuid.Nil matches no rating so UserRating stays nil.
func (r *storeRepository) List(ctx context.Context, filter StoreFilter, opts ListOptions) ([]*entity.StoreSummary, error) {
	wb := storeWhere(filter, filter.ViewerID)

	query := `
		SELECT s.id, s.name, s.email, s.address, s.owner_id, s.created_at, s.updated_at,
		       COALESCE(SUM(r.value), 0) AS rating_sum,
		       COUNT(r.id) AS rating_count,
		       MAX(CASE WHEN r.user_id = $1 THEN r.value END) AS user_rating
		FROM stores s
		LEFT JOIN ratings r ON r.store_id = s.id` +
		wb.String() +
		` GROUP BY s.id` +
		orderBy(storeSortColumns, "name", opts, "s.id ASC") +
		wb.page(opts.Limit, opts.Offset)

	rows, err := r.db.Query(ctx, query, wb.args...)
	if err != nil {
		r.log.Error("Failed to list stores",
			zap.Error(err),
			zap.Int("limit", opts.Limit),
			zap.Int("offset", opts.Offset),
		)
		return nil, fmt.Errorf("list stores limit %d offset %d: %w", opts.Limit, opts.Offset, err)
	}
	defer rows.Close()

	stores := []*entity.StoreSummary{}
	for rows.Next() {
		var s entity.StoreSummary
		err := rows.Scan(
			&s.ID,
			&s.Name,
			&s.Email,
			&s.Address,
			&s.OwnerID,
			&s.CreatedAt,
			&s.UpdatedAt,
			&s.Rating.Sum,
			&s.Rating.Count,
			&s.UserRating,
		)
		if err != nil {
			r.log.Error("Failed to scan store row", zap.Error(err))
			return nil, fmt.Errorf("scan store row: %w", err)
		}
		stores = append(stores, &s)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate store rows: %w", err)
	}

	return stores, nil
}

func (r *storeRepository) Count(ctx context.Context, filter StoreFilter) (int64, error) {
	wb := storeWhere(filter)
	query := `SELECT COUNT(*) FROM stores s` + wb.String()

	var count int64
	if err := r.db.QueryRow(ctx, query, wb.args...).Scan(&count); err != nil {
		r.log.Error("Failed to count stores", zap.Error(err))
		return 0, fmt.Errorf("count stores: %w", err)
	}

	return count, nil
}
