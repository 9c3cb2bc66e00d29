package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"store-rating/internal/data/entity"
	"store-rating/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// UserFilter narrows the admin user listing. Zero values are ignored.
type UserFilter struct {
	Name    string
	Email   string
	Address string
	Role    entity.UserRole
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string, updatedAt time.Time) error
	List(ctx context.Context, filter UserFilter, opts ListOptions) ([]*entity.UserSummary, error)
	Count(ctx context.Context, filter UserFilter) (int64, error)
}

var userSortColumns = map[string]string{
	"name":      "u.name",
	"email":     "u.email",
	"address":   "u.address",
	"role":      "u.role",
	"createdAt": "u.created_at",
}

// UserSortKeys are the sortBy values accepted by the user listing.
var UserSortKeys = []string{"name", "email", "address", "role", "createdAt"}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

const insertUserSQL = `
	INSERT INTO users (id, name, email, password, address, role, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

func insertUser(ctx context.Context, exec execer, user *entity.User) error {
	_, err := exec.Exec(ctx, insertUserSQL,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Address,
		user.Role,
		user.CreatedAt,
		user.UpdatedAt,
	)
	return err
}

// Create inserts a new user record into the database
func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	if err := insertUser(ctx, r.db, user); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create user %s: %w", user.Email, ErrDuplicate)
		}
		r.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email),
		)
		return fmt.Errorf("create user %s: %w", user.Email, err)
	}

	return nil
}

const selectUserSQL = `
	SELECT id, name, email, password, address, role, created_at, updated_at
	FROM users
`

func scanUser(row pgx.Row) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Address,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, selectUserSQL+` WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find user by ID",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return nil, fmt.Errorf("find user by ID %s: %w", id.String(), err)
	}

	return user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, selectUserSQL+` WHERE email = $1`, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find user by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find user by email %s: %w", email, err)
	}

	return user, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string, updatedAt time.Time) error {
	query := `UPDATE users SET password = $2, updated_at = $3 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, passwordHash, updatedAt)
	if err != nil {
		r.log.Error("Failed to update password",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return fmt.Errorf("update password for user %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update password for user %s: %w", id.String(), ErrNotFound)
	}

	return nil
}

func userWhere(filter UserFilter, args ...any) *whereBuilder {
	wb := newWhereBuilder(args...)
	wb.contains("u.name", filter.Name)
	wb.contains("u.email", filter.Email)
	wb.contains("u.address", filter.Address)
	if filter.Role != "" {
		wb.equals("u.role", filter.Role)
	}
	return wb
}

// List returns one page of users. Owners that have a store carry its rating
// aggregate.
func (r *userRepository) List(ctx context.Context, filter UserFilter, opts ListOptions) ([]*entity.UserSummary, error) {
	wb := userWhere(filter)

	query := `
		SELECT u.id, u.name, u.email, u.address, u.role, u.created_at, u.updated_at,
		       s.id IS NOT NULL AS has_store,
		       COALESCE(SUM(r.value), 0) AS rating_sum,
		       COUNT(r.id) AS rating_count
		FROM users u
		LEFT JOIN stores s ON s.owner_id = u.id
		LEFT JOIN ratings r ON r.store_id = s.id` +
		wb.String() +
		` GROUP BY u.id, s.id` +
		orderBy(userSortColumns, "name", opts, "u.id ASC") +
		wb.page(opts.Limit, opts.Offset)

	rows, err := r.db.Query(ctx, query, wb.args...)
	if err != nil {
		r.log.Error("Failed to list users",
			zap.Error(err),
			zap.Int("limit", opts.Limit),
			zap.Int("offset", opts.Offset),
		)
		return nil, fmt.Errorf("list users limit %d offset %d: %w", opts.Limit, opts.Offset, err)
	}
	defer rows.Close()

	users := []*entity.UserSummary{}
	for rows.Next() {
		var (
			u        entity.UserSummary
			hasStore bool
			agg      entity.RatingAggregate
		)
		err := rows.Scan(
			&u.ID,
			&u.Name,
			&u.Email,
			&u.Address,
			&u.Role,
			&u.CreatedAt,
			&u.UpdatedAt,
			&hasStore,
			&agg.Sum,
			&agg.Count,
		)
		if err != nil {
			r.log.Error("Failed to scan user row", zap.Error(err))
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		if u.Role == entity.RoleStoreOwner && hasStore {
			u.StoreRating = &agg
		}
		users = append(users, &u)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate users rows: %w", err)
	}

	return users, nil
}

func (r *userRepository) Count(ctx context.Context, filter UserFilter) (int64, error) {
	wb := userWhere(filter)
	query := `SELECT COUNT(*) FROM users u` + wb.String()

	var count int64
	if err := r.db.QueryRow(ctx, query, wb.args...).Scan(&count); err != nil {
		r.log.Error("Database error counting users", zap.Error(err))
		return 0, fmt.Errorf("count users: %w", err)
	}

	return count, nil
}
