package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"store-rating/internal/data/entity"
	"store-rating/internal/data/repository"
	"store-rating/internal/dto/request"
	"store-rating/internal/dto/response"
	"store-rating/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AdminService interface {
	CreateUser(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error)
	CreateStore(ctx context.Context, req *request.CreateStoreRequest) (*response.StoreResponse, error)
	ListUsers(ctx context.Context, q *request.UserListQuery) (*response.PaginatedResponse[response.UserListItem], error)
	ListStores(ctx context.Context, q *request.StoreListQuery) (*response.PaginatedResponse[response.StoreListItem], error)
	Stats(ctx context.Context) (*response.StatsResponse, error)
}

type adminService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAdminService(repo *repository.Repository, log *zap.Logger) AdminService {
	return &adminService{
		repo: repo,
		log:  log.With(zap.String("service", "admin")),
	}
}

// CreateUser adds a NORMAL_USER or SYSTEM_ADMIN. Store owners only come
// into existence together with their store.
func (s *adminService) CreateUser(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	role, err := entity.ParseRole(req.Role)
	if err != nil {
		return nil, wrapError(ErrValidation, "Invalid role", err)
	}
	if role == entity.RoleStoreOwner {
		return nil, validationError([]utils.FieldError{{
			Field:   "role",
			Message: "Store owners must be created via the add store form",
		}})
	}

	existing, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, newError(ErrConflict, "User email already exists")
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Address:      req.Address,
		Role:         role,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, newError(ErrConflict, "User email already exists")
		}
		return nil, err
	}

	s.log.Info("User created by admin",
		zap.String("user_id", user.ID.String()),
		zap.String("role", role.String()),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}

// CreateStore creates the owner account and the store atomically; the email
// must be free in both users and stores.
func (s *adminService) CreateStore(ctx context.Context, req *request.CreateStoreRequest) (*response.StoreResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	owner := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         req.OwnerName,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Address:      req.OwnerAddress,
		Role:         entity.RoleStoreOwner,
	}
	store := &entity.Store{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:    req.StoreName,
		Email:   req.Email,
		Address: req.StoreAddress,
		OwnerID: owner.ID,
	}

	if err := s.repo.Store.CreateWithOwner(ctx, owner, store); err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailUsedByUser):
			return nil, newError(ErrConflict, "This email is already registered to a user")
		case errors.Is(err, repository.ErrEmailUsedByStore):
			return nil, newError(ErrConflict, "This email is already registered to a store")
		case errors.Is(err, repository.ErrDuplicate):
			return nil, newError(ErrConflict, "This email is already registered")
		}
		return nil, err
	}

	s.log.Info("Store created",
		zap.String("store_id", store.ID.String()),
		zap.String("owner_id", owner.ID.String()),
	)

	resp := response.StoreToResponse(store)
	return &resp, nil
}

func (s *adminService) ListUsers(ctx context.Context, q *request.UserListQuery) (*response.PaginatedResponse[response.UserListItem], error) {
	if err := validate(q); err != nil {
		return nil, err
	}
	if err := checkSort(q.ListQuery, repository.UserSortKeys); err != nil {
		return nil, err
	}

	filter := repository.UserFilter{
		Name:    q.Name,
		Email:   q.Email,
		Address: q.Address,
		Role:    entity.UserRole(q.Role),
	}

	users, err := s.repo.User.List(ctx, filter, listOptions(q.ListQuery))
	if err != nil {
		return nil, err
	}

	total, err := s.repo.User.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]response.UserListItem, len(users))
	for i, u := range users {
		items[i] = response.UserSummaryToItem(u)
	}

	s.log.Debug("Users listed",
		zap.Int("count", len(items)),
		zap.Int64("total", total),
		zap.Int("page", q.Page),
	)

	return response.NewPaginatedResponse(items, q.Page, q.Limit, total), nil
}

func (s *adminService) ListStores(ctx context.Context, q *request.StoreListQuery) (*response.PaginatedResponse[response.StoreListItem], error) {
	if err := validate(q); err != nil {
		return nil, err
	}
	if err := checkSort(q.ListQuery, repository.StoreSortKeys); err != nil {
		return nil, err
	}

	filter := repository.StoreFilter{
		Name:    q.Name,
		Email:   q.Email,
		Address: q.Address,
	}

	stores, err := s.repo.Store.List(ctx, filter, listOptions(q.ListQuery))
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Store.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]response.StoreListItem, len(stores))
	for i, st := range stores {
		items[i] = response.StoreSummaryToItem(st)
	}

	return response.NewPaginatedResponse(items, q.Page, q.Limit, total), nil
}

func (s *adminService) Stats(ctx context.Context) (*response.StatsResponse, error) {
	users, err := s.repo.User.Count(ctx, repository.UserFilter{})
	if err != nil {
		return nil, err
	}
	stores, err := s.repo.Store.Count(ctx, repository.StoreFilter{})
	if err != nil {
		return nil, err
	}
	ratings, err := s.repo.Rating.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	return &response.StatsResponse{
		Users:   users,
		Stores:  stores,
		Ratings: ratings,
	}, nil
}
