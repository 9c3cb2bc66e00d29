package usecase

import (
	"context"
	"fmt"
	"time"

	"store-rating/internal/data/entity"
	"store-rating/internal/data/repository"
	"store-rating/internal/dto/request"
	"store-rating/internal/dto/response"
	"store-rating/internal/event"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// userStoreSortKeys omits email, which normal users never see.
var userStoreSortKeys = []string{"name", "address", "rating", "createdAt"}

type StoreService interface {
	ListForUser(ctx context.Context, userID uuid.UUID, q *request.StoreListQuery) (*response.PaginatedResponse[response.UserStoreItem], error)
	Rate(ctx context.Context, userID, storeID uuid.UUID, req *request.RateStoreRequest) (*response.RatingResponse, error)
	OwnerDashboard(ctx context.Context, ownerID uuid.UUID, q *request.ListQuery) (*response.OwnerDashboardResponse, error)
}

type storeService struct {
	repo      *repository.Repository
	publisher event.Publisher
	log       *zap.Logger
}

func NewStoreService(repo *repository.Repository, publisher event.Publisher, log *zap.Logger) StoreService {
	if publisher == nil {
		publisher = event.NewNoop()
	}
	return &storeService{
		repo:      repo,
		publisher: publisher,
		log:       log.With(zap.String("service", "store")),
	}
}

// ListForUser lists stores with the overall rating and the caller's own rating.
func (s *storeService) ListForUser(ctx context.Context, userID uuid.UUID, q *request.StoreListQuery) (*response.PaginatedResponse[response.UserStoreItem], error) {
	if err := validate(q); err != nil {
		return nil, err
	}
	if err := checkSort(q.ListQuery, userStoreSortKeys); err != nil {
		return nil, err
	}

	filter := repository.StoreFilter{
		Name:     q.Name,
		Address:  q.Address,
		ViewerID: userID,
	}

	stores, err := s.repo.Store.List(ctx, filter, listOptions(q.ListQuery))
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Store.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]response.UserStoreItem, len(stores))
	for i, st := range stores {
		items[i] = response.StoreSummaryToUserItem(st)
	}

	return response.NewPaginatedResponse(items, q.Page, q.Limit, total), nil
}

// Rate creates the user's rating for a store or overwrites the previous one.
func (s *storeService) Rate(ctx context.Context, userID, storeID uuid.UUID, req *request.RateStoreRequest) (*response.RatingResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	store, err := s.repo.Store.FindByID(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("find store: %w", err)
	}
	if store == nil {
		return nil, newError(ErrNotFound, "Store not found")
	}

	now := time.Now()
	rating := &entity.Rating{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Value:   req.Value,
		UserID:  userID,
		StoreID: storeID,
	}

	created, err := s.repo.Rating.Upsert(ctx, rating)
	if err != nil {
		return nil, err
	}

	s.log.Info("Store rated",
		zap.String("rating_id", rating.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("store_id", storeID.String()),
		zap.Int("value", rating.Value),
		zap.Bool("created", created),
	)

	s.publishRated(ctx, rating, created)

	resp := response.RatingToResponse(rating)
	return &resp, nil
}

// publishRated never fails the request; the rating is already stored.
func (s *storeService) publishRated(ctx context.Context, rating *entity.Rating, created bool) {
	ev := event.RatingSubmitted{
		RatingID:  rating.ID.String(),
		UserID:    rating.UserID.String(),
		StoreID:   rating.StoreID.String(),
		Value:     rating.Value,
		Created:   created,
		Timestamp: rating.UpdatedAt,
	}
	if err := s.publisher.Publish(ctx, event.RatingSubmittedKey, ev); err != nil {
		s.log.Warn("Failed to publish rating event",
			zap.Error(err),
			zap.String("rating_id", ev.RatingID),
		)
	}
}

func (s *storeService) OwnerDashboard(ctx context.Context, ownerID uuid.UUID, q *request.ListQuery) (*response.OwnerDashboardResponse, error) {
	if err := validate(q); err != nil {
		return nil, err
	}
	if err := checkSort(*q, repository.RaterSortKeys); err != nil {
		return nil, err
	}

	store, err := s.repo.Store.FindByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("find owner store: %w", err)
	}
	if store == nil {
		return nil, newError(ErrNotFound, "Store not found for this owner")
	}

	agg, err := s.repo.Rating.AggregateByStore(ctx, store.ID)
	if err != nil {
		return nil, err
	}

	raters, err := s.repo.Rating.FindRaters(ctx, store.ID, listOptions(*q))
	if err != nil {
		return nil, err
	}

	items := make([]response.RaterResponse, len(raters))
	for i, rt := range raters {
		items[i] = response.RaterToResponse(rt)
	}

	return &response.OwnerDashboardResponse{
		StoreName:     store.Name,
		AverageRating: agg.Average(),
		RatingCount:   agg.Count,
		Ratings:       response.NewPaginatedResponse(items, q.Page, q.Limit, agg.Count),
	}, nil
}
