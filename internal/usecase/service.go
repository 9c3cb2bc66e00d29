package usecase

import (
	"store-rating/internal/data/repository"
	"store-rating/internal/event"
	"store-rating/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth  AuthService
	Admin AdminService
	Store StoreService
}

func NewService(
	repo *repository.Repository,
	tokens *utils.TokenManager,
	publisher event.Publisher,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:  NewAuthService(repo.User, tokens, log),
		Admin: NewAdminService(repo, log),
		Store: NewStoreService(repo, publisher, log),
	}
}
