package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"store-rating/internal/data/entity"
	"store-rating/internal/data/repository"
	"store-rating/pkg/utils"

	"github.com/google/uuid"
	"github.com/sethvargo/go-password/password"
	"go.uber.org/zap"
)

// EnsureAdmin creates the configured SYSTEM_ADMIN when it does not exist
// yet. Without ADMIN_EMAIL it does nothing. A missing password is generated
// and logged once so the operator can sign in and change it.
func EnsureAdmin(ctx context.Context, userRepo repository.UserRepository, cfg utils.AdminConfig, log *zap.Logger) error {
	if cfg.Email == "" {
		return nil
	}

	existing, err := userRepo.FindByEmail(ctx, cfg.Email)
	if err != nil {
		return fmt.Errorf("check admin: %w", err)
	}
	if existing != nil {
		return nil
	}

	plain := cfg.Password
	generated := plain == ""
	if generated {
		plain, err = generateAdminPassword()
		if err != nil {
			return fmt.Errorf("generate admin password: %w", err)
		}
	}

	hashedPassword, err := utils.HashPassword(plain)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	now := time.Now()
	admin := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         cfg.Name,
		Email:        cfg.Email,
		PasswordHash: hashedPassword,
		Address:      cfg.Address,
		Role:         entity.RoleSystemAdmin,
	}

	if err := userRepo.Create(ctx, admin); err != nil {
		// another instance won the race
		if errors.Is(err, repository.ErrDuplicate) {
			return nil
		}
		return fmt.Errorf("create admin: %w", err)
	}

	fields := []zap.Field{
		zap.String("user_id", admin.ID.String()),
		zap.String("email", admin.Email),
	}
	if generated {
		fields = append(fields, zap.String("generated_password", plain))
	}
	log.Info("Bootstrap admin created", fields...)

	return nil
}

// generateAdminPassword draws until the result satisfies the same password
// rule users are held to. Symbols are limited to the set that rule accepts.
func generateAdminPassword() (string, error) {
	gen, err := password.NewGenerator(&password.GeneratorInput{Symbols: "!@#$&*"})
	if err != nil {
		return "", err
	}
	for range 32 {
		plain, err := gen.Generate(16, 4, 2, false, false)
		if err != nil {
			return "", err
		}
		if utils.IsStrongPassword(plain) {
			return plain, nil
		}
	}
	return "", errors.New("no compliant password generated")
}
