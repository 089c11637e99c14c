package usecase

import (
	"context"
	"strings"

	"ekanwe/internal/domain/entity"
	"ekanwe/internal/domain/repository"
	"ekanwe/pkg/errors"
)

type UserUseCase struct {
	userRepo repository.UserRepository
}

func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo}
}

func (uc *UserUseCase) GetByID(ctx context.Context, userID string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

// RegisterPushToken stores the device's Expo token on the user profile. The
// token is overwritten on every login, so the latest device wins.
func (uc *UserUseCase) RegisterPushToken(ctx context.Context, userID, token string) error {
	if strings.TrimSpace(token) == "" {
		return errors.BadRequest("Push token is required", nil)
	}
	return uc.userRepo.SetPushToken(ctx, userID, token)
}
