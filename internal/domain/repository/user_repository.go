package repository

import (
	"context"

	"ekanwe/internal/domain/entity"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
	ListByRole(ctx context.Context, role string) ([]*entity.User, error)
	SetPushToken(ctx context.Context, userID, token string) error
}
