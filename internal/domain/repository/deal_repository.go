package repository

import (
	"context"

	"ekanwe/internal/domain/entity"
)

type DealRepository interface {
	Create(ctx context.Context, deal *entity.Deal) error
	GetByID(ctx context.Context, id string) (*entity.Deal, error)
	Update(ctx context.Context, deal *entity.Deal) error
	// Mutate loads the deal, applies fn to it and persists the result as one
	// serialized read-modify-write. An error from fn aborts without writing.
	// Candidature mutations go through here so two concurrent writers cannot
	// overwrite each other's list entries.
	Mutate(ctx context.Context, id string, fn func(deal *entity.Deal) error) (*entity.Deal, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Deal, error)
	ListByMerchant(ctx context.Context, merchantID string) ([]*entity.Deal, error)
}
