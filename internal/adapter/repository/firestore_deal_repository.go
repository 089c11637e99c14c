package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"ekanwe/internal/domain/entity"
	"ekanwe/internal/domain/repository"
	"ekanwe/pkg/errors"
)

type firestoreDealRepository struct {
	client *firestore.Client
}

func NewFirestoreDealRepository(client *firestore.Client) repository.DealRepository {
	return &firestoreDealRepository{
		client: client,
	}
}

func (r *firestoreDealRepository) Create(ctx context.Context, deal *entity.Deal) error {
	if deal.ID == "" {
		doc := r.client.Collection("deals").NewDoc()
		deal.ID = doc.ID
	}

	if deal.CreatedAt.IsZero() {
		deal.CreatedAt = time.Now()
	}
	if deal.Candidatures == nil {
		deal.Candidatures = []entity.Candidature{}
	}

	_, err := r.client.Collection("deals").Doc(deal.ID).Set(ctx, deal)
	if err != nil {
		return errors.Internal("Failed to create deal", err)
	}

	return nil
}

func (r *firestoreDealRepository) GetByID(ctx context.Context, id string) (*entity.Deal, error) {
	doc, err := r.client.Collection("deals").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Deal", err)
		}
		return nil, errors.Internal("Failed to get deal", err)
	}

	var deal entity.Deal
	if err := doc.DataTo(&deal); err != nil {
		return nil, errors.Internal("Failed to parse deal data", err)
	}
	deal.ID = doc.Ref.ID

	return &deal, nil
}

func (r *firestoreDealRepository) Update(ctx context.Context, deal *entity.Deal) error {
	_, err := r.client.Collection("deals").Doc(deal.ID).Set(ctx, deal)
	if err != nil {
		return errors.Internal("Failed to update deal", err)
	}

	return nil
}

// Mutate runs fn against the current document inside a transaction, so the
// read, the domain check and the write commit as one unit. Errors from fn
// pass through unchanged; they carry the domain's own codes.
func (r *firestoreDealRepository) Mutate(ctx context.Context, id string, fn func(deal *entity.Deal) error) (*entity.Deal, error) {
	ref := r.client.Collection("deals").Doc(id)

	var deal entity.Deal
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Deal", err)
			}
			return err
		}

		deal = entity.Deal{}
		if err := doc.DataTo(&deal); err != nil {
			return err
		}
		deal.ID = doc.Ref.ID

		if err := fn(&deal); err != nil {
			return err
		}
		return tx.Set(ref, &deal)
	})
	if err != nil {
		if _, ok := err.(*errors.AppError); ok {
			return nil, err
		}
		return nil, errors.Internal("Failed to update deal", err)
	}

	return &deal, nil
}

func (r *firestoreDealRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("deals").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete deal", err)
	}

	return nil
}

func (r *firestoreDealRepository) List(ctx context.Context) ([]*entity.Deal, error) {
	iter := r.client.Collection("deals").OrderBy("createdAt", firestore.Desc).Documents(ctx)

	var deals []*entity.Deal
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate deals", err)
		}

		var deal entity.Deal
		if err := doc.DataTo(&deal); err != nil {
			continue // Skip malformed documents
		}
		deal.ID = doc.Ref.ID
		deals = append(deals, &deal)
	}

	return deals, nil
}

func (r *firestoreDealRepository) ListByMerchant(ctx context.Context, merchantID string) ([]*entity.Deal, error) {
	iter := r.client.Collection("deals").Where("merchantId", "==", merchantID).Documents(ctx)

	var deals []*entity.Deal
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate merchant deals", err)
		}

		var deal entity.Deal
		if err := doc.DataTo(&deal); err != nil {
			continue // Skip malformed documents
		}
		deal.ID = doc.Ref.ID
		deals = append(deals, &deal)
	}

	return deals, nil
}
