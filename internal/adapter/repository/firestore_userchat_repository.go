package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"ekanwe/internal/domain/entity"
	"ekanwe/internal/domain/repository"
	"ekanwe/pkg/errors"
)

type firestoreUserChatRepository struct {
	client *firestore.Client
}

func NewFirestoreUserChatRepository(client *firestore.Client) repository.UserChatRepository {
	return &firestoreUserChatRepository{
		client: client,
	}
}

func (r *firestoreUserChatRepository) Get(ctx context.Context, userID string) (*entity.Inbox, error) {
	doc, err := r.client.Collection("userchats").Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Inbox", err)
		}
		return nil, errors.Internal("Failed to get inbox", err)
	}

	var inbox entity.Inbox
	if err := doc.DataTo(&inbox); err != nil {
		return nil, errors.Internal("Failed to parse inbox data", err)
	}

	return &inbox, nil
}

// Upsert replaces or appends the preview entry inside a transaction, so the
// two participants of a conversation cannot clobber each other's inbox write.
func (r *firestoreUserChatRepository) Upsert(ctx context.Context, userID string, entry entity.InboxEntry) error {
	ref := r.client.Collection("userchats").Doc(userID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}

		var inbox entity.Inbox
		if doc != nil && doc.Exists() {
			if err := doc.DataTo(&inbox); err != nil {
				return err
			}
		}

		inbox.Upsert(entry)
		return tx.Set(ref, &inbox)
	})
	if err != nil {
		return errors.Internal("Failed to upsert inbox entry", err)
	}

	return nil
}

func (r *firestoreUserChatRepository) MarkRead(ctx context.Context, userID, chatID string) error {
	ref := r.client.Collection("userchats").Doc(userID)

	var missing bool
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				missing = true
				return nil
			}
			return err
		}

		var inbox entity.Inbox
		if err := doc.DataTo(&inbox); err != nil {
			return err
		}

		if !inbox.MarkRead(chatID) {
			missing = true
			return nil
		}
		return tx.Set(ref, &inbox)
	})
	if err != nil {
		return errors.Internal("Failed to mark inbox entry read", err)
	}
	if missing {
		return errors.NotFound("Conversation", nil)
	}

	return nil
}
