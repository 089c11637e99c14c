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

type firestoreNotificationRepository struct {
	client *firestore.Client
}

func NewFirestoreNotificationRepository(client *firestore.Client) repository.NotificationRepository {
	return &firestoreNotificationRepository{
		client: client,
	}
}

func (r *firestoreNotificationRepository) notifications(userID string) *firestore.CollectionRef {
	return r.client.Collection("users").Doc(userID).Collection("notifications")
}

// Create writes the record under the caller-provided id when one is set, so a
// retried dispatch overwrites its own earlier attempt instead of duplicating.
func (r *firestoreNotificationRepository) Create(ctx context.Context, userID string, notification *entity.Notification) error {
	if notification.ID == "" {
		notification.ID = r.notifications(userID).NewDoc().ID
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}

	_, err := r.notifications(userID).Doc(notification.ID).Set(ctx, notification)
	if err != nil {
		return errors.Internal("Failed to create notification", err)
	}

	return nil
}

func (r *firestoreNotificationRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Notification, error) {
	iter := r.notifications(userID).OrderBy("createdAt", firestore.Desc).Documents(ctx)

	var notifications []*entity.Notification
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate notifications", err)
		}

		var notification entity.Notification
		if err := doc.DataTo(&notification); err != nil {
			continue // Skip malformed documents
		}
		notification.ID = doc.Ref.ID
		notifications = append(notifications, &notification)
	}

	return notifications, nil
}

func (r *firestoreNotificationRepository) MarkRead(ctx context.Context, userID, notificationID string) error {
	_, err := r.notifications(userID).Doc(notificationID).Update(ctx, []firestore.Update{
		{Path: "read", Value: true},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Notification", err)
		}
		return errors.Internal("Failed to mark notification read", err)
	}

	return nil
}
