package repository

import (
	"context"

	"ekanwe/internal/domain/entity"
)

type NotificationRepository interface {
	Create(ctx context.Context, userID string, notification *entity.Notification) error
	ListByUser(ctx context.Context, userID string) ([]*entity.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID string) error
}
