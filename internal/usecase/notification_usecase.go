package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ekanwe/internal/domain/entity"
	"ekanwe/internal/domain/repository"
	"ekanwe/pkg/logger"
)

// NotificationUseCase appends in-app notification records and attempts push
// delivery. Every operation here is a side effect of a state transition that
// already committed, so failures are logged and swallowed: a broken push must
// never make the primary transition look failed to the user.
type NotificationUseCase struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	push             PushSender
}

func NewNotificationUseCase(
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	push PushSender,
) *NotificationUseCase {
	return &NotificationUseCase{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		push:             push,
	}
}

type NotifyInput struct {
	ToUserID      string
	Message       string
	Type          string
	FromUserID    string
	RelatedDealID string
	TargetRoute   string
	DealID        string
	InfluenceurID string
	ChatID        string
	ReceiverID    string

	// EventKey, when set, becomes the record id so a retried dispatch
	// overwrites its earlier attempt instead of appending a duplicate.
	EventKey string
}

// Notify appends one NotificationRecord to the recipient's list.
func (uc *NotificationUseCase) Notify(ctx context.Context, input NotifyInput) {
	id := input.EventKey
	if id == "" {
		id = uuid.New().String()
	}

	notification := &entity.Notification{
		ID:            id,
		Message:       input.Message,
		Type:          input.Type,
		FromUserID:    input.FromUserID,
		RelatedDealID: input.RelatedDealID,
		TargetRoute:   input.TargetRoute,
		DealID:        input.DealID,
		InfluenceurID: input.InfluenceurID,
		ChatID:        input.ChatID,
		ReceiverID:    input.ReceiverID,
		Read:          false,
		CreatedAt:     time.Now(),
	}

	if err := uc.notificationRepo.Create(ctx, input.ToUserID, notification); err != nil {
		logger.LogSideEffectError("notify", input.ToUserID, err)
	}
}

// PushToToken is a fire-and-forget delivery toward one device token.
func (uc *NotificationUseCase) PushToToken(ctx context.Context, token, title, body string, data map[string]interface{}) {
	if token == "" {
		return
	}
	if err := uc.push.Send(ctx, token, title, body, data); err != nil {
		logger.LogSideEffectError("push", token, err)
	}
}

// PushToUser looks up the recipient's stored token and delivers if one is on
// file. Users without a token are simply skipped.
func (uc *NotificationUseCase) PushToUser(ctx context.Context, userID, title, body string, data map[string]interface{}) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.LogSideEffectError("push-lookup", userID, err)
		return
	}
	uc.PushToToken(ctx, user.ExpoPushToken, title, body, data)
}

// BroadcastToRole pushes the same message to every user of the given role
// that has a stored token. Sequential and unbatched; acceptable at the
// current audience size.
func (uc *NotificationUseCase) BroadcastToRole(ctx context.Context, role, title, body string, data map[string]interface{}) {
	users, err := uc.userRepo.ListByRole(ctx, role)
	if err != nil {
		logger.LogSideEffectError("broadcast", role, err)
		return
	}

	for _, user := range users {
		if user.ExpoPushToken == "" {
			continue
		}
		uc.PushToToken(ctx, user.ExpoPushToken, title, body, data)
	}
}

func (uc *NotificationUseCase) List(ctx context.Context, userID string) ([]*entity.Notification, error) {
	return uc.notificationRepo.ListByUser(ctx, userID)
}

func (uc *NotificationUseCase) MarkRead(ctx context.Context, userID, notificationID string) error {
	return uc.notificationRepo.MarkRead(ctx, userID, notificationID)
}
