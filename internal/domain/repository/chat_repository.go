package repository

import (
	"context"

	"ekanwe/internal/domain/entity"
)

type ChatRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Chat, error)
	Create(ctx context.Context, id string, first entity.Message) error
	AppendMessage(ctx context.Context, id string, message entity.Message) error
}

// UserChatRepository guards the per-user inbox document. Upsert and MarkRead
// are transactional read-modify-writes so concurrent writers from both sides
// of a conversation cannot overwrite each other's entries.
type UserChatRepository interface {
	Get(ctx context.Context, userID string) (*entity.Inbox, error)
	Upsert(ctx context.Context, userID string, entry entity.InboxEntry) error
	MarkRead(ctx context.Context, userID, chatID string) error
}
