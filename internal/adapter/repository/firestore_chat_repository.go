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

type firestoreChatRepository struct {
	client *firestore.Client
}

func NewFirestoreChatRepository(client *firestore.Client) repository.ChatRepository {
	return &firestoreChatRepository{
		client: client,
	}
}

func (r *firestoreChatRepository) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	doc, err := r.client.Collection("chats").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Chat", err)
		}
		return nil, errors.Internal("Failed to get chat", err)
	}

	var chat entity.Chat
	if err := doc.DataTo(&chat); err != nil {
		return nil, errors.Internal("Failed to parse chat data", err)
	}
	chat.ID = doc.Ref.ID

	return &chat, nil
}

func (r *firestoreChatRepository) Create(ctx context.Context, id string, first entity.Message) error {
	_, err := r.client.Collection("chats").Doc(id).Set(ctx, map[string]interface{}{
		"messages": []entity.Message{first},
	})
	if err != nil {
		return errors.Internal("Failed to create chat", err)
	}

	return nil
}

// AppendMessage relies on the store's array-union append so two senders
// writing near-simultaneously never drop each other's message.
func (r *firestoreChatRepository) AppendMessage(ctx context.Context, id string, message entity.Message) error {
	_, err := r.client.Collection("chats").Doc(id).Update(ctx, []firestore.Update{
		{Path: "messages", Value: firestore.ArrayUnion(message)},
	})
	if err != nil {
		return errors.Internal("Failed to append message", err)
	}

	return nil
}
