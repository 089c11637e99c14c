package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"ekanwe/internal/domain/entity"
	"ekanwe/internal/domain/repository"
	"ekanwe/pkg/errors"
	"ekanwe/pkg/logger"
)

type ChatUseCase struct {
	chatRepo     repository.ChatRepository
	userChatRepo repository.UserChatRepository
	userRepo     repository.UserRepository
}

func NewChatUseCase(
	chatRepo repository.ChatRepository,
	userChatRepo repository.UserChatRepository,
	userRepo repository.UserRepository,
) *ChatUseCase {
	return &ChatUseCase{
		chatRepo:     chatRepo,
		userChatRepo: userChatRepo,
		userRepo:     userRepo,
	}
}

type SendMessageInput struct {
	ReceiverID string
	Text       string
	ImageURL   string
}

// SendMessage appends one message to the pair's thread, creating the thread
// lazily on first contact, then refreshes both participants' inbox previews
// (sender's entry read, receiver's unread).
func (uc *ChatUseCase) SendMessage(ctx context.Context, senderID string, input SendMessageInput) (*entity.Message, error) {
	if strings.TrimSpace(input.Text) == "" && input.ImageURL == "" {
		return nil, errors.EmptyMessage()
	}
	if senderID == input.ReceiverID {
		return nil, errors.BadRequest("You cannot message yourself", nil)
	}

	if _, err := uc.userRepo.GetByID(ctx, input.ReceiverID); err != nil {
		return nil, errors.NotFound("Recipient", err)
	}

	message := entity.Message{
		SenderID:  senderID,
		Text:      input.Text,
		CreatedAt: time.Now(),
		Img:       input.ImageURL,
	}

	chatID := entity.ThreadID(senderID, input.ReceiverID)
	if err := uc.append(ctx, chatID, message); err != nil {
		return nil, err
	}

	uc.syncInboxes(ctx, chatID, senderID, input.ReceiverID, message.Text)

	return &message, nil
}

// SendGreeting writes the automatic first message an influencer's application
// opens the conversation with. Safe to replay: if an identical greeting from
// this influencer is already in the thread, nothing is appended.
func (uc *ChatUseCase) SendGreeting(ctx context.Context, influenceurID, merchantID, dealTitle string) error {
	text := fmt.Sprintf("Bonjour, je suis intéressé par le deal %q.", dealTitle)
	chatID := entity.ThreadID(influenceurID, merchantID)

	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err == nil && chat.HasMessage(influenceurID, text) {
		return nil
	}
	if err != nil && !errors.Is(err, "NOT_FOUND") {
		return err
	}

	message := entity.Message{
		SenderID:  influenceurID,
		Text:      text,
		CreatedAt: time.Now(),
	}
	if err := uc.append(ctx, chatID, message); err != nil {
		return err
	}

	uc.syncInboxes(ctx, chatID, influenceurID, merchantID, text)

	return nil
}

func (uc *ChatUseCase) append(ctx context.Context, chatID string, message entity.Message) error {
	_, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return uc.chatRepo.Create(ctx, chatID, message)
		}
		return err
	}
	return uc.chatRepo.AppendMessage(ctx, chatID, message)
}

// syncInboxes upserts both participants' preview entries. Inbox failures are
// logged and swallowed: the message is already in the thread.
func (uc *ChatUseCase) syncInboxes(ctx context.Context, chatID, senderID, receiverID, lastMessage string) {
	now := time.Now().UnixMilli()

	entries := []struct {
		userID string
		entry  entity.InboxEntry
	}{
		{senderID, entity.InboxEntry{ChatID: chatID, ReceiverID: receiverID, LastMessage: lastMessage, UpdatedAt: now, Read: true}},
		{receiverID, entity.InboxEntry{ChatID: chatID, ReceiverID: senderID, LastMessage: lastMessage, UpdatedAt: now, Read: false}},
	}

	for _, e := range entries {
		if err := uc.userChatRepo.Upsert(ctx, e.userID, e.entry); err != nil {
			logger.LogSideEffectError("inbox-upsert", e.userID, err)
		}
	}
}

func (uc *ChatUseCase) MarkRead(ctx context.Context, userID, chatID string) error {
	return uc.userChatRepo.MarkRead(ctx, userID, chatID)
}

// Messages returns the thread's message sequence in append order. The thread
// id is the two participant uids concatenated in sorted order, so a
// participant's uid sits at one end of it. An interior match would mean a
// fragment spanning both uids, which is not membership.
func (uc *ChatUseCase) Messages(ctx context.Context, userID, chatID string) ([]entity.Message, error) {
	if !strings.HasPrefix(chatID, userID) && !strings.HasSuffix(chatID, userID) {
		return nil, errors.Forbidden("User is not a participant in this chat", nil)
	}

	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}

	return chat.Messages, nil
}

// Inbox returns the user's conversation previews, most recent first. A user
// with no conversations gets an empty inbox, not an error.
func (uc *ChatUseCase) Inbox(ctx context.Context, userID string) ([]entity.InboxEntry, error) {
	inbox, err := uc.userChatRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return []entity.InboxEntry{}, nil
		}
		return nil, err
	}

	entries := make([]entity.InboxEntry, len(inbox.Chats))
	copy(entries, inbox.Chats)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].UpdatedAt > entries[j].UpdatedAt
	})

	return entries, nil
}
