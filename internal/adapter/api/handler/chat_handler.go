package handler

import (
	"github.com/labstack/echo/v4"

	"ekanwe/internal/domain/entity"
	"ekanwe/internal/usecase"
	"ekanwe/pkg/errors"
	"ekanwe/pkg/response"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

type sendMessageRequest struct {
	ReceiverID string `json:"receiver_id" validate:"required"`
	Text       string `json:"text"`
	ImageURL   string `json:"image_url,omitempty" validate:"omitempty,url"`
}

func (h *ChatHandler) SendMessage(c echo.Context) error {
	chatID := c.Param("id")
	if chatID == "" {
		return response.Error(c, errors.BadRequest("Chat ID is required", nil))
	}

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	senderID := c.Get("uid").(string)

	// The thread id is derived from the pair, never chosen by the client.
	if entity.ThreadID(senderID, req.ReceiverID) != chatID {
		return response.Error(c, errors.BadRequest("Chat ID does not match the sender and receiver", nil))
	}

	message, err := h.chatUseCase.SendMessage(c.Request().Context(), senderID, usecase.SendMessageInput{
		ReceiverID: req.ReceiverID,
		Text:       req.Text,
		ImageURL:   req.ImageURL,
	})

	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

func (h *ChatHandler) GetChatMessages(c echo.Context) error {
	chatID := c.Param("id")
	if chatID == "" {
		return response.Error(c, errors.BadRequest("Chat ID is required", nil))
	}

	userID := c.Get("uid").(string)

	messages, err := h.chatUseCase.Messages(c.Request().Context(), userID, chatID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, messages)
}

func (h *ChatHandler) MarkChatAsRead(c echo.Context) error {
	chatID := c.Param("id")
	if chatID == "" {
		return response.Error(c, errors.BadRequest("Chat ID is required", nil))
	}

	userID := c.Get("uid").(string)

	if err := h.chatUseCase.MarkRead(c.Request().Context(), userID, chatID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "read"})
}

func (h *ChatHandler) GetUserChats(c echo.Context) error {
	userID := c.Get("uid").(string)

	entries, err := h.chatUseCase.Inbox(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, entries)
}
