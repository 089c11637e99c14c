package handler

import (
	"github.com/labstack/echo/v4"

	"ekanwe/internal/usecase"
	"ekanwe/pkg/errors"
	"ekanwe/pkg/response"
)

type NotificationHandler struct {
	notificationUseCase *usecase.NotificationUseCase
}

func NewNotificationHandler(notificationUseCase *usecase.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{
		notificationUseCase: notificationUseCase,
	}
}

func (h *NotificationHandler) ListNotifications(c echo.Context) error {
	userID := c.Get("uid").(string)

	notifications, err := h.notificationUseCase.List(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, notifications)
}

func (h *NotificationHandler) MarkNotificationAsRead(c echo.Context) error {
	notificationID := c.Param("id")
	if notificationID == "" {
		return response.Error(c, errors.BadRequest("Notification ID is required", nil))
	}

	userID := c.Get("uid").(string)

	if err := h.notificationUseCase.MarkRead(c.Request().Context(), userID, notificationID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "read"})
}
