package router

import (
	"github.com/labstack/echo/v4"

	"ekanwe/internal/adapter/api/handler"
	"ekanwe/internal/adapter/api/middleware"
)

type Handlers struct {
	Deal         *handler.DealHandler
	Chat         *handler.ChatHandler
	Notification *handler.NotificationHandler
	User         *handler.UserHandler
	WebSocket    *handler.WebSocketHandler
	Health       *handler.HealthHandler
}

func Setup(e *echo.Echo, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	SetupDealRouter(e, h.Deal, authMiddleware)
	SetupChatRouter(e, h.Chat, authMiddleware)
	SetupNotificationRouter(e, h.Notification, authMiddleware)
	SetupUserRouter(e, h.User, authMiddleware)
	SetupWebSocketRouter(e, h.WebSocket)
	SetupHealthRouter(e, h.Health)
}
