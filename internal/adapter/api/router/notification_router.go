package router

import (
	"github.com/labstack/echo/v4"

	"ekanwe/internal/adapter/api/handler"
	"ekanwe/internal/adapter/api/middleware"
)

func SetupNotificationRouter(e *echo.Echo, notificationHandler *handler.NotificationHandler, authMiddleware *middleware.AuthMiddleware) {
	notificationGroup := e.Group("/v1/notifications")
	notificationGroup.Use(authMiddleware.Authenticate)

	notificationGroup.GET("", notificationHandler.ListNotifications)              // GET /v1/notifications
	notificationGroup.PUT("/:id/read", notificationHandler.MarkNotificationAsRead) // PUT /v1/notifications/:id/read
}
