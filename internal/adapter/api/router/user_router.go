package router

import (
	"github.com/labstack/echo/v4"

	"ekanwe/internal/adapter/api/handler"
	"ekanwe/internal/adapter/api/middleware"
)

func SetupUserRouter(e *echo.Echo, userHandler *handler.UserHandler, authMiddleware *middleware.AuthMiddleware) {
	userGroup := e.Group("/v1/users")
	userGroup.Use(authMiddleware.Authenticate)

	userGroup.GET("/me", userHandler.GetMe)                      // GET /v1/users/me
	userGroup.PUT("/me/push-token", userHandler.RegisterPushToken) // PUT /v1/users/me/push-token

	influencerGroup := e.Group("/v1/influencers")
	influencerGroup.Use(authMiddleware.Authenticate)

	influencerGroup.GET("/:id/rating", userHandler.GetInfluencerRating) // GET /v1/influencers/:id/rating
}
