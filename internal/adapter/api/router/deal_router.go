package router

import (
	"github.com/labstack/echo/v4"

	"ekanwe/internal/adapter/api/handler"
	"ekanwe/internal/adapter/api/middleware"
)

// SetupDealRouter sets up deal and candidature routes
func SetupDealRouter(e *echo.Echo, dealHandler *handler.DealHandler, authMiddleware *middleware.AuthMiddleware) {
	dealGroup := e.Group("/v1/deals")
	dealGroup.Use(authMiddleware.Authenticate)

	// Deal lifecycle
	dealGroup.POST("", dealHandler.CreateDeal)          // POST /v1/deals - Publish a new deal
	dealGroup.GET("", dealHandler.ListDeals)            // GET /v1/deals - List deals (optional ?merchantId=)
	dealGroup.GET("/:id", dealHandler.GetDeal)          // GET /v1/deals/:id
	dealGroup.PUT("/:id", dealHandler.UpdateDeal)       // PUT /v1/deals/:id
	dealGroup.DELETE("/:id", dealHandler.DeleteDeal)    // DELETE /v1/deals/:id - Refused once applied
	dealGroup.POST("/:id/close", dealHandler.CloseDeal) // POST /v1/deals/:id/close

	// Candidatures
	dealGroup.POST("/:id/apply", dealHandler.Apply)                                        // POST /v1/deals/:id/apply
	dealGroup.PATCH("/:id/candidatures/:influencerId", dealHandler.UpdateCandidatureStatus) // PATCH - Merchant moves the status
	dealGroup.GET("/:id/candidates", dealHandler.ListCandidates)                           // GET - Candidates with ratings
}
