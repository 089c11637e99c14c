package handler

import (
	"github.com/labstack/echo/v4"

	"ekanwe/internal/usecase"
	"ekanwe/pkg/errors"
	"ekanwe/pkg/response"
)

type UserHandler struct {
	userUseCase   *usecase.UserUseCase
	ratingUseCase *usecase.RatingUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase, ratingUseCase *usecase.RatingUseCase) *UserHandler {
	return &UserHandler{
		userUseCase:   userUseCase,
		ratingUseCase: ratingUseCase,
	}
}

func (h *UserHandler) GetMe(c echo.Context) error {
	userID := c.Get("uid").(string)

	user, err := h.userUseCase.GetByID(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

type registerPushTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

func (h *UserHandler) RegisterPushToken(c echo.Context) error {
	var req registerPushTokenRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	if err := h.userUseCase.RegisterPushToken(c.Request().Context(), userID, req.Token); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "registered"})
}

func (h *UserHandler) GetInfluencerRating(c echo.Context) error {
	influenceurID := c.Param("id")
	if influenceurID == "" {
		return response.Error(c, errors.BadRequest("Influencer ID is required", nil))
	}

	average, count, err := h.ratingUseCase.AverageFor(c.Request().Context(), influenceurID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, usecase.RatingSummary{Average: average, Count: count})
}
