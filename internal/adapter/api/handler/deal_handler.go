package handler

import (
	"github.com/labstack/echo/v4"

	"ekanwe/internal/domain/entity"
	"ekanwe/internal/usecase"
	"ekanwe/pkg/errors"
	"ekanwe/pkg/response"
)

type DealHandler struct {
	dealUseCase *usecase.DealUseCase
}

func NewDealHandler(dealUseCase *usecase.DealUseCase) *DealHandler {
	return &DealHandler{
		dealUseCase: dealUseCase,
	}
}

type dealRequest struct {
	Title          string   `json:"title" validate:"required"`
	Description    string   `json:"description" validate:"required"`
	ValidUntil     string   `json:"valid_until"`
	Conditions     string   `json:"conditions"`
	Interests      []string `json:"interests"`
	TypeOfContent  []string `json:"type_of_content"`
	ImageURL       string   `json:"image_url,omitempty" validate:"omitempty,url"`
	LocationCoords struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"location_coords"`
	LocationName string `json:"location_name"`
}

func (h *DealHandler) CreateDeal(c echo.Context) error {
	var req dealRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	merchantID := c.Get("uid").(string)

	deal, err := h.dealUseCase.Create(c.Request().Context(), merchantID, usecase.CreateDealInput{
		Title:          req.Title,
		Description:    req.Description,
		ValidUntil:     req.ValidUntil,
		Conditions:     req.Conditions,
		Interests:      req.Interests,
		TypeOfContent:  req.TypeOfContent,
		ImageURL:       req.ImageURL,
		LocationCoords: entity.Coordinates{Lat: req.LocationCoords.Lat, Lng: req.LocationCoords.Lng},
		LocationName:   req.LocationName,
	})

	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, deal)
}

func (h *DealHandler) ListDeals(c echo.Context) error {
	merchantID := c.QueryParam("merchantId")

	var (
		deals []*entity.Deal
		err   error
	)
	if merchantID != "" {
		deals, err = h.dealUseCase.ListByMerchant(c.Request().Context(), merchantID)
	} else {
		deals, err = h.dealUseCase.List(c.Request().Context())
	}

	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, deals)
}

func (h *DealHandler) GetDeal(c echo.Context) error {
	dealID := c.Param("id")
	if dealID == "" {
		return response.Error(c, errors.BadRequest("Deal ID is required", nil))
	}

	deal, err := h.dealUseCase.GetByID(c.Request().Context(), dealID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, deal)
}

func (h *DealHandler) UpdateDeal(c echo.Context) error {
	dealID := c.Param("id")
	if dealID == "" {
		return response.Error(c, errors.BadRequest("Deal ID is required", nil))
	}

	var req dealRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	merchantID := c.Get("uid").(string)

	deal, err := h.dealUseCase.Update(c.Request().Context(), merchantID, dealID, usecase.UpdateDealInput{
		Title:          req.Title,
		Description:    req.Description,
		ValidUntil:     req.ValidUntil,
		Conditions:     req.Conditions,
		Interests:      req.Interests,
		TypeOfContent:  req.TypeOfContent,
		ImageURL:       req.ImageURL,
		LocationCoords: entity.Coordinates{Lat: req.LocationCoords.Lat, Lng: req.LocationCoords.Lng},
		LocationName:   req.LocationName,
	})

	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, deal)
}

func (h *DealHandler) DeleteDeal(c echo.Context) error {
	dealID := c.Param("id")
	if dealID == "" {
		return response.Error(c, errors.BadRequest("Deal ID is required", nil))
	}

	merchantID := c.Get("uid").(string)

	if err := h.dealUseCase.Delete(c.Request().Context(), merchantID, dealID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "deleted"})
}

func (h *DealHandler) CloseDeal(c echo.Context) error {
	dealID := c.Param("id")
	if dealID == "" {
		return response.Error(c, errors.BadRequest("Deal ID is required", nil))
	}

	merchantID := c.Get("uid").(string)

	deal, err := h.dealUseCase.Close(c.Request().Context(), merchantID, dealID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, deal)
}

func (h *DealHandler) Apply(c echo.Context) error {
	dealID := c.Param("id")
	if dealID == "" {
		return response.Error(c, errors.BadRequest("Deal ID is required", nil))
	}

	influenceurID := c.Get("uid").(string)

	candidature, err := h.dealUseCase.Apply(c.Request().Context(), influenceurID, dealID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, candidature)
}

type updateCandidatureRequest struct {
	Status string `json:"status" validate:"required,oneof=Envoyé Accepté Refusé Terminé"`
}

func (h *DealHandler) UpdateCandidatureStatus(c echo.Context) error {
	dealID := c.Param("id")
	influenceurID := c.Param("influencerId")
	if dealID == "" || influenceurID == "" {
		return response.Error(c, errors.BadRequest("Deal ID and influencer ID are required", nil))
	}

	var req updateCandidatureRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	merchantID := c.Get("uid").(string)

	candidature, err := h.dealUseCase.SetStatus(c.Request().Context(), merchantID, dealID, influenceurID, req.Status)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, candidature)
}

func (h *DealHandler) ListCandidates(c echo.Context) error {
	dealID := c.Param("id")
	if dealID == "" {
		return response.Error(c, errors.BadRequest("Deal ID is required", nil))
	}

	merchantID := c.Get("uid").(string)

	candidates, err := h.dealUseCase.Candidates(c.Request().Context(), merchantID, dealID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, candidates)
}
