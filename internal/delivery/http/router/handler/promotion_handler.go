package handler

import (
	"net/http"
	"time"

	"lamsa/internal/delivery/http/response"
	"lamsa/internal/domain/entity"
	"lamsa/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// PromotionHandler holds dependencies for promotion handlers.
type PromotionHandler struct {
	uc usecase.PromotionUsecase
}

// NewPromotionHandler is the constructor for PromotionHandler, injected by Fx.
func NewPromotionHandler(uc usecase.PromotionUsecase) *PromotionHandler {
	return &PromotionHandler{uc: uc}
}

type createPromotionRequest struct {
	SalonID            uuid.UUID   `json:"salonId" validate:"required"`
	TitleEn            string      `json:"titleEn" validate:"required"`
	TitleAr            string      `json:"titleAr"`
	DescriptionEn      string      `json:"descriptionEn"`
	DescriptionAr      string      `json:"descriptionAr"`
	DiscountPercentage int         `json:"discountPercentage" validate:"required,min=1,max=100"`
	StartDate          time.Time   `json:"startDate" validate:"required"`
	EndDate            time.Time   `json:"endDate" validate:"required"`
	Scope              string      `json:"scope" validate:"omitempty,oneof=all specific"`
	ServiceIDs         []uuid.UUID `json:"serviceIds"`
}

type updatePromotionRequest struct {
	TitleEn            *string     `json:"titleEn"`
	TitleAr            *string     `json:"titleAr"`
	DescriptionEn      *string     `json:"descriptionEn"`
	DescriptionAr      *string     `json:"descriptionAr"`
	DiscountPercentage *int        `json:"discountPercentage" validate:"omitempty,min=1,max=100"`
	StartDate          *time.Time  `json:"startDate"`
	EndDate            *time.Time  `json:"endDate"`
	Scope              *string     `json:"scope" validate:"omitempty,oneof=all specific"`
	ServiceIDs         []uuid.UUID `json:"serviceIds"`
}

// BySalon returns the promotions of one salon with activity computed at
// read time.
func (h *PromotionHandler) BySalon(c echo.Context) error {
	salonID, err := pathUUID(c, "salonId")
	if err != nil {
		return err
	}

	promotions, err := h.uc.SalonPromotions(c.Request().Context(), salonID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, promotions, "Promotions retrieved successfully")
}

// Create runs a promotion on a salon the caller owns.
func (h *PromotionHandler) Create(c echo.Context) error {
	var req createPromotionRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid promotion input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	promotion, err := h.uc.CreatePromotion(c.Request().Context(), actorFrom(c), &usecase.CreatePromotionInput{
		SalonID:            req.SalonID,
		TitleEn:            req.TitleEn,
		TitleAr:            req.TitleAr,
		DescriptionEn:      req.DescriptionEn,
		DescriptionAr:      req.DescriptionAr,
		DiscountPercentage: req.DiscountPercentage,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		Scope:              entity.PromotionScope(req.Scope),
		ServiceIDs:         req.ServiceIDs,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, promotion, "Promotion created successfully")
}

// Update applies a partial update to a promotion the caller owns.
func (h *PromotionHandler) Update(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req updatePromotionRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid promotion input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	input := &usecase.UpdatePromotionInput{
		TitleEn:            req.TitleEn,
		TitleAr:            req.TitleAr,
		DescriptionEn:      req.DescriptionEn,
		DescriptionAr:      req.DescriptionAr,
		DiscountPercentage: req.DiscountPercentage,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		ServiceIDs:         req.ServiceIDs,
	}
	if req.Scope != nil {
		scope := entity.PromotionScope(*req.Scope)
		input.Scope = &scope
	}

	promotion, err := h.uc.UpdatePromotion(c.Request().Context(), actorFrom(c), id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, promotion, "Promotion updated successfully")
}

// Delete removes a promotion the caller owns.
func (h *PromotionHandler) Delete(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeletePromotion(c.Request().Context(), actorFrom(c), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Promotion deleted successfully")
}
