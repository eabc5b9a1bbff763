package handler

import (
	"net/http"

	"lamsa/internal/delivery/http/response"
	"lamsa/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ReviewHandler holds dependencies for review handlers.
type ReviewHandler struct {
	uc usecase.ReviewUsecase
}

// NewReviewHandler is the constructor for ReviewHandler, injected by Fx.
func NewReviewHandler(uc usecase.ReviewUsecase) *ReviewHandler {
	return &ReviewHandler{uc: uc}
}

type createReviewRequest struct {
	SalonID   uuid.UUID  `json:"salonId" validate:"required"`
	ServiceID *uuid.UUID `json:"serviceId"`
	BookingID *uuid.UUID `json:"bookingId"`
	Rating    int        `json:"rating" validate:"required,min=1,max=5"`
	Comment   string     `json:"comment"`
}

// List returns reviews, optionally narrowed to one salon via ?salonId=.
func (h *ReviewHandler) List(c echo.Context) error {
	var salonID *uuid.UUID
	if raw := c.QueryParam("salonId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid 'salonId' query parameter")
		}
		salonID = &id
	}

	reviews, err := h.uc.ListReviews(c.Request().Context(), salonID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, reviews, "Reviews retrieved successfully")
}

// Create records a review and recomputes the salon's rating.
func (h *ReviewHandler) Create(c echo.Context) error {
	var req createReviewRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid review input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	review, err := h.uc.CreateReview(c.Request().Context(), actorFrom(c), &usecase.CreateReviewInput{
		SalonID:   req.SalonID,
		ServiceID: req.ServiceID,
		BookingID: req.BookingID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, review, "Review created successfully")
}
