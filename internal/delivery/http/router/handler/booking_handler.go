package handler

import (
	"net/http"
	"time"

	deliverycontext "lamsa/internal/delivery/context"
	"lamsa/internal/delivery/http/response"
	"lamsa/internal/domain/entity"
	"lamsa/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// BookingHandler holds dependencies for booking lifecycle handlers.
type BookingHandler struct {
	uc usecase.BookingUsecase
}

// NewBookingHandler is the constructor for BookingHandler, injected by Fx.
func NewBookingHandler(uc usecase.BookingUsecase) *BookingHandler {
	return &BookingHandler{uc: uc}
}

type createBookingRequest struct {
	SalonID   uuid.UUID `json:"salonId" validate:"required"`
	ServiceID uuid.UUID `json:"serviceId" validate:"required"`
	Datetime  time.Time `json:"datetime" validate:"required"`
	Notes     string    `json:"notes"`
}

type updateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed completed cancelled"`
}

// Create places a pending booking for the caller.
func (h *BookingHandler) Create(c echo.Context) error {
	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid booking input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	booking, err := h.uc.CreateBooking(c.Request().Context(), actorFrom(c), &usecase.CreateBookingInput{
		SalonID:   req.SalonID,
		ServiceID: req.ServiceID,
		Datetime:  req.Datetime,
		Notes:     req.Notes,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, booking, "Booking created successfully")
}

// ByUser returns the bookings of one user, newest first.
func (h *BookingHandler) ByUser(c echo.Context) error {
	userID, err := pathUUID(c, "userId")
	if err != nil {
		return err
	}

	bookings, err := h.uc.UserBookings(c.Request().Context(), actorFrom(c), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, bookings, "Bookings retrieved successfully")
}

// OwnerBookings returns bookings across every salon the caller owns.
func (h *BookingHandler) OwnerBookings(c echo.Context) error {
	bookings, err := h.uc.OwnerBookings(c.Request().Context(), deliverycontext.GetUserID(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, bookings, "Bookings retrieved successfully")
}

// UpdateStatus applies a lifecycle transition to a booking.
func (h *BookingHandler) UpdateStatus(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req updateBookingStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid booking status input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	booking, err := h.uc.UpdateBookingStatus(c.Request().Context(), actorFrom(c), id, entity.BookingStatus(req.Status))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, booking, "Booking status updated successfully")
}
