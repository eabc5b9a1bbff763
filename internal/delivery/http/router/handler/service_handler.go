package handler

import (
	"net/http"

	deliverycontext "lamsa/internal/delivery/context"
	"lamsa/internal/delivery/http/response"
	"lamsa/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ServiceHandler holds dependencies for service catalog handlers.
type ServiceHandler struct {
	uc usecase.ServiceUsecase
}

// NewServiceHandler is the constructor for ServiceHandler, injected by Fx.
func NewServiceHandler(uc usecase.ServiceUsecase) *ServiceHandler {
	return &ServiceHandler{uc: uc}
}

type createServiceRequest struct {
	SalonID         uuid.UUID `json:"salonId" validate:"required"`
	NameEn          string    `json:"nameEn" validate:"required"`
	NameAr          string    `json:"nameAr"`
	DescriptionEn   string    `json:"descriptionEn"`
	DescriptionAr   string    `json:"descriptionAr"`
	DurationMinutes int       `json:"durationMinutes" validate:"required,gt=0"`
	Price           float64   `json:"price" validate:"gte=0"`
	Category        string    `json:"category"`
	ImageURL        string    `json:"imageUrl"`
}

type updateServiceRequest struct {
	NameEn          *string  `json:"nameEn"`
	NameAr          *string  `json:"nameAr"`
	DescriptionEn   *string  `json:"descriptionEn"`
	DescriptionAr   *string  `json:"descriptionAr"`
	DurationMinutes *int     `json:"durationMinutes" validate:"omitempty,gt=0"`
	Price           *float64 `json:"price" validate:"omitempty,gte=0"`
	Category        *string  `json:"category"`
	ImageURL        *string  `json:"imageUrl"`
}

// List returns every service across salons.
func (h *ServiceHandler) List(c echo.Context) error {
	services, err := h.uc.ListServices(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, services, "Services retrieved successfully")
}

// BySalon returns the services offered by one salon.
func (h *ServiceHandler) BySalon(c echo.Context) error {
	salonID, err := pathUUID(c, "salonId")
	if err != nil {
		return err
	}

	services, err := h.uc.SalonServices(c.Request().Context(), salonID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, services, "Services retrieved successfully")
}

// OwnerServices returns the services across every salon the caller owns.
func (h *ServiceHandler) OwnerServices(c echo.Context) error {
	services, err := h.uc.OwnerServices(c.Request().Context(), deliverycontext.GetUserID(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, services, "Services retrieved successfully")
}

// Create adds a service to a salon the caller owns.
func (h *ServiceHandler) Create(c echo.Context) error {
	var req createServiceRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid service input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	service, err := h.uc.CreateService(c.Request().Context(), actorFrom(c), &usecase.CreateServiceInput{
		SalonID:         req.SalonID,
		NameEn:          req.NameEn,
		NameAr:          req.NameAr,
		DescriptionEn:   req.DescriptionEn,
		DescriptionAr:   req.DescriptionAr,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		Category:        req.Category,
		ImageURL:        req.ImageURL,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, service, "Service created successfully")
}

// Update applies a partial update to a service the caller owns.
func (h *ServiceHandler) Update(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req updateServiceRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid service input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	service, err := h.uc.UpdateService(c.Request().Context(), actorFrom(c), id, &usecase.UpdateServiceInput{
		NameEn:          req.NameEn,
		NameAr:          req.NameAr,
		DescriptionEn:   req.DescriptionEn,
		DescriptionAr:   req.DescriptionAr,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		Category:        req.Category,
		ImageURL:        req.ImageURL,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, service, "Service updated successfully")
}

// Delete removes a service the caller owns.
func (h *ServiceHandler) Delete(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteService(c.Request().Context(), actorFrom(c), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Service deleted successfully")
}
