package handler

import (
	"net/http"

	deliverycontext "lamsa/internal/delivery/context"
	"lamsa/internal/delivery/http/response"
	"lamsa/internal/domain/repository"
	"lamsa/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SalonHandler holds dependencies for salon management handlers.
type SalonHandler struct {
	uc usecase.SalonUsecase
}

// NewSalonHandler is the constructor for SalonHandler, injected by Fx.
func NewSalonHandler(uc usecase.SalonUsecase) *SalonHandler {
	return &SalonHandler{uc: uc}
}

type createSalonRequest struct {
	NameEn          string `json:"nameEn" validate:"required"`
	NameAr          string `json:"nameAr"`
	DescriptionEn   string `json:"descriptionEn"`
	DescriptionAr   string `json:"descriptionAr"`
	Address         string `json:"address"`
	City            string `json:"city"`
	Phone           string `json:"phone"`
	Email           string `json:"email" validate:"omitempty,email"`
	PriceRange      string `json:"priceRange"`
	IsLadiesOnly    bool   `json:"isLadiesOnly"`
	HasPrivateRooms bool   `json:"hasPrivateRooms"`
	IsHijabFriendly bool   `json:"isHijabFriendly"`
}

type updateSalonRequest struct {
	NameEn          *string `json:"nameEn"`
	NameAr          *string `json:"nameAr"`
	DescriptionEn   *string `json:"descriptionEn"`
	DescriptionAr   *string `json:"descriptionAr"`
	Address         *string `json:"address"`
	City            *string `json:"city"`
	Phone           *string `json:"phone"`
	Email           *string `json:"email" validate:"omitempty,email"`
	PriceRange      *string `json:"priceRange"`
	IsLadiesOnly    *bool   `json:"isLadiesOnly"`
	HasPrivateRooms *bool   `json:"hasPrivateRooms"`
	IsHijabFriendly *bool   `json:"isHijabFriendly"`
}

// List returns salons matching the optional filter flags.
func (h *SalonHandler) List(c echo.Context) error {
	filter := repository.SalonFilter{
		IsLadiesOnly:    queryBool(c, "ladiesOnly"),
		HasPrivateRooms: queryBool(c, "privateRoom"),
		IsHijabFriendly: queryBool(c, "hijabFriendly"),
		City:            c.QueryParam("city"),
	}

	salons, err := h.uc.ListSalons(c.Request().Context(), filter)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, salons, "Salons retrieved successfully")
}

// Get returns one salon with its services and reviews nested.
func (h *SalonHandler) Get(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	details, err := h.uc.GetSalon(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, details, "Salon retrieved successfully")
}

// Create opens a new salon owned by the caller.
func (h *SalonHandler) Create(c echo.Context) error {
	var req createSalonRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid salon input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	salon, err := h.uc.CreateSalon(c.Request().Context(), actorFrom(c), &usecase.CreateSalonInput{
		NameEn:          req.NameEn,
		NameAr:          req.NameAr,
		DescriptionEn:   req.DescriptionEn,
		DescriptionAr:   req.DescriptionAr,
		Address:         req.Address,
		City:            req.City,
		Phone:           req.Phone,
		Email:           req.Email,
		PriceRange:      req.PriceRange,
		IsLadiesOnly:    req.IsLadiesOnly,
		HasPrivateRooms: req.HasPrivateRooms,
		IsHijabFriendly: req.IsHijabFriendly,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, salon, "Salon created successfully")
}

// Update applies a partial update to a salon the caller owns.
func (h *SalonHandler) Update(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req updateSalonRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid salon input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	salon, err := h.uc.UpdateSalon(c.Request().Context(), actorFrom(c), id, &usecase.UpdateSalonInput{
		NameEn:          req.NameEn,
		NameAr:          req.NameAr,
		DescriptionEn:   req.DescriptionEn,
		DescriptionAr:   req.DescriptionAr,
		Address:         req.Address,
		City:            req.City,
		Phone:           req.Phone,
		Email:           req.Email,
		PriceRange:      req.PriceRange,
		IsLadiesOnly:    req.IsLadiesOnly,
		HasPrivateRooms: req.HasPrivateRooms,
		IsHijabFriendly: req.IsHijabFriendly,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, salon, "Salon updated successfully")
}

// OwnerSalons returns the salons owned by the caller. An owner with no
// salons gets a 200 with null data, not an error.
func (h *SalonHandler) OwnerSalons(c echo.Context) error {
	salons, err := h.uc.OwnerSalons(c.Request().Context(), deliverycontext.GetUserID(c))
	if err != nil {
		return errors.WithStack(err)
	}

	if len(salons) == 0 {
		return response.Success(c, http.StatusOK, nil, "No salons for this owner")
	}

	return response.Success(c, http.StatusOK, salons, "Salons retrieved successfully")
}

// UploadImage stores a salon image and records its public URL. The request
// is multipart: a "salonId" field plus an "image" file part.
func (h *SalonHandler) UploadImage(c echo.Context) error {
	salonID, err := uuid.Parse(c.FormValue("salonId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid or missing 'salonId' form field")
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Missing 'image' file part")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errors.Wrap(err, "failed to open uploaded image")
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	salon, err := h.uc.UploadSalonImage(c.Request().Context(), actorFrom(c), salonID, contentType, file)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, salon, "Salon image uploaded successfully")
}
