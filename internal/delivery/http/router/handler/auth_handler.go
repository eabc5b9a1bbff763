package handler

import (
	"net/http"

	deliverycontext "lamsa/internal/delivery/context"
	"lamsa/internal/delivery/http/response"
	"lamsa/internal/domain/entity"
	"lamsa/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for authentication handlers.
type AuthHandler struct {
	uc usecase.AuthUsecase
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

type registerRequest struct {
	Username          string `json:"username" validate:"required,min=3,max=50"`
	Email             string `json:"email" validate:"required,email"`
	Password          string `json:"password" validate:"required,min=8"`
	FullName          string `json:"fullName" validate:"required"`
	Phone             string `json:"phone"`
	Role              string `json:"role" validate:"omitempty,oneof=customer salon_owner"`
	PreferredLanguage string `json:"preferredLanguage" validate:"omitempty,oneof=en ar"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// tokenPairResponse is the wire shape of an issued token pair.
type tokenPairResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         *entity.User `json:"user"`
}

// Register handles the account registration request.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	input := &usecase.RegisterInput{
		Username:          req.Username,
		Email:             req.Email,
		Password:          req.Password,
		FullName:          req.FullName,
		Phone:             req.Phone,
		Role:              entity.Role(req.Role),
		PreferredLanguage: entity.Language(req.PreferredLanguage),
	}

	user, err := h.uc.Register(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, user, "Account registered successfully")
}

// Login handles the login request.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, tokenPairResponse{
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
		User:         output.User,
	}, "Login successful")
}

// Refresh handles the token rotation request.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid refresh token input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, tokenPairResponse{
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
		User:         output.User,
	}, "Token refreshed successfully")
}

// Session returns the account behind the presented access token.
func (h *AuthHandler) Session(c echo.Context) error {
	user, err := h.uc.Session(c.Request().Context(), deliverycontext.GetUserID(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "Session retrieved successfully")
}

// Logout revokes every refresh token of the caller.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.uc.Logout(c.Request().Context(), deliverycontext.GetUserID(c)); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Logout successful")
}
