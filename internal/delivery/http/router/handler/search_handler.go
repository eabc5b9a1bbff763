package handler

import (
	"net/http"
	"strconv"

	"lamsa/internal/delivery/http/response"
	"lamsa/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SearchHandler holds dependencies for the salon search handler.
type SearchHandler struct {
	uc usecase.SearchUsecase
}

// NewSearchHandler is the constructor for SearchHandler, injected by Fx.
func NewSearchHandler(uc usecase.SearchUsecase) *SearchHandler {
	return &SearchHandler{uc: uc}
}

// Search runs a free-text salon search with filters and pagination.
func (h *SearchHandler) Search(c echo.Context) error {
	input := &usecase.SearchInput{
		Query:           c.QueryParam("q"),
		ServiceCategory: c.QueryParam("serviceType"),
		LadiesOnly:      queryBool(c, "ladiesOnly"),
		PrivateRoom:     queryBool(c, "privateRoom"),
		HijabFriendly:   queryBool(c, "hijabFriendly"),
		City:            c.QueryParam("city"),
		SortBy:          c.QueryParam("sortBy"),
		SortOrder:       c.QueryParam("sortOrder"),
	}

	if raw := c.QueryParam("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid 'page' query parameter")
		}
		input.Page = page
	}
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid 'limit' query parameter")
		}
		input.Limit = limit
	}

	result, err := h.uc.SearchSalons(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, result, "Search completed successfully")
}
