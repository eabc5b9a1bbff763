// Package validator adapts go-playground/validator to echo's Validator hook.
package validator

import (
	"errors"
	"net/http"

	playground "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// requestValidator wraps a shared validator instance.
type requestValidator struct {
	validate *playground.Validate
}

// New builds the echo.Validator used by the API server.
func New() echo.Validator {
	return &requestValidator{validate: playground.New()}
}

// Validate runs struct validation and maps a failure to a 400 with the first
// offending field named.
func (v *requestValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs playground.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		first := fieldErrs[0]

		return echo.NewHTTPError(http.StatusBadRequest,
			"validation failed on field '"+first.Field()+"' ("+first.Tag()+")")
	}

	return echo.NewHTTPError(http.StatusBadRequest, err.Error())
}
