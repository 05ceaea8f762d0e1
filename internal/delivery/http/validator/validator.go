// Package validator adapts go-playground/validator to echo's Validator
// interface.
package validator

import (
	playground "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// echoValidator wraps a validator instance for echo.
type echoValidator struct {
	validate *playground.Validate
}

// New creates the echo request validator.
func New() echo.Validator {
	return &echoValidator{
		validate: playground.New(playground.WithRequiredStructEnabled()),
	}
}

// Validate implements echo.Validator. Handlers call this after binding and
// turn the returned error into a 400 response.
func (v *echoValidator) Validate(i any) error {
	return v.validate.Struct(i)
}
