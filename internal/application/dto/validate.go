package dto

import (
	"fmt"

	"github.com/jhoicas/Invoicing-api/internal/domain"
	"github.com/jhoicas/Invoicing-api/pkg/validation"
)

var validator = validation.New()

// Validate runs the struct rules of a request DTO. Failures wrap both
// domain.ErrInvalidInput and validation.Errors.
func Validate(in interface{}) error {
	if err := validator.Struct(in); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return nil
}
