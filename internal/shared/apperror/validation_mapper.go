package apperror

import (
	"errors"

	"go-attendance/internal/shared/validation"

	"github.com/go-playground/validator/v10"
)

// MapValidationError turns validator output into FieldErrors, keeping every
// failing field rather than only the first.
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		fe := FieldErrors{}
		for _, e := range errs {
			fe.Add(e.Field(), validation.Message(e))
		}
		return fe
	}

	return ErrInvalidInput
}
