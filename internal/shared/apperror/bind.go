package apperror

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// FromBindError converts a gin ShouldBind* failure. Wrong JSON types and
// binding tag failures become FieldErrors, everything else a malformed body.
func FromBindError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		fe := FieldErrors{}
		fe.Add(typeErr.Field, fmt.Sprintf("Incorrect type. Expected %s, but got %s.", typeErr.Type.String(), typeErr.Value))
		return fe
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return MapValidationError(verrs)
	}

	return ErrMalformedBody
}
