package apperror

import (
	"errors"
	"net/http"
)

type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details FieldErrors
}

// ToHTTP classifies err for the transport layer. Anything that is neither an
// AppError nor FieldErrors is reported as a generic 500.
func ToHTTP(err error) HTTPError {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return HTTPError{
			Status:  http.StatusBadRequest,
			Code:    CodeValidation,
			Message: "Validation failed",
			Details: fe,
		}
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: appErr.Message,
		}
	}

	return HTTPError{
		Status:  ErrInternal.HTTPStatus,
		Code:    ErrInternal.Code,
		Message: ErrInternal.Message,
	}
}
