package apperror

import "net/http"

// Generic errors shared by every feature. Feature sentinels live in
// internal/<feature>/errors.
var (
	ErrNotFound      = New(CodeNotFound, "Resource not found", http.StatusNotFound)
	ErrInternal      = New(CodeInternalError, "Internal server error", http.StatusInternalServerError)
	ErrInvalidInput  = New(CodeInvalidInput, "The provided input is invalid", http.StatusBadRequest)
	ErrMalformedBody = New(CodeInvalidInput, "Request body must be a valid JSON object", http.StatusBadRequest)
)
