package response

import (
	"net/http"

	"go-attendance/internal/shared/apperror"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the shape of every non-field error: {"error": "..."}.
type ErrorBody struct {
	Error string `json:"error"`
}

func Success(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
	c.Writer.WriteHeaderNow()
}

func Error(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorBody{Error: message})
}

// Fields writes validation failures keyed by field name.
func Fields(c *gin.Context, fe apperror.FieldErrors) {
	c.JSON(http.StatusBadRequest, fe)
}

// FromError renders any service error using apperror.ToHTTP and returns the
// classification so callers can log it.
func FromError(c *gin.Context, err error) apperror.HTTPError {
	httpErr := apperror.ToHTTP(err)
	if httpErr.Details != nil {
		Fields(c, httpErr.Details)
		return httpErr
	}
	Error(c, httpErr.Status, httpErr.Message)
	return httpErr
}
