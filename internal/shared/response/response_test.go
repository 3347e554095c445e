package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-attendance/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

func TestFromError_FieldErrors(t *testing.T) {
	c, w := newContext()
	fe := apperror.FieldErrors{}
	fe.Add("email", "This Email is already in use.")

	httpErr := FromError(c, fe)

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"email":["This Email is already in use."]}`, w.Body.String())
}

func TestFromError_AppError(t *testing.T) {
	c, w := newContext()

	FromError(c, apperror.ErrNotFound)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Resource not found"}`, w.Body.String())
}

func TestFromError_Unknown(t *testing.T) {
	c, w := newContext()

	FromError(c, errors.New("db down"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
}

func TestNoContent(t *testing.T) {
	c, w := newContext()

	NoContent(c)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}
