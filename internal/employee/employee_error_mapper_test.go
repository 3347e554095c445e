package employee

import (
	"errors"
	"testing"

	employeeerrors "go-attendance/internal/employee/errors"
	"go-attendance/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMapRepositoryError(t *testing.T) {
	assert.Nil(t, mapRepositoryError(nil))
	assert.ErrorIs(t, mapRepositoryError(gorm.ErrRecordNotFound), employeeerrors.ErrEmployeeNotFound)

	t.Run("pg unique violation", func(t *testing.T) {
		err := mapRepositoryError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_employees_email"})

		var fe apperror.FieldErrors
		assert.True(t, errors.As(err, &fe))
		assert.Equal(t, []string{employeeerrors.MsgEmailTaken}, fe["email"])
	})

	t.Run("message fallback", func(t *testing.T) {
		err := mapRepositoryError(errors.New(`ERROR: duplicate key value violates unique constraint "uq_employees_mobile_number"`))

		var fe apperror.FieldErrors
		assert.True(t, errors.As(err, &fe))
		assert.Equal(t, []string{employeeerrors.MsgMobileNumberTaken}, fe["mobile_number"])
	})

	t.Run("other errors pass through", func(t *testing.T) {
		raw := errors.New("connection reset")
		assert.Equal(t, raw, mapRepositoryError(raw))
	})
}
