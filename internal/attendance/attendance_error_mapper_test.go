package attendance

import (
	"errors"
	"testing"

	attendanceerrors "go-attendance/internal/attendance/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMapRepositoryError(t *testing.T) {
	assert.Nil(t, mapRepositoryError(nil))
	assert.Equal(t, attendanceerrors.ErrAttendanceNotFound, mapRepositoryError(gorm.ErrRecordNotFound))
	assert.Equal(t, attendanceerrors.ErrAttendanceConflict, mapRepositoryError(&pgconn.PgError{Code: "23505"}))
	assert.Equal(t, attendanceerrors.ErrAttendanceConflict, mapRepositoryError(&pgconn.PgError{Code: "23503"}))
	assert.Equal(t, attendanceerrors.ErrAttendanceConflict,
		mapRepositoryError(errors.New(`insert or update on table "attendances" violates foreign key constraint "fk_attendances_employee"`)))

	checkErr := &pgconn.PgError{Code: "23514"}
	assert.Equal(t, error(checkErr), mapRepositoryError(checkErr))
}

func TestFormatHeader(t *testing.T) {
	assert.Equal(t, "Employee Name", formatHeader("employee_name"))
	assert.Equal(t, "Date", formatHeader("date"))
}
