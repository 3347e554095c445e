package attendanceerrors

import (
	"go-attendance/internal/shared/apperror"
	"net/http"
)

var (
	ErrAttendanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"Attendance not found",
		http.StatusNotFound,
	)

	// ErrAttendanceConflict covers both a duplicate (employee, date) and a
	// dangling employee reference; the client gets one generic message.
	ErrAttendanceConflict = apperror.New(
		apperror.CodeConflict,
		"Attendance for this employee on this date already exists or invalid data.",
		http.StatusBadRequest,
	)

	ErrExportFailed = apperror.New(
		apperror.CodeInternalError,
		"Failed to generate attendance export",
		http.StatusInternalServerError,
	)
)

const (
	MsgFutureDate      = "Attendance cannot be marked for future dates."
	MsgInvalidDate     = "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."
	MsgInvalidPK       = "Invalid pk \"%s\" - object does not exist."
	MsgInvalidEmployee = "Must be a valid UUID."
)
