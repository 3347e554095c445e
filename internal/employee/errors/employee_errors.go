package employeeerrors

import (
	"go-attendance/internal/shared/apperror"
	"net/http"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
)

const (
	MsgEmployeeIDTaken   = "This Employee ID is already assigned to another user."
	MsgEmailTaken        = "This Email is already in use."
	MsgMobileNumberTaken = "This Mobile Number is already in use."
)
