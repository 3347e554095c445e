package attendance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	attendanceerrors "go-attendance/internal/attendance/errors"
	"go-attendance/internal/shared/apperror"
	"go-attendance/internal/shared/clock"
	"go-attendance/internal/shared/validation"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Input is a request that passed validation. Nil fields were absent from
// a partial update.
type Input struct {
	Employee *EmployeeRef
	Date     *time.Time
	Status   *string
}

type Validator struct {
	repo     Repository
	validate *validator.Validate
	clock    clock.Clock
}

func NewValidator(repo Repository, clk clock.Clock) *Validator {
	return &Validator{repo: repo, validate: validation.New(), clock: clk}
}

// Validate checks every field and reports all failures together.
// Uniqueness of (employee, date) belongs to the unique constraint.
func (v *Validator) Validate(ctx context.Context, req AttendanceRequest, partial bool) (Input, error) {
	var in Input
	fe := apperror.FieldErrors{}

	if value, ok := present(fe, "employee", req.Employee, !partial); ok {
		ref, err := v.resolveEmployee(ctx, fe, value)
		if err != nil {
			return Input{}, err
		}
		in.Employee = ref
	}

	if value, ok := present(fe, "date", req.Date, !partial); ok {
		in.Date = v.checkDate(fe, value)
	}

	if value, ok := present(fe, "status", req.Status, !partial); ok {
		var verrs validator.ValidationErrors
		if errors.As(v.validate.Var(value, "oneof=Present Absent"), &verrs) {
			fe.Add("status", validation.Message(verrs[0]))
		} else {
			in.Status = &value
		}
	}

	if err := fe.Err(); err != nil {
		return Input{}, err
	}
	return in, nil
}

func (v *Validator) resolveEmployee(ctx context.Context, fe apperror.FieldErrors, id string) (*EmployeeRef, error) {
	if v.validate.Var(id, "uuid") != nil {
		fe.Add("employee", attendanceerrors.MsgInvalidEmployee)
		return nil, nil
	}

	ref, err := v.repo.FindEmployee(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		fe.Add("employee", fmt.Sprintf(attendanceerrors.MsgInvalidPK, id))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ref, nil
}

func (v *Validator) checkDate(fe apperror.FieldErrors, value string) *time.Time {
	date, err := clock.ParseDate(value)
	if err != nil {
		fe.Add("date", attendanceerrors.MsgInvalidDate)
		return nil
	}
	if date.After(v.clock.Today()) {
		fe.Add("date", attendanceerrors.MsgFutureDate)
		return nil
	}
	return &date
}

// present reports the trimmed value when the field carries one, recording
// required/blank errors otherwise.
func present(fe apperror.FieldErrors, field string, value *string, required bool) (string, bool) {
	if value == nil {
		if required {
			fe.Add(field, validation.MsgRequired)
		}
		return "", false
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		fe.Add(field, validation.MsgBlank)
		return "", false
	}
	return trimmed, true
}
