package employee

import (
	"context"
	"errors"
	"strings"

	employeeerrors "go-attendance/internal/employee/errors"
	"go-attendance/internal/shared/apperror"
	"go-attendance/internal/shared/validation"

	"github.com/go-playground/validator/v10"
)

type Mode int

const (
	ModeCreate Mode = iota
	ModeReplace
	ModePartial
)

// Validator runs the format pass and, only when it is clean, the
// uniqueness pass against the current store state.
type Validator struct {
	repo     Repository
	validate *validator.Validate
}

func NewValidator(repo Repository) *Validator {
	return &Validator{repo: repo, validate: validation.New()}
}

// Validate trims req in place. excludeID is the id of the record being
// updated ("" on create) so a record never collides with itself.
func (v *Validator) Validate(ctx context.Context, req *EmployeeRequest, mode Mode, excludeID string) error {
	normalize(req)

	required := mode != ModePartial
	fe := apperror.FieldErrors{}
	v.checkField(fe, "employee_id", req.EmployeeID, false, "max=50")
	v.checkField(fe, "full_name", req.FullName, required, "max=100,fullname")
	v.checkField(fe, "email", req.Email, required, "max=254,email")
	// mobile_number boleh kosong, artinya dikosongkan
	if req.MobileNumber != nil && *req.MobileNumber != "" {
		v.checkVar(fe, "mobile_number", *req.MobileNumber, "mobile")
	}
	if err := fe.Err(); err != nil {
		return err
	}

	return v.checkUniqueness(ctx, req, excludeID)
}

func (v *Validator) checkField(fe apperror.FieldErrors, field string, value *string, required bool, tag string) {
	if value == nil {
		if required {
			fe.Add(field, validation.MsgRequired)
		}
		return
	}
	if *value == "" {
		fe.Add(field, validation.MsgBlank)
		return
	}
	v.checkVar(fe, field, *value, tag)
}

func (v *Validator) checkVar(fe apperror.FieldErrors, field, value, tag string) {
	var verrs validator.ValidationErrors
	if errors.As(v.validate.Var(value, tag), &verrs) {
		for _, e := range verrs {
			fe.Add(field, validation.Message(e))
		}
	}
}

type uniquenessCheck struct {
	field   string
	value   *string
	exists  func(ctx context.Context, value, excludeID string) (bool, error)
	message string
}

func (v *Validator) checkUniqueness(ctx context.Context, req *EmployeeRequest, excludeID string) error {
	checks := []uniquenessCheck{
		{"employee_id", req.EmployeeID, v.repo.ExistsByEmployeeID, employeeerrors.MsgEmployeeIDTaken},
		{"email", req.Email, v.repo.ExistsByEmail, employeeerrors.MsgEmailTaken},
		{"mobile_number", req.MobileNumber, v.repo.ExistsByMobileNumber, employeeerrors.MsgMobileNumberTaken},
	}

	fe := apperror.FieldErrors{}
	for _, c := range checks {
		if c.value == nil || *c.value == "" {
			continue
		}
		taken, err := c.exists(ctx, *c.value, excludeID)
		if err != nil {
			return err
		}
		if taken {
			fe.Add(c.field, c.message)
		}
	}
	return fe.Err()
}

func normalize(req *EmployeeRequest) {
	for _, p := range []*string{req.EmployeeID, req.FullName, req.Email, req.MobileNumber} {
		if p != nil {
			*p = strings.TrimSpace(*p)
		}
	}
}
