package employee

import (
	"errors"
	"strings"

	employeeerrors "go-attendance/internal/employee/errors"
	"go-attendance/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// constraint name -> field + message. Duplicates that slip past the
// validator (two concurrent creates) come back with the same wording.
var uniqueConstraints = []struct {
	name    string
	field   string
	message string
}{
	{"uq_employees_employee_id", "employee_id", employeeerrors.MsgEmployeeIDTaken},
	{"uq_employees_email", "email", employeeerrors.MsgEmailTaken},
	{"uq_employees_mobile_number", "mobile_number", employeeerrors.MsgMobileNumberTaken},
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	constraint := ""
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		constraint = pgErr.ConstraintName
	} else {
		errMsg := strings.ToLower(err.Error())
		if strings.Contains(errMsg, "duplicate key value") {
			constraint = errMsg
		}
	}

	if constraint != "" {
		for _, uc := range uniqueConstraints {
			if strings.Contains(constraint, uc.name) {
				fe := apperror.FieldErrors{}
				fe.Add(uc.field, uc.message)
				return fe
			}
		}
	}

	return err
}
