package employee_test

import (
	"context"
	"errors"
	"testing"

	"go-attendance/internal/employee"
	employeeerrors "go-attendance/internal/employee/errors"
	employeeMock "go-attendance/internal/employee/mock"
	"go-attendance/internal/shared/apperror"
	"go-attendance/internal/shared/validation"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func strPtr(s string) *string { return &s }

func fieldErrors(t *testing.T, err error) apperror.FieldErrors {
	t.Helper()
	var fe apperror.FieldErrors
	if !errors.As(err, &fe) {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
	return fe
}

func TestValidator_Format(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		req   employee.EmployeeRequest
		field string
		msg   string
	}{
		{
			name:  "full name with digits",
			req:   employee.EmployeeRequest{FullName: strPtr("John 3"), Email: strPtr("j@example.com")},
			field: "full_name",
			msg:   validation.MsgFullName,
		},
		{
			name:  "full name with punctuation",
			req:   employee.EmployeeRequest{FullName: strPtr("O'Brien"), Email: strPtr("o@example.com")},
			field: "full_name",
			msg:   validation.MsgFullName,
		},
		{
			name:  "mobile too short",
			req:   employee.EmployeeRequest{FullName: strPtr("Jane Doe"), Email: strPtr("jane@example.com"), MobileNumber: strPtr("12345")},
			field: "mobile_number",
			msg:   validation.MsgMobile,
		},
		{
			name:  "mobile with letters",
			req:   employee.EmployeeRequest{FullName: strPtr("Jane Doe"), Email: strPtr("jane@example.com"), MobileNumber: strPtr("12345abcde")},
			field: "mobile_number",
			msg:   validation.MsgMobile,
		},
		{
			name:  "missing email",
			req:   employee.EmployeeRequest{FullName: strPtr("Jane Doe")},
			field: "email",
			msg:   validation.MsgRequired,
		},
		{
			name:  "blank full name",
			req:   employee.EmployeeRequest{FullName: strPtr("   "), Email: strPtr("jane@example.com")},
			field: "full_name",
			msg:   validation.MsgBlank,
		},
		{
			name:  "bad email",
			req:   employee.EmployeeRequest{FullName: strPtr("Jane Doe"), Email: strPtr("not-an-email")},
			field: "email",
			msg:   validation.MsgEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			// repo tanpa EXPECT: uniqueness tidak boleh jalan kalau format gagal
			v := employee.NewValidator(employeeMock.NewMockRepository(ctrl))

			req := tt.req
			fe := fieldErrors(t, v.Validate(ctx, &req, employee.ModeCreate, ""))
			assert.Equal(t, []string{tt.msg}, fe[tt.field])
		})
	}
}

func TestValidator_Uniqueness(t *testing.T) {
	ctx := context.Background()

	t.Run("collects every duplicate field", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := employeeMock.NewMockRepository(ctrl)
		v := employee.NewValidator(repo)

		repo.EXPECT().ExistsByEmployeeID(gomock.Any(), "EMP-1", "").Return(true, nil)
		repo.EXPECT().ExistsByEmail(gomock.Any(), "taken@example.com", "").Return(true, nil)
		repo.EXPECT().ExistsByMobileNumber(gomock.Any(), "0123456789", "").Return(false, nil)

		req := employee.EmployeeRequest{
			EmployeeID:   strPtr("EMP-1"),
			FullName:     strPtr("Jane Doe"),
			Email:        strPtr("taken@example.com"),
			MobileNumber: strPtr("0123456789"),
		}
		fe := fieldErrors(t, v.Validate(ctx, &req, employee.ModeCreate, ""))

		assert.Equal(t, []string{employeeerrors.MsgEmployeeIDTaken}, fe["employee_id"])
		assert.Equal(t, []string{employeeerrors.MsgEmailTaken}, fe["email"])
		assert.False(t, fe.Has("mobile_number"))
	})

	t.Run("self update keeps own email", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := employeeMock.NewMockRepository(ctrl)
		v := employee.NewValidator(repo)
		selfID := "9b2f7c1e-4a53-4c1b-a6d0-1f1f5e4c2a10"

		repo.EXPECT().ExistsByEmployeeID(gomock.Any(), "EMP-7", selfID).Return(false, nil)
		repo.EXPECT().ExistsByEmail(gomock.Any(), "me@example.com", selfID).Return(false, nil)

		req := employee.EmployeeRequest{
			EmployeeID: strPtr("EMP-7"),
			FullName:   strPtr("Me Myself"),
			Email:      strPtr("me@example.com"),
		}
		assert.NoError(t, v.Validate(ctx, &req, employee.ModeReplace, selfID))
	})

	t.Run("empty mobile is not checked", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := employeeMock.NewMockRepository(ctrl)
		v := employee.NewValidator(repo)

		repo.EXPECT().ExistsByEmail(gomock.Any(), "a@example.com", "").Return(false, nil)

		req := employee.EmployeeRequest{
			FullName:     strPtr("Ann"),
			Email:        strPtr(" a@example.com "),
			MobileNumber: strPtr(""),
		}
		assert.NoError(t, v.Validate(ctx, &req, employee.ModeCreate, ""))
		assert.Equal(t, "a@example.com", *req.Email)
	})

	t.Run("partial only checks present fields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := employeeMock.NewMockRepository(ctrl)
		v := employee.NewValidator(repo)

		repo.EXPECT().ExistsByMobileNumber(gomock.Any(), "9876543210", "self").Return(true, nil)

		req := employee.EmployeeRequest{MobileNumber: strPtr("9876543210")}
		fe := fieldErrors(t, v.Validate(ctx, &req, employee.ModePartial, "self"))
		assert.Equal(t, []string{employeeerrors.MsgMobileNumberTaken}, fe["mobile_number"])
	})

	t.Run("repository failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := employeeMock.NewMockRepository(ctrl)
		v := employee.NewValidator(repo)
		dbErr := errors.New("db down")

		repo.EXPECT().ExistsByEmail(gomock.Any(), "a@example.com", "").Return(false, dbErr)

		req := employee.EmployeeRequest{FullName: strPtr("Ann"), Email: strPtr("a@example.com")}
		assert.ErrorIs(t, v.Validate(ctx, &req, employee.ModeCreate, ""), dbErr)
	})
}
