package attendance_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"go-attendance/internal/attendance"
	attendanceerrors "go-attendance/internal/attendance/errors"
	attendanceMock "go-attendance/internal/attendance/mock"
	"go-attendance/internal/events"
	"go-attendance/internal/messaging/kafka"
	kafkaMock "go-attendance/internal/messaging/kafka/mock"
	"go-attendance/internal/shared/apperror"
	"go-attendance/internal/shared/clock"
	"go-attendance/internal/shared/testdb"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	sqlMock sqlmock.Sqlmock
	service attendance.Service
	repo    *attendanceMock.MockRepository
	outbox  *kafkaMock.MockOutboxRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)
	db, sqlMock, _ := testdb.New(t)
	repo := attendanceMock.NewMockRepository(ctrl)
	outbox := kafkaMock.NewMockOutboxRepository(ctrl)

	return &serviceDeps{
		sqlMock: sqlMock,
		service: attendance.NewServiceWithOutbox(db, repo, outbox, clock.Fixed(fixedNow)),
		repo:    repo,
		outbox:  outbox,
	}
}

func validRequest(employeeID string) attendance.AttendanceRequest {
	return attendance.AttendanceRequest{
		Employee: strPtr(employeeID),
		Date:     strPtr("2026-05-10"),
		Status:   strPtr(attendance.StatusPresent),
	}
}

func TestAttendanceService_Create(t *testing.T) {
	empID := uuid.New()
	ref := &attendance.EmployeeRef{ID: empID, Code: "EMP-000001", FullName: "Jane Doe"}

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().FindEmployee(gomock.Any(), empID.String()).Return(ref, nil)
		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, ev kafka.OutboxEvent) error {
				assert.Equal(t, events.AttendanceRecordsTopic, ev.Topic)
				var payload events.AttendanceMarkedEvent
				assert.NoError(t, json.Unmarshal(ev.Payload, &payload))
				assert.Equal(t, "2026-05-10", payload.Date)
				assert.Equal(t, attendance.StatusPresent, payload.Status)
				return nil
			})
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.Create(context.Background(), validRequest(empID.String()))

		assert.NoError(t, err)
		assert.Equal(t, empID.String(), resp.Employee)
		assert.Equal(t, "Jane Doe", resp.EmployeeName)
		assert.Equal(t, "2026-05-10", resp.Date)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	constraintCases := []struct {
		name string
		err  error
	}{
		{"duplicate employee and date", &pgconn.PgError{Code: "23505", ConstraintName: "uq_attendance_employee_date"}},
		{"employee vanished", &pgconn.PgError{Code: "23503", ConstraintName: "fk_attendances_employee"}},
		{"driver message only", errors.New(`ERROR: duplicate key value violates unique constraint "uq_attendance_employee_date"`)},
	}
	for _, tc := range constraintCases {
		t.Run(tc.name, func(t *testing.T) {
			deps := setupServiceTest(t)

			deps.repo.EXPECT().FindEmployee(gomock.Any(), empID.String()).Return(ref, nil)
			deps.sqlMock.ExpectBegin()
			deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
			deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(tc.err)
			deps.sqlMock.ExpectRollback()

			_, err := deps.service.Create(context.Background(), validRequest(empID.String()))

			assert.ErrorIs(t, err, attendanceerrors.ErrAttendanceConflict)
			httpErr := apperror.ToHTTP(err)
			assert.Equal(t, http.StatusBadRequest, httpErr.Status)
			assert.Equal(t, "Attendance for this employee on this date already exists or invalid data.", httpErr.Message)
		})
	}

	t.Run("unexpected storage failure stays 500", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().FindEmployee(gomock.Any(), empID.String()).Return(ref, nil)
		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("connection reset by peer"))
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Create(context.Background(), validRequest(empID.String()))

		assert.Equal(t, http.StatusInternalServerError, apperror.ToHTTP(err).Status)
	})

	t.Run("future date never reaches storage", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindEmployee(gomock.Any(), empID.String()).Return(ref, nil)

		req := validRequest(empID.String())
		req.Date = strPtr("2026-05-11")
		_, err := deps.service.Create(context.Background(), req)

		fe := fieldErrors(t, err)
		assert.Equal(t, []string{attendanceerrors.MsgFutureDate}, fe["date"])
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestAttendanceService_GetAll(t *testing.T) {
	t.Run("passes filters through", func(t *testing.T) {
		deps := setupServiceTest(t)
		empID := uuid.New()
		date := time.Date(2026, 5, 9, 0, 0, 0, 0, time.UTC)

		deps.repo.EXPECT().
			FindAll(gomock.Any(), attendance.ListFilter{Employee: empID.String(), Date: "2026-05-09"}).
			Return([]attendance.Attendance{{
				ID:         uuid.New(),
				EmployeeID: empID,
				Date:       date,
				Status:     attendance.StatusAbsent,
				Employee:   &attendance.EmployeeRef{ID: empID, FullName: "Budi"},
			}}, nil)

		resp, err := deps.service.GetAll(context.Background(), attendance.ListFilter{Employee: empID.String(), Date: "2026-05-09"})

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "Budi", resp[0].EmployeeName)
		assert.Equal(t, "2026-05-09", resp[0].Date)
	})

	t.Run("invalid filters", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.GetAll(context.Background(), attendance.ListFilter{Employee: "x", Date: "yesterday"})

		fe := fieldErrors(t, err)
		assert.True(t, fe.Has("employee"))
		assert.True(t, fe.Has("date"))
	})
}

func TestAttendanceService_Update(t *testing.T) {
	id := uuid.New()
	empID := uuid.New()
	existing := func() *attendance.Attendance {
		return &attendance.Attendance{
			ID:         id,
			EmployeeID: empID,
			Date:       time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
			Status:     attendance.StatusPresent,
			Employee:   &attendance.EmployeeRef{ID: empID, FullName: "Jane"},
		}
	}

	t.Run("patch status", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindByID(gomock.Any(), id.String()).Return(existing(), nil)
		deps.repo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, a *attendance.Attendance) error {
				assert.Equal(t, attendance.StatusAbsent, a.Status)
				return nil
			})

		resp, err := deps.service.Update(context.Background(), id.String(), attendance.AttendanceRequest{
			Status: strPtr(attendance.StatusAbsent),
		}, true)

		assert.NoError(t, err)
		assert.Equal(t, attendance.StatusAbsent, resp.Status)
		assert.Equal(t, "2026-05-01", resp.Date)
	})

	t.Run("moving onto a taken date", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindByID(gomock.Any(), id.String()).Return(existing(), nil)
		deps.repo.EXPECT().Update(gomock.Any(), gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_attendance_employee_date"})

		_, err := deps.service.Update(context.Background(), id.String(), attendance.AttendanceRequest{
			Date: strPtr("2026-05-02"),
		}, true)

		assert.ErrorIs(t, err, attendanceerrors.ErrAttendanceConflict)
	})

	t.Run("unknown id", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindByID(gomock.Any(), id.String()).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Update(context.Background(), id.String(), attendance.AttendanceRequest{}, true)

		assert.ErrorIs(t, err, attendanceerrors.ErrAttendanceNotFound)
	})
}

func TestAttendanceService_Delete(t *testing.T) {
	deps := setupServiceTest(t)
	id := uuid.New()

	deps.repo.EXPECT().Delete(gomock.Any(), id.String()).Return(gorm.ErrRecordNotFound)

	assert.ErrorIs(t, deps.service.Delete(context.Background(), id.String()), attendanceerrors.ErrAttendanceNotFound)
	assert.ErrorIs(t, deps.service.Delete(context.Background(), "not-a-uuid"), attendanceerrors.ErrAttendanceNotFound)
}

func TestAttendanceService_Export(t *testing.T) {
	deps := setupServiceTest(t)
	empID := uuid.New()

	deps.repo.EXPECT().FindAll(gomock.Any(), attendance.ListFilter{}).Return([]attendance.Attendance{{
		ID:         uuid.New(),
		EmployeeID: empID,
		Date:       time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC),
		Status:     attendance.StatusPresent,
		Employee:   &attendance.EmployeeRef{ID: empID, Code: "EMP-000003", FullName: "Siti"},
	}}, nil)

	buf, filename, err := deps.service.Export(context.Background(), attendance.ListFilter{})

	assert.NoError(t, err)
	assert.Equal(t, "attendance_20260510.xlsx", filename)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	assert.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Attendance")
	assert.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Date", "Employee Id", "Employee Name", "Status"},
		{"2026-05-10", "EMP-000003", "Siti", "Present"},
	}, rows)
}

func TestAttendanceService_ReadPathsCarryEmployeeName(t *testing.T) {
	newService := func(t *testing.T) (attendance.Service, sqlmock.Sqlmock) {
		db, mock, _ := testdb.New(t)
		return attendance.NewService(db, attendance.NewRepository(db), clock.Fixed(fixedNow)), mock
	}
	id := uuid.New()
	empID := uuid.New()
	attendanceRows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "employee_id", "date", "status"}).
			AddRow(id.String(), empID.String(), time.Date(2026, 5, 9, 0, 0, 0, 0, time.UTC), attendance.StatusPresent)
	}
	employeeRows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "employee_id", "full_name"}).
			AddRow(empID.String(), "EMP-000002", "Siti Aminah")
	}

	t.Run("list", func(t *testing.T) {
		svc, mock := newService(t)
		mock.ExpectQuery(`SELECT \* FROM "attendances" ORDER BY date DESC, created_at DESC`).
			WillReturnRows(attendanceRows())
		mock.ExpectQuery(`SELECT \* FROM "employees" WHERE "employees"."id" = \$1$`).
			WithArgs(empID.String()).
			WillReturnRows(employeeRows())

		resp, err := svc.GetAll(context.Background(), attendance.ListFilter{})

		assert.NoError(t, err)
		if assert.Len(t, resp, 1) {
			assert.Equal(t, "Siti Aminah", resp[0].EmployeeName)
			assert.Equal(t, empID.String(), resp[0].Employee)
		}
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("get by id", func(t *testing.T) {
		svc, mock := newService(t)
		mock.ExpectQuery(`SELECT \* FROM "attendances" WHERE id = \$1`).
			WillReturnRows(attendanceRows())
		mock.ExpectQuery(`SELECT \* FROM "employees" WHERE "employees"."id" = \$1$`).
			WithArgs(empID.String()).
			WillReturnRows(employeeRows())

		resp, err := svc.GetByID(context.Background(), id.String())

		assert.NoError(t, err)
		assert.Equal(t, "Siti Aminah", resp.EmployeeName)
		assert.Equal(t, "2026-05-09", resp.Date)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("get by id not found", func(t *testing.T) {
		svc, mock := newService(t)
		mock.ExpectQuery(`SELECT \* FROM "attendances" WHERE id = \$1`).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := svc.GetByID(context.Background(), id.String())

		assert.ErrorIs(t, err, attendanceerrors.ErrAttendanceNotFound)
	})

	t.Run("malformed id is not found", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.GetByID(context.Background(), "not-a-uuid")

		assert.ErrorIs(t, err, attendanceerrors.ErrAttendanceNotFound)
	})
}
