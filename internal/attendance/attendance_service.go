package attendance

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	attendanceerrors "go-attendance/internal/attendance/errors"
	"go-attendance/internal/events"
	"go-attendance/internal/messaging/kafka"
	"go-attendance/internal/shared/apperror"
	"go-attendance/internal/shared/clock"
	"go-attendance/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req AttendanceRequest) (AttendanceResponse, error)
	GetAll(ctx context.Context, filter ListFilter) ([]AttendanceResponse, error)
	GetByID(ctx context.Context, id string) (AttendanceResponse, error)
	Update(ctx context.Context, id string, req AttendanceRequest, partial bool) (AttendanceResponse, error)
	Delete(ctx context.Context, id string) error
	Export(ctx context.Context, filter ListFilter) (*bytes.Buffer, string, error)
}

type service struct {
	db        *gorm.DB
	repo      Repository
	validator *Validator
	outbox    kafka.OutboxRepository
	clock     clock.Clock
	logger    *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, clk clock.Clock, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, clk, logger...)
}

func NewServiceWithOutbox(
	db *gorm.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	clk clock.Clock,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	if clk == nil {
		clk = clock.System(time.Local)
	}
	return &service{
		db:        db,
		repo:      repo,
		validator: NewValidator(repo, clk),
		outbox:    outboxRepo,
		clock:     clk,
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, req AttendanceRequest) (AttendanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create attendance requested", zap.String("request_id", rid))

	in, err := s.validator.Validate(ctx, req, false)
	if err != nil {
		s.logger.Warn("create attendance validation failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, err
	}

	row := &Attendance{
		ID:         uuid.New(),
		EmployeeID: in.Employee.ID,
		Date:       *in.Date,
		Status:     *in.Status,
		Employee:   in.Employee,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, row); err != nil {
			return mapRepositoryError(err)
		}
		return s.enqueueMarkedEvent(ctx, tx, *row)
	})
	if err != nil {
		s.logPersistError("create attendance persist failed", rid, err)
		return AttendanceResponse{}, err
	}

	s.logger.Info("create attendance success",
		zap.String("request_id", rid),
		zap.String("id", row.ID.String()),
		zap.String("employee", row.EmployeeID.String()),
		zap.String("date", row.Date.Format(clock.DateLayout)),
	)
	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context, filter ListFilter) ([]AttendanceResponse, error) {
	s.logger.Debug("get all attendance requested",
		zap.String("employee", filter.Employee),
		zap.String("date", filter.Date),
	)
	if err := validateFilter(&filter); err != nil {
		return nil, err
	}

	rows, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("get all attendance failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	res := make([]AttendanceResponse, 0, len(rows))
	for _, r := range rows {
		res = append(res, mapToResponse(r))
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (AttendanceResponse, error) {
	row, err := s.find(ctx, id)
	if err != nil {
		return AttendanceResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) Update(ctx context.Context, id string, req AttendanceRequest, partial bool) (AttendanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update attendance requested",
		zap.String("request_id", rid),
		zap.String("id", id),
		zap.Bool("partial", partial),
	)

	row, err := s.find(ctx, id)
	if err != nil {
		return AttendanceResponse{}, err
	}

	in, err := s.validator.Validate(ctx, req, partial)
	if err != nil {
		s.logger.Warn("update attendance validation failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, err
	}
	if in.Employee != nil {
		row.EmployeeID = in.Employee.ID
		row.Employee = in.Employee
	}
	if in.Date != nil {
		row.Date = *in.Date
	}
	if in.Status != nil {
		row.Status = *in.Status
	}

	if err := s.repo.Update(ctx, row); err != nil {
		mapped := mapRepositoryError(err)
		s.logPersistError("update attendance persist failed", rid, mapped)
		return AttendanceResponse{}, mapped
	}

	s.logger.Info("update attendance success", zap.String("request_id", rid), zap.String("id", id))
	return mapToResponse(*row), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	rid := contextutil.GetRequestID(ctx)
	if _, err := uuid.Parse(id); err != nil {
		return attendanceerrors.ErrAttendanceNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		mapped := mapRepositoryError(err)
		if mapped != attendanceerrors.ErrAttendanceNotFound {
			s.logger.Error("delete attendance failed", zap.String("request_id", rid), zap.Error(err))
		}
		return mapped
	}

	s.logger.Info("delete attendance success", zap.String("request_id", rid), zap.String("id", id))
	return nil
}

func (s *service) Export(ctx context.Context, filter ListFilter) (*bytes.Buffer, string, error) {
	if err := validateFilter(&filter); err != nil {
		return nil, "", err
	}

	rows, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("export attendance query failed", zap.Error(err))
		return nil, "", mapRepositoryError(err)
	}

	buf, err := buildWorkbook(rows)
	if err != nil {
		s.logger.Error("export attendance workbook failed", zap.Error(err))
		return nil, "", attendanceerrors.ErrExportFailed.WithCause(err)
	}

	filename := fmt.Sprintf("attendance_%s.xlsx", s.clock.Today().Format("20060102"))
	s.logger.Info("export attendance success", zap.Int("rows", len(rows)), zap.String("filename", filename))
	return buf, filename, nil
}

func (s *service) find(ctx context.Context, id string) (*Attendance, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, attendanceerrors.ErrAttendanceNotFound
	}
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		mapped := mapRepositoryError(err)
		if mapped != attendanceerrors.ErrAttendanceNotFound {
			s.logger.Error("find attendance failed", zap.String("id", id), zap.Error(err))
		}
		return nil, mapped
	}
	return row, nil
}

func (s *service) enqueueMarkedEvent(ctx context.Context, tx *gorm.DB, row Attendance) error {
	if s.outbox == nil {
		return nil
	}

	rid := contextutil.GetRequestID(ctx)
	event := events.AttendanceMarkedEvent{
		EventType:    events.AttendanceMarked,
		RequestID:    rid,
		AttendanceID: row.ID.String(),
		EmployeeID:   row.EmployeeID.String(),
		Date:         row.Date.Format(clock.DateLayout),
		Status:       row.Status,
		OccurredAt:   time.Now().UTC(),
	}
	outboxRow, err := kafka.NewOutboxEvent(rid, "attendance", row.ID.String(), event.EventType, events.AttendanceRecordsTopic, event)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, outboxRow)
}

// Conflicts are client errors; only unexpected failures are logged as errors.
func (s *service) logPersistError(msg, rid string, err error) {
	if errors.Is(err, attendanceerrors.ErrAttendanceConflict) {
		s.logger.Warn(msg, zap.String("request_id", rid), zap.Error(err))
		return
	}
	s.logger.Error(msg, zap.String("request_id", rid), zap.Error(err))
}

func validateFilter(filter *ListFilter) error {
	fe := apperror.FieldErrors{}
	if filter.Employee != "" {
		if _, err := uuid.Parse(filter.Employee); err != nil {
			fe.Add("employee", attendanceerrors.MsgInvalidEmployee)
		}
	}
	if filter.Date != "" {
		d, err := clock.ParseDate(filter.Date)
		if err != nil {
			fe.Add("date", attendanceerrors.MsgInvalidDate)
		} else {
			filter.Date = d.Format(clock.DateLayout)
		}
	}
	return fe.Err()
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:       a.ID.String(),
		Employee: a.EmployeeID.String(),
		Date:     a.Date.Format(clock.DateLayout),
		Status:   a.Status,
	}
	if a.Employee != nil {
		resp.EmployeeName = a.Employee.FullName
	}
	return resp
}
