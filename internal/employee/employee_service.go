package employee

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	employeeerrors "go-attendance/internal/employee/errors"
	"go-attendance/internal/events"
	"go-attendance/internal/messaging/kafka"
	"go-attendance/internal/shared/apperror"
	"go-attendance/internal/shared/contextutil"
	"go-attendance/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	EmployeeOptionsKey = "employees:options"
	optionsCacheTTL    = time.Hour

	employeeIDCounter   = "employee_id"
	// nomor hasil generate bisa bentrok dengan employee_id yang diisi manual
	maxGenerateAttempts = 3
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req EmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context) ([]EmployeeOptionResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req EmployeeRequest, partial bool) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db        *gorm.DB
	repo      Repository
	validator *Validator
	counter   counter.Repository
	outbox    kafka.OutboxRepository
	rdb       *redis.Client
	sf        *singleflight.Group
	logger    *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, counter counter.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, counter, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *gorm.DB,
	repo Repository,
	counter counter.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		validator: NewValidator(repo),
		counter:   counter,
		outbox:    outboxRepo,
		rdb:       rdb,
		sf:        &singleflight.Group{},
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, req EmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested", zap.String("request_id", rid))

	if err := s.validator.Validate(ctx, &req, ModeCreate, ""); err != nil {
		s.logger.Warn("create employee validation failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	empl := &Employee{
		ID:           uuid.New(),
		FullName:     *req.FullName,
		Email:        *req.Email,
		MobileNumber: nullableMobile(req.MobileNumber),
	}
	generated := req.EmployeeID == nil
	if !generated {
		empl.EmployeeID = *req.EmployeeID
	}

	var err error
	for attempt := 1; ; attempt++ {
		if generated {
			nextVal, cerr := s.counter.GetNextValue(ctx, employeeIDCounter)
			if cerr != nil {
				s.logger.Error("create employee generate number failed", zap.String("request_id", rid), zap.Error(cerr))
				return EmployeeResponse{}, cerr
			}
			empl.EmployeeID = fmt.Sprintf("EMP-%06d", nextVal)
		}

		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := s.repo.WithTx(tx).Create(ctx, empl); err != nil {
				return mapRepositoryError(err)
			}
			return s.enqueueLifecycleEvent(ctx, tx, events.EmployeeCreated, *empl)
		})
		if err == nil || !generated || attempt >= maxGenerateAttempts || !isEmployeeIDTaken(err) {
			break
		}
		s.logger.Warn("generated employee id already taken, retrying",
			zap.String("request_id", rid),
			zap.String("employee_id", empl.EmployeeID),
			zap.Int("attempt", attempt),
		)
	}
	if err != nil {
		s.logger.Error("create employee persist failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx)
	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("id", empl.ID.String()),
		zap.String("employee_id", empl.EmployeeID),
	)

	return mapToResponse(*empl), nil
}

func isEmployeeIDTaken(err error) bool {
	var fe apperror.FieldErrors
	return errors.As(err, &fe) && fe.Has("employee_id")
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	s.logger.Debug("get all employees requested")
	empls, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(empls), nil
}

func (s *service) GetOptions(ctx context.Context) ([]EmployeeOptionResponse, error) {
	// 1. Cek Redis
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, EmployeeOptionsKey).Result(); err == nil {
			var resp []EmployeeOptionResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// 2. Singleflight supaya cache miss tidak menghantam DB berkali-kali
	v, err, _ := s.sf.Do(EmployeeOptionsKey, func() (interface{}, error) {
		empls, err := s.repo.FindOptions(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := make([]EmployeeOptionResponse, 0, len(empls))
		for _, e := range empls {
			resp = append(resp, EmployeeOptionResponse{
				ID:         e.ID.String(),
				EmployeeID: e.EmployeeID,
				FullName:   e.FullName,
			})
		}

		// 3. Simpan ke Redis (TTL 1 jam cukup karena data master)
		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, EmployeeOptionsKey, jsonData, optionsCacheTTL).Err(); err != nil {
					s.logger.Warn("cache employee options failed", zap.Error(err))
				}
			}
		}

		return resp, nil
	})
	if err != nil {
		s.logger.Error("get employee options failed", zap.Error(err))
		return nil, err
	}

	return v.([]EmployeeOptionResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	s.logger.Debug("get employee by id requested", zap.String("id", id))
	empl, err := s.find(ctx, id)
	if err != nil {
		return EmployeeResponse{}, err
	}

	return mapToResponse(*empl), nil
}

func (s *service) Update(ctx context.Context, id string, req EmployeeRequest, partial bool) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update employee requested",
		zap.String("request_id", rid),
		zap.String("id", id),
		zap.Bool("partial", partial),
	)

	empl, err := s.find(ctx, id)
	if err != nil {
		return EmployeeResponse{}, err
	}

	mode := ModeReplace
	if partial {
		mode = ModePartial
	}
	if err := s.validator.Validate(ctx, &req, mode, empl.ID.String()); err != nil {
		s.logger.Warn("update employee validation failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	applyRequest(empl, req, partial)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Update(ctx, empl); err != nil {
			return mapRepositoryError(err)
		}
		return s.enqueueLifecycleEvent(ctx, tx, events.EmployeeUpdated, *empl)
	})
	if err != nil {
		s.logger.Error("update employee persist failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx)
	s.logger.Info("update employee success", zap.String("request_id", rid), zap.String("id", id))

	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete employee requested", zap.String("request_id", rid), zap.String("id", id))

	empl, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	// attendance ikut terhapus lewat ON DELETE CASCADE
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Delete(ctx, id); err != nil {
			return mapRepositoryError(err)
		}
		return s.enqueueLifecycleEvent(ctx, tx, events.EmployeeDeleted, *empl)
	})
	if err != nil {
		s.logger.Error("delete employee failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	s.invalidateOptionsCache(ctx)
	s.logger.Info("delete employee success", zap.String("request_id", rid), zap.String("id", id))
	return nil
}

// find treats a malformed id as unknown instead of letting postgres
// reject the uuid cast.
func (s *service) find(ctx context.Context, id string) (*Employee, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, employeeerrors.ErrEmployeeNotFound
	}
	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		mapped := mapRepositoryError(err)
		if mapped != employeeerrors.ErrEmployeeNotFound {
			s.logger.Error("find employee failed", zap.String("id", id), zap.Error(err))
		}
		return nil, mapped
	}
	return empl, nil
}

func (s *service) enqueueLifecycleEvent(ctx context.Context, tx *gorm.DB, eventType string, empl Employee) error {
	if s.outbox == nil {
		return nil
	}

	rid := contextutil.GetRequestID(ctx)
	event := events.EmployeeLifecycleEvent{
		EventType:  eventType,
		RequestID:  rid,
		ID:         empl.ID.String(),
		EmployeeID: empl.EmployeeID,
		FullName:   empl.FullName,
		Email:      empl.Email,
		OccurredAt: time.Now().UTC(),
	}
	row, err := kafka.NewOutboxEvent(rid, "employee", empl.ID.String(), eventType, events.EmployeeLifecycleTopic, event)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, row)
}

func (s *service) invalidateOptionsCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, EmployeeOptionsKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", EmployeeOptionsKey),
		)
	}
}

func applyRequest(empl *Employee, req EmployeeRequest, partial bool) {
	if req.EmployeeID != nil {
		empl.EmployeeID = *req.EmployeeID
	}
	if req.FullName != nil {
		empl.FullName = *req.FullName
	}
	if req.Email != nil {
		empl.Email = *req.Email
	}
	// PUT tanpa mobile_number berarti nomor dihapus
	if req.MobileNumber != nil || !partial {
		empl.MobileNumber = nullableMobile(req.MobileNumber)
	}
}

func nullableMobile(v *string) *string {
	if v == nil || *v == "" {
		return nil
	}
	m := *v
	return &m
}

func mapToResponse(empl Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:           empl.ID.String(),
		EmployeeID:   empl.EmployeeID,
		FullName:     empl.FullName,
		Email:        empl.Email,
		MobileNumber: empl.MobileNumber,
	}
	if !empl.CreatedAt.IsZero() {
		resp.CreatedAt = empl.CreatedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, 0, len(empls))
	for _, e := range empls {
		res = append(res, mapToResponse(e))
	}
	return res
}
