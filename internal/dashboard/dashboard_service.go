package dashboard

import (
	"context"
	"time"

	"go-attendance/internal/attendance"
	"go-attendance/internal/shared/clock"

	"go.uber.org/zap"
)

//go:generate mockgen -source=dashboard_service.go -destination=mock/dashboard_service_mock.go -package=mock
type Service interface {
	Stats(ctx context.Context) (StatsResponse, error)
}

type service struct {
	repo   Repository
	clock  clock.Clock
	logger *zap.Logger
}

func NewService(repo Repository, clk clock.Clock, logger ...*zap.Logger) Service {
	l := zap.L().Named("dashboard.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dashboard.service")
	}
	if clk == nil {
		clk = clock.System(time.Local)
	}
	return &service{repo: repo, clock: clk, logger: l}
}

// Stats dihitung ulang setiap request, tidak di-cache.
func (s *service) Stats(ctx context.Context) (StatsResponse, error) {
	today := s.clock.Today().Format(clock.DateLayout)

	total, err := s.repo.CountEmployees(ctx)
	if err != nil {
		s.logger.Error("count employees failed", zap.Error(err))
		return StatsResponse{}, err
	}

	counts, err := s.repo.CountAttendanceByStatus(ctx, today)
	if err != nil {
		s.logger.Error("count attendance failed", zap.String("date", today), zap.Error(err))
		return StatsResponse{}, err
	}

	resp := StatsResponse{TotalEmployees: total}
	for _, c := range counts {
		switch c.Status {
		case attendance.StatusPresent:
			resp.PresentToday = c.Total
		case attendance.StatusAbsent:
			resp.AbsentToday = c.Total
		}
	}
	resp.Unmarked = max(0, total-resp.PresentToday-resp.AbsentToday)

	s.logger.Debug("dashboard stats computed",
		zap.String("date", today),
		zap.Int64("total", resp.TotalEmployees),
		zap.Int64("unmarked", resp.Unmarked),
	)
	return resp, nil
}
