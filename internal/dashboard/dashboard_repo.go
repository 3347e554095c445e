package dashboard

import (
	"context"

	"gorm.io/gorm"
)

// StatusCount is one row of the per-status attendance tally.
type StatusCount struct {
	Status string `gorm:"column:status"`
	Total  int64  `gorm:"column:total"`
}

//go:generate mockgen -source=dashboard_repo.go -destination=mock/dashboard_repo_mock.go -package=mock
type Repository interface {
	CountEmployees(ctx context.Context) (int64, error)
	CountAttendanceByStatus(ctx context.Context, date string) ([]StatusCount, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CountEmployees(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Table("employees").Count(&total).Error
	return total, err
}

func (r *repository) CountAttendanceByStatus(ctx context.Context, date string) ([]StatusCount, error) {
	var rows []StatusCount
	err := r.db.WithContext(ctx).
		Table("attendances").
		Select("status, COUNT(*) AS total").
		Where("date = ?", date).
		Group("status").
		Scan(&rows).Error
	return rows, err
}
