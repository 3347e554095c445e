package employee

import (
	"time"

	"github.com/google/uuid"
)

type Employee struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	EmployeeID   string    `gorm:"column:employee_id;size:50;not null;uniqueIndex:uq_employees_employee_id"`
	FullName     string    `gorm:"column:full_name;size:100;not null"`
	Email        string    `gorm:"column:email;size:254;not null;uniqueIndex:uq_employees_email"`
	MobileNumber *string   `gorm:"column:mobile_number;size:10;uniqueIndex:uq_employees_mobile_number"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}
