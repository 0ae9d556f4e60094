package employee

import (
	"time"

	"github.com/google/uuid"
)

type Employee struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeCode string    `gorm:"type:varchar(20);uniqueIndex:uq_employee_code"`
	FullName     string    `gorm:"type:varchar(120);not null"`
	Position     string    `gorm:"type:varchar(80)"`
	Phone        string    `gorm:"type:varchar(30)"`
	Email        string    `gorm:"type:varchar(120)"`

	// Stored in the smallest currency unit to avoid floating point error.
	BaseSalary int64 `gorm:"type:bigint;not null;default:0;check:base_salary >= 0"`

	HireDate  time.Time `gorm:"type:date"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
