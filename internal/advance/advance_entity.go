package advance

import (
	"time"

	"github.com/google/uuid"
)

// Advance is a cash advance handed to an employee. It keeps reducing the
// employee's net salary every month until settled, regardless of when it
// was given.
type Advance struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_advance_employee_paid"`
	Date       time.Time `gorm:"type:date;not null"`
	Amount     int64     `gorm:"type:bigint;not null;check:amount > 0"`
	Reason     string    `gorm:"type:text"`
	IsPaid     bool      `gorm:"not null;default:false;index:idx_advance_employee_paid"`
	PaidDate   *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
