package sanction

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeLate       = "late"
	TypeAbsence    = "absence"
	TypeMisconduct = "misconduct"
	TypeOther      = "other"
)

// Sanction is a point-in-time disciplinary deduction. Unlike advances and
// debts it carries no paid flag: it is deducted from the payroll period its
// date falls into, once.
type Sanction struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_sanction_employee_date"`
	Date       time.Time `gorm:"type:date;not null;index:idx_sanction_employee_date"`
	Type       string    `gorm:"type:varchar(20);not null"`
	Amount     int64     `gorm:"type:bigint;not null;check:amount > 0"`
	Reason     string    `gorm:"type:text"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
