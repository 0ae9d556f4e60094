package debt

import (
	"time"

	"github.com/google/uuid"
)

// Debt is money an employee owes the business on behalf of a client (an
// unpaid tab, a billing shortfall). Like advances it is deducted from net
// salary until settled, with no date scoping.
type Debt struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;not null;index:idx_debt_employee_paid"`
	ClientName  string    `gorm:"type:varchar(120);not null"`
	Date        time.Time `gorm:"type:date;not null"`
	Amount      int64     `gorm:"type:bigint;not null;check:amount > 0"`
	Description string    `gorm:"type:text"`
	IsPaid      bool      `gorm:"not null;default:false;index:idx_debt_employee_paid"`
	PaidDate    *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
