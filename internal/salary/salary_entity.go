package salary

import (
	"time"

	"github.com/google/uuid"
)

// SalaryDetails is the frozen audit trail of a computation: the exact
// transaction ids whose amounts were summed into the record. It is a
// snapshot, not a live query: settling an advance later does not rewrite
// a salary that already absorbed it.
type SalaryDetails struct {
	AdvanceIDs  []string `json:"advance_ids"`
	SanctionIDs []string `json:"sanction_ids"`
	DebtIDs     []string `json:"debt_ids"`

	// CalcError is set when every sub-fetch failed and the record fell
	// back to base salary only, so the operator can spot it and fix it
	// by hand in the editor.
	CalcError string `json:"calc_error,omitempty"`
}

type Salary struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_salary_employee_period"`

	PaymentDate time.Time `gorm:"type:date"`
	PeriodStart time.Time `gorm:"type:date;not null;index:idx_salary_employee_period"`
	PeriodEnd   time.Time `gorm:"type:date;not null"`

	// Amounts in the smallest currency unit. The three deduction fields
	// are summed totals, not per-transaction lists; the ids live in
	// Details. NetSalary is signed: a negative value means the employee
	// owes the business this month.
	BaseSalary int64 `gorm:"type:bigint;not null;default:0"`
	Advances   int64 `gorm:"type:bigint;not null;default:0"`
	Sanctions  int64 `gorm:"type:bigint;not null;default:0"`
	Debts      int64 `gorm:"type:bigint;not null;default:0"`
	NetSalary  int64 `gorm:"type:bigint;not null;default:0"`

	IsPaid        bool `gorm:"not null;default:false"`
	PaidDate      *time.Time
	PaymentMethod string `gorm:"type:varchar(30)"`
	Notes         string `gorm:"type:text"`

	Details SalaryDetails `gorm:"serializer:json;type:jsonb"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
