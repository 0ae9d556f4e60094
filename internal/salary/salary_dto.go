package salary

type UpdateSalaryRequest struct {
	BaseSalary    *int64 `json:"base_salary" binding:"required,min=0"`
	Advances      *int64 `json:"advances" binding:"required,min=0"`
	Sanctions     *int64 `json:"sanctions" binding:"required,min=0"`
	Debts         *int64 `json:"debts" binding:"required,min=0"`
	IsPaid        *bool  `json:"is_paid" binding:"required"`
	PaymentDate   string `json:"payment_date"`
	PaymentMethod string `json:"payment_method"`
	Notes         string `json:"notes"`
}

// MarkAsPaidRequest is optional; an empty body pays with the default method.
type MarkAsPaidRequest struct {
	PaymentMethod string `json:"payment_method" binding:"omitempty,max=30"`
}

type RunPayrollRequest struct {
	Year  int `json:"year" binding:"required,min=2000,max=2100"`
	Month int `json:"month" binding:"required,min=1,max=12"`

	// Force confirms a destructive recompute of a period that already has
	// salary records. Without it such a run is rejected with
	// CONFIRM_REQUIRED and no side effects.
	Force bool `json:"force"`
}

const (
	RunStatusCompleted   = "COMPLETED"
	RunStatusEmptyRoster = "EMPTY_ROSTER"
)

type RunPayrollResult struct {
	RunID     string `json:"run_id,omitempty"`
	Status    string `json:"status"`
	Total     int    `json:"total"`
	Processed int    `json:"processed"`
	Created   int    `json:"created"`
	Deleted   int    `json:"deleted"`
}

type SalaryDetailsResponse struct {
	AdvanceIDs  []string `json:"advance_ids"`
	SanctionIDs []string `json:"sanction_ids"`
	DebtIDs     []string `json:"debt_ids"`
	CalcError   string   `json:"calc_error,omitempty"`
}

type SalaryResponse struct {
	ID            string                `json:"id"`
	EmployeeID    string                `json:"employee_id"`
	PaymentDate   string                `json:"payment_date"`
	PeriodStart   string                `json:"period_start"`
	PeriodEnd     string                `json:"period_end"`
	BaseSalary    int64                 `json:"base_salary"`
	Advances      int64                 `json:"advances"`
	Sanctions     int64                 `json:"sanctions"`
	Debts         int64                 `json:"debts"`
	NetSalary     int64                 `json:"net_salary"`
	IsPaid        bool                  `json:"is_paid"`
	PaidDate      *string               `json:"paid_date,omitempty"`
	PaymentMethod string                `json:"payment_method"`
	Notes         string                `json:"notes"`
	Details       SalaryDetailsResponse `json:"details"`
}

type MarkAsPaidResponse struct {
	Salary      SalaryResponse `json:"salary"`
	AlreadyPaid bool           `json:"already_paid"`
}
