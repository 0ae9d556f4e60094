package events

import "time"

const SalaryPaidTopic = "lesims.payroll.salary.paid.v1"

type SalaryPaidEvent struct {
	EventType     string    `json:"event_type"`
	SalaryID      string    `json:"salary_id"`
	EmployeeID    string    `json:"employee_id"`
	NetSalary     int64     `json:"net_salary"`
	PaymentMethod string    `json:"payment_method"`
	Operator      string    `json:"operator"`
	OccurredAt    time.Time `json:"occurred_at"`
}
