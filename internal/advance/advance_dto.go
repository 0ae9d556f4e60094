package advance

type CreateAdvanceRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Date       string `json:"date" binding:"required"`
	Amount     int64  `json:"amount" binding:"required,gt=0"`
	Reason     string `json:"reason"`
}

type UpdateAdvanceRequest struct {
	Date   string `json:"date" binding:"required"`
	Amount int64  `json:"amount" binding:"required,gt=0"`
	Reason string `json:"reason"`
}

type AdvanceResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`
	Amount     int64   `json:"amount"`
	Reason     string  `json:"reason"`
	IsPaid     bool    `json:"is_paid"`
	PaidDate   *string `json:"paid_date,omitempty"`
}
