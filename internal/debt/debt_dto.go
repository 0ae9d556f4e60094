package debt

type CreateDebtRequest struct {
	EmployeeID  string `json:"employee_id" binding:"required,uuid"`
	ClientName  string `json:"client_name" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Amount      int64  `json:"amount" binding:"required,gt=0"`
	Description string `json:"description"`
}

type UpdateDebtRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Amount      int64  `json:"amount" binding:"required,gt=0"`
	Description string `json:"description"`
}

type DebtResponse struct {
	ID          string  `json:"id"`
	EmployeeID  string  `json:"employee_id"`
	ClientName  string  `json:"client_name"`
	Date        string  `json:"date"`
	Amount      int64   `json:"amount"`
	Description string  `json:"description"`
	IsPaid      bool    `json:"is_paid"`
	PaidDate    *string `json:"paid_date,omitempty"`
}
