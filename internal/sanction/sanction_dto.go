package sanction

type CreateSanctionRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Date       string `json:"date" binding:"required"`
	Type       string `json:"type" binding:"required,oneof=late absence misconduct other"`
	Amount     int64  `json:"amount" binding:"required,gt=0"`
	Reason     string `json:"reason"`
}

type UpdateSanctionRequest struct {
	Date   string `json:"date" binding:"required"`
	Type   string `json:"type" binding:"required,oneof=late absence misconduct other"`
	Amount int64  `json:"amount" binding:"required,gt=0"`
	Reason string `json:"reason"`
}

type SanctionResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Type       string `json:"type"`
	Amount     int64  `json:"amount"`
	Reason     string `json:"reason"`
}
