package employee

type CreateEmployeeRequest struct {
	FullName   string `json:"full_name" binding:"required"`
	Position   string `json:"position"`
	Phone      string `json:"phone"`
	Email      string `json:"email" binding:"omitempty,email"`
	BaseSalary *int64 `json:"base_salary" binding:"required,min=0"`
	HireDate   string `json:"hire_date" binding:"required"`
}

type UpdateEmployeeRequest struct {
	FullName   string `json:"full_name" binding:"required"`
	Position   string `json:"position"`
	Phone      string `json:"phone"`
	Email      string `json:"email" binding:"omitempty,email"`
	BaseSalary *int64 `json:"base_salary" binding:"required,min=0"`
	HireDate   string `json:"hire_date" binding:"required"`
}

type EmployeeResponse struct {
	ID           string `json:"id"`
	EmployeeCode string `json:"employee_code"`
	FullName     string `json:"full_name"`
	Position     string `json:"position"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	BaseSalary   int64  `json:"base_salary"`
	HireDate     string `json:"hire_date"`
}

// EmployeeOption is the slim shape the admin panel uses for dropdowns.
type EmployeeOption struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
}
