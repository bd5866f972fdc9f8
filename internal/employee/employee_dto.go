package employee

type CreateEmployeeRequest struct {
	Email      string `json:"email" binding:"required,email"`
	FirstName  string `json:"first_name" binding:"required"`
	LastName   string `json:"last_name" binding:"required"`
	Department string `json:"department"`
	Position   string `json:"position"`
	Role       string `json:"role"`
}

type UpdateEmployeeRequest struct {
	Email      string `json:"email" binding:"required,email"`
	FirstName  string `json:"first_name" binding:"required"`
	LastName   string `json:"last_name" binding:"required"`
	Department string `json:"department"`
	Position   string `json:"position"`
	Role       string `json:"role" binding:"required"`
}

type EmployeeResponse struct {
	ID                 string `json:"id"`
	Email              string `json:"email"`
	FirstName          string `json:"first_name"`
	LastName           string `json:"last_name"`
	Department         string `json:"department,omitempty"`
	Position           string `json:"position,omitempty"`
	Role               string `json:"role"`
	AnnualLeaveBalance int    `json:"annual_leave_balance"`
}
