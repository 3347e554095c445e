package employee

// EmployeeRequest is shared by POST, PUT and PATCH. A nil field was not sent;
// PUT/POST require full_name and email, PATCH only touches what is present.
type EmployeeRequest struct {
	EmployeeID   *string `json:"employee_id"`
	FullName     *string `json:"full_name"`
	Email        *string `json:"email"`
	MobileNumber *string `json:"mobile_number"`
}

type EmployeeResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	FullName     string  `json:"full_name"`
	Email        string  `json:"email"`
	MobileNumber *string `json:"mobile_number"`
	CreatedAt    string  `json:"created_at"`
}

// EmployeeOptionResponse feeds the employee picker on the attendance form.
type EmployeeOptionResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
}
