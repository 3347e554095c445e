package attendance

type AttendanceRequest struct {
	Employee *string `json:"employee"`
	Date     *string `json:"date"`
	Status   *string `json:"status"`
}

type AttendanceResponse struct {
	ID           string `json:"id"`
	Employee     string `json:"employee"`
	EmployeeName string `json:"employee_name"`
	Date         string `json:"date"`
	Status       string `json:"status"`
}

// ListFilter is bound from the query string of the list and export routes.
type ListFilter struct {
	Employee string `form:"employee"`
	Date     string `form:"date"`
}
