package dto

// CreateTimesheetDTO — поля формы создания табеля. Времена — строки
// формата datetime-local (2006-01-02T15:04) либо RFC3339.
type CreateTimesheetDTO struct {
	EmployeeID uint64 `form:"employee_id" json:"employee_id"`
	StartTime  string `form:"start_time" json:"start_time"`
	EndTime    string `form:"end_time" json:"end_time"`
	Summary    string `form:"summary" json:"summary"`
}

// TimesheetDTO — строка списка табелей, времена в RFC3339.
type TimesheetDTO struct {
	ID         uint64 `json:"id"`
	EmployeeID uint64 `json:"employee_id"`
	FullName   string `json:"full_name"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
}

type TimesheetDetailsDTO struct {
	ID           uint64  `json:"id"`
	EmployeeID   uint64  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
	Summary      *string `json:"summary,omitempty"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}
