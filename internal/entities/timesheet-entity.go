package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// Timesheet — рабочий интервал сотрудника. Интервалы полуоткрытые
// [start_time, end_time): табели одного сотрудника не пересекаются,
// стыкующиеся границы пересечением не считаются.
type Timesheet struct {
	ID         uint64      `json:"id"`
	EmployeeID uint64      `json:"employee_id"`
	StartTime  time.Time   `json:"start_time"`
	EndTime    time.Time   `json:"end_time"`
	Summary    null.String `json:"summary"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}
