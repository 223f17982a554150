package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// Employee — карточка сотрудника. Записи никогда не удаляются,
// увольнение отражается полями end_date/is_active.
type Employee struct {
	ID          uint64      `json:"id"`
	FullName    string      `json:"full_name"`
	Email       string      `json:"email"`
	PhoneNumber null.String `json:"phone_number"`
	DateOfBirth time.Time   `json:"date_of_birth"`
	JobTitle    string      `json:"job_title"`
	Department  string      `json:"department"`
	Salary      int64       `json:"salary"`
	StartDate   time.Time   `json:"start_date"`
	EndDate     null.Time   `json:"end_date"`
	IsActive    bool        `json:"is_active"`
	PhotoPath   null.String `json:"photo_path"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
