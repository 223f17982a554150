package dto

// CreateEmployeeDTO — поля формы создания сотрудника. Файлы (фото, CV,
// документ) приходят отдельными частями multipart-формы. Даты — строки
// формата 2006-01-02, как их отдаёт форма; доменная валидация разбирает их
// сама и отвечает пополевыми сообщениями.
type CreateEmployeeDTO struct {
	FullName    string `form:"full_name" json:"full_name"`
	Email       string `form:"email" json:"email"`
	PhoneNumber string `form:"phone_number" json:"phone_number"`
	DateOfBirth string `form:"date_of_birth" json:"date_of_birth"`
	JobTitle    string `form:"job_title" json:"job_title"`
	Department  string `form:"department" json:"department"`
	Salary      int64  `form:"salary" json:"salary"`
	StartDate   string `form:"start_date" json:"start_date"`
	EndDate     string `form:"end_date" json:"end_date"`
}

// UpdateEmployeeDTO — полная перезапись перечисленных колонок: вызывающая
// сторона обязана передать текущие значения полей, которые не меняет.
// Частичного merge на уровне SQL нет, последняя запись побеждает.
type UpdateEmployeeDTO struct {
	FullName    string  `json:"full_name" validate:"required"`
	Email       string  `json:"email" validate:"required,custom_email"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,loose_phone"`
	JobTitle    string  `json:"job_title" validate:"required"`
	Department  string  `json:"department" validate:"required"`
	Salary      int64   `json:"salary" validate:"required,gt=0"`
	PhotoPath   *string `json:"photo_path"`
}

type EmployeeDTO struct {
	ID          uint64  `json:"id"`
	FullName    string  `json:"full_name"`
	Email       string  `json:"email"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	DateOfBirth string  `json:"date_of_birth"`
	JobTitle    string  `json:"job_title"`
	Department  string  `json:"department"`
	Salary      int64   `json:"salary"`
	StartDate   string  `json:"start_date"`
	EndDate     *string `json:"end_date,omitempty"`
	IsActive    bool    `json:"is_active"`
	PhotoPath   *string `json:"photo_path,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// EmployeeDetailDTO — карточка сотрудника вместе с документами.
// Documents всегда не-nil: пустой срез, если документов нет.
type EmployeeDetailDTO struct {
	EmployeeDTO
	Documents []DocumentDTO `json:"documents"`
}

type ShortEmployeeDTO struct {
	ID       uint64 `json:"id"`
	FullName string `json:"full_name"`
}

// ValidateFieldDTO — запрос интерактивной проверки одного поля (on blur).
type ValidateFieldDTO struct {
	Field string `json:"field" validate:"required"`
	Value string `json:"value"`
}
