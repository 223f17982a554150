package entities

import "time"

// Типы документов сотрудника.
const (
	DocumentTypeCV       = "CV"
	DocumentTypeID       = "ID"
	DocumentTypeContract = "CONTRACT"
	DocumentTypeOther    = "OTHER"
)

// Document создаётся только внутри транзакции создания сотрудника
// и после этого не изменяется.
type Document struct {
	ID           uint64    `json:"id"`
	EmployeeID   uint64    `json:"employee_id"`
	DocumentType string    `json:"document_type"`
	FilePath     string    `json:"file_path"`
	UploadDate   time.Time `json:"upload_date"`
}
