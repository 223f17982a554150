package dto

// DocumentDTO — документ в составе карточки сотрудника. Имена ключей json
// совпадают с json_build_object в запросе детальной выборки.
type DocumentDTO struct {
	ID           uint64 `json:"id"`
	DocumentType string `json:"document_type"`
	FilePath     string `json:"file_path"`
	UploadDate   string `json:"upload_date"`
}
