package validation

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gabriel-vasile/mimetype"

	"staff-system/config"
)

// ValidateFile проверяет размер и MIME-тип файла.
// contextName — ключ из config.UploadContexts ("photo", "cv", "id_document").
func ValidateFile(fileHeader *multipart.FileHeader, file io.ReadSeeker, contextName string) error {
	rules, ok := config.UploadContexts[contextName]
	if !ok {
		return fmt.Errorf("внутренняя ошибка: неизвестный контекст загрузки '%s'", contextName)
	}

	if rules.MaxSizeMB > 0 {
		maxSizeBytes := rules.MaxSizeMB * 1024 * 1024
		if fileHeader.Size > maxSizeBytes {
			return fmt.Errorf("размер файла (%.2f MB) превышает лимит в %d MB", float64(fileHeader.Size)/1024/1024, rules.MaxSizeMB)
		}
	}

	// Тип определяем по содержимому (magic numbers), а не по расширению.
	// mimetype различает и контейнерные форматы: docx (zip) и doc (OLE).
	mimeType, err := mimetype.DetectReader(file)
	if err != nil && err != io.EOF {
		return fmt.Errorf("ошибка чтения файла")
	}

	// Важно: возвращаем курсор чтения в начало!
	if _, err := file.Seek(0, 0); err != nil {
		return fmt.Errorf("ошибка обработки файла")
	}

	allowed := false
	for _, m := range rules.AllowedMimeTypes {
		if mimeType.Is(m) {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("недопустимый формат файла: %s", mimeType.String())
	}

	return nil
}

// ValidateDocuments проверяет приложенные документы сотрудника.
// Ключи карты совпадают с именами полей формы.
func ValidateDocuments(files map[string]*multipart.FileHeader) map[string]string {
	errs := map[string]string{}

	for field, contextName := range map[string]string{"cv": "cv", "id_document": "id_document"} {
		fileHeader, ok := files[field]
		if !ok || fileHeader == nil || fileHeader.Size == 0 {
			continue
		}
		src, err := fileHeader.Open()
		if err != nil {
			errs[field] = "Не удалось прочитать файл"
			continue
		}
		if err := ValidateFile(fileHeader, src, contextName); err != nil {
			errs[field] = err.Error()
		}
		src.Close()
	}

	return errs
}
