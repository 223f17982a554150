package errors

import (
	"fmt"
	"strings"
)

var (
	// Общие
	ErrNotFound   = fmt.Errorf("запись не найдена")
	ErrBadRequest = fmt.Errorf("неверный запрос")

	// Сотрудники
	ErrEmployeeNotFound = fmt.Errorf("сотрудник не найден")
	ErrDuplicateEmail   = fmt.Errorf("сотрудник с таким email уже существует")

	// Табели
	ErrTimesheetNotFound = fmt.Errorf("табель не найден")
	ErrTimesheetOverlap  = fmt.Errorf("табель пересекается с уже существующим табелем этого сотрудника")

	// Файлы
	ErrStorageUnavailable = fmt.Errorf("хранилище файлов недоступно")
)

// HttpError несёт код ответа и пользовательское сообщение до HTTP-границы.
// Err хранит исходную ошибку для логов, Details — ошибки по полям.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Details map[string]string
	Context map[string]interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, details map[string]string) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Details: details}
}

// ValidationError — ошибка валидации уровня полей. Возвращается как данные:
// презентационный слой рендерит Fields рядом с полями формы, в логи как
// исключительная ситуация она не попадает.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "ошибка валидации"
	}
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "ошибка валидации: " + strings.Join(parts, "; ")
}

func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}
