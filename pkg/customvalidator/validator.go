// Файл: pkg/customvalidator/validator.go

package customvalidator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidations регистрирует наши правила в переданном
// экземпляре валидатора. Правила используются в struct-тегах DTO.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("custom_email", isGoodEmailFormat); err != nil {
		return err
	}
	if err := v.RegisterValidation("loose_phone", isLoosePhoneNumber); err != nil {
		return err
	}
	return nil
}

func isGoodEmailFormat(fl validator.FieldLevel) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(fl.Field().String())
}

// isLoosePhoneNumber — свободный формат: необязательный ведущий +,
// цифры/пробелы/дефисы, минимум 10 символов.
func isLoosePhoneNumber(fl validator.FieldLevel) bool {
	re := regexp.MustCompile(`^\+?[\d\s-]{10,}$`)
	return re.MatchString(fl.Field().String())
}

// CustomValidator — обертка для использования в Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate реализует интерфейс echo.Validator.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func NewValidator(v *validator.Validate) *CustomValidator {
	return &CustomValidator{validator: v}
}
