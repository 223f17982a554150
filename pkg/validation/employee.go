package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	MinimumAge    = 18
	MinimumSalary = 15000
	DateLayout    = "2006-01-02"
)

var (
	emailRegex    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]{2,}$`)
	phoneRegex    = regexp.MustCompile(`^\+?[\d\s-]{10,}$`)
	fullNameRegex = regexp.MustCompile(`^[a-zA-Zа-яА-ЯёЁ\s'-]+$`)
)

var allowedPhotoExtensions = []string{"jpg", "jpeg", "png", "gif"}

// EmployeeFields — плоские значения формы сотрудника.
// Даты приходят строками в формате DateLayout, как их отдаёт форма.
type EmployeeFields struct {
	FullName    string
	Email       string
	PhoneNumber string
	DateOfBirth string
	JobTitle    string
	Department  string
	Salary      int64
	StartDate   string
	EndDate     string
	PhotoPath   string
}

// ValidateEmployee проверяет запись целиком перед сохранением.
// Возвращает карту поле→сообщение; пустая карта означает, что запись валидна.
func ValidateEmployee(e EmployeeFields) map[string]string {
	errs := map[string]string{}

	if strings.TrimSpace(e.FullName) == "" {
		errs["full_name"] = "ФИО обязательно"
	}

	if strings.TrimSpace(e.Email) == "" {
		errs["email"] = "Email обязателен"
	} else if !emailRegex.MatchString(e.Email) {
		errs["email"] = "Неверный формат email"
	}

	if e.DateOfBirth == "" {
		errs["date_of_birth"] = "Дата рождения обязательна"
	} else if birthDate, err := time.Parse(DateLayout, e.DateOfBirth); err != nil {
		errs["date_of_birth"] = "Неверный формат даты"
	} else if ageAt(birthDate, time.Now()) < MinimumAge {
		errs["date_of_birth"] = fmt.Sprintf("Сотруднику должно быть не менее %d лет", MinimumAge)
	}

	if strings.TrimSpace(e.JobTitle) == "" {
		errs["job_title"] = "Должность обязательна"
	}

	if strings.TrimSpace(e.Department) == "" {
		errs["department"] = "Подразделение обязательно"
	}

	if e.Salary == 0 {
		errs["salary"] = "Оклад обязателен"
	} else if e.Salary < MinimumSalary {
		errs["salary"] = fmt.Sprintf("Оклад должен быть не менее %d", MinimumSalary)
	}

	if e.StartDate == "" {
		errs["start_date"] = "Дата приёма обязательна"
	} else if e.EndDate != "" {
		start, startErr := time.Parse(DateLayout, e.StartDate)
		end, endErr := time.Parse(DateLayout, e.EndDate)
		if startErr == nil && endErr == nil && start.After(end) {
			errs["start_date"] = "Дата приёма должна быть раньше даты увольнения"
		}
	}

	if e.PhoneNumber != "" && !phoneRegex.MatchString(e.PhoneNumber) {
		errs["phone_number"] = "Неверный формат номера телефона"
	}

	if e.PhotoPath != "" && !hasAllowedPhotoExtension(e.PhotoPath) {
		errs["photo"] = "Недопустимый формат изображения. Разрешены: JPG, PNG, GIF"
	}

	return errs
}

// ValidateEmployeeField — интерактивная проверка одного поля (on blur).
// Пустая строка означает, что поле валидно. Правила здесь строже, чем при
// сохранении: добавлены границы длины и диапазона дат.
func ValidateEmployeeField(field, value string) string {
	switch field {
	case "full_name":
		if strings.TrimSpace(value) == "" {
			return "ФИО обязательно"
		}
		if len([]rune(value)) < 2 {
			return "ФИО должно содержать не менее 2 символов"
		}
		if !fullNameRegex.MatchString(value) {
			return "ФИО может содержать только буквы, пробелы, дефисы и апострофы"
		}
	case "email":
		if strings.TrimSpace(value) == "" {
			return "Email обязателен"
		}
		if !emailRegex.MatchString(value) {
			return "Введите корректный email"
		}
	case "date_of_birth":
		if value == "" {
			return "Дата рождения обязательна"
		}
		birthDate, err := time.Parse(DateLayout, value)
		if err != nil {
			return "Неверный формат даты"
		}
		if ageAt(birthDate, time.Now()) < MinimumAge {
			return fmt.Sprintf("Сотруднику должно быть не менее %d лет", MinimumAge)
		}
	case "job_title":
		if strings.TrimSpace(value) == "" {
			return "Должность обязательна"
		}
		if len([]rune(value)) < 2 {
			return "Должность должна содержать не менее 2 символов"
		}
	case "department":
		if strings.TrimSpace(value) == "" {
			return "Подразделение обязательно"
		}
		if len([]rune(value)) < 2 {
			return "Подразделение должно содержать не менее 2 символов"
		}
	case "salary":
		if value == "" {
			return "Оклад обязателен"
		}
		salary, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return "Оклад должен быть числом"
		}
		if salary < MinimumSalary {
			return fmt.Sprintf("Оклад должен быть не менее %d", MinimumSalary)
		}
	case "start_date":
		if value == "" {
			return "Дата приёма обязательна"
		}
		startDate, err := time.Parse(DateLayout, value)
		if err != nil {
			return "Неверный формат даты"
		}
		if startDate.Before(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)) {
			return "Дата приёма не может быть раньше 2000 года"
		}
		if startDate.After(time.Now().AddDate(0, 6, 0)) {
			return "Дата приёма не может быть более чем на 6 месяцев в будущем"
		}
	}
	return ""
}

// ageAt — полных лет на момент now: разница годов с поправкой,
// если месяц/день рождения в этом году ещё не наступил.
func ageAt(birthDate, now time.Time) int {
	age := now.Year() - birthDate.Year()
	if now.Month() < birthDate.Month() ||
		(now.Month() == birthDate.Month() && now.Day() < birthDate.Day()) {
		age--
	}
	return age
}

func hasAllowedPhotoExtension(path string) bool {
	idx := strings.LastIndex(path, ".")
	if idx < 0 || idx == len(path)-1 {
		return false
	}
	ext := strings.ToLower(path[idx+1:])
	for _, allowed := range allowedPhotoExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
