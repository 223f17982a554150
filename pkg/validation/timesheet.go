package validation

import (
	"time"
)

// MaxTimesheetDuration — верхняя граница длительности одного табеля.
const MaxTimesheetDuration = 24 * time.Hour

// DateTimeLayout — формат datetime-local, как его отдаёт форма.
const DateTimeLayout = "2006-01-02T15:04"

// ParseDateTime принимает значение datetime-local или RFC3339.
func ParseDateTime(value string) (time.Time, error) {
	if t, err := time.Parse(DateTimeLayout, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// ValidateTimesheetTimes проверяет временное окно табеля. Интервалы
// полуоткрытые [start, end): конец должен быть строго позже начала.
func ValidateTimesheetTimes(start, end time.Time) map[string]string {
	errs := map[string]string{}

	if !end.After(start) {
		errs["end_time"] = "Время окончания должно быть позже времени начала"
		return errs
	}

	if end.Sub(start) > MaxTimesheetDuration {
		errs["end_time"] = "Длительность табеля не может превышать 24 часа"
	}

	return errs
}
