package validation

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validEmployeeFields() EmployeeFields {
	return EmployeeFields{
		FullName:    "Иван Петров",
		Email:       "ivan.petrov@example.com",
		PhoneNumber: "+992 93 500-10-01",
		DateOfBirth: "1990-03-14",
		JobTitle:    "Инженер",
		Department:  "Разработка",
		Salary:      45000,
		StartDate:   "2021-02-01",
	}
}

func TestValidateEmployee_ValidRecord(t *testing.T) {
	errs := ValidateEmployee(validEmployeeFields())
	assert.Empty(t, errs)
}

func TestValidateEmployee_RequiredFields(t *testing.T) {
	errs := ValidateEmployee(EmployeeFields{})

	for _, field := range []string{"full_name", "email", "date_of_birth", "job_title", "department", "salary", "start_date"} {
		assert.Contains(t, errs, field, "ожидалась ошибка для поля %s", field)
	}
	assert.NotContains(t, errs, "phone_number", "пустой телефон валиден")
	assert.NotContains(t, errs, "photo", "отсутствие фото валидно")
}

func TestValidateEmployee_AgeBoundary(t *testing.T) {
	now := time.Now()

	// Ровно 18 лет сегодня — проходит.
	exactly18 := now.AddDate(-18, 0, 0).Format(DateLayout)
	fields := validEmployeeFields()
	fields.DateOfBirth = exactly18
	assert.NotContains(t, ValidateEmployee(fields), "date_of_birth")

	// 18 лет исполнится завтра — не проходит.
	almost18 := now.AddDate(-18, 0, 1).Format(DateLayout)
	fields.DateOfBirth = almost18
	errs := ValidateEmployee(fields)
	assert.Contains(t, errs, "date_of_birth")
	assert.Contains(t, errs["date_of_birth"], "18")
}

func TestValidateEmployee_Salary(t *testing.T) {
	fields := validEmployeeFields()

	fields.Salary = MinimumSalary
	assert.NotContains(t, ValidateEmployee(fields), "salary")

	fields.Salary = MinimumSalary - 1
	assert.Contains(t, ValidateEmployee(fields), "salary")

	fields.Salary = 0
	assert.Equal(t, "Оклад обязателен", ValidateEmployee(fields)["salary"])
}

func TestValidateEmployee_Email(t *testing.T) {
	fields := validEmployeeFields()

	for _, email := range []string{"ivan@example.com", "a.b-c@mail.example.org"} {
		fields.Email = email
		assert.NotContains(t, ValidateEmployee(fields), "email", email)
	}

	for _, email := range []string{"ivan", "ivan@", "ivan@example", "ivan@example.c", "иван @example.com"} {
		fields.Email = email
		assert.Contains(t, ValidateEmployee(fields), "email", email)
	}
}

func TestValidateEmployee_Phone(t *testing.T) {
	fields := validEmployeeFields()

	for _, phone := range []string{"+992 93 500-10-01", "1234567890", "+1-234-567-89-00"} {
		fields.PhoneNumber = phone
		assert.NotContains(t, ValidateEmployee(fields), "phone_number", phone)
	}

	for _, phone := range []string{"12345", "abc-def-ghij", "+7 (927) 123"} {
		fields.PhoneNumber = phone
		assert.Contains(t, ValidateEmployee(fields), "phone_number", phone)
	}
}

func TestValidateEmployee_PhotoExtension(t *testing.T) {
	fields := validEmployeeFields()

	for _, path := range []string{"photo.jpg", "photo.JPEG", "photo.png", "photo.gif"} {
		fields.PhotoPath = path
		assert.NotContains(t, ValidateEmployee(fields), "photo", path)
	}

	for _, path := range []string{"photo.bmp", "photo.pdf", "photo", "photo."} {
		fields.PhotoPath = path
		assert.Contains(t, ValidateEmployee(fields), "photo", path)
	}
}

func TestValidateEmployee_StartBeforeEnd(t *testing.T) {
	fields := validEmployeeFields()
	fields.StartDate = "2023-05-01"
	fields.EndDate = "2022-01-01"
	assert.Contains(t, ValidateEmployee(fields), "start_date")

	fields.EndDate = "2024-01-01"
	assert.NotContains(t, ValidateEmployee(fields), "start_date")
}

func TestValidateEmployeeField(t *testing.T) {
	cases := []struct {
		field, value string
		wantValid    bool
	}{
		{"full_name", "Иван Петров", true},
		{"full_name", "И", false},
		{"full_name", "Ivan123", false},
		{"email", "ivan@example.com", true},
		{"email", "ivan@", false},
		{"job_title", "Инженер", true},
		{"job_title", "И", false},
		{"department", "ИТ", true},
		{"department", "", false},
		{"salary", "20000", true},
		{"salary", "14999", false},
		{"salary", "не число", false},
		{"start_date", "2021-02-01", true},
		{"start_date", "1999-12-31", false},
		{"date_of_birth", "1990-03-14", true},
		{"date_of_birth", "01/02/1990", false},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("%s=%s", tc.field, tc.value), func(t *testing.T) {
			msg := ValidateEmployeeField(tc.field, tc.value)
			if tc.wantValid {
				assert.Empty(t, msg)
			} else {
				assert.NotEmpty(t, msg)
			}
		})
	}
}

func TestValidateEmployeeField_StartDateFuture(t *testing.T) {
	tooFar := time.Now().AddDate(0, 7, 0).Format(DateLayout)
	assert.NotEmpty(t, ValidateEmployeeField("start_date", tooFar))

	soon := time.Now().AddDate(0, 1, 0).Format(DateLayout)
	assert.Empty(t, ValidateEmployeeField("start_date", soon))
}

func TestAgeAt(t *testing.T) {
	birth := time.Date(2000, 6, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 18, ageAt(birth, time.Date(2018, 6, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 17, ageAt(birth, time.Date(2018, 6, 14, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 17, ageAt(birth, time.Date(2018, 5, 20, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 18, ageAt(birth, time.Date(2018, 7, 1, 0, 0, 0, 0, time.UTC)))
}
