package seeders

import "time"

var employeesData = []struct {
	FullName    string
	Email       string
	PhoneNumber string
	DateOfBirth string
	JobTitle    string
	Department  string
	Salary      int64
	StartDate   string
}{
	{
		FullName:    "Иван Петров",
		Email:       "ivan.petrov@example.com",
		PhoneNumber: "+992 93 500-10-01",
		DateOfBirth: "1990-03-14",
		JobTitle:    "Инженер-программист",
		Department:  "Разработка",
		Salary:      45000,
		StartDate:   "2021-02-01",
	},
	{
		FullName:    "Мария Сидорова",
		Email:       "maria.sidorova@example.com",
		PhoneNumber: "+992 93 500-10-02",
		DateOfBirth: "1988-11-02",
		JobTitle:    "Бухгалтер",
		Department:  "Финансы",
		Salary:      38000,
		StartDate:   "2019-06-15",
	},
	{
		FullName:    "Алексей Козлов",
		Email:       "aleksey.kozlov@example.com",
		PhoneNumber: "+992 93 500-10-03",
		DateOfBirth: "1995-07-21",
		JobTitle:    "Системный администратор",
		Department:  "ИТ",
		Salary:      40000,
		StartDate:   "2022-09-01",
	},
	{
		FullName:    "Ольга Новикова",
		Email:       "olga.novikova@example.com",
		PhoneNumber: "+992 93 500-10-04",
		DateOfBirth: "1992-01-30",
		JobTitle:    "HR-менеджер",
		Department:  "Кадры",
		Salary:      35000,
		StartDate:   "2020-04-10",
	},
}

// Табели раздаются по сотрудникам циклически, интервалы не пересекаются.
var timesheetsData = []struct {
	StartOffset time.Duration
	Duration    time.Duration
	Summary     string
}{
	{StartOffset: -72 * time.Hour, Duration: 8 * time.Hour, Summary: "Плановые работы"},
	{StartOffset: -48 * time.Hour, Duration: 6 * time.Hour, Summary: "Поддержка пользователей"},
	{StartOffset: -24 * time.Hour, Duration: 8 * time.Hour, Summary: "Закрытие месяца"},
}
