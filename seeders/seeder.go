package seeders

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedEmployees наполняет таблицу сотрудников демо-данными.
// Повторный запуск безопасен: конфликт по email пропускается.
func SeedEmployees(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("▶️  Запуск наполнения сотрудников...")

	const query = `
		INSERT INTO employees (full_name, email, phone_number, date_of_birth, job_title, department, salary, start_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (email) DO NOTHING`

	for _, e := range employeesData {
		if _, err := db.Exec(ctx, query,
			e.FullName, e.Email, e.PhoneNumber, e.DateOfBirth,
			e.JobTitle, e.Department, e.Salary, e.StartDate,
		); err != nil {
			log.Fatalf("❌ Ошибка наполнения сотрудников: %v", err)
		}
	}
	log.Println("✅ Наполнение сотрудников завершено!")
}

// SeedTimesheets создает по нескольку записей табеля на каждого сотрудника.
func SeedTimesheets(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("▶️  Запуск наполнения табелей...")

	rows, err := db.Query(ctx, `SELECT id FROM employees ORDER BY id`)
	if err != nil {
		log.Fatalf("❌ Ошибка чтения сотрудников: %v", err)
	}
	var ids []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			log.Fatalf("❌ Ошибка чтения сотрудников: %v", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if len(ids) == 0 {
		log.Println("⚠️  Сотрудников нет, табели не создаются. Сначала запустите -employees.")
		return
	}

	const query = `
		INSERT INTO timesheets (employee_id, start_time, end_time, summary)
		SELECT $1, $2, $3, $4
		WHERE NOT EXISTS (
			SELECT 1 FROM timesheets
			WHERE employee_id = $1 AND start_time < $3 AND end_time > $2
		)`

	base := time.Now().Truncate(time.Hour)
	for i, t := range timesheetsData {
		employeeID := ids[i%len(ids)]
		start := base.Add(t.StartOffset)
		end := start.Add(t.Duration)
		if _, err := db.Exec(ctx, query, employeeID, start, end, t.Summary); err != nil {
			log.Fatalf("❌ Ошибка наполнения табелей: %v", err)
		}
	}
	log.Println("✅ Наполнение табелей завершено!")
}
