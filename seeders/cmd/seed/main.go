package main

import (
	"flag"
	"log"

	"staff-system/pkg/config"
	"staff-system/pkg/database/postgresql"
	"staff-system/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 СИСТЕМА СИДЕРОВ (Наполнение БД)           ")
	log.Println("======================================================")

	runEmployees := flag.Bool("employees", false, "Запустить наполнение сотрудников")
	runTimesheets := flag.Bool("timesheets", false, "Запустить наполнение табелей")
	runAll := flag.Bool("all", false, "Запустить все сидеры (эквивалентно -employees -timesheets)")

	flag.Parse()

	if !*runEmployees && !*runTimesheets && !*runAll {
		log.Println("❌ Не выбран ни один сидер для запуска.")
		log.Println("")
		log.Println("Доступные флаги:")
		flag.PrintDefaults()
		log.Println("")
		log.Println("Примеры использования:")
		log.Println("  go run ./seeders/cmd/seed/main.go -employees")
		log.Println("  go run ./seeders/cmd/seed/main.go -all")
		log.Println("======================================================")
		return
	}

	cfg := config.New()
	db := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer db.Close()

	if *runAll || *runEmployees {
		seeders.SeedEmployees(db)
	}
	if *runAll || *runTimesheets {
		seeders.SeedTimesheets(db)
	}

	log.Println("======================================================")
	log.Println("✅ Работа сидеров завершена.")
}
