package routes

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"staff-system/internal/repositories"
	"staff-system/internal/services"
	"staff-system/pkg/config"
	"staff-system/pkg/filestorage"
)

// InitRouter собирает граф зависимостей и навешивает маршруты.
func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	cache repositories.CacheRepositoryInterface,
	fileStorage filestorage.FileStorageInterface,
	logger *zap.Logger,
	cfg *config.Config,
) {
	logger.Info("InitRouter: Начало создания маршрутов")

	// --- РЕПОЗИТОРИИ ---
	employeeRepo := repositories.NewEmployeeRepository(dbConn, logger)
	documentRepo := repositories.NewDocumentRepository(logger)
	timesheetRepo := repositories.NewTimesheetRepository(dbConn, logger)

	// --- СЕРВИСЫ ---
	employeeService := services.NewEmployeeService(dbConn, employeeRepo, documentRepo, cache, fileStorage, logger, cfg.Cache.ListTTL)
	timesheetService := services.NewTimesheetService(dbConn, timesheetRepo, employeeRepo, cache, logger, cfg.Cache.ListTTL)
	reportService := services.NewReportService(employeeRepo, logger)

	// --- КОНТРОЛЛЕРЫ И МАРШРУТЫ ---
	runEmployeeRouter(e, employeeService, logger, cfg)
	runTimesheetRouter(e, timesheetService, logger, cfg)
	runReportRouter(e, reportService, logger, cfg)

	logger.Info("InitRouter: Маршруты успешно созданы")
}
