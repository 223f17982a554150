package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"staff-system/internal/controllers"
	"staff-system/internal/services"
	"staff-system/pkg/config"
)

func runReportRouter(e *echo.Echo, reportService services.ReportServiceInterface, logger *zap.Logger, cfg *config.Config) {
	reportCtrl := controllers.NewReportController(reportService, logger, cfg.QueryTimeout)

	e.GET("/employees/export", reportCtrl.ExportEmployees)
}
