package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"staff-system/internal/controllers"
	"staff-system/internal/services"
	"staff-system/pkg/config"
)

func runTimesheetRouter(e *echo.Echo, timesheetService services.TimesheetServiceInterface, logger *zap.Logger, cfg *config.Config) {
	timesheetCtrl := controllers.NewTimesheetController(timesheetService, logger, cfg.QueryTimeout)

	e.GET("/timesheets", timesheetCtrl.GetTimesheets)
	e.GET("/timesheet/:id", timesheetCtrl.FindTimesheet)
	e.POST("/timesheet", timesheetCtrl.CreateTimesheet)
	e.POST("/timesheet/validate", timesheetCtrl.ValidateTimesheet)
}
