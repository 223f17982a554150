package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"staff-system/internal/controllers"
	"staff-system/internal/services"
	"staff-system/pkg/config"
)

func runEmployeeRouter(e *echo.Echo, employeeService services.EmployeeServiceInterface, logger *zap.Logger, cfg *config.Config) {
	employeeCtrl := controllers.NewEmployeeController(employeeService, logger, cfg.QueryTimeout)

	e.GET("/employees", employeeCtrl.GetEmployees)
	e.GET("/employees/short", employeeCtrl.GetShortEmployees)
	e.GET("/employee/:id", employeeCtrl.FindEmployee)
	e.POST("/employee", employeeCtrl.CreateEmployee)
	e.PUT("/employee/:id", employeeCtrl.UpdateEmployee)
	e.POST("/employee/validate", employeeCtrl.ValidateEmployee)
	e.POST("/employee/validate-field", employeeCtrl.ValidateEmployeeField)
}
