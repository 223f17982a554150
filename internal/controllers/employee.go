package controllers

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"staff-system/internal/dto"
	"staff-system/internal/services"
	apperrors "staff-system/pkg/errors"
	"staff-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type EmployeeController struct {
	employeeService services.EmployeeServiceInterface
	logger          *zap.Logger
	queryTimeout    time.Duration
}

func NewEmployeeController(employeeService services.EmployeeServiceInterface, logger *zap.Logger, queryTimeout time.Duration) *EmployeeController {
	return &EmployeeController{
		employeeService: employeeService,
		logger:          logger,
		queryTimeout:    queryTimeout,
	}
}

func (c *EmployeeController) GetEmployees(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	employees, total, err := c.employeeService.GetEmployees(utils.Ctx(ctx, c.queryTimeout), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, employees, "Сотрудники успешно получены", http.StatusOK, total)
}

// GetShortEmployees — короткий список для выпадающих списков форм.
func (c *EmployeeController) GetShortEmployees(ctx echo.Context) error {
	employees, err := c.employeeService.GetShortEmployees(utils.Ctx(ctx, c.queryTimeout))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, employees, "Сотрудники успешно получены", http.StatusOK)
}

func (c *EmployeeController) FindEmployee(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат ID", err, nil), c.logger)
	}
	res, err := c.employeeService.FindEmployee(utils.Ctx(ctx, c.queryTimeout), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Сотрудник успешно найден", http.StatusOK)
}

// formFile достаёт файл из multipart-формы; отсутствующая часть — не ошибка.
func formFile(ctx echo.Context, name string) *multipart.FileHeader {
	fh, err := ctx.FormFile(name)
	if err != nil {
		return nil
	}
	return fh
}

func employeeFilesFromForm(ctx echo.Context) services.EmployeeFiles {
	return services.EmployeeFiles{
		Photo:      formFile(ctx, "photo"),
		CV:         formFile(ctx, "cv"),
		IDDocument: formFile(ctx, "id_document"),
	}
}

func (c *EmployeeController) CreateEmployee(ctx echo.Context) error {
	var payload dto.CreateEmployeeDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil), c.logger)
	}

	id, err := c.employeeService.CreateEmployee(utils.Ctx(ctx, c.queryTimeout), payload, employeeFilesFromForm(ctx))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, map[string]uint64{"id": id}, "Сотрудник успешно создан", http.StatusCreated)
}

func (c *EmployeeController) UpdateEmployee(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат ID", err, nil), c.logger)
	}
	var payload dto.UpdateEmployeeDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.employeeService.UpdateEmployee(utils.Ctx(ctx, c.queryTimeout), id, payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Сотрудник успешно обновлен", http.StatusOK)
}

// ValidateEmployee — проверка формы целиком без записи: форма шлёт те же
// поля и файлы, что и при создании, в ответ приходит карта ошибок.
func (c *EmployeeController) ValidateEmployee(ctx echo.Context) error {
	var payload dto.CreateEmployeeDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil), c.logger)
	}

	errs := c.employeeService.ValidateEmployee(payload, employeeFilesFromForm(ctx))
	body := map[string]interface{}{
		"valid":  len(errs) == 0,
		"errors": errs,
	}
	return utils.SuccessResponse(ctx, body, "Проверка выполнена", http.StatusOK)
}

// ValidateEmployeeField — пополевая проверка on blur.
func (c *EmployeeController) ValidateEmployeeField(ctx echo.Context) error {
	var payload dto.ValidateFieldDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	msg := c.employeeService.ValidateEmployeeField(payload.Field, payload.Value)
	body := map[string]interface{}{
		"valid":   msg == "",
		"message": msg,
	}
	return utils.SuccessResponse(ctx, body, "Проверка выполнена", http.StatusOK)
}
