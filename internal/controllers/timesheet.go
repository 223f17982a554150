package controllers

import (
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

type TimesheetController struct {
	timesheetService services.TimesheetServiceInterface
	logger           *zap.Logger
	queryTimeout     time.Duration
}

func NewTimesheetController(timesheetService services.TimesheetServiceInterface, logger *zap.Logger, queryTimeout time.Duration) *TimesheetController {
	return &TimesheetController{
		timesheetService: timesheetService,
		logger:           logger,
		queryTimeout:     queryTimeout,
	}
}

func (c *TimesheetController) GetTimesheets(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	timesheets, total, err := c.timesheetService.GetTimesheets(utils.Ctx(ctx, c.queryTimeout), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, timesheets, "Табели успешно получены", http.StatusOK, total)
}

func (c *TimesheetController) FindTimesheet(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат ID", err, nil), c.logger)
	}
	res, err := c.timesheetService.FindTimesheet(utils.Ctx(ctx, c.queryTimeout), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Табель успешно найден", http.StatusOK)
}

func (c *TimesheetController) CreateTimesheet(ctx echo.Context) error {
	var payload dto.CreateTimesheetDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil), c.logger)
	}

	id, err := c.timesheetService.CreateTimesheet(utils.Ctx(ctx, c.queryTimeout), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, map[string]uint64{"id": id}, "Табель успешно создан", http.StatusCreated)
}

// ValidateTimesheet — интерактивная проверка формы табеля: формат времён,
// существование сотрудника, пересечение интервалов.
func (c *TimesheetController) ValidateTimesheet(ctx echo.Context) error {
	var payload dto.CreateTimesheetDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil), c.logger)
	}

	errs := c.timesheetService.ValidateTimesheet(utils.Ctx(ctx, c.queryTimeout), payload)
	body := map[string]interface{}{
		"valid":  len(errs) == 0,
		"errors": errs,
	}
	return utils.SuccessResponse(ctx, body, "Проверка выполнена", http.StatusOK)
}
