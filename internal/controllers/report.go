package controllers

import (
	"fmt"
	"net/http"
	"time"

	"staff-system/internal/dto"
	"staff-system/internal/services"
	"staff-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
	queryTimeout  time.Duration
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger, queryTimeout time.Duration) *ReportController {
	return &ReportController{
		reportService: reportService,
		logger:        logger,
		queryTimeout:  queryTimeout,
	}
}

// ExportEmployees выгружает реестр сотрудников в XLSX. Фильтры и поиск
// те же, что у списка, пагинация игнорируется: выгружается всё.
func (c *ReportController) ExportEmployees(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	filter.WithPagination = false

	c.logger.Debug("Запрос на выгрузку реестра", zap.Any("filter", filter))

	data, _, err := c.reportService.GetRoster(utils.Ctx(ctx, c.queryTimeout), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return c.respondWithXLSX(ctx, data)
}

var rosterHeaders = []string{
	"ID", "ФИО", "Email", "Телефон", "Дата рождения", "Должность",
	"Отдел", "Оклад", "Дата начала работы", "Дата окончания", "Активен",
}

func rosterRow(item dto.EmployeeDTO) []interface{} {
	deref := func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	}
	active := "Нет"
	if item.IsActive {
		active = "Да"
	}
	return []interface{}{
		item.ID, item.FullName, item.Email, deref(item.PhoneNumber), item.DateOfBirth,
		item.JobTitle, item.Department, item.Salary, item.StartDate, deref(item.EndDate), active,
	}
}

func (c *ReportController) respondWithXLSX(ctx echo.Context, data []dto.EmployeeDTO) error {
	f := excelize.NewFile()
	sheet := "Реестр сотрудников"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &rosterHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "K1", style)

	for i, item := range data {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := rosterRow(item)
		f.SetSheetRow(sheet, cell, &row)
	}
	f.SetColWidth(sheet, "B", "B", 30)
	f.SetColWidth(sheet, "C", "C", 28)
	f.SetColWidth(sheet, "D", "G", 20)
	f.SetColWidth(sheet, "I", "J", 18)

	fileName := fmt.Sprintf("employees_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
