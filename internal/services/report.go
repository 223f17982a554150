package services

import (
	"context"

	"staff-system/internal/dto"
	"staff-system/internal/repositories"
	"staff-system/pkg/types"

	"go.uber.org/zap"
)

type ReportServiceInterface interface {
	GetRoster(ctx context.Context, filter types.Filter) ([]dto.EmployeeDTO, uint64, error)
}

// ReportService отдаёт данные для выгрузки реестра сотрудников.
// Ходит в репозиторий напрямую, мимо списочного кеша: выгрузки редкие
// и полные, кешировать их нечем и незачем.
type ReportService struct {
	employeeRepo repositories.EmployeeRepositoryInterface
	logger       *zap.Logger
}

func NewReportService(employeeRepo repositories.EmployeeRepositoryInterface, logger *zap.Logger) ReportServiceInterface {
	return &ReportService{employeeRepo: employeeRepo, logger: logger}
}

func (s *ReportService) GetRoster(ctx context.Context, filter types.Filter) ([]dto.EmployeeDTO, uint64, error) {
	employees, total, err := s.employeeRepo.GetEmployees(ctx, filter)
	if err != nil {
		s.logger.Error("Ошибка при формировании реестра сотрудников", zap.Error(err))
		return nil, 0, err
	}

	list := make([]dto.EmployeeDTO, len(employees))
	for i, e := range employees {
		list[i] = mapEmployeeToDTO(e)
	}
	return list, total, nil
}
