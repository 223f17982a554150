package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"staff-system/internal/dto"
	"staff-system/internal/repositories"
	apperrors "staff-system/pkg/errors"
	"staff-system/pkg/types"
	"staff-system/pkg/validation"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const timesheetCachePrefix = "timesheets-"

type TimesheetServiceInterface interface {
	GetTimesheets(ctx context.Context, filter types.Filter) ([]dto.TimesheetDTO, uint64, error)
	FindTimesheet(ctx context.Context, id uint64) (*dto.TimesheetDetailsDTO, error)
	CreateTimesheet(ctx context.Context, data dto.CreateTimesheetDTO) (uint64, error)
	ValidateTimesheet(ctx context.Context, data dto.CreateTimesheetDTO) map[string]string
}

type TimesheetService struct {
	pool          repositories.DBPool
	timesheetRepo repositories.TimesheetRepositoryInterface
	employeeRepo  repositories.EmployeeRepositoryInterface
	cache         repositories.CacheRepositoryInterface
	logger        *zap.Logger
	cacheTTL      time.Duration
}

func NewTimesheetService(
	pool repositories.DBPool,
	timesheetRepo repositories.TimesheetRepositoryInterface,
	employeeRepo repositories.EmployeeRepositoryInterface,
	cache repositories.CacheRepositoryInterface,
	logger *zap.Logger,
	cacheTTL time.Duration,
) TimesheetServiceInterface {
	return &TimesheetService{
		pool:          pool,
		timesheetRepo: timesheetRepo,
		employeeRepo:  employeeRepo,
		cache:         cache,
		logger:        logger,
		cacheTTL:      cacheTTL,
	}
}

type timesheetListCache struct {
	List  []dto.TimesheetDTO `json:"list"`
	Total uint64             `json:"total"`
}

func (s *TimesheetService) GetTimesheets(ctx context.Context, filter types.Filter) ([]dto.TimesheetDTO, uint64, error) {
	cacheKey := filter.CacheKey("timesheets")

	if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
		var payload timesheetListCache
		if err := json.Unmarshal([]byte(cached), &payload); err == nil {
			return payload.List, payload.Total, nil
		}
		s.logger.Warn("повреждённая запись кеша", zap.String("key", cacheKey))
	}

	list, total, err := s.timesheetRepo.GetTimesheets(ctx, filter)
	if err != nil {
		s.logger.Error("Ошибка при получении списка табелей", zap.Error(err))
		return nil, 0, err
	}

	if payload, err := json.Marshal(timesheetListCache{List: list, Total: total}); err == nil {
		if err := s.cache.Set(ctx, cacheKey, string(payload), s.cacheTTL); err != nil {
			s.logger.Warn("не удалось записать кеш списка табелей", zap.Error(err))
		}
	}

	return list, total, nil
}

func (s *TimesheetService) FindTimesheet(ctx context.Context, id uint64) (*dto.TimesheetDetailsDTO, error) {
	details, err := s.timesheetRepo.FindTimesheet(ctx, id)
	if err != nil {
		if !errors.Is(err, apperrors.ErrTimesheetNotFound) {
			s.logger.Error("Ошибка при загрузке табеля", zap.Uint64("id", id), zap.Error(err))
		}
		return nil, err
	}
	return details, nil
}

// parseTimesheetInput разбирает и проверяет поля формы табеля.
// Возвращает разобранные времена и карту пополевых ошибок.
func parseTimesheetInput(data dto.CreateTimesheetDTO) (start, end time.Time, errs map[string]string) {
	errs = make(map[string]string)

	if data.EmployeeID == 0 {
		errs["employee_id"] = "Сотрудник обязателен"
	}

	var err error
	if data.StartTime == "" {
		errs["start_time"] = "Время начала обязательно"
	} else if start, err = validation.ParseDateTime(data.StartTime); err != nil {
		errs["start_time"] = "Неверный формат времени"
	}

	if data.EndTime == "" {
		errs["end_time"] = "Время окончания обязательно"
	} else if end, err = validation.ParseDateTime(data.EndTime); err != nil {
		errs["end_time"] = "Неверный формат времени"
	}

	if len(errs) == 0 {
		for field, msg := range validation.ValidateTimesheetTimes(start, end) {
			errs[field] = msg
		}
	}
	return start, end, errs
}

// CreateTimesheet создаёт запись табеля. Проверка существования сотрудника
// и проверка пересечения интервалов выполняются внутри той же транзакции,
// что и вставка: между проверкой и записью не может вклиниться конкурент.
func (s *TimesheetService) CreateTimesheet(ctx context.Context, data dto.CreateTimesheetDTO) (uint64, error) {
	start, end, errs := parseTimesheetInput(data)
	if len(errs) > 0 {
		return 0, apperrors.NewValidationError(errs)
	}

	summary := null.NewString(data.Summary, data.Summary != "")

	var newID uint64
	err := repositories.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		exists, err := s.employeeRepo.EmployeeExists(ctx, tx, data.EmployeeID)
		if err != nil {
			return err
		}
		if !exists {
			return apperrors.ErrEmployeeNotFound
		}

		overlaps, err := s.timesheetRepo.HasOverlapping(ctx, tx, data.EmployeeID, start, end)
		if err != nil {
			return err
		}
		if overlaps {
			return apperrors.ErrTimesheetOverlap
		}

		id, err := s.timesheetRepo.CreateTimesheetInTx(ctx, tx, data.EmployeeID, start, end, summary)
		if err != nil {
			return err
		}
		newID = id
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrTimesheetOverlap) && !errors.Is(err, apperrors.ErrEmployeeNotFound) {
			s.logger.Error("Ошибка транзакции создания табеля", zap.Error(err))
		}
		return 0, err
	}

	if err := s.cache.DelByPrefix(ctx, timesheetCachePrefix); err != nil {
		s.logger.Warn("не удалось инвалидировать кеш табелей", zap.Error(err))
	}

	s.logger.Info("Табель успешно создан", zap.Uint64("id", newID))
	return newID, nil
}

// ValidateTimesheet — интерактивная проверка формы без записи. Результат
// советующий: финальная проверка пересечений всё равно выполняется в
// транзакции создания.
func (s *TimesheetService) ValidateTimesheet(ctx context.Context, data dto.CreateTimesheetDTO) map[string]string {
	start, end, errs := parseTimesheetInput(data)
	if len(errs) > 0 {
		return errs
	}

	exists, err := s.employeeRepo.EmployeeExists(ctx, s.pool, data.EmployeeID)
	if err != nil {
		s.logger.Error("Ошибка при проверке сотрудника", zap.Error(err))
		errs["general"] = "Не удалось выполнить проверку, попробуйте позже"
		return errs
	}
	if !exists {
		errs["employee_id"] = "Выбранный сотрудник не существует"
		return errs
	}

	overlaps, err := s.timesheetRepo.HasOverlapping(ctx, s.pool, data.EmployeeID, start, end)
	if err != nil {
		s.logger.Error("Ошибка при проверке пересечений", zap.Error(err))
		errs["general"] = "Не удалось выполнить проверку, попробуйте позже"
		return errs
	}
	if overlaps {
		errs["general"] = "Интервал пересекается с существующей записью табеля"
	}
	return errs
}
