package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"staff-system/internal/dto"
	"staff-system/internal/entities"
	"staff-system/internal/repositories"
	apperrors "staff-system/pkg/errors"
	"staff-system/pkg/filestorage"
	"staff-system/pkg/types"
	"staff-system/pkg/validation"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// employeeCachePrefix — префикс ключей списочного кеша сотрудников.
// Любая запись в сущность инвалидирует кеш по этому префиксу.
const employeeCachePrefix = "employees-"

// EmployeeFiles — приложенные к форме файлы; любой из них может отсутствовать.
type EmployeeFiles struct {
	Photo      *multipart.FileHeader
	CV         *multipart.FileHeader
	IDDocument *multipart.FileHeader
}

type EmployeeServiceInterface interface {
	GetEmployees(ctx context.Context, filter types.Filter) ([]dto.EmployeeDTO, uint64, error)
	GetShortEmployees(ctx context.Context) ([]dto.ShortEmployeeDTO, error)
	FindEmployee(ctx context.Context, id uint64) (*dto.EmployeeDetailDTO, error)
	CreateEmployee(ctx context.Context, data dto.CreateEmployeeDTO, files EmployeeFiles) (uint64, error)
	UpdateEmployee(ctx context.Context, id uint64, data dto.UpdateEmployeeDTO) error
	ValidateEmployee(data dto.CreateEmployeeDTO, files EmployeeFiles) map[string]string
	ValidateEmployeeField(field, value string) string
}

type EmployeeService struct {
	pool         repositories.DBPool
	employeeRepo repositories.EmployeeRepositoryInterface
	documentRepo repositories.DocumentRepositoryInterface
	cache        repositories.CacheRepositoryInterface
	fileStorage  filestorage.FileStorageInterface
	logger       *zap.Logger
	cacheTTL     time.Duration
}

func NewEmployeeService(
	pool repositories.DBPool,
	employeeRepo repositories.EmployeeRepositoryInterface,
	documentRepo repositories.DocumentRepositoryInterface,
	cache repositories.CacheRepositoryInterface,
	fileStorage filestorage.FileStorageInterface,
	logger *zap.Logger,
	cacheTTL time.Duration,
) EmployeeServiceInterface {
	return &EmployeeService{
		pool:         pool,
		employeeRepo: employeeRepo,
		documentRepo: documentRepo,
		cache:        cache,
		fileStorage:  fileStorage,
		logger:       logger,
		cacheTTL:     cacheTTL,
	}
}

type employeeListCache struct {
	List  []dto.EmployeeDTO `json:"list"`
	Total uint64            `json:"total"`
}

func (s *EmployeeService) GetEmployees(ctx context.Context, filter types.Filter) ([]dto.EmployeeDTO, uint64, error) {
	cacheKey := filter.CacheKey("employees")

	if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
		var payload employeeListCache
		if err := json.Unmarshal([]byte(cached), &payload); err == nil {
			return payload.List, payload.Total, nil
		}
		// Битую запись не чиним, просто идём в базу.
		s.logger.Warn("повреждённая запись кеша", zap.String("key", cacheKey))
	}

	employees, total, err := s.employeeRepo.GetEmployees(ctx, filter)
	if err != nil {
		s.logger.Error("Ошибка при получении списка сотрудников", zap.Error(err))
		return nil, 0, err
	}

	list := make([]dto.EmployeeDTO, len(employees))
	for i, e := range employees {
		list[i] = mapEmployeeToDTO(e)
	}

	if payload, err := json.Marshal(employeeListCache{List: list, Total: total}); err == nil {
		if err := s.cache.Set(ctx, cacheKey, string(payload), s.cacheTTL); err != nil {
			s.logger.Warn("не удалось записать кеш списка сотрудников", zap.Error(err))
		}
	}

	return list, total, nil
}

func (s *EmployeeService) GetShortEmployees(ctx context.Context) ([]dto.ShortEmployeeDTO, error) {
	return s.employeeRepo.GetShortEmployees(ctx)
}

func (s *EmployeeService) FindEmployee(ctx context.Context, id uint64) (*dto.EmployeeDetailDTO, error) {
	employee, documents, err := s.employeeRepo.FindEmployee(ctx, id)
	if err != nil {
		if !errors.Is(err, apperrors.ErrEmployeeNotFound) {
			s.logger.Error("Ошибка при загрузке карточки сотрудника", zap.Uint64("id", id), zap.Error(err))
		}
		return nil, err
	}

	detail := &dto.EmployeeDetailDTO{
		EmployeeDTO: mapEmployeeToDTO(*employee),
		Documents:   documents,
	}
	return detail, nil
}

// ValidateEmployee — проверка записи целиком плюс приложенных файлов.
// Возвращает карту поле→сообщение как данные, пустая карта — запись валидна.
func (s *EmployeeService) ValidateEmployee(data dto.CreateEmployeeDTO, files EmployeeFiles) map[string]string {
	fields := validation.EmployeeFields{
		FullName:    data.FullName,
		Email:       data.Email,
		PhoneNumber: data.PhoneNumber,
		DateOfBirth: data.DateOfBirth,
		JobTitle:    data.JobTitle,
		Department:  data.Department,
		Salary:      data.Salary,
		StartDate:   data.StartDate,
		EndDate:     data.EndDate,
	}
	if files.Photo != nil && files.Photo.Size > 0 {
		fields.PhotoPath = files.Photo.Filename
	}

	errs := validation.ValidateEmployee(fields)

	documentErrs := validation.ValidateDocuments(map[string]*multipart.FileHeader{
		"cv":          files.CV,
		"id_document": files.IDDocument,
	})
	for field, msg := range documentErrs {
		errs[field] = msg
	}

	if _, ok := errs["photo"]; !ok && files.Photo != nil && files.Photo.Size > 0 {
		if src, err := files.Photo.Open(); err == nil {
			if err := validation.ValidateFile(files.Photo, src, "photo"); err != nil {
				errs["photo"] = err.Error()
			}
			src.Close()
		} else {
			errs["photo"] = "Не удалось прочитать файл"
		}
	}

	return errs
}

func (s *EmployeeService) ValidateEmployeeField(field, value string) string {
	return validation.ValidateEmployeeField(field, value)
}

type savedEmployeeFiles struct {
	photoPath string
	cvPath    string
	idPath    string
}

// paths возвращает все фактически сохранённые пути.
func (f savedEmployeeFiles) paths() []string {
	out := make([]string, 0, 3)
	for _, p := range []string{f.photoPath, f.cvPath, f.idPath} {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// CreateEmployee создаёт сотрудника и его документы в одной транзакции.
// Файлы сохраняются в хранилище до открытия транзакции (параллельно);
// при любой ошибке транзакции уже записанные файлы удаляются
// компенсирующим шагом, чтобы не копить осиротевшие файлы.
func (s *EmployeeService) CreateEmployee(ctx context.Context, data dto.CreateEmployeeDTO, files EmployeeFiles) (uint64, error) {
	if errs := s.ValidateEmployee(data, files); len(errs) > 0 {
		return 0, apperrors.NewValidationError(errs)
	}

	dateOfBirth, err := time.Parse(validation.DateLayout, data.DateOfBirth)
	if err != nil {
		return 0, apperrors.NewValidationError(map[string]string{"date_of_birth": "Неверный формат даты"})
	}
	startDate, err := time.Parse(validation.DateLayout, data.StartDate)
	if err != nil {
		return 0, apperrors.NewValidationError(map[string]string{"start_date": "Неверный формат даты"})
	}
	var endDate null.Time
	if data.EndDate != "" {
		parsed, err := time.Parse(validation.DateLayout, data.EndDate)
		if err != nil {
			return 0, apperrors.NewValidationError(map[string]string{"end_date": "Неверный формат даты"})
		}
		endDate = null.TimeFrom(parsed)
	}

	saved, err := s.saveEmployeeFiles(files)
	if err != nil {
		s.logger.Error("Ошибка сохранения файлов сотрудника", zap.Error(err))
		s.cleanupFiles(saved)
		return 0, fmt.Errorf("%w: %v", apperrors.ErrStorageUnavailable, err)
	}

	employee := entities.Employee{
		FullName:    data.FullName,
		Email:       data.Email,
		PhoneNumber: null.NewString(data.PhoneNumber, data.PhoneNumber != ""),
		DateOfBirth: dateOfBirth,
		JobTitle:    data.JobTitle,
		Department:  data.Department,
		Salary:      data.Salary,
		StartDate:   startDate,
		EndDate:     endDate,
		PhotoPath:   null.NewString(saved.photoPath, saved.photoPath != ""),
	}

	var newID uint64
	err = repositories.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		id, err := s.employeeRepo.CreateEmployeeInTx(ctx, tx, employee)
		if err != nil {
			return err
		}
		newID = id

		if saved.cvPath != "" {
			if _, err := s.documentRepo.CreateDocumentInTx(ctx, tx, entities.Document{
				EmployeeID:   newID,
				DocumentType: entities.DocumentTypeCV,
				FilePath:     saved.cvPath,
			}); err != nil {
				return err
			}
		}
		if saved.idPath != "" {
			if _, err := s.documentRepo.CreateDocumentInTx(ctx, tx, entities.Document{
				EmployeeID:   newID,
				DocumentType: entities.DocumentTypeID,
				FilePath:     saved.idPath,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// Компенсация: транзакция откатилась, файлы вне её границ — убираем сами.
		s.cleanupFiles(saved)
		if !errors.Is(err, apperrors.ErrDuplicateEmail) {
			s.logger.Error("Ошибка транзакции создания сотрудника", zap.Error(err))
		}
		return 0, err
	}

	if err := s.cache.DelByPrefix(ctx, employeeCachePrefix); err != nil {
		s.logger.Warn("не удалось инвалидировать кеш сотрудников", zap.Error(err))
	}

	s.logger.Info("Сотрудник успешно создан", zap.Uint64("id", newID))
	return newID, nil
}

// saveEmployeeFiles пишет приложенные файлы в хранилище параллельно.
// Возвращает пути всего, что успело сохраниться, даже при ошибке —
// вызывающая сторона решает, что с ними делать.
func (s *EmployeeService) saveEmployeeFiles(files EmployeeFiles) (savedEmployeeFiles, error) {
	var saved savedEmployeeFiles
	var g errgroup.Group

	type upload struct {
		header *multipart.FileHeader
		prefix string
		dest   *string
	}
	uploads := []upload{
		{files.Photo, "photos", &saved.photoPath},
		{files.CV, "documents/cv", &saved.cvPath},
		{files.IDDocument, "documents/id", &saved.idPath},
	}

	for _, u := range uploads {
		if u.header == nil || u.header.Size == 0 {
			continue
		}
		g.Go(func() error {
			src, err := u.header.Open()
			if err != nil {
				return fmt.Errorf("не удалось открыть файл %s: %w", u.header.Filename, err)
			}
			defer src.Close()

			path, err := s.fileStorage.Save(src, u.header.Filename, u.prefix)
			if err != nil {
				return fmt.Errorf("не удалось сохранить файл %s: %w", u.header.Filename, err)
			}
			*u.dest = path
			return nil
		})
	}

	err := g.Wait()
	return saved, err
}

func (s *EmployeeService) cleanupFiles(saved savedEmployeeFiles) {
	for _, path := range saved.paths() {
		if err := s.fileStorage.Delete(path); err != nil {
			s.logger.Warn("не удалось удалить файл при компенсации", zap.String("path", path), zap.Error(err))
		}
	}
}

// UpdateEmployee — прямая перезапись колонок без инвалидации детальных
// чтений: детальная выборка не кешируется. Списочный кеш сбрасывается.
func (s *EmployeeService) UpdateEmployee(ctx context.Context, id uint64, data dto.UpdateEmployeeDTO) error {
	if err := s.employeeRepo.UpdateEmployee(ctx, id, data); err != nil {
		if !errors.Is(err, apperrors.ErrEmployeeNotFound) && !errors.Is(err, apperrors.ErrDuplicateEmail) {
			s.logger.Error("Ошибка при обновлении сотрудника", zap.Uint64("id", id), zap.Error(err))
		}
		return err
	}

	if err := s.cache.DelByPrefix(ctx, employeeCachePrefix); err != nil {
		s.logger.Warn("не удалось инвалидировать кеш сотрудников", zap.Error(err))
	}

	s.logger.Info("Сотрудник успешно обновлен", zap.Uint64("id", id))
	return nil
}

func mapEmployeeToDTO(e entities.Employee) dto.EmployeeDTO {
	out := dto.EmployeeDTO{
		ID:          e.ID,
		FullName:    e.FullName,
		Email:       e.Email,
		DateOfBirth: e.DateOfBirth.Format(validation.DateLayout),
		JobTitle:    e.JobTitle,
		Department:  e.Department,
		Salary:      e.Salary,
		StartDate:   e.StartDate.Format(validation.DateLayout),
		IsActive:    e.IsActive,
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   e.UpdatedAt.Format(time.RFC3339),
	}
	if e.PhoneNumber.Valid {
		out.PhoneNumber = &e.PhoneNumber.String
	}
	if e.EndDate.Valid {
		formatted := e.EndDate.Time.Format(validation.DateLayout)
		out.EndDate = &formatted
	}
	if e.PhotoPath.Valid {
		out.PhotoPath = &e.PhotoPath.String
	}
	return out
}
