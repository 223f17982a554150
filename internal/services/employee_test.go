package services

import (
	"context"
	"testing"
	"time"

	"staff-system/internal/dto"
	"staff-system/internal/entities"
	"staff-system/internal/repositories"
	apperrors "staff-system/pkg/errors"
	"staff-system/pkg/types"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func validCreateEmployeeDTO() dto.CreateEmployeeDTO {
	return dto.CreateEmployeeDTO{
		FullName:    "Иван Петров",
		Email:       "ivan.petrov@example.com",
		PhoneNumber: "+992 93 500-10-01",
		DateOfBirth: "1990-03-14",
		JobTitle:    "Инженер",
		Department:  "Разработка",
		Salary:      45000,
		StartDate:   "2021-02-01",
	}
}

func newEmployeeServiceForTest(t *testing.T, employeeRepo *fakeEmployeeRepo, documentRepo *fakeDocumentRepo, storage *fakeFileStorage) (EmployeeServiceInterface, pgxmock.PgxPoolIface, repositories.CacheRepositoryInterface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	cache := repositories.NewInMemoryCacheRepository()
	svc := NewEmployeeService(mock, employeeRepo, documentRepo, cache, storage, zap.NewNop(), 5*time.Minute)
	return svc, mock, cache
}

func TestEmployeeService_GetEmployees_CachesBySignature(t *testing.T) {
	repo := &fakeEmployeeRepo{
		employees: []entities.Employee{{ID: 1, FullName: "Иван Петров", Email: "ivan@example.com"}},
		total:     1,
	}
	svc, _, _ := newEmployeeServiceForTest(t, repo, &fakeDocumentRepo{}, &fakeFileStorage{})
	ctx := context.Background()

	filter := types.Filter{Page: 1, Limit: 10, WithPagination: true}

	first, total, err := svc.GetEmployees(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)

	second, _, err := svc.GetEmployees(ctx, filter)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.getCalls, "повторный запрос с той же сигнатурой идёт из кеша")
	assert.Equal(t, first, second)

	// Другая сигнатура — другой ключ, снова в базу.
	_, _, err = svc.GetEmployees(ctx, types.Filter{Page: 2, Limit: 10, WithPagination: true})
	require.NoError(t, err)
	assert.Equal(t, 2, repo.getCalls)
}

func TestEmployeeService_UpdateEmployee_InvalidatesListCache(t *testing.T) {
	repo := &fakeEmployeeRepo{total: 0}
	svc, _, _ := newEmployeeServiceForTest(t, repo, &fakeDocumentRepo{}, &fakeFileStorage{})
	ctx := context.Background()

	filter := types.Filter{Page: 1, Limit: 10, WithPagination: true}

	_, _, err := svc.GetEmployees(ctx, filter)
	require.NoError(t, err)
	require.Equal(t, 1, repo.getCalls)

	require.NoError(t, svc.UpdateEmployee(ctx, 5, dto.UpdateEmployeeDTO{FullName: "Иван", Email: "ivan@example.com", Salary: 45000}))

	_, _, err = svc.GetEmployees(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.getCalls, "после обновления список перечитывается из базы")
}

func TestEmployeeService_CreateEmployee_ValidationError(t *testing.T) {
	svc, mock, _ := newEmployeeServiceForTest(t, &fakeEmployeeRepo{}, &fakeDocumentRepo{}, &fakeFileStorage{})

	data := validCreateEmployeeDTO()
	data.Email = "не email"
	data.Salary = 12000

	_, err := svc.CreateEmployee(context.Background(), data, EmployeeFiles{})

	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "email")
	assert.Contains(t, validationErr.Fields, "salary")
	assert.NoError(t, mock.ExpectationsWereMet(), "до транзакции дело не доходит")
}

func TestEmployeeService_CreateEmployee_Success(t *testing.T) {
	employeeRepo := &fakeEmployeeRepo{
		createFn: func(ctx context.Context, tx pgx.Tx, employee entities.Employee) (uint64, error) {
			return 42, nil
		},
	}
	documentRepo := &fakeDocumentRepo{}
	storage := &fakeFileStorage{}
	svc, mock, cache := newEmployeeServiceForTest(t, employeeRepo, documentRepo, storage)
	ctx := context.Background()

	// Кеш списка заполнен и должен быть сброшен созданием.
	require.NoError(t, cache.Set(ctx, "employees-1--10-0-true", "устарело", time.Minute))

	mock.ExpectBegin()
	mock.ExpectCommit()

	files := EmployeeFiles{
		Photo:      makeFileHeader(t, "face.jpg", jpegBytes),
		CV:         makeFileHeader(t, "cv.pdf", pdfBytes),
		IDDocument: makeFileHeader(t, "passport.pdf", pdfBytes),
	}

	id, err := svc.CreateEmployee(ctx, validCreateEmployeeDTO(), files)

	require.NoError(t, err)
	assert.Equal(t, uint64(42), id)
	assert.Len(t, storage.saved, 3)
	assert.Empty(t, storage.deleted)

	require.Len(t, documentRepo.created, 2)
	docTypes := []string{documentRepo.created[0].DocumentType, documentRepo.created[1].DocumentType}
	assert.Contains(t, docTypes, entities.DocumentTypeCV)
	assert.Contains(t, docTypes, entities.DocumentTypeID)
	for _, doc := range documentRepo.created {
		assert.Equal(t, uint64(42), doc.EmployeeID)
	}

	_, err = cache.Get(ctx, "employees-1--10-0-true")
	assert.ErrorIs(t, err, repositories.ErrCacheMiss, "кеш списков инвалидирован")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeService_CreateEmployee_DuplicateEmailRollsBackFiles(t *testing.T) {
	employeeRepo := &fakeEmployeeRepo{
		createFn: func(ctx context.Context, tx pgx.Tx, employee entities.Employee) (uint64, error) {
			return 0, apperrors.ErrDuplicateEmail
		},
	}
	storage := &fakeFileStorage{}
	svc, mock, _ := newEmployeeServiceForTest(t, employeeRepo, &fakeDocumentRepo{}, storage)

	mock.ExpectBegin()
	mock.ExpectRollback()

	files := EmployeeFiles{
		Photo: makeFileHeader(t, "face.jpg", jpegBytes),
		CV:    makeFileHeader(t, "cv.pdf", pdfBytes),
	}

	_, err := svc.CreateEmployee(context.Background(), validCreateEmployeeDTO(), files)

	assert.ErrorIs(t, err, apperrors.ErrDuplicateEmail)
	assert.ElementsMatch(t, storage.saved, storage.deleted, "все сохранённые файлы удалены компенсацией")
	require.Len(t, storage.deleted, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeService_CreateEmployee_DocumentFailureRollsBack(t *testing.T) {
	documentRepo := &fakeDocumentRepo{
		createFn: func(ctx context.Context, tx pgx.Tx, document entities.Document) (uint64, error) {
			return 0, assert.AnError
		},
	}
	storage := &fakeFileStorage{}
	svc, mock, _ := newEmployeeServiceForTest(t, &fakeEmployeeRepo{}, documentRepo, storage)

	mock.ExpectBegin()
	mock.ExpectRollback()

	files := EmployeeFiles{CV: makeFileHeader(t, "cv.pdf", pdfBytes)}

	_, err := svc.CreateEmployee(context.Background(), validCreateEmployeeDTO(), files)

	assert.ErrorIs(t, err, assert.AnError)
	assert.ElementsMatch(t, storage.saved, storage.deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeService_CreateEmployee_StorageFailure(t *testing.T) {
	storage := &fakeFileStorage{failPrefix: "documents/cv", failErr: assert.AnError}
	svc, mock, _ := newEmployeeServiceForTest(t, &fakeEmployeeRepo{}, &fakeDocumentRepo{}, storage)

	files := EmployeeFiles{
		Photo: makeFileHeader(t, "face.jpg", jpegBytes),
		CV:    makeFileHeader(t, "cv.pdf", pdfBytes),
	}

	_, err := svc.CreateEmployee(context.Background(), validCreateEmployeeDTO(), files)

	assert.ErrorIs(t, err, apperrors.ErrStorageUnavailable)
	assert.ElementsMatch(t, storage.saved, storage.deleted, "успевшие записаться файлы удалены")
	assert.NoError(t, mock.ExpectationsWereMet(), "транзакция не открывалась")
}

func TestEmployeeService_ValidateEmployee_BadPhotoExtension(t *testing.T) {
	svc, _, _ := newEmployeeServiceForTest(t, &fakeEmployeeRepo{}, &fakeDocumentRepo{}, &fakeFileStorage{})

	files := EmployeeFiles{Photo: makeFileHeader(t, "face.bmp", []byte("BM не картинка"))}
	errs := svc.ValidateEmployee(validCreateEmployeeDTO(), files)

	assert.Contains(t, errs, "photo")
}

func TestEmployeeService_ValidateEmployee_BadDocumentMime(t *testing.T) {
	svc, _, _ := newEmployeeServiceForTest(t, &fakeEmployeeRepo{}, &fakeDocumentRepo{}, &fakeFileStorage{})

	// Картинка вместо PDF в поле CV.
	files := EmployeeFiles{CV: makeFileHeader(t, "cv.pdf", jpegBytes)}
	errs := svc.ValidateEmployee(validCreateEmployeeDTO(), files)

	assert.Contains(t, errs, "cv")
}

func TestEmployeeService_FindEmployee(t *testing.T) {
	repo := &fakeEmployeeRepo{
		findFn: func(ctx context.Context, id uint64) (*entities.Employee, []dto.DocumentDTO, error) {
			if id != 7 {
				return nil, nil, apperrors.ErrEmployeeNotFound
			}
			return &entities.Employee{
					ID:          7,
					FullName:    "Мария Сидорова",
					Email:       "maria@example.com",
					DateOfBirth: time.Date(1988, 11, 2, 0, 0, 0, 0, time.UTC),
					StartDate:   time.Date(2019, 6, 15, 0, 0, 0, 0, time.UTC),
				}, []dto.DocumentDTO{
					{ID: 10, DocumentType: entities.DocumentTypeCV, FilePath: "/uploads/documents/cv/a.pdf"},
				}, nil
		},
	}
	svc, _, _ := newEmployeeServiceForTest(t, repo, &fakeDocumentRepo{}, &fakeFileStorage{})

	detail, err := svc.FindEmployee(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Мария Сидорова", detail.FullName)
	assert.Equal(t, "1988-11-02", detail.DateOfBirth)
	require.Len(t, detail.Documents, 1)

	_, err = svc.FindEmployee(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrEmployeeNotFound)
}
