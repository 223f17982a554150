package services

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"sync"
	"testing"
	"time"

	"staff-system/internal/dto"
	"staff-system/internal/entities"
	"staff-system/internal/repositories"
	"staff-system/pkg/types"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

// --- Фейковые репозитории ---

type fakeEmployeeRepo struct {
	getCalls  int
	employees []entities.Employee
	total     uint64

	findFn   func(ctx context.Context, id uint64) (*entities.Employee, []dto.DocumentDTO, error)
	createFn func(ctx context.Context, tx pgx.Tx, employee entities.Employee) (uint64, error)
	updateFn func(ctx context.Context, id uint64, data dto.UpdateEmployeeDTO) error
	existsFn func(ctx context.Context, q repositories.Executor, id uint64) (bool, error)
}

func (f *fakeEmployeeRepo) GetEmployees(ctx context.Context, filter types.Filter) ([]entities.Employee, uint64, error) {
	f.getCalls++
	return f.employees, f.total, nil
}

func (f *fakeEmployeeRepo) GetShortEmployees(ctx context.Context) ([]dto.ShortEmployeeDTO, error) {
	return []dto.ShortEmployeeDTO{}, nil
}

func (f *fakeEmployeeRepo) FindEmployee(ctx context.Context, id uint64) (*entities.Employee, []dto.DocumentDTO, error) {
	if f.findFn != nil {
		return f.findFn(ctx, id)
	}
	return nil, nil, nil
}

func (f *fakeEmployeeRepo) CreateEmployeeInTx(ctx context.Context, tx pgx.Tx, employee entities.Employee) (uint64, error) {
	if f.createFn != nil {
		return f.createFn(ctx, tx, employee)
	}
	return 1, nil
}

func (f *fakeEmployeeRepo) UpdateEmployee(ctx context.Context, id uint64, data dto.UpdateEmployeeDTO) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, id, data)
	}
	return nil
}

func (f *fakeEmployeeRepo) EmployeeExists(ctx context.Context, q repositories.Executor, id uint64) (bool, error) {
	if f.existsFn != nil {
		return f.existsFn(ctx, q, id)
	}
	return true, nil
}

type fakeDocumentRepo struct {
	created []entities.Document

	createFn func(ctx context.Context, tx pgx.Tx, document entities.Document) (uint64, error)
}

func (f *fakeDocumentRepo) CreateDocumentInTx(ctx context.Context, tx pgx.Tx, document entities.Document) (uint64, error) {
	if f.createFn != nil {
		return f.createFn(ctx, tx, document)
	}
	f.created = append(f.created, document)
	return uint64(len(f.created)), nil
}

type fakeTimesheetRepo struct {
	getCalls int
	list     []dto.TimesheetDTO
	total    uint64

	findFn    func(ctx context.Context, id uint64) (*dto.TimesheetDetailsDTO, error)
	overlapFn func(ctx context.Context, q repositories.Executor, employeeID uint64, start, end time.Time) (bool, error)
	createFn  func(ctx context.Context, tx pgx.Tx, employeeID uint64, start, end time.Time, summary null.String) (uint64, error)
}

func (f *fakeTimesheetRepo) GetTimesheets(ctx context.Context, filter types.Filter) ([]dto.TimesheetDTO, uint64, error) {
	f.getCalls++
	return f.list, f.total, nil
}

func (f *fakeTimesheetRepo) FindTimesheet(ctx context.Context, id uint64) (*dto.TimesheetDetailsDTO, error) {
	if f.findFn != nil {
		return f.findFn(ctx, id)
	}
	return &dto.TimesheetDetailsDTO{ID: id}, nil
}

func (f *fakeTimesheetRepo) HasOverlapping(ctx context.Context, q repositories.Executor, employeeID uint64, start, end time.Time) (bool, error) {
	if f.overlapFn != nil {
		return f.overlapFn(ctx, q, employeeID, start, end)
	}
	return false, nil
}

func (f *fakeTimesheetRepo) CreateTimesheetInTx(ctx context.Context, tx pgx.Tx, employeeID uint64, start, end time.Time, summary null.String) (uint64, error) {
	if f.createFn != nil {
		return f.createFn(ctx, tx, employeeID, start, end, summary)
	}
	return 1, nil
}

// --- Фейковое файловое хранилище ---

type fakeFileStorage struct {
	mu      sync.Mutex
	saved   []string
	deleted []string

	// failPrefix — префикс категории, для которой Save возвращает ошибку.
	failPrefix string
	failErr    error
}

func (f *fakeFileStorage) Save(file io.Reader, originalFileName, prefix string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failPrefix != "" && prefix == f.failPrefix {
		return "", f.failErr
	}
	path := prefix + "/" + originalFileName
	f.saved = append(f.saved, path)
	return path, nil
}

func (f *fakeFileStorage) Delete(filePath string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, filePath)
	return nil
}

// makeFileHeader собирает настоящий multipart.FileHeader с заданным
// содержимым, прогоняя его через разбор формы.
func makeFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["file"][0]
}

// Минимальные сигнатуры форматов для http.DetectContentType.
var (
	jpegBytes = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F'}
	pdfBytes  = []byte("%PDF-1.4 тестовый документ")
)
