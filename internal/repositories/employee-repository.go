package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"staff-system/internal/dto"
	"staff-system/internal/entities"
	apperrors "staff-system/pkg/errors"
	"staff-system/pkg/types"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const employeeTable = "employees"

var (
	employeeAllowedFilterFields = map[string]string{"department": "e.department"}

	// Логическое имя сортировки → физическое выражение. Текстовые колонки
	// сортируются без учёта регистра.
	employeeAllowedSortFields = map[string]string{
		"id":         "e.id",
		"full_name":  "LOWER(e.full_name)",
		"email":      "LOWER(e.email)",
		"job_title":  "LOWER(e.job_title)",
		"department": "LOWER(e.department)",
		"salary":     "e.salary",
		"start_date": "e.start_date",
		"created_at": "e.created_at",
	}
)

type EmployeeRepositoryInterface interface {
	GetEmployees(ctx context.Context, filter types.Filter) ([]entities.Employee, uint64, error)
	GetShortEmployees(ctx context.Context) ([]dto.ShortEmployeeDTO, error)
	FindEmployee(ctx context.Context, id uint64) (*entities.Employee, []dto.DocumentDTO, error)
	CreateEmployeeInTx(ctx context.Context, tx pgx.Tx, employee entities.Employee) (uint64, error)
	UpdateEmployee(ctx context.Context, id uint64, data dto.UpdateEmployeeDTO) error
	EmployeeExists(ctx context.Context, q Executor, id uint64) (bool, error)
}

// Executor — публичный псевдоним querier для методов, которые вызываются
// то с пулом, то с транзакцией.
type Executor = querier

type EmployeeRepository struct {
	storage DBPool
	logger  *zap.Logger
}

func NewEmployeeRepository(storage DBPool, logger *zap.Logger) EmployeeRepositoryInterface {
	return &EmployeeRepository{storage: storage, logger: logger}
}

func scanEmployee(row pgx.Row) (*entities.Employee, error) {
	var e entities.Employee
	err := row.Scan(
		&e.ID, &e.FullName, &e.Email, &e.PhoneNumber, &e.DateOfBirth,
		&e.JobTitle, &e.Department, &e.Salary, &e.StartDate, &e.EndDate,
		&e.IsActive, &e.PhotoPath, &e.CreatedAt, &e.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования employee: %w", err)
	}
	return &e, nil
}

func (r *EmployeeRepository) buildFilterQuery(filter types.Filter) (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}
	argCounter := 1

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(e.full_name ILIKE $%d OR e.email ILIKE $%d OR e.job_title ILIKE $%d)",
			argCounter, argCounter+1, argCounter+2,
		))
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern, pattern)
		argCounter += 3
	}

	for key, value := range filter.Filter {
		if dbColumn, ok := employeeAllowedFilterFields[key]; ok {
			conditions = append(conditions, fmt.Sprintf("%s = $%d", dbColumn, argCounter))
			args = append(args, value)
			argCounter++
		}
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

func (r *EmployeeRepository) countEmployees(ctx context.Context, filter types.Filter) (uint64, error) {
	whereClause, args := r.buildFilterQuery(filter)
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s AS e %s", employeeTable, whereClause)
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("ошибка подсчёта employees: %w", err)
	}
	return total, nil
}

func (r *EmployeeRepository) GetEmployees(ctx context.Context, filter types.Filter) ([]entities.Employee, uint64, error) {
	total, err := r.countEmployees(ctx, filter)
	if err != nil || total == 0 {
		return []entities.Employee{}, total, err
	}

	whereClause, args := r.buildFilterQuery(filter)

	orderByClause := "ORDER BY e.id ASC"
	if len(filter.Sort) > 0 {
		sorts := []string{}
		for field, direction := range filter.Sort {
			if dbField, ok := employeeAllowedSortFields[field]; ok {
				order := "ASC"
				if strings.ToLower(direction) == "desc" {
					order = "DESC"
				}
				sorts = append(sorts, fmt.Sprintf("%s %s", dbField, order))
			}
		}
		if len(sorts) > 0 {
			orderByClause = "ORDER BY " + strings.Join(sorts, ", ")
		}
	}

	limitClause := ""
	argCounter := len(args) + 1
	if filter.WithPagination {
		limitClause = fmt.Sprintf("LIMIT $%d OFFSET $%d", argCounter, argCounter+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	query := fmt.Sprintf("SELECT %s FROM %s e %s %s %s",
		employeeSelectColumns, employeeTable, whereClause, orderByClause, limitClause)

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка выборки employees: %w", err)
	}
	defer rows.Close()

	employees := make([]entities.Employee, 0)
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, err
		}
		employees = append(employees, *employee)
	}
	return employees, total, rows.Err()
}

func (r *EmployeeRepository) GetShortEmployees(ctx context.Context) ([]dto.ShortEmployeeDTO, error) {
	rows, err := r.storage.Query(ctx, employeeShortListQuery)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки списка сотрудников: %w", err)
	}
	defer rows.Close()

	list := make([]dto.ShortEmployeeDTO, 0)
	for rows.Next() {
		var item dto.ShortEmployeeDTO
		if err := rows.Scan(&item.ID, &item.FullName); err != nil {
			return nil, err
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

// FindEmployee возвращает карточку сотрудника вместе с документами одной
// выборкой: дочерние строки свёрнуты в json-массив, пустой срез — когда
// документов нет.
func (r *EmployeeRepository) FindEmployee(ctx context.Context, id uint64) (*entities.Employee, []dto.DocumentDTO, error) {
	var e entities.Employee
	var documentsJSON []byte

	err := r.storage.QueryRow(ctx, employeeDetailQuery, id).Scan(
		&e.ID, &e.FullName, &e.Email, &e.PhoneNumber, &e.DateOfBirth,
		&e.JobTitle, &e.Department, &e.Salary, &e.StartDate, &e.EndDate,
		&e.IsActive, &e.PhotoPath, &e.CreatedAt, &e.UpdatedAt,
		&documentsJSON,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, apperrors.ErrEmployeeNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("ошибка загрузки сотрудника id=%d: %w", id, err)
	}

	documents := make([]dto.DocumentDTO, 0)
	if len(documentsJSON) > 0 {
		if err := json.Unmarshal(documentsJSON, &documents); err != nil {
			return nil, nil, fmt.Errorf("ошибка разбора документов сотрудника id=%d: %w", id, err)
		}
	}

	return &e, documents, nil
}

func (r *EmployeeRepository) CreateEmployeeInTx(ctx context.Context, tx pgx.Tx, employee entities.Employee) (uint64, error) {
	var newID uint64
	err := tx.QueryRow(ctx, employeeInsertQuery,
		employee.FullName,
		employee.Email,
		employee.PhoneNumber,
		employee.DateOfBirth,
		employee.JobTitle,
		employee.Department,
		employee.Salary,
		employee.StartDate,
		employee.EndDate,
		employee.PhotoPath,
	).Scan(&newID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, apperrors.ErrDuplicateEmail
		}
		return 0, fmt.Errorf("ошибка создания employee: %w", err)
	}
	return newID, nil
}

// UpdateEmployee перезаписывает перечисленные колонки целиком значениями
// из data. Оптимистичных блокировок нет, последняя запись побеждает.
func (r *EmployeeRepository) UpdateEmployee(ctx context.Context, id uint64, data dto.UpdateEmployeeDTO) error {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Update(employeeTable).
		Set("full_name", data.FullName).
		Set("email", data.Email).
		Set("phone_number", data.PhoneNumber).
		Set("job_title", data.JobTitle).
		Set("department", data.Department).
		Set("salary", data.Salary).
		Set("photo_path", data.PhotoPath).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса UpdateEmployee: %w", err)
	}

	result, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrDuplicateEmail
		}
		return fmt.Errorf("ошибка обновления employee id=%d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrEmployeeNotFound
	}
	return nil
}

func (r *EmployeeRepository) EmployeeExists(ctx context.Context, q Executor, id uint64) (bool, error) {
	var exists bool
	if err := q.QueryRow(ctx, employeeExistsQuery, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("ошибка проверки существования сотрудника id=%d: %w", id, err)
	}
	return exists, nil
}
