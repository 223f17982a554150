package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"staff-system/internal/dto"
	apperrors "staff-system/pkg/errors"
	"staff-system/pkg/types"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	timesheetAllowedFilterFields = map[string]string{"employee_id": "t.employee_id"}

	timesheetAllowedSortFields = map[string]string{
		"id":         "t.id",
		"start_time": "t.start_time",
		"end_time":   "t.end_time",
		"full_name":  "LOWER(e.full_name)",
		"created_at": "t.created_at",
	}
)

type TimesheetRepositoryInterface interface {
	GetTimesheets(ctx context.Context, filter types.Filter) ([]dto.TimesheetDTO, uint64, error)
	FindTimesheet(ctx context.Context, id uint64) (*dto.TimesheetDetailsDTO, error)
	HasOverlapping(ctx context.Context, q Executor, employeeID uint64, start, end time.Time) (bool, error)
	CreateTimesheetInTx(ctx context.Context, tx pgx.Tx, employeeID uint64, start, end time.Time, summary null.String) (uint64, error)
}

type TimesheetRepository struct {
	storage DBPool
	logger  *zap.Logger
}

func NewTimesheetRepository(storage DBPool, logger *zap.Logger) TimesheetRepositoryInterface {
	return &TimesheetRepository{storage: storage, logger: logger}
}

func (r *TimesheetRepository) buildFilterQuery(filter types.Filter) (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}
	argCounter := 1

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("e.full_name ILIKE $%d", argCounter))
		args = append(args, "%"+filter.Search+"%")
		argCounter++
	}

	for key, value := range filter.Filter {
		if dbColumn, ok := timesheetAllowedFilterFields[key]; ok {
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

// GetTimesheets выполняет подсчёт и постраничную выборку параллельно:
// оба запроса строятся над одним и тем же предикатом фильтра.
func (r *TimesheetRepository) GetTimesheets(ctx context.Context, filter types.Filter) ([]dto.TimesheetDTO, uint64, error) {
	whereClause, args := r.buildFilterQuery(filter)

	orderByClause := "ORDER BY t.id ASC"
	if len(filter.Sort) > 0 {
		sorts := []string{}
		for field, direction := range filter.Sort {
			if dbField, ok := timesheetAllowedSortFields[field]; ok {
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

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM timesheets t JOIN employees e ON t.employee_id = e.id %s",
		whereClause)

	pageArgs := append(append([]interface{}{}, args...), filter.Limit, filter.Offset)
	pageQuery := fmt.Sprintf("%s %s %s LIMIT $%d OFFSET $%d",
		timesheetSelectBase, whereClause, orderByClause, len(args)+1, len(args)+2)

	var total uint64
	timesheets := make([]dto.TimesheetDTO, 0)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := r.storage.QueryRow(gctx, countQuery, args...).Scan(&total); err != nil {
			return fmt.Errorf("ошибка подсчёта timesheets: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		rows, err := r.storage.Query(gctx, pageQuery, pageArgs...)
		if err != nil {
			return fmt.Errorf("ошибка выборки timesheets: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var item dto.TimesheetDTO
			var start, end time.Time
			if err := rows.Scan(&item.ID, &item.EmployeeID, &start, &end, &item.FullName); err != nil {
				return fmt.Errorf("ошибка сканирования timesheet: %w", err)
			}
			item.StartTime = start.Format(time.RFC3339)
			item.EndTime = end.Format(time.RFC3339)
			timesheets = append(timesheets, item)
		}
		return rows.Err()
	})

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return timesheets, total, nil
}

func (r *TimesheetRepository) FindTimesheet(ctx context.Context, id uint64) (*dto.TimesheetDetailsDTO, error) {
	var item dto.TimesheetDetailsDTO
	var start, end, createdAt, updatedAt time.Time
	var summary null.String

	err := r.storage.QueryRow(ctx, timesheetDetailQuery, id).Scan(
		&item.ID, &item.EmployeeID, &start, &end, &summary,
		&createdAt, &updatedAt, &item.EmployeeName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrTimesheetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки табеля id=%d: %w", id, err)
	}

	item.StartTime = start.Format(time.RFC3339)
	item.EndTime = end.Format(time.RFC3339)
	item.CreatedAt = createdAt.Format(time.RFC3339)
	item.UpdatedAt = updatedAt.Format(time.RFC3339)
	if summary.Valid {
		item.Summary = &summary.String
	}
	return &item, nil
}

// HasOverlapping — есть ли у сотрудника табель, пересекающийся с [start, end).
// Вызывается и внутри транзакции создания, и из интерактивной проверки формы.
func (r *TimesheetRepository) HasOverlapping(ctx context.Context, q Executor, employeeID uint64, start, end time.Time) (bool, error) {
	var existingID uint64
	err := q.QueryRow(ctx, timesheetOverlapQuery, employeeID, start, end).Scan(&existingID)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("ошибка проверки пересечений для сотрудника id=%d: %w", employeeID, err)
	}
	return true, nil
}

func (r *TimesheetRepository) CreateTimesheetInTx(ctx context.Context, tx pgx.Tx, employeeID uint64, start, end time.Time, summary null.String) (uint64, error) {
	var newID uint64
	err := tx.QueryRow(ctx, timesheetInsertQuery, employeeID, start, end, summary).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания timesheet: %w", err)
	}
	return newID, nil
}
