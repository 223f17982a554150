package repositories

import (
	"context"
	"fmt"

	"staff-system/internal/entities"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type DocumentRepositoryInterface interface {
	CreateDocumentInTx(ctx context.Context, tx pgx.Tx, document entities.Document) (uint64, error)
}

// Документы создаются только внутри транзакции создания сотрудника,
// поэтому у репозитория нет методов вне транзакции: чтение идёт через
// детальную выборку сотрудника.
type DocumentRepository struct {
	logger *zap.Logger
}

func NewDocumentRepository(logger *zap.Logger) DocumentRepositoryInterface {
	return &DocumentRepository{logger: logger}
}

func (r *DocumentRepository) CreateDocumentInTx(ctx context.Context, tx pgx.Tx, document entities.Document) (uint64, error) {
	var newID uint64
	err := tx.QueryRow(ctx, documentInsertQuery,
		document.EmployeeID,
		document.DocumentType,
		document.FilePath,
	).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания документа типа %s: %w", document.DocumentType, err)
	}
	return newID, nil
}
