package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// WithTx выполняет fn в рамках одной транзакции. Именованный результат
// позволяет defer-блоку видеть ошибку из fn: при ошибке или панике —
// откат, иначе — коммит, ошибка коммита возвращается вызывающему.
func WithTx(ctx context.Context, pool DBPool, fn func(tx pgx.Tx) error) (err error) {
	var tx pgx.Tx
	tx, err = pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("не удалось начать транзакцию: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		} else if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				err = fmt.Errorf("ошибка при откате транзакции: %v (изначальная ошибка: %w)", rbErr, err)
			}
		} else {
			err = tx.Commit(ctx)
			if err != nil {
				err = fmt.Errorf("ошибка при коммите транзакции: %w", err)
			}
		}
	}()

	err = fn(tx)
	return err
}
