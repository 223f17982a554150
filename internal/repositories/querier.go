package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// querier — общий контракт выполнения запросов, которому удовлетворяют
// *pgxpool.Pool и pgx.Tx. Методы репозиториев, работающие и внутри, и вне
// транзакции, принимают его явно.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// DBPool — то, что репозиториям нужно от пула соединений: запросы плюс
// начало транзакций. Совместим с *pgxpool.Pool и pgxmock.
type DBPool interface {
	querier
	Begin(ctx context.Context) (pgx.Tx, error)
}
