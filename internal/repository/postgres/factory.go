package postgres

import (
	"context"

	repo "github.com/baharkarakas/biblioteca-backend/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so the same
// repository code serves pooled and transactional access.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Repositories struct {
	Books     repo.Books
	Users     repo.Users
	Roles     repo.Roles
	Loans     repo.Loans
	AuditLogs repo.AuditLogs
	Txs       repo.TxRunner
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Books:     &booksRepo{db: pool},
		Users:     &usersRepo{pool: pool},
		Roles:     &rolesRepo{db: pool},
		Loans:     &loansRepo{db: pool},
		AuditLogs: &auditLogsRepo{db: pool},
		Txs:       &txRunner{pool: pool},
	}
}
