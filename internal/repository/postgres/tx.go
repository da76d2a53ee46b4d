package postgres

import (
	"context"
	"errors"

	repo "github.com/baharkarakas/biblioteca-backend/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// txAttempts bounds retries of serialization conflicts. Application
// errors are never retried.
const txAttempts = 3

type txRunner struct{ pool *pgxpool.Pool }

func (r *txRunner) WithTx(ctx context.Context, fn func(tx repo.Tx) error) error {
	var err error
	for attempt := 0; attempt < txAttempts; attempt++ {
		err = r.runOnce(ctx, fn)
		if err == nil || !isSerializationFailure(err) {
			return err
		}
	}
	return err
}

func (r *txRunner) runOnce(ctx context.Context, fn func(tx repo.Tx) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.Serializable,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return err
	}
	if err := fn(&repoTx{tx: tx}); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

type repoTx struct{ tx pgx.Tx }

func (t *repoTx) Books() repo.Books { return &booksRepo{db: t.tx} }
func (t *repoTx) Loans() repo.Loans { return &loansRepo{db: t.tx} }

func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && (pgErr.Code == "40001" || pgErr.Code == "40P01")
}
