package postgres

import (
	"context"
	"errors"

	"github.com/baharkarakas/biblioteca-backend/internal/models"
	repo "github.com/baharkarakas/biblioteca-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type loansRepo struct{ db querier }

const loanCols = `id, user_id, book_id, loan_date, due_date, returned_date, state, remarks, registered_at`

func scanLoan(row pgx.Row) (models.Loan, error) {
	var l models.Loan
	err := row.Scan(&l.ID, &l.UserID, &l.BookID, &l.LoanDate, &l.DueDate,
		&l.ReturnedDate, &l.State, &l.Remarks, &l.RegisteredAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Loan{}, repo.ErrNotFound
	}
	return l, err
}

func (r *loansRepo) Create(ctx context.Context, l models.Loan) (models.Loan, error) {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return scanLoan(r.db.QueryRow(ctx,
		`INSERT INTO loans(id, user_id, book_id, loan_date, due_date, state, remarks)
		 VALUES($1,$2,$3,$4,$5,$6,$7)
		 RETURNING `+loanCols,
		l.ID, l.UserID, l.BookID, l.LoanDate, l.DueDate, l.State, l.Remarks,
	))
}

func (r *loansRepo) GetByID(ctx context.Context, id string) (models.Loan, error) {
	return scanLoan(r.db.QueryRow(ctx,
		`SELECT `+loanCols+` FROM loans WHERE id=$1`, id))
}

func (r *loansRepo) List(ctx context.Context) ([]models.Loan, error) {
	return r.query(ctx, `SELECT `+loanCols+` FROM loans ORDER BY registered_at, id`)
}

func (r *loansRepo) ListByUser(ctx context.Context, userID string) ([]models.Loan, error) {
	return r.query(ctx,
		`SELECT `+loanCols+` FROM loans WHERE user_id=$1 ORDER BY registered_at, id`, userID)
}

func (r *loansRepo) ListByBook(ctx context.Context, bookID string) ([]models.Loan, error) {
	return r.query(ctx,
		`SELECT `+loanCols+` FROM loans WHERE book_id=$1 ORDER BY registered_at, id`, bookID)
}

func (r *loansRepo) ListByState(ctx context.Context, state models.LoanState) ([]models.Loan, error) {
	return r.query(ctx,
		`SELECT `+loanCols+` FROM loans WHERE state=$1 ORDER BY registered_at, id`, state)
}

func (r *loansRepo) ListByUserAndState(ctx context.Context, userID string, state models.LoanState) ([]models.Loan, error) {
	return r.query(ctx,
		`SELECT `+loanCols+` FROM loans WHERE user_id=$1 AND state=$2 ORDER BY registered_at, id`, userID, state)
}

// Update writes the mutable fields only; user and book references are
// fixed at creation.
func (r *loansRepo) Update(ctx context.Context, l models.Loan) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE loans SET returned_date=$2, state=$3, remarks=$4 WHERE id=$1`,
		l.ID, l.ReturnedDate, l.State, l.Remarks,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *loansRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM loans WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *loansRepo) query(ctx context.Context, sql string, args ...any) ([]models.Loan, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Loan
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
