package postgres

import (
	"context"
	"errors"

	"github.com/baharkarakas/biblioteca-backend/internal/models"
	repo "github.com/baharkarakas/biblioteca-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type booksRepo struct{ db querier }

const bookCols = `id, isbn, title, author, publisher, category, publication_year, available_copies, total_copies, description, registered_at`

func scanBook(row pgx.Row) (models.Book, error) {
	var b models.Book
	err := row.Scan(&b.ID, &b.ISBN, &b.Title, &b.Author, &b.Publisher, &b.Category,
		&b.PublicationYear, &b.AvailableCopies, &b.TotalCopies, &b.Description, &b.RegisteredAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Book{}, repo.ErrNotFound
	}
	return b, err
}

func (r *booksRepo) Create(ctx context.Context, b models.Book) (models.Book, error) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return scanBook(r.db.QueryRow(ctx,
		`INSERT INTO books(id, isbn, title, author, publisher, category, publication_year, available_copies, total_copies, description)
		 VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		 RETURNING `+bookCols,
		b.ID, b.ISBN, b.Title, b.Author, b.Publisher, b.Category,
		b.PublicationYear, b.AvailableCopies, b.TotalCopies, b.Description,
	))
}

func (r *booksRepo) GetByID(ctx context.Context, id string) (models.Book, error) {
	return scanBook(r.db.QueryRow(ctx,
		`SELECT `+bookCols+` FROM books WHERE id=$1`, id))
}

func (r *booksRepo) ExistsByISBN(ctx context.Context, isbn string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM books WHERE isbn=$1)`, isbn).Scan(&exists)
	return exists, err
}

func (r *booksRepo) List(ctx context.Context) ([]models.Book, error) {
	return r.query(ctx, `SELECT `+bookCols+` FROM books ORDER BY registered_at, id`)
}

func (r *booksRepo) SearchByTitle(ctx context.Context, q string) ([]models.Book, error) {
	return r.query(ctx,
		`SELECT `+bookCols+` FROM books WHERE title ILIKE '%'||$1||'%' ORDER BY registered_at, id`, q)
}

func (r *booksRepo) SearchByAuthor(ctx context.Context, q string) ([]models.Book, error) {
	return r.query(ctx,
		`SELECT `+bookCols+` FROM books WHERE author ILIKE '%'||$1||'%' ORDER BY registered_at, id`, q)
}

func (r *booksRepo) ListByCategory(ctx context.Context, category string) ([]models.Book, error) {
	return r.query(ctx,
		`SELECT `+bookCols+` FROM books WHERE category=$1 ORDER BY registered_at, id`, category)
}

func (r *booksRepo) Update(ctx context.Context, b models.Book) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE books
		    SET isbn=$2, title=$3, author=$4, publisher=$5, category=$6,
		        publication_year=$7, available_copies=$8, total_copies=$9, description=$10
		  WHERE id=$1`,
		b.ID, b.ISBN, b.Title, b.Author, b.Publisher, b.Category,
		b.PublicationYear, b.AvailableCopies, b.TotalCopies, b.Description,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *booksRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM books WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// Reserve is a single conditional decrement so the availability check
// and the write cannot be split by a concurrent caller.
func (r *booksRepo) Reserve(ctx context.Context, id string) (models.Book, bool, error) {
	b, err := scanBook(r.db.QueryRow(ctx,
		`UPDATE books
		    SET available_copies = available_copies - 1
		  WHERE id=$1 AND available_copies > 0
		  RETURNING `+bookCols,
		id,
	))
	if errors.Is(err, repo.ErrNotFound) {
		return models.Book{}, false, nil
	}
	if err != nil {
		return models.Book{}, false, err
	}
	return b, true, nil
}

func (r *booksRepo) Release(ctx context.Context, id string) (models.Book, error) {
	return scanBook(r.db.QueryRow(ctx,
		`UPDATE books
		    SET available_copies = available_copies + 1
		  WHERE id=$1
		  RETURNING `+bookCols,
		id,
	))
}

func (r *booksRepo) query(ctx context.Context, sql string, args ...any) ([]models.Book, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
