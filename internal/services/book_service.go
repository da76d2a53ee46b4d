package services

import (
	"context"
	"fmt"

	"github.com/baharkarakas/biblioteca-backend/internal/models"
	repo "github.com/baharkarakas/biblioteca-backend/internal/repository"
)

type BookService struct{ books repo.Books }

func NewBookService(books repo.Books) *BookService { return &BookService{books: books} }

func (s *BookService) Create(ctx context.Context, b models.Book) (models.Book, error) {
	if err := b.Validate(); err != nil {
		return models.Book{}, err
	}
	exists, err := s.books.ExistsByISBN(ctx, b.ISBN)
	if err != nil {
		return models.Book{}, err
	}
	if exists {
		return models.Book{}, fmt.Errorf("%w: isbn %s", ErrConflict, b.ISBN)
	}
	return s.books.Create(ctx, b)
}

// Update replaces the mutable fields of an existing book. A changed
// ISBN is re-checked for uniqueness.
func (s *BookService) Update(ctx context.Context, id string, in models.Book) (models.Book, error) {
	b, err := s.GetByID(ctx, id)
	if err != nil {
		return models.Book{}, err
	}
	if in.ISBN != b.ISBN {
		exists, err := s.books.ExistsByISBN(ctx, in.ISBN)
		if err != nil {
			return models.Book{}, err
		}
		if exists {
			return models.Book{}, fmt.Errorf("%w: isbn %s", ErrConflict, in.ISBN)
		}
	}
	in.ID = b.ID
	in.RegisteredAt = b.RegisteredAt
	if err := in.Validate(); err != nil {
		return models.Book{}, err
	}
	if err := s.books.Update(ctx, in); err != nil {
		return models.Book{}, notFound("book", id, err)
	}
	return in, nil
}

func (s *BookService) Delete(ctx context.Context, id string) error {
	if err := s.books.Delete(ctx, id); err != nil {
		return notFound("book", id, err)
	}
	return nil
}

func (s *BookService) GetByID(ctx context.Context, id string) (models.Book, error) {
	b, err := s.books.GetByID(ctx, id)
	if err != nil {
		return models.Book{}, notFound("book", id, err)
	}
	return b, nil
}

func (s *BookService) List(ctx context.Context) ([]models.Book, error) {
	return s.books.List(ctx)
}

func (s *BookService) SearchByTitle(ctx context.Context, q string) ([]models.Book, error) {
	return s.books.SearchByTitle(ctx, q)
}

func (s *BookService) SearchByAuthor(ctx context.Context, q string) ([]models.Book, error) {
	return s.books.SearchByAuthor(ctx, q)
}

func (s *BookService) ListByCategory(ctx context.Context, category string) ([]models.Book, error) {
	return s.books.ListByCategory(ctx, category)
}
