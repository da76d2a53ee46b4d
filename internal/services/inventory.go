package services

import (
	"context"
	"fmt"

	"github.com/baharkarakas/biblioteca-backend/internal/models"
	repo "github.com/baharkarakas/biblioteca-backend/internal/repository"
)

// inventory is the book copy ledger. Every Release is paired 1:1 with
// a prior successful Reserve on the same loan, which is why Release
// does not re-check the total-copies bound; the ledger is never
// reachable from the API on its own.
type inventory struct{}

// Reserve takes one copy of the book or fails with ErrOutOfStock
// carrying the book's title. It must run on the tx-scoped Books repo
// of the surrounding loan mutation.
func (inventory) Reserve(ctx context.Context, books repo.Books, b models.Book) (models.Book, error) {
	got, ok, err := books.Reserve(ctx, b.ID)
	if err != nil {
		return models.Book{}, err
	}
	if !ok {
		return models.Book{}, fmt.Errorf("%w: %s", ErrOutOfStock, b.Title)
	}
	return got, nil
}

// Release puts one copy back.
func (inventory) Release(ctx context.Context, books repo.Books, bookID string) (models.Book, error) {
	return books.Release(ctx, bookID)
}
