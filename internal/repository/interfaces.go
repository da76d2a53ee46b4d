package repository

import (
	"context"
	"errors"

	"github.com/baharkarakas/biblioteca-backend/internal/models"
)

// ErrNotFound is returned by every repository when the requested row
// does not exist. Services translate it into their own taxonomy.
var ErrNotFound = errors.New("not found")

type Books interface {
	Create(ctx context.Context, b models.Book) (models.Book, error)
	GetByID(ctx context.Context, id string) (models.Book, error)
	ExistsByISBN(ctx context.Context, isbn string) (bool, error)
	List(ctx context.Context) ([]models.Book, error)
	SearchByTitle(ctx context.Context, q string) ([]models.Book, error)
	SearchByAuthor(ctx context.Context, q string) ([]models.Book, error)
	ListByCategory(ctx context.Context, category string) ([]models.Book, error)
	Update(ctx context.Context, b models.Book) error
	Delete(ctx context.Context, id string) error

	// Reserve takes one available copy when there is one. The returned
	// bool reports whether a copy was taken; false with a nil error
	// means the book exists but has no copies left.
	Reserve(ctx context.Context, id string) (models.Book, bool, error)
	// Release puts one copy back. Callers pair it 1:1 with a prior
	// successful Reserve; the upper bound is not re-checked here.
	Release(ctx context.Context, id string) (models.Book, error)
}

type Users interface {
	// Create persists the user and links the role names carried on
	// u.Roles. Role names must already exist.
	Create(ctx context.Context, u models.User) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]models.User, error)
}

type Roles interface {
	GetByName(ctx context.Context, name string) (models.Role, error)
	List(ctx context.Context) ([]models.Role, error)
}

type Loans interface {
	Create(ctx context.Context, l models.Loan) (models.Loan, error)
	GetByID(ctx context.Context, id string) (models.Loan, error)
	List(ctx context.Context) ([]models.Loan, error)
	ListByUser(ctx context.Context, userID string) ([]models.Loan, error)
	ListByBook(ctx context.Context, bookID string) ([]models.Loan, error)
	ListByState(ctx context.Context, state models.LoanState) ([]models.Loan, error)
	ListByUserAndState(ctx context.Context, userID string, state models.LoanState) ([]models.Loan, error)
	Update(ctx context.Context, l models.Loan) error
	Delete(ctx context.Context, id string) error
}

type AuditLogs interface {
	Create(ctx context.Context, l models.AuditLog) error
}

// Tx is the repository view bound to a single database transaction.
// Only the entities touched by the loan lifecycle take part.
type Tx interface {
	Books() Books
	Loans() Loans
}

type TxRunner interface {
	// WithTx runs fn inside one serializable transaction. A returned
	// error aborts the transaction with no partial writes; transient
	// serialization conflicts are retried internally.
	WithTx(ctx context.Context, fn func(tx Tx) error) error
}
