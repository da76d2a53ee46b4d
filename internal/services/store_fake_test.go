package services

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/baharkarakas/biblioteca-backend/internal/models"
	repo "github.com/baharkarakas/biblioteca-backend/internal/repository"
)

// fakeStore is an in-memory stand-in for the postgres repositories.
// WithTx serializes transactions on txMu and restores a snapshot when
// the body fails, mirroring the real runner's atomicity.
type fakeStore struct {
	mu   sync.Mutex
	txMu sync.Mutex

	books     map[string]models.Book
	bookOrder []string
	loans     map[string]models.Loan
	loanOrder []string
	users     map[string]models.User
	roles     map[string]models.Role
	audits    []models.AuditLog
	seq       int

	// loanCreateErr makes loan inserts fail, for rollback tests.
	loanCreateErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		books: map[string]models.Book{},
		loans: map[string]models.Loan{},
		users: map[string]models.User{},
		roles: map[string]models.Role{
			models.RoleAdmin:   {ID: "r-admin", Name: models.RoleAdmin},
			models.RoleUsuario: {ID: "r-usuario", Name: models.RoleUsuario},
		},
	}
}

func (s *fakeStore) nextID(prefix string) string {
	s.seq++
	return prefix + "-" + strconv.Itoa(s.seq)
}

func (s *fakeStore) addBook(b models.Book) models.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.ID == "" {
		b.ID = s.nextID("b")
	}
	b.RegisteredAt = time.Now()
	s.books[b.ID] = b
	s.bookOrder = append(s.bookOrder, b.ID)
	return b
}

func (s *fakeStore) addUser(u models.User) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == "" {
		u.ID = s.nextID("u")
	}
	u.RegisteredAt = time.Now()
	s.users[u.ID] = u
	return u
}

func (s *fakeStore) book(id string) models.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.books[id]
}

func (s *fakeStore) auditCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.audits)
}

// ---- repository.Books ----

type fakeBooks struct{ s *fakeStore }

func (f fakeBooks) Create(_ context.Context, b models.Book) (models.Book, error) {
	return f.s.addBook(b), nil
}

func (f fakeBooks) GetByID(_ context.Context, id string) (models.Book, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	b, ok := f.s.books[id]
	if !ok {
		return models.Book{}, repo.ErrNotFound
	}
	return b, nil
}

func (f fakeBooks) ExistsByISBN(_ context.Context, isbn string) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, b := range f.s.books {
		if b.ISBN == isbn {
			return true, nil
		}
	}
	return false, nil
}

func (f fakeBooks) List(_ context.Context) ([]models.Book, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []models.Book
	for _, id := range f.s.bookOrder {
		if b, ok := f.s.books[id]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f fakeBooks) SearchByTitle(ctx context.Context, q string) ([]models.Book, error) {
	return f.filter(func(b models.Book) bool { return containsFold(b.Title, q) })
}

func (f fakeBooks) SearchByAuthor(ctx context.Context, q string) ([]models.Book, error) {
	return f.filter(func(b models.Book) bool { return containsFold(b.Author, q) })
}

func (f fakeBooks) ListByCategory(ctx context.Context, category string) ([]models.Book, error) {
	return f.filter(func(b models.Book) bool { return b.Category == category })
}

func (f fakeBooks) filter(keep func(models.Book) bool) ([]models.Book, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []models.Book
	for _, id := range f.s.bookOrder {
		if b, ok := f.s.books[id]; ok && keep(b) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f fakeBooks) Update(_ context.Context, b models.Book) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.books[b.ID]; !ok {
		return repo.ErrNotFound
	}
	f.s.books[b.ID] = b
	return nil
}

func (f fakeBooks) Delete(_ context.Context, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.books[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.s.books, id)
	return nil
}

func (f fakeBooks) Reserve(_ context.Context, id string) (models.Book, bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	b, ok := f.s.books[id]
	if !ok || b.AvailableCopies <= 0 {
		return models.Book{}, false, nil
	}
	b.AvailableCopies--
	f.s.books[id] = b
	return b, true, nil
}

func (f fakeBooks) Release(_ context.Context, id string) (models.Book, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	b, ok := f.s.books[id]
	if !ok {
		return models.Book{}, repo.ErrNotFound
	}
	b.AvailableCopies++
	f.s.books[id] = b
	return b, nil
}

// ---- repository.Loans ----

type fakeLoans struct{ s *fakeStore }

func (f fakeLoans) Create(_ context.Context, l models.Loan) (models.Loan, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.loanCreateErr != nil {
		return models.Loan{}, f.s.loanCreateErr
	}
	if l.ID == "" {
		l.ID = f.s.nextID("l")
	}
	l.RegisteredAt = time.Now()
	f.s.loans[l.ID] = l
	f.s.loanOrder = append(f.s.loanOrder, l.ID)
	return l, nil
}

func (f fakeLoans) GetByID(_ context.Context, id string) (models.Loan, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	l, ok := f.s.loans[id]
	if !ok {
		return models.Loan{}, repo.ErrNotFound
	}
	return l, nil
}

func (f fakeLoans) List(_ context.Context) ([]models.Loan, error) {
	return f.filter(func(models.Loan) bool { return true })
}

func (f fakeLoans) ListByUser(_ context.Context, userID string) ([]models.Loan, error) {
	return f.filter(func(l models.Loan) bool { return l.UserID == userID })
}

func (f fakeLoans) ListByBook(_ context.Context, bookID string) ([]models.Loan, error) {
	return f.filter(func(l models.Loan) bool { return l.BookID == bookID })
}

func (f fakeLoans) ListByState(_ context.Context, state models.LoanState) ([]models.Loan, error) {
	return f.filter(func(l models.Loan) bool { return l.State == state })
}

func (f fakeLoans) ListByUserAndState(_ context.Context, userID string, state models.LoanState) ([]models.Loan, error) {
	return f.filter(func(l models.Loan) bool { return l.UserID == userID && l.State == state })
}

func (f fakeLoans) filter(keep func(models.Loan) bool) ([]models.Loan, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []models.Loan
	for _, id := range f.s.loanOrder {
		if l, ok := f.s.loans[id]; ok && keep(l) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f fakeLoans) Update(_ context.Context, l models.Loan) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.loans[l.ID]; !ok {
		return repo.ErrNotFound
	}
	f.s.loans[l.ID] = l
	return nil
}

func (f fakeLoans) Delete(_ context.Context, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.loans[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.s.loans, id)
	return nil
}

// ---- repository.Users ----

type fakeUsers struct{ s *fakeStore }

func (f fakeUsers) Create(_ context.Context, u models.User) (models.User, error) {
	return f.s.addUser(u), nil
}

func (f fakeUsers) GetByID(_ context.Context, id string) (models.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	u, ok := f.s.users[id]
	if !ok {
		return models.User{}, repo.ErrNotFound
	}
	return u, nil
}

func (f fakeUsers) GetByUsername(_ context.Context, username string) (models.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, u := range f.s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, repo.ErrNotFound
}

func (f fakeUsers) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := f.GetByUsername(ctx, username)
	return err == nil, nil
}

func (f fakeUsers) ExistsByEmail(_ context.Context, email string) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, u := range f.s.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f fakeUsers) List(_ context.Context) ([]models.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []models.User
	for _, u := range f.s.users {
		out = append(out, u)
	}
	return out, nil
}

// ---- repository.Roles ----

type fakeRoles struct{ s *fakeStore }

func (f fakeRoles) GetByName(_ context.Context, name string) (models.Role, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	r, ok := f.s.roles[name]
	if !ok {
		return models.Role{}, repo.ErrNotFound
	}
	return r, nil
}

func (f fakeRoles) List(_ context.Context) ([]models.Role, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []models.Role
	for _, r := range f.s.roles {
		out = append(out, r)
	}
	return out, nil
}

// ---- repository.AuditLogs ----

type fakeAudits struct{ s *fakeStore }

func (f fakeAudits) Create(_ context.Context, l models.AuditLog) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.audits = append(f.s.audits, l)
	return nil
}

// ---- repository.Tx / TxRunner ----

type fakeTx struct{ s *fakeStore }

func (t fakeTx) Books() repo.Books { return fakeBooks{t.s} }
func (t fakeTx) Loans() repo.Loans { return fakeLoans{t.s} }

type fakeTxRunner struct{ s *fakeStore }

func (r fakeTxRunner) WithTx(_ context.Context, fn func(tx repo.Tx) error) error {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()

	r.s.mu.Lock()
	snapBooks := cloneMap(r.s.books)
	snapLoans := cloneMap(r.s.loans)
	snapBookOrder := append([]string(nil), r.s.bookOrder...)
	snapLoanOrder := append([]string(nil), r.s.loanOrder...)
	r.s.mu.Unlock()

	if err := fn(fakeTx{r.s}); err != nil {
		r.s.mu.Lock()
		r.s.books = snapBooks
		r.s.loans = snapLoans
		r.s.bookOrder = snapBookOrder
		r.s.loanOrder = snapLoanOrder
		r.s.mu.Unlock()
		return err
	}
	return nil
}

func cloneMap[V any](in map[string]V) map[string]V {
	out := make(map[string]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
