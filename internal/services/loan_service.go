package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/baharkarakas/biblioteca-backend/internal/metrics"
	"github.com/baharkarakas/biblioteca-backend/internal/models"
	repo "github.com/baharkarakas/biblioteca-backend/internal/repository"
	"github.com/baharkarakas/biblioteca-backend/internal/worker"
)

// LoanService owns the loan state machine. Every mutation runs inside
// one serializable transaction together with its inventory update, so
// a failure after the copy was reserved rolls the reservation back.
type LoanService struct {
	txs   repo.TxRunner
	loans repo.Loans
	users repo.Users
	audit repo.AuditLogs
	wp    *worker.Pool
	inv   inventory
}

func NewLoanService(txs repo.TxRunner, loans repo.Loans, users repo.Users, audit repo.AuditLogs, wp *worker.Pool) *LoanService {
	return &LoanService{txs: txs, loans: loans, users: users, audit: audit, wp: wp}
}

type CreateLoanInput struct {
	UserID   string
	BookID   string
	LoanDate time.Time
	DueDate  time.Time
	Remarks  string
}

// Create reserves a copy and persists the new ACTIVO loan as one unit.
func (s *LoanService) Create(ctx context.Context, in CreateLoanInput) (models.Loan, error) {
	loan := models.Loan{
		UserID:   in.UserID,
		BookID:   in.BookID,
		LoanDate: in.LoanDate,
		DueDate:  in.DueDate,
		Remarks:  in.Remarks,
		State:    models.LoanActive,
	}
	if err := loan.Validate(); err != nil {
		return models.Loan{}, err
	}
	if _, err := s.users.GetByID(ctx, in.UserID); err != nil {
		return models.Loan{}, notFound("user", in.UserID, err)
	}

	var created models.Loan
	err := s.txs.WithTx(ctx, func(tx repo.Tx) error {
		book, err := tx.Books().GetByID(ctx, in.BookID)
		if err != nil {
			return notFound("book", in.BookID, err)
		}
		if _, err := s.inv.Reserve(ctx, tx.Books(), book); err != nil {
			return err
		}
		created, err = tx.Loans().Create(ctx, loan)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrOutOfStock) {
			metrics.LoansOutOfStock.Inc()
		}
		return models.Loan{}, err
	}

	metrics.LoansCreated.Inc()
	s.auditAsync(created.ID, "created", "loan created")
	return created, nil
}

// RegisterReturn moves an ACTIVO loan to DEVUELTO and releases its
// copy. A second return on the same loan fails with ErrInvalidState.
func (s *LoanService) RegisterReturn(ctx context.Context, id string) (models.Loan, error) {
	var updated models.Loan
	err := s.txs.WithTx(ctx, func(tx repo.Tx) error {
		loan, err := tx.Loans().GetByID(ctx, id)
		if err != nil {
			return notFound("loan", id, err)
		}
		if loan.State != models.LoanActive {
			return fmt.Errorf("%w: loan %s is %s", ErrInvalidState, id, loan.State)
		}
		if _, err := s.inv.Release(ctx, tx.Books(), loan.BookID); err != nil {
			return err
		}
		now := time.Now()
		loan.ReturnedDate = &now
		loan.State = models.LoanReturned
		if err := tx.Loans().Update(ctx, loan); err != nil {
			return err
		}
		updated = loan
		return nil
	})
	if err != nil {
		return models.Loan{}, err
	}

	metrics.LoansReturned.Inc()
	s.auditAsync(updated.ID, "returned", "loan returned")
	return updated, nil
}

// Delete removes the loan. Deleting an ACTIVO loan restores its copy
// first; any other state leaves inventory untouched.
func (s *LoanService) Delete(ctx context.Context, id string) error {
	err := s.txs.WithTx(ctx, func(tx repo.Tx) error {
		loan, err := tx.Loans().GetByID(ctx, id)
		if err != nil {
			return notFound("loan", id, err)
		}
		if loan.State == models.LoanActive {
			if _, err := s.inv.Release(ctx, tx.Books(), loan.BookID); err != nil {
				return err
			}
		}
		return tx.Loans().Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.auditAsync(id, "deleted", "loan deleted")
	return nil
}

func (s *LoanService) GetByID(ctx context.Context, id string) (models.Loan, error) {
	loan, err := s.loans.GetByID(ctx, id)
	if err != nil {
		return models.Loan{}, notFound("loan", id, err)
	}
	return loan, nil
}

func (s *LoanService) List(ctx context.Context) ([]models.Loan, error) {
	return s.loans.List(ctx)
}

func (s *LoanService) ListByUser(ctx context.Context, userID string) ([]models.Loan, error) {
	return s.loans.ListByUser(ctx, userID)
}

func (s *LoanService) ListByBook(ctx context.Context, bookID string) ([]models.Loan, error) {
	return s.loans.ListByBook(ctx, bookID)
}

func (s *LoanService) ListByState(ctx context.Context, state models.LoanState) ([]models.Loan, error) {
	return s.loans.ListByState(ctx, state)
}

func (s *LoanService) ListByUserAndState(ctx context.Context, userID string, state models.LoanState) ([]models.Loan, error) {
	return s.loans.ListByUserAndState(ctx, userID, state)
}

func (s *LoanService) auditAsync(loanID, action, message string) {
	id := loanID
	s.wp.Submit(func() {
		var det map[string]any
		if message != "" {
			det = map[string]any{"message": message}
		}
		_ = s.audit.Create(context.Background(), models.AuditLog{
			EntityType: "loan",
			EntityID:   &id,
			Action:     action,
			Details:    det,
		})
	})
}
