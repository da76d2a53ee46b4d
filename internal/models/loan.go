package models

import (
	"errors"
	"time"
)

type LoanState string

const (
	LoanActive    LoanState = "ACTIVO"
	LoanReturned  LoanState = "DEVUELTO"
	LoanOverdue   LoanState = "VENCIDO"
	LoanCancelled LoanState = "CANCELADO"
)

// ParseLoanState validates a state coming off the wire. VENCIDO and
// CANCELADO are accepted as filters even though no operation assigns
// them here.
func ParseLoanState(s string) (LoanState, error) {
	switch LoanState(s) {
	case LoanActive, LoanReturned, LoanOverdue, LoanCancelled:
		return LoanState(s), nil
	}
	return "", errors.New("unknown loan state: " + s)
}

type Loan struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	BookID       string     `json:"book_id"`
	LoanDate     time.Time  `json:"loan_date"`
	DueDate      time.Time  `json:"due_date"`
	ReturnedDate *time.Time `json:"returned_date,omitempty"`
	State        LoanState  `json:"state"`
	Remarks      string     `json:"remarks,omitempty"`
	RegisteredAt time.Time  `json:"registered_at"`
}

func (l *Loan) Validate() error {
	if l.UserID == "" {
		return errors.New("user_id required")
	}
	if l.BookID == "" {
		return errors.New("book_id required")
	}
	if l.LoanDate.IsZero() {
		return errors.New("loan_date required")
	}
	if l.DueDate.IsZero() {
		return errors.New("due_date required")
	}
	if l.DueDate.Before(l.LoanDate) {
		return errors.New("due_date must not be before loan_date")
	}
	if len(l.Remarks) > 200 {
		return errors.New("remarks max 200 characters")
	}
	return nil
}
