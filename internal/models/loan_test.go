package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseLoanState(t *testing.T) {
	for _, s := range []string{"ACTIVO", "DEVUELTO", "VENCIDO", "CANCELADO"} {
		got, err := ParseLoanState(s)
		assert.NoError(t, err)
		assert.Equal(t, LoanState(s), got)
	}

	_, err := ParseLoanState("PERDIDO")
	assert.Error(t, err)
}

func TestLoanValidate(t *testing.T) {
	loanDate := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	l := Loan{
		UserID:   "u-1",
		BookID:   "b-1",
		LoanDate: loanDate,
		DueDate:  loanDate.AddDate(0, 0, 14),
	}
	assert.NoError(t, l.Validate())

	bad := l
	bad.DueDate = loanDate.AddDate(0, 0, -1)
	assert.Error(t, bad.Validate())

	bad = l
	bad.UserID = ""
	assert.Error(t, bad.Validate())
}
