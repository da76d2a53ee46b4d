package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/baharkarakas/biblioteca-backend/internal/api/httpx"
	"github.com/baharkarakas/biblioteca-backend/internal/api/validate"
	"github.com/baharkarakas/biblioteca-backend/internal/middleware"
	"github.com/baharkarakas/biblioteca-backend/internal/models"
	"github.com/baharkarakas/biblioteca-backend/internal/services"
	"github.com/go-chi/chi/v5"
)

type LoanHandler struct {
	Loans *services.LoanService
}

func NewLoanHandler(ls *services.LoanService) *LoanHandler {
	return &LoanHandler{Loans: ls}
}

const dateLayout = "2006-01-02"

type createLoanReq struct {
	UserID   string `json:"user_id"`
	BookID   string `json:"book_id"`
	LoanDate string `json:"loan_date"`
	DueDate  string `json:"due_date"`
	Remarks  string `json:"remarks"`
}

func (h *LoanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createLoanReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid request body", nil)
		return
	}
	var errs validate.Errs
	for _, check := range []struct{ field, value string }{
		{"user_id", req.UserID},
		{"book_id", req.BookID},
		{"loan_date", req.LoanDate},
		{"due_date", req.DueDate},
	} {
		if e := validate.Required(check.field, check.value); e != nil {
			errs = append(errs, *e)
		}
	}
	if len(errs) > 0 {
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", errs.Error(), errs)
		return
	}
	loanDate, err := time.Parse(dateLayout, req.LoanDate)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "loan_date must be YYYY-MM-DD", nil)
		return
	}
	dueDate, err := time.Parse(dateLayout, req.DueDate)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "due_date must be YYYY-MM-DD", nil)
		return
	}

	loan, err := h.Loans.Create(r.Context(), services.CreateLoanInput{
		UserID:   req.UserID,
		BookID:   req.BookID,
		LoanDate: loanDate,
		DueDate:  dueDate,
		Remarks:  req.Remarks,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, loan)
}

func (h *LoanHandler) Return(w http.ResponseWriter, r *http.Request) {
	loan, err := h.Loans.RegisterReturn(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, loan)
}

func (h *LoanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Loans.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *LoanHandler) Get(w http.ResponseWriter, r *http.Request) {
	loan, err := h.Loans.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, loan)
}

// List serves all loans, optionally filtered by state or book.
func (h *LoanHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var (
		loans []models.Loan
		err   error
	)
	switch {
	case q.Get("state") != "":
		var state models.LoanState
		state, err = models.ParseLoanState(q.Get("state"))
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "bad_request", err.Error(), nil)
			return
		}
		loans, err = h.Loans.ListByState(r.Context(), state)
	case q.Get("book_id") != "":
		loans, err = h.Loans.ListByBook(r.Context(), q.Get("book_id"))
	default:
		loans, err = h.Loans.List(r.Context())
	}
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", err.Error(), nil)
		return
	}
	writeLoans(w, loans)
}

func (h *LoanHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	h.listForUser(w, r, chi.URLParam(r, "userID"))
}

// Mine is scoped to the authenticated caller, whatever their role.
func (h *LoanHandler) Mine(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "missing credentials", nil)
		return
	}
	h.listForUser(w, r, claims.UserID)
}

func (h *LoanHandler) listForUser(w http.ResponseWriter, r *http.Request, userID string) {
	var (
		loans []models.Loan
		err   error
	)
	if s := r.URL.Query().Get("state"); s != "" {
		var state models.LoanState
		state, err = models.ParseLoanState(s)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "bad_request", err.Error(), nil)
			return
		}
		loans, err = h.Loans.ListByUserAndState(r.Context(), userID, state)
	} else {
		loans, err = h.Loans.ListByUser(r.Context(), userID)
	}
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", err.Error(), nil)
		return
	}
	writeLoans(w, loans)
}

func writeLoans(w http.ResponseWriter, loans []models.Loan) {
	if loans == nil {
		loans = []models.Loan{}
	}
	httpx.WriteJSON(w, http.StatusOK, loans)
}
