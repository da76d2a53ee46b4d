package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/baharkarakas/biblioteca-backend/internal/api/httpx"
	"github.com/baharkarakas/biblioteca-backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteServiceErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("%w: loan 42", services.ErrNotFound), http.StatusNotFound, "not_found"},
		{fmt.Errorf("%w: El Aleph", services.ErrOutOfStock), http.StatusConflict, "out_of_stock"},
		{fmt.Errorf("%w: loan 42 is DEVUELTO", services.ErrInvalidState), http.StatusUnprocessableEntity, "invalid_state"},
		{fmt.Errorf("%w: isbn 978", services.ErrConflict), http.StatusConflict, "conflict"},
		{services.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
		{errors.New("title required"), http.StatusBadRequest, "bad_request"},
	}

	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeServiceError(rec, tc.err)

			assert.Equal(t, tc.status, rec.Code)
			var body httpx.APIError
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tc.code, body.Code)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestCreateLoanRejectsBadDates(t *testing.T) {
	h := NewLoanHandler(nil)

	body := `{"user_id":"u-1","book_id":"b-1","loan_date":"10/03/2025","due_date":"2025-03-24"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/loans", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
