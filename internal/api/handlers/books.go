package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/baharkarakas/biblioteca-backend/internal/api/httpx"
	"github.com/baharkarakas/biblioteca-backend/internal/api/validate"
	"github.com/baharkarakas/biblioteca-backend/internal/models"
	"github.com/baharkarakas/biblioteca-backend/internal/services"
	"github.com/go-chi/chi/v5"
)

type BookHandler struct {
	Books *services.BookService
}

func NewBookHandler(bs *services.BookService) *BookHandler {
	return &BookHandler{Books: bs}
}

type bookReq struct {
	ISBN            string `json:"isbn"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	Publisher       string `json:"publisher"`
	Category        string `json:"category"`
	PublicationYear int    `json:"publication_year"`
	AvailableCopies int    `json:"available_copies"`
	TotalCopies     int    `json:"total_copies"`
	Description     string `json:"description"`
}

func (r bookReq) model() models.Book {
	return models.Book{
		ISBN:            r.ISBN,
		Title:           r.Title,
		Author:          r.Author,
		Publisher:       r.Publisher,
		Category:        r.Category,
		PublicationYear: r.PublicationYear,
		AvailableCopies: r.AvailableCopies,
		TotalCopies:     r.TotalCopies,
		Description:     r.Description,
	}
}

// List also serves the search endpoints through query parameters
// (title, author, category), matching one filter at a time.
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var (
		books []models.Book
		err   error
	)
	switch {
	case q.Get("title") != "":
		books, err = h.Books.SearchByTitle(r.Context(), q.Get("title"))
	case q.Get("author") != "":
		books, err = h.Books.SearchByAuthor(r.Context(), q.Get("author"))
	case q.Get("category") != "":
		books, err = h.Books.ListByCategory(r.Context(), q.Get("category"))
	default:
		books, err = h.Books.List(r.Context())
	}
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", err.Error(), nil)
		return
	}
	if books == nil {
		books = []models.Book{}
	}
	httpx.WriteJSON(w, http.StatusOK, books)
}

func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.Books.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, b)
}

func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req bookReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid request body", nil)
		return
	}
	var errs validate.Errs
	if e := validate.Required("isbn", req.ISBN); e != nil {
		errs = append(errs, *e)
	}
	if e := validate.Required("title", req.Title); e != nil {
		errs = append(errs, *e)
	}
	if e := validate.MinInt("total_copies", int64(req.TotalCopies), 1); e != nil {
		errs = append(errs, *e)
	}
	if len(errs) > 0 {
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", errs.Error(), errs)
		return
	}
	b, err := h.Books.Create(r.Context(), req.model())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, b)
}

func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req bookReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid request body", nil)
		return
	}
	b, err := h.Books.Update(r.Context(), chi.URLParam(r, "id"), req.model())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, b)
}

func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Books.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
