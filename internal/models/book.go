package models

import (
	"errors"
	"strings"
	"time"
)

type Book struct {
	ID              string    `json:"id"`
	ISBN            string    `json:"isbn"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	Publisher       string    `json:"publisher,omitempty"`
	Category        string    `json:"category,omitempty"`
	PublicationYear int       `json:"publication_year"`
	AvailableCopies int       `json:"available_copies"`
	TotalCopies     int       `json:"total_copies"`
	Description     string    `json:"description,omitempty"`
	RegisteredAt    time.Time `json:"registered_at"`
}

func (b *Book) Validate() error {
	b.ISBN = strings.TrimSpace(b.ISBN)
	b.Title = strings.TrimSpace(b.Title)
	b.Author = strings.TrimSpace(b.Author)
	if n := len(b.ISBN); n < 10 || n > 20 {
		return errors.New("isbn must be 10-20 characters")
	}
	if b.Title == "" || len(b.Title) > 200 {
		return errors.New("title required, max 200 characters")
	}
	if b.Author == "" || len(b.Author) > 100 {
		return errors.New("author required, max 100 characters")
	}
	if len(b.Publisher) > 100 {
		return errors.New("publisher max 100 characters")
	}
	if len(b.Category) > 50 {
		return errors.New("category max 50 characters")
	}
	if b.PublicationYear < 1900 {
		return errors.New("publication year must be >= 1900")
	}
	if b.TotalCopies < 1 {
		return errors.New("total copies must be >= 1")
	}
	if b.AvailableCopies < 0 || b.AvailableCopies > b.TotalCopies {
		return errors.New("available copies must be between 0 and total copies")
	}
	if len(b.Description) > 500 {
		return errors.New("description max 500 characters")
	}
	return nil
}
