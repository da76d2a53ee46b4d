package services

import (
	"errors"
	"fmt"

	repo "github.com/baharkarakas/biblioteca-backend/internal/repository"
)

// Business rule violations surfaced to the API layer. Handlers map
// them onto HTTP statuses with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrOutOfStock         = errors.New("no available copies")
	ErrInvalidState       = errors.New("loan is not active")
	ErrConflict           = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// notFound translates a repository miss into the service taxonomy,
// naming the entity the caller asked for.
func notFound(entity, id string, err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return fmt.Errorf("%w: %s %s", ErrNotFound, entity, id)
	}
	return err
}
