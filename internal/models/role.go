package models

// Closed role set, seeded at startup.
const (
	RoleAdmin   = "ADMIN"
	RoleUsuario = "USUARIO"
)

type Role struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
