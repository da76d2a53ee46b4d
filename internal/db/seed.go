package db

import (
	"context"

	"github.com/baharkarakas/biblioteca-backend/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedRoles makes sure the closed role set exists. It runs once at
// startup and is a no-op when the roles are already present.
func SeedRoles(ctx context.Context, pool *pgxpool.Pool) error {
	seed := []struct{ name, description string }{
		{models.RoleAdmin, "System administrator"},
		{models.RoleUsuario, "Standard user"},
	}
	for _, s := range seed {
		_, err := pool.Exec(ctx,
			`INSERT INTO roles(name, description) VALUES($1,$2)
			 ON CONFLICT (name) DO NOTHING`,
			s.name, s.description,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
