package postgres

import (
	"context"
	"errors"

	"github.com/baharkarakas/biblioteca-backend/internal/models"
	repo "github.com/baharkarakas/biblioteca-backend/internal/repository"
	"github.com/jackc/pgx/v5"
)

type rolesRepo struct{ db querier }

func (r *rolesRepo) GetByName(ctx context.Context, name string) (models.Role, error) {
	var role models.Role
	err := r.db.QueryRow(ctx,
		`SELECT id, name, description FROM roles WHERE name=$1`, name,
	).Scan(&role.ID, &role.Name, &role.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Role{}, repo.ErrNotFound
	}
	return role, err
}

func (r *rolesRepo) List(ctx context.Context) ([]models.Role, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, description FROM roles ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Role
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description); err != nil {
			return nil, err
		}
		out = append(out, role)
	}
	return out, rows.Err()
}
