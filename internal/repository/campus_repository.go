package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ptit-edu/portal-backend/internal/model"
)

type CampusRepository struct {
	pool *pgxpool.Pool
}

func NewCampusRepository(pool *pgxpool.Pool) *CampusRepository {
	return &CampusRepository{pool: pool}
}

func (r *CampusRepository) List(ctx context.Context) ([]model.Campus, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, description, file_name, thumbnail FROM campus_models ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var campuses []model.Campus
	for rows.Next() {
		var c model.Campus
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.FileName, &c.Thumbnail); err != nil {
			return nil, err
		}
		campuses = append(campuses, c)
	}
	return campuses, rows.Err()
}
