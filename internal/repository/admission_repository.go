package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ptit-edu/portal-backend/internal/model"
)

type AdmissionRepository struct {
	pool *pgxpool.Pool
}

func NewAdmissionRepository(pool *pgxpool.Pool) *AdmissionRepository {
	return &AdmissionRepository{pool: pool}
}

// Create inserts the admission and fills in the generated ID and timestamp.
func (r *AdmissionRepository) Create(ctx context.Context, a *model.Admission) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO admissions (full_name, birth_date, gender, address, cccd, major)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		a.FullName, a.BirthDate, a.Gender, a.Address, a.CCCD, a.Major,
	).Scan(&a.ID, &a.CreatedAt)
}

// List returns one page of admissions, newest first, and the total count.
func (r *AdmissionRepository) List(ctx context.Context, limit, offset int) ([]model.Admission, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM admissions`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, full_name, birth_date, gender, address, cccd, major, created_at
		 FROM admissions ORDER BY id DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var admissions []model.Admission
	for rows.Next() {
		var a model.Admission
		if err := rows.Scan(&a.ID, &a.FullName, &a.BirthDate, &a.Gender, &a.Address, &a.CCCD, &a.Major, &a.CreatedAt); err != nil {
			return nil, 0, err
		}
		admissions = append(admissions, a)
	}
	return admissions, total, rows.Err()
}

// ListAll returns every admission in submission order, used by the export.
func (r *AdmissionRepository) ListAll(ctx context.Context) ([]model.Admission, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, full_name, birth_date, gender, address, cccd, major, created_at
		 FROM admissions ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var admissions []model.Admission
	for rows.Next() {
		var a model.Admission
		if err := rows.Scan(&a.ID, &a.FullName, &a.BirthDate, &a.Gender, &a.Address, &a.CCCD, &a.Major, &a.CreatedAt); err != nil {
			return nil, err
		}
		admissions = append(admissions, a)
	}
	return admissions, rows.Err()
}
