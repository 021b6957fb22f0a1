package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ptit-edu/portal-backend/internal/model"
)

// ContentRepository reads the landing-page content tables.
type ContentRepository struct {
	pool *pgxpool.Pool
}

func NewContentRepository(pool *pgxpool.Pool) *ContentRepository {
	return &ContentRepository{pool: pool}
}

func (r *ContentRepository) ListIntroSlides(ctx context.Context) ([]model.IntroSlide, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, description, image_url, display_order
		 FROM intro_slides ORDER BY display_order ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slides []model.IntroSlide
	for rows.Next() {
		var s model.IntroSlide
		if err := rows.Scan(&s.ID, &s.Title, &s.Description, &s.ImageURL, &s.DisplayOrder); err != nil {
			return nil, err
		}
		slides = append(slides, s)
	}
	return slides, rows.Err()
}

func (r *ContentRepository) ListHistoryEvents(ctx context.Context) ([]model.HistoryEvent, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, year_date, title, description, image
		 FROM history_events ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.HistoryEvent
	for rows.Next() {
		var e model.HistoryEvent
		if err := rows.Scan(&e.ID, &e.YearDate, &e.Title, &e.Description, &e.Image); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *ContentRepository) ListAchievements(ctx context.Context) ([]model.Achievement, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, description, prefix, number_val, suffix, image_url, display_order
		 FROM achievements ORDER BY display_order ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.Achievement
	for rows.Next() {
		var a model.Achievement
		if err := rows.Scan(&a.ID, &a.Title, &a.Description, &a.Prefix, &a.NumberVal, &a.Suffix, &a.ImageURL, &a.DisplayOrder); err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

func (r *ContentRepository) ListPartners(ctx context.Context) ([]model.Partner, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, logo_url, website_url FROM partners ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var partners []model.Partner
	for rows.Next() {
		var p model.Partner
		if err := rows.Scan(&p.ID, &p.Name, &p.LogoURL, &p.WebsiteURL); err != nil {
			return nil, err
		}
		partners = append(partners, p)
	}
	return partners, rows.Err()
}
