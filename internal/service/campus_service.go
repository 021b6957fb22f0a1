package service

import (
	"context"
	"time"

	"github.com/ptit-edu/portal-backend/internal/apiurl"
	"github.com/ptit-edu/portal-backend/internal/model"
	"github.com/rs/zerolog"
)

// CampusStore lists campus model records.
type CampusStore interface {
	List(ctx context.Context) ([]model.Campus, error)
}

type CampusService struct {
	store   CampusStore
	cache   ListCache
	ttl     time.Duration
	baseURL string
	log     zerolog.Logger
}

// NewCampusService creates a CampusService. baseURL is the externally
// reachable backend URL used to expand asset references.
func NewCampusService(store CampusStore, cache ListCache, ttl time.Duration, baseURL string, log zerolog.Logger) *CampusService {
	return &CampusService{
		store:   store,
		cache:   cache,
		ttl:     ttl,
		baseURL: baseURL,
		log:     log.With().Str("component", "campus_service").Logger(),
	}
}

// List returns every campus with absolute model and thumbnail URLs.
func (s *CampusService) List(ctx context.Context) ([]model.Campus, error) {
	campuses, err := cachedList(ctx, s.cache, s.ttl, s.log, model.KindCampus, s.store.List)
	if err != nil {
		return nil, err
	}
	for i := range campuses {
		s.decorate(&campuses[i])
	}
	return campuses, nil
}

func (s *CampusService) decorate(c *model.Campus) {
	if c.FileName != "" {
		c.ModelURL = apiurl.Public(s.baseURL, c.FileName)
	}
	if c.Thumbnail != nil && *c.Thumbnail != "" {
		c.ThumbnailURL = apiurl.Public(s.baseURL, *c.Thumbnail)
	}
}
