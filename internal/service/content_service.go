package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ptit-edu/portal-backend/internal/config"
	"github.com/ptit-edu/portal-backend/internal/model"
	"github.com/rs/zerolog"
)

// ContentStore is the read side of the landing-page tables.
type ContentStore interface {
	ListIntroSlides(ctx context.Context) ([]model.IntroSlide, error)
	ListHistoryEvents(ctx context.Context) ([]model.HistoryEvent, error)
	ListAchievements(ctx context.Context) ([]model.Achievement, error)
	ListPartners(ctx context.Context) ([]model.Partner, error)
}

// ContentService serves the landing-page lists through an optional cache.
type ContentService struct {
	store ContentStore
	cache ListCache
	ttl   time.Duration
	log   zerolog.Logger
}

func NewContentService(store ContentStore, cache ListCache, ttl time.Duration, log zerolog.Logger) *ContentService {
	return &ContentService{
		store: store,
		cache: cache,
		ttl:   ttl,
		log:   log.With().Str("component", "content_service").Logger(),
	}
}

func (s *ContentService) IntroSlides(ctx context.Context) ([]model.IntroSlide, error) {
	return cachedList(ctx, s.cache, s.ttl, s.log, model.KindIntro, s.store.ListIntroSlides)
}

func (s *ContentService) HistoryEvents(ctx context.Context) ([]model.HistoryEvent, error) {
	return cachedList(ctx, s.cache, s.ttl, s.log, model.KindHistory, s.store.ListHistoryEvents)
}

func (s *ContentService) Achievements(ctx context.Context) ([]model.Achievement, error) {
	return cachedList(ctx, s.cache, s.ttl, s.log, model.KindAchievements, s.store.ListAchievements)
}

func (s *ContentService) Partners(ctx context.Context) ([]model.Partner, error) {
	return cachedList(ctx, s.cache, s.ttl, s.log, model.KindPartners, s.store.ListPartners)
}

// Invalidate drops every cached content list, including campuses.
func (s *ContentService) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	kinds := []string{model.KindIntro, model.KindHistory, model.KindAchievements, model.KindPartners, model.KindCampus}
	keys := make([]string, 0, len(kinds))
	for _, k := range kinds {
		keys = append(keys, config.CacheKey.ContentListKey(k))
	}
	return s.cache.Delete(ctx, keys...)
}

// cachedList reads kind from the cache, falling back to load on a miss or a
// cache error. The result is never nil so handlers always emit a JSON array.
func cachedList[T any](
	ctx context.Context,
	cache ListCache,
	ttl time.Duration,
	log zerolog.Logger,
	kind string,
	load func(context.Context) ([]T, error),
) ([]T, error) {
	key := config.CacheKey.ContentListKey(kind)

	if cache != nil {
		raw, ok, err := cache.Get(ctx, key)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Cache read failed, querying database")
		} else if ok {
			var items []T
			if err := json.Unmarshal(raw, &items); err == nil {
				return items, nil
			}
			log.Warn().Str("key", key).Msg("Discarding undecodable cache entry")
		}
	}

	items, err := load(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}

	if cache != nil {
		if raw, err := json.Marshal(items); err == nil {
			if err := cache.Set(ctx, key, raw, ttl); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("Cache write failed")
			}
		}
	}
	return items, nil
}
