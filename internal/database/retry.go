package database

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Containers in docker-compose start in any order, so the first dial is
// retried with backoff before startup gives up.
const (
	connectAttempts = 5
	connectBackoff  = time.Second
)

func withRetry(ctx context.Context, log zerolog.Logger, target string, dial func(context.Context) error) error {
	backoff := connectBackoff
	var err error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		if err = dial(ctx); err == nil {
			return nil
		}
		if attempt == connectAttempts {
			break
		}
		log.Warn().Err(err).
			Str("target", target).
			Int("attempt", attempt).
			Dur("retry_in", backoff).
			Msg("Datastore not reachable yet")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return err
}
