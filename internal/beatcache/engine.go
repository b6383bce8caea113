package beatcache

import (
	"context"
	"log/slog"

	"cuemark/internal/beats"
	"cuemark/internal/logging"
)

// CachedEngine wraps an analysis engine with a read-through cache. Lookup and
// store failures degrade to a direct analysis rather than failing the clip.
type CachedEngine struct {
	inner  beats.Engine
	store  *Store
	logger *slog.Logger
}

// WrapEngine decorates engine with cached lookups against store.
func WrapEngine(engine beats.Engine, store *Store, logger *slog.Logger) *CachedEngine {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &CachedEngine{
		inner:  engine,
		store:  store,
		logger: logger.With(logging.FieldComponent, "beatcache"),
	}
}

func (e *CachedEngine) Name() string {
	return e.inner.Name()
}

func (e *CachedEngine) Analyze(ctx context.Context, path string, window *beats.Window) ([]beats.Event, error) {
	key, err := KeyFor(path, e.inner.Name(), window)
	if err != nil {
		e.logger.Debug("cache key unavailable, analyzing directly", logging.Error(err))
		return e.inner.Analyze(ctx, path, window)
	}

	events, hit, err := e.store.Lookup(ctx, key)
	if err != nil {
		e.logger.Warn("cache lookup failed", logging.Error(err))
	} else if hit {
		e.logger.Debug("cache hit", "file", path, "events", len(events))
		return events, nil
	}

	events, err = e.inner.Analyze(ctx, path, window)
	if err != nil {
		return nil, err
	}

	if storeErr := e.store.Store(ctx, key, events); storeErr != nil {
		e.logger.Warn("cache store failed", logging.Error(storeErr))
	}
	return events, nil
}
