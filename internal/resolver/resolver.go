// Package resolver turns free-text destination input into coordinates. It
// fronts the completion and geocoding providers and guarantees that only the
// most recent query's suggestions ever reach the caller.
package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/UnknownOlympus/wayfinder/internal/completion"
	"github.com/UnknownOlympus/wayfinder/internal/geocoding"
	"github.com/UnknownOlympus/wayfinder/internal/metrics"
	"github.com/UnknownOlympus/wayfinder/internal/models"
	"github.com/UnknownOlympus/wayfinder/internal/repository"
)

// Resolver forwards every edit of the destination text to the completion
// provider. Responses may arrive out of order; a monotonic query sequence
// makes sure a stale response never overwrites a newer one.
type Resolver struct {
	log       *slog.Logger
	completer completion.Provider
	geocoder  geocoding.Provider
	cache     repository.Interface // optional, nil disables caching
	metrics   *metrics.Metrics

	mu          sync.Mutex
	seq         uint64
	suggestions []models.Suggestion
}

// New creates a resolver. cache may be nil when no geocode cache is
// configured.
func New(
	log *slog.Logger,
	completer completion.Provider,
	geocoder geocoding.Provider,
	cache repository.Interface,
	m *metrics.Metrics,
) *Resolver {
	return &Resolver{
		log:       log,
		completer: completer,
		geocoder:  geocoder,
		cache:     cache,
		metrics:   m,
	}
}

// QueryChanged forwards the latest text fragment to the completion provider.
// Each edit supersedes the previous one; whichever response belongs to an
// older edit is discarded when it lands.
func (r *Resolver) QueryChanged(ctx context.Context, text string) {
	r.mu.Lock()
	r.seq++
	seq := r.seq
	r.mu.Unlock()

	go func() {
		start := time.Now()
		suggestions, err := r.completer.Complete(ctx, text)
		r.metrics.RequestSeconds.WithLabelValues("completion").Observe(time.Since(start).Seconds())
		r.applySuggestions(ctx, seq, suggestions, err)
	}()
}

// applySuggestions installs a completion response unless a newer query has
// been issued since.
func (r *Resolver) applySuggestions(ctx context.Context, seq uint64, suggestions []models.Suggestion, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if seq != r.seq {
		r.metrics.StaleDiscarded.WithLabelValues("completion").Inc()
		r.log.DebugContext(ctx, "Discarding superseded completion response", "seq", seq, "latest", r.seq)
		return
	}

	if err != nil {
		r.log.ErrorContext(ctx, "Completion provider failed", "error", err)
		return
	}

	r.suggestions = suggestions
}

// Suggestions returns the candidates of the most recent answered query.
func (r *Resolver) Suggestions() []models.Suggestion {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Suggestion, len(r.suggestions))
	copy(out, r.suggestions)
	return out
}

// SelectSuggestion resolves a chosen suggestion to a destination coordinate.
func (r *Resolver) SelectSuggestion(ctx context.Context, s models.Suggestion) (*models.Coordinate, error) {
	start := time.Now()
	coords, err := r.completer.Resolve(ctx, s)
	r.metrics.RequestSeconds.WithLabelValues("completion").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve suggestion %q: %w", s.Title, err)
	}
	return coords, nil
}

// SubmitFreeText geocodes text entered without picking a suggestion. Cached
// coordinates are preferred; fresh results are written back to the cache.
func (r *Resolver) SubmitFreeText(ctx context.Context, text string) (*models.Coordinate, error) {
	if r.cache != nil {
		cached, err := r.cache.Lookup(ctx, text)
		if err != nil {
			r.log.WarnContext(ctx, "Geocode cache lookup failed", "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	start := time.Now()
	coords, err := r.geocoder.Geocode(ctx, text)
	r.metrics.RequestSeconds.WithLabelValues("geocoding").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("failed to geocode %q: %w", text, err)
	}

	if r.cache != nil {
		if err := r.cache.Store(ctx, text, *coords); err != nil {
			r.log.WarnContext(ctx, "Geocode cache store failed", "error", err)
		}
	}

	return coords, nil
}
