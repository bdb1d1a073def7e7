package visibility

import (
	"context"
	"strings"
	"sync"
	"time"

	pkgerrors "github.com/tweenmart/storefront-backend/pkg/errors"
)

// Tracker gates one-shot visibility events. FirstSight reports true exactly
// once per (viewer, region) pair; every later call for the same pair reports
// false.
type Tracker interface {
	FirstSight(ctx context.Context, viewer, region string) (bool, error)
}

// MemoryTracker keeps first-sight marks in process memory.
type MemoryTracker struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewMemoryTracker builds an empty in-memory tracker.
func NewMemoryTracker() *MemoryTracker {
	return &MemoryTracker{seen: make(map[string]struct{})}
}

// FirstSight marks the pair and reports whether this was the first sight.
func (t *MemoryTracker) FirstSight(_ context.Context, viewer, region string) (bool, error) {
	key, err := pairKey(viewer, region)
	if err != nil {
		return false, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.seen[key]; ok {
		return false, nil
	}
	t.seen[key] = struct{}{}
	return true, nil
}

type firstSightMarker interface {
	MarkFirstSight(ctx context.Context, viewer, region string, ttl time.Duration) (bool, error)
}

// RedisTracker backs first-sight marks with Redis SetNX so one-shot gating
// survives process restarts and is shared across instances.
type RedisTracker struct {
	marker firstSightMarker
	ttl    time.Duration
}

// NewRedisTracker wraps the given marker; marks expire after ttl.
func NewRedisTracker(marker firstSightMarker, ttl time.Duration) *RedisTracker {
	return &RedisTracker{marker: marker, ttl: ttl}
}

// FirstSight marks the pair in Redis and reports whether this was the first sight.
func (t *RedisTracker) FirstSight(ctx context.Context, viewer, region string) (bool, error) {
	if _, err := pairKey(viewer, region); err != nil {
		return false, err
	}
	if t.marker == nil {
		return false, pkgerrors.New(pkgerrors.CodeInternal, "first-sight marker unavailable")
	}
	first, err := t.marker.MarkFirstSight(ctx, viewer, region, t.ttl)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark first sight")
	}
	return first, nil
}

func pairKey(viewer, region string) (string, error) {
	v := strings.TrimSpace(viewer)
	r := strings.TrimSpace(region)
	if v == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "viewer is required")
	}
	if r == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "region is required")
	}
	return v + "|" + r, nil
}
