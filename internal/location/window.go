package location

import (
	"context"
	"time"

	"github.com/janscope/annotator/internal/domain"
)

// Window is the bounded ring buffer behind temporal inference: the last
// few posts' resolved locations, newest first on read. It is the one
// order-dependent piece of the resolver; concurrent drivers must give
// each worker its own window (see Resolver.Fork).
type Window struct {
	entries  []windowEntry
	capacity int
	maxAge   time.Duration
	next     int
	filled   bool
}

type windowEntry struct {
	loc *domain.ResolvedLocation
	at  time.Time
}

// NewWindow creates a window holding up to capacity locations no older
// than maxAge.
func NewWindow(capacity int, maxAge time.Duration) *Window {
	if capacity <= 0 {
		capacity = 1
	}
	return &Window{
		entries:  make([]windowEntry, capacity),
		capacity: capacity,
		maxAge:   maxAge,
	}
}

// Add records a location, evicting the oldest entry when full. The
// stored copy is independent of the caller's value.
func (w *Window) Add(loc *domain.ResolvedLocation, at time.Time) {
	if loc == nil {
		return
	}
	stored := *loc
	stored.Hierarchy = append([]string(nil), loc.Hierarchy...)
	if at.IsZero() {
		at = time.Now()
	}

	w.entries[w.next] = windowEntry{loc: &stored, at: at}
	w.next++
	if w.next == w.capacity {
		w.next = 0
		w.filled = true
	}
}

// Latest returns the most recent location still within maxAge of now.
func (w *Window) Latest(now time.Time) (*domain.ResolvedLocation, bool) {
	n := w.Len()
	for i := 1; i <= n; i++ {
		idx := (w.next - i + w.capacity) % w.capacity
		e := w.entries[idx]
		if e.loc == nil {
			continue
		}
		if w.maxAge > 0 && !now.IsZero() && now.Sub(e.at) > w.maxAge {
			continue
		}
		return e.loc, true
	}
	return nil, false
}

// Len returns the number of stored entries.
func (w *Window) Len() int {
	if w.filled {
		return w.capacity
	}
	return w.next
}

// temporalTier reuses the previous posts' location when nothing in the
// current post resolves. The heavy confidence penalty and the distinct
// provenance tag let downstream routing discount it.
type temporalTier struct {
	window     *Window
	confidence float64
}

// maxTemporalConfidence caps how much trust a borrowed location can
// ever carry.
const maxTemporalConfidence = 0.75

func (t *temporalTier) Name() string { return domain.SourceTemporalInference }

func (t *temporalTier) Resolve(_ context.Context, q *Query) (*domain.ResolvedLocation, float64, bool) {
	prev, ok := t.window.Latest(q.Timestamp)
	if !ok {
		return nil, 0, false
	}

	confidence := t.confidence
	if confidence > maxTemporalConfidence {
		confidence = maxTemporalConfidence
	}

	loc := *prev
	loc.Hierarchy = append([]string(nil), prev.Hierarchy...)
	loc.Source = domain.SourceTemporalInference
	loc.Confidence = confidence
	return &loc, confidence, true
}
