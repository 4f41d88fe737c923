package location_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janscope/annotator/internal/domain"
	"github.com/janscope/annotator/internal/location"
)

func TestWindow_EvictsOldest(t *testing.T) {
	w := location.NewWindow(2, time.Hour)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	w.Add(&domain.ResolvedLocation{Canonical: "a"}, base)
	w.Add(&domain.ResolvedLocation{Canonical: "b"}, base.Add(time.Minute))
	w.Add(&domain.ResolvedLocation{Canonical: "c"}, base.Add(2*time.Minute))

	assert.Equal(t, 2, w.Len())

	got, ok := w.Latest(base.Add(3 * time.Minute))
	require.True(t, ok)
	assert.Equal(t, "c", got.Canonical)
}

func TestWindow_AgeLimit(t *testing.T) {
	w := location.NewWindow(3, time.Hour)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	w.Add(&domain.ResolvedLocation{Canonical: "stale"}, base)

	_, ok := w.Latest(base.Add(2 * time.Hour))
	assert.False(t, ok)

	// A zero "now" skips the age check entirely: batch inputs without
	// timestamps still get temporal inference.
	got, ok := w.Latest(time.Time{})
	require.True(t, ok)
	assert.Equal(t, "stale", got.Canonical)
}

func TestWindow_StoresCopies(t *testing.T) {
	w := location.NewWindow(1, 0)
	loc := &domain.ResolvedLocation{Canonical: "रायपुर", Hierarchy: []string{"छत्तीसगढ़", "रायपुर"}}

	w.Add(loc, time.Now())
	loc.Canonical = "mutated"
	loc.Hierarchy[0] = "mutated"

	got, ok := w.Latest(time.Now())
	require.True(t, ok)
	assert.Equal(t, "रायपुर", got.Canonical)
	assert.Equal(t, "छत्तीसगढ़", got.Hierarchy[0])
}

func TestWindow_Empty(t *testing.T) {
	w := location.NewWindow(3, time.Hour)
	_, ok := w.Latest(time.Now())
	assert.False(t, ok)
	assert.Zero(t, w.Len())
}
