package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var utc = NewCalendar(time.UTC)

func TestParseGranularity(t *testing.T) {
	for _, in := range []string{"day", " Week ", "MONTH", "year"} {
		g, err := ParseGranularity(in)
		require.NoError(t, err, in)
		assert.True(t, g.IsValid())
	}
	_, err := ParseGranularity("decade")
	assert.Error(t, err)
}

func TestBucketStartsCountAndOrder(t *testing.T) {
	now := time.Date(2026, 3, 15, 13, 45, 12, 0, time.UTC)
	for _, g := range Granularities() {
		t.Run(g.String(), func(t *testing.T) {
			starts := utc.BucketStarts(g, now)
			require.Len(t, starts, g.BucketCount())
			for i := 1; i < len(starts); i++ {
				assert.True(t, starts[i-1].Before(starts[i]), "bucket %d not after %d", i, i-1)
			}
			assert.True(t, starts[0].Equal(utc.Cutoff(g, now)))
			assert.True(t, starts[len(starts)-1].Equal(utc.BucketStart(g, now)))
		})
	}
}

func TestCutoffPerGranularity(t *testing.T) {
	now := time.Date(2026, 3, 15, 13, 45, 0, 0, time.UTC)
	cases := []struct {
		g    Granularity
		want time.Time
	}{
		{Day, time.Date(2026, 3, 14, 14, 0, 0, 0, time.UTC)},
		{Week, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)},
		{Month, time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)},
		{Year, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, utc.Cutoff(tc.g, now), tc.g.String())
	}
}

func TestWindowBounds(t *testing.T) {
	now := time.Date(2026, 1, 10, 9, 30, 0, 0, time.UTC)
	w := utc.Window(Week, now)
	assert.Equal(t, time.Date(2026, 1, 4, 0, 0, 0, 0, time.UTC), w.Cutoff)
	assert.Equal(t, time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC), w.End)

	assert.True(t, w.Contains(w.Cutoff))
	assert.True(t, w.Contains(time.Date(2026, 1, 10, 23, 59, 0, 0, time.UTC)))
	assert.False(t, w.Contains(w.Cutoff.Add(-time.Nanosecond)))
	assert.False(t, w.Contains(w.End))
}

func TestYearWindowCrossesYearBoundary(t *testing.T) {
	now := time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)
	starts := utc.BucketStarts(Year, now)
	require.Len(t, starts, 12)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), starts[0])
	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), starts[9])
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), starts[11])
}

func TestMonthWindowAcrossShortFebruary(t *testing.T) {
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	starts := utc.BucketStarts(Month, now)
	require.Len(t, starts, 30)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), starts[0])
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), starts[29])
}

func TestDSTTransitionsKeepEveryBucket(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	cal := NewCalendar(ny)

	t.Run("fall back repeats an hour", func(t *testing.T) {
		// 2025-11-02 01:00 local happens twice.
		now := time.Date(2025, 11, 2, 12, 10, 0, 0, ny)
		w := cal.Window(Day, now)
		require.Len(t, w.Buckets, 24)
		seen := map[int64]bool{}
		for _, b := range w.Buckets {
			assert.False(t, seen[b.Unix()], "duplicate bucket %v", b)
			seen[b.Unix()] = true
		}
		assert.Equal(t, 24*time.Hour, w.End.Sub(w.Cutoff))

		// Both 01:30 instants land in distinct, existing buckets.
		first := time.Date(2025, 11, 2, 5, 30, 0, 0, time.UTC)
		second := first.Add(time.Hour)
		i, ok := w.Slot(first)
		require.True(t, ok)
		j, ok := w.Slot(second)
		require.True(t, ok)
		assert.Equal(t, i+1, j)
	})

	t.Run("spring forward skips an hour", func(t *testing.T) {
		now := time.Date(2025, 3, 10, 9, 0, 0, 0, ny)
		w := cal.Window(Week, now)
		require.Len(t, w.Buckets, 7)
		for _, b := range w.Buckets {
			assert.Equal(t, 0, b.Hour())
		}
		// The short day is still one bucket.
		late := time.Date(2025, 3, 9, 23, 30, 0, 0, ny)
		i, ok := w.Slot(late)
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, 3, 9, 0, 0, 0, 0, ny), w.Buckets[i])
	})
}

func TestHalfHourOffsetChangeKeepsHourGrid(t *testing.T) {
	// Lord Howe moves from +10:30 to +11:00 at 02:00 local on 2025-10-05.
	lhi, err := time.LoadLocation("Australia/Lord_Howe")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	cal := NewCalendar(lhi)
	now := time.Date(2025, 10, 5, 12, 10, 0, 0, lhi)
	w := cal.Window(Day, now)
	require.Len(t, w.Buckets, 24)
	assert.Equal(t, 24*time.Hour, w.End.Sub(w.Cutoff))

	for ts := w.Cutoff; ts.Before(w.End); ts = ts.Add(15 * time.Minute) {
		i, ok := w.Slot(ts)
		require.True(t, ok, "no bucket for %v", ts)
		assert.False(t, ts.Before(w.Buckets[i]), "%v before its bucket", ts)
		assert.True(t, ts.Before(w.Buckets[i].Add(time.Hour)), "%v after its bucket", ts)
	}

	_, ok := w.Slot(w.End)
	assert.False(t, ok)
	_, ok = w.Slot(w.Cutoff.Add(-time.Nanosecond))
	assert.False(t, ok)
}

func TestCalendarUsesInjectedLocation(t *testing.T) {
	tokyo := NewCalendar(time.FixedZone("JST", 9*3600))
	// 20:00 UTC on the 9th is already the 10th in Tokyo.
	instant := time.Date(2026, 1, 9, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, 10, tokyo.BucketStart(Week, instant).Day())
	assert.Equal(t, 9, utc.BucketStart(Week, instant).Day())
}
