// Package stats derives chart, ranking and search views from a snapshot of
// transactions. Everything here is a pure function of its arguments.
package stats

import (
	"fmt"
	"strings"
	"time"
)

const (
	Day   Granularity = "day"
	Week  Granularity = "week"
	Month Granularity = "month"
	Year  Granularity = "year"
)

type Granularity string

// Granularities lists every supported range in display order.
func Granularities() []Granularity {
	return []Granularity{Day, Week, Month, Year}
}

func ParseGranularity(s string) (Granularity, error) {
	g := Granularity(strings.ToLower(strings.TrimSpace(s)))
	if !g.IsValid() {
		return "", fmt.Errorf("invalid granularity %q: must be one of day, week, month, year", s)
	}
	return g, nil
}

func (g Granularity) IsValid() bool {
	switch g {
	case Day, Week, Month, Year:
		return true
	default:
		return false
	}
}

// BucketCount returns how many buckets the window of g spans.
func (g Granularity) BucketCount() int {
	switch g {
	case Day:
		return 24
	case Week:
		return 7
	case Month:
		return 30
	case Year:
		return 12
	default:
		return 0
	}
}

func (g Granularity) String() string {
	return string(g)
}

// Window is the range descriptor for one query. Records dated in
// [Cutoff, End) fall into exactly one of Buckets.
type Window struct {
	Granularity Granularity
	Cutoff      time.Time
	End         time.Time
	Buckets     []time.Time

	cal   Calendar
	index map[int64]int
}

// Slot returns the position in Buckets of the bucket containing t.
//
// Hourly buckets are consecutive absolute hours from Cutoff, so the slot is
// the elapsed whole hours. A record's own local top of hour would not sit on
// that grid once a half-hour offset change falls inside the window.
func (w Window) Slot(t time.Time) (int, bool) {
	if w.Granularity == Day {
		if len(w.Buckets) == 0 || t.Before(w.Cutoff) || !t.Before(w.End) {
			return 0, false
		}
		return int(t.Sub(w.Cutoff) / time.Hour), true
	}
	i, ok := w.index[w.cal.BucketStart(w.Granularity, t).Unix()]
	return i, ok
}

// Contains reports whether t falls into one of the window's buckets.
func (w Window) Contains(t time.Time) bool {
	_, ok := w.Slot(t)
	return ok
}

// Calendar applies local calendar rules of a fixed location. The zero value
// uses time.Local.
type Calendar struct {
	Location *time.Location
}

func NewCalendar(loc *time.Location) Calendar {
	return Calendar{Location: loc}
}

func (c Calendar) loc() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

// BucketStart maps t to the start of the calendar bucket that contains it.
// For Day this is t's local top of hour; use Window.Slot to place records.
func (c Calendar) BucketStart(g Granularity, t time.Time) time.Time {
	t = t.In(c.loc())
	switch g {
	case Day:
		return c.topOfHour(t)
	case Week, Month:
		return c.startOfDay(t.Year(), t.Month(), t.Day())
	case Year:
		return c.startOfDay(t.Year(), t.Month(), 1)
	default:
		return t
	}
}

// Cutoff returns the inclusive lower bound of the window ending at now.
func (c Calendar) Cutoff(g Granularity, now time.Time) time.Time {
	return c.bucketAt(g, now, -(g.BucketCount() - 1))
}

// BucketStarts returns the chronological bucket starts of the window ending at now.
func (c Calendar) BucketStarts(g Granularity, now time.Time) []time.Time {
	n := g.BucketCount()
	out := make([]time.Time, 0, n)
	for i := n - 1; i >= 0; i-- {
		out = append(out, c.bucketAt(g, now, -i))
	}
	return out
}

// Window computes cutoff, end and bucket starts from a single now. Calendar
// bucket membership is decided with BucketStart, the same mapping used to
// build the buckets, so no record can match the window and miss every bucket.
func (c Calendar) Window(g Granularity, now time.Time) Window {
	buckets := c.BucketStarts(g, now)
	w := Window{
		Granularity: g,
		Buckets:     buckets,
		cal:         c,
		index:       make(map[int64]int, len(buckets)),
	}
	if len(buckets) == 0 {
		return w
	}
	for i, b := range buckets {
		w.index[b.Unix()] = i
	}
	w.Cutoff = buckets[0]
	w.End = c.bucketAt(g, now, 1)
	return w
}

// bucketAt returns the start of the bucket offset buckets away from the one
// containing now. Calendar widths are derived from now's local date rather
// than from another bucket start, which may not sit on its own date when
// midnight falls in a DST gap. Hourly buckets step in absolute time so the
// repeated local hour of a DST fall-back stays two distinct buckets.
func (c Calendar) bucketAt(g Granularity, now time.Time, offset int) time.Time {
	t := now.In(c.loc())
	switch g {
	case Day:
		return c.topOfHour(t).Add(time.Duration(offset) * time.Hour)
	case Week, Month:
		return c.startOfDay(t.Year(), t.Month(), t.Day()+offset)
	case Year:
		return c.startOfDay(t.Year(), t.Month()+time.Month(offset), 1)
	default:
		return t
	}
}

func (c Calendar) startOfDay(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, c.loc())
}

// topOfHour drops the local minutes and seconds of t without re-resolving the
// wall clock, so the result is the same instant whatever the DST state.
func (c Calendar) topOfHour(t time.Time) time.Time {
	offset := time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())
	return t.Add(-offset)
}
