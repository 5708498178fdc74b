package stats

import (
	"fmt"
	"time"

	"myexpense/internal/core"
)

// Point is one chart sample: the summed amount of a single bucket.
type Point struct {
	ID    string
	Start time.Time
	Total core.Money
}

// InWindow returns the records of type typ that fall inside w, in input order.
func InWindow(records []core.Transaction, typ core.TransactionType, w Window) []core.Transaction {
	var out []core.Transaction
	for _, r := range records {
		if r.Type == typ && w.Contains(r.Date) {
			out = append(out, r)
		}
	}
	return out
}

// Aggregate sums the amounts of records of type typ per bucket of the window
// ending at now. The result always has one point per bucket, in chronological
// order, with empty buckets reported as zero.
func Aggregate(records []core.Transaction, typ core.TransactionType, g Granularity, now time.Time, cal Calendar) []Point {
	return AggregateWindow(records, typ, cal.Window(g, now))
}

// AggregateWindow is Aggregate over a precomputed window.
func AggregateWindow(records []core.Transaction, typ core.TransactionType, w Window) []Point {
	totals := make([]int64, len(w.Buckets))
	for _, r := range records {
		if r.Type != typ {
			continue
		}
		if i, ok := w.Slot(r.Date); ok {
			totals[i] += r.Amount.Cents
		}
	}

	points := make([]Point, len(w.Buckets))
	for i, start := range w.Buckets {
		points[i] = Point{
			ID:    pointID(w.Granularity, start),
			Start: start,
			Total: core.Money{Cents: totals[i]},
		}
	}
	return points
}

// Sum adds up the totals of points.
func Sum(points []Point) core.Money {
	var total core.Money
	for _, p := range points {
		total = total.Add(p.Total)
	}
	return total
}

func pointID(g Granularity, start time.Time) string {
	return fmt.Sprintf("%s-%d", g, start.Unix())
}
