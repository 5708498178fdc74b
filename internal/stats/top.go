package stats

import (
	"sort"
	"time"

	"myexpense/internal/core"
)

// DefaultTopN is the size of the ranking when the caller does not ask for one.
const DefaultTopN = 5

// TopN returns the n largest records of type typ inside the window ending at
// now, largest first. Equal amounts keep their input order. n <= 0 selects
// DefaultTopN.
func TopN(records []core.Transaction, typ core.TransactionType, g Granularity, now time.Time, n int, cal Calendar) []core.Transaction {
	return TopNWindow(records, typ, cal.Window(g, now), n)
}

// TopNWindow is TopN over a precomputed window.
func TopNWindow(records []core.Transaction, typ core.TransactionType, w Window, n int) []core.Transaction {
	if n <= 0 {
		n = DefaultTopN
	}
	filtered := InWindow(records, typ, w)
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Amount.Cents > filtered[j].Amount.Cents
	})
	if len(filtered) > n {
		filtered = filtered[:n]
	}
	if filtered == nil {
		return []core.Transaction{}
	}
	return filtered
}
