package stats

import "myexpense/internal/core"

// DefaultRecentLimit is how many records the home view lists.
const DefaultRecentLimit = 6

// Summary holds the all-time totals shown on the home view.
type Summary struct {
	Income   core.Money
	Expenses core.Money
	Balance  core.Money
	Count    int
}

// Summarize totals records by type. Balance is income minus expenses.
func Summarize(records []core.Transaction) Summary {
	var s Summary
	for _, r := range records {
		switch r.Type {
		case core.Income:
			s.Income = s.Income.Add(r.Amount)
		case core.Expense:
			s.Expenses = s.Expenses.Add(r.Amount)
		}
	}
	s.Balance = s.Income.Sub(s.Expenses)
	s.Count = len(records)
	return s
}

// Recent returns the first n records of the store order (newest first).
// n <= 0 selects DefaultRecentLimit.
func Recent(records []core.Transaction, n int) []core.Transaction {
	if n <= 0 {
		n = DefaultRecentLimit
	}
	if len(records) < n {
		n = len(records)
	}
	out := make([]core.Transaction, n)
	copy(out, records[:n])
	return out
}
