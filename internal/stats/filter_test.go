package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myexpense/internal/core"
)

func browseRecords() []core.Transaction {
	d := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	return []core.Transaction{
		{ID: "1", Name: "Netflix", Category: "Entertainment", Type: core.Expense, Date: d, Amount: core.Money{Cents: 1599}},
		{ID: "2", Name: "Salary", Category: "Work", Type: core.Income, Date: d.Add(-time.Hour), Amount: core.Money{Cents: 300000}},
		{ID: "3", Name: "Groceries", Category: "", Type: core.Expense, Date: d.Add(-2 * time.Hour), Amount: core.Money{Cents: 5423}},
		{ID: "4", Name: "Freelance work", Category: "Side", Type: core.Income, Date: d.Add(-3 * time.Hour), Amount: core.Money{Cents: 45000}},
	}
}

func ids(records []core.Transaction) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestFilterEmptyCriteriaIsIdentity(t *testing.T) {
	records := browseRecords()
	assert.Equal(t, records, Filter(records, Criteria{Type: AllTypes}))
	assert.Equal(t, records, Filter(records, Criteria{}))
	assert.Equal(t, records, Filter(records, Criteria{Query: "   ", Category: "\t"}))
}

func TestFilter(t *testing.T) {
	cases := []struct {
		name string
		c    Criteria
		want []string
	}{
		{"query matches name case-insensitively", Criteria{Query: "NETFLIX"}, []string{"1"}},
		{"query matches category", Criteria{Query: "work"}, []string{"2", "4"}},
		{"type income", Criteria{Type: IncomeOnly}, []string{"2", "4"}},
		{"type expense", Criteria{Type: ExpensesOnly}, []string{"1", "3"}},
		{"category only looks at category", Criteria{Category: "work"}, []string{"2"}},
		{"blank category never matches a category query", Criteria{Category: "g"}, []string{}},
		{"all predicates combine", Criteria{Query: "work", Type: IncomeOnly, Category: "side"}, []string{"4"}},
		{"nothing matches", Criteria{Query: "rent"}, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ids(Filter(browseRecords(), tc.c)))
		})
	}
}

func TestFilterFoldsUnicode(t *testing.T) {
	records := []core.Transaction{{ID: "1", Name: "Straße", Type: core.Expense}}
	assert.Len(t, Filter(records, Criteria{Query: "STRASSE"}), 1)
}

func TestParseTypeFilter(t *testing.T) {
	for in, want := range map[string]TypeFilter{"": AllTypes, "All": AllTypes, "income": IncomeOnly, " EXPENSE ": ExpensesOnly} {
		got, err := ParseTypeFilter(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseTypeFilter("transfer")
	assert.Error(t, err)
}
