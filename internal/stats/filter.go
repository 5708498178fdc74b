package stats

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"myexpense/internal/core"
)

const (
	AllTypes     TypeFilter = "all"
	IncomeOnly   TypeFilter = "income"
	ExpensesOnly TypeFilter = "expense"
)

// TypeFilter restricts a search to one transaction type.
type TypeFilter string

func ParseTypeFilter(s string) (TypeFilter, error) {
	switch f := TypeFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return AllTypes, nil
	case AllTypes, IncomeOnly, ExpensesOnly:
		return f, nil
	default:
		return "", fmt.Errorf("invalid type filter %q: must be one of all, income, expense", s)
	}
}

func (f TypeFilter) matches(t core.TransactionType) bool {
	switch f {
	case "", AllTypes:
		return true
	case IncomeOnly:
		return t == core.Income
	case ExpensesOnly:
		return t == core.Expense
	default:
		return false
	}
}

// Criteria are the browse-all search inputs. Query matches name or category,
// Category matches category only; both are case-insensitive substrings.
type Criteria struct {
	Query    string
	Type     TypeFilter
	Category string
}

// Filter returns the records matching every criterion, in input order.
// Empty criteria return all records.
func Filter(records []core.Transaction, c Criteria) []core.Transaction {
	fold := cases.Fold()
	query := fold.String(strings.TrimSpace(c.Query))
	category := fold.String(strings.TrimSpace(c.Category))

	out := make([]core.Transaction, 0, len(records))
	for _, r := range records {
		if !c.Type.matches(r.Type) {
			continue
		}
		if query != "" {
			name := fold.String(r.Name)
			cat := fold.String(r.Category)
			if !strings.Contains(name, query) && !strings.Contains(cat, query) {
				continue
			}
		}
		if category != "" && !strings.Contains(fold.String(r.Category), category) {
			continue
		}
		out = append(out, r)
	}
	return out
}
