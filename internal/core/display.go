package core

import (
	"fmt"
	"math"
	"time"
)

// DisplayDateLayout renders dates in a medium style, e.g. "Jan 2, 2026".
const DisplayDateLayout = "Jan 2, 2006"

// DisplayRow is the list-ready rendering of a Transaction.
type DisplayRow struct {
	ID         string
	Name       string
	Category   string
	DateText   string
	AmountText string
	IsIncome   bool
}

// ToDisplayRow renders t in loc. A nil loc renders in t's own location.
func ToDisplayRow(t Transaction, loc *time.Location) DisplayRow {
	d := t.Date
	if loc != nil {
		d = d.In(loc)
	}
	return DisplayRow{
		ID:         t.ID,
		Name:       t.Name,
		Category:   t.Category,
		DateText:   d.Format(DisplayDateLayout),
		AmountText: FormatSigned(t.Amount, t.Type),
		IsIncome:   t.IsIncome(),
	}
}

// FormatSigned renders a magnitude with the sign implied by its type: "+ $1.50" or "- $1.50".
func FormatSigned(m Money, typ TransactionType) string {
	sign := "- "
	if typ == Income {
		sign = "+ "
	}
	return sign + formatDollars(abs64(m.Cents))
}

// FormatBalance renders a signed value: "$12.00" or "-$12.00".
func FormatBalance(m Money) string {
	if m.Cents < 0 {
		return "-" + formatDollars(abs64(m.Cents))
	}
	return formatDollars(m.Cents)
}

// FormatBubble renders a chart value rounded to whole dollars: "+ $12" or "- $12".
func FormatBubble(m Money, typ TransactionType) string {
	sign := "- "
	if typ == Income {
		sign = "+ "
	}
	return sign + fmt.Sprintf("$%.0f", math.Abs(m.Dollars()))
}

func formatDollars(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
