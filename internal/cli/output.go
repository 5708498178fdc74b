package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"myexpense/internal/core"
	"myexpense/internal/stats"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func printTransactions(w io.Writer, records []core.Transaction, loc *time.Location) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No transactions.")
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tDATE\tAMOUNT")
	for _, t := range records {
		row := core.ToDisplayRow(t, loc)
		category := row.Category
		if category == "" {
			category = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", row.ID, row.Name, category, row.DateText, row.AmountText)
	}
	return tw.Flush()
}

func printPoints(w io.Writer, points []stats.Point, g stats.Granularity, typ core.TransactionType, loc *time.Location) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "BUCKET\tTOTAL")
	for _, p := range points {
		fmt.Fprintf(tw, "%s\t%s\n", bucketLabel(g, p.Start.In(loc)), core.FormatBubble(p.Total, typ))
	}
	return tw.Flush()
}

func bucketLabel(g stats.Granularity, t time.Time) string {
	switch g {
	case stats.Day:
		return t.Format("15:04")
	case stats.Week:
		return t.Format("Mon Jan 2")
	case stats.Month:
		return t.Format("Jan 2")
	case stats.Year:
		return t.Format("Jan 2006")
	default:
		return t.Format(time.RFC3339)
	}
}

func typeLabel(typ core.TransactionType) string {
	if typ == core.Income {
		return "Income"
	}
	return "Expenses"
}
