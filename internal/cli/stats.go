package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"myexpense/internal/core"
	"myexpense/internal/stats"
)

func newStatsCmd(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Chart totals and top transactions for a range",
		Long: `Show per-bucket totals and the largest transactions of one type.

Ranges: day (24 hourly buckets), week (7 days), month (30 days) and
year (12 months), each ending with the bucket that contains now.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.get(cmd)
			if err != nil {
				return err
			}
			rangeText, _ := cmd.Flags().GetString("range")
			typeText, _ := cmd.Flags().GetString("type")

			g, err := stats.ParseGranularity(rangeText)
			if err != nil {
				return err
			}
			typ, err := core.ParseType(typeText)
			if err != nil {
				return err
			}

			d, err := app.Service.Dashboard(cmd.Context(), typ, g)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s by %s, %s to %s\n\n", typeLabel(typ), g,
				d.Window.Cutoff.In(app.Location).Format(core.DisplayDateLayout),
				d.Now.In(app.Location).Format(core.DisplayDateLayout))
			if err := printPoints(out, d.Points, g, typ, app.Location); err != nil {
				return err
			}
			fmt.Fprintf(out, "\nTotal: %s\n\nTop %s\n", core.FormatSigned(d.Total, typ), typeLabel(typ))
			return printTransactions(out, d.Top, app.Location)
		},
	}
	cmd.Flags().StringP("range", "r", "week", "Range: day, week, month or year")
	cmd.Flags().StringP("type", "t", "expense", "Transaction type: expense or income")
	return cmd
}

func newSummaryCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show all-time income, expenses and balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.get(cmd)
			if err != nil {
				return err
			}
			s, err := app.Service.Summary(cmd.Context())
			if err != nil {
				return err
			}
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintf(tw, "Income\t%s\n", core.FormatBalance(s.Income))
			fmt.Fprintf(tw, "Expenses\t%s\n", core.FormatBalance(s.Expenses))
			fmt.Fprintf(tw, "Balance\t%s\n", core.FormatBalance(s.Balance))
			fmt.Fprintf(tw, "Transactions\t%d\n", s.Count)
			return tw.Flush()
		},
	}
}
