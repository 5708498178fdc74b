package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"myexpense/internal/core"
	"myexpense/internal/services"
	"myexpense/internal/stats"
)

// Accepted --date layouts, tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD, \"YYYY-MM-DD HH:MM\" or RFC 3339", s)
}

func newAddCmd(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add NAME AMOUNT",
		Short: "Record a new transaction",
		Long: `Record a new transaction. AMOUNT is a non-negative decimal such as
12.50 or 12,50; the sign comes from --type. Without --date the
transaction is dated now.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.get(cmd)
			if err != nil {
				return err
			}
			dateText, _ := cmd.Flags().GetString("date")
			typ, _ := cmd.Flags().GetString("type")
			category, _ := cmd.Flags().GetString("category")

			date, err := parseDate(dateText, app.Location)
			if err != nil {
				return err
			}

			t, err := app.Service.Submit(cmd.Context(), services.Form{
				Name:     args[0],
				Amount:   args[1],
				Date:     date,
				Type:     typ,
				Category: category,
			})
			if err != nil {
				return err
			}
			return printAdded(cmd, t, app)
		},
	}
	cmd.Flags().StringP("type", "t", "expense", "Transaction type: expense or income")
	cmd.Flags().StringP("category", "c", "", "Optional category")
	cmd.Flags().StringP("date", "d", "", "Transaction date (default now)")
	return cmd
}

func newQuickAddCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "quick-add",
		Short: "Record a sample expense dated now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.get(cmd)
			if err != nil {
				return err
			}
			t, err := app.Service.QuickAdd(cmd.Context())
			if err != nil {
				return err
			}
			return printAdded(cmd, t, app)
		},
	}
}

func printAdded(cmd *cobra.Command, t core.Transaction, app *App) error {
	row := core.ToDisplayRow(t, app.Location)
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "Added %s: %s %s on %s\n", row.ID, row.Name, row.AmountText, row.DateText)
	return err
}

func newDeleteCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a transaction",
		Long:    `Delete a transaction by id. Deleting an unknown id is not an error.`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.get(cmd)
			if err != nil {
				return err
			}
			if err := app.Service.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return err
		},
	}
}

func newListCmd(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Browse and search all transactions",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.get(cmd)
			if err != nil {
				return err
			}
			query, _ := cmd.Flags().GetString("query")
			typ, _ := cmd.Flags().GetString("type")
			category, _ := cmd.Flags().GetString("category")

			filter, err := stats.ParseTypeFilter(typ)
			if err != nil {
				return err
			}
			records, err := app.Service.Search(cmd.Context(), stats.Criteria{
				Query:    query,
				Type:     filter,
				Category: category,
			})
			if err != nil {
				return err
			}
			return printTransactions(cmd.OutOrStdout(), records, app.Location)
		},
	}
	cmd.Flags().StringP("query", "q", "", "Match name or category (case-insensitive)")
	cmd.Flags().StringP("type", "t", "all", "Type filter: all, income or expense")
	cmd.Flags().StringP("category", "c", "", "Match category only (case-insensitive)")
	return cmd
}

func newRecentCmd(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show the most recent transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.get(cmd)
			if err != nil {
				return err
			}
			limit, _ := cmd.Flags().GetInt("limit")
			records, err := app.Service.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return printTransactions(cmd.OutOrStdout(), records, app.Location)
		},
	}
	cmd.Flags().IntP("limit", "n", 0, "How many transactions to show (default from MYEXPENSE_RECENT_LIMIT)")
	return cmd
}
