package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	applog "myexpense/internal/log"
)

// Opener builds the App on first use, so help and usage never touch the store.
type Opener func(ctx context.Context) (*App, error)

type runner struct {
	open Opener
	app  *App
}

// get opens the App on first call and attaches its logger to cmd's context.
func (r *runner) get(cmd *cobra.Command) (*App, error) {
	if r.app == nil {
		app, err := r.open(cmd.Context())
		if err != nil {
			return nil, err
		}
		r.app = app
	}
	if r.app.Logger != nil {
		cmd.SetContext(applog.WithContext(cmd.Context(), r.app.Logger))
	}
	return r.app, nil
}

func (r *runner) close() error {
	if r.app == nil {
		return nil
	}
	return r.app.Close()
}

// NewRootCmd assembles the command tree. The returned close func releases
// whatever App the executed command opened.
func NewRootCmd(open Opener) (*cobra.Command, func() error) {
	r := &runner{open: open}

	root := &cobra.Command{
		Use:   "myexpense",
		Short: "Track personal income and expenses",
		Long: `MyExpense records income and expense transactions and derives
charts, top lists and searches from them.

Configuration is read from MYEXPENSE_* environment variables and an
optional .env file in the working directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newAddCmd(r),
		newQuickAddCmd(r),
		newDeleteCmd(r),
		newListCmd(r),
		newRecentCmd(r),
		newStatsCmd(r),
		newSummaryCmd(r),
	)
	return root, r.close
}

// Execute runs the command tree with args, writing command output to out.
func Execute(ctx context.Context, open Opener, args []string, out io.Writer) (err error) {
	root, closeApp := NewRootCmd(open)
	root.SetArgs(args)
	root.SetOut(out)
	defer func() {
		if cerr := closeApp(); cerr != nil && err == nil {
			err = fmt.Errorf("close: %w", cerr)
		}
	}()
	return root.ExecuteContext(ctx)
}
