package cli

import (
	"fmt"
	"time"

	"onetexplorer/internal/storage/sqlite"

	"github.com/spf13/cobra"
)

func newHistoryCommand(opts *rootOptions) *cobra.Command {
	var (
		limit int
		days  int
	)
	cmd := &cobra.Command{
		Use:   "history [code]",
		Short: "List recent analyses",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openApp(false)
			if err != nil {
				return err
			}
			defer a.Close()

			code := ""
			if len(args) == 1 {
				code = args[0]
			}
			runs, err := a.Explorer.History(cmd.Context(), code, limit)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderRuns(runs))

			if code != "" && len(runs) > 0 {
				latest, err := sqlite.GetLatestRun(cmd.Context(), a.DB, code)
				if err != nil {
					return err
				}
				notes, err := sqlite.GetReviewNotes(cmd.Context(), a.DB, latest.ID)
				if err != nil {
					return err
				}
				if len(notes) > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", renderReviewNotes(notes))
				}
			}
			if code == "" && len(runs) > 0 {
				stats, err := sqlite.GetRunStats(cmd.Context(), a.DB, time.Now().AddDate(0, 0, -days))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", renderStats(stats))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of runs to list")
	cmd.Flags().IntVar(&days, "days", 30, "window for the summary statistics")
	return cmd
}
