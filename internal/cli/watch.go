package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"onetexplorer/internal/config"

	"github.com/spf13/cobra"
)

func newWatchCommand(opts *rootOptions) *cobra.Command {
	var once bool
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the reports for watch_codes on refresh_schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openApp(true)
			if err != nil {
				return err
			}
			defer a.Close()
			if len(a.Config.WatchCodes) == 0 {
				return fmt.Errorf("no watch_codes configured")
			}
			refresher := a.Refresher()

			if once {
				result, err := refresher.RunOnce(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), result.Summary())
				return nil
			}

			schedule, err := config.ParseSchedule(a.Config.RefreshSchedule)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			fmt.Fprintf(cmd.OutOrStdout(), "Watching %d occupations (cron: %s)\n", len(a.Config.WatchCodes), a.Config.RefreshSchedule)
			return refresher.Start(ctx, schedule)
		},
	}
	cmd.Flags().BoolVar(&once, "once", false, "run a single refresh and exit")
	return cmd
}
