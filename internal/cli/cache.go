package cli

import (
	"fmt"

	"onetexplorer/internal/storage/sqlite"

	"github.com/spf13/cobra"
)

func newCacheCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the API response cache",
	}

	var all bool
	purge := &cobra.Command{
		Use:   "purge",
		Short: "Delete expired cached responses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openApp(false)
			if err != nil {
				return err
			}
			defer a.Close()

			var n int64
			if all {
				n, err = sqlite.PurgeCache(cmd.Context(), a.DB)
			} else {
				n, err = a.Cache.PurgeExpired(cmd.Context())
			}
			if err != nil {
				return err
			}
			remaining, err := sqlite.CountCacheEntries(cmd.Context(), a.DB)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Purged %d cached responses, %d remaining\n", n, remaining)
			return nil
		},
	}
	purge.Flags().BoolVar(&all, "all", false, "delete every cached response, not only expired ones")

	cmd.AddCommand(purge)
	return cmd
}
