package cli

import (
	"os"
	"os/signal"
	"syscall"

	"onetexplorer/internal/web"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web explorer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openApp(false)
			if err != nil {
				return err
			}
			defer a.Close()
			if addr == "" {
				addr = a.Config.ListenAddr
			}
			if a.Config.ONetAPIKey == "" {
				a.Logger.Warn("serve without onet api key, searches are disabled")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			server := web.NewServer(a.Explorer, a.Config.ONetAPIKey != "", a.Logger.Named("web"))
			if err := server.ListenAndServe(ctx, addr); err != nil {
				a.Logger.Error("serve failed", zap.Error(err))
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default listen_addr)")
	return cmd
}
