// Package cli implements the onetexplorer command line.
package cli

import (
	"fmt"

	"onetexplorer/internal/app"
	"onetexplorer/internal/config"
	"onetexplorer/internal/logging"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	verbose    bool
}

func (o *rootOptions) loadConfig() (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// openApp loads the config and wires the services. requireKey rejects a
// missing O*NET key up front for commands that call the API.
func (o *rootOptions) openApp(requireKey bool) (*app.App, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	if requireKey {
		if err := cfg.RequireONetKey(); err != nil {
			return nil, err
		}
	}
	logger, err := logging.New(o.verbose)
	if err != nil {
		return nil, err
	}
	return app.New(cfg, logger)
}

// NewRootCommand builds the command tree.
func NewRootCommand(version string) *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "onetexplorer",
		Short: "Explore O*NET occupations and their exposure to AI",
		Long: `onetexplorer searches the O*NET occupational database, builds dashboards
combining occupation details, BLS employment figures and an AI impact analysis,
and keeps a history of every analysis.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default CONFIG_PATH or config.yaml)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newSearchCommand(opts),
		newReportCommand(opts),
		newAnalyzeCommand(opts),
		newServeCommand(opts),
		newHistoryCommand(opts),
		newWatchCommand(opts),
		newCacheCommand(opts),
		newGlossaryCommand(),
	)
	return root
}
