// Package app wires the configured clients, storage and services together.
package app

import (
	"database/sql"
	"fmt"
	"os"

	"onetexplorer/internal/config"
	"onetexplorer/internal/explorer"
	"onetexplorer/internal/httpx"
	"onetexplorer/internal/impact"
	"onetexplorer/internal/integrations/bls"
	"onetexplorer/internal/integrations/llm"
	"onetexplorer/internal/integrations/onet"
	slackbot "onetexplorer/internal/integrations/slack"
	"onetexplorer/internal/logging"
	"onetexplorer/internal/refresh"
	"onetexplorer/internal/storage/sqlite"

	"github.com/slack-go/slack"
	"go.uber.org/zap"
)

type App struct {
	Config   config.Config
	Logger   *zap.Logger
	DB       *sql.DB
	Cache    *sqlite.ResponseCache
	Explorer *explorer.Service
}

// New opens the database and builds the explorer pipeline from cfg.
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	logger = logging.OrNop(logger)
	appliedHTTPTimeout := httpx.ConfigureExternalHTTPClient(cfg.ExternalHTTPTimeoutSeconds)
	logger.Info("config loaded",
		zap.String("source", cfg.Source),
		zap.String("db_path", cfg.DBPath),
		zap.String("report_output_dir", cfg.ReportOutputDir),
		zap.Int("watch_codes", len(cfg.WatchCodes)),
		zap.Bool("llm_review", cfg.LLMReviewEnabled),
		zap.Bool("slack", cfg.SlackConfigured()),
		zap.String("glossary", cfg.GlossaryPath),
		zap.Duration("external_http_timeout", appliedHTTPTimeout),
	)

	classifier, err := cfg.Classifier()
	if err != nil {
		return nil, err
	}

	db, err := sqlite.InitDB(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	logger.Debug("database initialized", zap.String("path", cfg.DBPath))

	if err := os.MkdirAll(cfg.ReportOutputDir, 0755); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create report output dir: %w", err)
	}

	cache := sqlite.NewResponseCache(db, cfg.CacheTTL())
	onetClient := onet.New(cfg.ONetBaseURL, cfg.ONetAPIKey,
		onet.WithCache(cache),
		onet.WithLogger(logger.Named("onet")),
		onet.WithWorkers(cfg.IndustryScanWorkers),
	)
	blsClient := bls.New(cfg.BLSBaseURL, cfg.BLSAPIKey,
		bls.WithCache(cache),
		bls.WithLogger(logger.Named("bls")),
	)

	opts := []explorer.Option{
		explorer.WithEmployment(blsClient),
		explorer.WithHistory(db),
		explorer.WithOutputDir(cfg.ReportOutputDir),
		explorer.WithLogger(logger.Named("explorer")),
	}
	if cfg.LLMReviewEnabled {
		completer := llm.NewAnthropic(cfg.AnthropicAPIKey, cfg.LLMModel, logger.Named("llm"))
		opts = append(opts, explorer.WithReviewer(llm.NewReviewer(completer, cfg.LLMConfidence, logger.Named("llm"))))
	}

	return &App{
		Config:   cfg,
		Logger:   logger,
		DB:       db,
		Cache:    cache,
		Explorer: explorer.New(onetClient, impact.NewAnalyzer(classifier), opts...),
	}, nil
}

// Refresher builds the scheduled refresh for the configured watch list.
func (a *App) Refresher() *refresh.Refresher {
	opts := []refresh.Option{
		refresh.WithPurger(a.Cache),
		refresh.WithLogger(a.Logger.Named("refresh")),
	}
	if a.Config.SlackConfigured() {
		notifier := slackbot.NewNotifier(a.Config.SlackBotToken, a.Config.SlackChannelID, a.Logger.Named("slack"),
			slack.OptionHTTPClient(httpx.Client()))
		opts = append(opts, refresh.WithNotifier(notifier))
	}
	return refresh.New(a.Explorer, a.Config.WatchCodes, opts...)
}

func (a *App) Close() error {
	return a.DB.Close()
}
