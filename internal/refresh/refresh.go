// Package refresh rebuilds the reports for watched occupations on a cron
// schedule.
package refresh

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"onetexplorer/internal/domain"
	slackbot "onetexplorer/internal/integrations/slack"
	"onetexplorer/internal/logging"
	"onetexplorer/internal/report"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const Trigger = "watch"

// Generator builds, writes and records one report.
type Generator interface {
	Generate(ctx context.Context, code string, f report.Format, outputPath, trigger string) (domain.Report, domain.RunRecord, error)
}

type Notifier interface {
	PostRefresh(ctx context.Context, runs []domain.RunRecord, failures []slackbot.Failure) error
}

// Purger drops expired cached API responses.
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// Result tracks one pass over the watch list.
type Result struct {
	Runs     []domain.RunRecord
	Failures []slackbot.Failure
	Purged   int64
}

// Summary is a one-line description of the pass for logs and the CLI.
func (r Result) Summary() string {
	msg := fmt.Sprintf("%d rebuilt, %d failed, %d cache entries purged", len(r.Runs), len(r.Failures), r.Purged)
	if len(r.Failures) > 0 {
		var codes []string
		for _, f := range r.Failures {
			codes = append(codes, f.Code)
		}
		msg += " (failed: " + strings.Join(codes, ", ") + ")"
	}
	return msg
}

type Refresher struct {
	generator Generator
	codes     []string
	format    report.Format
	notifier  Notifier
	purger    Purger
	logger    *zap.Logger
	now       func() time.Time
}

type Option func(*Refresher)

func WithNotifier(n Notifier) Option {
	return func(r *Refresher) { r.notifier = n }
}

func WithPurger(p Purger) Option {
	return func(r *Refresher) { r.purger = p }
}

func WithLogger(l *zap.Logger) Option {
	return func(r *Refresher) { r.logger = logging.OrNop(l) }
}

func WithFormat(f report.Format) Option {
	return func(r *Refresher) { r.format = f }
}

func New(g Generator, codes []string, opts ...Option) *Refresher {
	r := &Refresher{
		generator: g,
		codes:     codes,
		format:    report.FormatHTML,
		logger:    zap.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunOnce rebuilds every watched occupation in order. A failed occupation is
// recorded and the pass continues; only cancellation stops it early.
func (r *Refresher) RunOnce(ctx context.Context) (Result, error) {
	var result Result
	for _, code := range r.codes {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		_, run, err := r.generator.Generate(ctx, code, r.format, "", Trigger)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			r.logger.Warn("refresh occupation failed", zap.String("code", code), zap.Error(err))
			result.Failures = append(result.Failures, slackbot.Failure{Code: code, Err: err})
			continue
		}
		result.Runs = append(result.Runs, run)
	}

	if r.purger != nil {
		purged, err := r.purger.PurgeExpired(ctx)
		if err != nil {
			r.logger.Warn("refresh cache purge failed", zap.Error(err))
		}
		result.Purged = purged
	}

	if r.notifier != nil {
		if err := r.notifier.PostRefresh(ctx, result.Runs, result.Failures); err != nil {
			r.logger.Warn("refresh notify failed", zap.Error(err))
		}
	}
	r.logger.Info("refresh complete", zap.String("summary", result.Summary()))
	return result, nil
}

// Start runs a pass at every activation of schedule until ctx is done.
func (r *Refresher) Start(ctx context.Context, schedule cron.Schedule) error {
	if len(r.codes) == 0 {
		return errors.New("no watch_codes configured")
	}
	r.logger.Info("refresh scheduled", zap.Int("codes", len(r.codes)))
	for {
		now := r.now()
		next := schedule.Next(now)
		if next.IsZero() {
			return errors.New("refresh schedule has no future activations")
		}
		wait := next.Sub(now)
		r.logger.Info("refresh next run", zap.Time("at", next), zap.Duration("in", wait.Round(time.Second)))

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}
		if _, err := r.RunOnce(ctx); err != nil && ctx.Err() != nil {
			return nil
		}
	}
}
