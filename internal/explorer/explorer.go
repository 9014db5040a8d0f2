// Package explorer runs the fetch, analyse, review and record pipeline for
// one occupation.
package explorer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"onetexplorer/internal/domain"
	"onetexplorer/internal/impact"
	"onetexplorer/internal/integrations/llm"
	"onetexplorer/internal/logging"
	"onetexplorer/internal/report"
	"onetexplorer/internal/storage/sqlite"

	"go.uber.org/zap"
)

// ErrEmptyCode is returned when no occupation code was given.
var ErrEmptyCode = errors.New("occupation code is required")

// Source is the O*NET side of the pipeline.
type Source interface {
	Search(ctx context.Context, keyword string) ([]domain.OccupationRef, error)
	Occupation(ctx context.Context, code string) (domain.Occupation, error)
}

// EmploymentSource supplies BLS figures. Partial results come back together
// with an error.
type EmploymentSource interface {
	Employment(ctx context.Context, code string) (domain.Employment, error)
}

type Reviewer interface {
	Review(ctx context.Context, title string, tasks []impact.TaskClassification) ([]domain.ReviewNote, llm.Usage, error)
}

type Service struct {
	source     Source
	employment EmploymentSource
	analyzer   *impact.Analyzer
	reviewer   Reviewer
	db         *sql.DB
	outputDir  string
	logger     *zap.Logger
	now        func() time.Time
}

type Option func(*Service)

func WithEmployment(e EmploymentSource) Option {
	return func(s *Service) { s.employment = e }
}

func WithReviewer(r Reviewer) Option {
	return func(s *Service) { s.reviewer = r }
}

// WithHistory records every generated report in db.
func WithHistory(db *sql.DB) Option {
	return func(s *Service) { s.db = db }
}

func WithOutputDir(dir string) Option {
	return func(s *Service) { s.outputDir = dir }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = logging.OrNop(l) }
}

func New(source Source, analyzer *impact.Analyzer, opts ...Option) *Service {
	if analyzer == nil {
		analyzer = impact.NewAnalyzer(nil)
	}
	s := &Service{
		source:    source,
		analyzer:  analyzer,
		outputDir: ".",
		logger:    zap.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Search(ctx context.Context, keyword string) ([]domain.OccupationRef, error) {
	keyword = strings.TrimSpace(keyword)
	results, err := s.source.Search(ctx, keyword)
	if err != nil {
		return nil, err
	}
	s.logger.Info("explorer search", zap.String("keyword", keyword), zap.Int("total", len(results)))
	return results, nil
}

// Build fetches and analyses one occupation. Only O*NET failures and
// malformed task data are fatal; employment and review failures become
// warnings on the report.
func (s *Service) Build(ctx context.Context, code string) (domain.Report, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return domain.Report{}, ErrEmptyCode
	}
	start := s.now()

	occ, err := s.source.Occupation(ctx, code)
	if err != nil {
		return domain.Report{}, fmt.Errorf("fetch occupation %s: %w", code, err)
	}
	if occ.Summary.Code == "" {
		occ.Summary.Code = code
	}

	rep := domain.Report{Occupation: occ}
	if s.employment != nil {
		emp, err := s.employment.Employment(ctx, code)
		rep.Occupation.Employment = emp
		if err != nil {
			if ctx.Err() != nil {
				return domain.Report{}, ctx.Err()
			}
			s.logger.Warn("explorer employment partial", zap.String("code", code), zap.Error(err))
			rep.Warnings = append(rep.Warnings, "Some BLS employment figures could not be fetched.")
		}
	}

	rep.Analysis, err = s.analyzer.Analyze(rep.Occupation.ImpactInput())
	if err != nil {
		return domain.Report{}, fmt.Errorf("analyze %s: %w", code, err)
	}

	if s.reviewer != nil {
		notes, usage, err := s.reviewer.Review(ctx, occ.Title(), rep.Analysis.Tasks)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return domain.Report{}, ctx.Err()
			}
			s.logger.Warn("explorer review failed", zap.String("code", code), zap.Error(err))
			rep.Warnings = append(rep.Warnings, "The second-opinion review could not be completed.")
		default:
			rep.ReviewNotes = notes
			s.logger.Debug("explorer review usage", zap.String("code", code), zap.Int64("tokens", usage.TotalTokens()))
		}
	}

	rep.GeneratedAt = s.now()
	s.logger.Info("explorer report built",
		zap.String("code", code),
		zap.Float64("score", rep.Analysis.OverallScore),
		zap.String("band", string(rep.Analysis.Band)),
		zap.Int("tasks", rep.Analysis.Distribution.Total()),
		zap.Duration("elapsed", rep.GeneratedAt.Sub(start)),
	)
	return rep, nil
}

// Record stores the run and its review notes when history is enabled. The
// returned record carries the stored ID.
func (s *Service) Record(ctx context.Context, rep domain.Report, trigger, reportPath string) (domain.RunRecord, error) {
	run := rep.RunRecord(trigger, reportPath)
	if s.db == nil {
		return run, nil
	}
	id, err := sqlite.InsertRun(ctx, s.db, run)
	if err != nil {
		return run, fmt.Errorf("record run %s: %w", run.Code, err)
	}
	run.ID = id
	if err := sqlite.InsertReviewNotes(ctx, s.db, id, rep.ReviewNotes); err != nil {
		return run, fmt.Errorf("record review notes %s: %w", run.Code, err)
	}
	return run, nil
}

// Generate builds the report, writes it to outputPath (or the default file in
// the output directory) and records the run. A failure to record history is
// logged and does not fail the call.
func (s *Service) Generate(ctx context.Context, code string, f report.Format, outputPath, trigger string) (domain.Report, domain.RunRecord, error) {
	rep, err := s.Build(ctx, code)
	if err != nil {
		return domain.Report{}, domain.RunRecord{}, err
	}
	path, err := report.WriteReportFile(rep, f, outputPath, s.outputDir)
	if err != nil {
		return rep, domain.RunRecord{}, fmt.Errorf("write report %s: %w", code, err)
	}
	run, err := s.Record(ctx, rep, trigger, path)
	if err != nil {
		s.logger.Warn("explorer history failed", zap.String("code", code), zap.Error(err))
	}
	s.logger.Info("explorer report written", zap.String("code", code), zap.String("path", path))
	return rep, run, nil
}

// History lists recent runs, newest first.
func (s *Service) History(ctx context.Context, code string, limit int) ([]domain.RunRecord, error) {
	if s.db == nil {
		return nil, nil
	}
	return sqlite.GetRecentRuns(ctx, s.db, strings.TrimSpace(code), limit)
}
