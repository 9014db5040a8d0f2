package sqlite

import (
	"context"
	"database/sql"
	"time"

	"onetexplorer/internal/domain"

	"github.com/google/uuid"
)

const runColumns = `id, code, title, score, band, task_count, automate_count, augment_count,
	human_count, agent_count, review_notes, report_path, run_trigger, analyzed_at`

// InsertRun stores a run, assigning an ID and timestamp when missing, and
// returns the stored ID.
func InsertRun(ctx context.Context, db *sql.DB, r domain.RunRecord) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.AnalyzedAt.IsZero() {
		r.AnalyzedAt = time.Now()
	}
	if r.Trigger == "" {
		r.Trigger = "cli"
	}
	_, err := db.ExecContext(ctx,
		`INSERT INTO analysis_runs (`+runColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Code, r.Title, r.Score, r.Band, r.TaskCount, r.AutomateCount, r.AugmentCount,
		r.HumanCount, r.AgentCount, r.ReviewNotes, r.ReportPath, r.Trigger, r.AnalyzedAt.UTC(),
	)
	if err != nil {
		return "", err
	}
	return r.ID, nil
}

func scanRun(row interface{ Scan(...any) error }) (domain.RunRecord, error) {
	var r domain.RunRecord
	err := row.Scan(
		&r.ID, &r.Code, &r.Title, &r.Score, &r.Band, &r.TaskCount, &r.AutomateCount, &r.AugmentCount,
		&r.HumanCount, &r.AgentCount, &r.ReviewNotes, &r.ReportPath, &r.Trigger, &r.AnalyzedAt,
	)
	return r, err
}

// GetRecentRuns lists runs newest first. An empty code lists every
// occupation.
func GetRecentRuns(ctx context.Context, db *sql.DB, code string, limit int) ([]domain.RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT ` + runColumns + ` FROM analysis_runs`
	args := []any{}
	if code != "" {
		query += ` WHERE code = ?`
		args = append(args, code)
	}
	query += ` ORDER BY analyzed_at DESC, rowid DESC LIMIT ?`
	args = append(args, limit)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.RunRecord
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetLatestRun returns the newest run for code, or sql.ErrNoRows.
func GetLatestRun(ctx context.Context, db *sql.DB, code string) (domain.RunRecord, error) {
	return scanRun(db.QueryRowContext(ctx,
		`SELECT `+runColumns+` FROM analysis_runs WHERE code = ? ORDER BY analyzed_at DESC, rowid DESC LIMIT 1`, code))
}

func GetRunStats(ctx context.Context, db *sql.DB, since time.Time) (domain.RunStats, error) {
	var s domain.RunStats
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*), COUNT(DISTINCT code), COALESCE(AVG(score), 0),
		        COALESCE(SUM(CASE WHEN band = 'no-data' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN band = 'low' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN band = 'moderate' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN band = 'high' THEN 1 ELSE 0 END), 0)
		 FROM analysis_runs WHERE analyzed_at >= ?`,
		since.UTC(),
	).Scan(&s.Runs, &s.Occupations, &s.AvgScore, &s.BandNoData, &s.BandLow, &s.BandModerate, &s.BandHigh)
	return s, err
}

func InsertReviewNotes(ctx context.Context, db *sql.DB, runID string, notes []domain.ReviewNote) error {
	if len(notes) == 0 {
		return nil
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO review_notes (run_id, task_id, task, category, suggested, confidence, reason)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, n := range notes {
		if _, err := stmt.ExecContext(ctx, runID, n.TaskID, n.Task, n.Category, n.Suggested, n.Confidence, n.Reason); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func GetReviewNotes(ctx context.Context, db *sql.DB, runID string) ([]domain.ReviewNote, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT run_id, task_id, task, category, suggested, confidence, reason
		 FROM review_notes WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ReviewNote
	for rows.Next() {
		var n domain.ReviewNote
		if err := rows.Scan(&n.RunID, &n.TaskID, &n.Task, &n.Category, &n.Suggested, &n.Confidence, &n.Reason); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
