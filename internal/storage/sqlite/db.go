// Package sqlite persists the API response cache and the analysis history.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS response_cache (
		key        TEXT PRIMARY KEY,
		body       BLOB NOT NULL,
		fetched_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_response_cache_fetched_at ON response_cache(fetched_at);

	CREATE TABLE IF NOT EXISTS analysis_runs (
		id             TEXT PRIMARY KEY,
		code           TEXT NOT NULL,
		title          TEXT DEFAULT '',
		score          REAL NOT NULL,
		band           TEXT NOT NULL,
		task_count     INTEGER NOT NULL DEFAULT 0,
		automate_count INTEGER NOT NULL DEFAULT 0,
		augment_count  INTEGER NOT NULL DEFAULT 0,
		human_count    INTEGER NOT NULL DEFAULT 0,
		agent_count    INTEGER NOT NULL DEFAULT 0,
		run_trigger    TEXT DEFAULT 'cli',
		analyzed_at    DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_code ON analysis_runs(code);
	CREATE INDEX IF NOT EXISTS idx_runs_date ON analysis_runs(analyzed_at);

	CREATE TABLE IF NOT EXISTS review_notes (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id      TEXT NOT NULL,
		task_id     TEXT DEFAULT '',
		task        TEXT NOT NULL,
		category    TEXT NOT NULL,
		suggested   TEXT NOT NULL,
		confidence  REAL NOT NULL DEFAULT 0,
		reason      TEXT DEFAULT '',
		created_at  DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_review_notes_run ON review_notes(run_id);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	// Migrations: columns added after the first release.
	for _, col := range []struct{ name, ddl string }{
		{"report_path", `ALTER TABLE analysis_runs ADD COLUMN report_path TEXT DEFAULT ''`},
		{"review_notes", `ALTER TABLE analysis_runs ADD COLUMN review_notes INTEGER NOT NULL DEFAULT 0`},
	} {
		var colCount int
		_ = db.QueryRow(`SELECT COUNT(*) FROM pragma_table_info('analysis_runs') WHERE name = ?`, col.name).Scan(&colCount)
		if colCount == 0 {
			if _, err := db.Exec(col.ddl); err != nil {
				db.Close()
				return nil, fmt.Errorf("adding column %s: %w", col.name, err)
			}
		}
	}

	return db, nil
}
