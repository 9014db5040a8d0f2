package domain

import "time"

// RunRecord is one stored analysis of an occupation.
type RunRecord struct {
	ID            string
	Code          string
	Title         string
	Score         float64
	Band          string
	TaskCount     int
	AutomateCount int
	AugmentCount  int
	HumanCount    int
	AgentCount    int
	ReviewNotes   int
	ReportPath    string
	Trigger       string // "cli", "web" or "watch"
	AnalyzedAt    time.Time
}

type RunStats struct {
	Runs         int
	Occupations  int
	AvgScore     float64
	BandNoData   int
	BandLow      int
	BandModerate int
	BandHigh     int
}

// ReviewNote is a second-opinion disagreement on one task classification.
// Notes are informational and never change the computed analysis.
type ReviewNote struct {
	RunID      string  `json:"-"`
	TaskID     string  `json:"task_id,omitempty"`
	Task       string  `json:"task"`
	Category   string  `json:"category"`
	Suggested  string  `json:"suggested"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}
