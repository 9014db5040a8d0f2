package domain

import (
	"time"

	"onetexplorer/internal/impact"
)

// Report is one fetched occupation with its analysis, ready to render.
type Report struct {
	Occupation  Occupation    `json:"occupation"`
	Analysis    impact.Result `json:"ai_impact"`
	ReviewNotes []ReviewNote  `json:"review_notes,omitempty"`
	GeneratedAt time.Time     `json:"generated_at"`
	// Warnings lists optional sources that failed; the report is still usable.
	Warnings []string `json:"warnings,omitempty"`
}

// RunRecord summarizes the report for the history table.
func (r Report) RunRecord(trigger, reportPath string) RunRecord {
	return RunRecord{
		Code:          r.Occupation.Code(),
		Title:         r.Occupation.Title(),
		Score:         r.Analysis.OverallScore,
		Band:          string(r.Analysis.Band),
		TaskCount:     r.Analysis.Distribution.Total(),
		AutomateCount: r.Analysis.Distribution.Automate,
		AugmentCount:  r.Analysis.Distribution.Augment,
		HumanCount:    r.Analysis.Distribution.Human,
		AgentCount:    len(r.Analysis.Agents),
		ReviewNotes:   len(r.ReviewNotes),
		ReportPath:    reportPath,
		Trigger:       trigger,
		AnalyzedAt:    r.GeneratedAt,
	}
}
