package cli

import (
	"fmt"
	"strings"

	"onetexplorer/internal/domain"
	"onetexplorer/internal/impact"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

var colors = struct {
	Primary lipgloss.Color
	Muted   lipgloss.Color
	Error   lipgloss.Color
	Warning lipgloss.Color
}{
	Primary: lipgloss.Color("#3B82F6"),
	Muted:   lipgloss.Color("#64748B"),
	Error:   lipgloss.Color("#EF4444"),
	Warning: lipgloss.Color("#F59E0B"),
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colors.Primary)
	codeStyle    = lipgloss.NewStyle().Foreground(colors.Muted)
	mutedStyle   = lipgloss.NewStyle().Foreground(colors.Muted)
	warningStyle = lipgloss.NewStyle().Foreground(colors.Warning)
	headerStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
)

var categoryColors = map[impact.Category]lipgloss.Color{
	impact.Automate:       lipgloss.Color("#EF4444"),
	impact.Augment:        lipgloss.Color("#3B82F6"),
	impact.HumanEssential: lipgloss.Color("#10B981"),
}

func bandStyle(color string) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Padding(0, 1).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color(color))
}

func categoryStyle(c impact.Category) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(categoryColors[c])
}

// renderRefs lists search results one per line.
func renderRefs(refs []domain.OccupationRef) string {
	if len(refs) == 0 {
		return mutedStyle.Render("No occupations matched.")
	}
	var b strings.Builder
	for _, r := range refs {
		fmt.Fprintf(&b, "%s  %s\n", codeStyle.Render(r.Code), r.Title)
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderAnalysis is the terminal summary printed after a report is built.
func renderAnalysis(rep domain.Report) string {
	res := rep.Analysis
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", titleStyle.Render(rep.Occupation.Title()), codeStyle.Render(rep.Occupation.Code()))
	if total := rep.Occupation.Employment.Total(); total > 0 {
		fmt.Fprintf(&b, "%s\n", mutedStyle.Render(humanize.Comma(int64(total))+" employed"))
	}
	fmt.Fprintf(&b, "\nAI impact %d %s\n", res.RoundedScore(), bandStyle(res.BandColor).Render(res.BandLabel))
	for _, c := range impact.Categories {
		fmt.Fprintf(&b, "  %s %d tasks (%d%%)\n",
			categoryStyle(c).Render(fmt.Sprintf("%-16s", c.Label())), res.Distribution.Count(c), res.Distribution.Percent(c))
	}
	if len(res.Agents) > 0 {
		fmt.Fprintf(&b, "\n%s\n", headerStyle.Render("Agents"))
		for _, a := range res.Agents {
			fmt.Fprintf(&b, "  %s %s\n", a.Name, mutedStyle.Render(fmt.Sprintf("%.0f", a.Relevance)))
		}
	}
	if len(rep.ReviewNotes) > 0 {
		fmt.Fprintf(&b, "\n%s\n", mutedStyle.Render(fmt.Sprintf("%d review notes", len(rep.ReviewNotes))))
	}
	for _, w := range rep.Warnings {
		fmt.Fprintf(&b, "%s\n", warningStyle.Render("warning: "+w))
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderRuns(runs []domain.RunRecord) string {
	if len(runs) == 0 {
		return mutedStyle.Render("No analyses recorded yet.")
	}
	var b strings.Builder
	for _, r := range runs {
		fmt.Fprintf(&b, "%s  %s  %-40s  %3.0f %-8s %s\n",
			mutedStyle.Render(r.AnalyzedAt.Local().Format("2006-01-02 15:04")),
			codeStyle.Render(r.Code),
			truncate(r.Title, 40),
			r.Score,
			r.Band,
			mutedStyle.Render(r.Trigger+" "+humanize.Time(r.AnalyzedAt)),
		)
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderReviewNotes lists the second-opinion notes of one run.
func renderReviewNotes(notes []domain.ReviewNote) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", headerStyle.Render("Review notes (latest run)"))
	for _, n := range notes {
		fmt.Fprintf(&b, "  %s -> %s  %s\n", n.Category, n.Suggested, truncate(n.Task, 60))
		if n.Reason != "" {
			fmt.Fprintf(&b, "    %s\n", mutedStyle.Render(n.Reason))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderStats(s domain.RunStats) string {
	return mutedStyle.Render(fmt.Sprintf("%d runs over %d occupations, average score %.1f (low %d, moderate %d, high %d, no data %d)",
		s.Runs, s.Occupations, s.AvgScore, s.BandLow, s.BandModerate, s.BandHigh, s.BandNoData))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
