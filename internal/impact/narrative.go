package impact

import (
	"fmt"
	"strings"
)

// Band is the score range an analysis falls into.
type Band string

const (
	BandNoData   Band = "no-data"
	BandLow      Band = "low"
	BandModerate Band = "moderate"
	BandHigh     Band = "high"
)

// BandFor maps a score to its band. scored is false when no task carried a
// usable importance rating.
func (p Policy) BandFor(score float64, scored bool) Band {
	switch {
	case !scored:
		return BandNoData
	case score < p.LowBelow:
		return BandLow
	case score > p.HighAbove:
		return BandHigh
	default:
		return BandModerate
	}
}

type bandText struct {
	label   string
	color   string
	summary string
	outlook string
}

var bandTexts = map[Band]bandText{
	BandNoData: {
		label:   "No data",
		color:   "#64748B",
		summary: "No rated tasks were available for %[1]s, so no AI impact score could be computed.",
		outlook: "Outlook unavailable until task data for this occupation is published.",
	},
	BandLow: {
		label: "Limited",
		color: "#10B981",
		summary: "AI is projected to have a limited impact on %[1]s. Analysis of %[2]d core tasks finds %[3]d%% with high automation potential, " +
			"%[4]d%% that AI co-pilots can augment, and %[5]d%% that remain primarily human-driven. " +
			"The core human skills of this role (interpersonal judgment, ethical reasoning, physical presence) keep it resistant to displacement; " +
			"AI is best treated as an efficiency multiplier.",
		outlook: "Gradual adoption of AI support tools over 3-7 years. The fundamentally human nature of this role provides strong resilience. " +
			"AI will mainly assist with administrative and analytical sub-tasks, freeing time for the highest-value activities.",
	},
	BandModerate: {
		label: "Moderate",
		color: "#3B82F6",
		summary: "AI is projected to have a moderate impact on %[1]s. Analysis of %[2]d core tasks finds %[3]d%% with high automation potential, " +
			"%[4]d%% that AI co-pilots can augment, and %[5]d%% that remain primarily human-driven. " +
			"The role will evolve as AI tools mature: adopt co-pilots for analytical and research work while preserving the expertise that defines the occupation.",
		outlook: "Steady evolution over 3-5 years as augmentation tools become mainstream. Early adopters gain a clear productivity edge, " +
			"and AI literacy increasingly separates top performers.",
	},
	BandHigh: {
		label: "High",
		color: "#F59E0B",
		summary: "AI is projected to have a high impact on %[1]s. Analysis of %[2]d core tasks finds %[3]d%% with high automation potential, " +
			"%[4]d%% that AI co-pilots can augment, and %[5]d%% that remain primarily human-driven. " +
			"Professionals should build AI collaboration skills now and prepare for substantial workflow change; organizations should pilot agents on high-automation tasks.",
		outlook: "Significant role transformation expected within 2-4 years. Routine tasks move to phased automation and the role shifts " +
			"toward supervising AI-augmented workflows, making orchestration and validation skills essential.",
	},
}

func (b Band) text() bandText {
	if t, ok := bandTexts[b]; ok {
		return t
	}
	return bandTexts[BandNoData]
}

// Label is the display name of the band.
func (b Band) Label() string { return b.text().label }

// Color is the hex colour renderers use for the band.
func (b Band) Color() string { return b.text().color }

// Narrative fills the band's summary and outlook templates.
func Narrative(b Band, title string, dist Distribution) (summary, outlook string) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = "this occupation"
	}
	t := b.text()
	if b == BandNoData {
		return fmt.Sprintf(t.summary, title), t.outlook
	}
	summary = fmt.Sprintf(t.summary, title, dist.Total(),
		dist.Percent(Automate), dist.Percent(Augment), dist.Percent(HumanEssential))
	return summary, t.outlook
}
