package report

import (
	"fmt"
	"io"
	"strings"

	"onetexplorer/internal/domain"
	"onetexplorer/internal/impact"

	"github.com/dustin/go-humanize"
)

const markdownTopTasks = 10

// RenderMarkdown writes a short plain-text summary suitable for a terminal or
// a chat message.
func RenderMarkdown(w io.Writer, rep domain.Report) error {
	var b strings.Builder
	occ := rep.Occupation
	res := rep.Analysis

	fmt.Fprintf(&b, "# %s (%s)\n\n", occ.Title(), occ.Code())
	if occ.Summary.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", occ.Summary.Description)
	}
	if occ.Summary.IsBrightOutlook {
		b.WriteString("**Bright Outlook**")
		if len(occ.Summary.BrightOutlook) > 0 {
			fmt.Fprintf(&b, ": %s", strings.Join(occ.Summary.BrightOutlook, ", "))
		}
		b.WriteString("\n\n")
	}
	if total := occ.Employment.Total(); total > 0 {
		fmt.Fprintf(&b, "Employment: %s\n\n", humanize.Comma(int64(total)))
	}

	fmt.Fprintf(&b, "## AI impact: %d (%s)\n\n", res.RoundedScore(), res.BandLabel)
	for _, c := range impact.Categories {
		fmt.Fprintf(&b, "- %s: %d tasks (%d%%)\n", c.Label(), res.Distribution.Count(c), res.Distribution.Percent(c))
	}
	fmt.Fprintf(&b, "\n%s\n\n%s\n", res.Summary, res.Outlook)

	if len(res.Tasks) > 0 {
		b.WriteString("\n## Tasks\n\n")
		for i, t := range res.Tasks {
			if i == markdownTopTasks {
				fmt.Fprintf(&b, "- ... %d more\n", len(res.Tasks)-markdownTopTasks)
				break
			}
			fmt.Fprintf(&b, "- [%s] %s\n", t.Category, t.Task.Description)
		}
	}
	if len(res.Agents) > 0 {
		b.WriteString("\n## Recommended agents\n\n")
		for _, a := range res.Agents {
			fmt.Fprintf(&b, "- %s (relevance %.0f, %d tasks)\n", a.Name, a.Relevance, a.TasksAddressed)
		}
	}
	if len(res.Skills) > 0 {
		b.WriteString("\n## AI-era skills\n\n")
		for _, s := range res.Skills {
			fmt.Fprintf(&b, "- %s: %s\n", s.Name, s.Priority)
		}
	}
	if len(rep.ReviewNotes) > 0 {
		b.WriteString("\n## Review notes\n\n")
		for _, n := range rep.ReviewNotes {
			fmt.Fprintf(&b, "- %s: %s -> %s (%s)\n", n.Task, n.Category, n.Suggested, n.Reason)
		}
	}
	if len(rep.Warnings) > 0 {
		b.WriteString("\n## Warnings\n\n")
		for _, msg := range rep.Warnings {
			fmt.Fprintf(&b, "- %s\n", msg)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
