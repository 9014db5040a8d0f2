package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"sort"
	"strings"
	"time"

	"onetexplorer/internal/domain"
	"onetexplorer/internal/impact"

	"github.com/dustin/go-humanize"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var funcs = template.FuncMap{
	"pct":   func(v float64) string { return fmt.Sprintf("%.0f", v) },
	"comma": func(v int) string { return humanize.Comma(int64(v)) },
	"join":  strings.Join,
}

var dashboardTemplate = template.Must(
	template.New("dashboard.html.tmpl").Funcs(funcs).ParseFS(templateFS, "templates/dashboard.html.tmpl"),
)

const (
	topElements = 10
	topAreas    = 10
)

var categoryColors = map[impact.Category]string{
	impact.Automate:       "#EF4444",
	impact.Augment:        "#3B82F6",
	impact.HumanEssential: "#10B981",
}

// CategoryColor is the badge colour for a task category.
func CategoryColor(c impact.Category) string {
	if color, ok := categoryColors[c]; ok {
		return color
	}
	return "#64748B"
}

type distributionRow struct {
	Label   string
	Color   string
	Count   int
	Percent int
}

type taskRow struct {
	Description   string
	Rationale     string
	Importance    float64
	Label         string
	Color         string
	Confidence100 float64
}

type profileSection struct {
	Heading  string
	Elements []domain.Element
}

type dashboardView struct {
	Code            string
	Title           string
	Description     string
	IsBright        bool
	BrightOutlook   []string
	SampleTitles    []string
	JobZone         domain.JobZone
	Education       []domain.EducationLevel
	Technologies    []domain.Technology
	Industries      []domain.IndustryEmployment
	EmploymentTotal int
	TopStates       []domain.StateEmployment
	TopSectors      []domain.SectorEmployment
	Score           int
	BandLabel       string
	BandColor       string
	Distribution    []distributionRow
	Tasks           []taskRow
	Profiles        []profileSection
	Agents          []impact.AgentRecommendation
	Skills          []impact.SkillRecommendation
	Summary         string
	Outlook         string
	ReviewNotes     []domain.ReviewNote
	Warnings        []string
	GeneratedAt     string
}

func topByImportance(els []domain.Element, n int) []domain.Element {
	out := append([]domain.Element(nil), els...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Importance > out[j].Importance })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func newDashboardView(rep domain.Report) dashboardView {
	occ := rep.Occupation
	res := rep.Analysis
	v := dashboardView{
		Code:            occ.Code(),
		Title:           occ.Title(),
		Description:     occ.Summary.Description,
		IsBright:        occ.Summary.IsBrightOutlook || len(occ.Summary.BrightOutlook) > 0,
		BrightOutlook:   occ.Summary.BrightOutlook,
		SampleTitles:    occ.Summary.SampleTitles,
		JobZone:         occ.JobZone,
		Education:       occ.Education,
		Technologies:    occ.Technologies,
		Industries:      occ.Industries,
		EmploymentTotal: occ.Employment.Total(),
		Score:           res.RoundedScore(),
		BandLabel:       res.BandLabel,
		BandColor:       res.BandColor,
		Agents:          res.Agents,
		Skills:          res.Skills,
		Summary:         res.Summary,
		Outlook:         res.Outlook,
		ReviewNotes:     rep.ReviewNotes,
		Warnings:        rep.Warnings,
		GeneratedAt:     rep.GeneratedAt.Format(time.RFC1123),
	}
	if v.Title == "" {
		v.Title = v.Code
	}

	for _, c := range impact.Categories {
		v.Distribution = append(v.Distribution, distributionRow{
			Label:   c.Label(),
			Color:   CategoryColor(c),
			Count:   res.Distribution.Count(c),
			Percent: res.Distribution.Percent(c),
		})
	}
	for _, t := range res.Tasks {
		v.Tasks = append(v.Tasks, taskRow{
			Description:   t.Task.Description,
			Rationale:     t.Rationale,
			Importance:    t.Task.Importance,
			Label:         t.Category.Label(),
			Color:         CategoryColor(t.Category),
			Confidence100: t.Confidence * 100,
		})
	}
	v.Profiles = []profileSection{
		{Heading: "Skills", Elements: topByImportance(occ.Skills, topElements)},
		{Heading: "Knowledge", Elements: topByImportance(occ.Knowledge, topElements)},
		{Heading: "Abilities", Elements: topByImportance(occ.Abilities, topElements)},
	}

	v.TopStates = append([]domain.StateEmployment(nil), occ.Employment.ByState...)
	sort.SliceStable(v.TopStates, func(i, j int) bool { return v.TopStates[i].Employment > v.TopStates[j].Employment })
	if len(v.TopStates) > topAreas {
		v.TopStates = v.TopStates[:topAreas]
	}
	v.TopSectors = append([]domain.SectorEmployment(nil), occ.Employment.ByIndustry...)
	sort.SliceStable(v.TopSectors, func(i, j int) bool { return v.TopSectors[i].Employment > v.TopSectors[j].Employment })
	if len(v.TopSectors) > topAreas {
		v.TopSectors = v.TopSectors[:topAreas]
	}
	return v
}

// RenderHTML writes the self-contained dashboard page.
func RenderHTML(w io.Writer, rep domain.Report) error {
	if err := dashboardTemplate.Execute(w, newDashboardView(rep)); err != nil {
		return fmt.Errorf("render dashboard: %w", err)
	}
	return nil
}
