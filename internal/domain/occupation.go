// Package domain holds the occupation records shared by the API clients,
// the analysis pipeline, storage and the renderers.
package domain

import (
	"strings"

	"onetexplorer/internal/impact"
)

// ImportantThreshold is the importance rating (0-100) from which a task or
// element counts as important.
const ImportantThreshold = 50

type OccupationRef struct {
	Code  string `json:"code"`
	Title string `json:"title"`
}

type Summary struct {
	Code            string   `json:"code"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	BrightOutlook   []string `json:"bright_outlook"`
	IsBrightOutlook bool     `json:"is_bright_outlook"`
	SampleTitles    []string `json:"sample_titles"`
}

type Task struct {
	ID         string  `json:"id,omitempty"`
	Statement  string  `json:"statement"`
	Category   string  `json:"category"`
	Importance float64 `json:"importance"`
}

func (t Task) Important() bool {
	return t.Importance >= ImportantThreshold
}

type Element struct {
	ID          string  `json:"id,omitempty"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Importance  float64 `json:"importance"`
}

func (e Element) Important() bool {
	return e.Importance >= ImportantThreshold
}

// ElementKind selects one of the O*NET element lists.
type ElementKind string

const (
	Skills    ElementKind = "skills"
	Knowledge ElementKind = "knowledge"
	Abilities ElementKind = "abilities"
)

var ElementKinds = []ElementKind{Skills, Knowledge, Abilities}

func (k ElementKind) Valid() bool {
	switch k {
	case Skills, Knowledge, Abilities:
		return true
	}
	return false
}

type EducationLevel struct {
	Title      string  `json:"title"`
	Percentage float64 `json:"percentage_of_respondents"`
}

type JobZone struct {
	Code       int    `json:"code"`
	Title      string `json:"title"`
	Education  string `json:"education"`
	Experience string `json:"experience"`
	Training   string `json:"training"`
}

type Technology struct {
	Title         string  `json:"title"`
	HotTechnology bool    `json:"hot_technology"`
	InDemand      bool    `json:"in_demand"`
	Percentage    float64 `json:"percentage"`
}

type IndustryEmployment struct {
	IndustryCode              string  `json:"industry_code"`
	Industry                  string  `json:"industry"`
	PercentEmployed           float64 `json:"percent_employed"`
	ProjectedGrowth           string  `json:"projected_growth"`
	ProjectedOpenings         int     `json:"projected_openings"`
	EstimatedIndustryOpenings int     `json:"estimated_industry_openings"`
	BrightOutlook             bool    `json:"bright_outlook"`
}

// EstimateOpenings apportions the projected openings by the industry's share
// of employment.
func EstimateOpenings(projected int, percent float64) int {
	if projected <= 0 || percent <= 0 {
		return 0
	}
	return int(float64(projected) * percent / 100)
}

type StateEmployment struct {
	State      string `json:"state"`
	FIPS       string `json:"fips"`
	Employment int    `json:"employment"`
}

type SectorEmployment struct {
	IndustryCode string `json:"industry_code"`
	Industry     string `json:"industry"`
	Employment   int    `json:"employment"`
}

// Employment is the BLS OEWS view of an occupation. Zero values mean the
// data was unavailable.
type Employment struct {
	National   int                `json:"national"`
	ByState    []StateEmployment  `json:"by_state"`
	ByIndustry []SectorEmployment `json:"by_industry"`
}

// Total is the national figure, or the sum of the state figures when the
// national series was unavailable.
func (e Employment) Total() int {
	if e.National > 0 {
		return e.National
	}
	total := 0
	for _, s := range e.ByState {
		total += s.Employment
	}
	return total
}

// Occupation is everything fetched for one occupation code.
type Occupation struct {
	Summary      Summary              `json:"summary"`
	Tasks        []Task               `json:"tasks"`
	Skills       []Element            `json:"skills"`
	Knowledge    []Element            `json:"knowledge"`
	Abilities    []Element            `json:"abilities"`
	Education    []EducationLevel     `json:"education"`
	JobZone      JobZone              `json:"job_zone"`
	Technologies []Technology         `json:"technologies"`
	Industries   []IndustryEmployment `json:"industries"`
	Employment   Employment           `json:"employment"`
}

func (o Occupation) Code() string  { return o.Summary.Code }
func (o Occupation) Title() string { return o.Summary.Title }

// ImpactInput converts the fetched records into analysis input.
func (o Occupation) ImpactInput() impact.Input {
	in := impact.Input{Title: strings.TrimSpace(o.Summary.Title)}
	for _, t := range o.Tasks {
		in.Tasks = append(in.Tasks, impact.Task{ID: t.ID, Description: t.Statement, Importance: t.Importance})
	}
	in.Skills = impactElements(o.Skills)
	in.Knowledge = impactElements(o.Knowledge)
	in.Abilities = impactElements(o.Abilities)
	return in
}

func impactElements(els []Element) []impact.Element {
	if len(els) == 0 {
		return nil
	}
	out := make([]impact.Element, 0, len(els))
	for _, e := range els {
		out = append(out, impact.Element{Name: e.Name, Description: e.Description, Importance: e.Importance})
	}
	return out
}
