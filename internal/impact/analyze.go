// Package impact scores how exposed an occupation's tasks are to AI.
//
// Each task description is matched against weighted keyword patterns and
// placed in exactly one Category. Task importances weight the categories into
// a 0-100 score, and the task mix plus the occupation's skill profile rank the
// agent and AI-era skill catalogs. Everything here is pure: no I/O, no
// goroutines and no package state that changes after initialization.
package impact

import "fmt"

// Input is everything the analysis needs about one occupation.
type Input struct {
	Title     string
	Tasks     []Task
	Skills    []Element
	Knowledge []Element
	Abilities []Element
}

// Result is the outcome of one analysis. Renderers depend on the JSON names.
type Result struct {
	OverallScore float64               `json:"overall_score"`
	Band         Band                  `json:"band"`
	BandLabel    string                `json:"band_label"`
	BandColor    string                `json:"band_color"`
	Distribution Distribution          `json:"distribution"`
	Tasks        []TaskClassification  `json:"tasks"`
	Agents       []AgentRecommendation `json:"agents"`
	Skills       []SkillRecommendation `json:"skills"`
	Summary      string                `json:"summary"`
	Outlook      string                `json:"outlook"`
}

// RoundedScore is OverallScore rounded to the nearest integer.
func (r Result) RoundedScore() int {
	return int(r.OverallScore + 0.5)
}

// Analyzer bundles a classifier with the recommendation catalogs.
type Analyzer struct {
	classifier *Classifier
	agents     []Agent
	skills     []AISkill
}

func NewAnalyzer(c *Classifier) *Analyzer {
	if c == nil {
		c = NewDefaultClassifier()
	}
	return &Analyzer{classifier: c, agents: AgentCatalog(), skills: SkillCatalog()}
}

func (a *Analyzer) Classifier() *Classifier {
	return a.classifier
}

// Analyze classifies every task and derives the score, recommendations and
// narrative. It only fails on malformed task records.
func (a *Analyzer) Analyze(in Input) (Result, error) {
	policy := a.classifier.policy
	classified := make([]TaskClassification, 0, len(in.Tasks))
	scored := false
	for i, t := range in.Tasks {
		if err := t.Validate(); err != nil {
			if t.ID != "" {
				return Result{}, fmt.Errorf("task %d (%s): %w", i, t.ID, err)
			}
			return Result{}, fmt.Errorf("task %d: %w", i, err)
		}
		if t.Importance > 0 {
			scored = true
		}
		classified = append(classified, a.classifier.ClassifyTask(t))
	}

	dist := Distribute(classified)
	score := Aggregate(classified, policy)
	band := policy.BandFor(score, scored)
	summary, outlook := Narrative(band, in.Title, dist)

	profile := make([]Element, 0, len(in.Skills)+len(in.Knowledge))
	profile = append(profile, in.Skills...)
	profile = append(profile, in.Knowledge...)

	agents := RecommendAgents(a.agents, classified, profile, policy)
	if agents == nil {
		agents = []AgentRecommendation{}
	}
	skills := RecommendSkills(a.skills, classified, in.Skills, policy)
	if skills == nil {
		skills = []SkillRecommendation{}
	}

	return Result{
		OverallScore: score,
		Band:         band,
		BandLabel:    band.Label(),
		BandColor:    band.Color(),
		Distribution: dist,
		Tasks:        classified,
		Agents:       agents,
		Skills:       skills,
		Summary:      summary,
		Outlook:      outlook,
	}, nil
}

// Analyze runs the default analyzer.
func Analyze(in Input) (Result, error) {
	return NewAnalyzer(nil).Analyze(in)
}
