package impact

import (
	"math"
	"sort"
	"strings"
)

// Priority is the recommendation tier of an AI-era skill.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// AISkill is a catalog entry for a skill professionals need alongside AI.
type AISkill struct {
	Name        string
	Description string
	// Universal skills apply to every occupation.
	Universal bool
	// AutomateAffinity and AugmentAffinity scale with the share of tasks in
	// those categories.
	AutomateAffinity float64
	AugmentAffinity  float64

	triggers      stems
	skillKeywords []string
}

const (
	universalBase     = 0.5
	triggerStep       = 0.15
	triggerCap        = 0.45
	skillOverlapStep  = 0.15
	skillOverlapCap   = 0.3
	skillScoreCeiling = 1.0
)

var skillCatalog = []AISkill{
	{
		Name:            "Prompt Engineering & AI Direction",
		Description:     "Crafting effective instructions for AI systems to produce accurate, relevant outputs. Includes iterative refinement, context-setting, and output validation techniques.",
		Universal:       true,
		AugmentAffinity: 0.3,
	},
	{
		Name:             "AI Output Validation & Critical Review",
		Description:      "Evaluating AI-generated content for accuracy, bias, hallucination, and alignment with professional standards before use in decision-making.",
		Universal:        true,
		AutomateAffinity: 0.2,
		AugmentAffinity:  0.2,
		skillKeywords:    []string{"critical thinking", "judgment"},
	},
	{
		Name:             "Human-AI Workflow Design",
		Description:      "Designing processes that optimally distribute tasks between human professionals and AI agents, maximizing both efficiency and quality.",
		Universal:        true,
		AutomateAffinity: 0.3,
	},
	{
		Name:            "Data Literacy for AI",
		Description:     "Understanding data quality, statistical concepts, and dataset characteristics to effectively leverage AI analytics and interpret machine-generated insights.",
		AugmentAffinity: 0.2,
		triggers:        newStems("analyz", "data", "statistic", "research", "evaluat", "assess", "report", "metric"),
		skillKeywords:   []string{"mathematics", "science", "programming"},
	},
	{
		Name:            "AI-Augmented Decision Making",
		Description:     "Integrating AI-generated analysis and recommendations into professional judgment frameworks while maintaining accountability and ethical standards.",
		AugmentAffinity: 0.3,
		triggers:        newStems("evaluat", "assess", "diagnos", "plan", "strateg", "decision", "recommend", "priorit"),
		skillKeywords:   []string{"judgment and decision", "complex problem solving", "critical thinking"},
	},
	{
		Name:             "Automation & Agent Orchestration",
		Description:      "Selecting, configuring, and chaining AI agents to automate multi-step business processes. Includes monitoring agent performance and handling exceptions.",
		AutomateAffinity: 0.6,
		triggers:         newStems("process", "coordinat", "manag", "workflow", "schedul", "system", "implement"),
		skillKeywords:    []string{"systems analysis", "operations analysis", "coordination"},
	},
	{
		Name:          "AI Ethics & Responsible Use",
		Description:   "Recognizing bias risks, privacy implications, and ethical boundaries when deploying AI in professional contexts. Ensuring equitable and transparent AI use.",
		triggers:      newStems("ethic", "regulat", "compliance", "policy", "patient", "client", "counsel", "legal"),
		skillKeywords: []string{"law and government", "social perceptiveness", "psychology"},
	},
	{
		Name:            "Creative AI Collaboration",
		Description:     "Using generative AI as a creative partner for ideation, prototyping, and content development while preserving originality and professional voice.",
		AugmentAffinity: 0.2,
		triggers:        newStems("design", "creat", "develop", "writ", "innovat", "concept", "prototyp", "content"),
		skillKeywords:   []string{"design", "fine arts", "originality"},
	},
	{
		Name:          "AI-Powered Communication",
		Description:   "Leveraging AI tools for drafting, translating, summarizing, and personalizing communications across channels and audiences at scale.",
		triggers:      newStems("communicat", "present", "writ", "correspond", "report", "client", "stakeholder"),
		skillKeywords: []string{"writing", "speaking", "english language", "communications and media"},
	},
	{
		Name:        "Continuous Learning & AI Adaptation",
		Description: "Staying current with rapidly evolving AI capabilities, evaluating new tools, and continuously updating professional workflows to leverage emerging technology.",
		Universal:   true,
		skillKeywords: []string{
			"active learning", "learning strategies",
		},
	},
}

// SkillCatalog returns a copy of the built-in AI-era skill catalog.
func SkillCatalog() []AISkill {
	return append([]AISkill(nil), skillCatalog...)
}

// SkillRecommendation is a scored catalog skill.
type SkillRecommendation struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	Score       float64  `json:"score"`
}

func (p Policy) tier(score float64) Priority {
	switch {
	case score >= p.SkillHighAt:
		return PriorityHigh
	case score >= p.SkillMediumAt:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// topSkills returns the names of the n highest rated skills, lowercased.
func topSkills(skills []Element, n int) []string {
	sorted := append([]Element(nil), skills...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Importance > sorted[j].Importance })
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	names := make([]string, 0, len(sorted))
	for _, s := range sorted {
		names = append(names, strings.ToLower(s.Name))
	}
	return names
}

func overlap(keywords, names []string) int {
	n := 0
	for _, kw := range keywords {
		for _, name := range names {
			if strings.Contains(name, kw) {
				n++
				break
			}
		}
	}
	return n
}

// RecommendSkills scores the catalog against the task mix and the
// occupation's top skills. The result is deduplicated by name and ordered by
// descending score.
func RecommendSkills(catalog []AISkill, tasks []TaskClassification, skills []Element, p Policy) []SkillRecommendation {
	if len(tasks) == 0 {
		return nil
	}
	var text strings.Builder
	for _, t := range tasks {
		text.WriteString(t.Task.Description)
		text.WriteByte('\n')
	}
	taskText := text.String()
	dist := Distribute(tasks)
	autoShare := dist.Share(Automate)
	augShare := dist.Share(Augment)
	top := topSkills(skills, p.TopSkills)

	seen := make(map[string]bool, len(catalog))
	var out []SkillRecommendation
	for _, s := range catalog {
		key := strings.ToLower(strings.TrimSpace(s.Name))
		if key == "" || seen[key] {
			continue
		}
		score := 0.0
		if s.Universal {
			score += universalBase
		}
		score += math.Min(triggerCap, triggerStep*float64(s.triggers.count(taskText)))
		score += math.Min(skillOverlapCap, skillOverlapStep*float64(overlap(s.skillKeywords, top)))
		score += s.AutomateAffinity*autoShare + s.AugmentAffinity*augShare
		score = math.Min(skillScoreCeiling, score)
		if score <= 0 {
			continue
		}
		seen[key] = true
		score = math.Round(score*100) / 100
		out = append(out, SkillRecommendation{
			Name:        s.Name,
			Description: s.Description,
			Priority:    p.tier(score),
			Score:       score,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}
