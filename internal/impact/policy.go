package impact

import (
	"fmt"
	"math"
)

// Policy holds the tunable constants of the analysis. The zero value is not
// usable; start from DefaultPolicy and override individual fields.
type Policy struct {
	// HumanBias multiplies the human-essential score before categories are
	// compared, so the classifier does not over-claim automation.
	HumanBias float64 `yaml:"human_bias" toml:"human_bias" json:"human_bias"`

	AutomateWeight float64 `yaml:"automate_weight" toml:"automate_weight" json:"automate_weight"`
	AugmentWeight  float64 `yaml:"augment_weight" toml:"augment_weight" json:"augment_weight"`
	HumanWeight    float64 `yaml:"human_weight" toml:"human_weight" json:"human_weight"`

	// Score bands: low is < LowBelow, high is > HighAbove, moderate in between.
	LowBelow  float64 `yaml:"low_below" toml:"low_below" json:"low_below"`
	HighAbove float64 `yaml:"high_above" toml:"high_above" json:"high_above"`

	MaxAgents       int     `yaml:"max_agents" toml:"max_agents" json:"max_agents"`
	AgentSkillBonus float64 `yaml:"agent_skill_bonus" toml:"agent_skill_bonus" json:"agent_skill_bonus"`

	// Skill priority tiers: score >= SkillHighAt is high, >= SkillMediumAt is
	// medium, anything else above zero is low.
	SkillHighAt   float64 `yaml:"skill_high_at" toml:"skill_high_at" json:"skill_high_at"`
	SkillMediumAt float64 `yaml:"skill_medium_at" toml:"skill_medium_at" json:"skill_medium_at"`

	// TopSkills is how many of the occupation's highest rated skills are
	// compared against the AI-era skill catalog.
	TopSkills int `yaml:"top_skills" toml:"top_skills" json:"top_skills"`
}

const (
	DefaultHumanBias = 1.1
	DefaultLowBelow  = 30
	DefaultHighAbove = 60
	DefaultMaxAgents = 8
)

func DefaultPolicy() Policy {
	return Policy{
		HumanBias:       DefaultHumanBias,
		AutomateWeight:  1.0,
		AugmentWeight:   0.5,
		HumanWeight:     0.0,
		LowBelow:        DefaultLowBelow,
		HighAbove:       DefaultHighAbove,
		MaxAgents:       DefaultMaxAgents,
		AgentSkillBonus: 15,
		SkillHighAt:     0.7,
		SkillMediumAt:   0.4,
		TopSkills:       10,
	}
}

// Weight returns the impact weight of c.
func (p Policy) Weight(c Category) float64 {
	switch c {
	case Automate:
		return p.AutomateWeight
	case Augment:
		return p.AugmentWeight
	default:
		return p.HumanWeight
	}
}

func (p Policy) Validate() error {
	finite := map[string]float64{
		"human_bias":        p.HumanBias,
		"automate_weight":   p.AutomateWeight,
		"augment_weight":    p.AugmentWeight,
		"human_weight":      p.HumanWeight,
		"low_below":         p.LowBelow,
		"high_above":        p.HighAbove,
		"agent_skill_bonus": p.AgentSkillBonus,
		"skill_high_at":     p.SkillHighAt,
		"skill_medium_at":   p.SkillMediumAt,
	}
	for name, v := range finite {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("policy %s must be finite, got %v", name, v)
		}
	}
	if p.HumanBias < 1 {
		return fmt.Errorf("policy human_bias must be >= 1, got %v", p.HumanBias)
	}
	if p.HumanWeight < 0 || p.HumanWeight > p.AugmentWeight || p.AugmentWeight > p.AutomateWeight || p.AutomateWeight > 1 {
		return fmt.Errorf("policy weights must satisfy 0 <= human <= augment <= automate <= 1, got %v/%v/%v",
			p.HumanWeight, p.AugmentWeight, p.AutomateWeight)
	}
	if p.LowBelow < 0 || p.LowBelow > p.HighAbove || p.HighAbove > 100 {
		return fmt.Errorf("policy bands must satisfy 0 <= low_below <= high_above <= 100, got %v/%v", p.LowBelow, p.HighAbove)
	}
	if p.MaxAgents < 1 {
		return fmt.Errorf("policy max_agents must be >= 1, got %d", p.MaxAgents)
	}
	if p.AgentSkillBonus < 0 {
		return fmt.Errorf("policy agent_skill_bonus must be >= 0, got %v", p.AgentSkillBonus)
	}
	if p.SkillMediumAt <= 0 || p.SkillMediumAt > p.SkillHighAt {
		return fmt.Errorf("policy skill tiers must satisfy 0 < skill_medium_at <= skill_high_at, got %v/%v", p.SkillMediumAt, p.SkillHighAt)
	}
	if p.TopSkills < 0 {
		return fmt.Errorf("policy top_skills must be >= 0, got %d", p.TopSkills)
	}
	return nil
}
