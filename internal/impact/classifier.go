package impact

import "strings"

// Scores are the per-category pattern sums for one description.
type Scores struct {
	Automate float64 `json:"automate"`
	Augment  float64 `json:"augment"`
	Human    float64 `json:"human"`
	// HumanAdjusted is Human after the policy bias is applied.
	HumanAdjusted float64 `json:"human_adjusted"`
}

func (s Scores) adjusted() [len(Categories)]float64 {
	return [len(Categories)]float64{
		Automate:       s.Automate,
		Augment:        s.Augment,
		HumanEssential: s.HumanAdjusted,
	}
}

// Classification is the verdict for a single description.
type Classification struct {
	Category   Category `json:"category"`
	Confidence float64  `json:"confidence"`
	Scores     Scores   `json:"scores"`
	Rationale  string   `json:"rationale"`
}

var rationales = [len(Categories)]string{
	Automate:       "Involves routine, data-driven, or repetitive processes well-suited to AI automation.",
	Augment:        "Complex analytical or creative work where AI serves as a co-pilot enhancing speed and quality.",
	HumanEssential: "Requires interpersonal judgment, physical presence, ethical reasoning, or leadership that remains human-essential.",
}

const noSignalRationale = "No automation or augmentation signal found; treated as human-essential."

// Classifier assigns categories using a fixed pattern set and policy. It holds
// no mutable state and is safe for concurrent use.
type Classifier struct {
	patterns PatternSet
	policy   Policy
}

func NewClassifier(patterns PatternSet, policy Policy) *Classifier {
	return &Classifier{patterns: patterns, policy: policy}
}

var defaultPatterns = mustCompile(DefaultPatternSpecs())

func mustCompile(specs []PatternSpec) PatternSet {
	set, err := CompilePatterns(specs)
	if err != nil {
		panic("impact: built-in patterns: " + err.Error())
	}
	return set
}

// DefaultPatterns returns the compiled built-in pattern set.
func DefaultPatterns() PatternSet {
	return defaultPatterns
}

// NewDefaultClassifier uses the built-in patterns and DefaultPolicy.
func NewDefaultClassifier() *Classifier {
	return NewClassifier(defaultPatterns, DefaultPolicy())
}

func (c *Classifier) Policy() Policy {
	return c.policy
}

func (c *Classifier) Patterns() PatternSet {
	return c.patterns
}

// Classify never fails: text without any signal, including the empty string,
// is human-essential with zero confidence.
func (c *Classifier) Classify(text string) Classification {
	text = strings.TrimSpace(text)
	scores := Scores{
		Automate: c.patterns.score(Automate, text),
		Augment:  c.patterns.score(Augment, text),
		Human:    c.patterns.score(HumanEssential, text),
	}
	scores.HumanAdjusted = scores.Human * c.policy.HumanBias

	if scores.Automate == 0 && scores.Augment == 0 && scores.Human == 0 {
		return Classification{
			Category:  HumanEssential,
			Scores:    scores,
			Rationale: noSignalRationale,
		}
	}

	adjusted := scores.adjusted()
	winner := decide(adjusted)
	var total float64
	for _, v := range adjusted {
		total += v
	}
	confidence := 0.0
	if total > 0 {
		confidence = adjusted[winner] / total
	}
	return Classification{
		Category:   winner,
		Confidence: confidence,
		Scores:     scores,
		Rationale:  rationales[winner],
	}
}

// TaskClassification is a task together with its verdict.
type TaskClassification struct {
	Task Task `json:"task"`
	Classification
}

func (c *Classifier) ClassifyTask(t Task) TaskClassification {
	return TaskClassification{Task: t, Classification: c.Classify(t.Description)}
}
