package impact

import (
	"fmt"
	"strings"
)

// Category is the AI impact class assigned to a task.
type Category int

const (
	Automate Category = iota
	Augment
	HumanEssential
)

// Categories lists every category in declaration order.
var Categories = [...]Category{Automate, Augment, HumanEssential}

func (c Category) String() string {
	switch c {
	case Automate:
		return "automate"
	case Augment:
		return "augment"
	case HumanEssential:
		return "human"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// Label is the human readable name used by renderers.
func (c Category) Label() string {
	switch c {
	case Automate:
		return "Automate"
	case Augment:
		return "Augment"
	case HumanEssential:
		return "Human-Essential"
	default:
		return c.String()
	}
}

func (c Category) Valid() bool {
	return c >= Automate && c <= HumanEssential
}

// tieRank orders categories when their adjusted scores are equal. Higher wins:
// human-essential beats augment, augment beats automate.
func (c Category) tieRank() int {
	switch c {
	case HumanEssential:
		return 2
	case Augment:
		return 1
	default:
		return 0
	}
}

// ParseCategory accepts the String() form plus a few aliases used in config files.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "automate", "automation":
		return Automate, nil
	case "augment", "augmentation":
		return Augment, nil
	case "human", "human-essential", "human_essential", "humanessential":
		return HumanEssential, nil
	}
	return 0, fmt.Errorf("unknown category %q", s)
}

func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid category %d", int(c))
	}
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(b []byte) error {
	parsed, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// scored pairs a category with its bias-adjusted score.
type scored struct {
	category Category
	score    float64
}

// compareScored is a total order over scored candidates: higher score first,
// then higher tie rank. It returns >0 when a beats b.
func compareScored(a, b scored) int {
	switch {
	case a.score > b.score:
		return 1
	case a.score < b.score:
		return -1
	}
	return a.category.tieRank() - b.category.tieRank()
}

// decide returns the winning category for adjusted scores indexed by Category.
func decide(adjusted [len(Categories)]float64) Category {
	best := scored{category: Categories[0], score: adjusted[0]}
	for _, c := range Categories[1:] {
		candidate := scored{category: c, score: adjusted[c]}
		if compareScored(candidate, best) > 0 {
			best = candidate
		}
	}
	return best.category
}
