package impact

import (
	"fmt"
	"regexp"
	"strings"
)

// PatternSpec is the uncompiled form of a keyword pattern. Expr is a RE2
// expression matched case-insensitively against the task description.
type PatternSpec struct {
	Category Category `yaml:"category" toml:"category" json:"category"`
	Expr     string   `yaml:"pattern" toml:"pattern" json:"pattern"`
	Weight   float64  `yaml:"weight" toml:"weight" json:"weight"`
}

type pattern struct {
	re     *regexp.Regexp
	weight float64
}

// PatternSet is a compiled, read-only set of weighted patterns per category.
type PatternSet struct {
	byCategory [len(Categories)][]pattern
}

// Len reports how many patterns belong to c.
func (s PatternSet) Len(c Category) int {
	if !c.Valid() {
		return 0
	}
	return len(s.byCategory[c])
}

// score sums the weights of the patterns of c that match text.
func (s PatternSet) score(c Category, text string) float64 {
	var total float64
	for _, p := range s.byCategory[c] {
		if p.re.MatchString(text) {
			total += p.weight
		}
	}
	return total
}

// CompilePatterns builds a PatternSet. A zero weight defaults to 1.
func CompilePatterns(specs []PatternSpec) (PatternSet, error) {
	var set PatternSet
	for i, spec := range specs {
		if !spec.Category.Valid() {
			return PatternSet{}, fmt.Errorf("pattern %d: invalid category %d", i, int(spec.Category))
		}
		expr := strings.TrimSpace(spec.Expr)
		if expr == "" {
			return PatternSet{}, fmt.Errorf("pattern %d: empty expression", i)
		}
		if spec.Weight < 0 {
			return PatternSet{}, fmt.Errorf("pattern %d (%s): negative weight %v", i, expr, spec.Weight)
		}
		re, err := regexp.Compile("(?i)" + expr)
		if err != nil {
			return PatternSet{}, fmt.Errorf("pattern %d (%s): %w", i, expr, err)
		}
		weight := spec.Weight
		if weight == 0 {
			weight = 1
		}
		set.byCategory[spec.Category] = append(set.byCategory[spec.Category], pattern{re: re, weight: weight})
	}
	return set, nil
}

// PhrasePattern turns a literal phrase into a word-prefix expression, the same
// shape as the built-in stems ("data entry" -> `\bdata entry\w*`).
func PhrasePattern(phrase string) string {
	return `\b` + regexp.QuoteMeta(strings.ToLower(strings.TrimSpace(phrase))) + `\w*`
}

// DefaultPatternSpecs returns a fresh copy of the built-in keyword table.
// Single stems weigh 1; multi-word phrases are more specific and weigh 1.5;
// generic tool mentions weigh 0.5.
func DefaultPatternSpecs() []PatternSpec {
	var specs []PatternSpec
	add := func(c Category, weight float64, exprs ...string) {
		for _, e := range exprs {
			specs = append(specs, PatternSpec{Category: c, Expr: e, Weight: weight})
		}
	}

	// Routine, data-driven, repetitive work.
	add(Automate, 1,
		`\bschedul\w*`, `\btrack\w*`, `\bmonitor\w*`, `\blog\w*\b`, `\brecord\w*`,
		`\bcompil\w*`, `\bfile\w*`, `\bformat\w*`, `\bsort\w*`, `\borganiz\w*`,
		`\btranscri\w*`, `\bcalculat\w*`, `\btabulat\w*`, `\binventor\w*`,
		`\binvoic\w*`, `\bbookkeep\w*`, `\bpayroll`, `\brout\w*`, `\barchiv\w*`,
		`\bcatalog\w*`, `\bindex\w*`,
	)
	add(Automate, 1.5,
		`\bdata.?entry`, `\bprocess\w* (claim|order|form|request)`, `\bgenerat\w* report`,
		`\bupdat\w* (record|database|system|file|log)`,
		`\bverif\w* (data|record|document|information)`,
		`\bclassif\w* (document|record|data)`,
	)
	add(Automate, 0.5, `\b(software|computer|spreadsheet|database)s?\b`)

	// Complex analysis and creative work where AI is a co-pilot.
	add(Augment, 1,
		`\banalyz\w*`, `\bresearch\w*`, `\bdesign\w*`, `\bdevelop\w*`,
		`\bwrit\w*`, `\bdraft\w*`, `\breview\w*`, `\bevaluat\w*`,
		`\bdiagnos\w*`, `\bforecast\w*`, `\bplan\w*`, `\boptimiz\w*`,
		`\bmodel\w*`, `\btest\w*`, `\bassess\w*`, `\bexamin\w*`,
		`\binterpret\w*`, `\bsynthe\w*`, `\bsummariz\w*`,
		`\binvestigat\w*`, `\bprogram\w*`, `\bcode\w*`, `\baudit\w*`,
		`\bpredicti\w*`, `\bstatistic\w*`, `\bsimulat\w*`,
	)
	add(Augment, 1.5,
		`\bidentif\w* (trend|pattern|issue|problem|risk|opportunit)`,
		`\bcreat\w* (content|design|model|plan|strateg)`,
	)

	// Relational, ethical and physical work.
	add(HumanEssential, 1,
		`\bnegotiat\w*`, `\blead\w*`, `\bmentor\w*`, `\bcounsel\w*`,
		`\bpersuad\w*`, `\bmotivat\w*`, `\bmediat\w*`, `\bempath\w*`,
		`\bemotion\w*`, `\bsupervis\w*`, `\bcoach\w*`, `\bphysical\w*`,
		`\bhand\w*`, `\bconvinc\w*`, `\binspir\w*`, `\bethic\w*`,
		`\bemergenc\w*`, `\bcrisis\w*`, `\bsafety\w*`, `\bprotect\w*`,
	)
	add(HumanEssential, 1.5,
		`\bmanag\w* (team|staff|people|employee|personnel)`,
		`\btrain\w* (staff|employee|personnel|team)`,
		`\bresolv\w* (conflict|dispute)`,
		`\bbuild\w* (relationship|rapport|trust)`,
		`\boperat\w* (machine|equipment|vehicle)`,
		`\bpresent\w* (to|before|at)`,
		`\bdeliver\w* (speech|presentation|lecture)`,
		`\bpatient\w* care`,
	)
	return specs
}
