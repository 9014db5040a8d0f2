package impact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyNoSignalDefaultsToHuman(t *testing.T) {
	c := NewDefaultClassifier()
	for _, text := range []string{"", "   ", "Zzz qqq xyzzy", "Provide"} {
		got := c.Classify(text)
		assert.Equal(t, HumanEssential, got.Category, "text=%q", text)
		assert.Zero(t, got.Confidence, "text=%q", text)
		assert.Equal(t, noSignalRationale, got.Rationale)
	}
}

func TestClassifyScenarios(t *testing.T) {
	c := NewDefaultClassifier()
	tests := []struct {
		name string
		text string
		want Category
	}{
		{"records work is automatable", "File and organize digital records using software", Automate},
		{"counselling is human", "Provide emotional support and counsel patients", HumanEssential},
		{"analysis is augmented", "Analyze market research and forecast demand", Augment},
		{"automate and augment tie prefers augment", "Schedule and analyze", Augment},
		{"bias tips single human hit", "Track shipments and mentor", HumanEssential},
		{"case insensitive", "FILE RECORDS", Automate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.text)
			assert.Equal(t, tt.want, got.Category)
			assert.Greater(t, got.Confidence, 0.0)
			assert.LessOrEqual(t, got.Confidence, 1.0)
		})
	}
}

func TestClassifyRecordsScoresAutomate(t *testing.T) {
	got := NewDefaultClassifier().Classify("File and organize digital records using software")
	assert.Equal(t, 3.5, got.Scores.Automate)
	assert.Zero(t, got.Scores.Augment)
	assert.Zero(t, got.Scores.Human)
	assert.InDelta(t, 1.0, got.Confidence, 1e-9)
}

func TestClassifyHumanTieWithoutBias(t *testing.T) {
	p := DefaultPolicy()
	p.HumanBias = 1
	c := NewClassifier(DefaultPatterns(), p)

	got := c.Classify("Schedule and negotiate")
	require.Equal(t, got.Scores.Automate, got.Scores.HumanAdjusted)
	assert.Equal(t, HumanEssential, got.Category)
	assert.InDelta(t, 0.5, got.Confidence, 1e-9)
}

func TestClassifyAppliesHumanBias(t *testing.T) {
	got := NewDefaultClassifier().Classify("Track shipments and mentor")
	assert.Equal(t, 1.0, got.Scores.Human)
	assert.InDelta(t, DefaultHumanBias, got.Scores.HumanAdjusted, 1e-9)
}

func TestDecideTieBreak(t *testing.T) {
	tests := []struct {
		name     string
		adjusted [3]float64
		want     Category
	}{
		{"automate wins outright", [3]float64{2, 1, 1}, Automate},
		{"augment wins outright", [3]float64{1, 2, 1}, Augment},
		{"human wins outright", [3]float64{1, 1, 2}, HumanEssential},
		{"automate equals augment", [3]float64{1, 1, 0}, Augment},
		{"automate equals human", [3]float64{1, 0, 1}, HumanEssential},
		{"augment equals human", [3]float64{0, 1, 1}, HumanEssential},
		{"three way tie", [3]float64{1, 1, 1}, HumanEssential},
		{"all zero", [3]float64{0, 0, 0}, HumanEssential},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decide(tt.adjusted))
		})
	}
}

func TestCompareScoredIsAntisymmetric(t *testing.T) {
	for _, a := range Categories {
		for _, b := range Categories {
			x := scored{category: a, score: 1}
			y := scored{category: b, score: 1}
			assert.Equal(t, -compareScored(y, x), compareScored(x, y), "%s vs %s", a, b)
		}
	}
}

func TestCompilePatternsErrors(t *testing.T) {
	tests := []struct {
		name string
		spec PatternSpec
	}{
		{"bad regex", PatternSpec{Category: Automate, Expr: `\b(unclosed`}},
		{"empty expression", PatternSpec{Category: Augment, Expr: "  "}},
		{"invalid category", PatternSpec{Category: Category(9), Expr: `\bfoo`}},
		{"negative weight", PatternSpec{Category: Automate, Expr: `\bfoo`, Weight: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CompilePatterns([]PatternSpec{tt.spec})
			assert.Error(t, err)
		})
	}
}

func TestCompilePatternsDefaultsWeight(t *testing.T) {
	set, err := CompilePatterns([]PatternSpec{{Category: Augment, Expr: PhrasePattern("Prompt design")}})
	require.NoError(t, err)
	require.Equal(t, 1, set.Len(Augment))

	c := NewClassifier(set, DefaultPolicy())
	got := c.Classify("Own prompt designs for the team")
	assert.Equal(t, Augment, got.Category)
	assert.Equal(t, 1.0, got.Scores.Augment)
	assert.Equal(t, 1.0, set.score(Augment, "prompt designs"))
}

func TestDefaultPatternSpecsReturnsCopy(t *testing.T) {
	a := DefaultPatternSpecs()
	a[0].Expr = "mutated"
	b := DefaultPatternSpecs()
	assert.NotEqual(t, "mutated", b[0].Expr)
	for _, c := range Categories {
		assert.Positive(t, DefaultPatterns().Len(c), c.String())
	}
}

func TestParseCategory(t *testing.T) {
	for _, c := range Categories {
		got, err := ParseCategory(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	got, err := ParseCategory("Human-Essential")
	require.NoError(t, err)
	assert.Equal(t, HumanEssential, got)

	_, err = ParseCategory("robot")
	assert.Error(t, err)

	var c Category
	require.NoError(t, c.UnmarshalText([]byte("augment")))
	assert.Equal(t, Augment, c)
	_, err = Category(7).MarshalText()
	assert.Error(t, err)
}
