package impact

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var broadTasks = []Task{
	{Description: "Analyze data trends", Importance: 4},
	{Description: "Compile records and file invoices", Importance: 3},
	{Description: "Research literature and evaluate studies", Importance: 3},
	{Description: "Write and draft proposals", Importance: 4},
	{Description: "Develop and test software programs", Importance: 5},
	{Description: "Schedule meetings and track deadlines", Importance: 2},
	{Description: "Respond to customer inquiries using a database", Importance: 3},
	{Description: "Audit budgets and review financial compliance", Importance: 4},
	{Description: "Mentor and teach new staff", Importance: 3},
}

func TestAnalyzeEmptyTaskList(t *testing.T) {
	res, err := Analyze(Input{Title: "Astronaut"})
	require.NoError(t, err)

	assert.Zero(t, res.OverallScore)
	assert.Equal(t, BandNoData, res.Band)
	assert.NotNil(t, res.Agents)
	assert.Empty(t, res.Agents)
	assert.Empty(t, res.Skills)
	wantSummary, wantOutlook := Narrative(BandNoData, "Astronaut", Distribution{})
	assert.Equal(t, wantSummary, res.Summary)
	assert.Equal(t, wantOutlook, res.Outlook)

	raw, err := json.Marshal(res)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"agents":[]`)
}

func TestAnalyzeEqualAutomateAndHuman(t *testing.T) {
	res, err := Analyze(Input{
		Title: "Records Clerk",
		Tasks: []Task{
			{ID: "1", Description: "File and organize digital records using software", Importance: 4},
			{ID: "2", Description: "Provide emotional support and counsel patients", Importance: 4},
		},
	})
	require.NoError(t, err)

	assert.InDelta(t, 50.0, res.OverallScore, 1e-9)
	assert.Equal(t, 50, res.RoundedScore())
	assert.Equal(t, BandModerate, res.Band)
	assert.Equal(t, Distribution{Automate: 1, Human: 1}, res.Distribution)
	require.Len(t, res.Tasks, 2)
	assert.Equal(t, Automate, res.Tasks[0].Category)
	assert.Equal(t, HumanEssential, res.Tasks[1].Category)
	assert.Contains(t, res.Summary, "Records Clerk")
	assert.Contains(t, res.Summary, "50% with high automation potential")
}

func TestAnalyzeUnratedTasksAreClassifiedButNotScored(t *testing.T) {
	res, err := Analyze(Input{Tasks: []Task{{Description: "File records"}, {Description: "Counsel clients"}}})
	require.NoError(t, err)
	assert.Zero(t, res.OverallScore)
	assert.Equal(t, BandNoData, res.Band)
	assert.Equal(t, 2, res.Distribution.Total())
}

func TestAnalyzeRejectsInvalidTask(t *testing.T) {
	_, err := Analyze(Input{Tasks: []Task{
		{Description: "File records", Importance: 3},
		{ID: "T-9", Description: "Counsel clients", Importance: math.NaN()},
	}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidTask))
	assert.Contains(t, err.Error(), "task 1 (T-9)")
}

func TestAnalyzeCountsAndBounds(t *testing.T) {
	res, err := Analyze(Input{Title: "Generalist", Tasks: broadTasks})
	require.NoError(t, err)
	assert.Equal(t, len(broadTasks), res.Distribution.Total())
	assert.Len(t, res.Tasks, len(broadTasks))
	assert.GreaterOrEqual(t, res.OverallScore, 0.0)
	assert.LessOrEqual(t, res.OverallScore, 100.0)
	assert.NotEmpty(t, res.Summary)
	assert.NotEmpty(t, res.Outlook)
}

func TestBandFor(t *testing.T) {
	p := DefaultPolicy()
	tests := []struct {
		score  float64
		scored bool
		want   Band
	}{
		{0, false, BandNoData},
		{80, false, BandNoData},
		{0, true, BandLow},
		{29.9, true, BandLow},
		{30, true, BandModerate},
		{60, true, BandModerate},
		{60.1, true, BandHigh},
		{100, true, BandHigh},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, p.BandFor(tt.score, tt.scored), "score=%v scored=%v", tt.score, tt.scored)
	}
}

func TestBandThresholdsAreOverridable(t *testing.T) {
	p := DefaultPolicy()
	p.LowBelow, p.HighAbove = 10, 20
	assert.Equal(t, BandHigh, p.BandFor(25, true))
	assert.Equal(t, BandModerate, p.BandFor(15, true))
}

func TestNarrativePerBand(t *testing.T) {
	dist := Distribution{Automate: 2, Augment: 1, Human: 1}
	seen := map[string]bool{}
	for _, b := range []Band{BandNoData, BandLow, BandModerate, BandHigh} {
		summary, outlook := Narrative(b, "Nurse", dist)
		assert.Contains(t, summary, "Nurse")
		assert.NotEmpty(t, outlook)
		assert.False(t, seen[summary], "duplicate narrative for %s", b)
		seen[summary] = true
		assert.NotEmpty(t, b.Label())
		assert.NotEmpty(t, b.Color())
	}
	summary, _ := Narrative(BandHigh, "", dist)
	assert.Contains(t, summary, "this occupation")
	assert.Contains(t, summary, "4 core tasks")
}
