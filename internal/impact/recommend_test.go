package impact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classifyAll(tasks []Task) []TaskClassification {
	c := NewDefaultClassifier()
	out := make([]TaskClassification, len(tasks))
	for i, t := range tasks {
		out[i] = c.ClassifyTask(t)
	}
	return out
}

func TestRecommendAgentsCappedAndSorted(t *testing.T) {
	p := DefaultPolicy()
	got := RecommendAgents(AgentCatalog(), classifyAll(broadTasks), nil, p)

	require.Len(t, got, p.MaxAgents)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Relevance, got[i].Relevance, "position %d", i)
	}
	for _, a := range got {
		assert.Positive(t, a.Relevance)
		assert.LessOrEqual(t, a.Relevance, 100.0)
		assert.Positive(t, a.TasksAddressed)
	}
}

func TestRecommendAgentsRespectsCustomCap(t *testing.T) {
	p := DefaultPolicy()
	p.MaxAgents = 3
	got := RecommendAgents(AgentCatalog(), classifyAll(broadTasks), nil, p)
	assert.Len(t, got, 3)
}

func TestRecommendAgentsEmpty(t *testing.T) {
	assert.Empty(t, RecommendAgents(AgentCatalog(), nil, []Element{{Name: "Programming"}}, DefaultPolicy()))
}

func TestRecommendAgentsCategoryMustMatch(t *testing.T) {
	// "Counsel clients" mentions a customer trigger but is human-essential,
	// which the customer interaction agent does not take on.
	tasks := classifyAll([]Task{{Description: "Counsel clients", Importance: 4}})
	require.Equal(t, HumanEssential, tasks[0].Category)
	for _, a := range RecommendAgents(AgentCatalog(), tasks, nil, DefaultPolicy()) {
		assert.NotEqual(t, "Customer Interaction Agent", a.Name)
	}
}

func TestRecommendAgentsSkillBonus(t *testing.T) {
	tasks := classifyAll([]Task{
		{Description: "Develop and test software programs", Importance: 5},
		{Description: "Counsel clients", Importance: 5},
	})
	p := DefaultPolicy()

	find := func(recs []AgentRecommendation, name string) AgentRecommendation {
		for _, r := range recs {
			if r.Name == name {
				return r
			}
		}
		t.Fatalf("agent %q not recommended", name)
		return AgentRecommendation{}
	}

	plain := find(RecommendAgents(AgentCatalog(), tasks, nil, p), "Code & Technical Assistant Agent")
	assert.InDelta(t, 50.0, plain.Relevance, 1e-9)
	assert.False(t, plain.SkillMatch)

	profile := []Element{{Name: "Programming", Description: "Writing computer programs for various purposes."}}
	boosted := find(RecommendAgents(AgentCatalog(), tasks, profile, p), "Code & Technical Assistant Agent")
	assert.InDelta(t, 50.0+p.AgentSkillBonus, boosted.Relevance, 1e-9)
	assert.True(t, boosted.SkillMatch)
}

func TestRecommendSkillsTiersAndOrder(t *testing.T) {
	p := DefaultPolicy()
	tasks := classifyAll(broadTasks)
	skills := []Element{
		{Name: "Critical Thinking", Importance: 75},
		{Name: "Programming", Importance: 70},
		{Name: "Writing", Importance: 60},
	}
	got := RecommendSkills(SkillCatalog(), tasks, skills, p)
	require.NotEmpty(t, got)

	names := map[string]bool{}
	for i, s := range got {
		assert.False(t, names[s.Name], "duplicate %s", s.Name)
		names[s.Name] = true
		if i > 0 {
			assert.GreaterOrEqual(t, got[i-1].Score, s.Score)
		}
		assert.Equal(t, p.tier(s.Score), s.Priority)
		assert.Positive(t, s.Score)
		assert.LessOrEqual(t, s.Score, 1.0)
	}
	assert.True(t, names["Prompt Engineering & AI Direction"], "universal skills are always recommended")
	assert.True(t, names["Data Literacy for AI"])
}

func TestRecommendSkillsOrchestrationFollowsAutomation(t *testing.T) {
	p := DefaultPolicy()
	score := func(tasks []Task) float64 {
		for _, s := range RecommendSkills(SkillCatalog(), classifyAll(tasks), nil, p) {
			if s.Name == "Automation & Agent Orchestration" {
				return s.Score
			}
		}
		return 0
	}
	automated := score([]Task{
		{Description: "Schedule shipments and track inventory", Importance: 3},
		{Description: "Process orders and update records", Importance: 3},
	})
	human := score([]Task{
		{Description: "Schedule counselling and mentor staff", Importance: 3},
		{Description: "Process grief with families and counsel them", Importance: 3},
	})
	assert.Greater(t, automated, human)
}

func TestRecommendSkillsEmpty(t *testing.T) {
	assert.Empty(t, RecommendSkills(SkillCatalog(), nil, nil, DefaultPolicy()))
}

func TestPolicyTier(t *testing.T) {
	p := DefaultPolicy()
	assert.Equal(t, PriorityHigh, p.tier(0.7))
	assert.Equal(t, PriorityMedium, p.tier(0.4))
	assert.Equal(t, PriorityLow, p.tier(0.39))
}
