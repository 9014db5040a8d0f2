package impact

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classified(c Category, importance float64) TaskClassification {
	return TaskClassification{
		Task:           Task{Description: c.String() + " task", Importance: importance},
		Classification: Classification{Category: c},
	}
}

func TestAggregateEqualWeighting(t *testing.T) {
	tasks := []TaskClassification{classified(Automate, 4), classified(HumanEssential, 4)}
	assert.InDelta(t, 50.0, Aggregate(tasks, DefaultPolicy()), 1e-9)
}

func TestAggregateWeights(t *testing.T) {
	p := DefaultPolicy()
	tests := []struct {
		name  string
		tasks []TaskClassification
		want  float64
	}{
		{"empty", nil, 0},
		{"all automate", []TaskClassification{classified(Automate, 3), classified(Automate, 5)}, 100},
		{"all human", []TaskClassification{classified(HumanEssential, 3)}, 0},
		{"augment counts half", []TaskClassification{classified(Augment, 2)}, 50},
		{"importance weighted", []TaskClassification{classified(Automate, 3), classified(HumanEssential, 1)}, 75},
		{"zero importance excluded", []TaskClassification{classified(Automate, 0), classified(HumanEssential, 2)}, 0},
		{"only unrated tasks", []TaskClassification{classified(Automate, 0), classified(Augment, 0)}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Aggregate(tt.tasks, p), 1e-9)
		})
	}
}

func randomTasks(r *rand.Rand, n int) []TaskClassification {
	tasks := make([]TaskClassification, n)
	for i := range tasks {
		tasks[i] = classified(Categories[r.Intn(len(Categories))], float64(r.Intn(6)))
	}
	return tasks
}

func TestAggregateBoundedAndMonotonic(t *testing.T) {
	p := DefaultPolicy()
	r := rand.New(rand.NewSource(42))
	for round := 0; round < 200; round++ {
		tasks := randomTasks(r, 1+r.Intn(30))
		base := Aggregate(tasks, p)
		require.GreaterOrEqual(t, base, 0.0)
		require.LessOrEqual(t, base, 100.0)

		for i, task := range tasks {
			if task.Category != HumanEssential {
				continue
			}
			swapped := append([]TaskClassification(nil), tasks...)
			swapped[i] = classified(Automate, task.Task.Importance)
			assert.GreaterOrEqual(t, Aggregate(swapped, p), base-1e-9, "round=%d task=%d", round, i)
		}
	}
}

func TestDistributionCountsEveryTaskOnce(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	c := NewDefaultClassifier()
	descriptions := []string{
		"", "Analyze data", "File records", "Counsel clients", "Schedule and analyze",
		"Negotiate contracts and draft proposals", "Operate heavy equipment safely",
	}
	for round := 0; round < 50; round++ {
		n := r.Intn(20)
		tasks := make([]TaskClassification, n)
		for i := range tasks {
			tasks[i] = c.ClassifyTask(Task{Description: descriptions[r.Intn(len(descriptions))], Importance: 3})
		}
		d := Distribute(tasks)
		assert.Equal(t, n, d.Total())
	}
}

func TestDistributionShare(t *testing.T) {
	d := Distribution{Automate: 1, Augment: 1, Human: 2}
	assert.Equal(t, 0.25, d.Share(Automate))
	assert.Equal(t, 50, d.Percent(HumanEssential))
	assert.Zero(t, Distribution{}.Share(Augment))
}

func TestTaskValidate(t *testing.T) {
	assert.NoError(t, Task{Description: "x", Importance: 0}.Validate())
	for _, imp := range []float64{-1, math.NaN(), math.Inf(1)} {
		err := Task{Description: "x", Importance: imp}.Validate()
		assert.True(t, errors.Is(err, ErrInvalidTask), "importance=%v", imp)
	}
}

func TestPolicyValidate(t *testing.T) {
	require.NoError(t, DefaultPolicy().Validate())

	tests := []struct {
		name   string
		mutate func(*Policy)
	}{
		{"bias below one", func(p *Policy) { p.HumanBias = 0.9 }},
		{"augment above automate", func(p *Policy) { p.AugmentWeight = 1.2; p.AutomateWeight = 1 }},
		{"human above augment", func(p *Policy) { p.HumanWeight = 0.7 }},
		{"bands inverted", func(p *Policy) { p.LowBelow = 70 }},
		{"high above 100", func(p *Policy) { p.HighAbove = 101 }},
		{"no agents", func(p *Policy) { p.MaxAgents = 0 }},
		{"nan bias", func(p *Policy) { p.HumanBias = math.NaN() }},
		{"skill tiers inverted", func(p *Policy) { p.SkillMediumAt = 0.9 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultPolicy()
			tt.mutate(&p)
			assert.Error(t, p.Validate())
		})
	}
}
