package impact

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidTask marks a task record the analysis refuses to score.
var ErrInvalidTask = errors.New("invalid task record")

// Task is one occupation task as supplied by the API client. Importance is the
// published rating; zero means unrated.
type Task struct {
	ID          string  `json:"id,omitempty"`
	Description string  `json:"description"`
	Importance  float64 `json:"importance"`
}

// Validate rejects importances that would make the weighted score meaningless.
func (t Task) Validate() error {
	if math.IsNaN(t.Importance) || math.IsInf(t.Importance, 0) {
		return fmt.Errorf("%w: importance is not finite", ErrInvalidTask)
	}
	if t.Importance < 0 {
		return fmt.Errorf("%w: negative importance %v", ErrInvalidTask, t.Importance)
	}
	return nil
}

// Distribution counts tasks per category.
type Distribution struct {
	Automate int `json:"automate"`
	Augment  int `json:"augment"`
	Human    int `json:"human"`
}

func (d Distribution) Total() int {
	return d.Automate + d.Augment + d.Human
}

func (d Distribution) Count(c Category) int {
	switch c {
	case Automate:
		return d.Automate
	case Augment:
		return d.Augment
	default:
		return d.Human
	}
}

// Share is the fraction of tasks in c, 0 when there are no tasks.
func (d Distribution) Share(c Category) float64 {
	total := d.Total()
	if total == 0 {
		return 0
	}
	return float64(d.Count(c)) / float64(total)
}

// Percent is Share as a whole percentage, truncated.
func (d Distribution) Percent(c Category) int {
	return int(d.Share(c) * 100)
}

func (d *Distribution) add(c Category) {
	switch c {
	case Automate:
		d.Automate++
	case Augment:
		d.Augment++
	default:
		d.Human++
	}
}

// Distribute counts classified tasks by category.
func Distribute(tasks []TaskClassification) Distribution {
	var d Distribution
	for _, t := range tasks {
		d.add(t.Category)
	}
	return d
}

// Aggregate computes the importance-weighted impact score in [0,100]. Unrated
// tasks are left out of the weighting; no rated tasks yields 0.
func Aggregate(tasks []TaskClassification, p Policy) float64 {
	var weighted, total float64
	for _, t := range tasks {
		imp := t.Task.Importance
		if imp <= 0 || math.IsNaN(imp) || math.IsInf(imp, 0) {
			continue
		}
		weighted += imp * p.Weight(t.Category)
		total += imp
	}
	if total == 0 {
		return 0
	}
	score := 100 * weighted / total
	return math.Max(0, math.Min(100, score))
}
