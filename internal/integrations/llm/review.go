package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"onetexplorer/internal/domain"
	"onetexplorer/internal/impact"
	"onetexplorer/internal/logging"

	"go.uber.org/zap"
)

// maxReviewTasks bounds the prompt size for occupations with long task lists.
const maxReviewTasks = 40

// Reviewer sends low-confidence classifications to a model and reports the
// ones it disagrees with.
type Reviewer struct {
	completer Completer
	threshold float64
	logger    *zap.Logger
}

// NewReviewer reviews classifications whose confidence is below threshold.
func NewReviewer(c Completer, threshold float64, logger *zap.Logger) *Reviewer {
	return &Reviewer{completer: c, threshold: threshold, logger: logging.OrNop(logger)}
}

type reviewFlagged struct {
	ID                int    `json:"id"`
	Reason            string `json:"reason"`
	SuggestedCategory string `json:"suggested_category"`
}

const reviewSystemPrompt = `You are reviewing how job tasks were classified by their exposure to AI.

Categories:
- automate: routine, data-driven or repetitive work AI can perform end to end
- augment: complex analytical or creative work where AI acts as a co-pilot
- human: work that depends on interpersonal judgment, physical presence, ethics or leadership

For each task you are confident is misclassified, return its ID, a brief reason and a suggested_category.
Return an empty array [] if all assignments look correct.

Respond with JSON only (no markdown):
[{"id": 1, "reason": "...", "suggested_category": "augment"}, ...]`

// candidates returns the indexes of the classifications to review, lowest
// confidence first.
func (r *Reviewer) candidates(tasks []impact.TaskClassification) []int {
	var idx []int
	for i, t := range tasks {
		if t.Confidence < r.threshold {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return tasks[idx[a]].Confidence < tasks[idx[b]].Confidence
	})
	if len(idx) > maxReviewTasks {
		idx = idx[:maxReviewTasks]
	}
	return idx
}

// Review returns one note per disagreement. tasks is not modified.
func (r *Reviewer) Review(ctx context.Context, title string, tasks []impact.TaskClassification) ([]domain.ReviewNote, Usage, error) {
	idx := r.candidates(tasks)
	if len(idx) == 0 {
		return nil, Usage{}, nil
	}

	var lines strings.Builder
	for _, i := range idx {
		t := tasks[i]
		fmt.Fprintf(&lines, "ID:%d | category: %s | confidence: %.2f | task: %s\n",
			i, t.Category, t.Confidence, strings.TrimSpace(t.Task.Description))
	}
	userPrompt := fmt.Sprintf("Occupation: %s\nReview these classifications:\n%s", strings.TrimSpace(title), lines.String())

	r.logger.Info("llm review start", zap.String("occupation", title), zap.Int("tasks", len(idx)))
	text, usage, err := r.completer.Complete(ctx, reviewSystemPrompt, userPrompt)
	if err != nil {
		return nil, usage, err
	}
	flagged, err := parseReviewResponse(text)
	if err != nil {
		return nil, usage, err
	}

	reviewed := make(map[int]bool, len(idx))
	for _, i := range idx {
		reviewed[i] = true
	}
	var notes []domain.ReviewNote
	seen := make(map[int]bool)
	for _, f := range flagged {
		if !reviewed[f.ID] || seen[f.ID] {
			continue
		}
		suggested, err := impact.ParseCategory(f.SuggestedCategory)
		if err != nil {
			r.logger.Debug("llm review ignored suggestion", zap.Int("id", f.ID), zap.String("suggested", f.SuggestedCategory))
			continue
		}
		t := tasks[f.ID]
		if suggested == t.Category {
			continue
		}
		seen[f.ID] = true
		notes = append(notes, domain.ReviewNote{
			TaskID:     t.Task.ID,
			Task:       t.Task.Description,
			Category:   t.Category.String(),
			Suggested:  suggested.String(),
			Confidence: t.Confidence,
			Reason:     strings.TrimSpace(f.Reason),
		})
	}
	r.logger.Info("llm review done",
		zap.String("occupation", title),
		zap.Int("flagged", len(notes)),
		zap.Int64("tokens", usage.TotalTokens()),
	)
	return notes, usage, nil
}

func parseReviewResponse(responseText string) ([]reviewFlagged, error) {
	responseText = strings.TrimSpace(responseText)
	responseText = strings.TrimPrefix(responseText, "```json")
	responseText = strings.TrimPrefix(responseText, "```")
	responseText = strings.TrimSuffix(responseText, "```")
	responseText = strings.TrimSpace(responseText)

	var flagged []reviewFlagged
	if err := json.Unmarshal([]byte(responseText), &flagged); err != nil {
		truncated := responseText
		if len(truncated) > 512 {
			truncated = truncated[:512] + fmt.Sprintf("... [truncated, total_length=%d]", len(responseText))
		}
		return nil, fmt.Errorf("parsing review response: %w (truncated response: %s)", err, truncated)
	}
	return flagged, nil
}
