package onet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"onetexplorer/internal/domain"
	"onetexplorer/internal/impact"

	"go.uber.org/zap"
)

type searchResponse struct {
	Occupation []domain.OccupationRef `json:"occupation"`
}

// Search returns the occupations matching keyword in O*NET's relevance order.
func (c *Client) Search(ctx context.Context, keyword string) ([]domain.OccupationRef, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, fmt.Errorf("search: %w: empty keyword", ErrInvalidRequest)
	}
	var resp searchResponse
	if err := c.get(ctx, "online/search", url.Values{"keyword": {keyword}}, &resp); err != nil {
		return nil, fmt.Errorf("search %q: %w", keyword, err)
	}
	c.logger.Info("onet search done", zap.String("keyword", keyword), zap.Int("total", len(resp.Occupation)))
	return resp.Occupation, nil
}

type summaryResponse struct {
	Code          string          `json:"code"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	BrightOutlook json.RawMessage `json:"bright_outlook"`
	Tags          struct {
		BrightOutlook bool `json:"bright_outlook"`
	} `json:"tags"`
	SampleTitles []string `json:"sample_of_reported_titles"`
}

// titles reads a list given either as strings or as objects with a title.
func titles(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var plain []string
	if err := json.Unmarshal(raw, &plain); err == nil {
		return plain
	}
	var objs []struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal(raw, &objs); err != nil {
		return nil
	}
	out := make([]string, 0, len(objs))
	for _, o := range objs {
		if o.Title != "" {
			out = append(out, o.Title)
		}
	}
	return out
}

func (c *Client) Summary(ctx context.Context, code string) (domain.Summary, error) {
	var resp summaryResponse
	if err := c.get(ctx, occupationPath(code), nil, &resp); err != nil {
		return domain.Summary{}, fmt.Errorf("summary %s: %w", code, err)
	}
	s := domain.Summary{
		Code:            resp.Code,
		Title:           resp.Title,
		Description:     resp.Description,
		BrightOutlook:   titles(resp.BrightOutlook),
		IsBrightOutlook: resp.Tags.BrightOutlook,
		SampleTitles:    resp.SampleTitles,
	}
	if s.Code == "" {
		s.Code = code
	}
	return s, nil
}

// taskRecord is a task as served by the API. v2 names the text "title";
// older payloads call it "statement". A record with neither is malformed.
type taskRecord struct {
	ID         json.RawMessage `json:"id"`
	Title      *string         `json:"title"`
	Statement  *string         `json:"statement"`
	Category   string          `json:"category"`
	Importance *float64        `json:"importance"`
}

func (r taskRecord) toDomain() (domain.Task, error) {
	t := domain.Task{ID: rawID(r.ID), Category: r.Category}
	switch {
	case r.Title != nil:
		t.Statement = *r.Title
	case r.Statement != nil:
		t.Statement = *r.Statement
	default:
		return domain.Task{}, fmt.Errorf("%w: task has no title or statement", impact.ErrInvalidTask)
	}
	if r.Importance != nil {
		t.Importance = *r.Importance
	}
	return t, nil
}

func rawID(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// Tasks returns every task of the occupation, most important first.
func (c *Client) Tasks(ctx context.Context, code string) ([]domain.Task, error) {
	records, err := fetchAllPages[taskRecord](ctx, c, occupationPath(code, "details", "tasks"), "task")
	if err != nil {
		return nil, fmt.Errorf("tasks %s: %w", code, err)
	}
	tasks := make([]domain.Task, 0, len(records))
	for i, r := range records {
		t, err := r.toDomain()
		if err != nil {
			return nil, fmt.Errorf("tasks %s: record %d: %w", code, i, err)
		}
		tasks = append(tasks, t)
	}
	sort.SliceStable(tasks, func(i, j int) bool { return tasks[i].Importance > tasks[j].Importance })
	return tasks, nil
}

type elementRecord struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Importance  float64 `json:"importance"`
}

// Elements returns the occupation's skills, knowledge or abilities, most
// important first.
func (c *Client) Elements(ctx context.Context, code string, kind domain.ElementKind) ([]domain.Element, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%s %s: %w: unknown element kind", kind, code, ErrInvalidRequest)
	}
	records, err := fetchAllPages[elementRecord](ctx, c, occupationPath(code, "details", string(kind)), "element")
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", kind, code, err)
	}
	out := make([]domain.Element, 0, len(records))
	for _, r := range records {
		out = append(out, domain.Element{ID: r.ID, Name: r.Name, Description: r.Description, Importance: r.Importance})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Importance > out[j].Importance })
	return out, nil
}

type educationResponse struct {
	Response []domain.EducationLevel `json:"response"`
}

func (c *Client) Education(ctx context.Context, code string) ([]domain.EducationLevel, error) {
	var resp educationResponse
	if err := c.get(ctx, occupationPath(code, "details", "education"), nil, &resp); err != nil {
		return nil, fmt.Errorf("education %s: %w", code, err)
	}
	return resp.Response, nil
}

type jobZoneResponse struct {
	Code       int    `json:"code"`
	Title      string `json:"title"`
	Education  string `json:"education"`
	Experience string `json:"related_experience"`
	Training   string `json:"job_training"`
}

func (c *Client) JobZone(ctx context.Context, code string) (domain.JobZone, error) {
	var resp jobZoneResponse
	if err := c.get(ctx, occupationPath(code, "details", "job_zone"), nil, &resp); err != nil {
		return domain.JobZone{}, fmt.Errorf("job zone %s: %w", code, err)
	}
	return domain.JobZone(resp), nil
}

// HotTechnologies returns the technology examples, most common first.
func (c *Client) HotTechnologies(ctx context.Context, code string) ([]domain.Technology, error) {
	techs, err := fetchAllPages[domain.Technology](ctx, c, occupationPath(code, "hot_technology"), "example")
	if err != nil {
		return nil, fmt.Errorf("hot technologies %s: %w", code, err)
	}
	sort.SliceStable(techs, func(i, j int) bool { return techs[i].Percentage > techs[j].Percentage })
	return techs, nil
}

// Occupation fetches every O*NET section for code. Employment data comes
// from BLS and is left empty.
func (c *Client) Occupation(ctx context.Context, code string) (domain.Occupation, error) {
	var occ domain.Occupation
	var err error
	if occ.Summary, err = c.Summary(ctx, code); err != nil {
		return occ, err
	}
	if occ.Tasks, err = c.Tasks(ctx, code); err != nil {
		return occ, err
	}
	if occ.Skills, err = c.Elements(ctx, code, domain.Skills); err != nil {
		return occ, err
	}
	if occ.Knowledge, err = c.Elements(ctx, code, domain.Knowledge); err != nil {
		return occ, err
	}
	if occ.Abilities, err = c.Elements(ctx, code, domain.Abilities); err != nil {
		return occ, err
	}
	if occ.Education, err = c.Education(ctx, code); err != nil {
		return occ, err
	}
	if occ.JobZone, err = c.JobZone(ctx, code); err != nil {
		return occ, err
	}
	if occ.Technologies, err = c.HotTechnologies(ctx, code); err != nil {
		return occ, err
	}
	if occ.Industries, err = c.Industries(ctx, code); err != nil {
		return occ, err
	}
	c.logger.Info("onet occupation fetched",
		zap.String("code", code),
		zap.Int("tasks", len(occ.Tasks)),
		zap.Int("skills", len(occ.Skills)),
		zap.Int("industries", len(occ.Industries)),
	)
	return occ, nil
}
