package onet

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"

	"onetexplorer/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type industryRef struct {
	Code  string `json:"code"`
	Title string `json:"title"`
}

type industryOccupation struct {
	Code              string  `json:"code"`
	PercentEmployed   float64 `json:"percent_employed"`
	ProjectedGrowth   string  `json:"projected_growth"`
	ProjectedOpenings float64 `json:"projected_openings"`
	Tags              struct {
		BrightOutlook bool `json:"bright_outlook"`
	} `json:"tags"`
}

type industryResponse struct {
	Occupation []industryOccupation `json:"occupation"`
}

// listIndustries reads the industry index, which is served either as a bare
// list or wrapped in an object.
func (c *Client) listIndustries(ctx context.Context) ([]industryRef, error) {
	body, err := c.getRaw(ctx, "online/industries/", nil)
	if err != nil {
		return nil, fmt.Errorf("industries: %w", err)
	}
	trimmed := bytes.TrimSpace(body)
	var refs []industryRef
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &refs); err != nil {
			return nil, fmt.Errorf("parsing industries: %w", err)
		}
		return refs, nil
	}
	var wrapped struct {
		Industry   []industryRef `json:"industry"`
		Industries []industryRef `json:"industries"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return nil, fmt.Errorf("parsing industries: %w", err)
	}
	if len(wrapped.Industry) > 0 {
		return wrapped.Industry, nil
	}
	return wrapped.Industries, nil
}

// Industries scans every industry for code and returns the ones employing
// it, largest share of employment first. Industries that fail to load are
// skipped; an authentication failure or a cancelled context aborts the scan.
func (c *Client) Industries(ctx context.Context, code string) ([]domain.IndustryEmployment, error) {
	refs, err := c.listIndustries(ctx)
	if err != nil {
		return nil, err
	}

	found := make([]*domain.IndustryEmployment, len(refs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, ref := range refs {
		g.Go(func() error {
			var resp industryResponse
			err := c.get(gctx, "online/industries/"+url.PathEscape(ref.Code), url.Values{"start": {"1"}, "end": {"500"}}, &resp)
			if err != nil {
				if errors.Is(err, ErrUnauthorized) || gctx.Err() != nil {
					return fmt.Errorf("industry %s: %w", ref.Code, err)
				}
				c.logger.Warn("onet industry skipped", zap.String("industry", ref.Code), zap.Error(err))
				return nil
			}
			for _, occ := range resp.Occupation {
				if occ.Code != code {
					continue
				}
				openings := int(occ.ProjectedOpenings)
				growth := occ.ProjectedGrowth
				if growth == "" {
					growth = "N/A"
				}
				found[i] = &domain.IndustryEmployment{
					IndustryCode:              ref.Code,
					Industry:                  ref.Title,
					PercentEmployed:           occ.PercentEmployed,
					ProjectedGrowth:           growth,
					ProjectedOpenings:         openings,
					EstimatedIndustryOpenings: domain.EstimateOpenings(openings, occ.PercentEmployed),
					BrightOutlook:             occ.Tags.BrightOutlook,
				}
				break
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("industries %s: %w", code, err)
	}

	var out []domain.IndustryEmployment
	for _, f := range found {
		if f != nil {
			out = append(out, *f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PercentEmployed > out[j].PercentEmployed })
	c.logger.Debug("onet industry scan done", zap.String("code", code), zap.Int("scanned", len(refs)), zap.Int("total", len(out)))
	return out, nil
}
