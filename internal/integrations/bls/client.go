// Package bls reads occupational employment from the BLS OEWS time series
// API. Lookups degrade: a failed batch yields no figures and an error the
// caller may log and ignore.
package bls

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"onetexplorer/internal/domain"
	"onetexplorer/internal/httpx"
	"onetexplorer/internal/logging"

	"go.uber.org/zap"
)

// MaxSeriesPerRequest is the API's limit on series IDs per POST.
const MaxSeriesPerRequest = 50

var ErrNotProcessed = errors.New("BLS request not processed")

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, body []byte) error
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	cache      Cache
	logger     *zap.Logger
	startYear  int
	endYear    int
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

func WithCache(c Cache) Option {
	return func(cl *Client) { cl.cache = c }
}

func WithLogger(l *zap.Logger) Option {
	return func(cl *Client) { cl.logger = logging.OrNop(l) }
}

// WithYears sets the range of years requested.
func WithYears(start, end int) Option {
	return func(cl *Client) { cl.startYear, cl.endYear = start, end }
}

func New(baseURL, apiKey string, opts ...Option) *Client {
	end := time.Now().Year() - 1
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/") + "/",
		apiKey:     apiKey,
		httpClient: httpx.Client(),
		logger:     zap.NewNop(),
		startYear:  end - 1,
		endYear:    end,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SOC converts an O*NET-SOC code ("15-1252.00") to the six digit BLS SOC
// code ("151252").
func SOC(onetCode string) string {
	base, _, _ := strings.Cut(strings.TrimSpace(onetCode), ".")
	return strings.ReplaceAll(base, "-", "")
}

func StateSeriesID(fips, soc string) string {
	return "OEUS" + fips + "00000000000" + soc + "01"
}

func IndustrySeriesID(naics, soc string) string {
	return "OEUN0000000" + naics + soc + "01"
}

func NationalSeriesID(soc string) string {
	return "OEUN0000000000000" + soc + "01"
}

type request struct {
	SeriesID        []string `json:"seriesid"`
	StartYear       string   `json:"startyear"`
	EndYear         string   `json:"endyear"`
	RegistrationKey string   `json:"registrationkey,omitempty"`
}

type response struct {
	Status  string   `json:"status"`
	Message []string `json:"message"`
	Results struct {
		Series []struct {
			SeriesID string `json:"seriesID"`
			Data     []struct {
				Year   string `json:"year"`
				Period string `json:"period"`
				Value  string `json:"value"`
			} `json:"data"`
		} `json:"series"`
	} `json:"Results"`
}

func parseValue(v string) (int, bool) {
	f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(v), ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return int(f), true
}

// extract picks each series' annual (M13) value, falling back to the most
// recent data point. Unparseable values ("-" for suppressed data) are skipped.
func (r response) extract() map[string]int {
	out := make(map[string]int)
	for _, s := range r.Results.Series {
		if len(s.Data) == 0 {
			continue
		}
		point := s.Data[0]
		for _, d := range s.Data {
			if d.Period == "M13" {
				point = d
				break
			}
		}
		if v, ok := parseValue(point.Value); ok {
			out[s.SeriesID] = v
		}
	}
	return out
}

func (c *Client) cacheKey(ids []string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d-%d:%s", c.startYear, c.endYear, strings.Join(ids, ","))))
	return "bls:" + c.baseURL + ":" + hex.EncodeToString(sum[:])
}

// post fetches one batch of at most MaxSeriesPerRequest series.
func (c *Client) post(ctx context.Context, ids []string) (map[string]int, error) {
	key := c.cacheKey(ids)
	if c.cache != nil {
		if body, ok, err := c.cache.Get(ctx, key); err == nil && ok {
			var resp response
			if err := json.Unmarshal(body, &resp); err == nil {
				return resp.extract(), nil
			}
		}
	}

	payload, err := json.Marshal(request{
		SeriesID:        ids,
		StartYear:       strconv.Itoa(c.startYear),
		EndYear:         strconv.Itoa(c.endYear),
		RegistrationKey: c.apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"timeseries/data/", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", httpx.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("posting series: %w", err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("BLS API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed response
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	if parsed.Status != "REQUEST_SUCCEEDED" {
		return nil, fmt.Errorf("%w: %s %s", ErrNotProcessed, parsed.Status, strings.Join(parsed.Message, "; "))
	}
	if c.cache != nil {
		if err := c.cache.Put(ctx, key, body); err != nil {
			c.logger.Warn("bls cache write failed", zap.Error(err))
		}
	}
	return parsed.extract(), nil
}

// fetch requests ids in batches. Failed batches are reported but do not
// discard the figures of the others.
func (c *Client) fetch(ctx context.Context, ids []string) (map[string]int, error) {
	all := make(map[string]int, len(ids))
	var errs []error
	for start := 0; start < len(ids); start += MaxSeriesPerRequest {
		end := min(start+MaxSeriesPerRequest, len(ids))
		batch, err := c.post(ctx, ids[start:end])
		if err != nil {
			c.logger.Warn("bls batch failed", zap.Int("offset", start), zap.Int("size", end-start), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		for k, v := range batch {
			all[k] = v
		}
	}
	return all, errors.Join(errs...)
}

// National returns the national employment total, 0 when unavailable.
func (c *Client) National(ctx context.Context, onetCode string) (int, error) {
	id := NationalSeriesID(SOC(onetCode))
	values, err := c.fetch(ctx, []string{id})
	if err != nil {
		return 0, fmt.Errorf("national employment %s: %w", onetCode, err)
	}
	return values[id], nil
}

// ByState returns state employment, largest first. States without data are
// omitted.
func (c *Client) ByState(ctx context.Context, onetCode string) ([]domain.StateEmployment, error) {
	soc := SOC(onetCode)
	ids := make([]string, len(States))
	for i, s := range States {
		ids[i] = StateSeriesID(s.FIPS, soc)
	}
	values, err := c.fetch(ctx, ids)

	var out []domain.StateEmployment
	for i, s := range States {
		if v := values[ids[i]]; v > 0 {
			out = append(out, domain.StateEmployment{State: s.Name, FIPS: s.FIPS, Employment: v})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Employment > out[j].Employment })
	if err != nil {
		return out, fmt.Errorf("state employment %s: %w", onetCode, err)
	}
	return out, nil
}

// ByIndustry returns national employment per NAICS sector, largest first.
func (c *Client) ByIndustry(ctx context.Context, onetCode string) ([]domain.SectorEmployment, error) {
	soc := SOC(onetCode)
	ids := make([]string, len(Sectors))
	for i, s := range Sectors {
		ids[i] = IndustrySeriesID(s.Code, soc)
	}
	values, err := c.fetch(ctx, ids)

	var out []domain.SectorEmployment
	for i, s := range Sectors {
		if v := values[ids[i]]; v > 0 {
			out = append(out, domain.SectorEmployment{IndustryCode: s.Code, Industry: s.Name, Employment: v})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Employment > out[j].Employment })
	if err != nil {
		return out, fmt.Errorf("industry employment %s: %w", onetCode, err)
	}
	return out, nil
}

// Employment gathers the national, state and industry figures. The result
// holds whatever could be fetched; err joins the failures.
func (c *Client) Employment(ctx context.Context, onetCode string) (domain.Employment, error) {
	var emp domain.Employment
	var errs []error
	var err error
	if emp.National, err = c.National(ctx, onetCode); err != nil {
		errs = append(errs, err)
	}
	if emp.ByState, err = c.ByState(ctx, onetCode); err != nil {
		errs = append(errs, err)
	}
	if emp.ByIndustry, err = c.ByIndustry(ctx, onetCode); err != nil {
		errs = append(errs, err)
	}
	c.logger.Info("bls employment fetched",
		zap.String("code", onetCode),
		zap.Int("national", emp.National),
		zap.Int("states", len(emp.ByState)),
		zap.Int("industries", len(emp.ByIndustry)),
	)
	return emp, errors.Join(errs...)
}
