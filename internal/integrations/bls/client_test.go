package bls

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct {
	Year   string `json:"year"`
	Period string `json:"period"`
	Value  string `json:"value"`
}

// fakeBLS answers every requested series from values; series missing from
// values are returned without data.
func fakeBLS(t *testing.T, values map[string][]point, status string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.Method != http.MethodPost || r.URL.Path != "/timeseries/data/" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.SeriesID) > MaxSeriesPerRequest {
			t.Errorf("batch of %d exceeds limit", len(req.SeriesID))
		}
		if req.StartYear != "2023" || req.EndYear != "2024" {
			t.Errorf("unexpected years %s-%s", req.StartYear, req.EndYear)
		}
		series := []map[string]any{}
		for _, id := range req.SeriesID {
			series = append(series, map[string]any{"seriesID": id, "data": values[id]})
		}
		resp := map[string]any{"status": status, "Results": map[string]any{"series": series}}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func TestSOCAndSeriesIDs(t *testing.T) {
	assert.Equal(t, "151252", SOC("15-1252.00"))
	assert.Equal(t, "291141", SOC(" 29-1141.01 "))
	assert.Equal(t, "OEUS0600000000000151252"+"01", StateSeriesID("06", "151252"))
	assert.Equal(t, "OEUN0000000541000151252"+"01", IndustrySeriesID("541000", "151252"))
	id := NationalSeriesID("151252")
	assert.Equal(t, "OEUN000000000000015125201", id)
	assert.Len(t, id, 25)
	assert.Len(t, States, 51)
}

func TestNationalPrefersAnnualValue(t *testing.T) {
	id := NationalSeriesID("151252")
	server, _ := fakeBLS(t, map[string][]point{
		id: {{"2024", "M05", "1,600,000"}, {"2024", "M13", "1,656,880"}},
	}, "REQUEST_SUCCEEDED")

	got, err := New(server.URL, "", WithYears(2023, 2024)).National(context.Background(), "15-1252.00")
	require.NoError(t, err)
	assert.Equal(t, 1656880, got)
}

func TestByStateBatchesAndSorts(t *testing.T) {
	soc := "151252"
	server, calls := fakeBLS(t, map[string][]point{
		StateSeriesID("06", soc): {{"2024", "M13", "180,000"}},
		StateSeriesID("48", soc): {{"2024", "M13", "120,000"}},
		StateSeriesID("56", soc): {{"2024", "A01", "900"}},
		StateSeriesID("02", soc): {{"2024", "M13", "-"}},
	}, "REQUEST_SUCCEEDED")

	got, err := New(server.URL, "key", WithYears(2023, 2024)).ByState(context.Background(), "15-1252.00")
	require.NoError(t, err)
	assert.EqualValues(t, 2, calls.Load(), "51 states need two batches")
	require.Len(t, got, 3)
	assert.Equal(t, "California", got[0].State)
	assert.Equal(t, "Texas", got[1].State)
	assert.Equal(t, "Wyoming", got[2].State)
	assert.Equal(t, 900, got[2].Employment)
}

func TestNotProcessedDegrades(t *testing.T) {
	server, _ := fakeBLS(t, nil, "REQUEST_NOT_PROCESSED")
	c := New(server.URL, "", WithYears(2023, 2024))

	got, err := c.ByIndustry(context.Background(), "15-1252.00")
	assert.Empty(t, got)
	assert.True(t, errors.Is(err, ErrNotProcessed))

	emp, err := c.Employment(context.Background(), "15-1252.00")
	assert.Error(t, err)
	assert.Zero(t, emp.Total())
}

func TestServerErrorDegrades(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	n, err := New(server.URL, "").National(context.Background(), "15-1252.00")
	assert.Zero(t, n)
	assert.ErrorContains(t, err, "503")
}

type mapCache map[string][]byte

func (m mapCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	b, ok := m[key]
	return b, ok, nil
}

func (m mapCache) Put(_ context.Context, key string, body []byte) error {
	m[key] = body
	return nil
}

func TestCachedBatches(t *testing.T) {
	id := NationalSeriesID("291141")
	server, calls := fakeBLS(t, map[string][]point{id: {{"2024", "M13", "3,282,010"}}}, "REQUEST_SUCCEEDED")
	c := New(server.URL, "", WithYears(2023, 2024), WithCache(mapCache{}))

	for i := 0; i < 2; i++ {
		n, err := c.National(context.Background(), "29-1141.00")
		require.NoError(t, err)
		assert.Equal(t, 3282010, n)
	}
	assert.EqualValues(t, 1, calls.Load())
}
