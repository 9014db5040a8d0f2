package httpx

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientDefaults(t *testing.T) {
	c := Client()
	require.NotNil(t, c)
	assert.Same(t, c, Client(), "every caller must share one client")
	assert.Equal(t, defaultExternalHTTPTimeout, c.Timeout)
}

func TestConfigureExternalHTTPClientAppliesToSharedClient(t *testing.T) {
	original := Client().Timeout
	t.Cleanup(func() { Client().Timeout = original })

	for _, tt := range []struct {
		seconds int
		want    time.Duration
	}{
		{seconds: 45, want: 45 * time.Second},
		{seconds: 0, want: defaultExternalHTTPTimeout},
		{seconds: -3, want: defaultExternalHTTPTimeout},
		{seconds: 300, want: 5 * time.Minute},
	} {
		got := ConfigureExternalHTTPClient(tt.seconds)
		assert.Equal(t, tt.want, got, "seconds=%d", tt.seconds)
		assert.Equal(t, tt.want, Client().Timeout, "seconds=%d", tt.seconds)
	}
}

func TestUserAgentReachesServer(t *testing.T) {
	require.True(t, strings.HasPrefix(UserAgent, "onetexplorer/"), UserAgent)

	var seen string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", UserAgent)
	resp, err := Client().Do(req)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, UserAgent, seen)
}
