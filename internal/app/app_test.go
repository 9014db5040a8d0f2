package app

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onetexplorer/internal/config"
	"onetexplorer/internal/impact"
)

func testConfig(t *testing.T) config.Config {
	dir := t.TempDir()
	return config.Config{
		ONetAPIKey:                 "k",
		ONetBaseURL:                config.DefaultONetBaseURL,
		BLSBaseURL:                 config.DefaultBLSBaseURL,
		ExternalHTTPTimeoutSeconds: 30,
		IndustryScanWorkers:        2,
		DBPath:                     filepath.Join(dir, "app.db"),
		CacheTTLHours:              1,
		ReportOutputDir:            filepath.Join(dir, "reports"),
		WatchCodes:                 []string{"15-1252.00"},
		SlackBotToken:              "xoxb-test",
		SlackChannelID:             "C1",
		LLMReviewEnabled:           true,
		AnthropicAPIKey:            "sk-test",
		LLMConfidence:              0.5,
		Policy:                     impact.DefaultPolicy(),
	}
}

func TestNewWiresServices(t *testing.T) {
	cfg := testConfig(t)
	a, err := New(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	assert.NotNil(t, a.Explorer)
	assert.NotNil(t, a.Cache)
	assert.DirExists(t, cfg.ReportOutputDir)
	assert.NotNil(t, a.Refresher())
}

func TestNewRejectsBadGlossary(t *testing.T) {
	cfg := testConfig(t)
	cfg.GlossaryPath = filepath.Join(t.TempDir(), "missing.yaml")
	_, err := New(cfg, nil)
	assert.Error(t, err)
}
