package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"onetexplorer/internal/impact"
)

// isolateEnv blanks every variable Load reads so the host environment cannot
// leak into a test.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ONET_API_KEY", "ONET_BASE_URL", "BLS_API_KEY", "BLS_BASE_URL", "DB_PATH",
		"REPORT_OUTPUT_DIR", "LISTEN_ADDR", "PORT", "REFRESH_SCHEDULE", "SLACK_BOT_TOKEN",
		"SLACK_CHANNEL_ID", "ANTHROPIC_API_KEY", "LLM_MODEL", "CLASSIFIER_GLOSSARY_PATH",
		"LLM_REVIEW_ENABLED", "WATCH_CODES", "EXTERNAL_HTTP_TIMEOUT_SECONDS",
		"INDUSTRY_SCAN_WORKERS", "CACHE_TTL_HOURS", "LLM_CONFIDENCE_THRESHOLD",
		"POLICY_HUMAN_BIAS", "POLICY_AUTOMATE_WEIGHT", "POLICY_AUGMENT_WEIGHT",
		"POLICY_LOW_BELOW", "POLICY_HIGH_ABOVE", "POLICY_MAX_AGENTS",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing-config.yaml"))
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	isolateEnv(t)
	t.Setenv("ONET_API_KEY", "onet-test")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Source != "" {
		t.Fatalf("expected no config source, got %q", cfg.Source)
	}
	if cfg.ONetAPIKey != "onet-test" {
		t.Fatalf("unexpected onet key: %q", cfg.ONetAPIKey)
	}
	if cfg.ONetBaseURL != DefaultONetBaseURL {
		t.Fatalf("unexpected onet base url: %q", cfg.ONetBaseURL)
	}
	if cfg.DBPath != "./onetexplorer.db" {
		t.Fatalf("unexpected db path default: %q", cfg.DBPath)
	}
	if cfg.ExternalHTTPTimeoutSeconds != int(defaultExternalHTTPTimeout/time.Second) {
		t.Fatalf("unexpected external HTTP timeout default: %d", cfg.ExternalHTTPTimeoutSeconds)
	}
	if cfg.CacheTTL() != 24*time.Hour {
		t.Fatalf("unexpected cache ttl: %s", cfg.CacheTTL())
	}
	if cfg.ListenAddr != ":5000" {
		t.Fatalf("unexpected listen addr: %q", cfg.ListenAddr)
	}
	if cfg.Policy != impact.DefaultPolicy() {
		t.Fatalf("unexpected policy: %+v", cfg.Policy)
	}
	if cfg.SlackConfigured() {
		t.Fatal("slack should not be configured")
	}
}

func TestLoadYAMLAndEnvOverride(t *testing.T) {
	isolateEnv(t)
	path := writeFile(t, "config.yaml", `
onet_api_key: "yaml-key"
db_path: "/tmp/yaml.db"
report_output_dir: "/tmp/yaml-reports"
external_http_timeout_seconds: 75
watch_codes: ["15-1252.00", " 29-1141.00 "]
policy:
  human_bias: 1.3
  max_agents: 5
`)
	t.Setenv("DB_PATH", "/tmp/env.db")
	t.Setenv("EXTERNAL_HTTP_TIMEOUT_SECONDS", "120")
	t.Setenv("POLICY_HIGH_ABOVE", "70")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Source != path {
		t.Fatalf("unexpected source: %q", cfg.Source)
	}
	if cfg.ONetAPIKey != "yaml-key" {
		t.Fatalf("expected onet key from yaml, got %q", cfg.ONetAPIKey)
	}
	if cfg.DBPath != "/tmp/env.db" {
		t.Fatalf("expected db path from env override, got %q", cfg.DBPath)
	}
	if cfg.ReportOutputDir != "/tmp/yaml-reports" {
		t.Fatalf("expected report output dir from yaml, got %q", cfg.ReportOutputDir)
	}
	if cfg.ExternalHTTPTimeoutSeconds != 120 {
		t.Fatalf("expected timeout from env override, got %d", cfg.ExternalHTTPTimeoutSeconds)
	}
	if cfg.Policy.HumanBias != 1.3 || cfg.Policy.MaxAgents != 5 || cfg.Policy.HighAbove != 70 {
		t.Fatalf("unexpected policy overrides: %+v", cfg.Policy)
	}
	if cfg.Policy.AugmentWeight != 0.5 {
		t.Fatalf("unset policy keys must keep defaults, got augment weight %v", cfg.Policy.AugmentWeight)
	}
	if len(cfg.WatchCodes) != 2 || cfg.WatchCodes[1] != "29-1141.00" {
		t.Fatalf("unexpected watch codes: %q", cfg.WatchCodes)
	}
}

func TestLoadTOML(t *testing.T) {
	isolateEnv(t)
	path := writeFile(t, "config.toml", `
onet_api_key = "toml-key"
cache_ttl_hours = 6
refresh_schedule = "30 2 * * *"

[policy]
low_below = 25.0
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ONetAPIKey != "toml-key" {
		t.Fatalf("unexpected onet key: %q", cfg.ONetAPIKey)
	}
	if cfg.CacheTTL() != 6*time.Hour {
		t.Fatalf("unexpected cache ttl: %s", cfg.CacheTTL())
	}
	if cfg.Policy.LowBelow != 25 || cfg.Policy.HumanBias != impact.DefaultHumanBias {
		t.Fatalf("unexpected policy: %+v", cfg.Policy)
	}
}

func TestLoadPortFallback(t *testing.T) {
	isolateEnv(t)
	t.Setenv("PORT", "8080")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddr != ":8080" {
		t.Fatalf("unexpected listen addr: %q", cfg.ListenAddr)
	}
}

func TestLoadValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"timeout too small", map[string]string{"EXTERNAL_HTTP_TIMEOUT_SECONDS": "2"}, "external_http_timeout_seconds"},
		{"bad int", map[string]string{"CACHE_TTL_HOURS": "soon"}, "CACHE_TTL_HOURS"},
		{"too many workers", map[string]string{"INDUSTRY_SCAN_WORKERS": "64"}, "industry_scan_workers"},
		{"confidence out of range", map[string]string{"LLM_CONFIDENCE_THRESHOLD": "1.5"}, "llm_confidence_threshold"},
		{"review without key", map[string]string{"LLM_REVIEW_ENABLED": "true"}, "anthropic_api_key"},
		{"partial slack", map[string]string{"SLACK_BOT_TOKEN": "xoxb-test"}, "slack_channel_id"},
		{"bad schedule", map[string]string{"REFRESH_SCHEDULE": "every monday"}, "refresh_schedule"},
		{"bias below one", map[string]string{"POLICY_HUMAN_BIAS": "0.5"}, "policy"},
		{"missing glossary", map[string]string{"CLASSIFIER_GLOSSARY_PATH": "/nonexistent/glossary.yaml"}, "classifier_glossary_path"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadMalformedFile(t *testing.T) {
	isolateEnv(t)
	path := writeFile(t, "config.yaml", "onet_api_key: [unterminated\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestRequireONetKey(t *testing.T) {
	if err := (Config{}).RequireONetKey(); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
	if err := (Config{ONetAPIKey: "k"}).RequireONetKey(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEnvOverrideHelpers(t *testing.T) {
	s := "initial"
	t.Setenv("OX_TEST_STR", "value")
	envOverride(&s, "OX_TEST_STR")
	if s != "value" {
		t.Fatalf("envOverride failed, got %q", s)
	}

	i := 1
	t.Setenv("OX_TEST_INT", "42")
	if err := envOverrideInt(&i, "OX_TEST_INT"); err != nil || i != 42 {
		t.Fatalf("envOverrideInt failed, got %d (%v)", i, err)
	}
	t.Setenv("OX_TEST_INT", "forty")
	if err := envOverrideInt(&i, "OX_TEST_INT"); err == nil {
		t.Fatal("expected envOverrideInt to reject non-numeric input")
	}

	f := 0.1
	t.Setenv("OX_TEST_FLOAT", "0.75")
	if err := envOverrideFloat(&f, "OX_TEST_FLOAT"); err != nil || f != 0.75 {
		t.Fatalf("envOverrideFloat failed, got %f (%v)", f, err)
	}

	b := false
	t.Setenv("OX_TEST_BOOL", "1")
	envOverrideBool(&b, "OX_TEST_BOOL")
	if !b {
		t.Fatalf("envOverrideBool failed, got %v", b)
	}

	list := []string{"old"}
	t.Setenv("OX_TEST_LIST", "a, ,b")
	envOverrideList(&list, "OX_TEST_LIST")
	if len(list) != 2 || list[0] != "a" || list[1] != "b" {
		t.Fatalf("envOverrideList failed, got %q", list)
	}
}
