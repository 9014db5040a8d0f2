package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"onetexplorer/internal/impact"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

const defaultExternalHTTPTimeout = 90 * time.Second
const defaultExternalHTTPTimeoutSeconds = int(defaultExternalHTTPTimeout / time.Second)

const (
	DefaultONetBaseURL = "https://api-v2.onetcenter.org/"
	DefaultBLSBaseURL  = "https://api.bls.gov/publicAPI/v2/"
	DefaultLLMModel    = "claude-sonnet-4-5-20250929"
)

// ErrMissingAPIKey is returned by RequireONetKey when no O*NET key is set.
var ErrMissingAPIKey = errors.New("onet_api_key is not set (via config file, ONET_API_KEY or .env)")

type Config struct {
	ONetAPIKey  string `yaml:"onet_api_key" toml:"onet_api_key"`
	ONetBaseURL string `yaml:"onet_base_url" toml:"onet_base_url"`
	BLSAPIKey   string `yaml:"bls_api_key" toml:"bls_api_key"`
	BLSBaseURL  string `yaml:"bls_base_url" toml:"bls_base_url"`

	ExternalHTTPTimeoutSeconds int `yaml:"external_http_timeout_seconds" toml:"external_http_timeout_seconds"`
	IndustryScanWorkers        int `yaml:"industry_scan_workers" toml:"industry_scan_workers"`

	DBPath          string `yaml:"db_path" toml:"db_path"`
	CacheTTLHours   int    `yaml:"cache_ttl_hours" toml:"cache_ttl_hours"`
	ReportOutputDir string `yaml:"report_output_dir" toml:"report_output_dir"`
	ListenAddr      string `yaml:"listen_addr" toml:"listen_addr"`

	RefreshSchedule string   `yaml:"refresh_schedule" toml:"refresh_schedule"`
	WatchCodes      []string `yaml:"watch_codes" toml:"watch_codes"`

	SlackBotToken  string `yaml:"slack_bot_token" toml:"slack_bot_token"`
	SlackChannelID string `yaml:"slack_channel_id" toml:"slack_channel_id"`

	AnthropicAPIKey  string  `yaml:"anthropic_api_key" toml:"anthropic_api_key"`
	LLMModel         string  `yaml:"llm_model" toml:"llm_model"`
	LLMReviewEnabled bool    `yaml:"llm_review_enabled" toml:"llm_review_enabled"`
	LLMConfidence    float64 `yaml:"llm_confidence_threshold" toml:"llm_confidence_threshold"`

	GlossaryPath string `yaml:"classifier_glossary_path" toml:"classifier_glossary_path"`

	Policy impact.Policy `yaml:"policy" toml:"policy"`

	// Source is the config file that was read, empty when none existed.
	Source string `yaml:"-" toml:"-"`
}

// Load reads the config file at path (CONFIG_PATH or config.yaml when empty),
// applies environment overrides and defaults, and validates the result. A
// .env file in the working directory is loaded first; it never overrides
// variables that are already set.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{Policy: impact.DefaultPolicy()}

	if path == "" {
		path = "config.yaml"
		if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
			path = envPath
		}
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decode(path, data, &cfg); err != nil {
			return Config{}, err
		}
		cfg.Source = path
	case errors.Is(err, fs.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	var err error
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	envOverride(&cfg.ONetAPIKey, "ONET_API_KEY")
	envOverride(&cfg.ONetBaseURL, "ONET_BASE_URL")
	envOverride(&cfg.BLSAPIKey, "BLS_API_KEY")
	envOverride(&cfg.BLSBaseURL, "BLS_BASE_URL")
	envOverride(&cfg.DBPath, "DB_PATH")
	envOverride(&cfg.ReportOutputDir, "REPORT_OUTPUT_DIR")
	envOverride(&cfg.ListenAddr, "LISTEN_ADDR")
	envOverride(&cfg.RefreshSchedule, "REFRESH_SCHEDULE")
	envOverride(&cfg.SlackBotToken, "SLACK_BOT_TOKEN")
	envOverride(&cfg.SlackChannelID, "SLACK_CHANNEL_ID")
	envOverride(&cfg.AnthropicAPIKey, "ANTHROPIC_API_KEY")
	envOverride(&cfg.LLMModel, "LLM_MODEL")
	envOverrideAllowEmpty(&cfg.GlossaryPath, "CLASSIFIER_GLOSSARY_PATH")
	envOverrideBool(&cfg.LLMReviewEnabled, "LLM_REVIEW_ENABLED")
	envOverrideList(&cfg.WatchCodes, "WATCH_CODES")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("LISTEN_ADDR") == "" {
		cfg.ListenAddr = ":" + port
	}

	return errors.Join(
		envOverrideInt(&cfg.ExternalHTTPTimeoutSeconds, "EXTERNAL_HTTP_TIMEOUT_SECONDS"),
		envOverrideInt(&cfg.IndustryScanWorkers, "INDUSTRY_SCAN_WORKERS"),
		envOverrideInt(&cfg.CacheTTLHours, "CACHE_TTL_HOURS"),
		envOverrideFloat(&cfg.LLMConfidence, "LLM_CONFIDENCE_THRESHOLD"),
		envOverrideFloat(&cfg.Policy.HumanBias, "POLICY_HUMAN_BIAS"),
		envOverrideFloat(&cfg.Policy.AutomateWeight, "POLICY_AUTOMATE_WEIGHT"),
		envOverrideFloat(&cfg.Policy.AugmentWeight, "POLICY_AUGMENT_WEIGHT"),
		envOverrideFloat(&cfg.Policy.LowBelow, "POLICY_LOW_BELOW"),
		envOverrideFloat(&cfg.Policy.HighAbove, "POLICY_HIGH_ABOVE"),
		envOverrideInt(&cfg.Policy.MaxAgents, "POLICY_MAX_AGENTS"),
	)
}

func applyDefaults(cfg *Config) {
	if cfg.ONetBaseURL == "" {
		cfg.ONetBaseURL = DefaultONetBaseURL
	}
	if cfg.BLSBaseURL == "" {
		cfg.BLSBaseURL = DefaultBLSBaseURL
	}
	if cfg.ExternalHTTPTimeoutSeconds == 0 {
		cfg.ExternalHTTPTimeoutSeconds = defaultExternalHTTPTimeoutSeconds
	}
	if cfg.IndustryScanWorkers == 0 {
		cfg.IndustryScanWorkers = 4
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "./onetexplorer.db"
	}
	if cfg.CacheTTLHours == 0 {
		cfg.CacheTTLHours = 24
	}
	if cfg.ReportOutputDir == "" {
		cfg.ReportOutputDir = "./reports"
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":5000"
	}
	if cfg.RefreshSchedule == "" {
		cfg.RefreshSchedule = "0 6 * * 1"
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = DefaultLLMModel
	}
	if cfg.LLMConfidence == 0 {
		cfg.LLMConfidence = 0.5
	}
	for i, code := range cfg.WatchCodes {
		cfg.WatchCodes[i] = strings.TrimSpace(code)
	}
}

// Validate checks ranges and cross-field requirements. Errors name the
// offending key.
func (c Config) Validate() error {
	if c.ExternalHTTPTimeoutSeconds < 5 {
		return fmt.Errorf("invalid external_http_timeout_seconds '%d': must be >= 5", c.ExternalHTTPTimeoutSeconds)
	}
	if c.IndustryScanWorkers < 1 || c.IndustryScanWorkers > 32 {
		return fmt.Errorf("invalid industry_scan_workers '%d': must be between 1 and 32", c.IndustryScanWorkers)
	}
	if c.CacheTTLHours < 0 {
		return fmt.Errorf("invalid cache_ttl_hours '%d': must be >= 0", c.CacheTTLHours)
	}
	if c.LLMConfidence < 0 || c.LLMConfidence > 1 {
		return fmt.Errorf("invalid llm_confidence_threshold '%f': must be between 0 and 1", c.LLMConfidence)
	}
	if c.LLMReviewEnabled && c.AnthropicAPIKey == "" {
		return fmt.Errorf("anthropic_api_key is required when llm_review_enabled=true")
	}
	if (c.SlackBotToken == "") != (c.SlackChannelID == "") {
		return fmt.Errorf("slack_bot_token and slack_channel_id must be set together")
	}
	if _, err := ParseSchedule(c.RefreshSchedule); err != nil {
		return fmt.Errorf("invalid refresh_schedule '%s': %w", c.RefreshSchedule, err)
	}
	for _, code := range c.WatchCodes {
		if code == "" {
			return fmt.Errorf("invalid watch_codes: empty occupation code")
		}
	}
	if err := c.Policy.Validate(); err != nil {
		return fmt.Errorf("invalid policy: %w", err)
	}
	if c.GlossaryPath != "" {
		if _, err := LoadGlossary(c.GlossaryPath); err != nil {
			return fmt.Errorf("invalid classifier_glossary_path '%s': %w", c.GlossaryPath, err)
		}
	}
	return nil
}

// RequireONetKey reports whether commands that call O*NET can run.
func (c Config) RequireONetKey() error {
	if strings.TrimSpace(c.ONetAPIKey) == "" {
		return ErrMissingAPIKey
	}
	return nil
}

func (c Config) SlackConfigured() bool {
	return c.SlackBotToken != "" && c.SlackChannelID != ""
}

func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLHours) * time.Hour
}

// ParseSchedule parses a five-field cron expression.
func ParseSchedule(spec string) (cron.Schedule, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	return parser.Parse(spec)
}

func envOverride(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}

func envOverrideAllowEmpty(field *string, envKey string) {
	if val, ok := os.LookupEnv(envKey); ok {
		*field = val
	}
}

func envOverrideInt(field *int, envKey string) error {
	if val := os.Getenv(envKey); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid %s '%s': %w", envKey, val, err)
		}
		*field = parsed
	}
	return nil
}

func envOverrideBool(field *bool, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = strings.EqualFold(val, "true") || val == "1"
	}
}

func envOverrideFloat(field *float64, envKey string) error {
	if val := os.Getenv(envKey); val != "" {
		parsed, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return fmt.Errorf("invalid %s '%s': %w", envKey, val, err)
		}
		*field = parsed
	}
	return nil
}

func envOverrideList(field *[]string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = nil
		for _, item := range strings.Split(val, ",") {
			item = strings.TrimSpace(item)
			if item != "" {
				*field = append(*field, item)
			}
		}
	}
}
