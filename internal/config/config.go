package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"ndasearch/internal/normalize"
)

// SourceConfig tunes one registry adapter. Zero values fall back to the
// adapter's own defaults.
type SourceConfig struct {
	Enabled       *bool         `yaml:"enabled"`
	BaseURL       string        `yaml:"base_url"`
	Timeout       time.Duration `yaml:"timeout"`
	PageSize      int           `yaml:"page_size"`
	RatePerSecond float64       `yaml:"rate_per_second"`
	Burst         int           `yaml:"burst"`
}

// IsEnabled treats an unset flag as enabled.
func (s SourceConfig) IsEnabled() bool { return s.Enabled == nil || *s.Enabled }

type Sources struct {
	CompaniesHouse SourceConfig `yaml:"companies_house"`
	Estonia        SourceConfig `yaml:"estonia"`
	ARES           SourceConfig `yaml:"ares"`
	OpenCorporates SourceConfig `yaml:"opencorporates"`
}

// NormalizeOverlay extends the built-in normalizer tables.
type NormalizeOverlay struct {
	Jurisdictions map[string]string            `yaml:"jurisdictions"`
	Statuses      map[string]map[string]string `yaml:"statuses"`
}

// Tables returns the built-in tables with the overlay applied.
func (o NormalizeOverlay) Tables() normalize.Tables {
	extra := normalize.Tables{
		Jurisdictions: o.Jurisdictions,
		Statuses:      make(map[string]normalize.StatusTable, len(o.Statuses)),
	}
	for reg, codes := range o.Statuses {
		extra.Statuses[reg] = normalize.StatusTable{Codes: codes}
	}
	return normalize.DefaultTables().Merge(extra)
}

type Config struct {
	Env              string `yaml:"-"`
	ListenAddr       string `yaml:"listen_addr"`
	DatabaseURL      string `yaml:"-"`
	SearchLogWorkers int    `yaml:"search_log_workers"`

	PageSize      int           `yaml:"page_size"`
	SourceTimeout time.Duration `yaml:"source_timeout"`

	RateLimitRPS   float64 `yaml:"rate_limit_rps"`
	RateLimitBurst int     `yaml:"rate_limit_burst"`
	// TrustProxyHeaders keys the rate limiter on X-Forwarded-For/X-Real-IP.
	TrustProxyHeaders bool `yaml:"trust_proxy_headers"`

	CompaniesHouseAPIKey        string   `yaml:"-"`
	OpenCorporatesAPIToken      string   `yaml:"-"`
	OpenCorporatesJurisdictions []string `yaml:"opencorporates_jurisdictions"`
	DetailHosts                 []string `yaml:"detail_hosts"`

	Sources   Sources          `yaml:"sources"`
	Normalize NormalizeOverlay `yaml:"normalize"`
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Load reads CONFIG_FILE (optional YAML) and then applies environment
// overrides. Secrets are only read from the environment.
func Load() (Config, error) {
	cfg := Config{
		ListenAddr:       ":8080",
		SearchLogWorkers: 2,
		PageSize:         12,
		SourceTimeout:    12 * time.Second,
		RateLimitRPS:     5,
		RateLimitBurst:   10,
	}
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.Env = getenv("APP_ENV", "development")
	cfg.ListenAddr = getenv("LISTEN_ADDR", cfg.ListenAddr)
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.SearchLogWorkers = getenvInt("SEARCH_LOG_WORKERS", cfg.SearchLogWorkers)
	cfg.PageSize = getenvInt("RESULT_PAGE_SIZE", cfg.PageSize)
	cfg.SourceTimeout = getenvDuration("SOURCE_TIMEOUT", cfg.SourceTimeout)
	cfg.RateLimitRPS = getenvFloat("RATE_LIMIT_RPS", cfg.RateLimitRPS)
	cfg.RateLimitBurst = getenvInt("RATE_LIMIT_BURST", cfg.RateLimitBurst)
	cfg.TrustProxyHeaders = getenvBool("TRUST_PROXY_HEADERS", cfg.TrustProxyHeaders)
	cfg.CompaniesHouseAPIKey = os.Getenv("COMPANIES_HOUSE_API_KEY")
	cfg.OpenCorporatesAPIToken = os.Getenv("OPENCORPORATES_API_TOKEN")
	cfg.OpenCorporatesJurisdictions = getenvList("OPENCORPORATES_JURISDICTIONS", cfg.OpenCorporatesJurisdictions)

	if cfg.PageSize < 1 {
		return cfg, fmt.Errorf("page size must be positive, got %d", cfg.PageSize)
	}
	return cfg, nil
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if out, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return out
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if out, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return out
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if out, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return out
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if out, err := time.ParseDuration(strings.TrimSpace(v)); err == nil {
			return out
		}
	}
	return def
}

func getenvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
