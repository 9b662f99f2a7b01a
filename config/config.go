package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// SerpApi defaults
const SERPAPI_ENDPOINT_BASE = "https://serpapi.com"
const SERPAPI_ENGINE = "google_events"
const SERPAPI_TIMEOUT_SECONDS = 10

// Events cache defaults
const EVENTS_CACHE_TTL_MINUTES = 15

// Resources file paths
const RESOURCES_PATH_PREFIX = "resources"
const SEARCH_EVENTS_RESPONSE_RESOURCE = "search_events_response.json"

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	SerpApi   SerpApiConfig   `yaml:"serpapi"`
	Redis     RedisConfig     `yaml:"redis"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	CORS      CORSConfig      `yaml:"cors"`
	Logging   LoggingConfig   `yaml:"logging"`
	// Timezone is the IANA zone used to decide what "today" means.
	Timezone    string `yaml:"timezone"`
	Environment string `yaml:"environment"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type SerpApiConfig struct {
	BaseURL string        `yaml:"base_url"`
	APIKey  string        `yaml:"api_key"`
	Timeout time.Duration `yaml:"timeout"`
	// UseMock serves a bundled fixture instead of calling the provider.
	UseMock bool `yaml:"use_mock"`
}

// RedisConfig configures the optional events cache. An empty Addr disables it.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
	// RefreshInterval re-fetches every cached city on this period. 0 disables it.
	RefreshInterval time.Duration `yaml:"refresh_interval"`
}

type RateLimitConfig struct {
	// EventsPerMinute is the per-client budget for /api/events. 0 disables limiting.
	EventsPerMinute int `yaml:"events_per_minute"`
	// TrustedProxyCIDRs are the networks whose X-Forwarded-For header is believed.
	TrustedProxyCIDRs []string `yaml:"trusted_proxy_cidrs"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server:      ServerConfig{Host: "0.0.0.0", Port: 3000},
		SerpApi:     SerpApiConfig{BaseURL: SERPAPI_ENDPOINT_BASE, Timeout: SERPAPI_TIMEOUT_SECONDS * time.Second},
		Redis:       RedisConfig{TTL: EVENTS_CACHE_TTL_MINUTES * time.Minute},
		RateLimit:   RateLimitConfig{EventsPerMinute: 30},
		CORS:        CORSConfig{AllowedOrigins: []string{"*"}},
		Logging:     LoggingConfig{Level: "info", Format: "json"},
		Timezone:    "Local",
		Environment: "development",
	}
}

// Load builds the configuration from defaults, the optional YAML file at path
// and finally the environment. A missing API key is not an error here: the
// server starts and answers /api/events with a configuration error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %q: %w", path, err)
		}
	}

	cfg.Server.Host = getEnv("HOST", cfg.Server.Host)
	cfg.Server.Port = getEnvInt("PORT", cfg.Server.Port)
	cfg.SerpApi.BaseURL = getEnv("SERPAPI_BASE_URL", cfg.SerpApi.BaseURL)
	cfg.SerpApi.APIKey = getEnv("SERPAPI_API_KEY", getEnv("api_key", cfg.SerpApi.APIKey))
	cfg.SerpApi.Timeout = time.Duration(getEnvInt("SERPAPI_TIMEOUT_SECONDS", int(cfg.SerpApi.Timeout/time.Second))) * time.Second
	cfg.SerpApi.UseMock = getEnvBool("SERPAPI_USE_MOCK", cfg.SerpApi.UseMock)
	cfg.Redis.Addr = getEnv("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = getEnvInt("REDIS_DB", cfg.Redis.DB)
	cfg.Redis.TTL = time.Duration(getEnvInt("EVENTS_CACHE_TTL_MINUTES", int(cfg.Redis.TTL/time.Minute))) * time.Minute
	cfg.Redis.RefreshInterval = time.Duration(getEnvInt("EVENTS_CACHE_REFRESH_MINUTES", int(cfg.Redis.RefreshInterval/time.Minute))) * time.Minute
	cfg.RateLimit.EventsPerMinute = getEnvInt("RATE_LIMIT_EVENTS", cfg.RateLimit.EventsPerMinute)
	if cidrs := getEnv("TRUSTED_PROXY_CIDRS", ""); cidrs != "" {
		cfg.RateLimit.TrustedProxyCIDRs = splitList(cidrs)
	}
	if origins := getEnv("CORS_ALLOWED_ORIGINS", ""); origins != "" {
		cfg.CORS.AllowedOrigins = splitList(origins)
	}
	cfg.Logging.Level = getEnv("LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = getEnv("LOG_FORMAT", cfg.Logging.Format)
	cfg.Timezone = getEnv("TIMEZONE", cfg.Timezone)
	cfg.Environment = getEnv("ENVIRONMENT", cfg.Environment)

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return Config{}, fmt.Errorf("invalid port %d", cfg.Server.Port)
	}
	if _, err := cfg.Location(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Location resolves Timezone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Addr is the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// BaseDir returns the absolute path of the project root directory
func BaseDir() string {
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return root
	}

	wd, err := os.Getwd()
	if err != nil {
		panic("Unable to determine working directory: " + err.Error())
	}

	return wd
}

func GetResourcePath(resourceFile string) string {
	return filepath.Join(BaseDir(), RESOURCES_PATH_PREFIX, resourceFile)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
