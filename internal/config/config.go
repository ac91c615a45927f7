package config

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultReportsURL   = "https://api-report-denuncias.agencsi.com/api"
	DefaultNominatimURL = "https://nominatim.openstreetmap.org"
)

type Config struct {
	Env      string         `json:"env"`
	Http     HttpConfig     `json:"http"`
	Redis    RedisConfig    `json:"redis"`
	Reports  ReportsConfig  `json:"reports"`
	Geocoder GeocoderConfig `json:"geocoder"`
	Web      WebConfig      `json:"web"`
}

type HttpConfig struct {
	Port            string        `json:"port"`
	ReadTimeout     time.Duration `json:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
}

type RedisConfig struct {
	Addr     string `json:"addr"`
	Password string `json:"password,omitempty"`
	DB       int    `json:"db"`

	DraftTTL    time.Duration `json:"draft_ttl"`
	FeedViewTTL time.Duration `json:"feed_view_ttl"`
}

// ReportsConfig points at the remote incident service.
type ReportsConfig struct {
	BaseURL string        `json:"base_url"`
	Timeout time.Duration `json:"timeout"`
}

type GeocoderConfig struct {
	Provider          string        `json:"provider"`
	BaseURL           string        `json:"base_url"`
	UserAgent         string        `json:"user_agent"`
	CountryCodes      string        `json:"country_codes"`
	GoogleAPIKey      string        `json:"google_api_key,omitempty"`
	RequestsPerSecond float64       `json:"requests_per_second"`
	Timeout           time.Duration `json:"timeout"`
}

type WebConfig struct {
	AllowedOrigins []string `json:"allowed_origins"`
}

func Load(ctx context.Context) (*Config, error) {

	stdLogger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		stdLogger.Warn(".env load warning", slog.Any("error", err))
	}

	cfg := &Config{
		Env: getEnv("ENV", "local"),
		Http: HttpConfig{
			Port:            getEnv("HTTP_PORT", ":8080"),
			ReadTimeout:     getEnvDuration("HTTP_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvDuration("HTTP_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getEnvDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Redis: RedisConfig{
			Addr:        getEnv("REDIS_ADDR", "redis-local:6379"),
			Password:    getEnv("REDIS_PASSWORD", ""),
			DB:          getEnvInt("REDIS_DB", 0),
			DraftTTL:    getEnvDuration("REDIS_DRAFT_TTL", 2*time.Hour),
			FeedViewTTL: getEnvDuration("REDIS_FEED_VIEW_TTL", 30*time.Minute),
		},
		Reports: ReportsConfig{
			BaseURL: getEnv("REPORTS_BASE_URL", DefaultReportsURL),
			Timeout: getEnvDuration("REPORTS_TIMEOUT", 15*time.Second),
		},
		Geocoder: GeocoderConfig{
			Provider:          getEnv("GEOCODER_PROVIDER", "nominatim"),
			BaseURL:           getEnv("GEOCODER_BASE_URL", DefaultNominatimURL),
			UserAgent:         getEnv("GEOCODER_USER_AGENT", "denuncias-map/1.0"),
			CountryCodes:      getEnv("GEOCODER_COUNTRY_CODES", "pe"),
			GoogleAPIKey:      getEnv("GEOCODER_GOOGLE_API_KEY", ""),
			RequestsPerSecond: getEnvFloat("GEOCODER_RPS", 1),
			Timeout:           getEnvDuration("GEOCODER_TIMEOUT", 10*time.Second),
		},
		Web: WebConfig{
			AllowedOrigins: getEnvList("WEB_ALLOWED_ORIGINS", []string{"*"}),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	stdLogger.Info("Config loaded successfully",
		slog.String("env", cfg.Env),
		slog.String("http_port", cfg.Http.Port),
		slog.String("redis_addr", cfg.Redis.Addr),
		slog.String("reports_url", cfg.Reports.BaseURL),
		slog.String("geocoder", cfg.Geocoder.Provider))

	return cfg, nil
}

func (c *Config) Validate() error {

	if c.Http.Port == "" || (len(c.Http.Port) > 0 && c.Http.Port[0] != ':') {
		return errors.New("HTTP_PORT must start with ':' like ':8080'")
	}

	if c.Redis.Addr == "" {
		return errors.New("REDIS_ADDR required")
	}

	if u, err := url.Parse(c.Reports.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("REPORTS_BASE_URL must be an absolute URL")
	}

	switch c.Geocoder.Provider {
	case "nominatim":
		if c.Geocoder.BaseURL == "" {
			return errors.New("GEOCODER_BASE_URL required for nominatim")
		}
	case "google":
		if c.Geocoder.GoogleAPIKey == "" {
			return errors.New("GEOCODER_GOOGLE_API_KEY required for google")
		}
	default:
		return errors.New("GEOCODER_PROVIDER must be nominatim or google")
	}

	if c.Geocoder.RequestsPerSecond > 1 && c.Geocoder.Provider == "nominatim" && c.Geocoder.BaseURL == DefaultNominatimURL {
		slog.Warn("public Nominatim allows at most 1 request per second", slog.Float64("rps", c.Geocoder.RequestsPerSecond))
	}

	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
