package config

import (
	"context"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HTTP_PORT", "")
	t.Setenv("GEOCODER_PROVIDER", "")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Http.Port != ":8080" {
		t.Fatalf("port=%q", cfg.Http.Port)
	}
	if cfg.Reports.BaseURL != DefaultReportsURL {
		t.Fatalf("reports url=%q", cfg.Reports.BaseURL)
	}
	if cfg.Geocoder.Provider != "nominatim" || cfg.Geocoder.RequestsPerSecond != 1 {
		t.Fatalf("geocoder=%+v", cfg.Geocoder)
	}
	if cfg.Redis.DraftTTL != 2*time.Hour {
		t.Fatalf("draft ttl=%v", cfg.Redis.DraftTTL)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_PORT", ":9090")
	t.Setenv("REPORTS_BASE_URL", "http://reports.local/api")
	t.Setenv("GEOCODER_RPS", "0.5")
	t.Setenv("WEB_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Http.Port != ":9090" || cfg.Reports.BaseURL != "http://reports.local/api" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if cfg.Geocoder.RequestsPerSecond != 0.5 {
		t.Fatalf("rps=%v", cfg.Geocoder.RequestsPerSecond)
	}
	if len(cfg.Web.AllowedOrigins) != 2 || cfg.Web.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("origins=%v", cfg.Web.AllowedOrigins)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Http:     HttpConfig{Port: ":8080"},
			Redis:    RedisConfig{Addr: "localhost:6379"},
			Reports:  ReportsConfig{BaseURL: DefaultReportsURL},
			Geocoder: GeocoderConfig{Provider: "nominatim", BaseURL: DefaultNominatimURL},
		}
	}

	if err := base().Validate(); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	cases := map[string]func(c *Config){
		"port without colon": func(c *Config) { c.Http.Port = "8080" },
		"relative reports":   func(c *Config) { c.Reports.BaseURL = "/api" },
		"google without key": func(c *Config) { c.Geocoder.Provider = "google" },
		"unknown provider":   func(c *Config) { c.Geocoder.Provider = "bing" },
		"empty redis":        func(c *Config) { c.Redis.Addr = "" },
	}
	for name, mutate := range cases {
		c := base()
		mutate(c)
		if err := c.Validate(); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}
