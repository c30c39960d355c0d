package config

import (
	"strings"
	"testing"
)

func productionConfig() *Config {
	return &Config{
		Environment:        EnvProduction,
		MediaBaseURL:       "https://media.ecoleta.example/uploads",
		UploadMaxBytes:     1 << 20,
		CORSAllowedOrigins: "https://ecoleta.example",
		LogLevel:           "info",
	}
}

func TestValidateForProduction_NonProductionIsNoop(t *testing.T) {
	cfg := &Config{Environment: EnvDevelopment, CORSAllowedOrigins: "*", LogLevel: "debug"}
	if err := ValidateForProduction(cfg); err != nil {
		t.Fatalf("expected nil for development, got %v", err)
	}
}

func TestValidateForProduction_Valid(t *testing.T) {
	if err := ValidateForProduction(productionConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateForProduction_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"relative media base", func(c *Config) { c.MediaBaseURL = "/uploads" }, "MEDIA_BASE_URL"},
		{"localhost media base", func(c *Config) { c.MediaBaseURL = "http://localhost:3333/uploads" }, "localhost"},
		{"wildcard cors", func(c *Config) { c.CORSAllowedOrigins = "*" }, "CORS_ALLOWED_ORIGINS"},
		{"debug logging", func(c *Config) { c.LogLevel = "debug" }, "LOG_LEVEL"},
		{"zero upload limit", func(c *Config) { c.UploadMaxBytes = 0 }, "UPLOAD_MAX_BYTES"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := productionConfig()
			tt.mutate(cfg)
			err := ValidateForProduction(cfg)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected %q in error, got %q", tt.want, err.Error())
			}
		})
	}
}

func TestNormalizeMediaBase(t *testing.T) {
	tests := map[string]string{
		"http://host/uploads":    "http://host/uploads",
		"http://host/uploads/":   "http://host/uploads",
		"http://host/uploads//":  "http://host/uploads",
		" http://host/uploads/ ": "http://host/uploads",
	}
	for in, want := range tests {
		if got := NormalizeMediaBase(in); got != want {
			t.Errorf("NormalizeMediaBase(%q) = %q, want %q", in, got, want)
		}
	}
}
