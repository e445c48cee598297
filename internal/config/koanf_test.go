// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// chdirTemp moves the test into an empty directory so no config.yaml is found.
func chdirTemp(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 8501 {
		t.Errorf("Server.Port = %d, want 8501", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0", cfg.Server.Host)
	}
	if cfg.Artifacts.Backend != "file" || cfg.Artifacts.Path != "artifacts" {
		t.Errorf("Artifacts = %+v, want file/artifacts", cfg.Artifacts)
	}
	if cfg.Recommend.Neighbors != 6 || cfg.Recommend.Results != 5 {
		t.Errorf("Recommend = %+v, want 6 neighbors, 5 results", cfg.Recommend)
	}
	if cfg.Recommend.ExcludeSelfByIdentity {
		t.Error("Recommend.ExcludeSelfByIdentity should be false by default")
	}
	if cfg.Theme.Default != "light" {
		t.Errorf("Theme.Default = %q, want light", cfg.Theme.Default)
	}
	if cfg.Security.RateLimitWindow != time.Minute {
		t.Errorf("Security.RateLimitWindow = %v, want 1m", cfg.Security.RateLimitWindow)
	}
	if !cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled should be true by default")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestLoadWithKoanf_Defaults(t *testing.T) {
	chdirTemp(t)
	t.Setenv(ConfigPathEnvVar, "")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf: %v", err)
	}

	if cfg.Server.Port != 8501 {
		t.Errorf("Server.Port = %d, want 8501", cfg.Server.Port)
	}
	if len(cfg.Security.CORSOrigins) != 1 || cfg.Security.CORSOrigins[0] != "*" {
		t.Errorf("Security.CORSOrigins = %v, want [*]", cfg.Security.CORSOrigins)
	}
	if cfg.Recommend.Timeout != 5*time.Second {
		t.Errorf("Recommend.Timeout = %v, want 5s", cfg.Recommend.Timeout)
	}
}

func TestLoadWithKoanf_EnvOverrides(t *testing.T) {
	chdirTemp(t)
	t.Setenv(ConfigPathEnvVar, "")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("HTTP_TIMEOUT", "45s")
	t.Setenv("ARTIFACTS_BACKEND", "badger")
	t.Setenv("ARTIFACTS_PATH", "/data/folio")
	t.Setenv("RECOMMEND_NEIGHBORS", "11")
	t.Setenv("RECOMMEND_RESULTS", "10")
	t.Setenv("RECOMMEND_EXCLUDE_SELF_BY_IDENTITY", "true")
	t.Setenv("RECOMMEND_TIMEOUT", "250ms")
	t.Setenv("THEME_DEFAULT", "dark")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("RATE_LIMIT_REQUESTS", "20")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "console")
	t.Setenv("LOG_CALLER", "true")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Server.Timeout != 45*time.Second {
		t.Errorf("Server.Timeout = %v, want 45s", cfg.Server.Timeout)
	}
	if cfg.Artifacts.Backend != "badger" || cfg.Artifacts.Path != "/data/folio" {
		t.Errorf("Artifacts = %+v", cfg.Artifacts)
	}
	if cfg.Recommend.Neighbors != 11 || cfg.Recommend.Results != 10 {
		t.Errorf("Recommend = %+v", cfg.Recommend)
	}
	if !cfg.Recommend.ExcludeSelfByIdentity {
		t.Error("Recommend.ExcludeSelfByIdentity = false, want true")
	}
	if cfg.Recommend.Timeout != 250*time.Millisecond {
		t.Errorf("Recommend.Timeout = %v, want 250ms", cfg.Recommend.Timeout)
	}
	if cfg.Theme.Default != "dark" {
		t.Errorf("Theme.Default = %q, want dark", cfg.Theme.Default)
	}
	want := []string{"https://a.example", "https://b.example"}
	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[0] != want[0] || cfg.Security.CORSOrigins[1] != want[1] {
		t.Errorf("Security.CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
	if cfg.Security.RateLimitReqs != 20 || cfg.Security.RateLimitWindow != 30*time.Second {
		t.Errorf("Security = %+v", cfg.Security)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "console" || !cfg.Logging.Caller {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	if cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled = true, want false")
	}
}

func TestLoadWithKoanf_ConfigFile(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "folio.yaml")
	yaml := `
server:
  port: 7000
artifacts:
  backend: duckdb
  path: /srv/books
recommend:
  exclude_self_by_identity: true
theme:
  default: dark
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	// Environment still wins over the file.
	t.Setenv("HTTP_PORT", "7001")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf: %v", err)
	}

	if cfg.Server.Port != 7001 {
		t.Errorf("Server.Port = %d, want 7001 from env", cfg.Server.Port)
	}
	if cfg.Artifacts.Backend != "duckdb" || cfg.Artifacts.Path != "/srv/books" {
		t.Errorf("Artifacts = %+v", cfg.Artifacts)
	}
	if !cfg.Recommend.ExcludeSelfByIdentity {
		t.Error("Recommend.ExcludeSelfByIdentity = false, want true from file")
	}
	if cfg.Recommend.Neighbors != 6 {
		t.Errorf("Recommend.Neighbors = %d, want default 6", cfg.Recommend.Neighbors)
	}
	if cfg.Theme.Default != "dark" {
		t.Errorf("Theme.Default = %q, want dark", cfg.Theme.Default)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadWithKoanf_InvalidEnv(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{name: "port out of range", key: "HTTP_PORT", value: "70000", wantErr: "HTTP_PORT"},
		{name: "unknown backend", key: "ARTIFACTS_BACKEND", value: "s3", wantErr: "ARTIFACTS_BACKEND"},
		{name: "results too large", key: "RECOMMEND_RESULTS", value: "6", wantErr: "RECOMMEND_RESULTS"},
		{name: "bad theme", key: "THEME_DEFAULT", value: "sepia", wantErr: "THEME_DEFAULT"},
		{name: "bad log level", key: "LOG_LEVEL", value: "loud", wantErr: "LOG_LEVEL"},
		{name: "bad rate window", key: "RATE_LIMIT_WINDOW", value: "2h", wantErr: "RATE_LIMIT_WINDOW"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdirTemp(t)
			t.Setenv(ConfigPathEnvVar, "")
			t.Setenv(tt.key, tt.value)

			_, err := LoadWithKoanf()
			if err == nil {
				t.Fatalf("expected error for %s=%s", tt.key, tt.value)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %s", err, tt.wantErr)
			}
		})
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"HTTP_PORT", "server.port"},
		{"ARTIFACTS_BACKEND", "artifacts.backend"},
		{"RECOMMEND_EXCLUDE_SELF_BY_IDENTITY", "recommend.exclude_self_by_identity"},
		{"DISABLE_RATE_LIMIT", "security.rate_limit_disabled"},
		{"RATE_LIMIT_REQUESTS", "security.rate_limit_reqs"},
		{"log_level", "logging.level"},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := envTransformFunc(tt.input); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidate_RateLimitDisabledSkipsBounds(t *testing.T) {
	cfg := defaultConfig()
	cfg.Security.RateLimitDisabled = true
	cfg.Security.RateLimitReqs = 0

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil when rate limiting is disabled", err)
	}
}

func TestServerConfig_Addr(t *testing.T) {
	s := ServerConfig{Host: "127.0.0.1", Port: 8501}
	if got := s.Addr(); got != "127.0.0.1:8501" {
		t.Errorf("Addr() = %q", got)
	}
}

func TestHasWildcardCORS(t *testing.T) {
	cfg := defaultConfig()
	if !cfg.HasWildcardCORS() {
		t.Error("default CORS should be wildcard")
	}
	cfg.Security.CORSOrigins = []string{"https://folio.example"}
	if cfg.HasWildcardCORS() {
		t.Error("explicit origins reported as wildcard")
	}
}
