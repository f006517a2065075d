package settings

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lepidus/oaswitchboard/switchboard"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", `
email: iris@lepidus.com.br
password: secret
profile: registry
timeout: 10s
max_retries: 3
rate_limit: 0.5
locale: pt_BR
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Path != path {
		t.Errorf("Path = %q", cfg.Path)
	}
	if cfg.Email != "iris@lepidus.com.br" || !cfg.HasCredentials() {
		t.Errorf("credentials not loaded: %+v", cfg)
	}
	if cfg.Profile != "registry" || cfg.Locale != "pt_BR" {
		t.Errorf("Profile/Locale = %q/%q", cfg.Profile, cfg.Locale)
	}
	if cfg.Timeout != 10*time.Second || cfg.MaxRetries != 3 || cfg.RateLimit != 0.5 {
		t.Errorf("Timeout/MaxRetries/RateLimit = %v/%d/%v", cfg.Timeout, cfg.MaxRetries, cfg.RateLimit)
	}
	if cfg.BaseURL != switchboard.BaseURL {
		t.Errorf("BaseURL default lost: %q", cfg.BaseURL)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", "email: file@example.org\nmax_retries: 1\n")
	t.Setenv("OASB_EMAIL", "env@example.org")
	t.Setenv("OASB_MAX_RETRIES", "4")
	t.Setenv("OASB_TIMEOUT", "2m")
	t.Setenv("OASB_BASE_URL", "https://api.oaswitchboard.org/v2/")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Email != "env@example.org" || cfg.MaxRetries != 4 || cfg.Timeout != 2*time.Minute {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
	if cfg.BaseURL != "https://api.oaswitchboard.org/v2/" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		path string
		env  map[string]string
	}{
		{"missing explicit file", filepath.Join(dir, "absent.yaml"), nil},
		{"malformed yaml", writeFile(t, dir, "bad.yaml", "email: [\n"), nil},
		{"bad timeout", writeFile(t, dir, "ok.yaml", ""), map[string]string{"OASB_TIMEOUT": "soon"}},
		{"negative retries", writeFile(t, dir, "neg.yaml", "max_retries: -1\n"), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(tt.path); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ".env", "OASB_PASSWORD=from-dotenv\nOASB_EMAIL=dotenv@example.org\n")
	t.Setenv("OASB_EMAIL", "already@example.org")
	// Registered so t.Setenv restores it after LoadDotEnv sets it.
	t.Setenv("OASB_PASSWORD", "")
	os.Unsetenv("OASB_PASSWORD")

	if err := LoadDotEnv(filepath.Join(dir, "missing.env"), path); err != nil {
		t.Fatalf("LoadDotEnv() error: %v", err)
	}
	if got := os.Getenv("OASB_PASSWORD"); got != "from-dotenv" {
		t.Errorf("OASB_PASSWORD = %q", got)
	}
	if got := os.Getenv("OASB_EMAIL"); got != "already@example.org" {
		t.Errorf("existing variable overridden: %q", got)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Profile != "server" || cfg.Timeout != switchboard.DefaultTimeout || cfg.HasCredentials() {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if filepath.Base(cfg.LedgerPath) != "ledger.db" {
		t.Errorf("LedgerPath = %q", cfg.LedgerPath)
	}
}
