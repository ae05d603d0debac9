package internal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	pkgconfig "github.com/starford/moodlog/pkg/config"
)

func TestAuthConfig_DisabledMode(t *testing.T) {
	cfg := AuthConfig{Mode: "disabled", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled mode should pass: %v", err)
	}
	if cfg.AuthEnabled() {
		t.Error("disabled mode should not be enabled")
	}
}

func TestAuthConfig_EmptyModeDefaultsDisabled(t *testing.T) {
	cfg := AuthConfig{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty mode should default to disabled: %v", err)
	}
	if cfg.Mode != AuthModeDisabled {
		t.Errorf("mode = %q, want %q", cfg.Mode, AuthModeDisabled)
	}
}

func TestAuthConfig_TokenModeEmptyToken(t *testing.T) {
	cfg := AuthConfig{Mode: "token"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("token mode with empty token should fail")
	}
	if !strings.Contains(err.Error(), "token is empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAuthConfig_InvalidMode(t *testing.T) {
	cfg := AuthConfig{Mode: "magic", Token: "x"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("invalid mode should fail validation")
	}
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Events.Enabled() {
		t.Error("events should be disabled by default")
	}
}

func TestSummarizerConfig_UnknownProvider(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Summarizer.Provider = "openai"
	if err := cfg.Validate(); err == nil {
		t.Fatal("unknown provider should fail validation")
	}
}

func TestSummarizerConfig_Params(t *testing.T) {
	c := SummarizerConfig{Provider: "anthropic", APIKey: "k", Model: "m", MaxTokens: 100, Timeout: time.Second}
	p := c.Params()
	if p.Provider != "anthropic" || p.APIKey != "k" || p.Model != "m" || p.MaxTokens != 100 || p.Timeout != time.Second {
		t.Errorf("params = %+v", p)
	}
}

func TestEventsConfig_PrefixRequiredWithURL(t *testing.T) {
	cfg := EventsConfig{NATSURL: "nats://localhost:4222"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing subject prefix")
	}
	cfg.SubjectPrefix = "moodlog"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAnalysisConfig_DefaultsToBoth(t *testing.T) {
	cfg := AnalysisConfig{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DefaultType != AnalysisBoth {
		t.Errorf("default type = %q, want %q", cfg.DefaultType, AnalysisBoth)
	}
	cfg.DefaultType = "daily"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown analysis type")
	}
}

func TestJournalConfig_BadExtension(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Journal.Extensions = []string{".txt", ""}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty extension")
	}
}

func TestLoad_YAMLWithEnvExpansion(t *testing.T) {
	t.Setenv("MOODLOG_TEST_KEY", "secret-key")
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `app:
  log_level: debug
  http:
    port: 9090
journal:
  path: /tmp/journal
  default_document: log.txt
sqlite:
  path: /tmp/moodlog.db
summarizer:
  provider: gemini
  api_key: ${MOODLOG_TEST_KEY}
  timeout: 30s
analysis:
  default_type: weekly
  write_back: true
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := NewDefaultConfig()
	if err := pkgconfig.Load(path, cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.HTTP.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.App.HTTP.Port)
	}
	if cfg.App.LogLevel.String() != "DEBUG" {
		t.Errorf("log level = %s, want DEBUG", cfg.App.LogLevel)
	}
	if cfg.Summarizer.APIKey != "secret-key" {
		t.Errorf("api key = %q, want expanded env value", cfg.Summarizer.APIKey)
	}
	if cfg.Summarizer.Timeout != 30*time.Second {
		t.Errorf("timeout = %s, want 30s", cfg.Summarizer.Timeout)
	}
	if !cfg.Analysis.WriteBack || cfg.Analysis.DefaultType != AnalysisWeekly {
		t.Errorf("analysis = %+v", cfg.Analysis)
	}
	// Keys absent from the file keep their defaults.
	if len(cfg.Journal.Extensions) != 2 {
		t.Errorf("extensions = %v, want defaults", cfg.Journal.Extensions)
	}
}
