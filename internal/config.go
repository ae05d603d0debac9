package internal

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/moodlog/internal/summarizer"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Analysis types accepted by analysis.default_type.
const (
	AnalysisWeekly  = "weekly"
	AnalysisMonthly = "monthly"
	AnalysisBoth    = "both"
)

// Config represents the application configuration.
type Config struct {
	App        ApplicationConfig `yaml:"app"`
	Journal    JournalConfig     `yaml:"journal"`
	SQLite     SQLiteConfig      `yaml:"sqlite"`
	Auth       AuthConfig        `yaml:"auth"`
	Summarizer SummarizerConfig  `yaml:"summarizer"`
	Events     EventsConfig      `yaml:"events"`
	Analysis   AnalysisConfig    `yaml:"analysis"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validators := []interface{ Validate() error }{
		&c.App, &c.Journal, &c.SQLite, &c.Auth, &c.Summarizer, &c.Events, &c.Analysis,
	}
	for _, v := range validators {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// JournalConfig locates the log documents.
type JournalConfig struct {
	Path            string   `yaml:"path"`
	DefaultDocument string   `yaml:"default_document"`
	Extensions      []string `yaml:"extensions"`
}

// Validate validates the journal configuration.
func (c *JournalConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
		validation.Field(&c.DefaultDocument, validation.Required),
		validation.Field(&c.Extensions, validation.Each(validation.Required, validation.Length(2, 0))),
	)
}

// SQLiteConfig holds SQLite database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AuthConfig holds authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local use.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// SummarizerConfig selects the language model used for analyses.
// An empty APIKey leaves analysis disabled without failing startup.
type SummarizerConfig struct {
	Provider  string        `yaml:"provider"`
	APIKey    string        `yaml:"api_key"`
	Model     string        `yaml:"model"`
	BaseURL   string        `yaml:"base_url"`
	MaxTokens int           `yaml:"max_tokens"`
	Timeout   time.Duration `yaml:"timeout"`
}

// Validate validates the summarizer configuration.
func (c *SummarizerConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Provider, validation.In(
			summarizer.ProviderGemini, summarizer.ProviderAnthropic, summarizer.ProviderNone)),
		validation.Field(&c.MaxTokens, validation.Min(0), validation.Max(8192)),
		validation.Field(&c.Timeout, validation.Min(time.Duration(0))),
	)
}

// Params converts the configuration into summarizer parameters.
func (c *SummarizerConfig) Params() summarizer.Config {
	return summarizer.Config{
		Provider:  c.Provider,
		APIKey:    c.APIKey,
		Model:     c.Model,
		BaseURL:   c.BaseURL,
		MaxTokens: c.MaxTokens,
		Timeout:   c.Timeout,
	}
}

// EventsConfig configures the optional NATS event bus.
type EventsConfig struct {
	NATSURL       string `yaml:"nats_url"`
	Token         string `yaml:"token"`
	SubjectPrefix string `yaml:"subject_prefix"`
}

// Validate validates the events configuration.
func (c *EventsConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.SubjectPrefix, validation.Required.When(c.NATSURL != "")),
	)
}

// Enabled reports whether events go to NATS.
func (c *EventsConfig) Enabled() bool {
	return c.NATSURL != ""
}

// AnalysisConfig holds defaults for analysis runs.
type AnalysisConfig struct {
	DefaultType string `yaml:"default_type"`
	WriteBack   bool   `yaml:"write_back"`
}

// Validate validates the analysis configuration.
func (c *AnalysisConfig) Validate() error {
	if c.DefaultType == "" {
		c.DefaultType = AnalysisBoth
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.DefaultType, validation.In(AnalysisWeekly, AnalysisMonthly, AnalysisBoth)),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Journal: JournalConfig{
			Path:            "./journal",
			DefaultDocument: "productivity_log.txt",
			Extensions:      []string{".txt", ".md"},
		},
		SQLite: SQLiteConfig{
			Path: "./moodlog.db",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
		Summarizer: SummarizerConfig{
			Provider:  summarizer.ProviderGemini,
			MaxTokens: 512,
			Timeout:   120 * time.Second,
		},
		Events: EventsConfig{
			SubjectPrefix: "moodlog",
		},
		Analysis: AnalysisConfig{
			DefaultType: AnalysisBoth,
		},
	}
}
