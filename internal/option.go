package internal

import (
	"io"
	"log/slog"

	"github.com/starford/moodlog/internal/events"
	"github.com/starford/moodlog/internal/summarizer"
)

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config *Config
	logger *slog.Logger
	summ   summarizer.Summarizer
	pub    events.Publisher
	out    io.Writer
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithLogger replaces the JSON logger built from the configuration.
func WithLogger(l *slog.Logger) Option {
	return func(a *application) {
		a.logger = l
	}
}

// WithSummarizer replaces the summarizer built from the configuration.
func WithSummarizer(s summarizer.Summarizer) Option {
	return func(a *application) {
		a.summ = s
	}
}

// WithPublisher adds an event sink next to the configured ones.
func WithPublisher(p events.Publisher) Option {
	return func(a *application) {
		a.pub = p
	}
}

// WithOutput sets where command results are printed. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(a *application) {
		a.out = w
	}
}
