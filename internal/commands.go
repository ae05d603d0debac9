package internal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/starford/moodlog/internal/apperr"
	"github.com/starford/moodlog/internal/mcpserver"
	"github.com/starford/moodlog/internal/models"
	"github.com/starford/moodlog/internal/parser"
	"github.com/starford/moodlog/internal/storage"
	"github.com/starford/moodlog/internal/summarizer"
	"github.com/starford/moodlog/internal/tracker"
)

// Terminal styles for command output.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF"))

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFF00"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// AnalyzeOptions selects the document and analysis type for RunAnalyze.
// Empty fields fall back to the configuration.
type AnalyzeOptions struct {
	Document  string
	Type      string
	WriteBack bool
}

// RunAnalyze summarizes a journal document and prints the result.
func RunAnalyze(ctx context.Context, req AnalyzeOptions, opts ...Option) error {
	app, err := newApplication(os.Stderr, opts...)
	if err != nil {
		return err
	}
	cfg := app.config

	if req.Document == "" {
		req.Document = cfg.Journal.DefaultDocument
	}
	if req.Type == "" {
		req.Type = cfg.Analysis.DefaultType
	}
	if _, err := tracker.ParseAnalysisType(req.Type); err != nil {
		return err
	}

	rt, err := app.open(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	results, err := rt.svc.Analyze(ctx, tracker.AnalyzeRequest{
		Path:      req.Document,
		Type:      req.Type,
		WriteBack: req.WriteBack || cfg.Analysis.WriteBack,
	})
	if errors.Is(err, apperr.ErrNoData) {
		fmt.Fprintln(app.out, noticeStyle.Render(fmt.Sprintf("No data available for %s analysis.", req.Type)))
		return nil
	}

	for _, a := range results {
		fmt.Fprintln(app.out, titleStyle.Render(summarizer.SectionTitle(a.Mode)))
		fmt.Fprintln(app.out, strings.TrimSpace(a.Summary))
		if a.Written {
			fmt.Fprintln(app.out, statusStyle.Render("Appended to "+a.Document))
		}
		fmt.Fprintln(app.out)
	}
	if err != nil {
		return fmt.Errorf("analyze %s: %w", req.Document, err)
	}
	return nil
}

// ParseOptions selects the document and record kind for RunParse.
type ParseOptions struct {
	Document string
	Kind     string // daily, weekly or empty for both
}

// parseOutput is the JSON printed when both kinds are requested.
type parseOutput struct {
	DailyLogs     []models.DailyLogEntry     `json:"daily_logs"`
	WeeklyReviews []models.WeeklyReviewEntry `json:"weekly_reviews"`
}

// RunParse prints the records extracted from a journal document as JSON.
// It reads the document directly and leaves the index untouched.
func RunParse(_ context.Context, req ParseOptions, opts ...Option) error {
	app, err := newApplication(os.Stderr, opts...)
	if err != nil {
		return err
	}
	cfg := app.config

	if req.Document == "" {
		req.Document = cfg.Journal.DefaultDocument
	}

	store, err := storage.NewFS(cfg.Journal.Path, cfg.Journal.Extensions...)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	data, err := store.Read(req.Document)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("parse %s: %w", req.Document, apperr.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("parse %s: %w", req.Document, err)
	}
	text := string(data)

	var v any
	switch req.Kind {
	case "daily":
		v = parser.ParseDailyLogs(text)
	case "weekly":
		v = parser.ParseWeeklyReviews(text)
	case "", "all":
		v = parseOutput{
			DailyLogs:     parser.ParseDailyLogs(text),
			WeeklyReviews: parser.ParseWeeklyReviews(text),
		}
	default:
		return fmt.Errorf("parse: unknown kind %q (want daily, weekly or all)", req.Kind)
	}

	enc := json.NewEncoder(app.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// RunMCP serves the MCP tools on stdin/stdout. Logs go to stderr.
func RunMCP(ctx context.Context, opts ...Option) error {
	app, err := newApplication(os.Stderr, opts...)
	if err != nil {
		return err
	}

	rt, err := app.open(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	app.logger.Info("MCP server starting", slog.String("version", Version))
	return mcpserver.New(rt.svc, Version).ServeStdio()
}
