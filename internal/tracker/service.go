// Package tracker coordinates journal storage, the entry index and the
// summarizer behind one service used by the HTTP API, the MCP server and the CLI.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/starford/moodlog/internal/analysis"
	"github.com/starford/moodlog/internal/apperr"
	"github.com/starford/moodlog/internal/checksum"
	"github.com/starford/moodlog/internal/events"
	"github.com/starford/moodlog/internal/index"
	"github.com/starford/moodlog/internal/models"
	"github.com/starford/moodlog/internal/parser"
	"github.com/starford/moodlog/internal/storage"
	"github.com/starford/moodlog/internal/summarizer"
)

// Document is the full representation of a journal document.
type Document struct {
	Path          string                     `json:"path"`
	Content       string                     `json:"content"`
	Checksum      string                     `json:"checksum"`
	DailyLogs     []models.DailyLogEntry     `json:"daily_logs"`
	WeeklyReviews []models.WeeklyReviewEntry `json:"weekly_reviews"`
}

// Service coordinates storage, index and summarizer operations.
type Service struct {
	store  storage.Provider
	db     index.EntryIndex
	summ   summarizer.Summarizer
	pub    events.Publisher
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithSummarizer sets the summarizer used by Analyze.
func WithSummarizer(s summarizer.Summarizer) Option {
	return func(svc *Service) { svc.summ = s }
}

// WithPublisher sets the sink for analysis events.
func WithPublisher(p events.Publisher) Option {
	return func(svc *Service) {
		if p != nil {
			svc.pub = p
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(svc *Service) {
		if l != nil {
			svc.logger = l
		}
	}
}

// WithClock overrides the wall clock used for window selection.
func WithClock(now func() time.Time) Option {
	return func(svc *Service) {
		if now != nil {
			svc.now = now
		}
	}
}

// NewService creates a new tracker service.
func NewService(store storage.Provider, db index.EntryIndex, opts ...Option) *Service {
	s := &Service{
		store:  store,
		db:     db,
		pub:    events.Nop{},
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// CanSummarize reports whether a summarizer is configured.
func (s *Service) CanSummarize() bool { return s.summ != nil }

// Documents lists indexed documents with their entry counts.
func (s *Service) Documents(_ context.Context) ([]index.DocumentRow, error) {
	return s.db.ListDocuments()
}

// Document reads a document from storage and parses it.
func (s *Service) Document(_ context.Context, path string) (*Document, error) {
	data, err := s.read(path)
	if err != nil {
		return nil, err
	}
	return buildDocument(path, data), nil
}

// CreateDocument writes a new document and indexes it.
func (s *Service) CreateDocument(_ context.Context, path string, content []byte) (*Document, error) {
	if _, err := s.store.Read(path); err == nil {
		return nil, apperr.ErrAlreadyExists
	}
	if err := s.store.Write(path, content); err != nil {
		return nil, err
	}
	if err := index.IndexDocument(s.db, path, content); err != nil {
		return nil, err
	}
	return buildDocument(path, content), nil
}

// UpdateDocument overwrites a document. A non-empty ifMatch must equal the
// checksum of the stored content.
func (s *Service) UpdateDocument(_ context.Context, path string, content []byte, ifMatch string) (*Document, error) {
	existing, err := s.read(path)
	if err != nil {
		return nil, err
	}
	if ifMatch != "" && !checksum.Matches(existing, ifMatch) {
		return nil, apperr.ErrConflict
	}
	if err := s.store.Write(path, content); err != nil {
		return nil, err
	}
	if err := index.IndexDocument(s.db, path, content); err != nil {
		return nil, err
	}
	return buildDocument(path, content), nil
}

// DeleteDocument removes a document from storage and index.
func (s *Service) DeleteDocument(_ context.Context, path string) error {
	if err := s.store.Delete(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return apperr.ErrNotFound
		}
		return err
	}
	return s.db.DeleteDocument(path)
}

// DailyLogs returns the indexed daily entries of a document.
func (s *Service) DailyLogs(_ context.Context, path string) ([]models.DailyLogEntry, error) {
	return s.db.DailyLogs(path)
}

// WeeklyReviews returns the indexed weekly reviews of a document.
func (s *Service) WeeklyReviews(_ context.Context, path string) ([]models.WeeklyReviewEntry, error) {
	return s.db.WeeklyReviews(path)
}

// Series returns date-ordered chart points for a document.
func (s *Service) Series(ctx context.Context, path string) ([]analysis.Point, error) {
	logs, err := s.DailyLogs(ctx, path)
	if err != nil {
		return nil, err
	}
	return analysis.Series(logs), nil
}

// Timeline returns chart points across every indexed document within the
// trailing window of mode.
func (s *Service) Timeline(_ context.Context, mode models.Mode) ([]analysis.Point, error) {
	now := s.now()
	logs, err := s.db.DailyLogsBetween(now.Add(-mode.Window()), now)
	if err != nil {
		return nil, err
	}
	return analysis.Series(logs), nil
}

// Search runs a full-text search over indexed entries.
func (s *Service) Search(_ context.Context, query string, limit int) ([]index.SearchResult, error) {
	return s.db.Search(query, limit)
}

// Analyses lists stored analyses, newest first.
func (s *Service) Analyses(_ context.Context, path string, limit int) ([]models.Analysis, error) {
	return s.db.ListAnalyses(path, limit)
}

// Select picks the analysis window out of raw text using the service clock.
func (s *Service) Select(text string, mode models.Mode) models.AnalysisWindow {
	return analysis.SelectAt(text, mode, s.now())
}

// Window selects the analysis window of a stored document.
func (s *Service) Window(_ context.Context, path string, mode models.Mode) (models.AnalysisWindow, error) {
	data, err := s.read(path)
	if err != nil {
		return models.AnalysisWindow{}, err
	}
	return s.Select(string(data), mode), nil
}

// Format renders the summarizer input for a stored document.
func (s *Service) Format(ctx context.Context, path string, mode models.Mode) (string, error) {
	w, err := s.Window(ctx, path, mode)
	if err != nil {
		return "", err
	}
	return analysis.FormatForSummary(w, mode), nil
}

// AnalyzeRequest describes one analysis run.
type AnalyzeRequest struct {
	Path      string `json:"path"`
	Type      string `json:"type"`
	WriteBack bool   `json:"write_back"`
}

// ParseAnalysisType expands "weekly", "monthly" or "both" into modes.
func ParseAnalysisType(t string) ([]models.Mode, error) {
	if strings.EqualFold(strings.TrimSpace(t), "both") {
		return []models.Mode{models.ModeWeekly, models.ModeMonthly}, nil
	}
	m, err := models.ParseMode(t)
	if err != nil {
		return nil, err
	}
	return []models.Mode{m}, nil
}

// Analyze summarizes the windows of a document for every requested mode,
// records each analysis and optionally appends it to the document.
// Modes with an empty window are skipped; if all are empty, ErrNoData.
func (s *Service) Analyze(ctx context.Context, req AnalyzeRequest) ([]models.Analysis, error) {
	modes, err := ParseAnalysisType(req.Type)
	if err != nil {
		return nil, err
	}
	if s.summ == nil {
		return nil, apperr.ErrSummarizerUnavailable
	}
	data, err := s.read(req.Path)
	if err != nil {
		return nil, err
	}
	text := string(data)

	var out []models.Analysis
	for _, mode := range modes {
		w := s.Select(text, mode)
		if w.IsEmpty() {
			s.logger.Info("analyze: empty window",
				slog.String("path", req.Path), slog.String("mode", string(mode)))
			continue
		}
		a, err := s.analyzeWindow(ctx, req, w, mode)
		if err != nil {
			return out, err
		}
		out = append(out, a)
	}
	if len(out) == 0 {
		return nil, apperr.ErrNoData
	}
	return out, nil
}

func (s *Service) analyzeWindow(ctx context.Context, req AnalyzeRequest, w models.AnalysisWindow, mode models.Mode) (models.Analysis, error) {
	input := analysis.FormatForSummary(w, mode)
	summary, err := s.summ.Summarize(ctx, mode, input)
	if err != nil {
		return models.Analysis{}, fmt.Errorf("tracker: summarize %s: %w", mode, err)
	}

	a := models.Analysis{
		ID:        uuid.NewString(),
		Document:  req.Path,
		Mode:      mode,
		Prompt:    input,
		Summary:   summary,
		CreatedAt: s.now().UTC(),
	}

	if req.WriteBack {
		if err := s.store.AppendSection(req.Path, summarizer.SectionTitle(mode), summary); err != nil {
			return a, fmt.Errorf("tracker: write back: %w", err)
		}
		a.Written = true
		if updated, err := s.store.Read(req.Path); err == nil {
			if err := index.IndexDocument(s.db, req.Path, updated); err != nil {
				s.logger.Warn("analyze: reindex failed", slog.String("path", req.Path), slog.String("error", err.Error()))
			}
		}
	}

	if err := s.db.RecordAnalysis(a); err != nil {
		return a, err
	}

	ev := events.AnalysisEvent{
		ID:        a.ID,
		Document:  a.Document,
		Mode:      string(a.Mode),
		Written:   a.Written,
		Timestamp: a.CreatedAt,
	}
	if err := s.pub.Publish(events.SubjectAnalysisCompleted, ev); err != nil {
		s.logger.Warn("analyze: publish failed", slog.String("id", a.ID), slog.String("error", err.Error()))
	}

	s.logger.Info("analyze: completed",
		slog.String("id", a.ID),
		slog.String("path", a.Document),
		slog.String("mode", string(mode)),
		slog.Bool("written", a.Written))
	return a, nil
}

// read maps a missing document to apperr.ErrNotFound.
func (s *Service) read(path string) ([]byte, error) {
	data, err := s.store.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func buildDocument(path string, data []byte) *Document {
	text := string(data)
	return &Document{
		Path:          path,
		Content:       text,
		Checksum:      checksum.Sum(data),
		DailyLogs:     parser.ParseDailyLogs(text),
		WeeklyReviews: parser.ParseWeeklyReviews(text),
	}
}
