// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/moodlog/internal/api"
	"github.com/starford/moodlog/internal/apperr"
	"github.com/starford/moodlog/internal/events"
	"github.com/starford/moodlog/internal/index"
	"github.com/starford/moodlog/internal/sse"
	"github.com/starford/moodlog/internal/storage"
	"github.com/starford/moodlog/internal/summarizer"
	"github.com/starford/moodlog/internal/tracker"
)

// Version is reported by the MCP server and the CLI.
var Version = "dev"

// runtime holds the components shared by every command.
type runtime struct {
	store *storage.FS
	db    *index.DB
	svc   *tracker.Service
	nats  *events.NATS
}

func (rt *runtime) Close() {
	if rt.nats != nil {
		rt.nats.Close()
	}
	if rt.db != nil {
		_ = rt.db.Close()
	}
}

// newApplication applies opts and builds the JSON logger. logOut is used
// unless a logger was supplied.
func newApplication(logOut io.Writer, opts ...Option) (*application, error) {
	app := &application{out: os.Stdout}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}

	if app.logger == nil {
		app.logger = slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
			Level: app.config.App.LogLevel,
		}))
	}
	slog.SetDefault(app.logger)

	return app, nil
}

// open prepares storage, the entry index, the summarizer and the event sinks.
// extra publishers receive analysis events next to NATS.
func (a *application) open(ctx context.Context, extra ...events.Publisher) (*runtime, error) {
	cfg := a.config
	logger := a.logger

	if err := os.MkdirAll(cfg.Journal.Path, 0o755); err != nil {
		return nil, fmt.Errorf("create journal dir: %w", err)
	}

	store, err := storage.NewFS(cfg.Journal.Path, cfg.Journal.Extensions...)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	db, err := index.Open(cfg.SQLite.Path)
	if err != nil {
		return nil, fmt.Errorf("init index: %w", err)
	}
	rt := &runtime{store: store, db: db}

	if err := index.Sync(db, store, logger); err != nil {
		logger.Warn("initial sync failed", slog.String("error", err.Error()))
	}

	summ := a.summ
	if summ == nil {
		summ, err = summarizer.New(cfg.Summarizer.Params())
		switch {
		case errors.Is(err, apperr.ErrSummarizerUnavailable):
			logger.Warn("summarizer disabled", slog.String("provider", cfg.Summarizer.Provider))
		case err != nil:
			rt.Close()
			return nil, fmt.Errorf("init summarizer: %w", err)
		}
	}

	var sinks events.Multi
	for _, p := range extra {
		if p != nil {
			sinks = append(sinks, p)
		}
	}
	if a.pub != nil {
		sinks = append(sinks, a.pub)
	}
	if cfg.Events.Enabled() {
		nc, err := events.NewNATS(ctx, cfg.Events.NATSURL, cfg.Events.Token, cfg.Events.SubjectPrefix, logger)
		if err != nil {
			rt.Close()
			return nil, fmt.Errorf("init events: %w", err)
		}
		rt.nats = nc
		sinks = append(sinks, nc)
	}

	opts := []tracker.Option{
		tracker.WithLogger(logger),
		tracker.WithPublisher(sinks),
	}
	if summ != nil {
		opts = append(opts, tracker.WithSummarizer(summ))
	}
	rt.svc = tracker.NewService(store, db, opts...)

	return rt, nil
}

// Run starts the HTTP API, the SSE stream and the journal watcher.
func Run(ctx context.Context, opts ...Option) error {
	app, err := newApplication(os.Stdout, opts...)
	if err != nil {
		return err
	}

	cfg := app.config
	logger := app.logger

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("journal_path", cfg.Journal.Path),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("summarizer", cfg.Summarizer.Provider),
		slog.Bool("nats", cfg.Events.Enabled()),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// SSE broker doubles as an analysis event sink.
	broker := sse.NewBroker(2 * time.Second)
	defer broker.Close()

	rt, err := app.open(ctx, broker)
	if err != nil {
		return err
	}
	defer rt.Close()

	apiRouter := api.NewRouter(rt.svc, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := rt.db.Ping(); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"unavailable"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Re-parse documents as they change and push SSE notifications.
	g.Go(func() error {
		err := index.Watch(gCtx, rt.db, rt.store, logger, func(kind, path string) {
			broker.PublishDocumentEvent(kind, path)
			if rt.nats == nil {
				return
			}
			ev := events.DocumentEvent{Path: path, Kind: kind, Timestamp: time.Now().UTC()}
			if err := rt.nats.Publish(events.DocumentSubject(kind), ev); err != nil {
				logger.Warn("publish document event failed", slog.String("path", path), slog.String("error", err.Error()))
			}
		})
		if err != nil {
			logger.Warn("watcher stopped", slog.String("error", err.Error()))
		}
		return nil
	})

	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return errShutdown
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errShutdown) {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// errShutdown cancels the group context so the watcher stops with the server.
var errShutdown = errors.New("shutdown")
