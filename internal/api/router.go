package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/moodlog/internal/tracker"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *tracker.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Documents CRUD.
	r.Get("/documents", h.ListDocuments)
	r.Post("/documents", h.CreateDocument)
	r.Get("/documents/*", h.GetDocument)
	r.Put("/documents/*", h.UpdateDocument)
	r.Delete("/documents/*", h.DeleteDocument)

	// Indexed entries.
	r.Get("/daily", h.DailyLogs)
	r.Get("/weekly", h.WeeklyReviews)
	r.Get("/series", h.Series)
	r.Get("/timeline", h.Timeline)
	r.Get("/search", h.Search)

	// Analysis of stored documents.
	r.Get("/window", h.Window)
	r.Get("/summary-input", h.SummaryInput)
	r.Post("/analyze", h.Analyze)
	r.Get("/analyses", h.Analyses)

	// Stateless text processing.
	r.Post("/parse", h.Parse)
	r.Post("/select", h.Select)
	r.Post("/format", h.Format)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
