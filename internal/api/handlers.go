package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/starford/moodlog/internal/analysis"
	"github.com/starford/moodlog/internal/models"
	"github.com/starford/moodlog/internal/parser"
	"github.com/starford/moodlog/internal/tracker"
)

const maxBodyBytes = 10 << 20

// Handler holds API route handlers.
type Handler struct {
	svc *tracker.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *tracker.Service) *Handler {
	return &Handler{svc: svc}
}

// documentPath extracts the document path from the URL (everything after
// /documents/). Supports encoded slashes (e.g. 2023%2Fmarch.txt).
func documentPath(r *http.Request) string {
	raw := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if raw == "" {
		return ""
	}
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// requireDoc reads the "doc" query parameter, writing 400 when it is missing.
func requireDoc(w http.ResponseWriter, r *http.Request) (string, bool) {
	doc := r.URL.Query().Get("doc")
	if doc == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'doc' is required"))
		return "", false
	}
	return doc, true
}

// modeParam parses a mode, defaulting to weekly when empty.
func modeParam(w http.ResponseWriter, raw string) (models.Mode, bool) {
	if raw == "" {
		return models.ModeWeekly, true
	}
	m, err := models.ParseMode(raw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return "", false
	}
	return m, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return false
	}
	return true
}

// ListDocuments handles GET /api/documents.
//
//	@Summary		List indexed journal documents
//	@Tags			documents
//	@Produce		json
//	@Success		200	{object}	DocumentListResponse
//	@Security		BearerAuth
//	@Router			/documents [get]
func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.svc.Documents(r.Context())
	if err != nil {
		writeServiceError(w, "list documents", err)
		return
	}
	writeJSON(w, http.StatusOK, DocumentListResponse{Documents: docs})
}

// GetDocument handles GET /api/documents/*.
//
//	@Summary		Get a document with its parsed entries
//	@Tags			documents
//	@Produce		json
//	@Param			path	path		string	true	"Document path"
//	@Success		200		{object}	DocumentDetail
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/documents/{path} [get]
func (h *Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	path := documentPath(r)
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}
	doc, err := h.svc.Document(r.Context(), path)
	if err != nil {
		writeServiceError(w, "get document", err, slog.String("path", path))
		return
	}
	w.Header().Set("ETag", `"`+doc.Checksum+`"`)
	writeJSON(w, http.StatusOK, doc)
}

// CreateDocument handles POST /api/documents.
//
//	@Summary		Create a new document
//	@Tags			documents
//	@Accept			json
//	@Produce		json
//	@Param			body	body		CreateDocumentRequest	true	"Document to create"
//	@Success		201		{object}	DocumentDetail
//	@Failure		400		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/documents [post]
func (h *Handler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	var req CreateDocumentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Path == "" || req.Content == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path and content are required"))
		return
	}
	doc, err := h.svc.CreateDocument(r.Context(), req.Path, []byte(req.Content))
	if err != nil {
		writeServiceError(w, "create document", err, slog.String("path", req.Path))
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

// UpdateDocument handles PUT /api/documents/*.
//
//	@Summary		Update a document with optimistic concurrency
//	@Tags			documents
//	@Accept			json
//	@Produce		json
//	@Param			path		path	string					true	"Document path"
//	@Param			If-Match	header	string					false	"SHA-256 checksum for optimistic concurrency"
//	@Param			body		body	UpdateDocumentRequest	true	"Updated content"
//	@Success		200		{object}	DocumentDetail
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/documents/{path} [put]
func (h *Handler) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	path := documentPath(r)
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("failed to read body"))
		return
	}

	var req UpdateDocumentRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Content == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("content is required"))
		return
	}

	// Strip surrounding quotes if present (standard ETag format).
	ifMatch := strings.Trim(r.Header.Get("If-Match"), `"`)

	doc, err := h.svc.UpdateDocument(r.Context(), path, []byte(req.Content), ifMatch)
	if err != nil {
		writeServiceError(w, "update document", err, slog.String("path", path))
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// DeleteDocument handles DELETE /api/documents/*.
//
//	@Summary		Delete a document
//	@Tags			documents
//	@Param			path	path	string	true	"Document path"
//	@Success		204		"Document deleted"
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/documents/{path} [delete]
func (h *Handler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	path := documentPath(r)
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}
	if err := h.svc.DeleteDocument(r.Context(), path); err != nil {
		writeServiceError(w, "delete document", err, slog.String("path", path))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DailyLogs handles GET /api/daily?doc=.
func (h *Handler) DailyLogs(w http.ResponseWriter, r *http.Request) {
	doc, ok := requireDoc(w, r)
	if !ok {
		return
	}
	logs, err := h.svc.DailyLogs(r.Context(), doc)
	if err != nil {
		writeServiceError(w, "daily logs", err, slog.String("doc", doc))
		return
	}
	writeJSON(w, http.StatusOK, ParseResponse{DailyLogs: logs})
}

// WeeklyReviews handles GET /api/weekly?doc=.
func (h *Handler) WeeklyReviews(w http.ResponseWriter, r *http.Request) {
	doc, ok := requireDoc(w, r)
	if !ok {
		return
	}
	reviews, err := h.svc.WeeklyReviews(r.Context(), doc)
	if err != nil {
		writeServiceError(w, "weekly reviews", err, slog.String("doc", doc))
		return
	}
	writeJSON(w, http.StatusOK, ParseResponse{WeeklyReviews: reviews})
}

// Series handles GET /api/series?doc=.
//
//	@Summary		Mood/focus chart points for one document
//	@Tags			charts
//	@Produce		json
//	@Param			doc	query		string	true	"Document path"
//	@Success		200	{object}	SeriesResponse
//	@Security		BearerAuth
//	@Router			/series [get]
func (h *Handler) Series(w http.ResponseWriter, r *http.Request) {
	doc, ok := requireDoc(w, r)
	if !ok {
		return
	}
	points, err := h.svc.Series(r.Context(), doc)
	if err != nil {
		writeServiceError(w, "series", err, slog.String("doc", doc))
		return
	}
	writeJSON(w, http.StatusOK, SeriesResponse{Points: points})
}

// Timeline handles GET /api/timeline?mode=.
func (h *Handler) Timeline(w http.ResponseWriter, r *http.Request) {
	mode, ok := modeParam(w, r.URL.Query().Get("mode"))
	if !ok {
		return
	}
	points, err := h.svc.Timeline(r.Context(), mode)
	if err != nil {
		writeServiceError(w, "timeline", err)
		return
	}
	writeJSON(w, http.StatusOK, SeriesResponse{Points: points})
}

// Search handles GET /api/search.
//
//	@Summary		Full-text search across daily entries
//	@Tags			search
//	@Produce		json
//	@Param			q		query		string	true	"Search query"
//	@Param			limit	query		int		false	"Max results"
//	@Success		200		{object}	SearchResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	results, err := h.svc.Search(r.Context(), q, limit)
	if err != nil {
		writeServiceError(w, "search", err, slog.String("query", q))
		return
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: results})
}

// Window handles GET /api/window?doc=&mode=.
func (h *Handler) Window(w http.ResponseWriter, r *http.Request) {
	doc, ok := requireDoc(w, r)
	if !ok {
		return
	}
	mode, ok := modeParam(w, r.URL.Query().Get("mode"))
	if !ok {
		return
	}
	win, err := h.svc.Window(r.Context(), doc, mode)
	if err != nil {
		writeServiceError(w, "window", err, slog.String("doc", doc))
		return
	}
	writeJSON(w, http.StatusOK, win)
}

// SummaryInput handles GET /api/summary-input?doc=&mode= and returns the
// summarizer input as plain text.
func (h *Handler) SummaryInput(w http.ResponseWriter, r *http.Request) {
	doc, ok := requireDoc(w, r)
	if !ok {
		return
	}
	mode, ok := modeParam(w, r.URL.Query().Get("mode"))
	if !ok {
		return
	}
	text, err := h.svc.Format(r.Context(), doc, mode)
	if err != nil {
		writeServiceError(w, "summary input", err, slog.String("doc", doc))
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, text)
}

// Analyze handles POST /api/analyze.
//
//	@Summary		Summarize a document's recent entries
//	@Tags			analysis
//	@Accept			json
//	@Produce		json
//	@Param			body	body		AnalyzeRequest	true	"Document, analysis type and write-back flag"
//	@Success		201		{object}	AnalysesResponse
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Failure		422		{object}	errResponse
//	@Failure		503		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/analyze [post]
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}
	if req.Type == "" {
		req.Type = string(models.ModeWeekly)
	}
	out, err := h.svc.Analyze(r.Context(), req)
	if err != nil {
		writeServiceError(w, "analyze", err, slog.String("path", req.Path))
		return
	}
	writeJSON(w, http.StatusCreated, AnalysesResponse{Analyses: out})
}

// Analyses handles GET /api/analyses?doc=&limit=.
func (h *Handler) Analyses(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	out, err := h.svc.Analyses(r.Context(), r.URL.Query().Get("doc"), limit)
	if err != nil {
		writeServiceError(w, "list analyses", err)
		return
	}
	writeJSON(w, http.StatusOK, AnalysesResponse{Analyses: out})
}

// Parse handles POST /api/parse. Kind "daily" or "weekly" restricts the
// output; empty returns both.
//
//	@Summary		Extract records from raw journal text
//	@Tags			text
//	@Accept			json
//	@Produce		json
//	@Param			body	body		TextRequest	true	"Journal text"
//	@Success		200		{object}	ParseResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/parse [post]
func (h *Handler) Parse(w http.ResponseWriter, r *http.Request) {
	var req TextRequest
	if !decodeBody(w, r, &req) {
		return
	}
	var resp ParseResponse
	switch req.Kind {
	case "daily":
		resp.DailyLogs = parser.ParseDailyLogs(req.Text)
	case "weekly":
		resp.WeeklyReviews = parser.ParseWeeklyReviews(req.Text)
	case "":
		resp.DailyLogs = parser.ParseDailyLogs(req.Text)
		resp.WeeklyReviews = parser.ParseWeeklyReviews(req.Text)
	default:
		writeJSON(w, http.StatusBadRequest, errorBody("kind must be daily or weekly"))
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Select handles POST /api/select.
func (h *Handler) Select(w http.ResponseWriter, r *http.Request) {
	var req TextRequest
	if !decodeBody(w, r, &req) {
		return
	}
	mode, ok := modeParam(w, req.Mode)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Select(req.Text, mode))
}

// Format handles POST /api/format.
func (h *Handler) Format(w http.ResponseWriter, r *http.Request) {
	var req TextRequest
	if !decodeBody(w, r, &req) {
		return
	}
	mode, ok := modeParam(w, req.Mode)
	if !ok {
		return
	}
	win := h.svc.Select(req.Text, mode)
	writeJSON(w, http.StatusOK, FormatResponse{Text: analysis.FormatForSummary(win, mode)})
}
