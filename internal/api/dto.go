package api

import (
	"github.com/starford/moodlog/internal/analysis"
	"github.com/starford/moodlog/internal/index"
	"github.com/starford/moodlog/internal/models"
	"github.com/starford/moodlog/internal/tracker"
)

// CreateDocumentRequest is the request body for creating a document.
type CreateDocumentRequest struct {
	Path    string `json:"path" example:"2023/march.txt" validate:"required"`
	Content string `json:"content" example:"Monday, March 6, 2023\nMood: 8/10" validate:"required"`
}

// UpdateDocumentRequest is the request body for updating a document.
type UpdateDocumentRequest struct {
	Content string `json:"content" example:"Monday, March 6, 2023\nMood: 7/10" validate:"required"`
}

// DocumentDetail is the full document response type (aliased from the domain layer).
type DocumentDetail = tracker.Document

// DocumentListResponse wraps document listings.
type DocumentListResponse struct {
	Documents []index.DocumentRow `json:"documents" validate:"required"`
}

// TextRequest carries raw journal text for stateless endpoints.
type TextRequest struct {
	Text string `json:"text" example:"Monday, March 6, 2023\nMood: 8/10" validate:"required"`
	Kind string `json:"kind,omitempty" example:"daily" enums:"daily,weekly"`
	Mode string `json:"mode,omitempty" example:"weekly" enums:"weekly,monthly"`
}

// ParseResponse holds the records extracted from text.
type ParseResponse struct {
	DailyLogs     []models.DailyLogEntry     `json:"daily_logs,omitempty"`
	WeeklyReviews []models.WeeklyReviewEntry `json:"weekly_reviews,omitempty"`
}

// FormatResponse holds summarizer input text.
type FormatResponse struct {
	Text string `json:"text" validate:"required"`
}

// AnalyzeRequest is the request body for running an analysis.
type AnalyzeRequest = tracker.AnalyzeRequest

// AnalysesResponse wraps stored or freshly generated analyses.
type AnalysesResponse struct {
	Analyses []models.Analysis `json:"analyses" validate:"required"`
}

// SeriesResponse wraps chart points.
type SeriesResponse struct {
	Points []analysis.Point `json:"points" validate:"required"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []index.SearchResult `json:"results" validate:"required"`
}
