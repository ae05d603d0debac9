package index

import (
	"time"

	"github.com/starford/moodlog/internal/models"
)

// EntryIndex defines the interface for journal indexing operations.
// Consumers should depend on this interface rather than the concrete *DB type
// to facilitate testing with mocks.
type EntryIndex interface {
	ReplaceDocument(doc DocumentRow, daily []models.DailyLogEntry, weekly []models.WeeklyReviewEntry) error
	DeleteDocument(path string) error
	GetChecksum(path string) (string, error)
	AllChecksums() (map[string]string, error)
	ListDocuments() ([]DocumentRow, error)
	DailyLogs(path string) ([]models.DailyLogEntry, error)
	DailyLogsBetween(from, to time.Time) ([]models.DailyLogEntry, error)
	WeeklyReviews(path string) ([]models.WeeklyReviewEntry, error)
	Search(query string, limit int) ([]SearchResult, error)
	RecordAnalysis(a models.Analysis) error
	ListAnalyses(path string, limit int) ([]models.Analysis, error)
	Close() error
}

// Verify *DB satisfies EntryIndex at compile time.
var _ EntryIndex = (*DB)(nil)
