// Package parser turns free-text productivity logs into daily log entries and
// weekly reviews.
//
// Parsing never fails: missing labels leave fields unset, blocks with nothing
// recognisable are dropped, and empty input yields empty results. All
// patterns are compiled once and the package is safe for concurrent use.
package parser

import "github.com/starford/moodlog/internal/models"

// ParseDailyLogs extracts daily log entries from text in source order.
func ParseDailyLogs(text string) []models.DailyLogEntry {
	out := []models.DailyLogEntry{}
	for _, block := range SplitDaily(text) {
		if e, ok := ExtractDaily(block); ok {
			out = append(out, e)
		}
	}
	return out
}

// ParseWeeklyReviews extracts weekly reviews from text in source order.
func ParseWeeklyReviews(text string) []models.WeeklyReviewEntry {
	out := []models.WeeklyReviewEntry{}
	for _, block := range SplitWeekly(text) {
		if e, ok := ExtractWeekly(block); ok {
			out = append(out, e)
		}
	}
	return out
}
