// Package models defines the domain types for moodlog.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/starford/moodlog/internal/apperr"
)

// DateLayout is the source format of daily log dates, e.g. "March 1, 2023".
const DateLayout = "January 2, 2006"

// Mode selects the trailing window used for analysis.
type Mode string

const (
	ModeWeekly  Mode = "weekly"
	ModeMonthly Mode = "monthly"
)

// ParseMode converts s into a Mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeWeekly, ModeMonthly:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", apperr.ErrInvalidMode, s)
	}
}

// Window returns the trailing window length for the mode.
func (m Mode) Window() time.Duration {
	if m == ModeMonthly {
		return 30 * 24 * time.Hour
	}
	return 7 * 24 * time.Hour
}

// DailyLogEntry is one day's self-reported record.
//
// Every field is optional. Nil pointers and nil slices mean the field was not
// found in the source text; a non-nil empty slice means the label was present
// but listed nothing.
type DailyLogEntry struct {
	DayOfWeek    string   `json:"day_of_week,omitempty"`
	Date         string   `json:"date,omitempty"`
	Mood         *float64 `json:"mood,omitempty"`
	Focus        *float64 `json:"focus,omitempty"`
	Achievements []string `json:"achievements"`
	Challenges   []string `json:"challenges"`
	Notes        *string  `json:"notes,omitempty"`
}

// Day parses Date. The bool is false when the date is absent or does not
// name a real calendar day; the raw string is kept either way.
func (e DailyLogEntry) Day() (time.Time, bool) {
	if e.Date == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, e.Date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// IsEmpty reports whether no field was extracted.
func (e DailyLogEntry) IsEmpty() bool {
	return e.DayOfWeek == "" && e.Date == "" && e.Mood == nil && e.Focus == nil &&
		e.Achievements == nil && e.Challenges == nil && e.Notes == nil
}

// WeeklyReviewEntry is a reflective record spanning one week.
type WeeklyReviewEntry struct {
	Week                string   `json:"week,omitempty"`
	OverallMood         *float64 `json:"overall_mood,omitempty"`
	OverallProductivity *float64 `json:"overall_productivity,omitempty"`
	KeyAchievements     []string `json:"key_achievements"`
	Challenges          []string `json:"challenges"`
	GoalsForNextWeek    []string `json:"goals_for_next_week"`
}

// IsEmpty reports whether no field was extracted.
func (e WeeklyReviewEntry) IsEmpty() bool {
	return e.Week == "" && e.OverallMood == nil && e.OverallProductivity == nil &&
		e.KeyAchievements == nil && e.Challenges == nil && e.GoalsForNextWeek == nil
}

// AnalysisWindow is the subset of parsed entries selected for one analysis.
// In weekly mode WeeklyReviews holds at most one review.
type AnalysisWindow struct {
	Mode          Mode                `json:"mode"`
	DailyLogs     []DailyLogEntry     `json:"daily_logs"`
	WeeklyReviews []WeeklyReviewEntry `json:"weekly_reviews"`
}

// IsEmpty reports whether the window selected nothing.
func (w AnalysisWindow) IsEmpty() bool {
	return len(w.DailyLogs) == 0 && len(w.WeeklyReviews) == 0
}

// Analysis is one generated summary over a window of a document.
type Analysis struct {
	ID        string    `json:"id"`
	Document  string    `json:"document"`
	Mode      Mode      `json:"mode"`
	Prompt    string    `json:"prompt"`
	Summary   string    `json:"summary"`
	Written   bool      `json:"written"`
	CreatedAt time.Time `json:"created_at"`
}

// DocumentMetadata is a lightweight representation returned by list operations.
type DocumentMetadata struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}
