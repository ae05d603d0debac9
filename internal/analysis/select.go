// Package analysis selects the parsed entries that fall inside a trailing
// window and renders them as prompt text for a summarizer.
package analysis

import (
	"regexp"
	"sort"
	"time"

	"github.com/starford/moodlog/internal/models"
	"github.com/starford/moodlog/internal/parser"
)

var weekEndRe = regexp.MustCompile(`([A-Za-z]+)\s+\d{1,2}-(\d{1,2}),\s+(\d{4})`)

// SelectForAnalysis parses text and keeps the entries inside the trailing
// window of mode, measured from the current time.
func SelectForAnalysis(text string, mode models.Mode) models.AnalysisWindow {
	return SelectAt(text, mode, time.Now())
}

// SelectAt is SelectForAnalysis with an explicit "now". Unknown modes select
// nothing.
func SelectAt(text string, mode models.Mode, now time.Time) models.AnalysisWindow {
	w := models.AnalysisWindow{
		Mode:          mode,
		DailyLogs:     []models.DailyLogEntry{},
		WeeklyReviews: []models.WeeklyReviewEntry{},
	}
	if mode != models.ModeWeekly && mode != models.ModeMonthly {
		return w
	}
	cutoff := now.Add(-mode.Window())

	daily := parser.ParseDailyLogs(text)
	SortByDate(daily, now.Location())
	for _, e := range daily {
		if d, ok := dayIn(e, now.Location()); ok && !d.Before(cutoff) {
			w.DailyLogs = append(w.DailyLogs, e)
		}
	}

	reviews := parser.ParseWeeklyReviews(text)
	switch mode {
	case models.ModeWeekly:
		if len(reviews) > 0 {
			w.WeeklyReviews = append(w.WeeklyReviews, reviews[len(reviews)-1])
		}
	case models.ModeMonthly:
		for _, r := range reviews {
			if r.Week == "" {
				continue
			}
			end, ok := WeekEnd(r.Week, now.Location())
			if !ok || !end.Before(cutoff) {
				w.WeeklyReviews = append(w.WeeklyReviews, r)
			}
		}
	}
	return w
}

// SortByDate orders entries ascending by calendar date. Entries without a
// valid date sort first; ties keep source order.
func SortByDate(entries []models.DailyLogEntry, loc *time.Location) {
	sort.SliceStable(entries, func(i, j int) bool {
		di, _ := dayIn(entries[i], loc)
		dj, _ := dayIn(entries[j], loc)
		return di.Before(dj)
	})
}

// WeekEnd derives the last day of a "Month D-D, YYYY" label from its second
// day number and the label's month and year. Spans that cross a month or
// year boundary resolve to the wrong month.
func WeekEnd(label string, loc *time.Location) (time.Time, bool) {
	m := weekEndRe.FindStringSubmatch(label)
	if m == nil {
		return time.Time{}, false
	}
	t, err := time.Parse(models.DateLayout, m[1]+" "+m[2]+", "+m[3])
	if err != nil {
		return time.Time{}, false
	}
	return midnight(t, loc), true
}

// dayIn returns the entry's date as local midnight in loc. Missing or
// invalid dates yield the zero time.
func dayIn(e models.DailyLogEntry, loc *time.Location) (time.Time, bool) {
	t, ok := e.Day()
	if !ok {
		return time.Time{}, false
	}
	return midnight(t, loc), true
}

func midnight(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
