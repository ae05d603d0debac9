package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/starford/moodlog/internal/models"
)

const weekdays = `Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday`

var (
	// A paragraph boundary is two or more line breaks; blank lines may carry
	// stray spaces, tabs or carriage returns.
	dailyBoundaryRe  = regexp.MustCompile(`(?:\n[ \t\r]*){2,}((?:` + weekdays + `),)`)
	weeklyBoundaryRe = regexp.MustCompile(`(?:\n[ \t\r]*){2,}(Week of)`)

	dateRe      = regexp.MustCompile(`(` + weekdays + `),\s+([A-Za-z]+\s+\d{1,2},\s+\d{4})`)
	weekRe      = regexp.MustCompile(`Week of ([A-Za-z]+\s+\d{1,2}-\d{1,2},\s+\d{4})`)
	itemRe      = regexp.MustCompile(`(?m)^[ \t]*-`)
	blankLineRe = regexp.MustCompile(`\n[ \t\r]*\n`)
)

// ratingRule captures a "<label> <n>/10" rating.
type ratingRule[T any] struct {
	re  *regexp.Regexp
	set func(rec *T, v float64)
}

// spanRule captures the text after label up to the first of the until labels
// (or the first blank line when blank is set), or the end of the block.
type spanRule[T any] struct {
	label string
	until []string
	blank bool
	set   func(rec *T, span string)
}

func rating(label string) *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(label) + `\s*(\d+(?:\.\d+)?)/10`)
}

var dailyRatings = []ratingRule[models.DailyLogEntry]{
	{re: rating("Mood:"), set: func(e *models.DailyLogEntry, v float64) { e.Mood = &v }},
	{re: rating("Focus:"), set: func(e *models.DailyLogEntry, v float64) { e.Focus = &v }},
}

var dailySpans = []spanRule[models.DailyLogEntry]{
	{
		label: "Achievements:",
		until: []string{"Challenges:"},
		set:   func(e *models.DailyLogEntry, s string) { e.Achievements = SplitItems(s) },
	},
	{
		label: "Challenges:",
		until: []string{"Notes:"},
		set:   func(e *models.DailyLogEntry, s string) { e.Challenges = SplitItems(s) },
	},
	{
		label: "Notes:",
		blank: true,
		set: func(e *models.DailyLogEntry, s string) {
			notes := strings.TrimSpace(s)
			e.Notes = &notes
		},
	},
}

var weeklyRatings = []ratingRule[models.WeeklyReviewEntry]{
	{re: rating("Overall mood:"), set: func(e *models.WeeklyReviewEntry, v float64) { e.OverallMood = &v }},
	{re: rating("Overall productivity:"), set: func(e *models.WeeklyReviewEntry, v float64) { e.OverallProductivity = &v }},
}

var weeklySpans = []spanRule[models.WeeklyReviewEntry]{
	{
		label: "Key achievements:",
		until: []string{"Challenges:"},
		set:   func(e *models.WeeklyReviewEntry, s string) { e.KeyAchievements = SplitItems(s) },
	},
	{
		label: "Challenges:",
		until: []string{"Goals for next week:"},
		set:   func(e *models.WeeklyReviewEntry, s string) { e.Challenges = SplitItems(s) },
	},
	{
		label: "Goals for next week:",
		blank: true,
		set:   func(e *models.WeeklyReviewEntry, s string) { e.GoalsForNextWeek = SplitItems(s) },
	},
}

func applyRatings[T any](block string, rec *T, rules []ratingRule[T]) {
	for _, r := range rules {
		m := r.re.FindStringSubmatch(block)
		if m == nil {
			continue
		}
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		r.set(rec, v)
	}
}

func applySpans[T any](block string, rec *T, rules []spanRule[T]) {
	for _, r := range rules {
		if span, ok := r.find(block); ok {
			r.set(rec, span)
		}
	}
}

func (r spanRule[T]) find(block string) (string, bool) {
	i := strings.Index(block, r.label)
	if i < 0 {
		return "", false
	}
	rest := block[i+len(r.label):]
	end := len(rest)
	for _, next := range r.until {
		if j := strings.Index(rest, next); j >= 0 && j < end {
			end = j
		}
	}
	if r.blank {
		if loc := blankLineRe.FindStringIndex(rest); loc != nil && loc[0] < end {
			end = loc[0]
		}
	}
	return rest[:end], true
}

// SplitItems splits a list span at leading dashes (a dash opening the span or
// a line) and returns the trimmed, non-empty items in source order. The result
// is never nil.
func SplitItems(span string) []string {
	items := []string{}
	for _, part := range itemRe.Split(strings.TrimSpace(span), -1) {
		if item := strings.TrimSpace(part); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// collapse folds runs of whitespace inside a captured date into single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
