package analysis

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/starford/moodlog/internal/models"
)

const (
	notAvailable = "N/A"
	unknown      = "Unknown"
	// topItems caps the achievement and challenge lists in monthly summaries.
	topItems = 10
)

// FormatForSummary renders a window as plain text for a summarizer. The
// output depends only on its inputs.
func FormatForSummary(w models.AnalysisWindow, mode models.Mode) string {
	var b strings.Builder
	switch mode {
	case models.ModeWeekly:
		writeWeekly(&b, w)
	case models.ModeMonthly:
		writeMonthly(&b, w)
	}
	return b.String()
}

func writeWeekly(b *strings.Builder, w models.AnalysisWindow) {
	if len(w.DailyLogs) > 0 {
		b.WriteString("Daily Logs:\n\n")
		for _, e := range w.DailyLogs {
			writeDaily(b, e)
			b.WriteString("\n")
		}
	}
	if n := len(w.WeeklyReviews); n > 0 {
		b.WriteString("Weekly Review:\n\n")
		writeReview(b, w.WeeklyReviews[n-1])
	}
}

func writeMonthly(b *strings.Builder, w models.AnalysisWindow) {
	if len(w.DailyLogs) > 0 {
		var moods, focuses []float64
		var achievements, challenges []string
		for _, e := range w.DailyLogs {
			if e.Mood != nil {
				moods = append(moods, *e.Mood)
			}
			if e.Focus != nil {
				focuses = append(focuses, *e.Focus)
			}
			achievements = append(achievements, e.Achievements...)
			challenges = append(challenges, e.Challenges...)
		}

		b.WriteString("Monthly Summary:\n\n")
		fmt.Fprintf(b, "- Number of days logged: %d\n", len(w.DailyLogs))
		fmt.Fprintf(b, "- Average mood: %s\n", average(moods))
		fmt.Fprintf(b, "- Average focus: %s\n", average(focuses))
		writeItems(b, "- Key achievements this month:", Distinct(achievements, topItems))
		writeItems(b, "- Key challenges this month:", Distinct(challenges, topItems))
		b.WriteString("\n")
	}
	if len(w.WeeklyReviews) > 0 {
		b.WriteString("Weekly Reviews:\n\n")
		for _, r := range w.WeeklyReviews {
			writeReview(b, r)
			b.WriteString("\n")
		}
	}
}

func writeDaily(b *strings.Builder, e models.DailyLogEntry) {
	fmt.Fprintf(b, "%s, %s\n", orUnknown(e.DayOfWeek), orUnknown(e.Date))
	fmt.Fprintf(b, "- Mood: %s\n", outOfTen(e.Mood))
	fmt.Fprintf(b, "- Focus: %s\n", outOfTen(e.Focus))
	writeItems(b, "- Achievements:", e.Achievements)
	writeItems(b, "- Challenges:", e.Challenges)
	if e.Notes != nil {
		fmt.Fprintf(b, "- Notes: %s\n", *e.Notes)
	}
}

func writeReview(b *strings.Builder, r models.WeeklyReviewEntry) {
	fmt.Fprintf(b, "Week of %s\n", orUnknown(r.Week))
	fmt.Fprintf(b, "- Overall mood: %s\n", outOfTen(r.OverallMood))
	fmt.Fprintf(b, "- Overall productivity: %s\n", outOfTen(r.OverallProductivity))
	writeItems(b, "- Key achievements:", r.KeyAchievements)
	writeItems(b, "- Challenges:", r.Challenges)
	writeItems(b, "- Goals for next week:", r.GoalsForNextWeek)
}

// writeItems writes a heading and its items. Nil lists (label absent) are
// skipped; present but empty lists keep their heading.
func writeItems(b *strings.Builder, heading string, items []string) {
	if items == nil {
		return
	}
	b.WriteString(heading + "\n")
	for _, it := range items {
		fmt.Fprintf(b, "  - %s\n", it)
	}
}

func outOfTen(v *float64) string {
	if v == nil {
		return notAvailable
	}
	return FormatRating(*v) + "/10"
}

func average(values []float64) string {
	mean, ok := Mean(values)
	if !ok {
		return notAvailable
	}
	return strconv.FormatFloat(mean, 'f', 1, 64) + "/10"
}

func orUnknown(s string) string {
	if s == "" {
		return unknown
	}
	return s
}

// FormatRating renders a rating as a decimal: 8 -> "8.0", 7.25 -> "7.25".
func FormatRating(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
