package parser

import "github.com/starford/moodlog/internal/models"

// ExtractDaily pulls every recognisable field out of one daily block. Fields
// are matched independently; the bool is false when nothing matched.
func ExtractDaily(block string) (models.DailyLogEntry, bool) {
	var e models.DailyLogEntry
	if m := dateRe.FindStringSubmatch(block); m != nil {
		e.DayOfWeek = m[1]
		e.Date = collapse(m[2])
	}
	applyRatings(block, &e, dailyRatings)
	applySpans(block, &e, dailySpans)
	return e, !e.IsEmpty()
}

// ExtractWeekly pulls every recognisable field out of one weekly block.
func ExtractWeekly(block string) (models.WeeklyReviewEntry, bool) {
	var e models.WeeklyReviewEntry
	if m := weekRe.FindStringSubmatch(block); m != nil {
		e.Week = collapse(m[1])
	}
	applyRatings(block, &e, weeklyRatings)
	applySpans(block, &e, weeklySpans)
	return e, !e.IsEmpty()
}
