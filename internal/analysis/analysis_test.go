package analysis

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/starford/moodlog/internal/models"
)

var testNow = time.Date(2023, time.March, 10, 12, 0, 0, 0, time.UTC)

func dayEntry(d time.Time, mood, focus int, extra string) string {
	return fmt.Sprintf("%s, %s\n- Mood: %d/10\n- Focus: %d/10\n%s",
		d.Weekday(), d.Format(models.DateLayout), mood, focus, extra)
}

func TestSelectAt_WeeklyWindow(t *testing.T) {
	text := dayEntry(testNow.AddDate(0, 0, -10), 5, 5, "") + "\n\n" +
		dayEntry(testNow.AddDate(0, 0, -3), 8, 7, "")

	w := SelectAt(text, models.ModeWeekly, testNow)
	if len(w.DailyLogs) != 1 {
		t.Fatalf("len(daily) = %d, want 1", len(w.DailyLogs))
	}
	if want := testNow.AddDate(0, 0, -3).Format(models.DateLayout); w.DailyLogs[0].Date != want {
		t.Errorf("date = %q, want %q", w.DailyLogs[0].Date, want)
	}
}

func TestSelectAt_SortsAscending(t *testing.T) {
	text := dayEntry(testNow.AddDate(0, 0, -1), 6, 6, "") + "\n\n" +
		dayEntry(testNow.AddDate(0, 0, -4), 7, 7, "") + "\n\n" +
		dayEntry(testNow.AddDate(0, 0, -2), 8, 8, "")

	w := SelectAt(text, models.ModeWeekly, testNow)
	if len(w.DailyLogs) != 3 {
		t.Fatalf("len(daily) = %d, want 3", len(w.DailyLogs))
	}
	for i := 1; i < len(w.DailyLogs); i++ {
		prev, _ := w.DailyLogs[i-1].Day()
		cur, _ := w.DailyLogs[i].Day()
		if cur.Before(prev) {
			t.Errorf("entries out of order at %d: %v before %v", i, cur, prev)
		}
	}
}

func TestSelectAt_InvalidDatesExcluded(t *testing.T) {
	text := "Tuesday, February 30, 2023\nMood: 9/10\n\n" + dayEntry(testNow.AddDate(0, 0, -1), 6, 6, "")
	w := SelectAt(text, models.ModeMonthly, testNow)
	if len(w.DailyLogs) != 1 {
		t.Fatalf("len(daily) = %d, want 1", len(w.DailyLogs))
	}
}

func TestSelectAt_WeeklyKeepsLastReview(t *testing.T) {
	text := "Week of January 1-7, 2023\n- Overall mood: 5/10\n\nWeek of February 1-7, 2023\n- Overall mood: 6/10"
	w := SelectAt(text, models.ModeWeekly, testNow)
	if len(w.WeeklyReviews) != 1 {
		t.Fatalf("len(reviews) = %d, want 1", len(w.WeeklyReviews))
	}
	if w.WeeklyReviews[0].Week != "February 1-7, 2023" {
		t.Errorf("week = %q", w.WeeklyReviews[0].Week)
	}
}

func TestSelectAt_MonthlyReviewsWindowAndFailOpen(t *testing.T) {
	text := strings.Join([]string{
		"Week of January 1-7, 2023\n- Overall mood: 5/10",
		"Week of March 1-7, 2023\n- Overall mood: 6/10",
		"Week of Smarch 1-7, 2023\n- Overall mood: 7/10",
	}, "\n\n")
	w := SelectAt(text, models.ModeMonthly, testNow)
	if len(w.WeeklyReviews) != 2 {
		t.Fatalf("len(reviews) = %d, want 2: %+v", len(w.WeeklyReviews), w.WeeklyReviews)
	}
	if w.WeeklyReviews[0].Week != "March 1-7, 2023" || w.WeeklyReviews[1].Week != "Smarch 1-7, 2023" {
		t.Errorf("reviews = %+v", w.WeeklyReviews)
	}
}

func TestSelectAt_EmptySource(t *testing.T) {
	for _, mode := range []models.Mode{models.ModeWeekly, models.ModeMonthly} {
		w := SelectAt("", mode, testNow)
		if !w.IsEmpty() {
			t.Errorf("%s: expected empty window, got %+v", mode, w)
		}
		if got := FormatForSummary(w, mode); got != "" {
			t.Errorf("%s: expected empty output, got %q", mode, got)
		}
	}
}

func TestSelectAt_UnknownMode(t *testing.T) {
	w := SelectAt(dayEntry(testNow, 5, 5, ""), models.Mode("yearly"), testNow)
	if !w.IsEmpty() {
		t.Errorf("expected empty window, got %+v", w)
	}
}

func TestWeekEnd(t *testing.T) {
	end, ok := WeekEnd("March 1-7, 2023", time.UTC)
	if !ok {
		t.Fatal("expected a date")
	}
	if want := time.Date(2023, time.March, 7, 0, 0, 0, 0, time.UTC); !end.Equal(want) {
		t.Errorf("end = %v, want %v", end, want)
	}
	// Month-crossing spans keep the label's month.
	end, _ = WeekEnd("December 28-3, 2023", time.UTC)
	if end.Month() != time.December || end.Day() != 3 {
		t.Errorf("end = %v", end)
	}
	if _, ok := WeekEnd("sometime in spring", time.UTC); ok {
		t.Error("expected no date")
	}
}

func TestFormatForSummary_Weekly(t *testing.T) {
	mood := 8.0
	notes := "Felt good"
	w := models.AnalysisWindow{
		DailyLogs: []models.DailyLogEntry{
			{DayOfWeek: "Monday", Date: "March 6, 2023", Mood: &mood, Achievements: []string{"Shipped"}, Notes: &notes},
			{Date: "March 7, 2023"},
		},
		WeeklyReviews: []models.WeeklyReviewEntry{{Week: "March 1-7, 2023", GoalsForNextWeek: []string{"Rest"}}},
	}
	want := "Daily Logs:\n\n" +
		"Monday, March 6, 2023\n- Mood: 8.0/10\n- Focus: N/A\n- Achievements:\n  - Shipped\n- Notes: Felt good\n\n" +
		"Unknown, March 7, 2023\n- Mood: N/A\n- Focus: N/A\n\n" +
		"Weekly Review:\n\n" +
		"Week of March 1-7, 2023\n- Overall mood: N/A\n- Overall productivity: N/A\n- Goals for next week:\n  - Rest\n"
	if got := FormatForSummary(w, models.ModeWeekly); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatForSummary_Idempotent(t *testing.T) {
	text := dayEntry(testNow.AddDate(0, 0, -1), 6, 7, "- Achievements: a\n- Challenges: b\n") +
		"\n\nWeek of March 1-7, 2023\n- Overall mood: 7/10\n- Key achievements: c"
	for _, mode := range []models.Mode{models.ModeWeekly, models.ModeMonthly} {
		w := SelectAt(text, mode, testNow)
		first := FormatForSummary(w, mode)
		if second := FormatForSummary(w, mode); first != second {
			t.Errorf("%s: output differs between calls", mode)
		}
		if first == "" {
			t.Errorf("%s: expected output", mode)
		}
	}
}

func TestFormatForSummary_MonthlyAverages(t *testing.T) {
	var entries []string
	for i, mood := range []int{8, 6, 7} {
		entries = append(entries, dayEntry(testNow.AddDate(0, 0, -i-1), mood, 5, ""))
	}
	w := SelectAt(strings.Join(entries, "\n\n"), models.ModeMonthly, testNow)
	out := FormatForSummary(w, models.ModeMonthly)
	if !strings.Contains(out, "- Number of days logged: 3\n") {
		t.Errorf("missing day count in %q", out)
	}
	if !strings.Contains(out, "- Average mood: 7.0/10\n") {
		t.Errorf("missing average mood in %q", out)
	}
	if !strings.Contains(out, "- Average focus: 5.0/10\n") {
		t.Errorf("missing average focus in %q", out)
	}
}

func TestFormatForSummary_MonthlyNoRatings(t *testing.T) {
	w := models.AnalysisWindow{DailyLogs: []models.DailyLogEntry{{Date: "March 6, 2023"}}}
	out := FormatForSummary(w, models.ModeMonthly)
	if !strings.Contains(out, "- Average mood: N/A\n") || !strings.Contains(out, "- Average focus: N/A\n") {
		t.Errorf("expected N/A averages in %q", out)
	}
}

func TestFormatForSummary_MonthlyDedupAndCap(t *testing.T) {
	var logs []models.DailyLogEntry
	for i := 0; i < 15; i++ {
		logs = append(logs, models.DailyLogEntry{
			Date:         "March 1, 2023",
			Achievements: []string{fmt.Sprintf("achievement %02d", i), "achievement 00"},
		})
	}
	out := FormatForSummary(models.AnalysisWindow{DailyLogs: logs}, models.ModeMonthly)

	seen := map[string]bool{}
	count := 0
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "  - achievement") {
			count++
			if seen[line] {
				t.Errorf("duplicate line %q", line)
			}
			seen[line] = true
		}
	}
	if count != 10 {
		t.Errorf("achievement lines = %d, want 10", count)
	}
}

func TestMean(t *testing.T) {
	if m, ok := Mean([]float64{8, 6, 7}); !ok || m != 7 {
		t.Errorf("Mean = %v, %v", m, ok)
	}
	if _, ok := Mean(nil); ok {
		t.Error("Mean(nil) should report no value")
	}
}

func TestFormatRating(t *testing.T) {
	cases := map[float64]string{8: "8.0", 7.5: "7.5", 0: "0.0", 6.25: "6.25"}
	for in, want := range cases {
		if got := FormatRating(in); got != want {
			t.Errorf("FormatRating(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestSeries(t *testing.T) {
	mood := 6.0
	points := Series([]models.DailyLogEntry{
		{Date: "March 3, 2023", Mood: &mood, Challenges: []string{"x", "y"}},
		{Date: "not a date"},
		{Date: "March 1, 2023", Achievements: []string{"a"}},
	})
	if len(points) != 2 {
		t.Fatalf("len(points) = %d, want 2", len(points))
	}
	if points[0].Date.Day() != 1 || points[0].Achievements != 1 {
		t.Errorf("points[0] = %+v", points[0])
	}
	if points[1].Challenges != 2 || points[1].Mood == nil {
		t.Errorf("points[1] = %+v", points[1])
	}
}
