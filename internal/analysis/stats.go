package analysis

import (
	"time"

	"github.com/starford/moodlog/internal/models"
)

// Mean returns the arithmetic mean of values; ok is false for an empty slice.
func Mean(values []float64) (mean float64, ok bool) {
	if len(values) == 0 {
		return 0, false
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), true
}

// Distinct returns the first limit unique items in first-seen order.
// A limit <= 0 means no cap. The result is nil when items is empty.
func Distinct(items []string, limit int) []string {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(items))
	out := []string{}
	for _, it := range items {
		if _, dup := seen[it]; dup {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// Point is one dated observation for chart renderers.
type Point struct {
	Date         time.Time `json:"date"`
	Mood         *float64  `json:"mood,omitempty"`
	Focus        *float64  `json:"focus,omitempty"`
	Achievements int       `json:"achievements"`
	Challenges   int       `json:"challenges"`
}

// Series converts daily entries into date-ordered points. Entries without a
// valid date are skipped.
func Series(entries []models.DailyLogEntry) []Point {
	sorted := append([]models.DailyLogEntry(nil), entries...)
	SortByDate(sorted, time.UTC)

	points := []Point{}
	for _, e := range sorted {
		d, ok := e.Day()
		if !ok {
			continue
		}
		points = append(points, Point{
			Date:         d,
			Mood:         e.Mood,
			Focus:        e.Focus,
			Achievements: len(e.Achievements),
			Challenges:   len(e.Challenges),
		})
	}
	return points
}
