package summarizer

import (
	"fmt"

	"github.com/starford/moodlog/internal/apperr"
	"github.com/starford/moodlog/internal/models"
)

const weeklyPrompt = `Analyze the following weekly productivity and mood data:

%s

Provide a concise summary of achievements, challenges, patterns in mood/focus, and adjustments for the next week. Be specific and offer actionable advice for improvements. Provide a short analysis of around 50-75 words only.`

const monthlyPrompt = `Analyze the following monthly productivity and mood data:

%s

Provide an overall summary of achievements, key patterns/observations, biggest lessons learned, and goals for the next month. Be specific and offer actionable advice for continued progress. Provide a short analysis of around 75-100 words only.`

// Prompt wraps formatted data in the instruction for mode.
func Prompt(mode models.Mode, data string) (string, error) {
	switch mode {
	case models.ModeWeekly:
		return fmt.Sprintf(weeklyPrompt, data), nil
	case models.ModeMonthly:
		return fmt.Sprintf(monthlyPrompt, data), nil
	default:
		return "", fmt.Errorf("summarizer: %w: %q", apperr.ErrInvalidMode, mode)
	}
}

// SectionTitle is the heading written above an analysis in the source document.
func SectionTitle(mode models.Mode) string {
	if mode == models.ModeMonthly {
		return "Monthly Analysis"
	}
	return "Weekly Analysis"
}
