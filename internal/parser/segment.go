package parser

import (
	"regexp"
	"strings"
)

// SplitDaily splits text into daily-entry blocks. A block starts at every
// weekday name followed by a comma that opens a new paragraph.
func SplitDaily(text string) []string {
	return split(text, dailyBoundaryRe)
}

// SplitWeekly splits text into weekly-review blocks. A block starts at every
// paragraph opening with "Week of".
func SplitWeekly(text string) []string {
	return split(text, weeklyBoundaryRe)
}

// split cuts text at the start of the first capture group of every boundary
// match, so the boundary text stays with the block it opens. Blocks are
// trimmed and blank ones dropped.
func split(text string, boundary *regexp.Regexp) []string {
	var blocks []string
	start := 0
	for _, m := range boundary.FindAllStringSubmatchIndex(text, -1) {
		cut := m[2]
		blocks = appendBlock(blocks, text[start:cut])
		start = cut
	}
	return appendBlock(blocks, text[start:])
}

func appendBlock(blocks []string, raw string) []string {
	if b := strings.TrimSpace(raw); b != "" {
		return append(blocks, b)
	}
	return blocks
}
