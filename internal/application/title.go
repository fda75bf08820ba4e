package application

import (
	"strings"
	"unicode/utf8"
)

const (
	titleScanLines = 10
	titleMinLength = 10
	titleMaxLength = 100

	storyWantMarker = "I want"
	storyWhyMarker  = "so that"
	storyLabel      = "Implement: "

	fallbackTitle = "Voice-generated requirement"
)

var sectionHeaders = []string{
	"user story",
	"acceptance criteria",
	"description",
	"technical notes",
	"technical details",
	"definition of done",
	"requirements",
	"tasks",
	"summary",
	"background",
}

var markdownMarkers = strings.NewReplacer("**", "", "__", "", "*", "", "`", "")

// ExtractTitle derives a short issue title from a rewritten document.
func ExtractTitle(doc string) string {
	lines := strings.Split(doc, "\n")

	scanned := 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if scanned == titleScanLines {
			break
		}
		scanned++

		if isListItem(line) {
			continue
		}
		candidate := stripMarkdown(line)
		if isSectionHeader(candidate) || isStoryLine(candidate) {
			continue
		}
		if n := utf8.RuneCountInString(candidate); n >= titleMinLength && n <= titleMaxLength {
			return candidate
		}
	}

	for _, line := range lines {
		idx := strings.Index(line, storyWantMarker)
		if idx < 0 {
			continue
		}
		want := line[idx+len(storyWantMarker):]
		if end := strings.Index(want, storyWhyMarker); end >= 0 {
			want = want[:end]
		}
		want = strings.Trim(strings.TrimSpace(markdownMarkers.Replace(want)), ",.")
		want = strings.TrimSpace(want)
		if want != "" {
			return storyLabel + want
		}
	}

	return fallbackTitle
}

func stripMarkdown(line string) string {
	s := strings.TrimSpace(line)
	s = strings.TrimLeft(s, "#> ")
	s = markdownMarkers.Replace(s)
	s = strings.Trim(s, "_ ")
	if len(s) >= len("title:") && strings.EqualFold(s[:len("title:")], "title:") {
		s = s[len("title:"):]
	}
	return strings.TrimSpace(s)
}

// isListItem matches bullet, checkbox and numbered list lines.
func isListItem(line string) bool {
	s := strings.TrimSpace(line)
	for _, marker := range []string{"- ", "* ", "+ "} {
		if strings.HasPrefix(s, marker) {
			return true
		}
	}
	if s == "-" || s == "*" || s == "+" {
		return true
	}

	digits := 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		digits++
	}
	if digits == 0 || digits == len(s) {
		return false
	}
	if s[digits] != '.' && s[digits] != ')' {
		return false
	}
	return digits+1 == len(s) || s[digits+1] == ' '
}

func isSectionHeader(s string) bool {
	lower := strings.ToLower(s)
	for _, h := range sectionHeaders {
		if strings.Contains(lower, h) {
			return true
		}
	}
	return false
}

func isStoryLine(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "as a ") || strings.HasPrefix(lower, "as an ")
}
