package importer

import (
	"regexp"
	"strings"
)

var (
	spaceRun    = regexp.MustCompile(`[ \t\f\v\x{00A0}]+`)
	blankRun    = regexp.MustCompile(`\n{3,}`)
	bulletGlyph = regexp.MustCompile(`^[•·▪◦●‣∙]\s*`)
)

// CleanText normalizes extracted document text: line endings become LF, runs of
// spaces collapse, bullet glyphs become "- ", and at most one blank line separates
// blocks.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(spaceRun.ReplaceAllString(line, " "))
		if bulletGlyph.MatchString(line) {
			line = "- " + bulletGlyph.ReplaceAllString(line, "")
		}
		lines[i] = line
	}

	result := strings.Join(lines, "\n")
	result = blankRun.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// truncate cuts s to at most max runes on a line boundary when possible.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	cut := string(runes[:max])
	if idx := strings.LastIndex(cut, "\n"); idx > len(cut)/2 {
		cut = cut[:idx]
	}
	return cut
}
