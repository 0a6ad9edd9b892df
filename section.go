package llmstxt

import (
	"strconv"
	"strings"
	"unicode"
)

// Section represents a heading in a markdown document.
type Section struct {
	Level  int    `json:"level"`
	Title  string `json:"title"`
	Anchor string `json:"anchor"`
}

// ExtractSections scans markdown and returns all ATX headings (H1-H6)
// with URL-safe anchors, skipping headings inside fenced code blocks.
// Duplicate anchors get numeric suffixes.
func ExtractSections(markdown string) []Section {
	var sections []Section
	anchorCounts := make(map[string]int)
	inFence := false

	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}

		level, title, ok := parseHeading(trimmed)
		if !ok {
			continue
		}

		anchor := generateAnchor(title)
		if n := anchorCounts[anchor]; n > 0 {
			anchorCounts[anchor]++
			anchor = anchor + "-" + strconv.Itoa(n)
		} else {
			anchorCounts[anchor] = 1
		}

		sections = append(sections, Section{Level: level, Title: title, Anchor: anchor})
	}

	return sections
}

// DocumentTitle returns the first H1 of a markdown document, or ""
// when the document has none. Used for frontmatter and manifest link
// titles.
func DocumentTitle(markdown string) string {
	for _, s := range ExtractSections(markdown) {
		if s.Level == 1 {
			return s.Title
		}
	}
	return ""
}

// parseHeading recognizes an ATX heading line: 1-6 '#' runes followed
// by whitespace and a non-empty title.
func parseHeading(line string) (level int, title string, ok bool) {
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > 6 || level == len(line) {
		return 0, "", false
	}
	rest := line[level:]
	if rest[0] != ' ' && rest[0] != '\t' {
		return 0, "", false
	}
	title = strings.TrimSpace(rest)
	if title == "" {
		return 0, "", false
	}
	return level, title, true
}

// generateAnchor creates a URL-safe anchor from a title: lowercase,
// spaces to hyphens, punctuation dropped.
func generateAnchor(title string) string {
	var sb strings.Builder
	prevHyphen := false

	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(r)
			prevHyphen = false
		case unicode.IsSpace(r) || r == '-':
			if !prevHyphen && sb.Len() > 0 {
				sb.WriteRune('-')
				prevHyphen = true
			}
		}
	}

	return strings.TrimSuffix(sb.String(), "-")
}
