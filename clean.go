package llmstxt

import (
	"net/url"
	"regexp"
	"strings"
)

// CleanRule is a named markdown-to-markdown transformation. Rules are
// pure string operations; they never touch the filesystem or network.
type CleanRule interface {
	// Clean transforms markdown into cleaned markdown.
	Clean(markdown string) string

	// Name returns the rule's identifier for logging and config.
	Name() string
}

// Cleaner applies an ordered list of rules.
type Cleaner struct {
	rules []CleanRule
}

// NewCleaner creates a Cleaner from rules, applied in order.
func NewCleaner(rules ...CleanRule) *Cleaner {
	return &Cleaner{rules: rules}
}

// Clean runs every rule over the markdown in order.
func (c *Cleaner) Clean(markdown string) string {
	for _, r := range c.rules {
		markdown = r.Clean(markdown)
	}
	return markdown
}

// frontmatterRe matches a leading YAML frontmatter block.
var frontmatterRe = regexp.MustCompile(`(?s)\A---\n.*?\n---\n+`)

// StripFrontmatter removes a leading YAML frontmatter block.
type StripFrontmatter struct{}

func (StripFrontmatter) Name() string { return "strip-frontmatter" }

func (StripFrontmatter) Clean(markdown string) string {
	return frontmatterRe.ReplaceAllString(markdown, "")
}

// badgeRe matches shield/badge images, optionally wrapped in a link,
// on their own or inline. Common in README-style documentation.
var badgeRe = regexp.MustCompile(`\[?!\[[^\]]*\]\([^)]*(?:shields\.io|badge|travis-ci|codecov|goreportcard)[^)]*\)\]?(?:\([^)]*\))?`)

// StripBadges removes badge images (shields.io and friends) that
// carry no information for readers of the converted docs.
type StripBadges struct{}

func (StripBadges) Name() string { return "strip-badges" }

func (StripBadges) Clean(markdown string) string {
	out := badgeRe.ReplaceAllString(markdown, "")
	return collapseBlankRuns(out)
}

// linkDestRe matches markdown link and image destinations.
var linkDestRe = regexp.MustCompile(`(!?\[[^\]]*\])\(([^)\s]+)([^)]*)\)`)

// ExpandLinks rewrites relative link and image destinations to be
// absolute against a base URL. Fenced code blocks pass through
// untouched.
type ExpandLinks struct {
	Base string
}

func (ExpandLinks) Name() string { return "expand-links" }

func (e ExpandLinks) Clean(markdown string) string {
	base, err := url.Parse(e.Base)
	if err != nil || base.Host == "" {
		return markdown
	}
	return mapOutsideFences(markdown, func(line string) string {
		return linkDestRe.ReplaceAllStringFunc(line, func(match string) string {
			parts := linkDestRe.FindStringSubmatch(match)
			dest := parts[2]
			if strings.HasPrefix(dest, "#") || strings.Contains(dest, "://") ||
				strings.HasPrefix(dest, "mailto:") || strings.HasPrefix(dest, "tel:") {
				return match
			}
			ref, err := url.Parse(dest)
			if err != nil {
				return match
			}
			return parts[1] + "(" + base.ResolveReference(ref).String() + parts[3] + ")"
		})
	})
}

// CollapseBlankLines reduces runs of 3+ blank lines to 2 outside
// fenced code, mirroring the converter's output contract for markdown
// from other sources.
type CollapseBlankLines struct{}

func (CollapseBlankLines) Name() string { return "collapse-blank-lines" }

func (CollapseBlankLines) Clean(markdown string) string {
	return collapseBlankRuns(markdown)
}

var fenceLineRe = regexp.MustCompile("^\\s*(```|~~~)")

// mapOutsideFences applies f to every line outside fenced code blocks.
func mapOutsideFences(markdown string, f func(string) string) string {
	lines := strings.Split(markdown, "\n")
	inFence := false
	for i, line := range lines {
		if fenceLineRe.MatchString(line) {
			inFence = !inFence
			continue
		}
		if !inFence {
			lines[i] = f(line)
		}
	}
	return strings.Join(lines, "\n")
}

func collapseBlankRuns(markdown string) string {
	lines := strings.Split(markdown, "\n")
	var out []string
	blanks := 0
	inFence := false
	for _, line := range lines {
		if fenceLineRe.MatchString(line) {
			inFence = !inFence
			blanks = 0
			out = append(out, line)
			continue
		}
		if !inFence && strings.TrimSpace(line) == "" {
			blanks++
			if blanks > 2 {
				continue
			}
			out = append(out, "")
			continue
		}
		blanks = 0
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
