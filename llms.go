package llmstxt

import (
	"fmt"
	"regexp"
	"strings"
)

// Manifest represents an llms.txt document: a title, an optional
// blockquote summary, free-form details, and sections of links.
type Manifest struct {
	Title    string            `json:"title"`
	Summary  string            `json:"summary,omitempty"`
	Details  string            `json:"details,omitempty"`
	Sections []ManifestSection `json:"sections,omitempty"`
}

// ManifestSection is an H2 section containing a link list.
type ManifestSection struct {
	Name  string         `json:"name"`
	Links []ManifestLink `json:"links"`
}

// ManifestLink is one "- [Title](URL): Notes" entry.
type ManifestLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Notes string `json:"notes,omitempty"`
}

// OptionalSection is the conventional name of the section whose links
// may be skipped by consumers that need a shorter context.
const OptionalSection = "Optional"

// Render serializes the manifest in llms.txt format.
func (m *Manifest) Render() string {
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(m.Title)
	b.WriteString("\n")
	if m.Summary != "" {
		b.WriteString("\n> ")
		b.WriteString(strings.ReplaceAll(m.Summary, "\n", "\n> "))
		b.WriteString("\n")
	}
	if m.Details != "" {
		b.WriteString("\n")
		b.WriteString(strings.TrimSpace(m.Details))
		b.WriteString("\n")
	}
	for _, sec := range m.Sections {
		b.WriteString("\n## ")
		b.WriteString(sec.Name)
		b.WriteString("\n\n")
		for _, link := range sec.Links {
			b.WriteString("- [")
			b.WriteString(link.Title)
			b.WriteString("](")
			b.WriteString(link.URL)
			b.WriteString(")")
			if link.Notes != "" {
				b.WriteString(": ")
				b.WriteString(link.Notes)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

var manifestLinkRe = regexp.MustCompile(`^-\s+\[(.*?)\]\((\S+?)\)(?::\s*(.*))?$`)

// ParseManifest parses an llms.txt document. The parser is tolerant:
// unrecognized lines before the first section accumulate as details,
// and malformed link lines are skipped. It fails only when no H1
// title can be found.
func ParseManifest(s string) (*Manifest, error) {
	m := &Manifest{}
	var details []string
	var current *ManifestSection

	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimRight(line, " \t")
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "# ") && m.Title == "":
			m.Title = strings.TrimSpace(trimmed[2:])
		case strings.HasPrefix(trimmed, "## "):
			m.Sections = append(m.Sections, ManifestSection{Name: strings.TrimSpace(trimmed[3:])})
			current = &m.Sections[len(m.Sections)-1]
		case strings.HasPrefix(trimmed, ">") && current == nil:
			part := strings.TrimSpace(strings.TrimPrefix(trimmed, ">"))
			if m.Summary == "" {
				m.Summary = part
			} else if part != "" {
				m.Summary += " " + part
			}
		case current != nil:
			if match := manifestLinkRe.FindStringSubmatch(trimmed); match != nil {
				current.Links = append(current.Links, ManifestLink{
					Title: match[1],
					URL:   match[2],
					Notes: strings.TrimSpace(match[3]),
				})
			}
		case trimmed != "" && m.Title != "":
			details = append(details, trimmed)
		}
	}

	if m.Title == "" {
		return nil, Errorf(EINVALID, "llms.txt missing H1 title")
	}
	m.Details = strings.Join(details, "\n")
	return m, nil
}

// Validate checks the manifest against the llms.txt conventions:
// a non-empty title, unique section names, and links with titles and
// http(s) or relative URLs.
func (m *Manifest) Validate() error {
	if strings.TrimSpace(m.Title) == "" {
		return Errorf(EINVALID, "manifest title required")
	}
	seen := make(map[string]bool)
	for _, sec := range m.Sections {
		if strings.TrimSpace(sec.Name) == "" {
			return Errorf(EINVALID, "section name required")
		}
		if seen[sec.Name] {
			return Errorf(EINVALID, "duplicate section %q", sec.Name)
		}
		seen[sec.Name] = true
		for i, link := range sec.Links {
			if strings.TrimSpace(link.Title) == "" {
				return Errorf(EINVALID, "section %q link %d missing title", sec.Name, i+1)
			}
			if !validManifestURL(link.URL) {
				return Errorf(EINVALID, "section %q link %q has invalid URL %q", sec.Name, link.Title, link.URL)
			}
		}
	}
	return nil
}

func validManifestURL(u string) bool {
	u = strings.TrimSpace(u)
	if u == "" {
		return false
	}
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return true
	}
	// relative paths are allowed
	return !strings.Contains(u, ":")
}

// BuildManifest assembles a manifest from converted documents, one
// link per document in order, all under a single section.
func BuildManifest(title, summary, sectionName string, docs []*Document) *Manifest {
	if sectionName == "" {
		sectionName = "Docs"
	}
	sec := ManifestSection{Name: sectionName}
	for _, doc := range docs {
		linkTitle := doc.Title
		if linkTitle == "" {
			linkTitle = doc.OutputPath
		}
		url := doc.SourceURL
		if url == "" {
			url = doc.OutputPath
		}
		sec.Links = append(sec.Links, ManifestLink{Title: linkTitle, URL: url})
	}
	m := &Manifest{Title: title, Summary: summary}
	if len(sec.Links) > 0 {
		m.Sections = append(m.Sections, sec)
	}
	return m
}

// FormatManifestProblems renders validation problems for display.
func FormatManifestProblems(errs []error) string {
	if len(errs) == 0 {
		return "ok"
	}
	parts := make([]string, 0, len(errs))
	for i, err := range errs {
		parts = append(parts, fmt.Sprintf("%d. %s", i+1, ErrorMessage(err)))
	}
	return strings.Join(parts, "\n")
}
