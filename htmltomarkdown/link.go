package htmltomarkdown

import "strings"

// safeDestination reports whether a link or image destination has an
// allowed scheme. Relative destinations (fragments, absolute and
// relative paths) are always allowed; javascript:, vbscript:, data:
// and any other unlisted scheme are rejected case-insensitively.
func safeDestination(dest string) bool {
	dest = strings.TrimSpace(dest)
	if dest == "" {
		return false
	}
	for i := 0; i < len(dest); i++ {
		c := dest[i]
		if c == ':' {
			return safeSchemes[strings.ToLower(dest[:i])]
		}
		if !isSchemeChar(c, i == 0) {
			// not a scheme prefix, so the destination is relative
			return true
		}
	}
	return true
}

// isSchemeChar reports whether c may appear in a URI scheme (RFC 3986:
// ALPHA first, then ALPHA / DIGIT / + / - / .).
func isSchemeChar(c byte, first bool) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		return true
	case first:
		return false
	case c >= '0' && c <= '9', c == '+', c == '-', c == '.':
		return true
	}
	return false
}

// formatDestination wraps the destination in angle brackets when it
// contains whitespace or parentheses, which would otherwise break the
// link syntax.
func formatDestination(dest string) string {
	if strings.ContainsAny(dest, " \t\n()") {
		return "<" + dest + ">"
	}
	return dest
}

// renderLink renders an anchor into the parent accumulator. Anchors
// without a destination pass their content through; anchors with a
// disallowed scheme are dropped entirely, along with an adjacent bare
// separator so the removal leaves no dangling delimiter.
func renderLink(a *accumulator, n Node) {
	href := strings.TrimSpace(n.Attr("href"))
	if href == "" {
		renderInlineInto(a, n.Children())
		return
	}
	if !safeDestination(href) {
		a.pruneSeparator()
		return
	}
	var sub accumulator
	renderInlineInto(&sub, n.Children())
	label := buildLabel(&sub)
	if label == "" {
		return
	}
	a.markup("[" + label + "](" + formatDestination(href) + ")")
}

// buildLabel rebuilds a link label from rendered fragments. Markdown
// metacharacters are escaped only in text fragments, so markup nested
// inside the label (emphasis, images, inner links) stays valid.
func buildLabel(sub *accumulator) string {
	var b strings.Builder
	for _, f := range sub.frags {
		if f.kind == fragText {
			b.WriteString(escapeMarkdown(f.content))
		} else {
			b.WriteString(f.content)
		}
	}
	return strings.TrimSpace(b.String())
}
