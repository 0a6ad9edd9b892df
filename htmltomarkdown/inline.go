package htmltomarkdown

import "strings"

type fragKind int

// Fragment kinds tracked by the accumulator. Text fragments are
// literal content that may still be escaped when a link label is
// rebuilt; markup fragments are already-rendered markdown that must
// never be escaped again; break fragments are hard line breaks that
// survive whitespace collapsing.
const (
	fragText fragKind = iota
	fragMarkup
	fragBreak
)

type fragment struct {
	kind    fragKind
	content string
}

// accumulator collects the output of one inline rendering pass. Each
// call that needs one allocates its own; results propagate into the
// parent explicitly, never by sharing.
type accumulator struct {
	frags []fragment
}

func (a *accumulator) lastChar() byte {
	for i := len(a.frags) - 1; i >= 0; i-- {
		if c := a.frags[i].content; c != "" {
			return c[len(c)-1]
		}
	}
	return 0
}

// text appends literal text, collapsing whitespace runs to a single
// space. A leading space is dropped at the start of the buffer, after
// an existing space, and after a hard break.
func (a *accumulator) text(s string) {
	if s == "" {
		return
	}
	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f' {
			inSpace = true
			continue
		}
		if inSpace {
			b.WriteByte(' ')
			inSpace = false
		}
		b.WriteRune(r)
	}
	if inSpace {
		b.WriteByte(' ')
	}
	out := b.String()
	if strings.HasPrefix(out, " ") {
		switch a.lastChar() {
		case 0, ' ', '\n':
			out = out[1:]
		}
	}
	if out == "" {
		return
	}
	if n := len(a.frags); n > 0 && a.frags[n-1].kind == fragText {
		a.frags[n-1].content += out
		return
	}
	a.frags = append(a.frags, fragment{kind: fragText, content: out})
}

// markup appends already-rendered markdown verbatim.
func (a *accumulator) markup(s string) {
	if s == "" {
		return
	}
	a.frags = append(a.frags, fragment{kind: fragMarkup, content: s})
}

// hardBreak records an explicit line break. Whitespace collapsing
// treats only these newlines as significant.
func (a *accumulator) hardBreak() {
	// drop an incidental space before the break
	if n := len(a.frags); n > 0 && a.frags[n-1].kind == fragText {
		a.frags[n-1].content = strings.TrimRight(a.frags[n-1].content, " ")
		if a.frags[n-1].content == "" {
			a.frags = a.frags[:n-1]
		}
	}
	a.frags = append(a.frags, fragment{kind: fragBreak, content: "\n"})
}

func (a *accumulator) String() string {
	var b strings.Builder
	for _, f := range a.frags {
		b.WriteString(f.content)
	}
	return b.String()
}

// separatorChars are the bare delimiters pruned next to a dropped
// unsafe link so its removal leaves no dangling separator behind.
const separatorChars = "|•·"

// pruneSeparator removes a trailing bare separator (with surrounding
// whitespace) from the accumulated text. Called when an unsafe link
// and its content are dropped.
func (a *accumulator) pruneSeparator() {
	n := len(a.frags)
	if n == 0 || a.frags[n-1].kind != fragText {
		return
	}
	s := strings.TrimRight(a.frags[n-1].content, " ")
	if s != "" && strings.ContainsRune(separatorChars, rune(s[len(s)-1])) {
		s = strings.TrimRight(s[:len(s)-1], " ")
	}
	if s == "" {
		a.frags = a.frags[:n-1]
		return
	}
	a.frags[n-1].content = s
}

// decodeText prepares a text node's content for output. Entities were
// already decoded by the parser; literal angle brackets are re-escaped
// so decoded text cannot be mistaken for markup downstream.
func decodeText(s string) string {
	s = strings.ReplaceAll(s, "<", "&lt;")
	return strings.ReplaceAll(s, ">", "&gt;")
}

// renderInlineInto renders a run of inline nodes into the accumulator.
func renderInlineInto(a *accumulator, nodes []Node) {
	for _, n := range nodes {
		switch n.Kind() {
		case KindText:
			a.text(decodeText(n.Text()))
		case KindComment:
			// dropped
		case KindElement:
			renderInlineElement(a, n)
		}
	}
}

func renderInlineElement(a *accumulator, n Node) {
	switch tag := n.Tag(); tag {
	case "br":
		a.hardBreak()
	case "img":
		if img := renderImage(n); img != "" {
			a.markup(img)
		}
	case "a":
		renderLink(a, n)
	case "strong", "b":
		renderEmphasis(a, n, "**")
	case "em", "i":
		renderEmphasis(a, n, "*")
	case "del", "s", "strike":
		renderEmphasis(a, n, "~~")
	case "code", "kbd", "samp":
		if text := fullText(n); text != "" {
			a.markup(codeSpan(text))
		}
	default:
		if ignoredTags[tag] {
			return
		}
		// unknown tags are transparent
		renderInlineInto(a, n.Children())
	}
}

// renderEmphasis wraps the collapsed inline content of n in the given
// marker. Edge whitespace moves outside the markers so adjacent text
// keeps its separation; hard breaks inside survive as real newlines.
func renderEmphasis(a *accumulator, n Node, marker string) {
	raw := fullText(n)
	lead := raw != strings.TrimLeft(raw, " \t\n\r\f")
	trail := raw != strings.TrimRight(raw, " \t\n\r\f")

	var sub accumulator
	renderInlineInto(&sub, n.Children())
	core := strings.TrimSpace(sub.String())
	if core == "" {
		if lead || trail {
			a.text(" ")
		}
		return
	}
	if lead {
		a.text(" ")
	}
	a.markup(marker + core + marker)
	if trail {
		a.text(" ")
	}
}

// renderImage renders an image reference, or "" if the source is
// missing or its scheme is not allowed.
func renderImage(n Node) string {
	src := strings.TrimSpace(n.Attr("src"))
	if src == "" || !safeDestination(src) {
		return ""
	}
	alt := escapeMarkdown(strings.TrimSpace(n.Attr("alt")))
	dest := formatDestination(src)
	if title := strings.TrimSpace(n.Attr("title")); title != "" {
		return "![" + alt + "](" + dest + " \"" + title + "\")"
	}
	return "![" + alt + "](" + dest + ")"
}

// renderInline collapses a run of inline nodes to a single trimmed
// string. Interior hard breaks are preserved.
func renderInline(nodes []Node) string {
	var a accumulator
	renderInlineInto(&a, nodes)
	return strings.TrimSpace(a.String())
}
