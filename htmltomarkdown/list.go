package htmltomarkdown

import (
	"strconv"
	"strings"
)

// listIndent is the per-level indentation for nested list content.
// Nesting accumulates: a list two levels deep is indented twice.
const listIndent = "  "

type segmentKind int

// List item content splits into ordered segments: runs of inline
// nodes, true block children, and nested lists. The distinction
// drives marker placement and blank-line insertion.
const (
	segInline segmentKind = iota
	segBlock
	segNestedList
)

// renderedSegment is one list-item segment after rendering.
type renderedSegment struct {
	kind segmentKind
	text string
}

// renderList renders a <ul> or <ol>. Ordered lists honor the start
// attribute and per-item value overrides: an explicit value resets
// subsequent default numbering to value+1.
func renderList(n Node) string {
	ordered := n.Tag() == "ol"
	next := 1
	if ordered {
		if v, err := strconv.Atoi(strings.TrimSpace(n.Attr("start"))); err == nil {
			next = v
		}
	}

	var items []string
	for _, c := range n.Children() {
		if c.Kind() != KindElement || c.Tag() != "li" {
			continue
		}
		marker := "- "
		if ordered {
			num := next
			if v, err := strconv.Atoi(strings.TrimSpace(c.Attr("value"))); err == nil {
				num = v
			}
			next = num + 1
			marker = strconv.Itoa(num) + ". "
		}
		items = append(items, renderListItem(c, marker))
	}
	return strings.Join(items, "\n")
}

// renderListItem renders one <li>: the first segment, if inline, goes
// on the marker line; everything else is indented beneath it. A blank
// line precedes every block segment, and precedes a nested list only
// when the previous segment was not itself a nested list.
func renderListItem(li Node, marker string) string {
	segs := renderSegments(li)

	if len(segs) == 0 {
		return strings.TrimRight(marker, " ")
	}

	var b strings.Builder
	start := 0
	if segs[0].kind == segInline {
		b.WriteString(marker)
		// continuation lines from hard breaks align under the content
		b.WriteString(strings.ReplaceAll(segs[0].text, "\n", "\n"+listIndent))
		start = 1
	} else {
		b.WriteString(strings.TrimRight(marker, " "))
	}

	prev := segInline
	if start == 1 {
		prev = segs[0].kind
	}
	for i := start; i < len(segs); i++ {
		seg := segs[i]
		switch {
		case i == start && start == 0:
			// first segment sits directly under the bare marker
			b.WriteString("\n")
		case seg.kind == segNestedList && prev == segNestedList:
			b.WriteString("\n")
		default:
			b.WriteString("\n\n")
		}
		b.WriteString(indentLines(seg.text, listIndent))
		prev = seg.kind
	}
	return b.String()
}

// renderSegments splits a list item into rendered segments in
// document order, dropping anything that renders empty. A leading
// <p> folds into the marker line like plain inline content.
func renderSegments(li Node) []renderedSegment {
	var segs []renderedSegment
	var run []Node
	flush := func() {
		if len(run) == 0 {
			return
		}
		if s := renderInline(run); s != "" {
			segs = append(segs, renderedSegment{kind: segInline, text: s})
		}
		run = nil
	}
	for _, c := range li.Children() {
		if skip(c) {
			continue
		}
		switch {
		case c.Kind() == KindElement && (c.Tag() == "ul" || c.Tag() == "ol"):
			flush()
			if s := renderList(c); s != "" {
				segs = append(segs, renderedSegment{kind: segNestedList, text: s})
			}
		case isBlock(c):
			flush()
			if c.Tag() == "p" && len(segs) == 0 {
				if s := renderInline(c.Children()); s != "" {
					segs = append(segs, renderedSegment{kind: segInline, text: s})
				}
				continue
			}
			if s := renderBlock(c); s != "" {
				segs = append(segs, renderedSegment{kind: segBlock, text: s})
			}
		default:
			run = append(run, c)
		}
	}
	flush()
	return segs
}
