package htmltomarkdown

import "strings"

// renderBlocks renders a sibling run as a sequence of blocks. Runs of
// text and inline elements between true blocks are buffered and
// flushed as a single unit; non-empty results are joined with a blank
// line.
func renderBlocks(nodes []Node) string {
	var blocks []string
	var run []Node
	flush := func() {
		if len(run) == 0 {
			return
		}
		if s := renderInline(run); s != "" {
			blocks = append(blocks, s)
		}
		run = nil
	}
	for _, n := range nodes {
		if skip(n) {
			continue
		}
		if isBlock(n) {
			flush()
			if s := renderBlock(n); s != "" {
				blocks = append(blocks, s)
			}
			continue
		}
		run = append(run, n)
	}
	flush()
	return strings.Join(blocks, "\n\n")
}

// skip reports nodes that contribute nothing: comments and ignored
// elements (head, script, style, ...).
func skip(n Node) bool {
	switch n.Kind() {
	case KindComment:
		return true
	case KindElement:
		return ignoredTags[n.Tag()]
	}
	return false
}

// renderBlock dispatches a single block-level element by tag.
func renderBlock(n Node) string {
	tag := n.Tag()
	if level, ok := headingLevels[tag]; ok {
		return renderHeading(n, level)
	}
	switch tag {
	case "hr":
		return "---"
	case "p", "figcaption":
		return renderInline(n.Children())
	case "blockquote":
		return renderBlockquote(n)
	case "pre":
		return renderPre(n, "")
	case "ul", "ol":
		return renderList(n)
	case "dl":
		return renderDefinitionList(n)
	case "table":
		return renderTable(n)
	case "figure":
		return renderFigure(n)
	}
	if containerTags[tag] {
		if s := renderBlocks(n.Children()); s != "" {
			return s
		}
		return renderInline(n.Children())
	}
	// unrecognized tag at block position: inline pass-through
	return renderInline(n.Children())
}

func renderHeading(n Node, level int) string {
	text := renderInline(n.Children())
	if text == "" {
		return ""
	}
	// headings are single-line; hard breaks flatten to spaces
	text = strings.ReplaceAll(text, "\n", " ")
	return strings.Repeat("#", level) + " " + text
}

// renderBlockquote quotes its content. Block children are rendered as
// blocks, otherwise the content collapses to a single quoted line.
// Every line gets a "> " prefix ("> " lines for blanks become bare
// ">"), fence lines included.
func renderBlockquote(n Node) string {
	children := n.Children()
	hasBlock := false
	for _, c := range children {
		if isBlock(c) {
			hasBlock = true
			break
		}
	}
	var content string
	if hasBlock {
		content = renderBlocks(children)
	} else {
		content = renderInline(children)
	}
	if content == "" {
		return ""
	}
	return prefixLines(content, "> ")
}

// renderPre emits a fenced code block. The text comes from a nested
// <code> child when present, else from the element itself. The fence
// is always one backtick longer than the longest run in the content.
func renderPre(n Node, lang string) string {
	src := n
	for _, c := range n.Children() {
		if c.Kind() == KindElement && c.Tag() == "code" {
			src = c
			break
		}
	}
	if lang == "" {
		lang = codeLanguage(src)
		if lang == "" && src != n {
			lang = codeLanguage(n)
		}
	}
	text := fullText(src)
	text = strings.TrimPrefix(text, "\n")
	text = strings.TrimRight(text, " \t\n")
	fence := blockFence(text)
	if text == "" {
		return fence + lang + "\n" + fence
	}
	return fence + lang + "\n" + text + "\n" + fence
}

// codeLanguage extracts a language hint from class="language-x" /
// class="lang-x" tokens or a lang attribute.
func codeLanguage(n Node) string {
	for _, token := range strings.Fields(n.Attr("class")) {
		if rest, ok := strings.CutPrefix(token, "language-"); ok && rest != "" {
			return rest
		}
		if rest, ok := strings.CutPrefix(token, "lang-"); ok && rest != "" {
			return rest
		}
	}
	return strings.TrimSpace(n.Attr("lang"))
}

// renderDefinitionList groups each <dt> with its following <dd> run:
//
//	term
//	: definition
//
// Groups are separated by a blank line.
func renderDefinitionList(n Node) string {
	var groups []string
	var current []string
	flush := func() {
		if len(current) > 0 {
			groups = append(groups, strings.Join(current, "\n"))
			current = nil
		}
	}
	for _, c := range n.Children() {
		if c.Kind() != KindElement {
			continue
		}
		switch c.Tag() {
		case "dt":
			flush()
			if term := renderInline(c.Children()); term != "" {
				current = append(current, term)
			}
		case "dd":
			if def := renderInline(c.Children()); def != "" {
				current = append(current, ": "+def)
			}
		}
	}
	flush()
	return strings.Join(groups, "\n\n")
}

// renderFigure handles figures whose payload is a code block: a
// language hint is pulled from a data attribute or a one-word caption,
// and the remaining children render in document order around the
// fence. Figures without code are transparent containers.
func renderFigure(n Node) string {
	children := n.Children()
	var pre Node
	for _, c := range children {
		if c.Kind() == KindElement && c.Tag() == "pre" {
			pre = c
			break
		}
	}
	if pre == nil {
		if s := renderBlocks(children); s != "" {
			return s
		}
		return renderInline(children)
	}

	lang := strings.TrimSpace(n.Attr("data-language"))
	if lang == "" {
		lang = strings.TrimSpace(n.Attr("data-lang"))
	}
	var langCaption Node
	if lang == "" {
		for _, c := range children {
			if c.Kind() == KindElement && c.Tag() == "figcaption" {
				if t := strings.TrimSpace(fullText(c)); t != "" && !strings.ContainsAny(t, " \t\n") {
					lang, langCaption = t, c
				}
				break
			}
		}
	}

	var blocks []string
	var run []Node
	flush := func() {
		if len(run) == 0 {
			return
		}
		if s := renderInline(run); s != "" {
			blocks = append(blocks, s)
		}
		run = nil
	}
	for _, c := range children {
		if skip(c) || c == langCaption {
			continue
		}
		switch {
		case c == pre:
			flush()
			blocks = append(blocks, renderPre(c, lang))
		case isBlock(c):
			flush()
			if s := renderBlock(c); s != "" {
				blocks = append(blocks, s)
			}
		default:
			run = append(run, c)
		}
	}
	flush()
	return strings.Join(blocks, "\n\n")
}
