package htmltomarkdown

import "strings"

// longestRun returns the length of the longest consecutive run of ch
// in s.
func longestRun(s string, ch byte) int {
	longest, run := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] == ch {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	return longest
}

// blockFence returns a backtick fence guaranteed not to appear as a
// run inside content: max(3, longest run + 1).
func blockFence(content string) string {
	n := longestRun(content, '`') + 1
	if n < 3 {
		n = 3
	}
	return strings.Repeat("`", n)
}

// inlineFence returns the delimiter for an inline code span: one more
// backtick than the longest run inside the text.
func inlineFence(content string) string {
	return strings.Repeat("`", longestRun(content, '`')+1)
}

// codeSpan renders an inline code span per CommonMark: newlines
// collapse to spaces, and a padding space is added when the content
// starts or ends with a backtick.
func codeSpan(text string) string {
	text = strings.ReplaceAll(text, "\n", " ")
	fence := inlineFence(text)
	if strings.HasPrefix(text, "`") || strings.HasSuffix(text, "`") {
		return fence + " " + text + " " + fence
	}
	return fence + text + fence
}

const metachars = "\\[]()*_`!"

// escapeMarkdown backslash-escapes markdown metacharacters in literal
// text. Applied only to text fragments; rendered markup is never
// escaped again.
func escapeMarkdown(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(metachars, s[i]) >= 0 {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// indentLines prefixes every non-blank line of s with prefix.
func indentLines(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

// prefixLines prepends prefix to every line, using the bare trimmed
// prefix for blank lines. Used for blockquote nesting.
func prefixLines(s, prefix string) string {
	bare := strings.TrimRight(prefix, " ")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line == "" {
			lines[i] = bare
		} else {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
