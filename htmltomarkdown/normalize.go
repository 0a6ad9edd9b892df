package htmltomarkdown

import "strings"

// normalize is the final pass over rendered output: a two-state
// machine over lines that collapses runs of 3+ blank lines to exactly
// 2 while outside fenced code and passes fenced content through
// untouched, then strips per-line trailing whitespace, normalizes
// line endings, and trims blank lines from both ends of the document.
func normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	var out []string
	blanks := 0
	inFence := false
	var fenceChar byte
	var fenceLen int

	for _, line := range strings.Split(s, "\n") {
		trimmed := strings.TrimRight(line, " \t")
		if inFence {
			out = append(out, trimmed)
			if closesFence(trimmed, fenceChar, fenceLen) {
				inFence = false
				blanks = 0
			}
			continue
		}
		if ch, n, ok := opensFence(trimmed); ok {
			inFence, fenceChar, fenceLen = true, ch, n
			blanks = 0
			out = append(out, trimmed)
			continue
		}
		if trimmed == "" {
			blanks++
			if blanks > 2 {
				continue
			}
			out = append(out, "")
			continue
		}
		blanks = 0
		out = append(out, trimmed)
	}

	return strings.Trim(strings.Join(out, "\n"), "\n")
}

// stripFencePrefix removes indentation and blockquote markers so
// fences inside quoted or indented regions still toggle the machine.
func stripFencePrefix(line string) string {
	for {
		trimmed := strings.TrimLeft(line, " ")
		if strings.HasPrefix(trimmed, ">") {
			line = trimmed[1:]
			continue
		}
		return trimmed
	}
}

// opensFence reports a line that opens a fenced code block: a run of
// 3+ backticks or tildes, optionally followed by an info string.
func opensFence(line string) (byte, int, bool) {
	s := stripFencePrefix(line)
	if s == "" {
		return 0, 0, false
	}
	ch := s[0]
	if ch != '`' && ch != '~' {
		return 0, 0, false
	}
	n := 0
	for n < len(s) && s[n] == ch {
		n++
	}
	if n < 3 {
		return 0, 0, false
	}
	return ch, n, true
}

// closesFence reports a line that closes the open fence: a run of the
// same character at least as long as the opener, with nothing after
// it. Shorter runs are content.
func closesFence(line string, ch byte, length int) bool {
	s := stripFencePrefix(line)
	n := 0
	for n < len(s) && s[n] == ch {
		n++
	}
	return n >= length && strings.TrimSpace(s[n:]) == ""
}
