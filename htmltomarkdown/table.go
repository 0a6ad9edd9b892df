package htmltomarkdown

import (
	"strconv"
	"strings"
)

// cellUnset marks grid positions not yet claimed by any cell. Real
// cell content never contains it.
const cellUnset = "\x00"

// renderTable flattens a <table> to a markdown table. Rowspan and
// colspan cells are expanded with empty placeholders so columns stay
// aligned, the first row is promoted to header when no explicit one
// exists, and the separator row always matches the header's column
// count. A table containing a nested table cannot be flattened and is
// emitted as raw HTML instead.
func renderTable(n Node) string {
	if containsTable(n) {
		return strings.TrimSpace(rawHTML(n))
	}

	caption := ""
	for _, c := range n.Children() {
		if c.Kind() == KindElement && c.Tag() == "caption" {
			caption = renderInline(c.Children())
			break
		}
	}

	grid := buildGrid(n)
	if len(grid) == 0 {
		return caption
	}
	width := 0
	for _, row := range grid {
		if len(row) > width {
			width = len(row)
		}
	}
	for i, row := range grid {
		for len(row) < width {
			row = append(row, "")
		}
		grid[i] = row
	}

	// expand cells whose content spans multiple lines into extra rows
	var physical [][]string
	for _, row := range grid {
		physical = append(physical, expandRow(row)...)
	}
	if len(physical) == 0 {
		return caption
	}

	var b strings.Builder
	if caption != "" {
		b.WriteString(caption)
		b.WriteString("\n\n")
	}
	writeRow(&b, physical[0])
	b.WriteString("\n|")
	for i := 0; i < width; i++ {
		b.WriteString("---|")
	}
	for _, row := range physical[1:] {
		b.WriteString("\n")
		writeRow(&b, row)
	}
	return b.String()
}

func writeRow(b *strings.Builder, cells []string) {
	b.WriteString("| ")
	b.WriteString(strings.Join(cells, " | "))
	b.WriteString(" |")
}

// buildGrid collects the table's rows into a logical grid, honoring
// colspan and rowspan by claiming the spanned positions as empty
// placeholders.
func buildGrid(table Node) [][]string {
	trs := collectRows(table)
	var grid [][]string

	set := func(r, c int, v string) {
		for len(grid) <= r {
			grid = append(grid, nil)
		}
		for len(grid[r]) <= c {
			grid[r] = append(grid[r], cellUnset)
		}
		if grid[r][c] == cellUnset {
			grid[r][c] = v
		}
	}

	for r, tr := range trs {
		if len(grid) <= r {
			grid = append(grid, nil)
		}
		c := 0
		for _, cell := range tr.Children() {
			if cell.Kind() != KindElement {
				continue
			}
			if tag := cell.Tag(); tag != "td" && tag != "th" {
				continue
			}
			for c < len(grid[r]) && grid[r][c] != cellUnset {
				c++
			}
			colspan := spanAttr(cell, "colspan")
			rowspan := spanAttr(cell, "rowspan")
			for i := 0; i < rowspan; i++ {
				for j := 0; j < colspan; j++ {
					v := ""
					if i == 0 && j == 0 {
						v = cellContent(cell)
					}
					set(r+i, c+j, v)
				}
			}
			c += colspan
		}
	}

	for r, row := range grid {
		for c, v := range row {
			if v == cellUnset {
				grid[r][c] = ""
			}
		}
	}
	return grid
}

// collectRows gathers <tr> elements directly or through
// thead/tbody/tfoot, in document order. The markdown output promotes
// the first row to header either way.
func collectRows(table Node) []Node {
	var trs []Node
	for _, c := range table.Children() {
		if c.Kind() != KindElement {
			continue
		}
		switch c.Tag() {
		case "tr":
			trs = append(trs, c)
		case "thead", "tbody", "tfoot":
			for _, cc := range c.Children() {
				if cc.Kind() == KindElement && cc.Tag() == "tr" {
					trs = append(trs, cc)
				}
			}
		}
	}
	return trs
}

func spanAttr(cell Node, name string) int {
	v, err := strconv.Atoi(strings.TrimSpace(cell.Attr(name)))
	if err != nil || v < 1 {
		return 1
	}
	return v
}

// cellContent renders a cell's content with literal pipes escaped,
// except inside inline-code spans. Blank lines are removed so that
// multi-line expansion produces dense rows.
func cellContent(cell Node) string {
	s := renderBlocks(cell.Children())
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, escapePipes(line))
	}
	return strings.Join(lines, "\n")
}

// expandRow turns a logical row whose cells may hold multiple lines
// into one physical row per line, blanking sibling columns below the
// first line.
func expandRow(row []string) [][]string {
	height := 1
	split := make([][]string, len(row))
	for i, cell := range row {
		split[i] = strings.Split(cell, "\n")
		if len(split[i]) > height {
			height = len(split[i])
		}
	}
	out := make([][]string, height)
	for k := 0; k < height; k++ {
		cells := make([]string, len(row))
		for i := range row {
			if k < len(split[i]) {
				cells[i] = split[i][k]
			}
		}
		out[k] = cells
	}
	return out
}

// escapePipes escapes literal | as \| outside inline-code spans.
func escapePipes(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	i := 0
	for i < len(s) {
		c := s[i]
		if c == '`' {
			// find the end of the code span delimited by a run of
			// the same length; if unterminated, treat literally
			run := i
			for run < len(s) && s[run] == '`' {
				run++
			}
			delim := s[i:run]
			if end := strings.Index(s[run:], delim); end >= 0 {
				stop := run + end + len(delim)
				b.WriteString(s[i:stop])
				i = stop
				continue
			}
		}
		if c == '|' {
			b.WriteString("\\|")
		} else {
			b.WriteByte(c)
		}
		i++
	}
	return b.String()
}

// containsTable reports whether any descendant of n is a <table>.
func containsTable(n Node) bool {
	for _, c := range n.Children() {
		if c.Kind() == KindElement {
			if c.Tag() == "table" {
				return true
			}
			if containsTable(c) {
				return true
			}
		}
	}
	return false
}
