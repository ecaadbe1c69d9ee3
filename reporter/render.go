package reporter

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"
)

// Render formats a single diagnostic as a human-readable, multi-line
// message: the category-tagged headline, a source snippet with a caret
// under the offending column, any secondary related locations, and any
// hints. source is the full contents of the file named by err's position;
// callers that don't have it on hand (or whose position is synthetic) may
// pass nil, in which case the snippet is omitted.
func Render(err ErrorWithPos, source []byte) string {
	var b strings.Builder

	pos := err.GetPosition()
	cat := err.GetCategory()
	if cat == Uncategorized {
		fmt.Fprintf(&b, "error: %s: %v\n", pos, err.Unwrap())
	} else {
		fmt.Fprintf(&b, "%s error: %s: %v\n", cat, pos, err.Unwrap())
	}

	if source != nil && pos.Line > 0 {
		if line, ok := sourceLine(source, pos.Line); ok {
			fmt.Fprintf(&b, "  %s\n", line)
			fmt.Fprintf(&b, "  %s^\n", strings.Repeat(" ", graphemeWidth(line, pos.Col-1)))
		}
	}

	for _, rel := range err.GetSecondary() {
		fmt.Fprintf(&b, "  note: %s: %s\n", rel.Pos, rel.Message)
	}

	for _, hint := range err.GetHints() {
		fmt.Fprintf(&b, "  hint: %s\n", hint)
	}

	return b.String()
}

// sourceLine returns the 1-indexed nth line of source, without its
// terminating newline.
func sourceLine(source []byte, n int) (string, bool) {
	line := 1
	start := 0
	for i, c := range source {
		if line == n && c == '\n' {
			return string(source[start:i]), true
		}
		if c == '\n' {
			line++
			start = i + 1
		}
	}
	if line == n {
		return string(source[start:]), true
	}
	return "", false
}

// graphemeWidth returns cols (a 0-based column counted in grapheme
// clusters, as SourcePos.Col is) capped at the number of grapheme clusters
// in line, so combining code points before the caret count once. Each
// cluster counts as one column; wide characters are not measured.
func graphemeWidth(line string, cols int) int {
	count := 0
	gr := uniseg.NewGraphemes(line)
	for count < cols && gr.Next() {
		count++
	}
	return count
}
