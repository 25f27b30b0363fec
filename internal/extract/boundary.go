package extract

import "strings"

// Locate finds the 1-based inclusive end line of a method whose declaration
// starts at startLine (1-based), by brace-depth matching over raw lines.
//
// The declaration may span several lines before its body opens (generics,
// multi-line parameter lists), so the scan first advances to the first line at
// or after startLine that contains an opening brace. From there a running
// depth adds the count of '{' and subtracts the count of '}' per line; the
// first line where the depth returns to zero is the end line.
//
// Braces inside string or character literals and comments are counted like any
// other occurrence. This can miscount depth for adversarial inputs and is kept
// intentionally; hardening it would change end lines on existing sources.
//
// Returns false when startLine is out of range, no opening brace follows it,
// or the depth never returns to zero before the file ends.
func Locate(lines []string, startLine int) (int, bool) {
	if startLine < 1 {
		return 0, false
	}

	open := startLine - 1
	for open < len(lines) && !strings.Contains(lines[open], "{") {
		open++
	}
	if open >= len(lines) {
		return 0, false
	}

	depth := 0
	for j := open; j < len(lines); j++ {
		depth += strings.Count(lines[j], "{")
		depth -= strings.Count(lines[j], "}")
		if depth == 0 {
			return j + 1, true
		}
	}
	return 0, false
}
