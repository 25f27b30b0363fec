package extract

import (
	"regexp"
	"strings"
)

// Default line-count thresholds for Filter. Overridable per invocation.
const (
	DefaultMinLines = 3
	DefaultMaxLines = 100
)

// commentPattern removes //-to-end-of-line runs and /* ... */ blocks.
// Block comments may span lines; matching is non-greedy.
var commentPattern = regexp.MustCompile(`(?ms)//.*?$|/\*.*?\*/`)

// StripComments returns src with line and block comments removed. Used only to
// build a check copy for filtering; stored OriginalCode keeps its comments.
// Idempotent on already-stripped text.
func StripComments(src string) string {
	return commentPattern.ReplaceAllString(src, "")
}

// EffectiveLineCount counts the non-blank lines of src after comment removal.
// This is the basis for the filtering thresholds.
func EffectiveLineCount(src string) int {
	count := 0
	for _, line := range strings.Split(StripComments(src), "\n") {
		if strings.TrimSpace(line) != "" {
			count++
		}
	}
	return count
}

// Filter drops records whose comment-stripped body is empty, shorter than
// minLines, or longer than maxLines. Comments stay in the kept records; they
// are removed only for the check. Order-preserving; never reorders or
// deduplicates (deduplication happens across the whole dataset downstream).
func Filter(records []MethodRecord, minLines, maxLines int) []MethodRecord {
	kept := make([]MethodRecord, 0, len(records))
	for _, r := range records {
		n := EffectiveLineCount(r.OriginalCode)
		if n == 0 {
			continue // only comments, no executable code
		}
		if n < minLines || n > maxLines {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}
