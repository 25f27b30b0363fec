package extract

import (
	"strings"

	"github.com/NguyenThaiVu/methodminer/internal/parsers"
)

// FromDeclarations runs the per-file extraction pipeline: for each declaration
// the parser pass produced, locate the method's textual end, slice its source
// span, and tokenize it. Declarations with no start line or no brace-matched
// end are skipped silently; that is expected for malformed or truncated
// excerpts, not a failure.
//
// The returned batch is unfiltered; callers run Filter once over it.
func FromDeclarations(lines []string, decls []parsers.MethodDecl) []MethodRecord {
	records := make([]MethodRecord, 0, len(decls))
	for _, d := range decls {
		if d.StartLine < 1 {
			continue
		}
		end, ok := Locate(lines, d.StartLine)
		if !ok {
			continue
		}

		original := strings.Join(lines[d.StartLine-1:end], "\n")
		records = append(records, MethodRecord{
			MethodName:   d.Name,
			StartLine:    d.StartLine,
			EndLine:      end,
			Signature:    Signature(d),
			OriginalCode: original,
			CodeTokens:   Tokenize(original),
		})
	}
	return records
}

// Signature assembles the flat signature string stored with each record:
// "<modifiers> <return type> <name>(<parameter types>)".
func Signature(d parsers.MethodDecl) string {
	var b strings.Builder
	if len(d.Modifiers) > 0 {
		b.WriteString(strings.Join(d.Modifiers, " "))
		b.WriteString(" ")
	}
	if d.ReturnType != "" {
		b.WriteString(d.ReturnType)
		b.WriteString(" ")
	}
	b.WriteString(d.Name)
	b.WriteString("(")
	b.WriteString(strings.Join(d.ParamTypes, ", "))
	b.WriteString(")")
	return b.String()
}
