package extract

import "regexp"

// tokenPattern is the fixed lexical grammar, longest-match-first at each
// position in alternation order:
//
//	identifier/keyword  [A-Za-z_][A-Za-z0-9_]*
//	integer literal     \d+
//	double-quoted string  "..." non-greedy, may span lines
//	single-quoted string  '...' non-greedy, may span lines
//	two-char operators  == != <= >= && ||
//	fallback            any single non-whitespace character
//
// Quoted strings carry no escape handling: an escaped quote terminates the
// literal early. Kept as-is; escape-awareness would alter token streams for
// existing text.
var tokenPattern = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*|\d+|"(?s:.*?)"|'(?s:.*?)'|==|!=|<=|>=|&&|\|\||\S`)

// Tokenize splits method source text into a flat ordered token sequence.
// Whitespace is never emitted; anything the named classes miss comes out
// through the single-character fallback, so no input can fail to lex.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(text, -1)
}
