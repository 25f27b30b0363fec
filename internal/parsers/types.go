package parsers

import "context"

// MethodDecl is one method declaration found by the tree-sitter pass.
// StartLine is 1-based. The body boundary is not resolved here; the extraction
// pipeline derives it from the raw source lines.
type MethodDecl struct {
	Name       string
	StartLine  int
	Modifiers  []string
	ReturnType string
	ParamTypes []string
}

// Parser produces method declarations from source text in one language.
type Parser interface {
	// Language returns the language identifier (e.g. "java").
	Language() string

	// Extensions returns the file extensions this parser handles, with dots.
	Extensions() []string

	// Parse returns the method declarations of a source file in document
	// order. Unparseable source yields nil declarations and no error; such
	// files contribute zero records.
	Parse(ctx context.Context, source []byte) ([]MethodDecl, error)
}
