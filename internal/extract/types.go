package extract

// MethodRecord is one extracted method, ready for dataset assembly.
// OriginalCode is the byte-for-byte slice of the source between StartLine and
// EndLine (inclusive, 1-based), comments and whitespace included. Provenance
// fields (repository, file path, commit) are attached downstream.
type MethodRecord struct {
	MethodName   string
	StartLine    int
	EndLine      int
	Signature    string
	OriginalCode string
	CodeTokens   []string
}
