package dataset

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/NguyenThaiVu/methodminer/internal/extract"
)

// Sample is one dataset row: an extracted method plus its provenance.
type Sample struct {
	RepoName  string
	RepoURL   string
	License   string
	CommitSHA string
	FilePath  string

	extract.MethodRecord
}

// NoLicense marks samples from repositories without a detected license.
const NoLicense = "NO-LICENSE"

// Hash returns the dedup key for a sample. Two samples are duplicates when
// they share repository, file path, method name, and original code.
func (s Sample) Hash() string {
	h := sha256.New()
	h.Write([]byte(s.RepoName))
	h.Write([]byte{0})
	h.Write([]byte(s.FilePath))
	h.Write([]byte{0})
	h.Write([]byte(s.MethodName))
	h.Write([]byte{0})
	h.Write([]byte(s.OriginalCode))
	return hex.EncodeToString(h.Sum(nil))
}
