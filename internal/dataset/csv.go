package dataset

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// csvHeader is the dataset column order. CodeTokens are serialized as a JSON
// array so the column survives round-trips through CSV readers.
var csvHeader = []string{
	"repo_name", "repo_url", "repo_license", "commit_sha", "file_path",
	"method_name", "start_line", "end_line", "signature", "original_code", "code_tokens",
}

// WriteCSV writes samples to path, overwriting any existing file.
func WriteCSV(path string, samples []Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, sample := range samples {
		tokens, err := json.Marshal(sample.CodeTokens)
		if err != nil {
			return fmt.Errorf("failed to encode tokens for %s: %w", sample.MethodName, err)
		}

		row := []string{
			sample.RepoName,
			sample.RepoURL,
			sample.License,
			sample.CommitSHA,
			sample.FilePath,
			sample.MethodName,
			strconv.Itoa(sample.StartLine),
			strconv.Itoa(sample.EndLine),
			sample.Signature,
			sample.OriginalCode,
			string(tokens),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write sample %s: %w", sample.MethodName, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}
