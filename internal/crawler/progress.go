package crawler

// ProgressReporter receives crawl lifecycle events. Implementations must be
// safe for calls from multiple goroutines during file processing.
type ProgressReporter interface {
	// OnSearchComplete reports how many repositories the search returned.
	OnSearchComplete(repos int)

	// OnRepoStart reports a repository about to be processed and the number
	// of candidate files found in its tree.
	OnRepoStart(fullName, branch string, files int)

	// OnFileProcessed reports one processed file and how many of its methods
	// survived filtering.
	OnFileProcessed(path string, kept int)

	// OnRepoDone reports a finished repository with its sample count.
	OnRepoDone(fullName string, samples int)

	// OnRepoError reports a repository skipped because of an error.
	OnRepoError(fullName string, err error)

	// OnComplete reports the final dataset size.
	OnComplete(totalSamples int)
}

// NoOpProgressReporter ignores all events.
type NoOpProgressReporter struct{}

func (NoOpProgressReporter) OnSearchComplete(int)            {}
func (NoOpProgressReporter) OnRepoStart(string, string, int) {}
func (NoOpProgressReporter) OnFileProcessed(string, int)     {}
func (NoOpProgressReporter) OnRepoDone(string, int)          {}
func (NoOpProgressReporter) OnRepoError(string, error)       {}
func (NoOpProgressReporter) OnComplete(int)                  {}
