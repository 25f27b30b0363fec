package cli

import (
	"fmt"
	"log"
	"time"

	"github.com/schollz/progressbar/v3"
)

// CLIProgressReporter implements crawl progress reporting with progress bars.
type CLIProgressReporter struct {
	quiet     bool
	fileBar   *progressbar.ProgressBar
	startTime time.Time
}

// NewCLIProgressReporter creates a new CLI progress reporter.
func NewCLIProgressReporter(quiet bool) *CLIProgressReporter {
	return &CLIProgressReporter{
		quiet:     quiet,
		startTime: time.Now(),
	}
}

func (c *CLIProgressReporter) OnSearchComplete(repoCount int) {
	if c.quiet {
		return
	}
	log.Printf("Found %d repositories\n", repoCount)
}

func (c *CLIProgressReporter) OnRepoStart(fullName, branch string, fileCount int) {
	if c.quiet {
		return
	}
	log.Printf("Processing %s (%s): %d candidate files\n", fullName, branch, fileCount)

	c.fileBar = progressbar.NewOptions(fileCount,
		progressbar.OptionSetDescription("Extracting methods"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)
}

func (c *CLIProgressReporter) OnFileProcessed(path string, samples int) {
	if c.quiet {
		return
	}
	if c.fileBar != nil {
		c.fileBar.Add(1)
	}
}

func (c *CLIProgressReporter) OnRepoDone(fullName string, inserted int) {
	if c.quiet {
		return
	}
	if c.fileBar != nil {
		c.fileBar.Finish()
		c.fileBar = nil
	}
	log.Printf("✓ %s: %d new samples\n", fullName, inserted)
}

func (c *CLIProgressReporter) OnRepoError(fullName string, err error) {
	if c.quiet {
		return
	}
	if c.fileBar != nil {
		c.fileBar.Finish()
		c.fileBar = nil
	}
	log.Printf("✗ %s skipped: %v\n", fullName, err)
}

func (c *CLIProgressReporter) OnComplete(totalSamples int) {
	if c.quiet {
		return
	}
	fmt.Println()
	fmt.Printf("✓ Crawl complete: %d samples in %.1fs\n",
		totalSamples, time.Since(c.startTime).Seconds())
}
