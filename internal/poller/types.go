// internal/poller/types.go
package poller

import (
	"time"

	"github.com/tamzrod/aquamon/internal/report"
)

// PollResult is a snapshot produced by one poll cycle.
type PollResult struct {
	Device string
	At     time.Time

	// Report is the decoded snapshot for this cycle. nil when Err is
	// non-nil.
	Report *report.Report

	Err error // non-nil means the poll cycle failed
}
