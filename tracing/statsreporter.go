package tracing

import (
	"fmt"
	"io"

	"github.com/sarchlab/memsim/translator"
)

// A StatsReporter prints the aggregate statistics of a finished replay.
type StatsReporter struct {
	w io.Writer
}

// NewStatsReporter creates a StatsReporter that prints to the given writer.
func NewStatsReporter(w io.Writer) *StatsReporter {
	return &StatsReporter{w: w}
}

// Report prints the page fault and TLB counters.
func (r *StatsReporter) Report(stats translator.Stats) {
	fmt.Fprintf(r.w, "Page Faults: %d, Page Fault Rate: %g%%\n",
		stats.PageFaults, stats.PageFaultRate())
	fmt.Fprintf(r.w, "TLB Hits: %d, TLB Misses: %d\n",
		stats.TLBHits, stats.TLBMisses)
}
