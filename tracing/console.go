package tracing

import (
	"fmt"
	"io"

	"github.com/sarchlab/memsim/translator"
)

// A ConsoleTracer prints one line for every translated address, marking it
// as a TLB hit or miss.
type ConsoleTracer struct {
	w io.Writer
}

// NewConsoleTracer creates a ConsoleTracer that prints to the given writer.
func NewConsoleTracer(w io.Writer) *ConsoleTracer {
	return &ConsoleTracer{w: w}
}

// TranslationDone prints the line for one translated address.
func (t *ConsoleTracer) TranslationDone(tr translator.Translation) {
	if tr.TLBHit {
		fmt.Fprintf(t.w, "HIT on address %d on frame %d\n",
			tr.Address, tr.Frame)
		return
	}

	fmt.Fprintf(t.w, "MISS on address %d\n", tr.Address)
}

// PageFault does nothing. Faults show up as misses in the address lines.
func (t *ConsoleTracer) PageFault(translator.FaultInfo) {
}
