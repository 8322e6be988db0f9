// Package tracing provides tracers that observe the translations a
// translator completes.
package tracing

import "github.com/sarchlab/memsim/translator"

// A Tracer can collect translation traces.
type Tracer interface {
	// TranslationDone is called after an address resolves.
	TranslationDone(t translator.Translation)

	// PageFault is called when a page is loaded from the backing store.
	PageFault(f translator.FaultInfo)
}
