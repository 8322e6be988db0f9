package replacement

import (
	"fmt"
	"strings"
)

// Policy identifies a page replacement algorithm.
type Policy string

// The supported replacement policies.
const (
	FIFO Policy = "FIFO"
	LRU  Policy = "LRU"
	OPT  Policy = "OPT"
)

// ParsePolicy converts a case-insensitive policy name into a Policy. An
// empty name selects FIFO.
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "", "FIFO":
		return FIFO, nil
	case "LRU":
		return LRU, nil
	case "OPT":
		return OPT, nil
	}

	return "", fmt.Errorf("unknown replacement policy %q", name)
}

// NewVictimFinder creates the victim finder for a policy. OPT needs the
// future references of the trace, as built by trace.FutureReferences; the
// other policies ignore them.
func NewVictimFinder(policy Policy, refs [][]int) VictimFinder {
	switch policy {
	case FIFO:
		return NewFIFOVictimFinder()
	case LRU:
		return NewLRUVictimFinder()
	case OPT:
		return NewOPTVictimFinder(refs)
	}

	panic(fmt.Sprintf("unknown replacement policy %q", policy))
}
