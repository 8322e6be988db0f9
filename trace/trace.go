// Package trace loads reference traces, one decimal logical address per
// line.
package trace

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sarchlab/memsim/vm"
)

// A FormatError describes a line of a reference trace that does not hold a
// logical address.
type FormatError struct {
	Source string
	Line   int
	Text   string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s:%d: invalid logical address %q",
		e.Source, e.Line, e.Text)
}

// A Trace is an ordered list of logical addresses to translate. The file
// order is authoritative.
type Trace struct {
	Source    string
	Addresses []vm.Address
}

// Load reads a reference trace from a file.
func Load(path string) (*Trace, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Parse(file, path)
}

// Parse reads a reference trace. Blank lines are skipped. A line that does
// not hold a decimal address in [0, 65535] aborts the parse with a
// FormatError, so a malformed line can never turn into a zero address.
func Parse(r io.Reader, source string) (*Trace, error) {
	t := &Trace{Source: source}

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++

		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		value, err := strconv.Atoi(text)
		if err != nil || value < 0 || value >= vm.AddressSpaceSize {
			return nil, &FormatError{Source: source, Line: line, Text: text}
		}

		t.Addresses = append(t.Addresses, vm.Address(value))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", source, err)
	}

	return t, nil
}

// Len returns the number of addresses in the trace.
func (t *Trace) Len() int {
	return len(t.Addresses)
}

// FutureReferences returns, for every page, the ordered positions at which
// the trace references it. Position i is the i-th address of the trace.
// The result has one entry per page of the address space.
func (t *Trace) FutureReferences() [][]int {
	refs := make([][]int, vm.NumPages)
	for i, addr := range t.Addresses {
		page := addr.PageNumber()
		refs[page] = append(refs[page], i)
	}

	return refs
}
