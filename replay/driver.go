// Package replay drives the addresses of a recorded trace through a
// translator, one at a time.
package replay

import (
	"sync"

	"github.com/sarchlab/memsim/monitoring"
	"github.com/sarchlab/memsim/trace"
	"github.com/sarchlab/memsim/translator"
)

// A Driver replays an address trace through a translator. A Driver can be
// paused and continued while a replay is running.
type Driver struct {
	translator *translator.Comp
	trace      *trace.Trace
	monitor    *monitoring.Monitor

	isPaused     bool
	isPausedLock sync.Mutex
	pauseLock    sync.Mutex

	singleRunLock sync.Mutex
}

// NewDriver creates a Driver that replays the given trace through the given
// translator.
func NewDriver(t *translator.Comp, tr *trace.Trace) *Driver {
	return &Driver{
		translator: t,
		trace:      tr,
	}
}

// WithMonitor makes the driver report its progress to the monitor and serve
// the monitor's pause and continue requests.
func (d *Driver) WithMonitor(m *monitoring.Monitor) *Driver {
	d.monitor = m
	m.RegisterDriver(d)

	return d
}

// Run replays every address of the trace in order. It returns the
// statistics accumulated up to the last completed translation and the first
// error encountered, if any.
func (d *Driver) Run() (translator.Stats, error) {
	d.singleRunLock.Lock()
	defer d.singleRunLock.Unlock()

	var bar *monitoring.ProgressBar
	if d.monitor != nil {
		bar = d.monitor.CreateProgressBar(
			"Replaying "+d.trace.Source, uint64(d.trace.Len()))
		defer d.monitor.CompleteProgressBar(bar)
	}

	for _, addr := range d.trace.Addresses {
		d.pauseLock.Lock()

		if bar != nil {
			bar.IncrementInProgress(1)
		}

		_, err := d.translator.Translate(addr)
		if err != nil {
			d.pauseLock.Unlock()
			return d.translator.Stats(), err
		}

		if bar != nil {
			bar.MoveInProgressToFinished(1)
		}

		d.pauseLock.Unlock()
	}

	return d.translator.Stats(), nil
}

// Pause prevents the Driver from replaying more addresses.
func (d *Driver) Pause() {
	d.isPausedLock.Lock()
	defer d.isPausedLock.Unlock()

	if d.isPaused {
		return
	}

	d.pauseLock.Lock()
	d.isPaused = true
}

// Continue allows the Driver to replay more addresses.
func (d *Driver) Continue() {
	d.isPausedLock.Lock()
	defer d.isPausedLock.Unlock()

	if !d.isPaused {
		return
	}

	d.pauseLock.Unlock()
	d.isPaused = false
}
