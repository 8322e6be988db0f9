package replacement

import "fmt"

// FIFOVictimFinder evicts frames in the order they were filled. Reuse of a
// resident frame does not affect the eviction order, so once memory is
// full the frames are recycled round-robin.
type FIFOVictimFinder struct {
	queue []int
}

// NewFIFOVictimFinder returns a newly constructed FIFO evictor.
func NewFIFOVictimFinder() *FIFOVictimFinder {
	return new(FIFOVictimFinder)
}

// Visit does nothing.
func (e *FIFOVictimFinder) Visit(frame, page int) {
}

// Fill puts the frame at the back of the eviction queue.
func (e *FIFOVictimFinder) Fill(frame, page int) {
	e.frameMustNotBeQueued(frame)

	e.queue = append(e.queue, frame)
}

// FindVictim returns the frame that was filled earliest and removes it
// from the queue.
func (e *FIFOVictimFinder) FindVictim() int {
	if len(e.queue) == 0 {
		return -1
	}

	frame := e.queue[0]
	e.queue = e.queue[1:]

	return frame
}

func (e *FIFOVictimFinder) frameMustNotBeQueued(frame int) {
	for _, queued := range e.queue {
		if queued == frame {
			panic(fmt.Sprintf("frame %d is already queued", frame))
		}
	}
}
