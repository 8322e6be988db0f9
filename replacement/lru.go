package replacement

// LRUVictimFinder evicts the least recently used frame. Every Visit and
// Fill refreshes the use time of the frame, including references that
// resolve in the TLB.
type LRUVictimFinder struct {
	clock   int
	lastUse map[int]int
}

// NewLRUVictimFinder returns a newly constructed LRU evictor.
func NewLRUVictimFinder() *LRUVictimFinder {
	e := new(LRUVictimFinder)
	e.lastUse = make(map[int]int)
	return e
}

// Visit marks the frame as the most recently used.
func (e *LRUVictimFinder) Visit(frame, page int) {
	e.touch(frame)
}

// Fill marks the frame as the most recently used.
func (e *LRUVictimFinder) Fill(frame, page int) {
	e.touch(frame)
}

// FindVictim returns the tracked frame with the oldest use and stops
// tracking it. Ties fall to the smaller frame index.
func (e *LRUVictimFinder) FindVictim() int {
	victim := -1
	oldest := 0

	for frame, use := range e.lastUse {
		if victim == -1 || use < oldest ||
			(use == oldest && frame < victim) {
			victim = frame
			oldest = use
		}
	}

	if victim != -1 {
		delete(e.lastUse, victim)
	}

	return victim
}

func (e *LRUVictimFinder) touch(frame int) {
	e.clock++
	e.lastUse[frame] = e.clock
}
