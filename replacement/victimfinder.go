// Package replacement provides the page replacement policies that choose
// which frame to evict when physical memory is full.
package replacement

// A VictimFinder decides which frame should be evicted when a page must be
// loaded and no free frame remains.
//
// The translator reports every reference to a resident frame through Visit
// and every page load through Fill, so that each algorithm can maintain
// the bookkeeping it needs. Exactly one of Visit or Fill is reported per
// translated address.
type VictimFinder interface {
	// Visit records that a reference touched a resident frame.
	Visit(frame, page int)

	// Fill records that a page was just loaded into a frame.
	Fill(frame, page int)

	// FindVictim returns the frame to evict, or -1 if the finder tracks
	// no frame.
	FindVictim() int
}
