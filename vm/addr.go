// Package vm provides the logical address model and the page table for
// demand-paged address translation.
package vm

const (
	// PageSize is the number of bytes in a page and in a frame.
	PageSize = 256

	// NumPages is the number of pages in the logical address space.
	NumPages = 256

	// AddressSpaceSize is the total number of addressable bytes.
	AddressSpaceSize = NumPages * PageSize
)

// An Address is a 16-bit logical address. The high 8 bits select a page and
// the low 8 bits select a byte within that page.
type Address uint16

// PageNumber returns the page that the address falls in.
func (a Address) PageNumber() int {
	return int(a>>8) & 0xff
}

// Offset returns the position of the address within its page.
func (a Address) Offset() int {
	return int(a) & 0xff
}

// PhysicalAddress returns the position of a byte in physical memory, given
// the frame that holds its page and the offset within the page.
func PhysicalAddress(frame, offset int) int {
	return frame*PageSize + offset
}
