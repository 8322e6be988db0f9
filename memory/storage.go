// Package memory models the physical memory of the simulated machine.
package memory

import (
	"errors"
	"fmt"

	"github.com/sarchlab/memsim/vm"
)

// A Storage keeps the data of the simulated physical memory.
//
// The storage is organized in frames of vm.PageSize bytes each. Whole
// frames are filled when a page is loaded from the backing store, and
// individual bytes are read when a translation resolves.
type Storage struct {
	frames int
	data   []byte
}

// NewStorage creates a Storage with the given number of frames.
func NewStorage(frames int) *Storage {
	storage := new(Storage)

	storage.frames = frames
	storage.data = make([]byte, frames*vm.PageSize)

	return storage
}

// Frames returns the number of frames the storage holds.
func (s *Storage) Frames() int {
	return s.frames
}

// WriteFrame fills a whole frame with the given data. The data must be
// exactly one frame long.
func (s *Storage) WriteFrame(frame int, data []byte) error {
	if frame < 0 || frame >= s.frames {
		return fmt.Errorf(
			"accessing frame %d beyond the storage capacity", frame)
	}

	if len(data) != vm.PageSize {
		return fmt.Errorf("frame data must be %d bytes, got %d",
			vm.PageSize, len(data))
	}

	copy(s.data[frame*vm.PageSize:(frame+1)*vm.PageSize], data)

	return nil
}

// ReadFrame returns a copy of the data held in a frame.
func (s *Storage) ReadFrame(frame int) ([]byte, error) {
	if frame < 0 || frame >= s.frames {
		return nil, fmt.Errorf(
			"accessing frame %d beyond the storage capacity", frame)
	}

	data := make([]byte, vm.PageSize)
	copy(data, s.data[frame*vm.PageSize:(frame+1)*vm.PageSize])

	return data, nil
}

// Read returns a copy of n bytes starting at the given physical address.
func (s *Storage) Read(address, n int) ([]byte, error) {
	if address < 0 || n < 0 || address+n > len(s.data) {
		return nil, errors.New(
			"accessing physical address beyond the storage capacity")
	}

	data := make([]byte, n)
	copy(data, s.data[address:address+n])

	return data, nil
}

// Byte returns the byte at the given physical address.
func (s *Storage) Byte(address int) (byte, error) {
	data, err := s.Read(address, 1)
	if err != nil {
		return 0, err
	}

	return data[0], nil
}
