// Package backingstore provides the page source that backs the simulated
// logical address space.
package backingstore

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sarchlab/memsim/vm"
)

// ErrUnavailable indicates that the store cannot serve pages at all, such
// as a missing or wrongly sized backing file.
var ErrUnavailable = errors.New("backing store unavailable")

// ErrShortRead indicates that a page could not be read in full.
var ErrShortRead = errors.New("short read from backing store")

// A Store serves the content of logical pages that are not resident in
// physical memory.
type Store interface {
	// ReadPage returns the vm.PageSize bytes of the given page.
	ReadPage(page int) ([]byte, error)

	// PageCount returns the number of pages the store holds.
	PageCount() int
}

// A FileStore serves pages from a fixed-size binary file. The file must
// cover the whole logical address space.
type FileStore struct {
	file *os.File
	path string
}

// OpenFileStore opens the file at the given path and validates its size.
func OpenFileStore(path string) (*FileStore, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if info.Size() != vm.AddressSpaceSize {
		file.Close()
		return nil, fmt.Errorf("%w: %s is %d bytes, want %d",
			ErrUnavailable, path, info.Size(), vm.AddressSpaceSize)
	}

	return &FileStore{file: file, path: path}, nil
}

// ReadPage returns the content of the given page.
func (s *FileStore) ReadPage(page int) ([]byte, error) {
	if page < 0 || page >= s.PageCount() {
		return nil, fmt.Errorf("%w: page %d is beyond the store",
			ErrUnavailable, page)
	}

	data := make([]byte, vm.PageSize)
	n, err := s.file.ReadAt(data, int64(page)*vm.PageSize)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: page %d of %s: %v",
			ErrShortRead, page, s.path, err)
	}
	if n != vm.PageSize {
		return nil, fmt.Errorf("%w: page %d of %s: read %d of %d bytes",
			ErrShortRead, page, s.path, n, vm.PageSize)
	}

	return data, nil
}

// PageCount returns the number of pages the store holds.
func (s *FileStore) PageCount() int {
	return vm.NumPages
}

// Path returns the path of the backing file.
func (s *FileStore) Path() string {
	return s.path
}

// Close releases the backing file.
func (s *FileStore) Close() error {
	return s.file.Close()
}

// A MemStore serves pages from an in-memory byte slice. It is mainly useful
// for tests and for embedding the simulator as a library.
type MemStore struct {
	data []byte
}

// NewMemStore creates a MemStore over the given data. The data must be a
// whole number of pages.
func NewMemStore(data []byte) *MemStore {
	if len(data)%vm.PageSize != 0 {
		panic("backing data must be a whole number of pages")
	}

	return &MemStore{data: data}
}

// ReadPage returns a copy of the content of the given page.
func (s *MemStore) ReadPage(page int) ([]byte, error) {
	if page < 0 || page >= s.PageCount() {
		return nil, fmt.Errorf("%w: page %d is beyond the store",
			ErrUnavailable, page)
	}

	data := make([]byte, vm.PageSize)
	copy(data, s.data[page*vm.PageSize:(page+1)*vm.PageSize])

	return data, nil
}

// PageCount returns the number of pages the store holds.
func (s *MemStore) PageCount() int {
	return len(s.data) / vm.PageSize
}
