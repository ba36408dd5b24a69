// Package mem provides the storage behind the simulated memory blocks.
package mem

import (
	"github.com/pkg/errors"
)

// ErrAddressOutOfRange is returned when an address does not fall into the
// storage.
var ErrAddressOutOfRange = errors.New("address out of range")

// DefaultUnitSize is the number of words allocated together.
const DefaultUnitSize = 256

// A Storage keeps the words of a simulated memory.
//
// The storage manages the words in units, similar to the concept of a page in
// memory management. Units that are never written are not allocated and read
// as zero, so a Storage with a large capacity stays cheap until it is used.
type Storage struct {
	unitSize uint64
	capacity uint64
	data     map[uint64][]uint64
}

// NewStorage creates a storage that holds capacity words.
func NewStorage(capacity uint64) *Storage {
	return NewStorageWithUnitSize(capacity, DefaultUnitSize)
}

// NewStorageWithUnitSize creates a storage that allocates unitSize words at a
// time.
func NewStorageWithUnitSize(capacity, unitSize uint64) *Storage {
	if unitSize == 0 {
		unitSize = DefaultUnitSize
	}

	storage := new(Storage)
	storage.unitSize = unitSize
	storage.capacity = capacity
	storage.data = make(map[uint64][]uint64)

	return storage
}

// Capacity returns the number of words the storage can hold.
func (s *Storage) Capacity() uint64 {
	return s.capacity
}

func (s *Storage) parseAddress(addr uint64) (baseAddr, inUnitAddr uint64) {
	inUnitAddr = addr % s.unitSize
	baseAddr = addr - inUnitAddr

	return
}

func (s *Storage) checkAddress(address uint64) error {
	if address >= s.capacity {
		return errors.Wrapf(ErrAddressOutOfRange,
			"accessing word 0x%x of a storage of %d words",
			address, s.capacity)
	}

	return nil
}

// Read returns the word at the address. Words never written read zero.
func (s *Storage) Read(address uint64) (uint64, error) {
	if err := s.checkAddress(address); err != nil {
		return 0, err
	}

	baseAddr, inUnitAddr := s.parseAddress(address)

	unit, ok := s.data[baseAddr]
	if !ok {
		return 0, nil
	}

	return unit[inUnitAddr], nil
}

// Write stores the word at the address.
func (s *Storage) Write(address uint64, word uint64) error {
	if err := s.checkAddress(address); err != nil {
		return err
	}

	baseAddr, inUnitAddr := s.parseAddress(address)

	unit, ok := s.data[baseAddr]
	if !ok {
		if word == 0 {
			return nil
		}

		unit = make([]uint64, s.unitSize)
		s.data[baseAddr] = unit
	}

	unit[inUnitAddr] = word

	return nil
}

// Reset sets every word to zero.
func (s *Storage) Reset() {
	s.data = make(map[uint64][]uint64)
}

// AllocatedUnits returns the number of units that hold data.
func (s *Storage) AllocatedUnits() int {
	return len(s.data)
}
