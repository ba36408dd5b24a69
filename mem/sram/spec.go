package sram

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/sarchlab/memverif/mem"
)

// MaxAddressWidthBits bounds the address width so the address space stays
// addressable as a word count.
const MaxAddressWidthBits = 48

// MaxDataWidthBits is the widest word the model can hold.
const MaxDataWidthBits = 64

var (
	// ErrAddressOutOfRange is returned when an address does not fit the
	// configured address width.
	ErrAddressOutOfRange = mem.ErrAddressOutOfRange

	// ErrDataOutOfRange is returned when a data word does not fit the
	// configured data width.
	ErrDataOutOfRange = errors.New("data out of range")

	// ErrInvalidSpec is returned by Spec.Validate.
	ErrInvalidSpec = errors.New("invalid memory spec")
)

// ReadDuringWrite selects what the read port returns on an edge that also
// writes the addressed word.
type ReadDuringWrite int

const (
	// ReadFirst returns the word as it was before the edge.
	ReadFirst ReadDuringWrite = iota

	// WriteFirst returns the word written on the edge.
	WriteFirst
)

func (p ReadDuringWrite) String() string {
	switch p {
	case ReadFirst:
		return "read-first"
	case WriteFirst:
		return "write-first"
	default:
		return "unknown"
	}
}

// ParseReadDuringWrite converts "read-first" or "write-first" to a policy.
// An empty string selects ReadFirst.
func ParseReadDuringWrite(s string) (ReadDuringWrite, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "read-first":
		return ReadFirst, nil
	case "write-first":
		return WriteFirst, nil
	default:
		return ReadFirst, errors.Errorf("unknown read-during-write policy %q", s)
	}
}

// Spec holds the immutable configuration of a memory block.
type Spec struct {
	AddressWidthBits int
	DataWidthBits    int
	ReadDuringWrite  ReadDuringWrite
}

// Defaults returns a 16-word, 8-bit, read-first memory.
func Defaults() Spec {
	return Spec{
		AddressWidthBits: 4,
		DataWidthBits:    8,
		ReadDuringWrite:  ReadFirst,
	}
}

// Validate checks the widths and the policy.
func (s Spec) Validate() error {
	if s.AddressWidthBits < 1 || s.AddressWidthBits > MaxAddressWidthBits {
		return errors.Wrapf(ErrInvalidSpec,
			"address width must be within [1, %d] bits, got %d",
			MaxAddressWidthBits, s.AddressWidthBits)
	}

	if s.DataWidthBits < 1 || s.DataWidthBits > MaxDataWidthBits {
		return errors.Wrapf(ErrInvalidSpec,
			"data width must be within [1, %d] bits, got %d",
			MaxDataWidthBits, s.DataWidthBits)
	}

	if s.ReadDuringWrite != ReadFirst && s.ReadDuringWrite != WriteFirst {
		return errors.Wrapf(ErrInvalidSpec,
			"unknown read-during-write policy %d", s.ReadDuringWrite)
	}

	return nil
}

// Words returns the number of addressable words.
func (s Spec) Words() uint64 {
	return uint64(1) << uint(s.AddressWidthBits)
}

// DataMask returns a mask with the low DataWidthBits bits set.
func (s Spec) DataMask() uint64 {
	if s.DataWidthBits >= 64 {
		return ^uint64(0)
	}

	return uint64(1)<<uint(s.DataWidthBits) - 1
}

// CheckAddress tells if the address fits the address width.
func (s Spec) CheckAddress(addr uint64) error {
	if addr >= s.Words() {
		return errors.Wrapf(ErrAddressOutOfRange,
			"address 0x%x does not fit in %d bits", addr, s.AddressWidthBits)
	}

	return nil
}

// CheckData tells if the word fits the data width.
func (s Spec) CheckData(data uint64) error {
	if data&^s.DataMask() != 0 {
		return errors.Wrapf(ErrDataOutOfRange,
			"data 0x%x does not fit in %d bits", data, s.DataWidthBits)
	}

	return nil
}
