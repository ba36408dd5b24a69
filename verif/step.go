package verif

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Kind tells what a step does.
type Kind int

// The step kinds.
const (
	KindWrite Kind = iota
	KindRead
)

func (k Kind) String() string {
	switch k {
	case KindWrite:
		return "WRITE"
	case KindRead:
		return "READ"
	default:
		return "UNKNOWN"
	}
}

// ParseKind converts "write" or "read" (any case) to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "write":
		return KindWrite, nil
	case "read":
		return KindRead, nil
	default:
		return 0, errors.Errorf("unknown step kind %q", s)
	}
}

// A Step is one clock period of stimulus.
type Step struct {
	Kind    Kind
	Address uint64

	// Data is the word to write. Reads do not carry data.
	Data uint64

	// Expected is the word a read must observe, or nil if the read is not
	// checked. Writes carry no expectation.
	Expected *uint64
}

// Write creates a step that writes data to the address.
func Write(address, data uint64) Step {
	return Step{Kind: KindWrite, Address: address, Data: data}
}

// Read creates a step that reads the address and expects the given word.
func Read(address, expected uint64) Step {
	return Step{Kind: KindRead, Address: address, Expected: &expected}
}

// ReadUnchecked creates a step that reads the address without checking it.
func ReadUnchecked(address uint64) Step {
	return Step{Kind: KindRead, Address: address}
}

// ExpectedWord returns the expectation, if any.
func (s Step) ExpectedWord() (uint64, bool) {
	if s.Expected == nil {
		return 0, false
	}

	return *s.Expected, true
}

// clone returns a copy of the step that shares no memory with s.
func (s Step) clone() Step {
	if s.Expected != nil {
		exp := *s.Expected
		s.Expected = &exp
	}

	return s
}

func (s Step) String() string {
	switch s.Kind {
	case KindWrite:
		return fmt.Sprintf("WRITE 0x%x <- 0x%x", s.Address, s.Data)
	case KindRead:
		if exp, ok := s.ExpectedWord(); ok {
			return fmt.Sprintf("READ 0x%x == 0x%x", s.Address, exp)
		}

		return fmt.Sprintf("READ 0x%x", s.Address)
	default:
		return fmt.Sprintf("%s 0x%x", s.Kind, s.Address)
	}
}

// A Script is an ordered list of steps together with the parameters they run
// under.
type Script struct {
	Config Config
	Steps  []Step
}

// Validate checks the config and that every step fits the configured widths.
func (s Script) Validate() error {
	if err := s.Config.Validate(); err != nil {
		return err
	}

	spec := s.Config.MemSpec()

	for i, step := range s.Steps {
		field := func(name string) string {
			return fmt.Sprintf("steps[%d].%s", i, name)
		}

		if err := spec.CheckAddress(step.Address); err != nil {
			return configError(field("address"), err)
		}

		switch step.Kind {
		case KindWrite:
			if err := spec.CheckData(step.Data); err != nil {
				return configError(field("data"), err)
			}

			if step.Expected != nil {
				return configError(field("expected"),
					errors.New("write steps cannot carry an expectation"))
			}
		case KindRead:
			if step.Data != 0 {
				return configError(field("data"),
					errors.New("read steps cannot carry data"))
			}

			if exp, ok := step.ExpectedWord(); ok {
				if err := spec.CheckData(exp); err != nil {
					return configError(field("expected"), err)
				}
			}
		default:
			return configError(field("kind"),
				errors.Errorf("unknown step kind %d", step.Kind))
		}
	}

	return nil
}

// CalibrationScript returns the reference script for a 4-bit address, 8-bit
// data memory: three write/read pairs on the first, middle and last words, a
// read of a word never written, and an overwrite.
func CalibrationScript() Script {
	return Script{
		Config: DefaultConfig(),
		Steps: []Step{
			Write(0x0, 0xaa),
			Read(0x0, 0xaa),
			Write(0x5, 0x55),
			Read(0x5, 0x55),
			Write(0xf, 0xff),
			Read(0xf, 0xff),
			Read(0x2, 0x00),
			Write(0x0, 0x12),
			Read(0x0, 0x12),
		},
	}
}
