package sram

import (
	log "github.com/sirupsen/logrus"

	"github.com/sarchlab/memverif/mem"
	"github.com/sarchlab/memverif/sim"
)

// Builder constructs a Comp either from a Spec or per-field setters.
type Builder struct {
	spec      Spec
	clock     *sim.Clock
	resetLine ResetLine
	ports     *Ports
}

// MakeBuilder returns a new Builder with the default Spec.
func MakeBuilder() Builder {
	return Builder{spec: Defaults()}
}

// WithSpec replaces the whole spec.
func (b Builder) WithSpec(spec Spec) Builder {
	b.spec = spec
	return b
}

// WithAddressWidth sets the number of address bits.
func (b Builder) WithAddressWidth(bits int) Builder {
	b.spec.AddressWidthBits = bits
	return b
}

// WithDataWidth sets the number of bits per word.
func (b Builder) WithDataWidth(bits int) Builder {
	b.spec.DataWidthBits = bits
	return b
}

// WithReadDuringWrite sets the read-during-write policy.
func (b Builder) WithReadDuringWrite(p ReadDuringWrite) Builder {
	b.spec.ReadDuringWrite = p
	return b
}

// WithClock attaches the memory to the clock. The clock also serves as the
// reset line unless WithResetLine says otherwise.
func (b Builder) WithClock(clock *sim.Clock) Builder {
	b.clock = clock
	return b
}

// WithResetLine sets where the memory reads reset from.
func (b Builder) WithResetLine(r ResetLine) Builder {
	b.resetLine = r
	return b
}

// WithPorts makes the memory use externally owned ports.
func (b Builder) WithPorts(p *Ports) Builder {
	b.ports = p
	return b
}

// Build creates the memory block. It panics if the spec is invalid.
func (b Builder) Build(name string) *Comp {
	if err := b.spec.Validate(); err != nil {
		log.Panicf("cannot build %s: %v", name, err)
	}

	c := &Comp{
		name:    name,
		Spec:    b.spec,
		Ports:   b.ports,
		Storage: mem.NewStorage(b.spec.Words()),
		reset:   b.resetLine,
	}

	if c.Ports == nil {
		c.Ports = &Ports{}
	}

	if b.clock != nil {
		if c.reset == nil {
			c.reset = b.clock
		}

		b.clock.Attach(c)
	}

	return c
}
