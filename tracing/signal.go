// Package tracing records how the signals of a bench change over simulated
// time, for debugging with a waveform viewer or a database.
//
// Tracing is best effort. It observes the simulation through hooks and never
// influences it.
package tracing

import (
	"github.com/sarchlab/memverif/mem/sram"
	"github.com/sarchlab/memverif/sim"
)

// A Signal is a named wire or bus whose value can be probed.
type Signal struct {
	Name  string
	Width int
	Value func() uint64
}

// A Sample is the value of a signal from a point in time on.
type Sample struct {
	Time   sim.VTime
	Signal string
	Value  uint64
}

// A TraceWriter stores samples.
type TraceWriter interface {
	// Init prepares the storage for the given signals. Init is called once,
	// before any sample is written.
	Init(signals []Signal) error

	// Write buffers a sample. Samples arrive in time order.
	Write(sample Sample)

	// Flush writes all buffered samples.
	Flush()
}

func boolValue(b bool) uint64 {
	if b {
		return 1
	}

	return 0
}

// BenchSignals returns the clock, the reset line and the ports of a memory
// block.
func BenchSignals(clock *sim.Clock, ram *sram.Comp) []Signal {
	addrBits := ram.Spec.AddressWidthBits
	dataBits := ram.Spec.DataWidthBits

	return []Signal{
		{Name: "clk", Width: 1, Value: func() uint64 {
			return boolValue(clock.Level())
		}},
		{Name: "rst", Width: 1, Value: func() uint64 {
			return boolValue(clock.ResetAsserted())
		}},
		{Name: "we", Width: 1, Value: func() uint64 {
			return boolValue(ram.Ports.WriteEnable)
		}},
		{Name: "addr", Width: addrBits, Value: func() uint64 {
			return ram.Ports.Address
		}},
		{Name: "din", Width: dataBits, Value: func() uint64 {
			return ram.Ports.DataIn
		}},
		{Name: "dout", Width: dataBits, Value: func() uint64 {
			return ram.Ports.DataOut
		}},
	}
}
