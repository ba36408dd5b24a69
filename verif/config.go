package verif

import (
	"github.com/pkg/errors"

	"github.com/sarchlab/memverif/mem/sram"
	"github.com/sarchlab/memverif/sim"
)

// Config holds the global parameters of a run.
type Config struct {
	AddressWidthBits int
	DataWidthBits    int

	// ClockPeriod is the length of a clock cycle in TimeUnit. It must be even
	// so that both clock phases last a whole number of units.
	ClockPeriod sim.VTime
	TimeUnit    string

	// ResetHoldPeriods is how many periods reset stays asserted before the
	// first step.
	ResetHoldPeriods uint64

	ReadDuringWrite sram.ReadDuringWrite
}

// DefaultConfig returns the parameters of the calibration script: 4 address
// bits, 8 data bits, a 10ns clock and two periods of reset.
func DefaultConfig() Config {
	return Config{
		AddressWidthBits: 4,
		DataWidthBits:    8,
		ClockPeriod:      10,
		TimeUnit:         "ns",
		ResetHoldPeriods: 2,
		ReadDuringWrite:  sram.ReadFirst,
	}
}

// MemSpec returns the spec of the memory block under test.
func (c Config) MemSpec() sram.Spec {
	return sram.Spec{
		AddressWidthBits: c.AddressWidthBits,
		DataWidthBits:    c.DataWidthBits,
		ReadDuringWrite:  c.ReadDuringWrite,
	}
}

// Validate returns a *ConfigurationError if any parameter is unusable.
func (c Config) Validate() error {
	if c.AddressWidthBits < 1 || c.AddressWidthBits > sram.MaxAddressWidthBits {
		return configError("address_width_bits", errors.Wrapf(
			sram.ErrInvalidSpec, "must be within [1, %d], got %d",
			sram.MaxAddressWidthBits, c.AddressWidthBits))
	}

	if c.DataWidthBits < 1 || c.DataWidthBits > sram.MaxDataWidthBits {
		return configError("data_width_bits", errors.Wrapf(
			sram.ErrInvalidSpec, "must be within [1, %d], got %d",
			sram.MaxDataWidthBits, c.DataWidthBits))
	}

	if err := c.MemSpec().Validate(); err != nil {
		return configError("read_during_write", err)
	}

	if c.ClockPeriod == 0 || c.ClockPeriod%2 != 0 {
		return configError("clock_period", errors.Errorf(
			"must be a positive even number of %s, got %d",
			c.TimeUnit, c.ClockPeriod))
	}

	if c.ResetHoldPeriods == 0 {
		return configError("reset_hold_periods",
			errors.New("reset must be held for at least one period"))
	}

	return nil
}
