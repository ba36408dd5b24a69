package verif

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"

	"github.com/sarchlab/memverif/mem/sram"
)

var _ = Describe("Script validation", func() {
	expectConfigError := func(script Script, field string) {
		err := script.Validate()

		var cfgErr *ConfigurationError
		Expect(errors.As(err, &cfgErr)).To(BeTrue(), "got %v", err)
		Expect(cfgErr.Field).To(Equal(field))
	}

	It("should accept the calibration script", func() {
		Expect(CalibrationScript().Validate()).To(Succeed())
	})

	It("should reject bad widths", func() {
		s := CalibrationScript()
		s.Config.AddressWidthBits = 0
		expectConfigError(s, "address_width_bits")

		s = CalibrationScript()
		s.Config.DataWidthBits = 65
		expectConfigError(s, "data_width_bits")
	})

	It("should reject odd or zero clock periods", func() {
		s := CalibrationScript()
		s.Config.ClockPeriod = 9
		expectConfigError(s, "clock_period")

		s.Config.ClockPeriod = 0
		expectConfigError(s, "clock_period")
	})

	It("should reject a zero reset hold", func() {
		s := CalibrationScript()
		s.Config.ResetHoldPeriods = 0
		expectConfigError(s, "reset_hold_periods")
	})

	It("should reject data wider than the data width", func() {
		s := CalibrationScript()
		s.Steps[0] = Write(0x0, 0x100)
		expectConfigError(s, "steps[0].data")

		err := s.Validate()
		Expect(errors.Is(err, sram.ErrDataOutOfRange)).To(BeTrue())
	})

	It("should reject expectations wider than the data width", func() {
		s := CalibrationScript()
		s.Steps[1] = Read(0x0, 0x1aa)
		expectConfigError(s, "steps[1].expected")
	})

	It("should reject addresses beyond the address width", func() {
		s := CalibrationScript()
		s.Steps[3] = Read(0x10, 0x0)
		expectConfigError(s, "steps[3].address")
	})

	It("should reject reads carrying data and writes carrying expectations", func() {
		s := CalibrationScript()
		s.Steps[1].Data = 1
		expectConfigError(s, "steps[1].data")

		s = CalibrationScript()
		exp := uint64(1)
		s.Steps[0].Expected = &exp
		expectConfigError(s, "steps[0].expected")
	})

	It("should reject unknown kinds", func() {
		s := CalibrationScript()
		s.Steps[0].Kind = Kind(7)
		expectConfigError(s, "steps[0].kind")
	})

	It("should describe steps", func() {
		Expect(Write(0x1, 0x2).String()).To(Equal("WRITE 0x1 <- 0x2"))
		Expect(Read(0x1, 0x2).String()).To(Equal("READ 0x1 == 0x2"))
		Expect(ReadUnchecked(0x1).String()).To(Equal("READ 0x1"))
	})
})
