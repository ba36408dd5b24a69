package sram

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"

	"github.com/sarchlab/memverif/sim"
)

type resetWire struct {
	asserted bool
}

func (r *resetWire) ResetAsserted() bool {
	return r.asserted
}

var _ = Describe("Comp", func() {
	var (
		reset *resetWire
		ram   *Comp
		now   sim.VTime
	)

	edge := func() {
		now += 5
		ram.NotifyEdge(sim.EdgeRising, now)
		now += 5
		ram.NotifyEdge(sim.EdgeFalling, now)
	}

	BeforeEach(func() {
		now = 0
		reset = &resetWire{}
		ram = MakeBuilder().
			WithAddressWidth(4).
			WithDataWidth(8).
			WithResetLine(reset).
			Build("RAM")
	})

	It("should commit a write on the rising edge", func() {
		Expect(ram.Drive(true, 0x5, 0x55)).To(Succeed())

		v, _ := ram.Read(0x5)
		Expect(v).To(Equal(uint64(0)))

		edge()

		v, _ = ram.Read(0x5)
		Expect(v).To(Equal(uint64(0x55)))
	})

	It("should present a read one edge after the address is driven", func() {
		Expect(ram.Write(0x3, 0x77)).To(Succeed())
		Expect(ram.Drive(false, 0x3, 0)).To(Succeed())
		Expect(ram.Ports.DataOut).To(Equal(uint64(0)))

		edge()

		Expect(ram.Ports.DataOut).To(Equal(uint64(0x77)))
	})

	It("should not react to falling edges", func() {
		Expect(ram.Drive(true, 0x1, 0x11)).To(Succeed())
		ram.NotifyEdge(sim.EdgeFalling, 10)

		v, _ := ram.Read(0x1)
		Expect(v).To(Equal(uint64(0)))
	})

	It("should return the previous word on a read-first write", func() {
		Expect(ram.Write(0x0, 0xaa)).To(Succeed())
		Expect(ram.Drive(true, 0x0, 0x12)).To(Succeed())

		edge()
		Expect(ram.Ports.DataOut).To(Equal(uint64(0xaa)))

		Expect(ram.Drive(false, 0x0, 0)).To(Succeed())
		edge()
		Expect(ram.Ports.DataOut).To(Equal(uint64(0x12)))
	})

	It("should return the new word on a write-first write", func() {
		ram = MakeBuilder().
			WithReadDuringWrite(WriteFirst).
			WithResetLine(reset).
			Build("RAM")
		Expect(ram.Write(0x0, 0xaa)).To(Succeed())
		Expect(ram.Drive(true, 0x0, 0x12)).To(Succeed())

		edge()
		Expect(ram.Ports.DataOut).To(Equal(uint64(0x12)))
	})

	It("should clear every word and the output while reset is asserted", func() {
		for addr := uint64(0); addr < 16; addr++ {
			Expect(ram.Write(addr, addr+1)).To(Succeed())
		}
		Expect(ram.Drive(false, 0x7, 0)).To(Succeed())
		edge()
		Expect(ram.Ports.DataOut).To(Equal(uint64(8)))

		reset.asserted = true
		Expect(ram.Drive(true, 0x7, 0x99)).To(Succeed())
		edge()
		Expect(ram.Ports.DataOut).To(Equal(uint64(0)))

		reset.asserted = false
		Expect(ram.Drive(false, 0x7, 0)).To(Succeed())
		edge()
		Expect(ram.Ports.DataOut).To(Equal(uint64(0)))

		for addr := uint64(0); addr < 16; addr++ {
			v, err := ram.Read(addr)
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(Equal(uint64(0)))
		}
	})

	It("should reject addresses beyond the address width", func() {
		err := ram.Drive(false, 0x10, 0)
		Expect(errors.Is(err, ErrAddressOutOfRange)).To(BeTrue())

		err = ram.Write(0x10, 0)
		Expect(errors.Is(err, ErrAddressOutOfRange)).To(BeTrue())

		_, err = ram.Read(0x10)
		Expect(errors.Is(err, ErrAddressOutOfRange)).To(BeTrue())
	})

	It("should reject data beyond the data width", func() {
		err := ram.Drive(true, 0x0, 0x100)
		Expect(errors.Is(err, ErrDataOutOfRange)).To(BeTrue())

		err = ram.Write(0x0, 0x1ff)
		Expect(errors.Is(err, ErrDataOutOfRange)).To(BeTrue())
	})

	It("should keep the inputs when a drive is rejected", func() {
		Expect(ram.Drive(true, 0x2, 0x22)).To(Succeed())
		Expect(ram.Drive(true, 0x20, 0x22)).NotTo(Succeed())

		Expect(*ram.Ports).To(Equal(Ports{
			WriteEnable: true,
			Address:     0x2,
			DataIn:      0x22,
		}))
	})

	Context("attached to a clock", func() {
		It("should follow the clock and its reset line", func() {
			engine := sim.NewSerialEngine()
			clock := sim.NewClock("Clock", engine, 10)
			ram = MakeBuilder().WithClock(clock).Build("RAM")

			Expect(ram.Drive(true, 0x9, 0x42)).To(Succeed())
			clock.Tick()
			v, _ := ram.Read(0x9)
			Expect(v).To(Equal(uint64(0x42)))

			clock.Tick()
			clock.AssertReset()
			clock.Tick()
			v, _ = ram.Read(0x9)
			Expect(v).To(Equal(uint64(0)))
		})
	})
})

var _ = Describe("Spec", func() {
	It("should validate widths", func() {
		Expect(Defaults().Validate()).To(Succeed())
		Expect(Spec{AddressWidthBits: 0, DataWidthBits: 8}.Validate()).
			To(MatchError(ErrInvalidSpec))
		Expect(Spec{AddressWidthBits: 4, DataWidthBits: 65}.Validate()).
			To(MatchError(ErrInvalidSpec))
		Expect(Spec{AddressWidthBits: 49, DataWidthBits: 8}.Validate()).
			To(MatchError(ErrInvalidSpec))
	})

	It("should compute masks and word counts", func() {
		s := Spec{AddressWidthBits: 4, DataWidthBits: 8}
		Expect(s.Words()).To(Equal(uint64(16)))
		Expect(s.DataMask()).To(Equal(uint64(0xff)))

		s.DataWidthBits = 64
		Expect(s.DataMask()).To(Equal(^uint64(0)))
		Expect(s.CheckData(^uint64(0))).To(Succeed())
	})

	It("should parse read-during-write policies", func() {
		p, err := ParseReadDuringWrite("write-first")
		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(Equal(WriteFirst))
		Expect(p.String()).To(Equal("write-first"))

		p, err = ParseReadDuringWrite("")
		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(Equal(ReadFirst))

		_, err = ParseReadDuringWrite("sideways")
		Expect(err).To(HaveOccurred())
	})

	It("should refuse to build from an invalid spec", func() {
		Expect(func() {
			MakeBuilder().WithDataWidth(0).Build("RAM")
		}).To(Panic())
	})
})
