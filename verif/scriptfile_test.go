package verif

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"

	"github.com/sarchlab/memverif/mem/sram"
	"github.com/sarchlab/memverif/sim"
)

var _ = Describe("Script files", func() {
	It("should parse YAML with hex numbers", func() {
		script, err := ParseScript([]byte(`
address_width_bits: 6
data_width_bits: 16
clock_period: 20
time_unit: ps
reset_hold_periods: 3
read_during_write: write-first
steps:
  - {kind: write, address: 0x3f, data: 0xBEEF}
  - {kind: read, address: 0x3f, expected: 0xbeef}
  - {kind: READ, address: 1}
`))

		Expect(err).NotTo(HaveOccurred())
		Expect(script.Config).To(Equal(Config{
			AddressWidthBits: 6,
			DataWidthBits:    16,
			ClockPeriod:      sim.VTime(20),
			TimeUnit:         "ps",
			ResetHoldPeriods: 3,
			ReadDuringWrite:  sram.WriteFirst,
		}))
		Expect(script.Steps).To(Equal([]Step{
			Write(0x3f, 0xbeef),
			Read(0x3f, 0xbeef),
			ReadUnchecked(0x1),
		}))
	})

	It("should parse JSON and fill in defaults", func() {
		script, err := ParseScript([]byte(`{"steps": [` +
			`{"kind": "write", "address": 0, "data": 170}, ` +
			`{"kind": "read", "address": "0x0", "expected": "0xaa"}]}`))

		Expect(err).NotTo(HaveOccurred())
		Expect(script.Config).To(Equal(DefaultConfig()))
		Expect(script.Steps).To(Equal([]Step{Write(0, 0xaa), Read(0, 0xaa)}))
	})

	It("should load the calibration script from disk", func() {
		path := filepath.Join(GinkgoT().TempDir(), "calibration.yaml")
		Expect(os.WriteFile(path, []byte(`
steps:
  - {kind: write, address: 0x0, data: 0xAA}
  - {kind: read,  address: 0x0, expected: 0xAA}
  - {kind: write, address: 0x5, data: 0x55}
  - {kind: read,  address: 0x5, expected: 0x55}
  - {kind: write, address: 0xF, data: 0xFF}
  - {kind: read,  address: 0xF, expected: 0xFF}
  - {kind: read,  address: 0x2, expected: 0x00}
  - {kind: write, address: 0x0, data: 0x12}
  - {kind: read,  address: 0x0, expected: 0x12}
`), 0o644)).To(Succeed())

		script, err := LoadScript(path)

		Expect(err).NotTo(HaveOccurred())
		Expect(script).To(Equal(CalibrationScript()))
	})

	DescribeTable("should reject malformed scripts",
		func(content, field string) {
			_, err := ParseScript([]byte(content))

			var cfgErr *ConfigurationError
			Expect(errors.As(err, &cfgErr)).To(BeTrue())
			Expect(cfgErr.Field).To(Equal(field))
		},
		Entry("unknown field", "colour: red\n", "script"),
		Entry("bad number", "steps: [{kind: read, address: zz}]\n", "script"),
		Entry("negative number", "clock_period: -10\n", "script"),
		Entry("unknown kind", "steps: [{kind: erase, address: 1}]\n",
			"steps[0].kind"),
		Entry("missing address", "steps: [{kind: read}]\n",
			"steps[0].address"),
		Entry("write without data", "steps: [{kind: write, address: 1}]\n",
			"steps[0].data"),
		Entry("write with expectation",
			"steps: [{kind: write, address: 1, data: 1, expected: 1}]\n",
			"steps[0].expected"),
		Entry("read with data", "steps: [{kind: read, address: 1, data: 1}]\n",
			"steps[0].data"),
		Entry("bad policy", "read_during_write: never\n", "read_during_write"),
	)

	It("should report missing files", func() {
		_, err := LoadScript(filepath.Join(GinkgoT().TempDir(), "nope.yaml"))

		Expect(err).To(HaveOccurred())
		Expect(os.IsNotExist(errors.Cause(err))).To(BeTrue())
	})
})
