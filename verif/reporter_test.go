package verif

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

var _ = Describe("TextReporter", func() {
	var (
		buf      *bytes.Buffer
		reporter *TextReporter
	)

	BeforeEach(func() {
		buf = new(bytes.Buffer)
		reporter = NewTextReporter(buf)
		reporter.ReportStart(DefaultConfig(), 2)
		buf.Reset()
	})

	It("should print the run parameters", func() {
		reporter.ReportStart(DefaultConfig(), 9)

		Expect(buf.String()).To(Equal(
			"# 16 words x 8 bits, period 10ns, reset 2 periods, " +
				"read-first, 9 steps\n"))
	})

	It("should print a write step", func() {
		reporter.ReportStep(Outcome{
			Index: 0, Time: 40, Step: Write(0x0, 0xaa), Observed: 0, Pass: true,
		})

		Expect(buf.String()).To(Equal(
			"t=    40ns  WRITE  addr=0x0  din=0xaa  dout=0x00  exp=--    PASS\n"))
	})

	It("should print a failing read step", func() {
		reporter.ReportStep(Outcome{
			Index: 1, Time: 50, Step: Read(0xf, 0xff), Observed: 0x7f,
			Pass: false,
		})

		Expect(buf.String()).To(Equal(
			"t=    50ns  READ   addr=0xf  din=--    dout=0x7f  exp=0xff  FAIL\n"))
	})

	It("should colour verdicts when asked", func() {
		reporter.WithColor(true)
		reporter.ReportSummary(&Result{
			outcomes:   make([]Outcome, 3),
			mismatches: 1,
		})

		Expect(buf.String()).To(Equal(
			"steps=3 mismatches=1 result=\x1b[31mFAIL\x1b[0m\n"))
	})

	It("should size hex fields to the widths", func() {
		cfg := DefaultConfig()
		cfg.AddressWidthBits = 10
		cfg.DataWidthBits = 12
		reporter.ReportStart(cfg, 1)
		buf.Reset()

		reporter.ReportStep(Outcome{
			Time: 40, Step: ReadUnchecked(0x5), Observed: 0x7, Pass: true,
		})

		Expect(buf.String()).To(Equal(
			"t=    40ns  READ   addr=0x005  din=--     dout=0x007  exp=--     PASS\n"))
	})
})

var _ = Describe("LogReporter", func() {
	It("should warn about mismatches only", func() {
		logger, hook := test.NewNullLogger()
		logger.SetLevel(logrus.DebugLevel)
		reporter := NewLogReporter(logger)

		reporter.ReportStep(Outcome{Step: Read(0x1, 0x1), Observed: 1, Pass: true})
		reporter.ReportStep(Outcome{
			Step: Read(0x1, 0x2), Observed: 1,
			Mismatch: &ExpectationMismatch{Address: 1, Expected: 2, Observed: 1},
		})

		Expect(hook.Entries).To(HaveLen(2))
		Expect(hook.Entries[0].Level).To(Equal(logrus.DebugLevel))
		Expect(hook.Entries[1].Level).To(Equal(logrus.WarnLevel))
		Expect(hook.Entries[1].Data["expected"]).To(Equal("0x2"))
	})

	It("should log the verdict", func() {
		logger, hook := test.NewNullLogger()
		reporter := NewLogReporter(logger)

		reporter.ReportSummary(&Result{outcomes: make([]Outcome, 2)})

		Expect(hook.LastEntry().Data["verdict"]).To(Equal("PASS"))
		Expect(hook.LastEntry().Level).To(Equal(logrus.InfoLevel))
	})
})
