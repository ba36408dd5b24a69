package verif

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// Verdict is the overall judgement of a run.
type Verdict int

// The verdicts.
const (
	VerdictPass Verdict = iota
	VerdictFail
)

func (v Verdict) String() string {
	if v == VerdictPass {
		return "PASS"
	}

	return "FAIL"
}

// Judge derives the verdict of a finished run. A run passes when no checked
// read mismatched.
func Judge(r *Result) Verdict {
	if r.Mismatches() == 0 {
		return VerdictPass
	}

	return VerdictFail
}

// A StepReporter renders the progress of a run.
//
// A run reports exactly one start line, one line per step and one summary.
type StepReporter interface {
	ReportStart(cfg Config, steps int)
	ReportStep(o Outcome)
	ReportSummary(r *Result)
}

// MultiReporter forwards every report to all of its reporters.
type MultiReporter []StepReporter

// ReportStart forwards the start of a run.
func (m MultiReporter) ReportStart(cfg Config, steps int) {
	for _, r := range m {
		r.ReportStart(cfg, steps)
	}
}

// ReportStep forwards an outcome.
func (m MultiReporter) ReportStep(o Outcome) {
	for _, r := range m {
		r.ReportStep(o)
	}
}

// ReportSummary forwards the end of a run.
func (m MultiReporter) ReportSummary(res *Result) {
	for _, r := range m {
		r.ReportSummary(res)
	}
}

const (
	ansiGreen = "\x1b[32m"
	ansiRed   = "\x1b[31m"
	ansiReset = "\x1b[0m"
)

// TextReporter writes one fixed-format line per step.
//
//	t=    40ns  WRITE  addr=0x0  din=0xaa  dout=0x00  exp=--    PASS
//	t=    50ns  READ   addr=0x0  din=--    dout=0xaa  exp=0xaa  PASS
type TextReporter struct {
	w     io.Writer
	color bool

	unit       string
	addrDigits int
	dataDigits int
}

// NewTextReporter creates a reporter that writes to w. Verdicts are coloured
// when w is a terminal.
func NewTextReporter(w io.Writer) *TextReporter {
	r := &TextReporter{
		w:          w,
		addrDigits: 1,
		dataDigits: 2,
	}

	if f, ok := w.(*os.File); ok {
		r.color = term.IsTerminal(int(f.Fd()))
	}

	return r
}

// WithColor forces colouring on or off.
func (r *TextReporter) WithColor(color bool) *TextReporter {
	r.color = color
	return r
}

func hexDigits(bits int) int {
	d := (bits + 3) / 4
	if d < 1 {
		d = 1
	}

	return d
}

// ReportStart prints the parameters of the run.
func (r *TextReporter) ReportStart(cfg Config, steps int) {
	r.unit = cfg.TimeUnit
	r.addrDigits = hexDigits(cfg.AddressWidthBits)
	r.dataDigits = hexDigits(cfg.DataWidthBits)

	fmt.Fprintf(r.w,
		"# %d words x %d bits, period %d%s, reset %d periods, %s, %d steps\n",
		cfg.MemSpec().Words(), cfg.DataWidthBits,
		cfg.ClockPeriod, cfg.TimeUnit, cfg.ResetHoldPeriods,
		cfg.ReadDuringWrite, steps)
}

// ReportStep prints one outcome.
func (r *TextReporter) ReportStep(o Outcome) {
	placeholder := fmt.Sprintf("%-*s", r.dataDigits+2, "--")

	din := placeholder
	if o.Step.Kind == KindWrite {
		din = r.word(o.Step.Data)
	}

	exp := placeholder
	if v, ok := o.Step.ExpectedWord(); ok {
		exp = r.word(v)
	}

	status := VerdictPass
	if !o.Pass {
		status = VerdictFail
	}

	fmt.Fprintf(r.w, "t=%6d%s  %-5s  addr=0x%0*x  din=%s  dout=%s  exp=%s  %s\n",
		o.Time, r.unit, o.Step.Kind,
		r.addrDigits, o.Step.Address,
		din, r.word(o.Observed), exp, r.paint(status))
}

// ReportSummary prints the totals and the verdict.
func (r *TextReporter) ReportSummary(res *Result) {
	fmt.Fprintf(r.w, "steps=%d mismatches=%d result=%s\n",
		res.Steps(), res.Mismatches(), r.paint(Judge(res)))
}

func (r *TextReporter) word(v uint64) string {
	return fmt.Sprintf("0x%0*x", r.dataDigits, v)
}

func (r *TextReporter) paint(v Verdict) string {
	if !r.color {
		return v.String()
	}

	if v == VerdictPass {
		return ansiGreen + v.String() + ansiReset
	}

	return ansiRed + v.String() + ansiReset
}

// LogReporter reports through a structured logger. Mismatches are logged as
// warnings, everything else at debug or info level.
type LogReporter struct {
	Logger logrus.FieldLogger
}

// NewLogReporter creates a LogReporter.
func NewLogReporter(logger logrus.FieldLogger) *LogReporter {
	return &LogReporter{Logger: logger}
}

// ReportStart logs the parameters of the run.
func (r *LogReporter) ReportStart(cfg Config, steps int) {
	r.Logger.WithFields(logrus.Fields{
		"address_width_bits": cfg.AddressWidthBits,
		"data_width_bits":    cfg.DataWidthBits,
		"clock_period":       uint64(cfg.ClockPeriod),
		"time_unit":          cfg.TimeUnit,
		"steps":              steps,
	}).Info("run started")
}

// ReportStep logs an outcome.
func (r *LogReporter) ReportStep(o Outcome) {
	entry := r.Logger.WithFields(logrus.Fields{
		"step":    o.Index,
		"time":    uint64(o.Time),
		"kind":    o.Step.Kind.String(),
		"address": fmt.Sprintf("0x%x", o.Step.Address),
		"dout":    fmt.Sprintf("0x%x", o.Observed),
	})

	if o.Step.Kind == KindWrite {
		entry = entry.WithField("din", fmt.Sprintf("0x%x", o.Step.Data))
	}

	if exp, ok := o.Step.ExpectedWord(); ok {
		entry = entry.WithField("expected", fmt.Sprintf("0x%x", exp))
	}

	if o.Mismatch != nil {
		entry.Warn("mismatch")
		return
	}

	entry.Debug("step")
}

// ReportSummary logs the totals and the verdict.
func (r *LogReporter) ReportSummary(res *Result) {
	entry := r.Logger.WithFields(logrus.Fields{
		"steps":      res.Steps(),
		"mismatches": res.Mismatches(),
		"verdict":    Judge(res).String(),
	})

	if Judge(res) == VerdictFail {
		entry.Warn("run finished")
		return
	}

	entry.Info("run finished")
}
