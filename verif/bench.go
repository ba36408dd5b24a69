package verif

import (
	"github.com/pkg/errors"

	"github.com/sarchlab/memverif/mem/sram"
	"github.com/sarchlab/memverif/sim"
)

// A Bench wires a clock, a memory block, a sequencer and a checker together
// for one run of a script.
type Bench struct {
	Engine    *sim.SerialEngine
	Clock     *sim.Clock
	RAM       *sram.Comp
	Sequencer *Sequencer
	Checker   *Checker

	script   Script
	reporter StepReporter
	ran      bool
}

// BenchBuilder creates Benches.
type BenchBuilder struct {
	reporters []StepReporter
}

// MakeBuilder returns a BenchBuilder without reporters.
func MakeBuilder() BenchBuilder {
	return BenchBuilder{}
}

// WithReporter adds a reporter. Reporters receive reports in the order they
// are added.
func (b BenchBuilder) WithReporter(r StepReporter) BenchBuilder {
	reporters := make([]StepReporter, len(b.reporters), len(b.reporters)+1)
	copy(reporters, b.reporters)
	b.reporters = append(reporters, r)

	return b
}

// Build validates the script and creates a bench for it. An invalid script
// yields a *ConfigurationError and no bench.
func (b BenchBuilder) Build(name string, script Script) (*Bench, error) {
	if err := script.Validate(); err != nil {
		return nil, err
	}

	steps := make([]Step, len(script.Steps))
	for i, step := range script.Steps {
		steps[i] = step.clone()
	}
	script.Steps = steps

	bench := &Bench{
		script:   script,
		reporter: MultiReporter(b.reporters),
	}

	bench.Engine = sim.NewSerialEngine()
	bench.Clock = sim.NewClock(name+".Clock", bench.Engine,
		script.Config.ClockPeriod)
	bench.RAM = sram.MakeBuilder().
		WithSpec(script.Config.MemSpec()).
		WithClock(bench.Clock).
		Build(name + ".RAM")
	bench.Checker = NewChecker()
	bench.Sequencer = &Sequencer{
		name:      name + ".Sequencer",
		clock:     bench.Clock,
		ram:       bench.RAM,
		checker:   bench.Checker,
		reporter:  bench.reporter,
		steps:     steps,
		resetHold: script.Config.ResetHoldPeriods,
	}

	return bench, nil
}

// Run simulates the script to the end and returns the sealed result. Reads
// that observe the wrong word are recorded in the result, not returned as
// errors. A bench can only run once.
func (b *Bench) Run() (*Result, error) {
	if b.ran {
		return nil, errors.New("bench has already run")
	}
	b.ran = true

	b.reporter.ReportStart(b.script.Config, len(b.script.Steps))

	b.Clock.Start()
	b.Engine.Schedule(sim.NewWakeupEvent(b.Engine.CurrentTime(), b.Sequencer))

	if err := b.Engine.Run(); err != nil {
		return nil, err
	}

	b.Engine.Finished()

	if b.Sequencer.State() != StateDone {
		return nil, errors.Errorf("simulation stopped in state %s",
			b.Sequencer.State())
	}

	return b.Checker.Result(), nil
}

// Run builds a bench for the script and runs it.
func Run(script Script, reporters ...StepReporter) (*Result, error) {
	builder := MakeBuilder()
	for _, r := range reporters {
		builder = builder.WithReporter(r)
	}

	bench, err := builder.Build("Bench", script)
	if err != nil {
		return nil, err
	}

	return bench.Run()
}
