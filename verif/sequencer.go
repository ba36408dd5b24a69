package verif

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/sarchlab/memverif/mem/sram"
	"github.com/sarchlab/memverif/sim"
)

// State is the phase of a Sequencer.
type State int

// The sequencer phases, in the order they are visited.
const (
	StateInit State = iota
	StateResetHold
	StateResetReleaseSettle
	StateRunning
	StateDrain
	StateDone
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "INIT"
	case StateResetHold:
		return "RESET_HOLD"
	case StateResetReleaseSettle:
		return "RESET_RELEASE_SETTLE"
	case StateRunning:
		return "RUNNING"
	case StateDrain:
		return "DRAIN"
	case StateDone:
		return "DONE"
	default:
		return "UNKNOWN"
	}
}

// HookPosInputsDriven triggers after the sequencer changes the memory inputs.
// The hook item is the current State.
var HookPosInputsDriven = &sim.HookPos{Name: "InputsDriven"}

// A Sequencer applies the steps of a script to the memory, one per clock
// period, and hands the sampled output of each step to the checker.
//
// The sequencer only runs when the clock wakes it up, which always happens
// right after a falling edge. The memory reacts to rising edges, so every
// input change has half a period to settle before the memory samples it, and
// every output is sampled half a period after the edge that produced it.
type Sequencer struct {
	sim.HookableBase

	name     string
	clock    *sim.Clock
	ram      *sram.Comp
	checker  *Checker
	reporter StepReporter

	steps     []Step
	resetHold uint64

	state State
	next  int
}

// Name returns the name of the sequencer.
func (s *Sequencer) Name() string {
	return s.name
}

// State returns the current phase.
func (s *Sequencer) State() State {
	return s.state
}

// Handle advances the state machine every time the sequencer is woken up.
func (s *Sequencer) Handle(e sim.Event) error {
	if _, ok := e.(*sim.WakeupEvent); !ok {
		return errors.Errorf("%s cannot handle event %T", s.name, e)
	}

	now := e.Time()

	switch s.state {
	case StateInit:
		return s.init(now)
	case StateResetHold:
		s.clock.ReleaseReset()
		s.driven()
		s.enter(StateResetReleaseSettle, now)
		s.clock.AwaitPeriods(1, s)
	case StateResetReleaseSettle:
		s.enter(StateRunning, now)
		return s.applyNextOrDrain(now)
	case StateRunning:
		s.sample(now)
		s.next++

		return s.applyNextOrDrain(now)
	case StateDrain:
		s.finish(now)
	case StateDone:
		log.Panicf("%s woken up after finishing", s.name)
	}

	return nil
}

func (s *Sequencer) init(now sim.VTime) error {
	if err := s.ram.Drive(false, 0, 0); err != nil {
		return err
	}

	s.clock.AssertReset()
	s.driven()
	s.enter(StateResetHold, now)
	s.clock.AwaitPeriods(s.resetHold, s)

	return nil
}

func (s *Sequencer) applyNextOrDrain(now sim.VTime) error {
	if s.next >= len(s.steps) {
		s.enter(StateDrain, now)
		s.clock.AwaitPeriods(1, s)

		return nil
	}

	step := s.steps[s.next]

	var err error

	switch step.Kind {
	case KindWrite:
		err = s.ram.Drive(true, step.Address, step.Data)
	case KindRead:
		err = s.ram.Drive(false, step.Address, 0)
	default:
		err = errors.Errorf("unknown step kind %d", step.Kind)
	}

	if err != nil {
		return errors.Wrapf(err, "%s: applying step %d", s.name, s.next)
	}

	s.driven()
	s.clock.AwaitPeriods(1, s)

	return nil
}

func (s *Sequencer) sample(now sim.VTime) {
	o := s.checker.Observe(s.next, s.steps[s.next], s.ram.Ports.DataOut, now)
	s.reporter.ReportStep(o)
}

func (s *Sequencer) finish(now sim.VTime) {
	s.enter(StateDone, now)

	res := s.checker.Finish()
	s.reporter.ReportSummary(res)
	s.clock.Stop()
}

func (s *Sequencer) enter(state State, now sim.VTime) {
	log.WithFields(log.Fields{
		"sequencer": s.name,
		"time":      uint64(now),
		"from":      s.state.String(),
		"to":        state.String(),
	}).Debug("state change")

	s.state = state
}

func (s *Sequencer) driven() {
	s.InvokeHook(sim.HookCtx{
		Domain: s,
		Pos:    HookPosInputsDriven,
		Item:   s.state,
	})
}
