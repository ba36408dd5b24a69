package sim

import (
	log "github.com/sirupsen/logrus"
)

// Edge identifies a transition of the clock line.
type Edge int

// The clock transitions.
const (
	EdgeRising Edge = iota
	EdgeFalling
)

func (e Edge) String() string {
	if e == EdgeRising {
		return "rising"
	}

	return "falling"
}

// An EdgeListener is notified on every transition of a Clock, before the
// clock's hooks run.
type EdgeListener interface {
	NotifyEdge(edge Edge, now VTime)
}

// HookPosClockEdge triggers after a clock transition has been delivered to
// all the edge listeners. The hook item is the Edge.
var HookPosClockEdge = &HookPos{Name: "ClockEdge"}

// ToggleEvent flips the clock line.
type ToggleEvent struct {
	*EventBase
}

// A Clock generates a repeating clock signal and owns the reset line.
//
// The clock line starts low. The first transition happens half a period after
// Start, so rising edges fall on odd multiples of the half period and falling
// edges on even multiples.
type Clock struct {
	HookableBase

	name   string
	engine EventScheduler
	period VTime

	high       bool
	halfCycles uint64
	reset      bool
	started    bool
	stopped    bool

	listeners []EdgeListener
}

// NewClock creates a clock with the given period. The period must be a
// positive even number of time units.
func NewClock(name string, engine EventScheduler, period VTime) *Clock {
	if period == 0 || period%2 != 0 {
		log.Panicf("clock period must be a positive even number, got %d",
			period)
	}

	return &Clock{
		name:   name,
		engine: engine,
		period: period,
	}
}

// Name returns the name of the clock.
func (c *Clock) Name() string {
	return c.name
}

// Period returns the duration of one full clock cycle.
func (c *Clock) Period() VTime {
	return c.period
}

// Attach registers a listener that reacts to clock transitions. Listeners are
// notified in the order they are attached.
func (c *Clock) Attach(l EdgeListener) {
	c.listeners = append(c.listeners, l)
}

// Start schedules the first transition half a period from now.
func (c *Clock) Start() {
	if c.started {
		return
	}

	c.started = true
	c.scheduleToggle()
}

// Stop makes the clock ignore all pending and future transitions.
func (c *Clock) Stop() {
	c.stopped = true
}

// Stopped tells if Stop has been called.
func (c *Clock) Stopped() bool {
	return c.stopped
}

// Handle processes the clock's own toggle events.
func (c *Clock) Handle(e Event) error {
	switch e.(type) {
	case *ToggleEvent:
		if c.stopped {
			return nil
		}

		c.Tick()
		c.scheduleToggle()
	default:
		log.Panicf("clock %s cannot handle event %T", c.name, e)
	}

	return nil
}

// Tick flips the clock line, advancing the clock by one half period, and
// lets listeners and hooks observe the new phase.
func (c *Clock) Tick() {
	c.high = !c.high
	c.halfCycles++

	edge := EdgeFalling
	if c.high {
		edge = EdgeRising
	}

	now := c.engine.CurrentTime()
	for _, l := range c.listeners {
		l.NotifyEdge(edge, now)
	}

	c.InvokeHook(HookCtx{
		Domain: c,
		Pos:    HookPosClockEdge,
		Item:   edge,
		Detail: now,
	})
}

func (c *Clock) scheduleToggle() {
	next := c.engine.CurrentTime() + c.period/2
	c.engine.Schedule(&ToggleEvent{EventBase: NewEventBase(next, c)})
}

// AwaitPeriods resumes the handler with a WakeupEvent once n full periods
// have elapsed. The wakeup is a secondary event, so it observes the clock
// transition that happens at the same instant.
func (c *Clock) AwaitPeriods(n uint64, handler Handler) {
	wakeAt := c.engine.CurrentTime() + VTime(n)*c.period
	c.engine.Schedule(NewSecondaryWakeupEvent(wakeAt, handler))
}

// Level returns true while the clock line is high.
func (c *Clock) Level() bool {
	return c.high
}

// Cycle returns the number of rising edges so far.
func (c *Clock) Cycle() uint64 {
	return (c.halfCycles + 1) / 2
}

// AssertReset drives the reset line high.
func (c *Clock) AssertReset() {
	c.reset = true
}

// ReleaseReset drives the reset line low.
func (c *Clock) ReleaseReset() {
	c.reset = false
}

// ResetAsserted tells if the reset line is currently high.
func (c *Clock) ResetAsserted() bool {
	return c.reset
}
