package verif

import (
	log "github.com/sirupsen/logrus"

	"github.com/sarchlab/memverif/sim"
)

// An Outcome is what the checker concluded about one step.
type Outcome struct {
	Index    int
	Time     sim.VTime
	Step     Step
	Observed uint64
	Pass     bool

	// Mismatch is set when a checked read observed the wrong word.
	Mismatch *ExpectationMismatch
}

// Result collects the outcomes of a run in script order.
//
// A Result is sealed when the run finishes; it does not change afterwards.
type Result struct {
	outcomes   []Outcome
	mismatches int
	sealed     bool
}

// Outcomes returns a copy of the per-step outcomes.
func (r *Result) Outcomes() []Outcome {
	out := make([]Outcome, len(r.outcomes))
	for i, o := range r.outcomes {
		o.Step = o.Step.clone()
		if o.Mismatch != nil {
			m := *o.Mismatch
			o.Mismatch = &m
		}
		out[i] = o
	}

	return out
}

// Steps returns the number of steps observed.
func (r *Result) Steps() int {
	return len(r.outcomes)
}

// Mismatches returns the number of checked reads that failed.
func (r *Result) Mismatches() int {
	return r.mismatches
}

// MismatchDetails lists the failed reads in script order.
func (r *Result) MismatchDetails() []*ExpectationMismatch {
	var list []*ExpectationMismatch

	for _, o := range r.outcomes {
		if o.Mismatch != nil {
			list = append(list, o.Mismatch)
		}
	}

	return list
}

// Sealed tells if the run that produced the result has finished.
func (r *Result) Sealed() bool {
	return r.sealed
}

// A Checker compares the memory output against the script's expectations.
type Checker struct {
	result *Result
}

// NewChecker creates a checker with an empty result.
func NewChecker() *Checker {
	return &Checker{result: &Result{}}
}

// Observe judges the word sampled for a step and appends the outcome to the
// result. Writes always pass. A mismatch is recorded and counted, and never
// stops the run.
func (c *Checker) Observe(
	index int,
	step Step,
	dataOut uint64,
	now sim.VTime,
) Outcome {
	if c.result.sealed {
		log.Panicf("observing step %d after the run finished", index)
	}

	o := Outcome{
		Index:    index,
		Time:     now,
		Step:     step.clone(),
		Observed: dataOut,
		Pass:     true,
	}

	if exp, ok := step.ExpectedWord(); ok && step.Kind == KindRead {
		if dataOut != exp {
			o.Pass = false
			o.Mismatch = &ExpectationMismatch{
				Index:    index,
				Address:  step.Address,
				Expected: exp,
				Observed: dataOut,
			}
			c.result.mismatches++
		}
	}

	c.result.outcomes = append(c.result.outcomes, o)

	return o
}

// Result returns the result collected so far.
func (c *Checker) Result() *Result {
	return c.result
}

// Finish seals the result and returns it.
func (c *Checker) Finish() *Result {
	c.result.sealed = true
	return c.result
}
