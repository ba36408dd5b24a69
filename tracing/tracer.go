package tracing

import (
	"github.com/sarchlab/memverif/sim"
)

// A SignalTracer is a hook that probes a set of signals every time it is
// invoked and writes the values that changed.
type SignalTracer struct {
	timeTeller sim.TimeTeller
	writer     TraceWriter
	signals    []Signal

	last    []uint64
	started bool
}

// NewSignalTracer creates a tracer and initializes the writer.
func NewSignalTracer(
	timeTeller sim.TimeTeller,
	writer TraceWriter,
	signals []Signal,
) (*SignalTracer, error) {
	if err := writer.Init(signals); err != nil {
		return nil, err
	}

	return &SignalTracer{
		timeTeller: timeTeller,
		writer:     writer,
		signals:    signals,
		last:       make([]uint64, len(signals)),
	}, nil
}

// CollectSignals attaches the tracer to every domain, so that it samples when
// any of them changes a signal.
func CollectSignals(t *SignalTracer, domains ...sim.Hookable) {
	for _, d := range domains {
		d.AcceptHook(t)
	}
}

// Func samples the signals.
func (t *SignalTracer) Func(ctx sim.HookCtx) {
	t.Sample()
}

// Sample writes every signal whose value changed since the last sample. The
// first sample writes all the signals.
func (t *SignalTracer) Sample() {
	now := t.timeTeller.CurrentTime()

	for i, s := range t.signals {
		v := s.Value()
		if t.started && v == t.last[i] {
			continue
		}

		t.last[i] = v
		t.writer.Write(Sample{Time: now, Signal: s.Name, Value: v})
	}

	t.started = true
}

// Handle flushes the writer when the simulation ends.
func (t *SignalTracer) Handle(now sim.VTime) {
	t.writer.Flush()
}
