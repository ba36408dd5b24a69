package sim

// A TimeTeller reports the current simulated time.
type TimeTeller interface {
	CurrentTime() VTime
}

// An EventScheduler accepts events that happen now or later.
type EventScheduler interface {
	TimeTeller
	Schedule(e Event)
}

// A SimulationEndHandler is called once the event queue has drained.
type SimulationEndHandler interface {
	Handle(now VTime)
}

// An Engine runs a discrete event simulation.
type Engine interface {
	Hookable
	EventScheduler

	// Run handles events in time order until none is left, or until a handler
	// returns an error.
	Run() error

	// RegisterSimulationEndHandler adds a handler that Finished calls.
	RegisterSimulationEndHandler(handler SimulationEndHandler)

	// Finished calls the registered SimulationEndHandlers in order.
	Finished()
}
