package sim

import (
	"reflect"

	"github.com/sirupsen/logrus"
)

// Named is implemented by handlers that carry a name for logging.
type Named interface {
	Name() string
}

// EventLogger is an hook that prints the event information
type EventLogger struct {
	Logger logrus.FieldLogger
}

// NewEventLogger returns a new EventLogger which will write in to the logger
func NewEventLogger(logger logrus.FieldLogger) *EventLogger {
	h := new(EventLogger)
	h.Logger = logger

	return h
}

// Func writes the event information into the logger
func (h *EventLogger) Func(ctx HookCtx) {
	if ctx.Pos != HookPosBeforeEvent {
		return
	}

	evt, ok := ctx.Item.(Event)
	if !ok {
		return
	}

	entry := h.Logger.WithFields(logrus.Fields{
		"time":      uint64(evt.Time()),
		"id":        eventID(evt),
		"event":     reflect.TypeOf(evt).String(),
		"secondary": evt.IsSecondary(),
	})

	if comp, ok := evt.Handler().(Named); ok {
		entry = entry.WithField("handler", comp.Name())
	}

	entry.Debug("event")
}

func eventID(evt Event) string {
	if e, ok := evt.(interface{ EventID() string }); ok {
		return e.EventID()
	}

	return ""
}
