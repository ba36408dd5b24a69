package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

type namedHandler struct{}

func (namedHandler) Name() string         { return "Waiter" }
func (namedHandler) Handle(e Event) error { return nil }

var _ = Describe("EventLogger", func() {
	It("should log events before they are handled", func() {
		logger, hook := test.NewNullLogger()
		logger.SetLevel(logrus.DebugLevel)

		engine := NewSerialEngine()
		engine.AcceptHook(NewEventLogger(logger))

		evt := NewSecondaryWakeupEvent(7, namedHandler{})
		engine.Schedule(evt)
		Expect(engine.Run()).To(Succeed())

		Expect(hook.Entries).To(HaveLen(1))
		entry := hook.LastEntry()
		Expect(entry.Message).To(Equal("event"))
		Expect(entry.Data["time"]).To(Equal(uint64(7)))
		Expect(entry.Data["id"]).To(Equal(evt.ID))
		Expect(entry.Data["event"]).To(Equal("*sim.WakeupEvent"))
		Expect(entry.Data["secondary"]).To(BeTrue())
		Expect(entry.Data["handler"]).To(Equal("Waiter"))
	})
})
