package sim

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("EventQueueImpl", func() {
	var (
		mockCtrl *gomock.Controller
		queue    *EventQueueImpl
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		queue = NewEventQueue()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should pop in order", func() {
		numEvents := 100
		for i := 0; i < numEvents; i++ {
			event := NewMockEvent(mockCtrl)
			event.EXPECT().
				Time().
				Return(VTime(rand.Uint64() % 1000)).
				AnyTimes()
			queue.Push(event)
		}

		now := VTime(0)
		for i := 0; i < numEvents; i++ {
			event := queue.Pop()
			Expect(event.Time()).To(BeNumerically(">=", now))
			now = event.Time()
		}
		Expect(queue.Len()).To(Equal(0))
	})

	It("should keep insertion order among same-time events", func() {
		events := make([]*MockEvent, 10)
		for i := range events {
			events[i] = NewMockEvent(mockCtrl)
			events[i].EXPECT().Time().Return(VTime(7)).AnyTimes()
			queue.Push(events[i])
		}

		Expect(queue.Peek()).To(BeIdenticalTo(events[0]))
		for i := range events {
			Expect(queue.Pop()).To(BeIdenticalTo(events[i]))
		}
	})
})
