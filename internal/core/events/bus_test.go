package events_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/frahmantamala/capacity-tracker/internal/core/events"
	"github.com/frahmantamala/capacity-tracker/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestEvents(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Events Suite")
}

var _ = Describe("EventBus", func() {
	var bus *events.EventBus

	BeforeEach(func() {
		bus = events.NewEventBus(logger.Discard())
	})

	AfterEach(func() {
		bus.Wait()
	})

	It("should deliver published events to every subscriber", func() {
		var calls int32
		for i := 0; i < 3; i++ {
			bus.Subscribe(events.EventTypeAssignmentCreated, func(_ context.Context, e events.Event) error {
				atomic.AddInt32(&calls, 1)
				return nil
			})
		}

		evt := events.NewAssignmentCreatedEvent("a1", "e1", "p1")
		Expect(bus.Publish(context.Background(), evt)).To(Succeed())
		bus.Wait()
		Expect(atomic.LoadInt32(&calls)).To(Equal(int32(3)))
	})

	It("should only deliver to handlers of the matching type", func() {
		var got []string
		var mu sync.Mutex
		record := func(_ context.Context, e events.Event) error {
			mu.Lock()
			defer mu.Unlock()
			got = append(got, e.EventType())
			return nil
		}
		bus.Subscribe(events.EventTypeAssignmentDeleted, record)

		Expect(bus.Publish(context.Background(), events.NewAssignmentCreatedEvent("a1", "e1", "p1"))).To(Succeed())
		Expect(bus.Publish(context.Background(), events.NewAssignmentDeletedEvent("a1", "e1", "p1"))).To(Succeed())
		bus.Wait()

		mu.Lock()
		defer mu.Unlock()
		Expect(got).To(Equal([]string{events.EventTypeAssignmentDeleted}))
	})

	It("should keep delivering after the publishing context is canceled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		var ctxErr atomic.Value
		bus.Subscribe(events.EventTypeAssignmentUpdated, func(hctx context.Context, _ events.Event) error {
			time.Sleep(10 * time.Millisecond)
			ctxErr.Store(hctx.Err() == nil)
			return nil
		})

		Expect(bus.Publish(ctx, events.NewAssignmentUpdatedEvent("a1", "e1", "p1"))).To(Succeed())
		cancel()
		bus.Wait()
		Expect(ctxErr.Load()).To(BeTrue())
	})

	It("should stop at the first failing handler when publishing synchronously", func() {
		var order []int
		bus.Subscribe(events.EventTypeAssignmentCreated, func(context.Context, events.Event) error {
			order = append(order, 1)
			return errors.New("boom")
		})
		bus.Subscribe(events.EventTypeAssignmentCreated, func(context.Context, events.Event) error {
			order = append(order, 2)
			return nil
		})

		err := bus.PublishSync(context.Background(), events.NewAssignmentCreatedEvent("a1", "e1", "p1"))
		Expect(err).To(MatchError(ContainSubstring("boom")))
		Expect(order).To(Equal([]int{1}))
	})

	It("should be a no-op without subscribers", func() {
		Expect(bus.Publish(context.Background(), events.NewAssignmentCreatedEvent("a1", "e1", "p1"))).To(Succeed())
		Expect(bus.PublishSync(context.Background(), events.NewAssignmentCreatedEvent("a1", "e1", "p1"))).To(Succeed())
	})

	It("should give up shutting down when the deadline passes", func() {
		release := make(chan struct{})
		bus.Subscribe(events.EventTypeAssignmentCreated, func(context.Context, events.Event) error {
			<-release
			return nil
		})
		Expect(bus.Publish(context.Background(), events.NewAssignmentCreatedEvent("a1", "e1", "p1"))).To(Succeed())

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		Expect(bus.Shutdown(ctx)).To(MatchError(context.DeadlineExceeded))

		close(release)
		Expect(bus.Shutdown(context.Background())).To(Succeed())
	})

	It("should carry ids in the event payload", func() {
		evt := events.NewAssignmentCreatedEvent("a1", "e1", "p1")
		Expect(evt.EventID()).NotTo(BeEmpty())
		Expect(evt.Payload()).To(HaveKeyWithValue("engineer_id", "e1"))
		Expect(evt.AssignmentID).To(Equal("a1"))
	})
})
