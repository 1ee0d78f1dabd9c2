package assignment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/capacity-tracker/internal/core/capacity"
	"github.com/frahmantamala/capacity-tracker/internal/core/events"
)

type capacityReader interface {
	EngineerCapacity(ctx context.Context, engineerID string, w capacity.Window) (*CapacityResponse, error)
}

// OverAllocationWatcher logs a warning whenever a write leaves an engineer
// allocated beyond their max capacity. Writes are never rejected.
type OverAllocationWatcher struct {
	capacity capacityReader
	logger   *slog.Logger
}

func NewOverAllocationWatcher(reader capacityReader, logger *slog.Logger) *OverAllocationWatcher {
	return &OverAllocationWatcher{
		capacity: reader,
		logger:   logger,
	}
}

func (w *OverAllocationWatcher) Register(bus *events.EventBus) {
	bus.Subscribe(events.EventTypeAssignmentCreated, w.Handle)
	bus.Subscribe(events.EventTypeAssignmentUpdated, w.Handle)
}

func (w *OverAllocationWatcher) Handle(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.AssignmentEvent)
	if !ok {
		return fmt.Errorf("unexpected event %T for %s", event, event.EventType())
	}

	summary, err := w.capacity.EngineerCapacity(ctx, e.EngineerID, capacity.Window{})
	if err != nil {
		return fmt.Errorf("recompute capacity for engineer %s: %w", e.EngineerID, err)
	}

	if summary.OverAllocated {
		w.logger.Warn("engineer over-allocated",
			"engineer_id", e.EngineerID,
			"engineer_name", summary.Engineer.Name,
			"assignment_id", e.AssignmentID,
			"allocated", summary.Allocated,
			"max_capacity", summary.MaxCapacity)
	}
	return nil
}
