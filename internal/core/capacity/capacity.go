// Package capacity derives how much of an engineer's capacity is committed
// by assignments. Results are computed on every read and never cached.
package capacity

import "time"

// Allocation is the part of an assignment the engine needs.
type Allocation struct {
	Percentage int
	StartDate  time.Time
	EndDate    time.Time
}

type Summary struct {
	MaxCapacity   int  `json:"maxCapacity"`
	Allocated     int  `json:"allocated"`
	Available     int  `json:"available"`
	OverAllocated bool `json:"overAllocated"`
}

// Compute sums every allocation regardless of dates. Available is not
// clamped and goes negative when the engineer is over-allocated.
func Compute(maxCapacity int, allocations []Allocation) Summary {
	allocated := 0
	for _, a := range allocations {
		allocated += a.Percentage
	}
	available := maxCapacity - allocated
	return Summary{
		MaxCapacity:   maxCapacity,
		Allocated:     allocated,
		Available:     available,
		OverAllocated: available < 0,
	}
}

// Window is an inclusive date range. A zero From or To leaves that side open.
type Window struct {
	From time.Time
	To   time.Time
}

func (w Window) IsZero() bool {
	return w.From.IsZero() && w.To.IsZero()
}

func (w Window) overlaps(start, end time.Time) bool {
	if !w.To.IsZero() && !start.IsZero() && start.After(w.To) {
		return false
	}
	if !w.From.IsZero() && !end.IsZero() && end.Before(w.From) {
		return false
	}
	return true
}

// Overlapping keeps the allocations whose [StartDate, EndDate] intersects w.
// Allocations with a zero date on one side are treated as open-ended there.
func Overlapping(allocations []Allocation, w Window) []Allocation {
	out := make([]Allocation, 0, len(allocations))
	for _, a := range allocations {
		if w.overlaps(a.StartDate, a.EndDate) {
			out = append(out, a)
		}
	}
	return out
}
