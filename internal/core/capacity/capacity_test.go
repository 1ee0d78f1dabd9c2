package capacity_test

import (
	"testing"
	"time"

	"github.com/frahmantamala/capacity-tracker/internal/core/capacity"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestCapacity(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Capacity Engine Suite")
}

func day(d int) time.Time {
	return time.Date(2025, time.January, d, 0, 0, 0, 0, time.UTC)
}

var _ = Describe("Compute", func() {
	It("should report full availability with no assignments", func() {
		s := capacity.Compute(100, nil)
		Expect(s).To(Equal(capacity.Summary{MaxCapacity: 100, Allocated: 0, Available: 100}))
	})

	It("should sum allocation percentages", func() {
		s := capacity.Compute(100, []capacity.Allocation{{Percentage: 50}, {Percentage: 25}})
		Expect(s.Allocated).To(Equal(75))
		Expect(s.Available).To(Equal(25))
		Expect(s.OverAllocated).To(BeFalse())
	})

	It("should allow negative availability when over-allocated", func() {
		s := capacity.Compute(100, []capacity.Allocation{{Percentage: 50}, {Percentage: 75}})
		Expect(s.Allocated).To(Equal(125))
		Expect(s.Available).To(Equal(-25))
		Expect(s.OverAllocated).To(BeTrue())
	})

	It("should treat exactly full capacity as not over-allocated", func() {
		s := capacity.Compute(50, []capacity.Allocation{{Percentage: 50}})
		Expect(s.Available).To(Equal(0))
		Expect(s.OverAllocated).To(BeFalse())
	})

	It("should ignore dates when summing", func() {
		past := capacity.Allocation{Percentage: 40, StartDate: day(1), EndDate: day(2)}
		future := capacity.Allocation{Percentage: 40, StartDate: day(20), EndDate: day(30)}
		Expect(capacity.Compute(100, []capacity.Allocation{past, future}).Allocated).To(Equal(80))
	})

	It("should keep available equal to max minus allocated", func() {
		for _, max := range []int{0, 30, 100} {
			allocs := []capacity.Allocation{{Percentage: 10}, {Percentage: 20}, {Percentage: 35}}
			s := capacity.Compute(max, allocs)
			Expect(s.Allocated).To(Equal(65))
			Expect(s.Available).To(Equal(max - 65))
		}
	})
})

var _ = Describe("Overlapping", func() {
	allocs := []capacity.Allocation{
		{Percentage: 10, StartDate: day(1), EndDate: day(5)},
		{Percentage: 20, StartDate: day(6), EndDate: day(10)},
		{Percentage: 30, StartDate: day(11), EndDate: day(20)},
	}

	It("should return everything for an open window", func() {
		Expect(capacity.Overlapping(allocs, capacity.Window{})).To(HaveLen(3))
	})

	It("should keep only allocations intersecting the window", func() {
		got := capacity.Overlapping(allocs, capacity.Window{From: day(5), To: day(7)})
		Expect(got).To(HaveLen(2))
		Expect(capacity.Compute(100, got).Allocated).To(Equal(30))
	})

	It("should treat window edges as inclusive", func() {
		got := capacity.Overlapping(allocs, capacity.Window{From: day(10), To: day(10)})
		Expect(got).To(HaveLen(1))
		Expect(got[0].Percentage).To(Equal(20))
	})

	It("should support a half-open window", func() {
		got := capacity.Overlapping(allocs, capacity.Window{From: day(12)})
		Expect(got).To(HaveLen(1))
		Expect(got[0].Percentage).To(Equal(30))
	})

	It("should return an empty non-nil slice when nothing overlaps", func() {
		got := capacity.Overlapping(allocs, capacity.Window{From: day(25), To: day(28)})
		Expect(got).NotTo(BeNil())
		Expect(got).To(BeEmpty())
	})
})
