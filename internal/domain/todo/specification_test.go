package todo

import (
	"testing"
	"time"
)

// fixture todos covering the classification axes.
func specFixtures(t *testing.T, now time.Time) []Todo {
	t.Helper()
	return []Todo{
		// Active, high priority, overdue (past due date).
		Rehydrate("1", mustTitle(t, "Pay invoice"), false,
			now.Add(-time.Hour), PriorityHigh, timePtr(now.Add(-time.Minute))),
		// Active, medium priority, not overdue.
		Rehydrate("2", mustTitle(t, "Buy groceries"), false,
			now.Add(-time.Hour), PriorityMedium, timePtr(now.Add(time.Hour))),
		// Completed, high priority.
		Rehydrate("3", mustTitle(t, "Ship release"), true,
			now.Add(-48*time.Hour), PriorityHigh, nil),
		// Active, low priority, overdue by age (no due date, 8 days old).
		Rehydrate("4", mustTitle(t, "Refactor parser"), false,
			now.Add(-8*24*time.Hour), PriorityLow, nil),
		// Completed, low priority.
		Rehydrate("5", mustTitle(t, "Water plants"), true,
			now.Add(-time.Hour), PriorityLow, nil),
	}
}

func TestConcreteSpecifications(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	todos := specFixtures(t, now)

	tests := []struct {
		name string
		spec Specification
		want map[string]bool // by todo ID
	}{
		{
			name: "completed",
			spec: CompletedSpec(),
			want: map[string]bool{"1": false, "2": false, "3": true, "4": false, "5": true},
		},
		{
			name: "active",
			spec: ActiveSpec(),
			want: map[string]bool{"1": true, "2": true, "3": false, "4": true, "5": false},
		},
		{
			name: "overdue",
			spec: OverdueSpec(now),
			want: map[string]bool{"1": true, "2": false, "3": false, "4": true, "5": false},
		},
		{
			name: "high priority",
			spec: HighPrioritySpec(),
			want: map[string]bool{"1": true, "2": false, "3": true, "4": false, "5": false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			for _, td := range todos {
				if got := tt.spec.IsSatisfiedBy(td); got != tt.want[td.ID()] {
					t.Errorf("spec(%s).IsSatisfiedBy(todo %s) = %v, want %v",
						tt.name, td.ID(), got, tt.want[td.ID()])
				}
			}
		})
	}
}

func TestSpecification_CompositionLaws(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	todos := specFixtures(t, now)

	specs := map[string]Specification{
		"completed": CompletedSpec(),
		"active":    ActiveSpec(),
		"overdue":   OverdueSpec(now),
		"high":      HighPrioritySpec(),
	}

	for aName, a := range specs {
		for bName, b := range specs {
			for _, td := range todos {
				av, bv := a.IsSatisfiedBy(td), b.IsSatisfiedBy(td)

				if got := a.And(b).IsSatisfiedBy(td); got != (av && bv) {
					t.Errorf("%s.And(%s) on todo %s = %v, want %v", aName, bName, td.ID(), got, av && bv)
				}
				if got := a.Or(b).IsSatisfiedBy(td); got != (av || bv) {
					t.Errorf("%s.Or(%s) on todo %s = %v, want %v", aName, bName, td.ID(), got, av || bv)
				}
			}
		}
	}

	for name, s := range specs {
		for _, td := range todos {
			v := s.IsSatisfiedBy(td)
			if got := s.Not().IsSatisfiedBy(td); got != !v {
				t.Errorf("%s.Not() on todo %s = %v, want %v", name, td.ID(), got, !v)
			}
			if got := s.Not().Not().IsSatisfiedBy(td); got != v {
				t.Errorf("%s.Not().Not() on todo %s = %v, want %v (double negation)", name, td.ID(), got, v)
			}
		}
	}
}

func TestSpecification_CompositionIsAssociative(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	todos := specFixtures(t, now)

	a, b, c := ActiveSpec(), OverdueSpec(now), HighPrioritySpec()

	for _, td := range todos {
		left := a.And(b).And(c).IsSatisfiedBy(td)
		right := a.And(b.And(c)).IsSatisfiedBy(td)
		if left != right {
			t.Errorf("And is not associative for todo %s: (a.b).c = %v, a.(b.c) = %v", td.ID(), left, right)
		}

		leftOr := a.Or(b).Or(c).IsSatisfiedBy(td)
		rightOr := a.Or(b.Or(c)).IsSatisfiedBy(td)
		if leftOr != rightOr {
			t.Errorf("Or is not associative for todo %s: (a|b)|c = %v, a|(b|c) = %v", td.ID(), leftOr, rightOr)
		}
	}
}

func TestSpecification_CompositionDoesNotMutateOperands(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	todos := specFixtures(t, now)

	active := ActiveSpec()
	high := HighPrioritySpec()

	before := make([]bool, len(todos))
	for i, td := range todos {
		before[i] = active.IsSatisfiedBy(td)
	}

	_ = active.And(high)
	_ = active.Or(high)
	_ = active.Not()

	for i, td := range todos {
		if active.IsSatisfiedBy(td) != before[i] {
			t.Fatalf("composing changed the operand's behavior for todo %s", td.ID())
		}
	}
}
