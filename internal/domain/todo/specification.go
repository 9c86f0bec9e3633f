package todo

import "time"

// Specification is a composable boolean predicate over a Todo. Specifications
// classify already-materialized entities only; they carry no persistence
// knowledge. Composition is pure: And/Or/Not return new specifications and
// never mutate their operands.
type Specification struct {
	satisfied func(Todo) bool
}

// NewSpecification wraps an arbitrary predicate as a Specification.
func NewSpecification(pred func(Todo) bool) Specification {
	return Specification{satisfied: pred}
}

// IsSatisfiedBy reports whether the candidate matches the predicate.
func (s Specification) IsSatisfiedBy(candidate Todo) bool {
	return s.satisfied(candidate)
}

// And returns a specification satisfied iff both s and other are satisfied.
func (s Specification) And(other Specification) Specification {
	return Specification{satisfied: func(t Todo) bool {
		return s.satisfied(t) && other.satisfied(t)
	}}
}

// Or returns a specification satisfied iff either s or other is satisfied.
func (s Specification) Or(other Specification) Specification {
	return Specification{satisfied: func(t Todo) bool {
		return s.satisfied(t) || other.satisfied(t)
	}}
}

// Not returns the logical complement of s.
func (s Specification) Not() Specification {
	return Specification{satisfied: func(t Todo) bool {
		return !s.satisfied(t)
	}}
}

// CompletedSpec matches todos that are done.
func CompletedSpec() Specification {
	return NewSpecification(func(t Todo) bool {
		return t.Completed()
	})
}

// ActiveSpec matches todos that are not done.
func ActiveSpec() Specification {
	return NewSpecification(func(t Todo) bool {
		return !t.Completed()
	})
}

// OverdueSpec matches todos that are overdue at the given reference time.
func OverdueSpec(ref time.Time) Specification {
	return NewSpecification(func(t Todo) bool {
		return t.IsOverdue(ref)
	})
}

// HighPrioritySpec matches todos with high priority.
func HighPrioritySpec() Specification {
	return NewSpecification(func(t Todo) bool {
		return t.Priority() == PriorityHigh
	})
}
