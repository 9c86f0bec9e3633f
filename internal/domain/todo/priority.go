package todo

import (
	"fmt"

	"github.com/vilmarcabanero/nx-starter-sub001/internal/domain"
)

// Priority represents the urgency level of a Todo.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// DefaultPriority is used when no priority is supplied.
const DefaultPriority = PriorityMedium

// ParsePriority constructs a Priority from its string form. An empty input
// yields DefaultPriority; any other unrecognized value fails validation.
func ParsePriority(raw string) (Priority, error) {
	if raw == "" {
		return DefaultPriority, nil
	}
	p := Priority(raw)
	if !p.IsValid() {
		return "", domain.NewValidationError(domain.CodeInvalidPriority,
			fmt.Sprintf("priority must be one of: low, medium, high; got %q", raw))
	}
	return p, nil
}

// Rank returns the numeric rank used for ordering comparisons
// (low=1, medium=2, high=3). Invalid priorities rank 0.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	default:
		return 0
	}
}

// IsValid returns true if the priority is one of the defined constants.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (p Priority) String() string {
	return string(p)
}
