package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/vilmarcabanero/nx-starter-sub001/internal/domain"
	"github.com/vilmarcabanero/nx-starter-sub001/internal/domain/todo"
	"github.com/vilmarcabanero/nx-starter-sub001/internal/ports"
)

// CreateTodoRequest represents the JSON body for creating a new todo.
// Priority defaults to medium when omitted; due_date is RFC 3339.
type CreateTodoRequest struct {
	Title    string  `json:"title"`
	Priority string  `json:"priority,omitempty"`
	DueDate  *string `json:"due_date,omitempty"`
}

// Validate checks that required fields are present and optional fields have
// valid values. Returns a *domain.Error wrapping ErrValidation on failure.
func (r *CreateTodoRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return domain.NewValidationError("INVALID_BODY", "title is required")
	}
	if r.Priority != "" && !todo.Priority(r.Priority).IsValid() {
		return domain.NewValidationError("INVALID_BODY",
			fmt.Sprintf("priority %q is not one of: low, medium, high", r.Priority))
	}
	if r.DueDate != nil {
		if _, err := time.Parse(time.RFC3339, *r.DueDate); err != nil {
			return domain.NewValidationError("INVALID_BODY",
				fmt.Sprintf("due_date %q is not a valid RFC 3339 timestamp", *r.DueDate))
		}
	}
	return nil
}

// ParsedDueDate returns the due date as a UTC time, or nil when unset.
// Call Validate first; a malformed value here yields nil.
func (r *CreateTodoRequest) ParsedDueDate() *time.Time {
	if r.DueDate == nil {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, *r.DueDate)
	if err != nil {
		return nil
	}
	utc := parsed.UTC()
	return &utc
}

// UpdateTodoRequest represents the JSON body for updating an existing todo.
// All fields are optional; nil means "do not change this field". An explicit
// JSON null for due_date clears it, which requires tracking field presence
// during unmarshalling, so due_date uses a dedicated optional type.
type UpdateTodoRequest struct {
	Title     *string      `json:"title,omitempty"`
	Completed *bool        `json:"completed,omitempty"`
	Priority  *string      `json:"priority,omitempty"`
	DueDate   OptionalTime `json:"due_date"`
}

// OptionalTime distinguishes an absent JSON field from an explicit null.
// Set is true whenever the field appeared in the body; Value is nil for an
// explicit null.
type OptionalTime struct {
	Set   bool
	Value *time.Time
	raw   string
}

// UnmarshalJSON records that the field was present and keeps the raw token
// for validation. json.Unmarshal only calls this for present fields.
func (o *OptionalTime) UnmarshalJSON(data []byte) error {
	o.Set = true
	o.raw = string(data)
	if o.raw == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil // flagged during Validate
	}
	if parsed, err := time.Parse(time.RFC3339, s); err == nil {
		utc := parsed.UTC()
		o.Value = &utc
	}
	return nil
}

// Validate checks that any provided fields have valid values.
// Returns a *domain.Error wrapping ErrValidation on failure.
func (r *UpdateTodoRequest) Validate() error {
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return domain.NewValidationError("INVALID_BODY", "title must not be empty")
	}
	if r.Priority != nil && !todo.Priority(*r.Priority).IsValid() {
		return domain.NewValidationError("INVALID_BODY",
			fmt.Sprintf("priority %q is not one of: low, medium, high", *r.Priority))
	}
	if r.DueDate.Set && r.DueDate.raw != "null" && r.DueDate.Value == nil {
		return domain.NewValidationError("INVALID_BODY",
			fmt.Sprintf("due_date %s is not a valid RFC 3339 timestamp", r.DueDate.raw))
	}
	return nil
}

// ToPatch converts the request to a repository patch. An explicit null
// due_date becomes ClearDueDate.
func (r *UpdateTodoRequest) ToPatch() ports.TodoPatch {
	patch := ports.TodoPatch{
		Title:     r.Title,
		Completed: r.Completed,
	}
	if r.Priority != nil {
		p := todo.Priority(*r.Priority)
		patch.Priority = &p
	}
	if r.DueDate.Set {
		if r.DueDate.Value == nil {
			patch.ClearDueDate = true
		} else {
			patch.DueDate = r.DueDate.Value
		}
	}
	return patch
}
