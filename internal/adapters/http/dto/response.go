// Package dto provides HTTP request/response data transfer objects and
// RFC 9457 Problem Details error responses for the inbound HTTP adapter
// layer.
package dto

import (
	"time"

	"github.com/vilmarcabanero/nx-starter-sub001/internal/domain/todo"
)

// TodoResponse represents a single todo in HTTP responses.
type TodoResponse struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Completed bool    `json:"completed"`
	Priority  string  `json:"priority"`
	CreatedAt string  `json:"created_at"`
	DueDate   *string `json:"due_date,omitempty"`
	Overdue   bool    `json:"overdue"`
}

// ToTodoResponse converts a domain Todo entity to an HTTP response DTO.
// Overdue is evaluated at response time against now.
func ToTodoResponse(t *todo.Todo, now time.Time) TodoResponse {
	resp := TodoResponse{
		ID:        t.ID(),
		Title:     t.Title().String(),
		Completed: t.Completed(),
		Priority:  t.Priority().String(),
		CreatedAt: t.CreatedAt().Format(time.RFC3339),
		Overdue:   t.IsOverdue(now),
	}
	if due := t.DueDate(); due != nil {
		formatted := due.Format(time.RFC3339)
		resp.DueDate = &formatted
	}
	return resp
}

// TodoListResponse represents a list of todos in HTTP responses.
type TodoListResponse struct {
	Todos []TodoResponse `json:"todos"`
	Count int            `json:"count"`
}

// ToTodoListResponse converts a slice of domain Todo entities to an HTTP
// list response DTO.
func ToTodoListResponse(todos []todo.Todo, now time.Time) TodoListResponse {
	items := make([]TodoResponse, len(todos))
	for i := range todos {
		items[i] = ToTodoResponse(&todos[i], now)
	}
	return TodoListResponse{
		Todos: items,
		Count: len(items),
	}
}

// StatsResponse represents aggregate todo counts in HTTP responses.
type StatsResponse struct {
	Total        int `json:"total"`
	Active       int `json:"active"`
	Completed    int `json:"completed"`
	Overdue      int `json:"overdue"`
	HighPriority int `json:"high_priority"`
}

// ToStatsResponse converts domain Stats to an HTTP response DTO.
func ToStatsResponse(s todo.Stats) StatsResponse {
	return StatsResponse{
		Total:        s.Total,
		Active:       s.Active,
		Completed:    s.Completed,
		Overdue:      s.Overdue,
		HighPriority: s.HighPriority,
	}
}
