package dto_test

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vilmarcabanero/nx-starter-sub001/internal/adapters/http/dto"
	"github.com/vilmarcabanero/nx-starter-sub001/internal/domain"
	"github.com/vilmarcabanero/nx-starter-sub001/internal/domain/todo"
)

func mustTodo(t *testing.T, title string, opts ...todo.Option) todo.Todo {
	t.Helper()

	item, err := todo.New(title, opts...)
	if err != nil {
		t.Fatalf("todo.New(%q) error = %v", title, err)
	}
	return item
}

func TestToTodoResponse(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	due := now.Add(-time.Hour)
	item := mustTodo(t, "ship hotfix", todo.WithPriority(todo.PriorityHigh), todo.WithDueDate(due)).
		WithID("abc-123")

	resp := dto.ToTodoResponse(&item, now)

	if resp.ID != "abc-123" {
		t.Errorf("ID = %q, want %q", resp.ID, "abc-123")
	}
	if resp.Title != "ship hotfix" {
		t.Errorf("Title = %q", resp.Title)
	}
	if resp.Priority != "high" {
		t.Errorf("Priority = %q, want %q", resp.Priority, "high")
	}
	if resp.DueDate == nil || *resp.DueDate != due.Format(time.RFC3339) {
		t.Errorf("DueDate = %v, want %q", resp.DueDate, due.Format(time.RFC3339))
	}
	if !resp.Overdue {
		t.Error("Overdue = false, want true for past due date")
	}
}

func TestToTodoListResponse_Empty(t *testing.T) {
	t.Parallel()

	resp := dto.ToTodoListResponse(nil, time.Now().UTC())
	if resp.Count != 0 {
		t.Errorf("Count = %d, want 0", resp.Count)
	}
	if resp.Todos == nil {
		t.Error("Todos = nil, want empty slice so JSON renders []")
	}
}

func TestCreateTodoRequest_Validate(t *testing.T) {
	t.Parallel()

	due := "2026-09-01T12:00:00Z"
	bad := "next tuesday"

	tests := []struct {
		name    string
		req     dto.CreateTodoRequest
		wantErr bool
	}{
		{"valid minimal", dto.CreateTodoRequest{Title: "walk the dog"}, false},
		{"valid full", dto.CreateTodoRequest{Title: "walk the dog", Priority: "high", DueDate: &due}, false},
		{"missing title", dto.CreateTodoRequest{Priority: "low"}, true},
		{"blank title", dto.CreateTodoRequest{Title: "   "}, true},
		{"unknown priority", dto.CreateTodoRequest{Title: "walk the dog", Priority: "urgent"}, true},
		{"malformed due date", dto.CreateTodoRequest{Title: "walk the dog", DueDate: &bad}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.req.Validate()
			if tt.wantErr && !errors.Is(err, domain.ErrValidation) {
				t.Errorf("Validate() error = %v, want ErrValidation", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() error = %v, want nil", err)
			}
		})
	}
}

func TestUpdateTodoRequest_DueDatePresence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		body         string
		wantSet      bool
		wantClear    bool
		wantHasValue bool
	}{
		{"absent field", `{"title":"new title"}`, false, false, false},
		{"explicit null clears", `{"due_date":null}`, true, true, false},
		{"value replaces", `{"due_date":"2026-09-01T12:00:00Z"}`, true, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var req dto.UpdateTodoRequest
			if err := json.Unmarshal([]byte(tt.body), &req); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if err := req.Validate(); err != nil {
				t.Fatalf("Validate() error = %v", err)
			}

			if req.DueDate.Set != tt.wantSet {
				t.Errorf("DueDate.Set = %v, want %v", req.DueDate.Set, tt.wantSet)
			}

			patch := req.ToPatch()
			if patch.ClearDueDate != tt.wantClear {
				t.Errorf("ToPatch().ClearDueDate = %v, want %v", patch.ClearDueDate, tt.wantClear)
			}
			if (patch.DueDate != nil) != tt.wantHasValue {
				t.Errorf("ToPatch().DueDate = %v, want set %v", patch.DueDate, tt.wantHasValue)
			}
		})
	}
}

func TestUpdateTodoRequest_Validate(t *testing.T) {
	t.Parallel()

	var malformed dto.UpdateTodoRequest
	if err := json.Unmarshal([]byte(`{"due_date":"soon"}`), &malformed); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if err := malformed.Validate(); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Validate() error = %v, want ErrValidation for malformed due_date", err)
	}

	blank := ""
	req := dto.UpdateTodoRequest{Title: &blank}
	if err := req.Validate(); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Validate() error = %v, want ErrValidation for blank title", err)
	}
}

func TestNewErrorResponse_StatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", domain.NewValidationError(domain.CodeTitleTooShort, "too short"), 400, "TITLE_TOO_SHORT"},
		{"not found", domain.NewNotFoundError("no todo with id 7"), 404, "TODO_NOT_FOUND"},
		{"already completed", domain.NewAlreadyCompletedError("done already"), 409, "ALREADY_COMPLETED"},
		{"unavailable", domain.ErrUnavailable, 502, ""},
		{"unknown", errors.New("boom"), 500, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest("GET", "/api/v1/todos/7", nil)
			resp := dto.NewErrorResponse(r, tt.err)

			if resp.Status != tt.wantStatus {
				t.Errorf("Status = %d, want %d", resp.Status, tt.wantStatus)
			}
			if resp.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", resp.Code, tt.wantCode)
			}
			if resp.Instance != "/api/v1/todos/7" {
				t.Errorf("Instance = %q, want request URI", resp.Instance)
			}
		})
	}
}

func TestWriteErrorResponse(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest("POST", "/api/v1/todos", nil)
	w := httptest.NewRecorder()

	dto.WriteErrorResponse(w, r, domain.NewValidationError("INVALID_BODY", "title is required"))

	if w.Code != 400 {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if got := w.Header().Get("Content-Type"); got != "application/problem+json" {
		t.Errorf("Content-Type = %q, want application/problem+json", got)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if resp.Code != "INVALID_BODY" {
		t.Errorf("Code = %q, want INVALID_BODY", resp.Code)
	}
}
