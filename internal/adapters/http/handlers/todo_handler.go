package handlers

import (
	"net/http"
	"time"

	"github.com/vilmarcabanero/nx-starter-sub001/internal/adapters/http/dto"
	"github.com/vilmarcabanero/nx-starter-sub001/internal/domain/todo"
	"github.com/vilmarcabanero/nx-starter-sub001/internal/ports"
)

// TodoHandler handles HTTP requests for todo CRUD, completion transitions,
// and aggregate stats.
type TodoHandler struct {
	service ports.TodoService
	now     func() time.Time
}

// NewTodoHandler creates a new TodoHandler with the given service port.
func NewTodoHandler(service ports.TodoService) *TodoHandler {
	return &TodoHandler{
		service: service,
		now:     time.Now,
	}
}

// ListTodos handles GET /api/v1/todos. The optional filter query parameter
// accepts all, active, completed, or overdue and defaults to all.
func (h *TodoHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	filter := ports.FilterAll
	if raw := r.URL.Query().Get("filter"); raw != "" {
		filter = ports.ListFilter(raw)
	}

	todos, err := h.service.ListTodos(r.Context(), filter)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTodoListResponse(todos, h.now().UTC()))
}

// CreateTodo handles POST /api/v1/todos.
func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTodoRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	created, err := h.service.CreateTodo(r.Context(), req.Title,
		todo.Priority(req.Priority), req.ParsedDueDate())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToTodoResponse(created, h.now().UTC()))
}

// GetTodo handles GET /api/v1/todos/{id}.
func (h *TodoHandler) GetTodo(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	t, err := h.service.GetTodo(r.Context(), id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTodoResponse(t, h.now().UTC()))
}

// UpdateTodo handles PATCH /api/v1/todos/{id}.
func (h *TodoHandler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.UpdateTodoRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	updated, err := h.service.UpdateTodo(r.Context(), id, req.ToPatch())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTodoResponse(updated, h.now().UTC()))
}

// CompleteTodo handles POST /api/v1/todos/{id}/complete. Completing an
// already-completed todo returns 409.
func (h *TodoHandler) CompleteTodo(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	completed, err := h.service.CompleteTodo(r.Context(), id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTodoResponse(completed, h.now().UTC()))
}

// ToggleTodo handles POST /api/v1/todos/{id}/toggle.
func (h *TodoHandler) ToggleTodo(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	toggled, err := h.service.ToggleTodo(r.Context(), id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTodoResponse(toggled, h.now().UTC()))
}

// DeleteTodo handles DELETE /api/v1/todos/{id}.
func (h *TodoHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	if err := h.service.DeleteTodo(r.Context(), id); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Stats handles GET /api/v1/todos/stats.
func (h *TodoHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToStatsResponse(stats))
}
