package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hitoshi/tasktimer/internal/model"
	"github.com/hitoshi/tasktimer/internal/task"
)

func TestTaskHandler_CreateTask_Success(t *testing.T) {
	svc := &mockTaskService{
		createTaskFn: func(ctx context.Context, userID string, req task.CreateTaskRequest) (*task.TaskResponse, error) {
			if userID != "user-1" || req.Title != "Write report" {
				t.Errorf("userID = %q req = %+v", userID, req)
			}
			return &task.TaskResponse{ID: "task-1", UserID: userID, Title: req.Title, Status: model.TaskStatusTodo}, nil
		},
	}
	h := NewTaskHandler(svc)

	req := withUserID(httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader(`{"title":"Write report"}`)), "user-1")
	w := httptest.NewRecorder()
	h.CreateTask(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusCreated)
	}
	var resp task.TaskResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "task-1" || resp.Status != model.TaskStatusTodo {
		t.Errorf("resp = %+v", resp)
	}
}

func TestTaskHandler_CreateTask_InvalidStatus_Returns400(t *testing.T) {
	h := NewTaskHandler(&mockTaskService{})

	req := withUserID(httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader(`{"title":"x","status":"archived"}`)), "user-1")
	w := httptest.NewRecorder()
	h.CreateTask(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestTaskHandler_ListTasks_PassesPage(t *testing.T) {
	var gotPage model.Page
	svc := &mockTaskService{
		listTasksFn: func(ctx context.Context, userID string, page model.Page) (*task.TaskListResponse, error) {
			gotPage = page
			return &task.TaskListResponse{Tasks: []task.TaskResponse{}, Limit: page.Limit, Offset: page.Offset}, nil
		},
	}
	h := NewTaskHandler(svc)

	req := withUserID(httptest.NewRequest(http.MethodGet, "/api/tasks?limit=5&offset=10", nil), "user-1")
	w := httptest.NewRecorder()
	h.ListTasks(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if gotPage != (model.Page{Limit: 5, Offset: 10}) {
		t.Errorf("page = %+v", gotPage)
	}
	if !strings.Contains(w.Body.String(), `"tasks":[]`) {
		t.Errorf("empty list should encode as []: %s", w.Body.String())
	}
}

func TestTaskHandler_ListTasks_InvalidLimit_Returns400(t *testing.T) {
	h := NewTaskHandler(&mockTaskService{})

	req := withUserID(httptest.NewRequest(http.MethodGet, "/api/tasks?limit=many", nil), "user-1")
	w := httptest.NewRecorder()
	h.ListTasks(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestTaskHandler_GetTask(t *testing.T) {
	svc := &mockTaskService{
		getTaskFn: func(ctx context.Context, userID, taskID string) (*task.TaskResponse, error) {
			if taskID != "task-1" {
				return nil, model.NewNotFoundError("task", "Task not found")
			}
			return &task.TaskResponse{ID: taskID, UserID: userID}, nil
		},
	}
	h := NewTaskHandler(svc)

	req := withUserID(httptest.NewRequest(http.MethodGet, "/api/tasks/task-1", nil), "user-1")
	req = withChiURLParam(req, "id", "task-1")
	w := httptest.NewRecorder()
	h.GetTask(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}

	req = withUserID(httptest.NewRequest(http.MethodGet, "/api/tasks/other", nil), "user-1")
	req = withChiURLParam(req, "id", "other")
	w = httptest.NewRecorder()
	h.GetTask(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
	if body := decodeErrorBody(t, w); body.Message != "Task not found" {
		t.Errorf("body = %+v", body)
	}
}

func TestTaskHandler_UpdateTask(t *testing.T) {
	svc := &mockTaskService{
		updateTaskFn: func(ctx context.Context, userID, taskID string, req task.UpdateTaskRequest) (*task.TaskResponse, error) {
			if taskID != "task-1" || req.Status == nil || *req.Status != model.TaskStatusDone || req.Title != nil {
				t.Errorf("taskID = %q req = %+v", taskID, req)
			}
			return &task.TaskResponse{ID: taskID, Status: *req.Status}, nil
		},
	}
	h := NewTaskHandler(svc)

	req := withUserID(httptest.NewRequest(http.MethodPut, "/api/tasks/task-1", strings.NewReader(`{"status":"done"}`)), "user-1")
	req = withChiURLParam(req, "id", "task-1")
	w := httptest.NewRecorder()
	h.UpdateTask(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestTaskHandler_DeleteTask(t *testing.T) {
	svc := &mockTaskService{
		deleteTaskFn: func(ctx context.Context, userID, taskID string) (*task.DeleteTaskResponse, error) {
			return &task.DeleteTaskResponse{ID: taskID, Deleted: true}, nil
		},
	}
	h := NewTaskHandler(svc)

	req := withUserID(httptest.NewRequest(http.MethodDelete, "/api/tasks/task-1", nil), "user-1")
	req = withChiURLParam(req, "id", "task-1")
	w := httptest.NewRecorder()
	h.DeleteTask(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), `"deleted":true`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestTaskHandler_NoUserID_Returns401(t *testing.T) {
	h := NewTaskHandler(&mockTaskService{})

	handlers := map[string]http.HandlerFunc{
		"create": h.CreateTask,
		"list":   h.ListTasks,
		"get":    h.GetTask,
		"update": h.UpdateTask,
		"delete": h.DeleteTask,
	}
	for name, fn := range handlers {
		w := httptest.NewRecorder()
		fn(w, httptest.NewRequest(http.MethodGet, "/api/tasks", nil))
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s: status = %d, want %d", name, w.Code, http.StatusUnauthorized)
		}
	}
}
