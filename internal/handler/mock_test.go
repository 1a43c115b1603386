package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/tasktimer/internal/account"
	"github.com/hitoshi/tasktimer/internal/middleware"
	"github.com/hitoshi/tasktimer/internal/model"
	"github.com/hitoshi/tasktimer/internal/task"
	"github.com/hitoshi/tasktimer/internal/timelog"
)

// --- モック定義 ---

type mockAccountService struct {
	signUpFn        func(ctx context.Context, req account.SignUpRequest) (*account.SignUpResponse, error)
	signInFn        func(ctx context.Context, req account.SignInRequest) (*account.SignInResponse, error)
	findAccountFn   func(ctx context.Context, userID string) (*account.AccountResponse, error)
	updateAccountFn func(ctx context.Context, userID string, req account.UpdateAccountRequest) (*account.AccountResponse, error)
	deleteAccountFn func(ctx context.Context, userID string) (*account.DeleteAccountResponse, error)
}

func (m *mockAccountService) SignUp(ctx context.Context, req account.SignUpRequest) (*account.SignUpResponse, error) {
	return m.signUpFn(ctx, req)
}

func (m *mockAccountService) SignIn(ctx context.Context, req account.SignInRequest) (*account.SignInResponse, error) {
	return m.signInFn(ctx, req)
}

func (m *mockAccountService) FindAccount(ctx context.Context, userID string) (*account.AccountResponse, error) {
	return m.findAccountFn(ctx, userID)
}

func (m *mockAccountService) UpdateAccount(ctx context.Context, userID string, req account.UpdateAccountRequest) (*account.AccountResponse, error) {
	return m.updateAccountFn(ctx, userID, req)
}

func (m *mockAccountService) DeleteAccount(ctx context.Context, userID string) (*account.DeleteAccountResponse, error) {
	return m.deleteAccountFn(ctx, userID)
}

type mockTaskService struct {
	createTaskFn func(ctx context.Context, userID string, req task.CreateTaskRequest) (*task.TaskResponse, error)
	listTasksFn  func(ctx context.Context, userID string, page model.Page) (*task.TaskListResponse, error)
	getTaskFn    func(ctx context.Context, userID, taskID string) (*task.TaskResponse, error)
	updateTaskFn func(ctx context.Context, userID, taskID string, req task.UpdateTaskRequest) (*task.TaskResponse, error)
	deleteTaskFn func(ctx context.Context, userID, taskID string) (*task.DeleteTaskResponse, error)
}

func (m *mockTaskService) CreateTask(ctx context.Context, userID string, req task.CreateTaskRequest) (*task.TaskResponse, error) {
	return m.createTaskFn(ctx, userID, req)
}

func (m *mockTaskService) ListTasks(ctx context.Context, userID string, page model.Page) (*task.TaskListResponse, error) {
	return m.listTasksFn(ctx, userID, page)
}

func (m *mockTaskService) GetTask(ctx context.Context, userID, taskID string) (*task.TaskResponse, error) {
	return m.getTaskFn(ctx, userID, taskID)
}

func (m *mockTaskService) UpdateTask(ctx context.Context, userID, taskID string, req task.UpdateTaskRequest) (*task.TaskResponse, error) {
	return m.updateTaskFn(ctx, userID, taskID, req)
}

func (m *mockTaskService) DeleteTask(ctx context.Context, userID, taskID string) (*task.DeleteTaskResponse, error) {
	return m.deleteTaskFn(ctx, userID, taskID)
}

type mockTimeLogService struct {
	startFn  func(ctx context.Context, userID string, req timelog.CreateTimeLogRequest) (*timelog.TimeLogResponse, error)
	stopFn   func(ctx context.Context, userID, id string, req timelog.StopTimeLogRequest) (*timelog.TimeLogResponse, error)
	getFn    func(ctx context.Context, userID, id string) (*timelog.TimeLogResponse, error)
	listFn   func(ctx context.Context, userID, taskID string, page model.Page) (*timelog.TimeLogListResponse, error)
	deleteFn func(ctx context.Context, userID, id string) (*timelog.DeleteTimeLogResponse, error)
}

func (m *mockTimeLogService) StartTimeLog(ctx context.Context, userID string, req timelog.CreateTimeLogRequest) (*timelog.TimeLogResponse, error) {
	return m.startFn(ctx, userID, req)
}

func (m *mockTimeLogService) StopTimeLog(ctx context.Context, userID, id string, req timelog.StopTimeLogRequest) (*timelog.TimeLogResponse, error) {
	return m.stopFn(ctx, userID, id, req)
}

func (m *mockTimeLogService) GetTimeLog(ctx context.Context, userID, id string) (*timelog.TimeLogResponse, error) {
	return m.getFn(ctx, userID, id)
}

func (m *mockTimeLogService) ListTimeLogs(ctx context.Context, userID, taskID string, page model.Page) (*timelog.TimeLogListResponse, error) {
	return m.listFn(ctx, userID, taskID, page)
}

func (m *mockTimeLogService) DeleteTimeLog(ctx context.Context, userID, id string) (*timelog.DeleteTimeLogResponse, error) {
	return m.deleteFn(ctx, userID, id)
}

// spyRecorder は記録されたメトリクスを保持する。
type spyRecorder struct {
	signUps     []string
	signIns     []string
	timeTracked []time.Duration
}

func (s *spyRecorder) RecordHTTPRequest(string, string, int, time.Duration) {}
func (s *spyRecorder) RecordSignUp(outcome string)                          { s.signUps = append(s.signUps, outcome) }
func (s *spyRecorder) RecordSignIn(outcome string)                          { s.signIns = append(s.signIns, outcome) }
func (s *spyRecorder) RecordTimeTracked(d time.Duration)                    { s.timeTracked = append(s.timeTracked, d) }

// --- ヘルパー ---

// withUserID はリクエストコンテキストに認証済みユーザーIDを注入する。
func withUserID(r *http.Request, userID string) *http.Request {
	return r.WithContext(middleware.ContextWithUserID(r.Context(), userID))
}

// withChiURLParam はchiのURLパラメータをリクエストに設定する。
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func ptr[T any](v T) *T {
	return &v
}
