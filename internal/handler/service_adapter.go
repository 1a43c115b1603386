package handler

import (
	"context"

	"github.com/hitoshi/tasktimer/internal/account"
	"github.com/hitoshi/tasktimer/internal/model"
	"github.com/hitoshi/tasktimer/internal/task"
	"github.com/hitoshi/tasktimer/internal/timelog"
)

// AccountServiceAdapter はアカウントのユースケース群を AccountServiceInterface に適合させるアダプタ。
type AccountServiceAdapter struct {
	SignUpUseCase        *account.SignUpUseCase
	SignInUseCase        *account.SignInUseCase
	FindAccountUseCase   *account.FindAccountUseCase
	UpdateAccountUseCase *account.UpdateAccountUseCase
	DeleteAccountUseCase *account.DeleteAccountUseCase
}

// SignUp はアカウントを登録する。
func (a *AccountServiceAdapter) SignUp(ctx context.Context, req account.SignUpRequest) (*account.SignUpResponse, error) {
	return a.SignUpUseCase.Execute(ctx, req)
}

// SignIn はアクセストークンを発行する。
func (a *AccountServiceAdapter) SignIn(ctx context.Context, req account.SignInRequest) (*account.SignInResponse, error) {
	return a.SignInUseCase.Execute(ctx, req)
}

// FindAccount はアカウントを取得する。
func (a *AccountServiceAdapter) FindAccount(ctx context.Context, userID string) (*account.AccountResponse, error) {
	return a.FindAccountUseCase.Execute(ctx, userID)
}

// UpdateAccount はアカウントを更新する。
func (a *AccountServiceAdapter) UpdateAccount(ctx context.Context, userID string, req account.UpdateAccountRequest) (*account.AccountResponse, error) {
	return a.UpdateAccountUseCase.Execute(ctx, userID, req)
}

// DeleteAccount はアカウントを削除する。
func (a *AccountServiceAdapter) DeleteAccount(ctx context.Context, userID string) (*account.DeleteAccountResponse, error) {
	return a.DeleteAccountUseCase.Execute(ctx, userID)
}

// TaskServiceAdapter はタスクのユースケース群を TaskServiceInterface に適合させるアダプタ。
type TaskServiceAdapter struct {
	CreateUseCase   *task.CreateTaskUseCase
	FindAllUseCase  *task.FindAllTasksUseCase
	FindByIDUseCase *task.FindTaskByIDUseCase
	UpdateUseCase   *task.UpdateTaskUseCase
	DeleteUseCase   *task.DeleteTaskUseCase
}

// CreateTask はタスクを作成する。
func (a *TaskServiceAdapter) CreateTask(ctx context.Context, userID string, req task.CreateTaskRequest) (*task.TaskResponse, error) {
	return a.CreateUseCase.Execute(ctx, userID, req)
}

// ListTasks はユーザーのタスク一覧を返す。
func (a *TaskServiceAdapter) ListTasks(ctx context.Context, userID string, page model.Page) (*task.TaskListResponse, error) {
	return a.FindAllUseCase.Execute(ctx, userID, page)
}

// GetTask はタスクを取得する。
func (a *TaskServiceAdapter) GetTask(ctx context.Context, userID, taskID string) (*task.TaskResponse, error) {
	return a.FindByIDUseCase.Execute(ctx, userID, taskID)
}

// UpdateTask はタスクを更新する。
func (a *TaskServiceAdapter) UpdateTask(ctx context.Context, userID, taskID string, req task.UpdateTaskRequest) (*task.TaskResponse, error) {
	return a.UpdateUseCase.Execute(ctx, userID, taskID, req)
}

// DeleteTask はタスクを削除する。
func (a *TaskServiceAdapter) DeleteTask(ctx context.Context, userID, taskID string) (*task.DeleteTaskResponse, error) {
	return a.DeleteUseCase.Execute(ctx, userID, taskID)
}

// TimeLogServiceAdapter は時間ログのユースケース群を TimeLogServiceInterface に適合させるアダプタ。
type TimeLogServiceAdapter struct {
	CreateUseCase     *timelog.CreateTimeLogUseCase
	StopUseCase       *timelog.StopTimeLogUseCase
	FindUseCase       *timelog.FindTimeLogUseCase
	FindByTaskUseCase *timelog.FindTimeLogsByTaskUseCase
	DeleteUseCase     *timelog.DeleteTimeLogUseCase
}

// StartTimeLog は計測を開始する。
func (a *TimeLogServiceAdapter) StartTimeLog(ctx context.Context, userID string, req timelog.CreateTimeLogRequest) (*timelog.TimeLogResponse, error) {
	return a.CreateUseCase.Execute(ctx, userID, req)
}

// StopTimeLog は計測を停止する。
func (a *TimeLogServiceAdapter) StopTimeLog(ctx context.Context, userID, timeLogID string, req timelog.StopTimeLogRequest) (*timelog.TimeLogResponse, error) {
	return a.StopUseCase.Execute(ctx, userID, timeLogID, req)
}

// GetTimeLog は時間ログを取得する。
func (a *TimeLogServiceAdapter) GetTimeLog(ctx context.Context, userID, timeLogID string) (*timelog.TimeLogResponse, error) {
	return a.FindUseCase.Execute(ctx, userID, timeLogID)
}

// ListTimeLogs はタスクの時間ログ一覧を返す。
func (a *TimeLogServiceAdapter) ListTimeLogs(ctx context.Context, userID, taskID string, page model.Page) (*timelog.TimeLogListResponse, error) {
	return a.FindByTaskUseCase.Execute(ctx, userID, taskID, page)
}

// DeleteTimeLog は時間ログを削除する。
func (a *TimeLogServiceAdapter) DeleteTimeLog(ctx context.Context, userID, timeLogID string) (*timelog.DeleteTimeLogResponse, error) {
	return a.DeleteUseCase.Execute(ctx, userID, timeLogID)
}

// compile-time interface check
var (
	_ AccountServiceInterface = (*AccountServiceAdapter)(nil)
	_ TaskServiceInterface    = (*TaskServiceAdapter)(nil)
	_ TimeLogServiceInterface = (*TimeLogServiceAdapter)(nil)
)
