package timelog

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hitoshi/tasktimer/internal/model"
	"github.com/hitoshi/tasktimer/internal/repository"
	"github.com/hitoshi/tasktimer/internal/task"
)

const category = "time_log"

const (
	msgTimeLogNotFound   = "Time log not found"
	msgTaskNotFound      = "Task not found"
	msgStartedAtRequired = "started_at is required"
	msgTaskIDRequired    = "task.id is required"
	msgEndedBeforeStart  = "ended_at must not be before started_at"
	msgAlreadyStopped    = "Time log is already stopped"
	msgAlreadyRunning    = "A time log is already running for this task"
)

// PageLimits は一覧取得の既定件数と上限件数。
type PageLimits struct {
	Default int
	Max     int
}

func repositoryError(op string) *model.APIError {
	return model.NewInternalError(category, "Failed to "+op+" time log: TIME_LOG_REPOSITORY_ERROR")
}

// findOwnedLog は利用者が所有するタスクに属する時間ログを返す。
// 他人のタスクに属するログは存在しないものとして扱う。
func findOwnedLog(ctx context.Context, logs repository.FindOner[model.TimeLog], tasks repository.FindOner[model.Task], userID, id string) (*model.TimeLog, error) {
	l, err := logs.FindOne(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, model.NewNotFoundError(category, msgTimeLogNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to find time log",
			slog.String("time_log_id", id),
			slog.String("error", err.Error()),
		)
		return nil, repositoryError("find").WithCause(err)
	}

	if _, err := task.FindOwned(ctx, tasks, userID, l.TaskID); err != nil {
		if model.IsNotFound(err) {
			return nil, model.NewNotFoundError(category, msgTimeLogNotFound)
		}
		return nil, err
	}
	return l, nil
}

// CreateTimeLogUseCase はタスクに対する計測を開始する。
type CreateTimeLogUseCase struct {
	logs   repository.Creator[model.TimeLog]
	tasks  repository.FindOner[model.Task]
	mapper Mapper
}

// NewCreateTimeLogUseCase はCreateTimeLogUseCaseを生成する。
func NewCreateTimeLogUseCase(logs repository.Creator[model.TimeLog], tasks repository.FindOner[model.Task]) *CreateTimeLogUseCase {
	return &CreateTimeLogUseCase{logs: logs, tasks: tasks}
}

// Execute は利用者が所有するタスクに計測中の時間ログを作成する。
// 同じタスクに計測中のログがある場合はConflictを返す。
func (uc *CreateTimeLogUseCase) Execute(ctx context.Context, userID string, req CreateTimeLogRequest) (*TimeLogResponse, error) {
	if req.StartedAt.IsZero() {
		return nil, model.NewValidationError(msgStartedAtRequired)
	}
	if req.Task.ID == "" {
		return nil, model.NewValidationError(msgTaskIDRequired)
	}

	if _, err := task.FindOwned(ctx, uc.tasks, userID, req.Task.ID); err != nil {
		return nil, err
	}

	created, err := uc.logs.CreateOne(ctx, uc.mapper.ToEntity(req))
	if err != nil {
		switch {
		case repository.IsForeignKeyViolation(err):
			return nil, model.NewNotFoundError(category, msgTaskNotFound).WithCause(err)
		case repository.IsUniqueViolation(err):
			return nil, model.NewConflictError(category, msgAlreadyRunning).WithCause(err)
		}
		slog.ErrorContext(ctx, "failed to create time log",
			slog.String("task_id", req.Task.ID),
			slog.String("error", err.Error()),
		)
		return nil, repositoryError("create").WithCause(err)
	}

	resp := uc.mapper.ToResponse(created)
	return &resp, nil
}

type timeLogFindUpdater interface {
	repository.FindOner[model.TimeLog]
	repository.Updater[model.TimeLog]
}

// StopTimeLogUseCase は計測中の時間ログを停止する。
type StopTimeLogUseCase struct {
	logs   timeLogFindUpdater
	tasks  repository.FindOner[model.Task]
	mapper Mapper
	now    func() time.Time
}

// NewStopTimeLogUseCase はStopTimeLogUseCaseを生成する。
func NewStopTimeLogUseCase(logs timeLogFindUpdater, tasks repository.FindOner[model.Task]) *StopTimeLogUseCase {
	return &StopTimeLogUseCase{logs: logs, tasks: tasks, now: time.Now}
}

// Execute はEndedAtを設定して計測を終える。
// 停止済みのログはConflict、開始より前の終了時刻はValidationエラーになる。
func (uc *StopTimeLogUseCase) Execute(ctx context.Context, userID, id string, req StopTimeLogRequest) (*TimeLogResponse, error) {
	l, err := findOwnedLog(ctx, uc.logs, uc.tasks, userID, id)
	if err != nil {
		return nil, err
	}
	if !l.Running() {
		return nil, model.NewConflictError(category, msgAlreadyStopped)
	}

	endedAt := uc.now().UTC()
	if req.EndedAt != nil {
		endedAt = *req.EndedAt
	}
	if endedAt.Before(l.StartedAt) {
		return nil, model.NewValidationError(msgEndedBeforeStart)
	}
	l.EndedAt = &endedAt

	updated, err := uc.logs.UpdateOne(ctx, id, l)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, model.NewNotFoundError(category, msgTimeLogNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to stop time log",
			slog.String("time_log_id", id),
			slog.String("error", err.Error()),
		)
		return nil, repositoryError("stop").WithCause(err)
	}

	resp := uc.mapper.ToResponse(updated)
	return &resp, nil
}

// FindTimeLogUseCase は時間ログを1件取得する。
type FindTimeLogUseCase struct {
	logs   repository.FindOner[model.TimeLog]
	tasks  repository.FindOner[model.Task]
	mapper Mapper
}

// NewFindTimeLogUseCase はFindTimeLogUseCaseを生成する。
func NewFindTimeLogUseCase(logs repository.FindOner[model.TimeLog], tasks repository.FindOner[model.Task]) *FindTimeLogUseCase {
	return &FindTimeLogUseCase{logs: logs, tasks: tasks}
}

// Execute は利用者のタスクに属する時間ログを返す。
func (uc *FindTimeLogUseCase) Execute(ctx context.Context, userID, id string) (*TimeLogResponse, error) {
	l, err := findOwnedLog(ctx, uc.logs, uc.tasks, userID, id)
	if err != nil {
		return nil, err
	}
	resp := uc.mapper.ToResponse(l)
	return &resp, nil
}

// TaskTimeLogLister はタスクごとの時間ログ一覧を取得する。
type TaskTimeLogLister interface {
	FindAllByTaskID(ctx context.Context, taskID string, page model.Page) ([]*model.TimeLog, error)
}

// FindTimeLogsByTaskUseCase はタスクの時間ログ一覧を取得する。
type FindTimeLogsByTaskUseCase struct {
	logs   TaskTimeLogLister
	tasks  repository.FindOner[model.Task]
	mapper Mapper
	limits PageLimits
}

// NewFindTimeLogsByTaskUseCase はFindTimeLogsByTaskUseCaseを生成する。
func NewFindTimeLogsByTaskUseCase(logs TaskTimeLogLister, tasks repository.FindOner[model.Task], limits PageLimits) *FindTimeLogsByTaskUseCase {
	return &FindTimeLogsByTaskUseCase{logs: logs, tasks: tasks, limits: limits}
}

// Execute は利用者が所有するタスクの時間ログを開始日時の降順で返す。
func (uc *FindTimeLogsByTaskUseCase) Execute(ctx context.Context, userID, taskID string, page model.Page) (*TimeLogListResponse, error) {
	if _, err := task.FindOwned(ctx, uc.tasks, userID, taskID); err != nil {
		return nil, err
	}

	page = page.Normalize(uc.limits.Default, uc.limits.Max)
	logs, err := uc.logs.FindAllByTaskID(ctx, taskID, page)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list time logs",
			slog.String("task_id", taskID),
			slog.String("error", err.Error()),
		)
		return nil, repositoryError("list").WithCause(err)
	}

	resp := &TimeLogListResponse{
		TimeLogs: make([]TimeLogResponse, 0, len(logs)),
		Limit:    page.Limit,
		Offset:   page.Offset,
	}
	for _, l := range logs {
		resp.TimeLogs = append(resp.TimeLogs, uc.mapper.ToResponse(l))
	}
	return resp, nil
}

type timeLogFindDeleter interface {
	repository.FindOner[model.TimeLog]
	repository.Deleter
}

// DeleteTimeLogUseCase は時間ログを削除する。
type DeleteTimeLogUseCase struct {
	logs  timeLogFindDeleter
	tasks repository.FindOner[model.Task]
}

// NewDeleteTimeLogUseCase はDeleteTimeLogUseCaseを生成する。
func NewDeleteTimeLogUseCase(logs timeLogFindDeleter, tasks repository.FindOner[model.Task]) *DeleteTimeLogUseCase {
	return &DeleteTimeLogUseCase{logs: logs, tasks: tasks}
}

// Execute は利用者のタスクに属する時間ログを削除する。
func (uc *DeleteTimeLogUseCase) Execute(ctx context.Context, userID, id string) (*DeleteTimeLogResponse, error) {
	if _, err := findOwnedLog(ctx, uc.logs, uc.tasks, userID, id); err != nil {
		return nil, err
	}

	if err := uc.logs.DeleteOne(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, model.NewNotFoundError(category, msgTimeLogNotFound)
		}
		slog.ErrorContext(ctx, "failed to delete time log",
			slog.String("time_log_id", id),
			slog.String("error", err.Error()),
		)
		return nil, repositoryError("delete").WithCause(err)
	}

	return &DeleteTimeLogResponse{ID: id, Deleted: true}, nil
}
