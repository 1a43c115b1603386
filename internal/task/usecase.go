package task

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hitoshi/tasktimer/internal/model"
	"github.com/hitoshi/tasktimer/internal/repository"
)

const category = "task"

const (
	msgTaskNotFound  = "Task not found"
	msgTitleRequired = "Title is required"
	msgInvalidStatus = "Status must be one of todo, in_progress, done"
)

// PageLimits は一覧取得の既定件数と上限件数。
type PageLimits struct {
	Default int
	Max     int
}

func repositoryError(op string) *model.APIError {
	return model.NewInternalError(category, "Failed to "+op+" task: TASK_REPOSITORY_ERROR")
}

// FindOwned は所有者が一致するタスクを返す。他人のタスクは存在しないものとして扱う。
func FindOwned(ctx context.Context, repo repository.FindOner[model.Task], userID, id string) (*model.Task, error) {
	t, err := repo.FindOne(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, model.NewNotFoundError(category, msgTaskNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to find task",
			slog.String("task_id", id),
			slog.String("error", err.Error()),
		)
		return nil, repositoryError("find").WithCause(err)
	}
	if t.UserID != userID {
		return nil, model.NewNotFoundError(category, msgTaskNotFound)
	}
	return t, nil
}

func validate(t *model.Task) error {
	if t.Title == "" {
		return model.NewValidationError(msgTitleRequired)
	}
	if !t.Status.Valid() {
		return model.NewValidationError(msgInvalidStatus)
	}
	return nil
}

// CreateTaskUseCase はタスクを作成する。
type CreateTaskUseCase struct {
	repo   repository.Creator[model.Task]
	mapper Mapper
}

// NewCreateTaskUseCase はCreateTaskUseCaseを生成する。
func NewCreateTaskUseCase(repo repository.Creator[model.Task], mapper Mapper) *CreateTaskUseCase {
	return &CreateTaskUseCase{repo: repo, mapper: mapper}
}

// Execute はuserIDを所有者とするタスクを作成する。
func (uc *CreateTaskUseCase) Execute(ctx context.Context, userID string, req CreateTaskRequest) (*TaskResponse, error) {
	entity := uc.mapper.ToEntity(req, userID)
	if err := validate(entity); err != nil {
		return nil, err
	}

	created, err := uc.repo.CreateOne(ctx, entity)
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			// 所有アカウントが削除済み
			return nil, model.NewNotFoundError("account", "Account not found").WithCause(err)
		}
		slog.ErrorContext(ctx, "failed to create task",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return nil, repositoryError("create").WithCause(err)
	}

	resp := uc.mapper.ToResponse(created)
	return &resp, nil
}

type taskFindUpdater interface {
	repository.FindOner[model.Task]
	repository.Updater[model.Task]
}

// UpdateTaskUseCase はタスクを部分更新する。
type UpdateTaskUseCase struct {
	repo   taskFindUpdater
	mapper Mapper
}

// NewUpdateTaskUseCase はUpdateTaskUseCaseを生成する。
func NewUpdateTaskUseCase(repo taskFindUpdater, mapper Mapper) *UpdateTaskUseCase {
	return &UpdateTaskUseCase{repo: repo, mapper: mapper}
}

// Execute は所有者の一致するタスクに指定フィールドをマージして保存する。
func (uc *UpdateTaskUseCase) Execute(ctx context.Context, userID, id string, req UpdateTaskRequest) (*TaskResponse, error) {
	t, err := FindOwned(ctx, uc.repo, userID, id)
	if err != nil {
		return nil, err
	}

	uc.mapper.Apply(t, req)
	if err := validate(t); err != nil {
		return nil, err
	}

	updated, err := uc.repo.UpdateOne(ctx, id, t)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, model.NewNotFoundError(category, msgTaskNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to update task",
			slog.String("task_id", id),
			slog.String("error", err.Error()),
		)
		return nil, repositoryError("update").WithCause(err)
	}

	resp := uc.mapper.ToResponse(updated)
	return &resp, nil
}

type taskFindDeleter interface {
	repository.FindOner[model.Task]
	repository.Deleter
}

// DeleteTaskUseCase はタスクと関連する時間ログを削除する。
type DeleteTaskUseCase struct {
	repo taskFindDeleter
}

// NewDeleteTaskUseCase はDeleteTaskUseCaseを生成する。
func NewDeleteTaskUseCase(repo taskFindDeleter) *DeleteTaskUseCase {
	return &DeleteTaskUseCase{repo: repo}
}

// Execute は所有者の一致するタスクを削除する。
func (uc *DeleteTaskUseCase) Execute(ctx context.Context, userID, id string) (*DeleteTaskResponse, error) {
	if _, err := FindOwned(ctx, uc.repo, userID, id); err != nil {
		return nil, err
	}

	if err := uc.repo.DeleteOne(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, model.NewNotFoundError(category, msgTaskNotFound)
		}
		slog.ErrorContext(ctx, "failed to delete task",
			slog.String("task_id", id),
			slog.String("error", err.Error()),
		)
		return nil, repositoryError("delete").WithCause(err)
	}

	return &DeleteTaskResponse{ID: id, Deleted: true}, nil
}

// UserTaskLister は所有者ごとのタスク一覧を取得する。
type UserTaskLister interface {
	FindAllByUserID(ctx context.Context, userID string, page model.Page) ([]*model.Task, error)
}

// FindAllTasksUseCase は利用者のタスク一覧を取得する。
type FindAllTasksUseCase struct {
	repo   UserTaskLister
	mapper Mapper
	limits PageLimits
}

// NewFindAllTasksUseCase はFindAllTasksUseCaseを生成する。
func NewFindAllTasksUseCase(repo UserTaskLister, mapper Mapper, limits PageLimits) *FindAllTasksUseCase {
	return &FindAllTasksUseCase{repo: repo, mapper: mapper, limits: limits}
}

// Execute はuserIDが所有するタスクを作成日時の降順で返す。
func (uc *FindAllTasksUseCase) Execute(ctx context.Context, userID string, page model.Page) (*TaskListResponse, error) {
	page = page.Normalize(uc.limits.Default, uc.limits.Max)

	tasks, err := uc.repo.FindAllByUserID(ctx, userID, page)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list tasks",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return nil, repositoryError("list").WithCause(err)
	}

	resp := &TaskListResponse{
		Tasks:  make([]TaskResponse, 0, len(tasks)),
		Limit:  page.Limit,
		Offset: page.Offset,
	}
	for _, t := range tasks {
		resp.Tasks = append(resp.Tasks, uc.mapper.ToResponse(t))
	}
	return resp, nil
}

// FindTaskByIDUseCase はタスクを1件取得する。
type FindTaskByIDUseCase struct {
	repo   repository.FindOner[model.Task]
	mapper Mapper
}

// NewFindTaskByIDUseCase はFindTaskByIDUseCaseを生成する。
func NewFindTaskByIDUseCase(repo repository.FindOner[model.Task], mapper Mapper) *FindTaskByIDUseCase {
	return &FindTaskByIDUseCase{repo: repo, mapper: mapper}
}

// Execute は所有者の一致するタスクを返す。
func (uc *FindTaskByIDUseCase) Execute(ctx context.Context, userID, id string) (*TaskResponse, error) {
	t, err := FindOwned(ctx, uc.repo, userID, id)
	if err != nil {
		return nil, err
	}
	resp := uc.mapper.ToResponse(t)
	return &resp, nil
}
