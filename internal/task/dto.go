// Package task はタスク管理のユースケースを提供する。
package task

import (
	"time"

	"github.com/hitoshi/tasktimer/internal/model"
)

// CreateTaskRequest はタスク作成の入力。Status が空の場合は todo になる。
type CreateTaskRequest struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Status      model.TaskStatus `json:"status,omitempty"`
}

// UpdateTaskRequest はタスク更新の入力。nilのフィールドは変更しない。
type UpdateTaskRequest struct {
	Title       *string           `json:"title,omitempty"`
	Description *string           `json:"description,omitempty"`
	Status      *model.TaskStatus `json:"status,omitempty"`
}

// TaskResponse はタスクの出力。
type TaskResponse struct {
	ID          string           `json:"id"`
	UserID      string           `json:"user_id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Status      model.TaskStatus `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// TaskListResponse はタスク一覧の出力。
type TaskListResponse struct {
	Tasks  []TaskResponse `json:"tasks"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// DeleteTaskResponse はタスク削除の確認。
type DeleteTaskResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}
