package model

import "time"

// Task はアカウントが所有する作業タスクを表す。
type Task struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Status      TaskStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskStatus はタスクの進捗状態を表す。
type TaskStatus string

const (
	// TaskStatusTodo は未着手の状態。
	TaskStatusTodo TaskStatus = "todo"
	// TaskStatusInProgress は作業中の状態。
	TaskStatusInProgress TaskStatus = "in_progress"
	// TaskStatusDone は完了した状態。
	TaskStatusDone TaskStatus = "done"
)

// Valid はステータスが定義済みの値かどうかを返す。
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	default:
		return false
	}
}
