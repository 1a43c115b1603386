// Package repository はデータ永続化のインターフェースを定義する。
//
// 各リポジトリは単一の操作だけを持つ小さなインターフェースを組み合わせて構成する。
// 不在は ErrNotFound、一意制約・外部キー制約違反は *ConstraintViolationError で通知する。
package repository

import (
	"context"

	"github.com/hitoshi/tasktimer/internal/model"
)

// Creator は新規レコードを永続化する。IDは永続化層が採番する。
type Creator[T any] interface {
	CreateOne(ctx context.Context, entity *T) (*T, error)
}

// FindOner はIDでレコードを1件取得する。見つからない場合はErrNotFoundを返す。
type FindOner[T any] interface {
	FindOne(ctx context.Context, id string) (*T, error)
}

// Updater は指定IDのレコードを置き換える。マージは呼び出し側の責務。
// 見つからない場合はErrNotFoundを返す。
type Updater[T any] interface {
	UpdateOne(ctx context.Context, id string, entity *T) (*T, error)
}

// Deleter は指定IDのレコードを削除する。
// 冪等ではなく、存在しないIDの削除はErrNotFoundを返す。
type Deleter interface {
	DeleteOne(ctx context.Context, id string) error
}

// FindAller は全件をページ単位で取得する。
type FindAller[T any] interface {
	FindAll(ctx context.Context, page model.Page) ([]*T, error)
}

// AccountRepository はアカウントの永続化インターフェース。
type AccountRepository interface {
	Creator[model.Account]
	FindOner[model.Account]
	Updater[model.Account]
	Deleter

	// FindByEmailOrUsername はemailまたはusernameでアカウントを検索する。
	// 空文字列の引数は条件に含めない。両方空の場合はErrInvalidLookupを返す。
	FindByEmailOrUsername(ctx context.Context, email, username string) (*model.Account, error)
}

// TaskRepository はタスクの永続化インターフェース。
type TaskRepository interface {
	Creator[model.Task]
	FindOner[model.Task]
	Updater[model.Task]
	Deleter
	FindAller[model.Task]

	// FindAllByUserID は指定ユーザーが所有するタスクを作成日時の降順で返す。
	FindAllByUserID(ctx context.Context, userID string, page model.Page) ([]*model.Task, error)
}

// TimeLogRepository は作業時間ログの永続化インターフェース。
type TimeLogRepository interface {
	Creator[model.TimeLog]
	FindOner[model.TimeLog]
	Updater[model.TimeLog]
	Deleter

	// FindAllByTaskID は指定タスクの時間ログを開始日時の降順で返す。
	FindAllByTaskID(ctx context.Context, taskID string, page model.Page) ([]*model.TimeLog, error)
}
