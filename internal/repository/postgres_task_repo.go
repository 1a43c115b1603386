package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/tasktimer/internal/model"
)

const taskColumns = `id, user_id, title, description, status, created_at, updated_at`

// PostgresTaskRepo はPostgreSQLを使用したタスクリポジトリ。
type PostgresTaskRepo struct {
	db *sql.DB
}

// NewPostgresTaskRepo はPostgresTaskRepoを生成する。
func NewPostgresTaskRepo(db *sql.DB) *PostgresTaskRepo {
	return &PostgresTaskRepo{db: db}
}

// CreateOne はタスクを作成する。
// 所有アカウントが存在しない場合は外部キー制約違反を返す。
func (r *PostgresTaskRepo) CreateOne(ctx context.Context, task *model.Task) (*model.Task, error) {
	now := time.Now().UTC()
	created, err := scanTask(r.db.QueryRowContext(ctx,
		`INSERT INTO tasks (id, user_id, title, description, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $6)
		 RETURNING `+taskColumns,
		uuid.New().String(), task.UserID, task.Title, task.Description, task.Status, now,
	))
	if err != nil {
		return nil, translatePQError(err, "failed to insert task")
	}
	return created, nil
}

// FindOne は指定IDのタスクを取得する。
func (r *PostgresTaskRepo) FindOne(ctx context.Context, id string) (*model.Task, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}

	task, err := scanTask(r.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1`,
		id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find task by ID: %w", err)
	}
	return task, nil
}

// UpdateOne は指定IDのタスクのtitle・description・statusを置き換える。
func (r *PostgresTaskRepo) UpdateOne(ctx context.Context, id string, task *model.Task) (*model.Task, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}

	updated, err := scanTask(r.db.QueryRowContext(ctx,
		`UPDATE tasks
		 SET title = $2, description = $3, status = $4, updated_at = $5
		 WHERE id = $1
		 RETURNING `+taskColumns,
		id, task.Title, task.Description, task.Status, time.Now().UTC(),
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, translatePQError(err, "failed to update task")
	}
	return updated, nil
}

// DeleteOne は指定IDのタスクを削除する。関連するtime_logsはCASCADE削除される。
func (r *PostgresTaskRepo) DeleteOne(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	return deleteByID(ctx, r.db, `DELETE FROM tasks WHERE id = $1`, id, "task")
}

// FindAll は全タスクを作成日時の降順で返す。
// 所有者で絞り込まないため、利用者向けのユースケースやHTTPからは呼ばない。
// 利用者ごとの一覧にはFindAllByUserIDを使う。
func (r *PostgresTaskRepo) FindAll(ctx context.Context, page model.Page) ([]*model.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+taskColumns+`
		 FROM tasks
		 ORDER BY created_at DESC, id
		 LIMIT $1 OFFSET $2`,
		page.Limit, page.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return collectTasks(rows)
}

// FindAllByUserID は指定ユーザーのタスクを作成日時の降順で返す。
func (r *PostgresTaskRepo) FindAllByUserID(ctx context.Context, userID string, page model.Page) ([]*model.Task, error) {
	if !validID(userID) {
		return []*model.Task{}, nil
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+taskColumns+`
		 FROM tasks
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id
		 LIMIT $2 OFFSET $3`,
		userID, page.Limit, page.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks by user: %w", err)
	}
	return collectTasks(rows)
}

func scanTask(row interface{ Scan(dest ...any) error }) (*model.Task, error) {
	t := &model.Task{}
	if err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return t, nil
}

func collectTasks(rows *sql.Rows) ([]*model.Task, error) {
	defer rows.Close()

	tasks := []*model.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}
	return tasks, nil
}

// compile-time interface check
var _ TaskRepository = (*PostgresTaskRepo)(nil)
