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

const timeLogColumns = `id, task_id, started_at, ended_at, created_at`

// PostgresTimeLogRepo はPostgreSQLを使用した時間ログリポジトリ。
type PostgresTimeLogRepo struct {
	db *sql.DB
}

// NewPostgresTimeLogRepo はPostgresTimeLogRepoを生成する。
func NewPostgresTimeLogRepo(db *sql.DB) *PostgresTimeLogRepo {
	return &PostgresTimeLogRepo{db: db}
}

// CreateOne は時間ログを作成する。
// 参照先タスクが存在しない場合は外部キー制約違反を返す。
func (r *PostgresTimeLogRepo) CreateOne(ctx context.Context, log *model.TimeLog) (*model.TimeLog, error) {
	created, err := scanTimeLog(r.db.QueryRowContext(ctx,
		`INSERT INTO time_logs (id, task_id, started_at, ended_at, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+timeLogColumns,
		uuid.New().String(), log.TaskID, log.StartedAt, nullTime(log.EndedAt), time.Now().UTC(),
	))
	if err != nil {
		return nil, translatePQError(err, "failed to insert time log")
	}
	return created, nil
}

// FindOne は指定IDの時間ログを取得する。
func (r *PostgresTimeLogRepo) FindOne(ctx context.Context, id string) (*model.TimeLog, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}

	log, err := scanTimeLog(r.db.QueryRowContext(ctx,
		`SELECT `+timeLogColumns+` FROM time_logs WHERE id = $1`,
		id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find time log by ID: %w", err)
	}
	return log, nil
}

// UpdateOne は指定IDの時間ログのstarted_at・ended_atを置き換える。
func (r *PostgresTimeLogRepo) UpdateOne(ctx context.Context, id string, log *model.TimeLog) (*model.TimeLog, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}

	updated, err := scanTimeLog(r.db.QueryRowContext(ctx,
		`UPDATE time_logs
		 SET started_at = $2, ended_at = $3
		 WHERE id = $1
		 RETURNING `+timeLogColumns,
		id, log.StartedAt, nullTime(log.EndedAt),
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, translatePQError(err, "failed to update time log")
	}
	return updated, nil
}

// DeleteOne は指定IDの時間ログを削除する。
func (r *PostgresTimeLogRepo) DeleteOne(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	return deleteByID(ctx, r.db, `DELETE FROM time_logs WHERE id = $1`, id, "time log")
}

// FindAllByTaskID は指定タスクの時間ログを開始日時の降順で返す。
func (r *PostgresTimeLogRepo) FindAllByTaskID(ctx context.Context, taskID string, page model.Page) ([]*model.TimeLog, error) {
	if !validID(taskID) {
		return []*model.TimeLog{}, nil
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+timeLogColumns+`
		 FROM time_logs
		 WHERE task_id = $1
		 ORDER BY started_at DESC, id
		 LIMIT $2 OFFSET $3`,
		taskID, page.Limit, page.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list time logs by task: %w", err)
	}
	defer rows.Close()

	logs := []*model.TimeLog{}
	for rows.Next() {
		l, err := scanTimeLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time log: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate time logs: %w", err)
	}
	return logs, nil
}

func scanTimeLog(row interface{ Scan(dest ...any) error }) (*model.TimeLog, error) {
	l := &model.TimeLog{}
	var endedAt sql.NullTime
	if err := row.Scan(&l.ID, &l.TaskID, &l.StartedAt, &endedAt, &l.CreatedAt); err != nil {
		return nil, err
	}
	if endedAt.Valid {
		t := endedAt.Time
		l.EndedAt = &t
	}
	return l, nil
}

// nullTime は*time.Timeをsql.NullTimeに変換する。
func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// compile-time interface check
var _ TimeLogRepository = (*PostgresTimeLogRepo)(nil)
