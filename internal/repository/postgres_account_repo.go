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

const accountColumns = `id, email, username, password, created_at, updated_at`

// PostgresAccountRepo はPostgreSQLを使用したアカウントリポジトリ。
type PostgresAccountRepo struct {
	db *sql.DB
}

// NewPostgresAccountRepo はPostgresAccountRepoを生成する。
func NewPostgresAccountRepo(db *sql.DB) *PostgresAccountRepo {
	return &PostgresAccountRepo{db: db}
}

// CreateOne はアカウントを作成し、採番済みのアカウントを返す。
// email・usernameの一意制約違反は*ConstraintViolationErrorで返す。
func (r *PostgresAccountRepo) CreateOne(ctx context.Context, account *model.Account) (*model.Account, error) {
	now := time.Now().UTC()
	created, err := scanAccount(r.db.QueryRowContext(ctx,
		`INSERT INTO accounts (id, email, username, password, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $5)
		 RETURNING `+accountColumns,
		uuid.New().String(), account.Email, account.Username, account.Password, now,
	))
	if err != nil {
		return nil, translatePQError(err, "failed to insert account")
	}
	return created, nil
}

// FindOne は指定IDのアカウントを取得する。
func (r *PostgresAccountRepo) FindOne(ctx context.Context, id string) (*model.Account, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}

	account, err := scanAccount(r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`,
		id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find account by ID: %w", err)
	}
	return account, nil
}

// FindByEmailOrUsername はemailまたはusernameに一致するアカウントを取得する。
func (r *PostgresAccountRepo) FindByEmailOrUsername(ctx context.Context, email, username string) (*model.Account, error) {
	if email == "" && username == "" {
		return nil, ErrInvalidLookup
	}

	account, err := scanAccount(r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+`
		 FROM accounts
		 WHERE ($1 <> '' AND email = $1) OR ($2 <> '' AND username = $2)
		 ORDER BY created_at ASC
		 LIMIT 1`,
		email, username,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find account by email or username: %w", err)
	}
	return account, nil
}

// UpdateOne は指定IDのアカウントのemail・username・passwordを置き換える。
func (r *PostgresAccountRepo) UpdateOne(ctx context.Context, id string, account *model.Account) (*model.Account, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}

	updated, err := scanAccount(r.db.QueryRowContext(ctx,
		`UPDATE accounts
		 SET email = $2, username = $3, password = $4, updated_at = $5
		 WHERE id = $1
		 RETURNING `+accountColumns,
		id, account.Email, account.Username, account.Password, time.Now().UTC(),
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, translatePQError(err, "failed to update account")
	}
	return updated, nil
}

// DeleteOne は指定IDのアカウントを削除する。
// 所有するtasks、time_logsはCASCADE削除される。
func (r *PostgresAccountRepo) DeleteOne(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	return deleteByID(ctx, r.db, `DELETE FROM accounts WHERE id = $1`, id, "account")
}

func scanAccount(row *sql.Row) (*model.Account, error) {
	a := &model.Account{}
	if err := row.Scan(&a.ID, &a.Email, &a.Username, &a.Password, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return a, nil
}

// validID はidがUUID形式かどうかを返す。
// uuid列に不正な文字列を渡すとPostgreSQLが型エラーを返すため、事前に不在として扱う。
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// deleteByID は単一行のDELETEを実行し、対象がなければErrNotFoundを返す。
func deleteByID(ctx context.Context, db *sql.DB, query, id, entity string) error {
	result, err := db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", entity, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// compile-time interface check
var _ AccountRepository = (*PostgresAccountRepo)(nil)
