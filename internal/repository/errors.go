package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	// ErrNotFound は対象レコードが存在しないことを示す。
	ErrNotFound = errors.New("record not found")

	// ErrInvalidLookup は検索条件が1つも指定されていないことを示す。
	ErrInvalidLookup = errors.New("at least one lookup field is required")
)

// ViolationKind は制約違反の種類。
type ViolationKind string

const (
	// ViolationUnique は一意制約違反。
	ViolationUnique ViolationKind = "unique"
	// ViolationForeignKey は外部キー制約違反。
	ViolationForeignKey ViolationKind = "foreign_key"
)

// PostgreSQLのSQLSTATE
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// ConstraintViolationError は永続化層が明示的に返す制約違反エラー。
// 呼び出し側はベンダー固有のエラー型を調べずにerrors.Asで判定できる。
type ConstraintViolationError struct {
	Kind       ViolationKind
	Code       string // SQLSTATE
	Constraint string // 制約名（例: accounts_email_key）
	Err        error
}

// Error はerrorインターフェースを実装する。
func (e *ConstraintViolationError) Error() string {
	return fmt.Sprintf("%s constraint violation (%s) on %s", e.Kind, e.Code, e.Constraint)
}

// Unwrap は元のドライバエラーを返す。
func (e *ConstraintViolationError) Unwrap() error {
	return e.Err
}

// IsUniqueViolation はerrが一意制約違反かどうかを返す。
func IsUniqueViolation(err error) bool {
	var cv *ConstraintViolationError
	return errors.As(err, &cv) && cv.Kind == ViolationUnique
}

// IsForeignKeyViolation はerrが外部キー制約違反かどうかを返す。
func IsForeignKeyViolation(err error) bool {
	var cv *ConstraintViolationError
	return errors.As(err, &cv) && cv.Kind == ViolationForeignKey
}

// translatePQError はlib/pqのエラーを制約違反エラーに変換する。
// 制約違反以外はmsgを付けてラップして返す。
func translatePQError(err error, msg string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case codeUniqueViolation:
			return &ConstraintViolationError{
				Kind:       ViolationUnique,
				Code:       codeUniqueViolation,
				Constraint: pqErr.Constraint,
				Err:        err,
			}
		case codeForeignKeyViolation:
			return &ConstraintViolationError{
				Kind:       ViolationForeignKey,
				Code:       codeForeignKeyViolation,
				Constraint: pqErr.Constraint,
				Err:        err,
			}
		}
	}
	return fmt.Errorf("%s: %w", msg, err)
}
