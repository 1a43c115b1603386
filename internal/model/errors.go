package model

import (
	"errors"
	"fmt"
)

// APIError は統一エラーフォーマットを表す。
// ユースケースはこの型のみを呼び出し元に返し、HTTP層がCodeをステータスに変換する。
type APIError struct {
	Code     string // エラー種別
	Message  string // エラーメッセージ
	Category string // カテゴリ: account, task, time_log, validation, auth, system
	Action   string // ユーザー向け対処方法

	cause error
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap はログ用に保持している原因エラーを返す。
func (e *APIError) Unwrap() error {
	return e.cause
}

// WithCause は原因エラーを保持したコピーを返す。
// 原因はレスポンスには含まれず、ログ出力でのみ利用される。
func (e *APIError) WithCause(err error) *APIError {
	cp := *e
	cp.cause = err
	return &cp
}

// 定義済みエラーコード
const (
	ErrCodeConflict     = "CONFLICT"
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeValidation   = "INVALID_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
)

// NewConflictError は一意制約違反などの競合エラーを生成する。
func NewConflictError(category, message string) *APIError {
	return &APIError{
		Code:     ErrCodeConflict,
		Message:  message,
		Category: category,
		Action:   "Use a different value and try again.",
	}
}

// NewInternalError は協調オブジェクトの予期しない失敗を表すエラーを生成する。
func NewInternalError(category, message string) *APIError {
	return &APIError{
		Code:     ErrCodeInternal,
		Message:  message,
		Category: category,
		Action:   "Please wait a moment and try again.",
	}
}

// NewNotFoundError は参照先エンティティが存在しない場合のエラーを生成する。
func NewNotFoundError(category, message string) *APIError {
	return &APIError{
		Code:     ErrCodeNotFound,
		Message:  message,
		Category: category,
		Action:   "Check the identifier and try again.",
	}
}

// NewValidationError は入力値が不正な場合のエラーを生成する。
func NewValidationError(message string) *APIError {
	return &APIError{
		Code:     ErrCodeValidation,
		Message:  message,
		Category: "validation",
		Action:   "Fix the request and try again.",
	}
}

// NewUnauthorizedError は認証に失敗した場合のエラーを生成する。
func NewUnauthorizedError(message string) *APIError {
	return &APIError{
		Code:     ErrCodeUnauthorized,
		Message:  message,
		Category: "auth",
		Action:   "Sign in and try again.",
	}
}

// IsConflict はerrが競合エラーかどうかを返す。
func IsConflict(err error) bool {
	return hasCode(err, ErrCodeConflict)
}

// IsInternal はerrが内部エラーかどうかを返す。
func IsInternal(err error) bool {
	return hasCode(err, ErrCodeInternal)
}

// IsNotFound はerrが未検出エラーかどうかを返す。
func IsNotFound(err error) bool {
	return hasCode(err, ErrCodeNotFound)
}

// IsUnauthorized はerrが認証エラーかどうかを返す。
func IsUnauthorized(err error) bool {
	return hasCode(err, ErrCodeUnauthorized)
}

func hasCode(err error, code string) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == code
	}
	return false
}
