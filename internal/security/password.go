// Package security はパスワードハッシュ、認証トークン、入力テキストの無害化を提供する。
package security

import (
	"context"
	"errors"
	"fmt"
)

// ErrEmptyPassword は空のパスワードをハッシュしようとした場合のエラー。
var ErrEmptyPassword = errors.New("empty password")

// PasswordHasher はパスワードのハッシュ化と照合を行う。
// 失敗の詳細は呼び出し側に意味を持たないため、ユースケース層で内部エラーに変換する。
type PasswordHasher interface {
	// HashPassword は平文パスワードから保存用のハッシュ文字列を生成する。
	HashPassword(ctx context.Context, plaintext string) (string, error)
	// VerifyPassword は平文パスワードがハッシュと一致するかを返す。
	// 不一致はエラーではなくfalseで返す。
	VerifyPassword(ctx context.Context, plaintext, hash string) (bool, error)
}

// ハッシュアルゴリズム名（PASSWORD_HASHER の値）
const (
	HasherBcrypt   = "bcrypt"
	HasherArgon2id = "argon2id"
)

// NewPasswordHasher はアルゴリズム名に対応するPasswordHasherを生成する。
func NewPasswordHasher(kind string, bcryptCost int) (PasswordHasher, error) {
	switch kind {
	case HasherBcrypt, "":
		return NewBcryptHasher(bcryptCost), nil
	case HasherArgon2id:
		return NewArgon2idHasher(DefaultArgon2idParams), nil
	default:
		return nil, fmt.Errorf("unsupported password hasher: %q", kind)
	}
}
