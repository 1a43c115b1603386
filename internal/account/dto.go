// Package account はアカウントの登録・認証・管理のユースケースを提供する。
package account

import "time"

// SignUpRequest はサインアップの入力。フィールドの形式検証はハンドラー層で済んでいる前提。
type SignUpRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignUpRecord はパスワードをハッシュ値に置き換えた中間表現。
type SignUpRecord struct {
	Email    string
	Username string
	Password string
}

// SignUpResponse はサインアップの出力。
// Password には保存済みのハッシュ値が入る。
type SignUpResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"created_at"`
}

// SignInRequest はサインインの入力。Identifier にはemailまたはusernameを指定する。
type SignInRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// SignInResponse はサインインの出力。
type SignInResponse struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	ExpiresAt   time.Time       `json:"expires_at"`
	Account     AccountResponse `json:"account"`
}

// AccountResponse はパスワードを含まない公開プロフィール。
type AccountResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateAccountRequest はアカウント更新の入力。nilのフィールドは変更しない。
type UpdateAccountRequest struct {
	Email    *string `json:"email,omitempty"`
	Username *string `json:"username,omitempty"`
	Password *string `json:"password,omitempty"`
}

// DeleteAccountResponse はアカウント削除の確認。
type DeleteAccountResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}
