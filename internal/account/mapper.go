package account

import "github.com/hitoshi/tasktimer/internal/model"

// SignUpMapper はサインアップのDTOとAccountエンティティを相互変換する。
type SignUpMapper struct{}

// ToEntity はSignUpRecordから永続化前のAccountを生成する。IDとタイムスタンプは永続化層が設定する。
func (SignUpMapper) ToEntity(r SignUpRecord) *model.Account {
	return &model.Account{
		Email:    r.Email,
		Username: r.Username,
		Password: r.Password,
	}
}

// ToResponse は永続化済みのAccountをSignUpResponseに変換する。
func (SignUpMapper) ToResponse(a *model.Account) SignUpResponse {
	return SignUpResponse{
		ID:        a.ID,
		Email:     a.Email,
		Username:  a.Username,
		Password:  a.Password,
		CreatedAt: a.CreatedAt,
	}
}

// AccountMapper はAccountを公開プロフィールに変換する。
type AccountMapper struct{}

// ToResponse はパスワードを除いたAccountResponseを返す。
func (AccountMapper) ToResponse(a *model.Account) AccountResponse {
	return AccountResponse{
		ID:        a.ID,
		Email:     a.Email,
		Username:  a.Username,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
