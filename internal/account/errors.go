package account

import "github.com/hitoshi/tasktimer/internal/model"

const category = "account"

// 呼び出し元に返す固定メッセージ
const (
	msgHashFailed         = "Something went wrong trying to hash password"
	msgVerifyFailed       = "Something went wrong trying to verify password"
	msgEmailExists        = "Email already exists"
	msgEmailOrNameExists  = "Email or username already exists"
	msgAccountNotFound    = "Account not found"
	msgInvalidCredentials = "Invalid credentials"
	msgTokenFailed        = "Failed to issue access token"
)

func repositoryError(op string) *model.APIError {
	return model.NewInternalError(category, "Failed to "+op+" account: ACCOUNT_REPOSITORY_ERROR")
}
