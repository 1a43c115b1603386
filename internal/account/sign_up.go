package account

import (
	"context"
	"log/slog"

	"github.com/hitoshi/tasktimer/internal/model"
	"github.com/hitoshi/tasktimer/internal/repository"
	"github.com/hitoshi/tasktimer/internal/security"
)

type signUpMapper interface {
	ToEntity(r SignUpRecord) *model.Account
	ToResponse(a *model.Account) SignUpResponse
}

// SignUpUseCase は新規アカウントを登録する。
type SignUpUseCase struct {
	hasher security.PasswordHasher
	repo   repository.Creator[model.Account]
	mapper signUpMapper
}

// NewSignUpUseCase はSignUpUseCaseを生成する。
func NewSignUpUseCase(hasher security.PasswordHasher, repo repository.Creator[model.Account], mapper signUpMapper) *SignUpUseCase {
	return &SignUpUseCase{hasher: hasher, repo: repo, mapper: mapper}
}

// Execute はパスワードをハッシュ化してアカウントを作成する。
// 返すエラーは常に*model.APIError。ハッシュ化に失敗した場合はリポジトリを呼び出さない。
func (uc *SignUpUseCase) Execute(ctx context.Context, req SignUpRequest) (*SignUpResponse, error) {
	hashed, err := uc.hasher.HashPassword(ctx, req.Password)
	if err != nil {
		slog.ErrorContext(ctx, "password hashing failed", slog.String("error", err.Error()))
		return nil, model.NewInternalError(category, msgHashFailed).WithCause(err)
	}

	record := SignUpRecord{
		Email:    req.Email,
		Username: req.Username,
		Password: hashed,
	}

	created, err := uc.repo.CreateOne(ctx, uc.mapper.ToEntity(record))
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, model.NewConflictError(category, msgEmailExists).WithCause(err)
		}
		slog.ErrorContext(ctx, "failed to create account", slog.String("error", err.Error()))
		return nil, repositoryError("create").WithCause(err)
	}

	slog.InfoContext(ctx, "account created", slog.String("account_id", created.ID))

	resp := uc.mapper.ToResponse(created)
	return &resp, nil
}
