package account

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hitoshi/tasktimer/internal/model"
	"github.com/hitoshi/tasktimer/internal/repository"
	"github.com/hitoshi/tasktimer/internal/security"
)

// FindAccountUseCase はアカウントの公開プロフィールを取得する。
type FindAccountUseCase struct {
	repo   repository.FindOner[model.Account]
	mapper AccountMapper
}

// NewFindAccountUseCase はFindAccountUseCaseを生成する。
func NewFindAccountUseCase(repo repository.FindOner[model.Account]) *FindAccountUseCase {
	return &FindAccountUseCase{repo: repo}
}

// Execute は指定IDのアカウントを返す。
func (uc *FindAccountUseCase) Execute(ctx context.Context, id string) (*AccountResponse, error) {
	acc, err := findAccount(ctx, uc.repo, id)
	if err != nil {
		return nil, err
	}
	resp := uc.mapper.ToResponse(acc)
	return &resp, nil
}

type accountFindUpdater interface {
	repository.FindOner[model.Account]
	repository.Updater[model.Account]
}

// UpdateAccountUseCase はemail・username・passwordを部分更新する。
type UpdateAccountUseCase struct {
	repo   accountFindUpdater
	hasher security.PasswordHasher
	mapper AccountMapper
}

// NewUpdateAccountUseCase はUpdateAccountUseCaseを生成する。
func NewUpdateAccountUseCase(repo accountFindUpdater, hasher security.PasswordHasher) *UpdateAccountUseCase {
	return &UpdateAccountUseCase{repo: repo, hasher: hasher}
}

// Execute は既存値に指定フィールドをマージして保存する。パスワードは再ハッシュする。
func (uc *UpdateAccountUseCase) Execute(ctx context.Context, id string, req UpdateAccountRequest) (*AccountResponse, error) {
	acc, err := findAccount(ctx, uc.repo, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		acc.Email = *req.Email
	}
	if req.Username != nil {
		acc.Username = *req.Username
	}
	if req.Password != nil {
		hashed, err := uc.hasher.HashPassword(ctx, *req.Password)
		if err != nil {
			slog.ErrorContext(ctx, "password hashing failed", slog.String("error", err.Error()))
			return nil, model.NewInternalError(category, msgHashFailed).WithCause(err)
		}
		acc.Password = hashed
	}

	updated, err := uc.repo.UpdateOne(ctx, id, acc)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, model.NewNotFoundError(category, msgAccountNotFound)
		case repository.IsUniqueViolation(err):
			return nil, model.NewConflictError(category, msgEmailOrNameExists).WithCause(err)
		}
		slog.ErrorContext(ctx, "failed to update account",
			slog.String("account_id", id),
			slog.String("error", err.Error()),
		)
		return nil, repositoryError("update").WithCause(err)
	}

	resp := uc.mapper.ToResponse(updated)
	return &resp, nil
}

// DeleteAccountUseCase はアカウントと所有データを削除する。
type DeleteAccountUseCase struct {
	repo repository.Deleter
}

// NewDeleteAccountUseCase はDeleteAccountUseCaseを生成する。
func NewDeleteAccountUseCase(repo repository.Deleter) *DeleteAccountUseCase {
	return &DeleteAccountUseCase{repo: repo}
}

// Execute は指定IDのアカウントを削除する。存在しない場合はNotFoundを返す。
func (uc *DeleteAccountUseCase) Execute(ctx context.Context, id string) (*DeleteAccountResponse, error) {
	if err := uc.repo.DeleteOne(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, model.NewNotFoundError(category, msgAccountNotFound)
		}
		slog.ErrorContext(ctx, "failed to delete account",
			slog.String("account_id", id),
			slog.String("error", err.Error()),
		)
		return nil, repositoryError("delete").WithCause(err)
	}

	slog.InfoContext(ctx, "account deleted", slog.String("account_id", id))
	return &DeleteAccountResponse{ID: id, Deleted: true}, nil
}

func findAccount(ctx context.Context, repo repository.FindOner[model.Account], id string) (*model.Account, error) {
	acc, err := repo.FindOne(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, model.NewNotFoundError(category, msgAccountNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to find account",
			slog.String("account_id", id),
			slog.String("error", err.Error()),
		)
		return nil, repositoryError("find").WithCause(err)
	}
	return acc, nil
}
