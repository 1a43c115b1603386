package account

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/hitoshi/tasktimer/internal/model"
	"github.com/hitoshi/tasktimer/internal/repository"
	"github.com/hitoshi/tasktimer/internal/security"
)

// AccountLookup はサインイン時の識別子検索。
type AccountLookup interface {
	FindByEmailOrUsername(ctx context.Context, email, username string) (*model.Account, error)
}

// TokenIssuer はアクセストークンを発行する。
type TokenIssuer interface {
	Issue(accountID string) (string, time.Time, error)
}

// dummyPassword は未登録の識別子に対する照合で使うダミーハッシュの平文。
const dummyPassword = "tasktimer-sign-in-dummy-password"

// SignInUseCase はemailまたはusernameとパスワードで認証し、アクセストークンを発行する。
type SignInUseCase struct {
	lookup AccountLookup
	hasher security.PasswordHasher
	tokens TokenIssuer
	mapper AccountMapper

	dummyOnce sync.Once
	dummyHash string
}

// NewSignInUseCase はSignInUseCaseを生成する。
func NewSignInUseCase(lookup AccountLookup, hasher security.PasswordHasher, tokens TokenIssuer) *SignInUseCase {
	return &SignInUseCase{lookup: lookup, hasher: hasher, tokens: tokens}
}

// Execute は認証に成功した場合にトークンを返す。
// アカウントが存在しない場合とパスワード不一致は区別せずUnauthorizedを返す。
func (uc *SignInUseCase) Execute(ctx context.Context, req SignInRequest) (*SignInResponse, error) {
	email, username := splitIdentifier(req.Identifier)

	acc, err := uc.lookup.FindByEmailOrUsername(ctx, email, username)
	if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidLookup) {
		// 登録済みの場合と応答時間を揃える
		uc.verifyDummy(ctx, req.Password)
		return nil, model.NewUnauthorizedError(msgInvalidCredentials)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to find account for sign-in", slog.String("error", err.Error()))
		return nil, repositoryError("find").WithCause(err)
	}

	ok, err := uc.hasher.VerifyPassword(ctx, req.Password, acc.Password)
	if err != nil {
		slog.ErrorContext(ctx, "password verification failed",
			slog.String("account_id", acc.ID),
			slog.String("error", err.Error()),
		)
		return nil, model.NewInternalError(category, msgVerifyFailed).WithCause(err)
	}
	if !ok {
		return nil, model.NewUnauthorizedError(msgInvalidCredentials)
	}

	token, expiresAt, err := uc.tokens.Issue(acc.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to issue token", slog.String("error", err.Error()))
		return nil, model.NewInternalError(category, msgTokenFailed).WithCause(err)
	}

	return &SignInResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		Account:     uc.mapper.ToResponse(acc),
	}, nil
}

// verifyDummy はダミーハッシュに対してパスワード照合を行い、結果を捨てる。
// ダミーハッシュは設定中のハッシュ方式で初回に1度だけ生成する。
func (uc *SignInUseCase) verifyDummy(ctx context.Context, password string) {
	uc.dummyOnce.Do(func() {
		hash, err := uc.hasher.HashPassword(context.WithoutCancel(ctx), dummyPassword)
		if err != nil {
			slog.WarnContext(ctx, "failed to prepare dummy password hash", slog.String("error", err.Error()))
			return
		}
		uc.dummyHash = hash
	})
	if uc.dummyHash == "" {
		return
	}
	_, _ = uc.hasher.VerifyPassword(ctx, password, uc.dummyHash)
}

// splitIdentifier は@を含む識別子をemail、それ以外をusernameとして扱う。
func splitIdentifier(identifier string) (email, username string) {
	identifier = strings.TrimSpace(identifier)
	if strings.Contains(identifier, "@") {
		return identifier, ""
	}
	return "", identifier
}
