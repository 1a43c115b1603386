package account

import (
	"context"
	"errors"
	"testing"

	"github.com/hitoshi/tasktimer/internal/model"
	"github.com/hitoshi/tasktimer/internal/repository"
)

func TestFindAccount(t *testing.T) {
	t.Run("存在する場合はパスワードなしで返す", func(t *testing.T) {
		repo := &mockAccountRepo{
			findOneFn: func(ctx context.Context, id string) (*model.Account, error) {
				return storedAccount(), nil
			},
		}
		resp, err := NewFindAccountUseCase(repo).Execute(context.Background(), "acc-1")
		if err != nil {
			t.Fatalf("Execute returned error: %v", err)
		}
		if resp.ID != "acc-1" || resp.Username != "testuser" {
			t.Errorf("response = %+v", resp)
		}
	})

	t.Run("存在しない場合はNotFound", func(t *testing.T) {
		repo := &mockAccountRepo{
			findOneFn: func(ctx context.Context, id string) (*model.Account, error) {
				return nil, repository.ErrNotFound
			},
		}
		_, err := NewFindAccountUseCase(repo).Execute(context.Background(), "missing")
		if !model.IsNotFound(err) {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("リポジトリ障害はInternal", func(t *testing.T) {
		repo := &mockAccountRepo{
			findOneFn: func(ctx context.Context, id string) (*model.Account, error) {
				return nil, errors.New("timeout")
			},
		}
		_, err := NewFindAccountUseCase(repo).Execute(context.Background(), "acc-1")
		if !model.IsInternal(err) {
			t.Fatalf("expected internal, got %v", err)
		}
	})
}

func TestUpdateAccount_MergesAndRehashes(t *testing.T) {
	var saved *model.Account
	repo := &mockAccountRepo{
		findOneFn: func(ctx context.Context, id string) (*model.Account, error) {
			return storedAccount(), nil
		},
		updateOneFn: func(ctx context.Context, id string, a *model.Account) (*model.Account, error) {
			saved = a
			return a, nil
		},
	}
	hasher := fixedHasher("new-hash")

	resp, err := NewUpdateAccountUseCase(repo, hasher).Execute(context.Background(), "acc-1", UpdateAccountRequest{
		Username: ptr("renamed"),
		Password: ptr("new-password"),
	})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	if saved.Email != "test@test.com" {
		t.Errorf("email should be unchanged, got %q", saved.Email)
	}
	if saved.Username != "renamed" {
		t.Errorf("username = %q, want renamed", saved.Username)
	}
	if saved.Password != "new-hash" {
		t.Errorf("password = %q, want re-hashed value", saved.Password)
	}
	if resp.Username != "renamed" {
		t.Errorf("response = %+v", resp)
	}
}

func TestUpdateAccount_KeepsPasswordWhenOmitted(t *testing.T) {
	hasher := &mockHasher{
		hashFn: func(ctx context.Context, plaintext string) (string, error) {
			t.Error("hasher must not be called without a new password")
			return "", nil
		},
	}
	repo := &mockAccountRepo{
		findOneFn: func(ctx context.Context, id string) (*model.Account, error) {
			return storedAccount(), nil
		},
		updateOneFn: func(ctx context.Context, id string, a *model.Account) (*model.Account, error) {
			if a.Password != "stored-hash" {
				t.Errorf("password = %q, want stored-hash", a.Password)
			}
			return a, nil
		},
	}

	if _, err := NewUpdateAccountUseCase(repo, hasher).Execute(context.Background(), "acc-1", UpdateAccountRequest{Email: ptr("new@test.com")}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
}

func TestUpdateAccount_Errors(t *testing.T) {
	tests := []struct {
		name        string
		findErr     error
		hashErr     error
		updateErr   error
		wantCode    string
		wantMessage string
	}{
		{name: "対象なし", findErr: repository.ErrNotFound, wantCode: model.ErrCodeNotFound, wantMessage: "Account not found"},
		{name: "ハッシュ失敗", hashErr: errors.New("boom"), wantCode: model.ErrCodeInternal, wantMessage: "Something went wrong trying to hash password"},
		{
			name:        "一意制約違反",
			updateErr:   &repository.ConstraintViolationError{Kind: repository.ViolationUnique, Code: "23505"},
			wantCode:    model.ErrCodeConflict,
			wantMessage: "Email or username already exists",
		},
		{name: "更新中に削除された", updateErr: repository.ErrNotFound, wantCode: model.ErrCodeNotFound, wantMessage: "Account not found"},
		{name: "その他", updateErr: errors.New("db"), wantCode: model.ErrCodeInternal, wantMessage: "Failed to update account: ACCOUNT_REPOSITORY_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockAccountRepo{
				findOneFn: func(ctx context.Context, id string) (*model.Account, error) {
					if tt.findErr != nil {
						return nil, tt.findErr
					}
					return storedAccount(), nil
				},
				updateOneFn: func(ctx context.Context, id string, a *model.Account) (*model.Account, error) {
					return nil, tt.updateErr
				},
			}
			hasher := &mockHasher{
				hashFn: func(ctx context.Context, plaintext string) (string, error) {
					return "h", tt.hashErr
				},
			}

			_, err := NewUpdateAccountUseCase(repo, hasher).Execute(context.Background(), "acc-1", UpdateAccountRequest{Password: ptr("pw")})

			var apiErr *model.APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *model.APIError, got %v", err)
			}
			if apiErr.Code != tt.wantCode || apiErr.Message != tt.wantMessage {
				t.Errorf("got (%q, %q), want (%q, %q)", apiErr.Code, apiErr.Message, tt.wantCode, tt.wantMessage)
			}
			if tt.hashErr != nil && repo.updateCalls != 0 {
				t.Error("UpdateOne must not be called when hashing fails")
			}
		})
	}
}

func TestDeleteAccount(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{name: "成功", err: nil},
		{name: "存在しない", err: repository.ErrNotFound, wantCode: model.ErrCodeNotFound},
		{name: "障害", err: errors.New("db"), wantCode: model.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockAccountRepo{
				deleteOneFn: func(ctx context.Context, id string) error { return tt.err },
			}

			resp, err := NewDeleteAccountUseCase(repo).Execute(context.Background(), "acc-1")

			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("Execute returned error: %v", err)
				}
				if resp.ID != "acc-1" || !resp.Deleted {
					t.Errorf("response = %+v", resp)
				}
				return
			}
			var apiErr *model.APIError
			if !errors.As(err, &apiErr) || apiErr.Code != tt.wantCode {
				t.Errorf("err = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}
