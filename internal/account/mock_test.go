package account

import (
	"context"
	"time"

	"github.com/hitoshi/tasktimer/internal/model"
)

// --- モック ---

// mockHasher は未設定の関数フィールドに対して固定値を返す。
type mockHasher struct {
	hashFn   func(ctx context.Context, plaintext string) (string, error)
	verifyFn func(ctx context.Context, plaintext, hash string) (bool, error)

	hashCalls    int
	verifyHashes []string
}

func (m *mockHasher) HashPassword(ctx context.Context, plaintext string) (string, error) {
	m.hashCalls++
	if m.hashFn == nil {
		return "hash-of-" + plaintext, nil
	}
	return m.hashFn(ctx, plaintext)
}
func (m *mockHasher) VerifyPassword(ctx context.Context, plaintext, hash string) (bool, error) {
	m.verifyHashes = append(m.verifyHashes, hash)
	if m.verifyFn == nil {
		return false, nil
	}
	return m.verifyFn(ctx, plaintext, hash)
}

type mockAccountRepo struct {
	createOneFn   func(ctx context.Context, a *model.Account) (*model.Account, error)
	findOneFn     func(ctx context.Context, id string) (*model.Account, error)
	updateOneFn   func(ctx context.Context, id string, a *model.Account) (*model.Account, error)
	deleteOneFn   func(ctx context.Context, id string) error
	findByIdentFn func(ctx context.Context, email, username string) (*model.Account, error)

	createCalls int
	updateCalls int
}

func (m *mockAccountRepo) CreateOne(ctx context.Context, a *model.Account) (*model.Account, error) {
	m.createCalls++
	return m.createOneFn(ctx, a)
}
func (m *mockAccountRepo) FindOne(ctx context.Context, id string) (*model.Account, error) {
	return m.findOneFn(ctx, id)
}
func (m *mockAccountRepo) UpdateOne(ctx context.Context, id string, a *model.Account) (*model.Account, error) {
	m.updateCalls++
	return m.updateOneFn(ctx, id, a)
}
func (m *mockAccountRepo) DeleteOne(ctx context.Context, id string) error {
	return m.deleteOneFn(ctx, id)
}
func (m *mockAccountRepo) FindByEmailOrUsername(ctx context.Context, email, username string) (*model.Account, error) {
	return m.findByIdentFn(ctx, email, username)
}

type mockTokenIssuer struct {
	issueFn func(accountID string) (string, time.Time, error)
}

func (m *mockTokenIssuer) Issue(accountID string) (string, time.Time, error) {
	return m.issueFn(accountID)
}

// spyMapper はSignUpMapperに委譲しつつ受け取ったレコードを記録する。
type spyMapper struct {
	SignUpMapper
	records []SignUpRecord
}

func (s *spyMapper) ToEntity(r SignUpRecord) *model.Account {
	s.records = append(s.records, r)
	return s.SignUpMapper.ToEntity(r)
}

func ptr[T any](v T) *T { return &v }
