package account

import (
	"testing"
	"time"

	"github.com/hitoshi/tasktimer/internal/model"
)

// TestSignUpMapper_RoundTrip は両表現に共通するフィールドが一致することを検証する。
func TestSignUpMapper_RoundTrip(t *testing.T) {
	m := SignUpMapper{}
	e := &model.Account{
		ID:        "id-1",
		Email:     "test@test.com",
		Username:  "testuser",
		Password:  "hash",
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		UpdatedAt: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
	}

	resp := m.ToResponse(e)
	back := m.ToEntity(SignUpRecord{Email: resp.Email, Username: resp.Username, Password: resp.Password})

	if back.Email != e.Email || back.Username != e.Username || back.Password != e.Password {
		t.Errorf("round trip mismatch: %+v vs %+v", back, e)
	}
	if back.ID != "" {
		t.Error("ToEntity must leave ID for the persistence layer")
	}
	if resp.ID != e.ID || !resp.CreatedAt.Equal(e.CreatedAt) {
		t.Errorf("response = %+v", resp)
	}
}

// TestAccountMapper_ToResponse はパスワードが公開プロフィールに含まれないことを検証する。
func TestAccountMapper_ToResponse(t *testing.T) {
	e := &model.Account{ID: "id-1", Email: "a@b.c", Username: "a", Password: "secret-hash"}

	resp := AccountMapper{}.ToResponse(e)

	if resp.ID != "id-1" || resp.Email != "a@b.c" || resp.Username != "a" {
		t.Errorf("response = %+v", resp)
	}
}
