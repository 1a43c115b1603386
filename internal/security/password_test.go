package security

import (
	"context"
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestNewPasswordHasher(t *testing.T) {
	tests := []struct {
		name    string
		kind    string
		wantErr bool
	}{
		{"bcrypt", HasherBcrypt, false},
		{"空文字はbcrypt", "", false},
		{"argon2id", HasherArgon2id, false},
		{"未対応", "md5", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := NewPasswordHasher(tt.kind, bcrypt.MinCost)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && h == nil {
				t.Fatal("expected non-nil hasher")
			}
		})
	}
}

// 両実装に共通する振る舞いを検証する。
func TestPasswordHashers_RoundTrip(t *testing.T) {
	fastArgon := Argon2idParams{Memory: 1024, Time: 1, Parallelism: 1, SaltLen: 16, KeyLen: 32}
	hashers := map[string]PasswordHasher{
		"bcrypt":   NewBcryptHasher(bcrypt.MinCost),
		"argon2id": NewArgon2idHasher(fastArgon),
	}

	ctx := context.Background()
	for name, h := range hashers {
		t.Run(name, func(t *testing.T) {
			hash, err := h.HashPassword(ctx, "password123")
			if err != nil {
				t.Fatalf("HashPassword: %v", err)
			}
			if hash == "password123" {
				t.Fatal("hash must differ from plaintext")
			}

			ok, err := h.VerifyPassword(ctx, "password123", hash)
			if err != nil || !ok {
				t.Errorf("VerifyPassword(correct) = %v, %v; want true, nil", ok, err)
			}

			ok, err = h.VerifyPassword(ctx, "wrong-password", hash)
			if err != nil || ok {
				t.Errorf("VerifyPassword(wrong) = %v, %v; want false, nil", ok, err)
			}

			again, err := h.HashPassword(ctx, "password123")
			if err != nil {
				t.Fatalf("HashPassword: %v", err)
			}
			if again == hash {
				t.Error("hashes of the same password should be salted differently")
			}
		})
	}
}

func TestPasswordHashers_EmptyPassword(t *testing.T) {
	for _, h := range []PasswordHasher{NewBcryptHasher(bcrypt.MinCost), NewArgon2idHasher(DefaultArgon2idParams)} {
		if _, err := h.HashPassword(context.Background(), ""); !errors.Is(err, ErrEmptyPassword) {
			t.Errorf("%T: err = %v, want ErrEmptyPassword", h, err)
		}
	}
}

func TestPasswordHashers_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewBcryptHasher(bcrypt.MinCost).HashPassword(ctx, "pw"); !errors.Is(err, context.Canceled) {
		t.Errorf("bcrypt err = %v, want context.Canceled", err)
	}
	if _, err := NewArgon2idHasher(DefaultArgon2idParams).HashPassword(ctx, "pw"); !errors.Is(err, context.Canceled) {
		t.Errorf("argon2id err = %v, want context.Canceled", err)
	}
}

func TestNewBcryptHasher_OutOfRangeCost(t *testing.T) {
	h := NewBcryptHasher(99)
	if h.cost != bcrypt.DefaultCost {
		t.Errorf("cost = %d, want %d", h.cost, bcrypt.DefaultCost)
	}
}

func TestBcryptHasher_VerifyMalformedHash(t *testing.T) {
	_, err := NewBcryptHasher(bcrypt.MinCost).VerifyPassword(context.Background(), "pw", "not-a-hash")
	if err == nil {
		t.Fatal("expected error for malformed hash")
	}
}

func TestArgon2idHasher_HashFormat(t *testing.T) {
	h := NewArgon2idHasher(Argon2idParams{Memory: 1024, Time: 1, Parallelism: 2, SaltLen: 16, KeyLen: 32})

	hash, err := h.HashPassword(context.Background(), "pw")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$m=1024,t=1,p=2$") {
		t.Errorf("unexpected hash format: %s", hash)
	}
}

func TestArgon2idHasher_VerifyMalformedHash(t *testing.T) {
	h := NewArgon2idHasher(DefaultArgon2idParams)

	for _, hash := range []string{
		"",
		"$2a$10$abcdefghijklmnopqrstuv",
		"$argon2id$v=18$m=1024,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=x,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=1024,t=1,p=1$!!$a2V5",
		"$argon2id$v=19$m=1024,t=0,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=1024,t=1,p=0$c2FsdA$a2V5",
		"$argon2id$v=19$m=0,t=1,p=1$c2FsdA$a2V5",
	} {
		if _, err := h.VerifyPassword(context.Background(), "pw", hash); !errors.Is(err, ErrMalformedHash) {
			t.Errorf("VerifyPassword(%q) err = %v, want ErrMalformedHash", hash, err)
		}
	}
}
