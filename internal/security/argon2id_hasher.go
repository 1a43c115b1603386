package security

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2idParams はargon2idのコストパラメータ。
type Argon2idParams struct {
	Memory      uint32 // KiB
	Time        uint32
	Parallelism uint8
	SaltLen     uint32
	KeyLen      uint32
}

// DefaultArgon2idParams は既定のパラメータ。
var DefaultArgon2idParams = Argon2idParams{Memory: 64 * 1024, Time: 3, Parallelism: 1, SaltLen: 16, KeyLen: 32}

// ErrMalformedHash はPHC文字列として解釈できないハッシュを示す。
var ErrMalformedHash = errors.New("malformed argon2id hash")

// Argon2idHasher はargon2idによるPasswordHasherの実装。
// ハッシュは $argon2id$v=19$m=...,t=...,p=...$<salt>$<key> 形式で保存する。
type Argon2idHasher struct {
	params Argon2idParams
}

// NewArgon2idHasher はArgon2idHasherを生成する。
func NewArgon2idHasher(p Argon2idParams) *Argon2idHasher {
	return &Argon2idHasher{params: p}
}

// HashPassword はargon2idのPHC文字列を生成する。
func (h *Argon2idHasher) HashPassword(ctx context.Context, plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyPassword
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	salt := make([]byte, h.params.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(plaintext), salt, h.params.Time, h.params.Memory, h.params.Parallelism, h.params.KeyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, h.params.Memory, h.params.Time, h.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// VerifyPassword はPHC文字列に埋め込まれたパラメータで再計算し、定数時間で比較する。
func (h *Argon2idHasher) VerifyPassword(ctx context.Context, plaintext, hash string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	p, salt, stored, err := decodeArgon2idHash(hash)
	if err != nil {
		return false, err
	}

	key := argon2.IDKey([]byte(plaintext), salt, p.Time, p.Memory, p.Parallelism, uint32(len(stored)))
	return subtle.ConstantTimeCompare(key, stored) == 1, nil
}

func decodeArgon2idHash(hash string) (Argon2idParams, []byte, []byte, error) {
	// "", "argon2id", "v=19", "m=...,t=...,p=...", salt, key
	parts := strings.Split(hash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return Argon2idParams{}, nil, nil, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return Argon2idParams{}, nil, nil, ErrMalformedHash
	}

	var p Argon2idParams
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Time, &p.Parallelism); err != nil {
		return Argon2idParams{}, nil, nil, ErrMalformedHash
	}
	// argon2.IDKeyはt=0またはp=0でpanicする
	if p.Memory == 0 || p.Time == 0 || p.Parallelism == 0 {
		return Argon2idParams{}, nil, nil, ErrMalformedHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return Argon2idParams{}, nil, nil, ErrMalformedHash
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return Argon2idParams{}, nil, nil, ErrMalformedHash
	}

	return p, salt, key, nil
}

// compile-time interface check
var _ PasswordHasher = (*Argon2idHasher)(nil)
