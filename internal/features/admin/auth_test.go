package admin

import (
	"encoding/base64"
	"errors"
	"fmt"
	"testing"

	"golang.org/x/crypto/argon2"

	"github.com/Cisql/FKBBank/internal/common"
)

// encodeArgon2id собирает хеш в том же формате, что scripts/generate_hash.go.
func encodeArgon2id(password string) string {
	salt := []byte("0123456789abcdef")
	var (
		memory      uint32 = 65536
		iterations  uint32 = 3
		parallelism uint8  = 2
	)
	hash := argon2.IDKey([]byte(password), salt, iterations, memory, parallelism, 32)
	return fmt.Sprintf("$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		memory, iterations, parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash))
}

func TestVerifyArgon2id(t *testing.T) {
	hash := encodeArgon2id("правильный-пароль")

	if !verifyArgon2id("правильный-пароль", hash) {
		t.Error("верный пароль не прошёл проверку")
	}
	if verifyArgon2id("неправильный", hash) {
		t.Error("неверный пароль прошёл проверку")
	}
	if verifyArgon2id("что угодно", "не-хеш-вовсе") {
		t.Error("мусор вместо хеша прошёл проверку")
	}
	if verifyArgon2id("что угодно", "") {
		t.Error("пустой хеш прошёл проверку")
	}
}

func TestAuthenticate(t *testing.T) {
	auth := NewAuthenticator([]int64{100, 200}, encodeArgon2id("secret"))

	if !auth.IsAdmin(100) || !auth.IsAdmin(200) {
		t.Error("администратор из списка не опознан")
	}
	if auth.IsAdmin(300) {
		t.Error("посторонний опознан администратором")
	}

	if err := auth.Authenticate(100, "secret"); err != nil {
		t.Errorf("Authenticate(админ, верный пароль) = %v", err)
	}
	if err := auth.Authenticate(100, "wrong"); !errors.Is(err, common.ErrWrongPassword) {
		t.Errorf("Authenticate(админ, неверный пароль) = %v, want ErrWrongPassword", err)
	}
	// Посторонний получает отказ до проверки пароля
	if err := auth.Authenticate(300, "secret"); !errors.Is(err, common.ErrNotAdmin) {
		t.Errorf("Authenticate(посторонний) = %v, want ErrNotAdmin", err)
	}
}

func TestRemovalAmount(t *testing.T) {
	tests := []struct {
		name      string
		balance   int64
		requested int64
		want      int64
	}{
		{"запрошено меньше баланса", 500, 100, 100},
		{"запрошено ровно баланс", 100, 100, 100},
		{"запрошено больше баланса", 100, 250, 100},
		{"пустой счёт", 0, 250, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := removalAmount(tt.balance, tt.requested); got != tt.want {
				t.Errorf("removalAmount(%d, %d) = %d, want %d", tt.balance, tt.requested, got, tt.want)
			}
		})
	}
}
