// Package admin — auth.go: аутентификация операторов.
// Право администратора — явный список идентификаторов из конфигурации,
// никогда не выводится из формы идентификатора. Пароль проверяется
// по хешу Argon2id.
package admin

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/argon2"

	"github.com/Cisql/FKBBank/internal/common"
)

// Authenticator проверяет право доступа к административным операциям.
type Authenticator struct {
	adminIDs     map[int64]struct{}
	passwordHash string
}

// NewAuthenticator создаёт аутентификатор из списка идентификаторов
// администраторов и Argon2id-хеша пароля (scripts/generate_hash.go).
func NewAuthenticator(adminIDs []int64, passwordHash string) *Authenticator {
	ids := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		ids[id] = struct{}{}
	}
	return &Authenticator{adminIDs: ids, passwordHash: passwordHash}
}

// IsAdmin сообщает, входит ли идентификатор в список администраторов.
func (a *Authenticator) IsAdmin(userID int64) bool {
	_, ok := a.adminIDs[userID]
	return ok
}

// Authenticate проверяет идентификатор и пароль оператора.
func (a *Authenticator) Authenticate(userID int64, password string) error {
	if !a.IsAdmin(userID) {
		return common.ErrNotAdmin
	}
	if !verifyArgon2id(password, a.passwordHash) {
		log.WithField("user_id", userID).Warn("Неудачная попытка входа в админку")
		return common.ErrWrongPassword
	}
	return nil
}

// verifyArgon2id проверяет пароль по хешу Argon2id.
// Формат хеша: $argon2id$v=19$m=65536,t=3,p=2$<salt_base64>$<hash_base64>
func verifyArgon2id(password, encodedHash string) bool {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		log.Error("Некорректный формат хеша Argon2id")
		return false
	}

	var memory uint32
	var iterations uint32
	var parallelism uint8
	_, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &parallelism)
	if err != nil {
		log.WithError(err).Error("Ошибка парсинга параметров Argon2id")
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		log.WithError(err).Error("Ошибка декодирования соли")
		return false
	}

	expectedHash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		log.WithError(err).Error("Ошибка декодирования хеша")
		return false
	}

	computedHash := argon2.IDKey([]byte(password), salt, iterations, memory, parallelism, uint32(len(expectedHash)))

	// Сравнение в постоянном времени (защита от timing attack)
	return subtle.ConstantTimeCompare(computedHash, expectedHash) == 1
}
