// Package promo — codegen.go генерирует случайные коды.
package promo

import (
	"crypto/rand"
	"fmt"
)

// codeAlphabet — заглавные буквы и цифры без визуально похожих символов
// (O/0, I/1/L): код диктуют голосом и перепечатывают руками.
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// generateCode возвращает случайный код заданной длины из codeAlphabet.
// Источник случайности криптографический: коды — это деньги на предъявителя,
// угадываемость недопустима. Байты выше наибольшего кратного длины алфавита
// отбрасываются, чтобы остаток от деления не перекашивал распределение
// в пользу первых символов.
func generateCode(length int) (string, error) {
	limit := byte(256 - 256%len(codeAlphabet))
	out := make([]byte, 0, length)
	buf := make([]byte, length)
	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("ошибка генерации кода: %w", err)
		}
		for _, b := range buf {
			if b >= limit {
				continue
			}
			out = append(out, codeAlphabet[int(b)%len(codeAlphabet)])
			if len(out) == length {
				break
			}
		}
	}
	return string(out), nil
}
