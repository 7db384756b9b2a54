package promo

import (
	"errors"
	"strings"
	"testing"

	"github.com/Cisql/FKBBank/internal/common"
)

func TestGenerateCode(t *testing.T) {
	for _, length := range []int{4, 8, 16} {
		code, err := generateCode(length)
		if err != nil {
			t.Fatalf("generateCode(%d): %v", length, err)
		}
		if len(code) != length {
			t.Fatalf("len(code) = %d, want %d", len(code), length)
		}
		for _, r := range code {
			if !strings.ContainsRune(codeAlphabet, r) {
				t.Fatalf("символ %q вне алфавита в коде %q", r, code)
			}
		}
	}
}

func TestGenerateCodeUnique(t *testing.T) {
	// Пара кодов длины 8 практически не может совпасть;
	// совпадение почти наверняка значит, что генератор сломан.
	a, _ := generateCode(8)
	b, _ := generateCode(8)
	if a == b {
		t.Fatalf("два подряд сгенерированных кода совпали: %q", a)
	}
}

// При достаточном числе розыгрышей каждый символ алфавита должен
// встретиться: выборка равномерна по всему алфавиту, а не по его началу.
func TestGenerateCodeCoversAlphabet(t *testing.T) {
	seen := make(map[rune]bool, len(codeAlphabet))
	for i := 0; i < 200; i++ {
		code, err := generateCode(16)
		if err != nil {
			t.Fatalf("generateCode: %v", err)
		}
		for _, r := range code {
			seen[r] = true
		}
	}
	for _, r := range codeAlphabet {
		if !seen[r] {
			t.Errorf("символ %q ни разу не выпал за 3200 розыгрышей", r)
		}
	}
}

func TestCodeAlphabetUnambiguous(t *testing.T) {
	for _, banned := range "O0I1L" {
		if strings.ContainsRune(codeAlphabet, banned) {
			t.Errorf("алфавит содержит визуально неоднозначный символ %q", banned)
		}
	}
}

func TestValidateIssue(t *testing.T) {
	bounds := Bounds{MinLength: 4, MaxLength: 16}

	tests := []struct {
		name    string
		amount  int64
		length  int
		wantErr error
	}{
		{name: "ok", amount: 500, length: 8},
		{name: "минимальная длина", amount: 1, length: 4},
		{name: "максимальная длина", amount: 1, length: 16},
		{name: "нулевая сумма", amount: 0, length: 8, wantErr: common.ErrInvalidAmount},
		{name: "отрицательная сумма", amount: -10, length: 8, wantErr: common.ErrInvalidAmount},
		{name: "слишком короткий", amount: 500, length: 3, wantErr: common.ErrPromoLength},
		{name: "слишком длинный", amount: 500, length: 17, wantErr: common.ErrPromoLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateIssue(tt.amount, tt.length, bounds)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("validateIssue() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
