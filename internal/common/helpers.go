// Package common содержит общие утилиты, используемые во всём проекте.
// Сюда входят: русская плюрализация валюты, форматирование сумм и дат.
package common

import (
	"fmt"
	"math"
	"time"
)

// PluralizeCoins возвращает правильную форму слова «коин» для числа n.
//
// Правила русского языка:
//   - n%10==1 И n%100!=11 → "коин" (1, 21, 31, 101, ...)
//   - n%10 в [2,4] И n%100 НЕ в [12,14] → "коина" (2, 3, 4, 22, 23, ...)
//   - Остальные случаи → "коинов" (0, 5-20, 25-30, 100, ...)
func PluralizeCoins(n int64) string {
	// Берём абсолютное значение для отрицательных чисел
	absN := int64(math.Abs(float64(n)))
	lastDigit := absN % 10
	lastTwoDigits := absN % 100

	if lastDigit == 1 && lastTwoDigits != 11 {
		return "коин"
	}
	if lastDigit >= 2 && lastDigit <= 4 && (lastTwoDigits < 12 || lastTwoDigits > 14) {
		return "коина"
	}
	return "коинов"
}

// FormatBalance форматирует сумму в читабельную строку.
// Пример: FormatBalance(150) → "150 коинов"
func FormatBalance(balance int64) string {
	return fmt.Sprintf("%d %s", balance, PluralizeCoins(balance))
}

// FormatDateTime форматирует время в формат "02.01.2006 15:04"
// в часовом поясе банка. Используется для отображения дат транзакций.
func FormatDateTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("02.01.2006 15:04")
}

// DateIn возвращает только дату (полночь) момента t в зоне loc.
// Это каноническое «сегодня» для дневных лимитов игр.
func DateIn(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}
