// Package common — errors.go определяет пользовательские ошибки,
// которые используются во всех модулях банка.
// Эти ошибки позволяют вызывающему коду (боту, админке, API)
// различать типы проблем и показывать понятные сообщения.
//
// Все ошибки бизнес-правил восстановимы: операция отклоняется целиком,
// состояние не меняется. Ошибки хранилища (pgx) пробрасываются отдельно
// через fmt.Errorf("...: %w", err) и под эти ошибки не маскируются.
package common

import (
	"errors"
	"fmt"
)

// Ошибки счетов и переводов
var (
	// ErrAccountNotFound — счёт не найден в базе
	ErrAccountNotFound = errors.New("счёт не найден")
	// ErrAccountBlocked — счёт заблокирован (причина в BlockedError)
	ErrAccountBlocked = errors.New("счёт заблокирован")
	// ErrInvalidAmount — некорректная сумма (ноль или отрицательная)
	ErrInvalidAmount = errors.New("сумма должна быть положительной")
	// ErrInsufficientFunds — недостаточно средств на счёте
	ErrInsufficientFunds = errors.New("недостаточно средств на счёте")
	// ErrSelfTransfer — попытка перевести средства самому себе
	ErrSelfTransfer = errors.New("нельзя отправить перевод самому себе")
	// ErrTransactionNotFound — транзакция не найдена
	ErrTransactionNotFound = errors.New("транзакция не найдена")
)

// Ошибки промокодов
var (
	// ErrPromoInvalid — промокод не существует ИЛИ уже использован.
	// Снаружи эти два случая намеренно неразличимы.
	ErrPromoInvalid = errors.New("промокод недействителен или уже использован")
	// ErrPromoLength — длина промокода вне допустимого диапазона
	ErrPromoLength = errors.New("недопустимая длина промокода")
)

// Ошибки игр
var (
	// ErrAttemptsExhausted — попытки на сегодня закончились
	ErrAttemptsExhausted = errors.New("попытки на сегодня закончились, возвращайтесь завтра")
	// ErrInvalidGuess — число вне диапазона игры
	ErrInvalidGuess = errors.New("число должно быть от 1 до 10")
)

// Ошибки админки
var (
	// ErrNotAdmin — пользователь не является администратором
	ErrNotAdmin = errors.New("у вас нет прав администратора")
	// ErrWrongPassword — неверный пароль оператора
	ErrWrongPassword = errors.New("неверный пароль")
	// ErrNothingToRemove — на счёте ноль, списывать нечего
	ErrNothingToRemove = errors.New("на счёте нет средств для списания")
)

// BlockedError — ошибка «счёт заблокирован» с сохранённой причиной.
// errors.Is(err, ErrAccountBlocked) для неё возвращает true.
type BlockedError struct {
	Reason string
}

func (e *BlockedError) Error() string {
	if e.Reason == "" {
		return ErrAccountBlocked.Error()
	}
	return fmt.Sprintf("счёт заблокирован: %s", e.Reason)
}

func (e *BlockedError) Unwrap() error {
	return ErrAccountBlocked
}

// NewBlockedError создаёт BlockedError из причины блокировки (возможно, nil).
func NewBlockedError(reason *string) error {
	if reason == nil {
		return &BlockedError{}
	}
	return &BlockedError{Reason: *reason}
}
