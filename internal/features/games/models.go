// Package games реализует две поощрительные мини-игры: «Угадай число»
// и «Кубик». Игровая логика чистая, случайность подаётся снаружи,
// деньги и попытки меняются одной транзакцией БД.
// models.go описывает виды игр, конфигурацию и результаты.
package games

import (
	"context"
	"time"
)

// Виды игр. Значения попадают в колонку game_kind таблицы game_attempts.
const (
	KindGuess = "guess"
	KindDice  = "dice"
)

// Rand — источник случайности игры. В проде — NewLockedRand
// (конкурентные раунды делят один генератор);
// в тестах подменяется детерминированной реализацией.
type Rand interface {
	// Intn возвращает равномерное целое из [0, n)
	Intn(n int) int
}

// GuessConfig — параметры игры «Угадай число».
type GuessConfig struct {
	MaxAttempts int   // Попыток в день
	Reward      int64 // Награда за угаданное число
	Penalty     int64 // Штраф за промах (не больше текущего баланса)
}

// DiceConfig — параметры игры «Кубик».
type DiceConfig struct {
	MaxAttempts int   // Попыток в день
	MinReward   int64 // Награда за единицу
	MaxReward   int64 // Награда за шестёрку
}

// GuessResult — итог одного раунда «Угадай число».
type GuessResult struct {
	Correct      bool  // Угадал ли
	Number       int   // Загаданное число
	AttemptsLeft int   // Осталось попыток на сегодня
	Reward       int64 // Начислено (0 при промахе)
	Penalty      int64 // Списано фактически (0 при выигрыше или пустом счёте)
	OldBalance   int64 // Баланс до раунда
	NewBalance   int64 // Баланс после раунда
}

// DiceResult — итог одного броска кубика.
type DiceResult struct {
	Value        int   // Выпавшее значение 1..6
	Reward       int64 // Начислено
	AttemptsLeft int   // Осталось попыток на сегодня
	OldBalance   int64 // Баланс до броска
	NewBalance   int64 // Баланс после броска
}

// Status — состояние дневного лимита игры для счёта.
type Status struct {
	AttemptsLeft int
	MaxAttempts  int
}

// Settlement — результат атомарного расчёта раунда в БД.
type Settlement struct {
	AttemptsLeft int   // Остаток попыток после списания
	OldBalance   int64 // Баланс до расчёта
	NewBalance   int64 // Баланс после расчёта
	Applied      int64 // Фактически применённая сумма (штраф мог урезаться)
}

// Limiter — дневной счётчик попыток одной игры.
// Реализуется attempts.Throttler.
type Limiter interface {
	Remaining(ctx context.Context, userID int64) (int, error)
	Max() int
	Today() time.Time
}
