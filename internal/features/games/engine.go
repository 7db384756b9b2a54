// Package games — engine.go: чистые расчёты исходов.
// Никакой случайности и никакой БД — всё проверяется обычными тестами.
package games

// guessRange — диапазон загадываемого числа.
const guessRange = 10

// diceSides — граней у кубика.
const diceSides = 6

// diceReward считает награду за выпавшее значение: линейная интерполяция
// между наградой за единицу и наградой за шестёрку, с округлением вниз.
// Умножение до деления — иначе целочисленный шаг растерял бы остаток.
func diceReward(value int, cfg DiceConfig) int64 {
	return cfg.MinReward + int64(value-1)*(cfg.MaxReward-cfg.MinReward)/(diceSides-1)
}

// guessPenalty считает фактический штраф за промах: не больше баланса,
// счёт никогда не уходит в минус. На пустом счёте штраф нулевой
// и транзакция списания не записывается вовсе.
func guessPenalty(balance int64, cfg GuessConfig) int64 {
	if balance < cfg.Penalty {
		return balance
	}
	return cfg.Penalty
}

// validGuess проверяет, что число в диапазоне игры.
func validGuess(guess int) bool {
	return guess >= 1 && guess <= guessRange
}
