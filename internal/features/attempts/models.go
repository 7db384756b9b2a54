// Package attempts реализует общий дневной счётчик попыток.
// Обе игры («Угадай число» и «Кубик») пользуются одним и тем же механизмом:
// N попыток на календарный день, при смене даты счётчик сбрасывается
// до максимума. Дата считается в едином часовом поясе банка.
package attempts

import "time"

// Record — запись попыток одного счёта для одного вида игры.
type Record struct {
	UserID          int64     `db:"user_id"`
	GameKind        string    `db:"game_kind"`
	AttemptsLeft    int       `db:"attempts_left"`
	LastAttemptDate time.Time `db:"last_attempt_date"` // календарная дата, не момент времени
}

// RemainingAfterRollover возвращает число попыток с учётом смены дня.
// Нет записи — полный максимум. Дата записи не «сегодня» — тоже максимум.
// Иначе — сколько сохранено.
func RemainingAfterRollover(rec *Record, today time.Time, max int) int {
	if rec == nil {
		return max
	}
	if !sameDay(rec.LastAttemptDate, today) {
		return max
	}
	return rec.AttemptsLeft
}

// sameDay сравнивает календарные даты по компонентам.
// Обе стороны должны быть получены в часовом поясе банка.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
