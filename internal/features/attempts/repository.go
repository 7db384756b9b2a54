// Package attempts — repository.go выполняет операции с таблицей game_attempts.
// Изменения счётчика всегда идут через FOR UPDATE: два конкурентных запроса
// по одному счёту не потеряют ни одной потраченной попытки.
package attempts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository работает с таблицей game_attempts.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт репозиторий счётчиков попыток.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// LockTx захватывает запись попыток до конца транзакции tx.
// Возвращает (nil, nil), если записи ещё нет.
// Используется игровыми расчётами, чтобы списание попытки и начисление
// награды жили в одной транзакции БД.
func (r *Repository) LockTx(ctx context.Context, tx pgx.Tx, userID int64, kind string) (*Record, error) {
	var rec Record
	err := tx.QueryRow(ctx, `
		SELECT user_id, game_kind, attempts_left, last_attempt_date
		FROM game_attempts
		WHERE user_id = $1 AND game_kind = $2
		FOR UPDATE
	`, userID, kind).Scan(&rec.UserID, &rec.GameKind, &rec.AttemptsLeft, &rec.LastAttemptDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка захвата счётчика попыток: %w", err)
	}
	return &rec, nil
}

// SaveTx сохраняет запись попыток внутри транзакции tx.
func (r *Repository) SaveTx(ctx context.Context, tx pgx.Tx, rec *Record) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO game_attempts (user_id, game_kind, attempts_left, last_attempt_date)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, game_kind) DO UPDATE
		SET attempts_left = EXCLUDED.attempts_left,
		    last_attempt_date = EXCLUDED.last_attempt_date
	`, rec.UserID, rec.GameKind, rec.AttemptsLeft, rec.LastAttemptDate)
	if err != nil {
		return fmt.Errorf("ошибка сохранения счётчика попыток: %w", err)
	}
	return nil
}

// Remaining возвращает оставшиеся попытки с учётом смены дня.
// Если запись отсутствует или устарела — создаёт/сбрасывает её до максимума.
func (r *Repository) Remaining(ctx context.Context, userID int64, kind string, max int, today time.Time) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	rec, err := r.LockTx(ctx, tx, userID, kind)
	if err != nil {
		return 0, err
	}

	left := RemainingAfterRollover(rec, today, max)

	// Персистим только при создании записи или сбросе дня
	if rec == nil || !sameDay(rec.LastAttemptDate, today) {
		if err := r.SaveTx(ctx, tx, &Record{
			UserID: userID, GameKind: kind, AttemptsLeft: left, LastAttemptDate: today,
		}); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("ошибка фиксации транзакции: %w", err)
	}
	return left, nil
}

// Consume списывает n попыток (с полом на нуле) и возвращает остаток.
// Сам по себе отказа не даёт — проверка «остались ли попытки» лежит
// на вызывающем коде до начала игры.
func (r *Repository) Consume(ctx context.Context, userID int64, kind string, max, n int, today time.Time) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	rec, err := r.LockTx(ctx, tx, userID, kind)
	if err != nil {
		return 0, err
	}

	left := RemainingAfterRollover(rec, today, max) - n
	if left < 0 {
		left = 0
	}

	if err := r.SaveTx(ctx, tx, &Record{
		UserID: userID, GameKind: kind, AttemptsLeft: left, LastAttemptDate: today,
	}); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("ошибка фиксации транзакции: %w", err)
	}
	return left, nil
}
