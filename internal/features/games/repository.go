// Package games — repository.go выполняет атомарный расчёт раунда.
// Списание попытки, изменение баланса и запись в журнал — одна транзакция
// БД: сбой между шагами не подарит ни бесплатную игру, ни награду
// мимо лимита.
package games

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Cisql/FKBBank/internal/common"
	"github.com/Cisql/FKBBank/internal/features/attempts"
)

// Repository проводит игровые расчёты по счетам.
type Repository struct {
	db       *pgxpool.Pool
	attempts *attempts.Repository
}

// NewRepository создаёт репозиторий игровых расчётов.
func NewRepository(db *pgxpool.Pool, attemptsRepo *attempts.Repository) *Repository {
	return &Repository{db: db, attempts: attemptsRepo}
}

// SettlePlay атомарно проводит раунд: списывает попытку и рассчитывает
// деньги. credit — начисление (выигрыш), debitCap — желаемый штраф,
// который будет урезан до текущего баланса. Задействуется не больше
// одной из двух сумм; обе нулевые — раунд без движения денег.
//
// Порядок внутри транзакции фиксированный (счёт → попытки), чтобы
// конкурирующие операции не захватывали блокировки крест-накрест:
//  1. FOR UPDATE на строку счёта, проверка существования и блокировки;
//  2. FOR UPDATE на запись попыток, пересчёт по сегодняшней дате,
//     отказ ErrAttemptsExhausted при нуле, списание одной попытки;
//  3. движение денег и запись в журнал (нулевой штраф строки не пишет).
func (r *Repository) SettlePlay(ctx context.Context, userID int64, kind string, maxAttempts int, today time.Time, credit, debitCap int64, description string) (*Settlement, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	var balance int64
	var isBlocked bool
	var blockedReason *string
	err = tx.QueryRow(ctx, `
		SELECT balance, is_blocked, blocked_reason FROM accounts WHERE user_id = $1 FOR UPDATE
	`, userID).Scan(&balance, &isBlocked, &blockedReason)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrAccountNotFound
		}
		return nil, fmt.Errorf("ошибка чтения счёта: %w", err)
	}
	if isBlocked {
		return nil, common.NewBlockedError(blockedReason)
	}

	rec, err := r.attempts.LockTx(ctx, tx, userID, kind)
	if err != nil {
		return nil, err
	}
	left := attempts.RemainingAfterRollover(rec, today, maxAttempts)
	if left <= 0 {
		return nil, common.ErrAttemptsExhausted
	}
	left--
	if err := r.attempts.SaveTx(ctx, tx, &attempts.Record{
		UserID: userID, GameKind: kind, AttemptsLeft: left, LastAttemptDate: today,
	}); err != nil {
		return nil, err
	}

	st := &Settlement{AttemptsLeft: left, OldBalance: balance, NewBalance: balance}

	switch {
	case credit > 0:
		st.Applied = credit
		st.NewBalance = balance + credit
		if _, err := tx.Exec(ctx, `
			UPDATE accounts SET balance = balance + $2 WHERE user_id = $1
		`, userID, credit); err != nil {
			return nil, fmt.Errorf("ошибка начисления выигрыша: %w", err)
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO transactions (sender_id, receiver_id, amount, description)
			VALUES (NULL, $1, $2, $3)
		`, userID, credit, description); err != nil {
			return nil, fmt.Errorf("ошибка записи транзакции выигрыша: %w", err)
		}
	case debitCap > 0:
		applied := debitCap
		if balance < applied {
			applied = balance
		}
		st.Applied = applied
		st.NewBalance = balance - applied
		// Пустой счёт: штраф нулевой, движения денег нет
		if applied > 0 {
			if _, err := tx.Exec(ctx, `
				UPDATE accounts SET balance = balance - $2 WHERE user_id = $1
			`, userID, applied); err != nil {
				return nil, fmt.Errorf("ошибка списания штрафа: %w", err)
			}
			if _, err := tx.Exec(ctx, `
				INSERT INTO transactions (sender_id, receiver_id, amount, description)
				VALUES ($1, NULL, $2, $3)
			`, userID, applied, description); err != nil {
				return nil, fmt.Errorf("ошибка записи транзакции штрафа: %w", err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("ошибка фиксации раунда: %w", err)
	}
	return st, nil
}
