// Package promo — repository.go выполняет операции с таблицей promo_codes.
// Активация кода — одна транзакция БД: пометка is_used, пополнение баланса
// и запись в журнал либо происходят все вместе, либо не происходят вовсе.
package promo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Cisql/FKBBank/internal/common"
)

// errCodeCollision — сгенерированный код уже существует, нужно перегенерировать.
var errCodeCollision = errors.New("код уже существует")

// Repository работает с таблицей promo_codes.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт репозиторий промокодов.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новый промокод и в той же транзакции БД записывает
// действие администратора. При совпадении кода с существующим возвращает
// errCodeCollision — вызывающий перегенерирует код.
func (r *Repository) Create(ctx context.Context, code string, amount int64, adminID *int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO promo_codes (code, amount, created_by) VALUES ($1, $2, $3)
	`, code, amount, adminID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return errCodeCollision
		}
		return fmt.Errorf("ошибка создания промокода: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO admin_actions (admin_id, action_type, description, amount)
		VALUES ($1, 'CREATE_PROMO', $2, $3)
	`, adminID, "Создан промокод: "+code, amount)
	if err != nil {
		return fmt.Errorf("ошибка записи действия администратора: %w", err)
	}

	return tx.Commit(ctx)
}

// Redeem активирует промокод и начисляет сумму на счёт. Возвращает сумму.
//
// Весь путь — одна транзакция БД:
//  1. захватываем строку счёта (FOR UPDATE), проверяем блокировку;
//  2. условный UPDATE promo_codes ... WHERE is_used = FALSE — из двух
//     конкурентных активаций одного кода строку получит ровно одна,
//     вторая увидит ноль строк и получит ErrPromoInvalid;
//  3. пополняем баланс и пишем транзакцию-эмиссию в журнал.
//
// Несуществующий и уже использованный код снаружи неразличимы.
func (r *Repository) Redeem(ctx context.Context, code string, userID int64) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	var isBlocked bool
	var blockedReason *string
	err = tx.QueryRow(ctx, `
		SELECT is_blocked, blocked_reason FROM accounts WHERE user_id = $1 FOR UPDATE
	`, userID).Scan(&isBlocked, &blockedReason)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, common.ErrAccountNotFound
		}
		return 0, fmt.Errorf("ошибка чтения счёта: %w", err)
	}
	if isBlocked {
		return 0, common.NewBlockedError(blockedReason)
	}

	var amount int64
	err = tx.QueryRow(ctx, `
		UPDATE promo_codes
		SET is_used = TRUE, used_by = $2
		WHERE code = $1 AND is_used = FALSE
		RETURNING amount
	`, code, userID).Scan(&amount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, common.ErrPromoInvalid
		}
		return 0, fmt.Errorf("ошибка активации промокода: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		UPDATE accounts SET balance = balance + $2 WHERE user_id = $1
	`, userID, amount); err != nil {
		return 0, fmt.Errorf("ошибка начисления: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO transactions (sender_id, receiver_id, amount, description)
		VALUES (NULL, $1, $2, $3)
	`, userID, amount, "Активация промокода: "+code); err != nil {
		return 0, fmt.Errorf("ошибка записи транзакции: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("ошибка фиксации активации: %w", err)
	}
	return amount, nil
}

// List возвращает последние промокоды для админки, новые первыми.
func (r *Repository) List(ctx context.Context, limit int) ([]*PromoCode, error) {
	rows, err := r.db.Query(ctx, `
		SELECT code, amount, is_used, used_by, created_by, created_at
		FROM promo_codes
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса промокодов: %w", err)
	}
	defer rows.Close()

	var out []*PromoCode
	for rows.Next() {
		var p PromoCode
		if err := rows.Scan(&p.Code, &p.Amount, &p.IsUsed, &p.UsedBy, &p.CreatedBy, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования промокода: %w", err)
		}
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения строк: %w", err)
	}
	return out, nil
}
