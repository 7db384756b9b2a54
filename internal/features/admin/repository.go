// Package admin — repository.go выполняет административные операции
// над счетами. Эффект и запись в журнал admin_actions — одна транзакция
// БД: в журнале нет действий, которых не было, и нет действий без следа.
package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Cisql/FKBBank/internal/common"
)

// Repository работает с таблицами accounts, transactions и admin_actions.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт репозиторий административных операций.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Block блокирует счёт с указанием причины. Повторная блокировка
// перезаписывает причину. Блокировка замораживает счёт, но не деньги:
// баланс сохраняется до разблокировки.
func (r *Repository) Block(ctx context.Context, adminID *int64, userID int64, reason string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE accounts SET is_blocked = TRUE, blocked_reason = $2 WHERE user_id = $1
	`, userID, reason)
	if err != nil {
		return fmt.Errorf("ошибка блокировки счёта: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrAccountNotFound
	}

	if err := r.logAction(ctx, tx, adminID, ActionBlockUser, &userID, nil, reason); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Unblock снимает блокировку. В журнал попадает прежняя причина:
// после снятия её больше негде посмотреть.
func (r *Repository) Unblock(ctx context.Context, adminID *int64, userID int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	var reason *string
	err = tx.QueryRow(ctx, `
		SELECT blocked_reason FROM accounts WHERE user_id = $1 FOR UPDATE
	`, userID).Scan(&reason)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.ErrAccountNotFound
		}
		return fmt.Errorf("ошибка чтения счёта: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		UPDATE accounts SET is_blocked = FALSE, blocked_reason = NULL WHERE user_id = $1
	`, userID); err != nil {
		return fmt.Errorf("ошибка разблокировки счёта: %w", err)
	}

	description := "разблокировка"
	if reason != nil && *reason != "" {
		description = fmt.Sprintf("разблокировка (была причина: %s)", *reason)
	}
	if err := r.logAction(ctx, tx, adminID, ActionUnblockUser, &userID, nil, description); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// AddBalance начисляет средства на счёт: эмиссионная транзакция
// (отправитель NULL) плюс запись в журнал. Начисление проходит и на
// заблокированный счёт — блокировка ограничивает владельца, не банк.
func (r *Repository) AddBalance(ctx context.Context, adminID *int64, userID, amount int64, description string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE accounts SET balance = balance + $2 WHERE user_id = $1
	`, userID, amount)
	if err != nil {
		return fmt.Errorf("ошибка начисления: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrAccountNotFound
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO transactions (sender_id, receiver_id, amount, description)
		VALUES (NULL, $1, $2, $3)
	`, userID, amount, description); err != nil {
		return fmt.Errorf("ошибка записи транзакции начисления: %w", err)
	}

	if err := r.logAction(ctx, tx, adminID, ActionAddBalance, &userID, &amount, description); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// RemoveBalance списывает средства со счёта, не больше текущего баланса.
// Возвращает фактически списанную сумму. На пустом счёте списывать
// нечего — ErrNothingToRemove, записи не создаются.
func (r *Repository) RemoveBalance(ctx context.Context, adminID *int64, userID, amount int64, description string) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	var balance int64
	err = tx.QueryRow(ctx, `
		SELECT balance FROM accounts WHERE user_id = $1 FOR UPDATE
	`, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, common.ErrAccountNotFound
		}
		return 0, fmt.Errorf("ошибка чтения счёта: %w", err)
	}

	applied := removalAmount(balance, amount)
	if applied == 0 {
		return 0, common.ErrNothingToRemove
	}

	if _, err := tx.Exec(ctx, `
		UPDATE accounts SET balance = balance - $2 WHERE user_id = $1
	`, userID, applied); err != nil {
		return 0, fmt.Errorf("ошибка списания: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO transactions (sender_id, receiver_id, amount, description)
		VALUES ($1, NULL, $2, $3)
	`, userID, applied, description); err != nil {
		return 0, fmt.Errorf("ошибка записи транзакции списания: %w", err)
	}

	if err := r.logAction(ctx, tx, adminID, ActionRemoveBalance, &userID, &applied, description); err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("ошибка фиксации списания: %w", err)
	}
	return applied, nil
}

// Actions возвращает журнал действий, новые первыми.
// adminID == nil — весь журнал, иначе действия одного администратора.
func (r *Repository) Actions(ctx context.Context, adminID *int64, limit int) ([]*AdminAction, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, admin_id, action_type, target_user_id, amount, description, created_at
		FROM admin_actions
		WHERE ($1::BIGINT IS NULL OR admin_id = $1)
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`, adminID, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения журнала действий: %w", err)
	}
	defer rows.Close()

	var actions []*AdminAction
	for rows.Next() {
		a := &AdminAction{}
		if err := rows.Scan(&a.ID, &a.AdminID, &a.ActionType, &a.TargetUserID, &a.Amount, &a.Description, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования записи журнала: %w", err)
		}
		actions = append(actions, a)
	}
	return actions, rows.Err()
}

// logAction добавляет запись журнала внутри текущей транзакции.
func (r *Repository) logAction(ctx context.Context, tx pgx.Tx, adminID *int64, actionType string, targetUserID, amount *int64, description string) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO admin_actions (admin_id, action_type, target_user_id, amount, description)
		VALUES ($1, $2, $3, $4, $5)
	`, adminID, actionType, targetUserID, amount, description)
	if err != nil {
		return fmt.Errorf("ошибка записи в журнал действий: %w", err)
	}
	return nil
}

// removalAmount урезает запрошенное списание до текущего баланса.
func removalAmount(balance, requested int64) int64 {
	if requested > balance {
		return balance
	}
	return requested
}
