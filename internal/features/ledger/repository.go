// Package ledger — repository.go выполняет все операции с таблицей transactions
// и атомарные изменения балансов. Перевод — одна транзакция БД: либо оба
// баланса изменятся и появится запись в журнале, либо не произойдёт ничего.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Cisql/FKBBank/internal/common"
	"github.com/Cisql/FKBBank/internal/features/accounts"
)

// Repository предоставляет методы для работы с журналом транзакций и балансами.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт новый репозиторий журнала.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// lockedAccount — строка счёта, захваченная FOR UPDATE внутри транзакции.
type lockedAccount struct {
	balance       int64
	isBlocked     bool
	blockedReason *string
}

// lockAccount захватывает строку счёта до конца транзакции БД.
// Все проверки (блокировка, достаточность средств) делаются по захваченной
// строке, а не по устаревшему чтению.
func lockAccount(ctx context.Context, tx pgx.Tx, userID int64) (*lockedAccount, error) {
	var la lockedAccount
	err := tx.QueryRow(ctx, `
		SELECT balance, is_blocked, blocked_reason FROM accounts WHERE user_id = $1 FOR UPDATE
	`, userID).Scan(&la.balance, &la.isBlocked, &la.blockedReason)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrAccountNotFound
		}
		return nil, fmt.Errorf("ошибка захвата счёта (user_id=%d): %w", userID, err)
	}
	return &la, nil
}

// Transfer атомарно переводит средства и записывает транзакцию в журнал.
//
// sender == nil означает эмиссию системой, receiver == nil — списание
// в систему. Проверки выполняются по строкам, захваченным FOR UPDATE:
//   - отправитель существует, не заблокирован, баланс достаточен;
//   - получатель существует и не заблокирован.
//
// Строки захватываются в порядке возрастания user_id, чтобы два встречных
// перевода не взяли блокировки крест-накрест.
func (r *Repository) Transfer(ctx context.Context, sender, receiver *int64, amount int64, description string) (*Transaction, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	locked := make(map[int64]*lockedAccount, 2)
	for _, id := range lockOrder(sender, receiver) {
		la, err := lockAccount(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		locked[id] = la
	}

	if sender != nil {
		la := locked[*sender]
		if la.isBlocked {
			return nil, common.NewBlockedError(la.blockedReason)
		}
		if la.balance < amount {
			return nil, common.ErrInsufficientFunds
		}
	}
	if receiver != nil {
		la := locked[*receiver]
		if la.isBlocked {
			return nil, common.NewBlockedError(la.blockedReason)
		}
	}

	if sender != nil {
		if _, err := tx.Exec(ctx, `
			UPDATE accounts SET balance = balance - $2 WHERE user_id = $1
		`, *sender, amount); err != nil {
			return nil, fmt.Errorf("ошибка списания у отправителя: %w", err)
		}
	}
	if receiver != nil {
		if _, err := tx.Exec(ctx, `
			UPDATE accounts SET balance = balance + $2 WHERE user_id = $1
		`, *receiver, amount); err != nil {
			return nil, fmt.Errorf("ошибка начисления получателю: %w", err)
		}
	}

	t := &Transaction{SenderID: sender, ReceiverID: receiver, Amount: amount, Description: description}
	err = tx.QueryRow(ctx, `
		INSERT INTO transactions (sender_id, receiver_id, amount, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, sender, receiver, amount, description).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("ошибка записи транзакции: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("ошибка фиксации перевода: %w", err)
	}
	return t, nil
}

// Get возвращает транзакцию по ID.
func (r *Repository) Get(ctx context.Context, id int64) (*Transaction, error) {
	var t Transaction
	err := r.db.QueryRow(ctx, `
		SELECT id, sender_id, receiver_id, amount, description, created_at
		FROM transactions WHERE id = $1
	`, id).Scan(&t.ID, &t.SenderID, &t.ReceiverID, &t.Amount, &t.Description, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("ошибка чтения транзакции: %w", err)
	}
	return &t, nil
}

// History возвращает последние N транзакций счёта, новые первыми.
// Включает как входящие, так и исходящие операции.
func (r *Repository) History(ctx context.Context, userID int64, limit int) ([]*Transaction, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, sender_id, receiver_id, amount, description, created_at
		FROM transactions
		WHERE sender_id = $1 OR receiver_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения истории: %w", err)
	}
	defer rows.Close()

	var out []*Transaction
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(&t.ID, &t.SenderID, &t.ReceiverID, &t.Amount, &t.Description, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования транзакции: %w", err)
		}
		out = append(out, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения строк: %w", err)
	}
	return out, nil
}

// TopAccounts возвращает счета с наибольшим балансом.
// Заблокированные счета в рейтинг не попадают.
func (r *Repository) TopAccounts(ctx context.Context, limit int) ([]*accounts.Account, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, username, first_name, last_name, balance,
		       is_blocked, blocked_reason, created_at, last_active
		FROM accounts
		WHERE is_blocked = FALSE
		ORDER BY balance DESC, user_id
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса топа: %w", err)
	}
	defer rows.Close()

	var out []*accounts.Account
	for rows.Next() {
		var a accounts.Account
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.Username, &a.FirstName, &a.LastName, &a.Balance,
			&a.IsBlocked, &a.BlockedReason, &a.CreatedAt, &a.LastActive,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования счёта: %w", err)
		}
		out = append(out, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения строк: %w", err)
	}
	return out, nil
}

// lockOrder возвращает задействованные user_id по возрастанию, без дублей.
func lockOrder(sender, receiver *int64) []int64 {
	var ids []int64
	if sender != nil {
		ids = append(ids, *sender)
	}
	if receiver != nil && (sender == nil || *receiver != *sender) {
		ids = append(ids, *receiver)
	}
	if len(ids) == 2 && ids[0] > ids[1] {
		ids[0], ids[1] = ids[1], ids[0]
	}
	return ids
}
