// Package accounts — repository.go отвечает за все операции с таблицей accounts в БД.
package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Cisql/FKBBank/internal/common"
)

const accountColumns = `id, user_id, username, first_name, last_name, balance,
       is_blocked, blocked_reason, created_at, last_active`

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CreateOrTouch создаёт счёт, если его нет, или обновляет данные профиля.
//
// Для нового счёта начисляется приветственный бонус и в той же транзакции БД
// записывается транзакция-эмиссия (sender = NULL). Для существующего счёта
// обновляются только имя/username и last_active — баланс не меняется никогда,
// сколько бы раз ни вызвали.
func (r *Repository) CreateOrTouch(ctx context.Context, userID int64, fields DisplayFields, welcomeBonus int64) (*Account, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	// ON CONFLICT DO NOTHING + RETURNING: строка вернётся только если счёт новый.
	// Так два конкурентных первых обращения не раздадут бонус дважды.
	var insertedID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO accounts (user_id, username, first_name, last_name, balance)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO NOTHING
		RETURNING user_id
	`, userID, fields.Username, fields.FirstName, fields.LastName, welcomeBonus).Scan(&insertedID)

	switch {
	case errors.Is(err, pgx.ErrNoRows):
		// Счёт уже существует — обновляем только профиль и активность
		_, err = tx.Exec(ctx, `
			UPDATE accounts
			SET username = $2, first_name = $3, last_name = $4, last_active = NOW()
			WHERE user_id = $1
		`, userID, fields.Username, fields.FirstName, fields.LastName)
		if err != nil {
			return nil, fmt.Errorf("ошибка обновления счёта: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("ошибка создания счёта: %w", err)
	default:
		// Новый счёт: фиксируем эмиссию приветственного бонуса
		if welcomeBonus > 0 {
			_, err = tx.Exec(ctx, `
				INSERT INTO transactions (sender_id, receiver_id, amount, description)
				VALUES (NULL, $1, $2, 'Приветственный бонус')
			`, userID, welcomeBonus)
			if err != nil {
				return nil, fmt.Errorf("ошибка записи бонусной транзакции: %w", err)
			}
		}
	}

	acc, err := getTx(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("ошибка фиксации транзакции: %w", err)
	}
	return acc, nil
}

// Get возвращает счёт по ID пользователя.
// Если счёт не найден — common.ErrAccountNotFound.
func (r *Repository) Get(ctx context.Context, userID int64) (*Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1`
	return r.scanOne(ctx, query, userID)
}

// GetByUsername возвращает счёт по @username (без @, регистр не важен).
func (r *Repository) GetByUsername(ctx context.Context, username string) (*Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE LOWER(username) = LOWER($1)`
	return r.scanOne(ctx, query, username)
}

// List возвращает страницу счетов, новые первыми.
func (r *Repository) List(ctx context.Context, limit, offset int) ([]*Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	return r.queryAccounts(ctx, query, limit, offset)
}

// SearchByID ищет счёт по числовому ID. Пустой срез, если не найден.
func (r *Repository) SearchByID(ctx context.Context, userID int64) ([]*Account, error) {
	acc, err := r.Get(ctx, userID)
	if errors.Is(err, common.ErrAccountNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []*Account{acc}, nil
}

// SearchByPattern ищет по частичному совпадению имени, фамилии или username.
func (r *Repository) SearchByPattern(ctx context.Context, pattern string, limit int) ([]*Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE username ILIKE $1 OR first_name ILIKE $1 OR last_name ILIKE $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	return r.queryAccounts(ctx, query, "%"+pattern+"%", limit)
}

// Blocked возвращает все заблокированные счета.
func (r *Repository) Blocked(ctx context.Context) ([]*Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE is_blocked = TRUE
		ORDER BY created_at DESC
	`
	return r.queryAccounts(ctx, query)
}

// Stats собирает сводную статистику по счетам и транзакциям.
func (r *Repository) Stats(ctx context.Context) (*Stats, error) {
	var s Stats
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE NOT is_blocked),
		       COUNT(*) FILTER (WHERE is_blocked),
		       COALESCE(SUM(balance), 0),
		       COUNT(*) FILTER (WHERE created_at >= NOW() - INTERVAL '24 hours')
		FROM accounts
	`).Scan(&s.TotalAccounts, &s.ActiveAccounts, &s.BlockedAccounts, &s.TotalBalance, &s.NewAccounts24h)
	if err != nil {
		return nil, fmt.Errorf("ошибка сбора статистики счетов: %w", err)
	}

	err = r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM transactions WHERE created_at >= NOW() - INTERVAL '24 hours'
	`).Scan(&s.Transactions24h)
	if err != nil {
		return nil, fmt.Errorf("ошибка подсчёта транзакций за сутки: %w", err)
	}

	return &s, nil
}

func (r *Repository) scanOne(ctx context.Context, query string, arg any) (*Account, error) {
	var a Account
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&a.ID, &a.UserID, &a.Username, &a.FirstName, &a.LastName, &a.Balance,
		&a.IsBlocked, &a.BlockedReason, &a.CreatedAt, &a.LastActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrAccountNotFound
		}
		return nil, fmt.Errorf("ошибка чтения счёта: %w", err)
	}
	return &a, nil
}

func getTx(ctx context.Context, tx pgx.Tx, userID int64) (*Account, error) {
	var a Account
	err := tx.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE user_id = $1`, userID).Scan(
		&a.ID, &a.UserID, &a.Username, &a.FirstName, &a.LastName, &a.Balance,
		&a.IsBlocked, &a.BlockedReason, &a.CreatedAt, &a.LastActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrAccountNotFound
		}
		return nil, fmt.Errorf("ошибка чтения счёта: %w", err)
	}
	return &a, nil
}

func (r *Repository) queryAccounts(ctx context.Context, query string, args ...any) ([]*Account, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса счетов: %w", err)
	}
	defer rows.Close()

	var out []*Account
	for rows.Next() {
		var a Account
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.Username, &a.FirstName, &a.LastName, &a.Balance,
			&a.IsBlocked, &a.BlockedReason, &a.CreatedAt, &a.LastActive,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки: %w", err)
		}
		out = append(out, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения строк: %w", err)
	}

	return out, nil
}
