// Package app инициализирует все компоненты банка.
// app.go — точка сборки: создаёт БД-пул, прогоняет миграции, собирает
// репозитории и сервисы в один объект App.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"github.com/Cisql/FKBBank/internal/config"
	"github.com/Cisql/FKBBank/internal/db/postgres"
	"github.com/Cisql/FKBBank/internal/features/accounts"
	"github.com/Cisql/FKBBank/internal/features/admin"
	"github.com/Cisql/FKBBank/internal/features/attempts"
	"github.com/Cisql/FKBBank/internal/features/games"
	"github.com/Cisql/FKBBank/internal/features/ledger"
	"github.com/Cisql/FKBBank/internal/features/promo"
	"github.com/Cisql/FKBBank/internal/jobs"
)

// App содержит все компоненты банка. Поля-сервисы — публичная
// поверхность для внешних вызывающих (бот, админка, API).
type App struct {
	Accounts  *accounts.Service
	Ledger    *ledger.Service
	Promo     *promo.Service
	Games     *games.Service
	Admin     *admin.Service
	Auth      *admin.Authenticator
	Scheduler *jobs.Scheduler
	DB        *pgxpool.Pool
}

// New создаёт и инициализирует приложение.
// Порядок инициализации важен — компоненты зависят друг от друга.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// === 1. База данных ===
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
	}

	if err := runMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ошибка миграций: %w", err)
	}

	loc := cfg.Location()

	// === 2. Репозитории ===
	accountRepo := accounts.NewRepository(pool)
	ledgerRepo := ledger.NewRepository(pool)
	promoRepo := promo.NewRepository(pool)
	attemptRepo := attempts.NewRepository(pool)
	gameRepo := games.NewRepository(pool, attemptRepo)
	adminRepo := admin.NewRepository(pool)

	// === 3. Сервисы ===
	accountService := accounts.NewService(accountRepo, cfg.EconomyWelcomeBonus)
	ledgerService := ledger.NewService(ledgerRepo)
	promoService := promo.NewService(promoRepo, promo.Bounds{
		MinLength:     cfg.PromoMinLength,
		MaxLength:     cfg.PromoMaxLength,
		DefaultLength: cfg.PromoDefaultLength,
	})

	guessLimit := attempts.NewThrottler(attemptRepo, games.KindGuess, cfg.GuessMaxAttempts, loc)
	diceLimit := attempts.NewThrottler(attemptRepo, games.KindDice, cfg.DiceMaxAttempts, loc)
	// Один генератор на все игры — обязан переживать конкурентные раунды
	rng := games.NewLockedRand(time.Now().UnixNano())
	gameService := games.NewService(
		gameRepo, guessLimit, diceLimit,
		games.GuessConfig{
			MaxAttempts: cfg.GuessMaxAttempts,
			Reward:      cfg.GuessReward,
			Penalty:     cfg.GuessPenalty,
		},
		games.DiceConfig{
			MaxAttempts: cfg.DiceMaxAttempts,
			MinReward:   cfg.DiceMinReward,
			MaxReward:   cfg.DiceMaxReward,
		},
		rng,
	)

	adminService := admin.NewService(adminRepo, accountRepo)
	auth := admin.NewAuthenticator(cfg.AdminIDs, cfg.AdminPasswordHash)

	// === 4. Планировщик задач ===
	scheduler := jobs.NewScheduler(loc, accountService)

	log.WithField("timezone", loc.String()).Info("Банк инициализирован")

	return &App{
		Accounts:  accountService,
		Ledger:    ledgerService,
		Promo:     promoService,
		Games:     gameService,
		Admin:     adminService,
		Auth:      auth,
		Scheduler: scheduler,
		DB:        pool,
	}, nil
}

// Close освобождает ресурсы приложения.
func (a *App) Close() {
	a.Scheduler.Stop()
	a.DB.Close()
}

// runMigrations выполняет все SQL-миграции по порядку.
func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	if err := postgres.InitMigrations(ctx, pool); err != nil {
		return err
	}

	migrations := []struct {
		version int
		sql     string
	}{
		{1, migration001Accounts},
		{2, migration002Transactions},
		{3, migration003PromoCodes},
		{4, migration004AdminActions},
		{5, migration005GameAttempts},
	}

	for _, m := range migrations {
		if err := postgres.ExecMigrationSQL(ctx, pool, m.version, m.sql); err != nil {
			return fmt.Errorf("миграция %d: %w", m.version, err)
		}
		log.Infof("Миграция %d применена", m.version)
	}

	return nil
}

// SQL-миграции встроены в код для упрощения деплоя.

var migration001Accounts = `
CREATE TABLE IF NOT EXISTS accounts (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT UNIQUE NOT NULL,
    username VARCHAR(255),
    first_name VARCHAR(255),
    last_name VARCHAR(255),
    balance BIGINT NOT NULL DEFAULT 0 CHECK (balance >= 0),
    is_blocked BOOLEAN NOT NULL DEFAULT FALSE,
    blocked_reason TEXT,
    created_at TIMESTAMP DEFAULT NOW(),
    last_active TIMESTAMP DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_accounts_user_id ON accounts(user_id);
CREATE INDEX IF NOT EXISTS idx_accounts_username ON accounts(username);
CREATE INDEX IF NOT EXISTS idx_accounts_balance ON accounts(balance DESC);
`

var migration002Transactions = `
CREATE TABLE IF NOT EXISTS transactions (
    id BIGSERIAL PRIMARY KEY,
    sender_id BIGINT REFERENCES accounts(user_id),
    receiver_id BIGINT REFERENCES accounts(user_id),
    amount BIGINT NOT NULL CHECK (amount > 0),
    description TEXT,
    created_at TIMESTAMP DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_transactions_sender ON transactions(sender_id);
CREATE INDEX IF NOT EXISTS idx_transactions_receiver ON transactions(receiver_id);
CREATE INDEX IF NOT EXISTS idx_transactions_created_at ON transactions(created_at DESC);
`

var migration003PromoCodes = `
CREATE TABLE IF NOT EXISTS promo_codes (
    code VARCHAR(16) PRIMARY KEY,
    amount BIGINT NOT NULL CHECK (amount > 0),
    is_used BOOLEAN NOT NULL DEFAULT FALSE,
    used_by BIGINT REFERENCES accounts(user_id),
    created_by BIGINT,
    created_at TIMESTAMP DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_promo_codes_is_used ON promo_codes(is_used);
`

var migration004AdminActions = `
CREATE TABLE IF NOT EXISTS admin_actions (
    id BIGSERIAL PRIMARY KEY,
    admin_id BIGINT,
    action_type VARCHAR(50) NOT NULL,
    target_user_id BIGINT,
    amount BIGINT,
    description TEXT,
    created_at TIMESTAMP DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_admin_actions_admin_id ON admin_actions(admin_id);
CREATE INDEX IF NOT EXISTS idx_admin_actions_created_at ON admin_actions(created_at DESC);
`

var migration005GameAttempts = `
CREATE TABLE IF NOT EXISTS game_attempts (
    user_id BIGINT NOT NULL REFERENCES accounts(user_id),
    game_kind VARCHAR(32) NOT NULL,
    attempts_left INTEGER NOT NULL,
    last_attempt_date DATE NOT NULL,
    PRIMARY KEY (user_id, game_kind)
);
`
