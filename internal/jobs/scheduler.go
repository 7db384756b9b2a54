// Package jobs содержит фоновые задачи банка.
// Планировщик работает в каноническом часовом поясе банка — том же,
// по которому считается игровой «день», поэтому ночной аудит
// срабатывает ровно на границе суток.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/Cisql/FKBBank/internal/common"
	"github.com/Cisql/FKBBank/internal/features/accounts"
)

// Scheduler управляет фоновыми задачами.
type Scheduler struct {
	cron     *cron.Cron
	accounts *accounts.Service
}

// NewScheduler создаёт планировщик в указанном часовом поясе.
func NewScheduler(loc *time.Location, accountsService *accounts.Service) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		accounts: accountsService,
	}
}

// Start запускает все фоновые задачи.
func (s *Scheduler) Start(ctx context.Context) {
	// Ночной аудит в 00:00: снимок статистики и суммарного баланса.
	// Дневные лимиты игр при этом не трогаем — они сбрасываются лениво,
	// при первом обращении в новый день.
	s.cron.AddFunc("0 0 * * *", func() {
		stats, err := s.accounts.Stats(ctx)
		if err != nil {
			log.WithError(err).Error("[CRON] Ошибка ночного аудита")
			return
		}
		log.WithFields(log.Fields{
			"total_accounts":   stats.TotalAccounts,
			"active_accounts":  stats.ActiveAccounts,
			"blocked_accounts": stats.BlockedAccounts,
			"total_balance":    common.FormatBalance(stats.TotalBalance),
			"new_24h":          stats.NewAccounts24h,
			"transactions_24h": stats.Transactions24h,
		}).Info("[CRON] Ночной аудит банка")
	})

	s.cron.Start()
	log.Info("Планировщик задач запущен")
}

// Stop останавливает планировщик и дожидается завершения текущих задач.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Info("Планировщик задач остановлен")
}
