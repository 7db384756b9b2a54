// Package ledger — service.go содержит бизнес-логику переводов.
// Валидация сумм и политика «нельзя себе» живут здесь; сам журнал
// остаётся пригодным для системной эмиссии и списаний с одной стороной.
package ledger

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/Cisql/FKBBank/internal/common"
	"github.com/Cisql/FKBBank/internal/features/accounts"
)

// Service управляет журналом транзакций.
type Service struct {
	repo *Repository
}

// NewService создаёт сервис журнала.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Transfer переводит средства между счетами или между счётом и системой.
//
// sender == nil — эмиссия, receiver == nil — списание в систему.
// Перевод самому себе отклоняется — это политика пользовательских
// переводов, системные операции с одной стороной под неё не попадают.
func (s *Service) Transfer(ctx context.Context, sender, receiver *int64, amount int64, description string) (*Transaction, error) {
	if err := validateTransfer(sender, receiver, amount); err != nil {
		return nil, err
	}

	t, err := s.repo.Transfer(ctx, sender, receiver, amount, description)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"tx_id":  t.ID,
		"amount": amount,
	}).Info("Перевод выполнен")

	return t, nil
}

// Get возвращает транзакцию по ID.
func (s *Service) Get(ctx context.Context, id int64) (*Transaction, error) {
	return s.repo.Get(ctx, id)
}

// History возвращает последние транзакции счёта, новые первыми.
func (s *Service) History(ctx context.Context, userID int64, limit int) ([]*Transaction, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.repo.History(ctx, userID, limit)
}

// TopAccounts возвращает рейтинг счетов по балансу (без заблокированных).
func (s *Service) TopAccounts(ctx context.Context, limit int) ([]*accounts.Account, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.repo.TopAccounts(ctx, limit)
}

// validateTransfer проверяет параметры перевода до обращения к БД.
func validateTransfer(sender, receiver *int64, amount int64) error {
	if amount <= 0 {
		return common.ErrInvalidAmount
	}
	if sender == nil && receiver == nil {
		return common.ErrAccountNotFound
	}
	if sender != nil && receiver != nil && *sender == *receiver {
		return common.ErrSelfTransfer
	}
	return nil
}
