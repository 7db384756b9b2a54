// Package admin — service.go: проверки бизнес-правил поверх репозитория.
package admin

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/Cisql/FKBBank/internal/common"
	"github.com/Cisql/FKBBank/internal/features/accounts"
)

const defaultActionsLimit = 50

// Service — административные операции над счетами.
type Service struct {
	repo     *Repository
	accounts *accounts.Repository
}

// NewService создаёт административный сервис.
func NewService(repo *Repository, accountsRepo *accounts.Repository) *Service {
	return &Service{repo: repo, accounts: accountsRepo}
}

// Block блокирует счёт. Пустая причина заменяется на «не указана».
func (s *Service) Block(ctx context.Context, adminID *int64, userID int64, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = "не указана"
	}
	if err := s.repo.Block(ctx, adminID, userID, reason); err != nil {
		return err
	}
	log.WithFields(log.Fields{"user_id": userID, "reason": reason}).Info("Счёт заблокирован")
	return nil
}

// Unblock снимает блокировку счёта.
func (s *Service) Unblock(ctx context.Context, adminID *int64, userID int64) error {
	if err := s.repo.Unblock(ctx, adminID, userID); err != nil {
		return err
	}
	log.WithField("user_id", userID).Info("Счёт разблокирован")
	return nil
}

// AddBalance начисляет средства на счёт.
func (s *Service) AddBalance(ctx context.Context, adminID *int64, userID, amount int64) error {
	if amount <= 0 {
		return common.ErrInvalidAmount
	}
	return s.repo.AddBalance(ctx, adminID, userID, amount, "Начисление от администрации")
}

// RemoveBalance списывает средства со счёта, не больше баланса.
// Возвращает фактически списанную сумму.
func (s *Service) RemoveBalance(ctx context.Context, adminID *int64, userID, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, common.ErrInvalidAmount
	}
	return s.repo.RemoveBalance(ctx, adminID, userID, amount, "Списание администрацией")
}

// Actions возвращает журнал административных действий.
func (s *Service) Actions(ctx context.Context, adminID *int64, limit int) ([]*AdminAction, error) {
	if limit <= 0 {
		limit = defaultActionsLimit
	}
	return s.repo.Actions(ctx, adminID, limit)
}

// BlockedAccounts возвращает заблокированные счета с причинами.
func (s *Service) BlockedAccounts(ctx context.Context) ([]*accounts.Account, error) {
	return s.accounts.Blocked(ctx)
}
