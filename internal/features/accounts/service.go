// Package accounts — service.go содержит бизнес-логику работы со счетами.
package accounts

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Service управляет счетами пользователей.
type Service struct {
	repo         *Repository
	welcomeBonus int64
}

// NewService создаёт сервис счетов.
// welcomeBonus — сколько начислить при первой регистрации.
func NewService(repo *Repository, welcomeBonus int64) *Service {
	return &Service{repo: repo, welcomeBonus: welcomeBonus}
}

// CreateOrTouch регистрирует счёт при первом обращении или обновляет профиль.
// Повторные вызовы баланс не меняют.
func (s *Service) CreateOrTouch(ctx context.Context, userID int64, fields DisplayFields) (*Account, error) {
	acc, err := s.repo.CreateOrTouch(ctx, userID, fields, s.welcomeBonus)
	if err != nil {
		return nil, err
	}

	if acc.Balance == s.welcomeBonus && acc.CreatedAt.Equal(acc.LastActive) {
		log.WithFields(log.Fields{
			"user_id": userID,
			"bonus":   s.welcomeBonus,
		}).Info("Открыт новый счёт")
	}

	return acc, nil
}

// Get возвращает счёт по ID пользователя.
func (s *Service) Get(ctx context.Context, userID int64) (*Account, error) {
	return s.repo.Get(ctx, userID)
}

// GetByHandle возвращает счёт по @username. Ведущий @ отбрасывается.
func (s *Service) GetByHandle(ctx context.Context, handle string) (*Account, error) {
	return s.repo.GetByUsername(ctx, NormalizeHandle(handle))
}

// List возвращает страницу счетов для админки.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*Account, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}

// Search ищет счета по запросу: числовой ID, @username или подстрока имени.
func (s *Service) Search(ctx context.Context, query string) ([]*Account, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	// Число — пробуем как ID пользователя
	if id, ok := parseID(query); ok {
		if found, err := s.repo.SearchByID(ctx, id); err != nil || len(found) > 0 {
			return found, err
		}
	}

	// @username — точное совпадение
	if strings.HasPrefix(query, "@") {
		acc, err := s.repo.GetByUsername(ctx, NormalizeHandle(query))
		if err == nil {
			return []*Account{acc}, nil
		}
	}

	// Иначе — частичное совпадение по имени, фамилии или username
	return s.repo.SearchByPattern(ctx, query, 20)
}

// Stats возвращает сводную статистику по счетам.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	return s.repo.Stats(ctx)
}

// Blocked возвращает все заблокированные счета.
func (s *Service) Blocked(ctx context.Context) ([]*Account, error) {
	return s.repo.Blocked(ctx)
}

// NormalizeHandle убирает ведущий @ и пробелы из username.
func NormalizeHandle(handle string) string {
	return strings.TrimPrefix(strings.TrimSpace(handle), "@")
}

func parseID(s string) (int64, bool) {
	var id int64
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		id = id*10 + int64(r-'0')
	}
	if s == "" {
		return 0, false
	}
	return id, true
}
