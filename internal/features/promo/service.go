// Package promo — service.go содержит бизнес-логику промокодов.
package promo

import (
	"context"
	"errors"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/Cisql/FKBBank/internal/common"
)

// Bounds — допустимый диапазон длины кода и длина по умолчанию.
type Bounds struct {
	MinLength     int
	MaxLength     int
	DefaultLength int
}

// Store — хранилище промокодов. Реализуется *Repository,
// в тестах подменяется фальшивкой.
type Store interface {
	Create(ctx context.Context, code string, amount int64, adminID *int64) error
	Redeem(ctx context.Context, code string, userID int64) (int64, error)
	List(ctx context.Context, limit int) ([]*PromoCode, error)
}

// Service управляет выпуском и активацией промокодов.
type Service struct {
	repo   Store
	bounds Bounds
}

// NewService создаёт сервис промокодов.
func NewService(repo Store, bounds Bounds) *Service {
	return &Service{repo: repo, bounds: bounds}
}

// issueRetries — сколько раз перегенерировать код при совпадении
// с существующим. При алфавите в 31 символ и длине от 4 коллизии
// возможны разве что на коротких кодах в большой базе.
const issueRetries = 5

// Issue выпускает новый промокод на указанную сумму.
// adminID — кто выпускает (nil для системных начислений),
// length == 0 — длина по умолчанию.
func (s *Service) Issue(ctx context.Context, adminID *int64, amount int64, length int) (string, error) {
	if length == 0 {
		length = s.bounds.DefaultLength
	}
	if err := validateIssue(amount, length, s.bounds); err != nil {
		return "", err
	}

	for i := 0; i < issueRetries; i++ {
		code, err := generateCode(length)
		if err != nil {
			return "", err
		}

		err = s.repo.Create(ctx, code, amount, adminID)
		if errors.Is(err, errCodeCollision) {
			continue
		}
		if err != nil {
			return "", err
		}

		log.WithFields(log.Fields{
			"amount": amount,
			"length": length,
		}).Info("Выпущен промокод")
		return code, nil
	}

	return "", errCodeCollision
}

// Redeem активирует промокод и возвращает начисленную сумму.
// Ровно одна активация на код: повторная попытка получает ErrPromoInvalid.
func (s *Service) Redeem(ctx context.Context, code string, userID int64) (int64, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return 0, common.ErrPromoInvalid
	}

	amount, err := s.repo.Redeem(ctx, code, userID)
	if err != nil {
		return 0, err
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"amount":  amount,
	}).Info("Промокод активирован")
	return amount, nil
}

// List возвращает последние промокоды для админки.
func (s *Service) List(ctx context.Context, limit int) ([]*PromoCode, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.repo.List(ctx, limit)
}

// validateIssue проверяет параметры выпуска промокода.
func validateIssue(amount int64, length int, b Bounds) error {
	if amount <= 0 {
		return common.ErrInvalidAmount
	}
	if length < b.MinLength || length > b.MaxLength {
		return common.ErrPromoLength
	}
	return nil
}
