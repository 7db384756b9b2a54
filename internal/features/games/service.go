// Package games — service.go собирает раунд целиком: проверка лимита,
// жребий, расчёт исхода и одно обращение к репозиторию за атомарным
// проведением денег и попытки.
package games

import (
	"context"
	"fmt"
	"time"

	"github.com/Cisql/FKBBank/internal/common"
)

// Store — атомарное проведение раунда в БД. Реализуется *Repository,
// в тестах подменяется фальшивкой.
type Store interface {
	SettlePlay(ctx context.Context, userID int64, kind string, maxAttempts int, today time.Time, credit, debitCap int64, description string) (*Settlement, error)
}

// Service — игровой сервис: обе мини-игры и их дневные лимиты.
type Service struct {
	store      Store
	guessLimit Limiter
	diceLimit  Limiter
	guessCfg   GuessConfig
	diceCfg    DiceConfig
	rng        Rand
}

// NewService создаёт игровой сервис.
func NewService(store Store, guessLimit, diceLimit Limiter, guessCfg GuessConfig, diceCfg DiceConfig, rng Rand) *Service {
	return &Service{
		store:      store,
		guessLimit: guessLimit,
		diceLimit:  diceLimit,
		guessCfg:   guessCfg,
		diceCfg:    diceCfg,
		rng:        rng,
	}
}

// PlayGuess проводит раунд «Угадай число»: игрок называет число 1..10,
// банк загадывает своё. Совпадение — награда, промах — штраф не больше
// текущего баланса. Жребий тянется только после проверки лимита:
// исчерпанные попытки не должны тратить случайность и трогать счёт.
func (s *Service) PlayGuess(ctx context.Context, userID int64, guess int) (*GuessResult, error) {
	if !validGuess(guess) {
		return nil, common.ErrInvalidGuess
	}
	left, err := s.guessLimit.Remaining(ctx, userID)
	if err != nil {
		return nil, err
	}
	if left <= 0 {
		return nil, common.ErrAttemptsExhausted
	}

	number := s.rng.Intn(guessRange) + 1
	correct := number == guess

	var credit, debitCap int64
	var description string
	if correct {
		credit = s.guessCfg.Reward
		description = "Выигрыш в игре «Угадай число»"
	} else {
		debitCap = s.guessCfg.Penalty
		description = "Проигрыш в игре «Угадай число»"
	}

	st, err := s.store.SettlePlay(ctx, userID, KindGuess, s.guessLimit.Max(), s.guessLimit.Today(), credit, debitCap, description)
	if err != nil {
		return nil, err
	}

	res := &GuessResult{
		Correct:      correct,
		Number:       number,
		AttemptsLeft: st.AttemptsLeft,
		OldBalance:   st.OldBalance,
		NewBalance:   st.NewBalance,
	}
	if correct {
		res.Reward = st.Applied
	} else {
		res.Penalty = st.Applied
	}
	return res, nil
}

// PlayDice проводит бросок кубика. Любой исход — выигрыш: награда растёт
// линейно от единицы к шестёрке.
func (s *Service) PlayDice(ctx context.Context, userID int64) (*DiceResult, error) {
	left, err := s.diceLimit.Remaining(ctx, userID)
	if err != nil {
		return nil, err
	}
	if left <= 0 {
		return nil, common.ErrAttemptsExhausted
	}

	value := s.rng.Intn(diceSides) + 1
	reward := diceReward(value, s.diceCfg)
	description := fmt.Sprintf("Выигрыш в игре «Кубик»: выпало %d", value)

	st, err := s.store.SettlePlay(ctx, userID, KindDice, s.diceLimit.Max(), s.diceLimit.Today(), reward, 0, description)
	if err != nil {
		return nil, err
	}

	return &DiceResult{
		Value:        value,
		Reward:       st.Applied,
		AttemptsLeft: st.AttemptsLeft,
		OldBalance:   st.OldBalance,
		NewBalance:   st.NewBalance,
	}, nil
}

// Status возвращает остаток дневного лимита по виду игры.
func (s *Service) Status(ctx context.Context, userID int64, kind string) (*Status, error) {
	var lim Limiter
	switch kind {
	case KindGuess:
		lim = s.guessLimit
	case KindDice:
		lim = s.diceLimit
	default:
		return nil, fmt.Errorf("неизвестная игра: %s", kind)
	}
	left, err := lim.Remaining(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Status{AttemptsLeft: left, MaxAttempts: lim.Max()}, nil
}
