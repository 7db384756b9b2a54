package games

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestLockedRandConcurrent(t *testing.T) {
	rng := NewLockedRand(1)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				if v := rng.Intn(guessRange); v < 0 || v >= guessRange {
					t.Errorf("Intn(%d) = %d вне диапазона", guessRange, v)
					return
				}
			}
		}()
	}
	wg.Wait()
}

// syncStore делает fakeStore пригодным для конкурентных раундов.
type syncStore struct {
	mu    sync.Mutex
	inner *fakeStore
}

func (s *syncStore) SettlePlay(ctx context.Context, userID int64, kind string, maxAttempts int, today time.Time, credit, debitCap int64, description string) (*Settlement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.SettlePlay(ctx, userID, kind, maxAttempts, today, credit, debitCap, description)
}

// Конкурентные раунды делят один генератор: каждый завершается
// без ошибок и списывает ровно одну попытку.
func TestPlayGuessConcurrent(t *testing.T) {
	const goroutines = 8
	const playsEach = 50

	store := &syncStore{inner: &fakeStore{balance: 1 << 40, attemptsLeft: goroutines * playsEach}}
	svc := NewService(
		store,
		&fakeLimiter{left: 3, max: 3},
		&fakeLimiter{left: 1, max: 1},
		GuessConfig{MaxAttempts: 3, Reward: 500, Penalty: 100},
		DiceConfig{MaxAttempts: 1, MinReward: 250, MaxReward: 2500},
		NewLockedRand(1),
	)

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < playsEach; i++ {
				res, err := svc.PlayGuess(context.Background(), 1, 5)
				if err != nil {
					t.Errorf("PlayGuess: %v", err)
					return
				}
				if res.Number < 1 || res.Number > guessRange {
					t.Errorf("Number = %d вне диапазона", res.Number)
					return
				}
			}
		}()
	}
	wg.Wait()

	if store.inner.calls != goroutines*playsEach {
		t.Fatalf("расчётов %d, want %d", store.inner.calls, goroutines*playsEach)
	}
	if store.inner.attemptsLeft != 0 {
		t.Fatalf("остаток попыток %d, want 0", store.inner.attemptsLeft)
	}
}
