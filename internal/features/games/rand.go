// Package games — rand.go: потокобезопасный источник случайности.
package games

import (
	"math/rand"
	"sync"
)

// lockedRand защищает *rand.Rand мьютексом: раунды играются из многих
// горутин одновременно, а math/rand.Rand сам по себе не потокобезопасен.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewLockedRand создаёт источник случайности, пригодный для
// конкурентных розыгрышей.
func NewLockedRand(seed int64) Rand {
	return &lockedRand{r: rand.New(rand.NewSource(seed))}
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}
