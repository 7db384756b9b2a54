// Package attempts — throttler.go: тонкая обёртка над репозиторием,
// привязанная к конкретной игре и её дневному лимиту.
package attempts

import (
	"context"
	"time"

	"github.com/Cisql/FKBBank/internal/common"
)

// Throttler выдаёт и списывает дневные попытки одного вида игры.
// Момент «сейчас» подменяется в тестах через nowFn.
type Throttler struct {
	repo  *Repository
	kind  string
	max   int
	loc   *time.Location
	nowFn func() time.Time
}

// NewThrottler создаёт счётчик попыток для игры kind с лимитом max в день.
// «Сегодня» считается в зоне loc — единой для всего банка.
func NewThrottler(repo *Repository, kind string, max int, loc *time.Location) *Throttler {
	return &Throttler{repo: repo, kind: kind, max: max, loc: loc, nowFn: time.Now}
}

// Kind возвращает вид игры.
func (t *Throttler) Kind() string { return t.kind }

// Max возвращает дневной лимит попыток.
func (t *Throttler) Max() int { return t.max }

// Today возвращает текущую календарную дату в зоне банка.
func (t *Throttler) Today() time.Time {
	return common.DateIn(t.nowFn(), t.loc)
}

// Remaining возвращает оставшиеся на сегодня попытки.
func (t *Throttler) Remaining(ctx context.Context, userID int64) (int, error) {
	return t.repo.Remaining(ctx, userID, t.kind, t.max, t.Today())
}

// Consume списывает n попыток и возвращает остаток (не ниже нуля).
func (t *Throttler) Consume(ctx context.Context, userID int64, n int) (int, error) {
	return t.repo.Consume(ctx, userID, t.kind, t.max, n, t.Today())
}
