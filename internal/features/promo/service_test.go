package promo

import (
	"context"
	"errors"
	"testing"

	"github.com/Cisql/FKBBank/internal/common"
)

// fakeStore имитирует хранилище промокодов: код активируется ровно один
// раз, несуществующий и использованный коды неразличимы снаружи.
type fakeStore struct {
	codes   map[string]*PromoCode
	blocked map[int64]bool
	balance map[int64]int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		codes:   make(map[string]*PromoCode),
		blocked: make(map[int64]bool),
		balance: make(map[int64]int64),
	}
}

func (f *fakeStore) Create(_ context.Context, code string, amount int64, adminID *int64) error {
	if _, ok := f.codes[code]; ok {
		return errCodeCollision
	}
	f.codes[code] = &PromoCode{Code: code, Amount: amount, CreatedBy: adminID}
	return nil
}

func (f *fakeStore) Redeem(_ context.Context, code string, userID int64) (int64, error) {
	if f.blocked[userID] {
		return 0, common.NewBlockedError(nil)
	}
	p, ok := f.codes[code]
	if !ok || p.IsUsed {
		return 0, common.ErrPromoInvalid
	}
	p.IsUsed = true
	p.UsedBy = &userID
	f.balance[userID] += p.Amount
	return p.Amount, nil
}

func (f *fakeStore) List(_ context.Context, limit int) ([]*PromoCode, error) {
	var out []*PromoCode
	for _, p := range f.codes {
		out = append(out, p)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func newTestService(store *fakeStore) *Service {
	return NewService(store, Bounds{MinLength: 4, MaxLength: 16, DefaultLength: 8})
}

func TestIssueAndRedeem(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	code, err := svc.Issue(ctx, nil, 500, 8)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if len(code) != 8 {
		t.Fatalf("len(code) = %d, want 8", len(code))
	}

	amount, err := svc.Redeem(ctx, code, 42)
	if err != nil {
		t.Fatalf("Redeem: %v", err)
	}
	if amount != 500 {
		t.Fatalf("amount = %d, want 500", amount)
	}
	if store.balance[42] != 500 {
		t.Fatalf("баланс = %d, want 500", store.balance[42])
	}
}

// Ровно одна активация на код: вторая попытка — хоть тем же счётом,
// хоть другим — получает ErrPromoInvalid, баланс не меняется.
func TestRedeemExactlyOnce(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	code, err := svc.Issue(ctx, nil, 500, 8)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := svc.Redeem(ctx, code, 42); err != nil {
		t.Fatalf("первая активация: %v", err)
	}
	if _, err := svc.Redeem(ctx, code, 43); !errors.Is(err, common.ErrPromoInvalid) {
		t.Fatalf("вторая активация другим счётом: %v, want ErrPromoInvalid", err)
	}
	if _, err := svc.Redeem(ctx, code, 42); !errors.Is(err, common.ErrPromoInvalid) {
		t.Fatalf("повтор тем же счётом: %v, want ErrPromoInvalid", err)
	}

	if store.balance[42] != 500 || store.balance[43] != 0 {
		t.Fatalf("балансы 42=%d 43=%d, want 500 и 0", store.balance[42], store.balance[43])
	}
	if !store.codes[code].IsUsed {
		t.Fatal("код остался неиспользованным")
	}
}

func TestRedeemUnknownCode(t *testing.T) {
	svc := newTestService(newFakeStore())

	if _, err := svc.Redeem(context.Background(), "NOSUCHCODE", 42); !errors.Is(err, common.ErrPromoInvalid) {
		t.Fatalf("неизвестный код: %v, want ErrPromoInvalid", err)
	}
	// Пустой и пробельный вводы отсекаются до обращения к хранилищу
	for _, code := range []string{"", "   "} {
		if _, err := svc.Redeem(context.Background(), code, 42); !errors.Is(err, common.ErrPromoInvalid) {
			t.Fatalf("Redeem(%q): %v, want ErrPromoInvalid", code, err)
		}
	}
}

func TestRedeemNormalizesCode(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	code, err := svc.Issue(ctx, nil, 100, 8)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Регистр и пробелы по краям не мешают активации
	amount, err := svc.Redeem(ctx, "  "+lower(code)+"  ", 42)
	if err != nil {
		t.Fatalf("Redeem нормализованного кода: %v", err)
	}
	if amount != 100 {
		t.Fatalf("amount = %d, want 100", amount)
	}
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}

func TestRedeemBlockedAccount(t *testing.T) {
	store := newFakeStore()
	store.blocked[42] = true
	svc := newTestService(store)
	ctx := context.Background()

	code, err := svc.Issue(ctx, nil, 500, 8)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := svc.Redeem(ctx, code, 42); !errors.Is(err, common.ErrAccountBlocked) {
		t.Fatalf("заблокированный счёт: %v, want ErrAccountBlocked", err)
	}
	if store.codes[code].IsUsed {
		t.Fatal("код сгорел при отклонённой активации")
	}
}

func TestIssueDefaultLength(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	code, err := svc.Issue(context.Background(), nil, 500, 0)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if len(code) != 8 {
		t.Fatalf("len(code) = %d, want длину по умолчанию 8", len(code))
	}
}
