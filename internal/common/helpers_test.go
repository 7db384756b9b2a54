package common

import (
	"errors"
	"testing"
	"time"
)

func TestPluralizeCoins(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{1, "коин"},
		{2, "коина"},
		{4, "коина"},
		{5, "коинов"},
		{11, "коинов"},
		{12, "коинов"},
		{14, "коинов"},
		{21, "коин"},
		{22, "коина"},
		{100, "коинов"},
		{101, "коин"},
		{111, "коинов"},
		{0, "коинов"},
		{-3, "коина"},
	}

	for _, tt := range tests {
		if got := PluralizeCoins(tt.n); got != tt.want {
			t.Errorf("PluralizeCoins(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestDateIn(t *testing.T) {
	msk := time.FixedZone("MSK", 3*60*60)
	// 23:30 UTC — в Москве уже следующий день
	utcEvening := time.Date(2024, 5, 10, 23, 30, 0, 0, time.UTC)
	got := DateIn(utcEvening, msk)
	want := time.Date(2024, 5, 11, 0, 0, 0, 0, msk)
	if !got.Equal(want) {
		t.Fatalf("DateIn = %v, want %v", got, want)
	}
}

func TestBlockedError(t *testing.T) {
	reason := "спам"
	err := NewBlockedError(&reason)
	if !errors.Is(err, ErrAccountBlocked) {
		t.Fatal("BlockedError должен разворачиваться в ErrAccountBlocked")
	}
	var be *BlockedError
	if !errors.As(err, &be) || be.Reason != "спам" {
		t.Fatalf("причина блокировки потеряна: %v", err)
	}

	if !errors.Is(NewBlockedError(nil), ErrAccountBlocked) {
		t.Fatal("BlockedError без причины тоже должен совпадать с ErrAccountBlocked")
	}
}
