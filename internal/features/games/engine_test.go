package games

import "testing"

func TestDiceReward(t *testing.T) {
	cfg := DiceConfig{MinReward: 250, MaxReward: 2500}

	tests := []struct {
		value int
		want  int64
	}{
		{1, 250},
		{2, 700},
		{3, 1150},
		{4, 1600},
		{5, 2050},
		{6, 2500},
	}
	for _, tt := range tests {
		if got := diceReward(tt.value, cfg); got != tt.want {
			t.Errorf("diceReward(%d) = %d, want %d", tt.value, got, tt.want)
		}
	}
}

func TestDiceRewardMonotonic(t *testing.T) {
	cfg := DiceConfig{MinReward: 100, MaxReward: 999}
	prev := diceReward(1, cfg)
	if prev != cfg.MinReward {
		t.Fatalf("diceReward(1) = %d, want %d", prev, cfg.MinReward)
	}
	for v := 2; v <= 6; v++ {
		cur := diceReward(v, cfg)
		if cur <= prev {
			t.Fatalf("diceReward(%d) = %d, не больше diceReward(%d) = %d", v, cur, v-1, prev)
		}
		prev = cur
	}
	if prev != cfg.MaxReward {
		t.Fatalf("diceReward(6) = %d, want %d", prev, cfg.MaxReward)
	}
}

func TestGuessPenalty(t *testing.T) {
	cfg := GuessConfig{Penalty: 100}

	tests := []struct {
		name    string
		balance int64
		want    int64
	}{
		{"баланс больше штрафа", 500, 100},
		{"баланс равен штрафу", 100, 100},
		{"баланс меньше штрафа", 40, 40},
		{"пустой счёт", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := guessPenalty(tt.balance, cfg); got != tt.want {
				t.Errorf("guessPenalty(%d) = %d, want %d", tt.balance, got, tt.want)
			}
		})
	}
}

func TestValidGuess(t *testing.T) {
	for _, g := range []int{1, 5, 10} {
		if !validGuess(g) {
			t.Errorf("validGuess(%d) = false, want true", g)
		}
	}
	for _, g := range []int{0, -1, 11, 100} {
		if validGuess(g) {
			t.Errorf("validGuess(%d) = true, want false", g)
		}
	}
}
