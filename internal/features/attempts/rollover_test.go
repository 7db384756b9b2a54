package attempts

import (
	"testing"
	"time"
)

var msk = time.FixedZone("MSK", 3*60*60)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, msk)
}

func TestRemainingAfterRollover(t *testing.T) {
	today := date(2024, 5, 11)

	tests := []struct {
		name string
		rec  *Record
		max  int
		want int
	}{
		{name: "нет записи — полный лимит", rec: nil, max: 3, want: 3},
		{
			name: "вчерашняя запись сбрасывается",
			rec:  &Record{AttemptsLeft: 0, LastAttemptDate: date(2024, 5, 10)},
			max:  3,
			want: 3,
		},
		{
			name: "сегодняшняя запись возвращается как есть",
			rec:  &Record{AttemptsLeft: 1, LastAttemptDate: today},
			max:  3,
			want: 1,
		},
		{
			name: "сегодняшний ноль остаётся нулём",
			rec:  &Record{AttemptsLeft: 0, LastAttemptDate: today},
			max:  3,
			want: 0,
		},
		{
			name: "запись из будущего тоже сбрасывается",
			rec:  &Record{AttemptsLeft: 0, LastAttemptDate: date(2024, 5, 12)},
			max:  1,
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RemainingAfterRollover(tt.rec, today, tt.max); got != tt.want {
				t.Fatalf("RemainingAfterRollover() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSameDay(t *testing.T) {
	tests := []struct {
		name string
		a, b time.Time
		want bool
	}{
		{name: "один день", a: date(2024, 5, 11), b: date(2024, 5, 11), want: true},
		{name: "разные дни", a: date(2024, 5, 11), b: date(2024, 5, 12), want: false},
		{name: "разные месяцы", a: date(2024, 5, 11), b: date(2024, 6, 11), want: false},
		{
			name: "время внутри дня не важно",
			a:    time.Date(2024, 5, 11, 23, 59, 0, 0, msk),
			b:    time.Date(2024, 5, 11, 0, 1, 0, 0, msk),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sameDay(tt.a, tt.b); got != tt.want {
				t.Fatalf("sameDay() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Монотонность в пределах дня: последовательные списания не увеличивают
// остаток, пол на нуле, и списанное + остаток == максимум.
func TestConsumeMonotonicWithinDay(t *testing.T) {
	const max = 3
	today := date(2024, 5, 11)
	rec := &Record{AttemptsLeft: max, LastAttemptDate: today}

	used := 0
	prev := max
	for i := 0; i < max+2; i++ {
		left := RemainingAfterRollover(rec, today, max) - 1
		if left < 0 {
			left = 0
		}
		if left > prev {
			t.Fatalf("остаток вырос внутри дня: %d -> %d", prev, left)
		}
		if rec.AttemptsLeft > 0 {
			used++
		}
		rec.AttemptsLeft = left
		prev = left

		if used+rec.AttemptsLeft != max {
			t.Fatalf("использовано %d + остаток %d != максимум %d", used, rec.AttemptsLeft, max)
		}
	}
	if rec.AttemptsLeft != 0 {
		t.Fatalf("после исчерпания остаток = %d, want 0", rec.AttemptsLeft)
	}
}
