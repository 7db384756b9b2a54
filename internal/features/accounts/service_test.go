package accounts

import "testing"

func TestNormalizeHandle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"@ivan", "ivan"},
		{"ivan", "ivan"},
		{"  @ivan  ", "ivan"},
		{"@", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeHandle(tt.in); got != tt.want {
			t.Errorf("NormalizeHandle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		in     string
		want   int64
		wantOK bool
	}{
		{"42", 42, true},
		{"0", 0, true},
		{"123456789", 123456789, true},
		{"", 0, false},
		{"12a", 0, false},
		{"@42", 0, false},
		{"-5", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseID(tt.in)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("parseID(%q) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name string
		acc  Account
		want string
	}{
		{name: "username wins", acc: Account{Username: "ivan", FirstName: "Иван"}, want: "@ivan"},
		{name: "first and last", acc: Account{FirstName: "Иван", LastName: "Петров"}, want: "Иван Петров"},
		{name: "first only", acc: Account{FirstName: "Иван"}, want: "Иван"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.acc.DisplayName(); got != tt.want {
				t.Fatalf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}
