package sanitizer

import "testing"

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already normal", "guest@example.com", "guest@example.com"},
		{"surrounding whitespace", "  guest@example.com \t", "guest@example.com"},
		{"mixed case", "Guest@Example.COM", "guest@example.com"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeEmail(tt.input); got != tt.want {
				t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeEmailIsIdempotent(t *testing.T) {
	once := NormalizeEmail(" Guest@Example.com ")
	twice := NormalizeEmail(once)

	if once != twice {
		t.Errorf("expected idempotent normalization, got %q then %q", once, twice)
	}
}
