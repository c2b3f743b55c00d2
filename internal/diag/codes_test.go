package diag

import "testing"

func TestParseCode(t *testing.T) {
	tests := []struct {
		in   string
		want Code
		ok   bool
	}{
		{"LEX1001", LexUnknownChar, true},
		{" lit1502 ", LitBadEscape, true},
		{"PRJ5002", ProjConfigUnknown, true},
		{"E0000", 0, false},
		{"LEX9999", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseCode(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseCode(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
