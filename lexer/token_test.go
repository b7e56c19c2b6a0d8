package lexer

import "testing"

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{EOF, "EOF"},
		{Plus, "Plus"},
		{Minus, "Minus"},
		{Asterisk, "Asterisk"},
		{Slash, "Slash"},
		{Semicolon, "Semicolon"},
		{OpenParen, "OpenParen"},
		{CloseParen, "CloseParen"},
		{Number, "Number"},
		{Kind(9999), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
			}
		})
	}
}

func TestTokenString(t *testing.T) {
	if got := (Token{Kind: Number, Value: 42}).String(); got != "Number(42)" {
		t.Errorf("String() = %q, want %q", got, "Number(42)")
	}
	if got := (Token{Kind: Slash}).String(); got != "Slash" {
		t.Errorf("String() = %q, want %q", got, "Slash")
	}
}

func TestKindsExcludesEOF(t *testing.T) {
	for _, k := range Kinds() {
		if k == EOF {
			t.Fatal("Kinds() contains EOF")
		}
	}
	if len(Kinds()) != len(kindNames)-1 {
		t.Errorf("len(Kinds()) = %d, want %d", len(Kinds()), len(kindNames)-1)
	}
}
