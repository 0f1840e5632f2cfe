package token

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestLookupIdent(t *testing.T) {
	tests := []struct {
		ident string
		want  Kind
	}{
		{"var", VAR},
		{"fn", FN},
		{"ret", RET},
		{"if", IF},
		{"else", ELSE},
		{"true", TRUE},
		{"false", FALSE},

		// alternate spellings
		{"let", VAR},
		{"as", COLON},
		{"eq", ASSIGN},
		{"qq", SEMICOLON},
		{"default", ELSE},
		{"pyascent_function", FN},
		{"pyascent_return", RET},
		{"returns_a", ARROW},
		{"pyascent_check", IF},
		{"pyascent_fallback", ELSE},

		// reserved type names
		{"int", TYPE},
		{"flo", TYPE},

		{"count", IDENT},
		{"Int", IDENT},
		{"flox", IDENT},
	}

	for _, test := range tests {
		be.Equal(t, LookupIdent(test.ident), test.want)
	}
}

func TestKindString(t *testing.T) {
	be.Equal(t, EOF.String(), "EOF")
	be.Equal(t, ARROW.String(), "ARROW")
	be.Equal(t, TYPE.String(), "TYPE")
}

func TestTokenString(t *testing.T) {
	tok := Token{Kind: IDENT, Literal: "a", Line: 3, Column: 7}
	be.Equal(t, tok.String(), "Token[IDENT : a : Line 3 : Position 7]")
}
