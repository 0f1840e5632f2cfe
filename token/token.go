package token

import "fmt"

type Kind int

const (
	EOF Kind = iota
	ILLEGAL

	IDENT
	INT
	FLOAT

	PLUS
	MINUS
	ASTERISK
	SLASH
	MODULUS
	POW

	ASSIGN

	LT
	GT
	LTEQ
	GTEQ
	EQEQ
	NOTEQ

	COLON
	SEMICOLON
	ARROW
	LPAREN
	RPAREN
	LBRACE
	RBRACE

	VAR
	FN
	RET
	IF
	ELSE
	TRUE
	FALSE

	TYPE
)

func (k Kind) String() string {
	data := map[Kind]string{
		EOF:       "EOF",
		ILLEGAL:   "ILLEGAL",
		IDENT:     "IDENT",
		INT:       "INT",
		FLOAT:     "FLOAT",
		PLUS:      "PLUS",
		MINUS:     "MINUS",
		ASTERISK:  "ASTERISK",
		SLASH:     "SLASH",
		MODULUS:   "MODULUS",
		POW:       "POW",
		ASSIGN:    "ASSIGN",
		LT:        "LT",
		GT:        "GT",
		LTEQ:      "LTEQ",
		GTEQ:      "GTEQ",
		EQEQ:      "EQEQ",
		NOTEQ:     "NOTEQ",
		COLON:     "COLON",
		SEMICOLON: "SEMICOLON",
		ARROW:     "ARROW",
		LPAREN:    "LPAREN",
		RPAREN:    "RPAREN",
		LBRACE:    "LBRACE",
		RBRACE:    "RBRACE",
		VAR:       "VAR",
		FN:        "FN",
		RET:       "RET",
		IF:        "IF",
		ELSE:      "ELSE",
		TRUE:      "TRUE",
		FALSE:     "FALSE",
		TYPE:      "TYPE",
	}
	if s, ok := data[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is the smallest lexical unit: a kind, its literal text, and the
// source position it started at.
type Token struct {
	Kind    Kind
	Literal string
	Line    int
	Column  int
}

func (t Token) String() string {
	return fmt.Sprintf("Token[%s : %s : Line %d : Position %d]", t.Kind, t.Literal, t.Line, t.Column)
}

var keywords = map[string]Kind{
	"var":   VAR,
	"fn":    FN,
	"ret":   RET,
	"if":    IF,
	"else":  ELSE,
	"true":  TRUE,
	"false": FALSE,
}

// altKeywords are the alternate spellings the original surface accepts.
var altKeywords = map[string]Kind{
	"let":     VAR,
	"as":      COLON,
	"eq":      ASSIGN,
	"qq":      SEMICOLON,
	"default": ELSE,

	"pyascent_function": FN,
	"pyascent_return":   RET,
	"returns_a":         ARROW,
	"pyascent_check":    IF,
	"pyascent_fallback": ELSE,
}

// typeNames is the reserved set of primitive type names.
var typeNames = map[string]bool{
	"int": true,
	"flo": true,
}

// LookupIdent resolves an identifier literal to its keyword, alternate
// keyword, or type kind, falling back to IDENT.
func LookupIdent(ident string) Kind {
	if k, ok := keywords[ident]; ok {
		return k
	}
	if k, ok := altKeywords[ident]; ok {
		return k
	}
	if typeNames[ident] {
		return TYPE
	}
	return IDENT
}
