package lexer

import (
	"bufio"
	"io"
	"unicode"

	"github.com/ascentlang/ascentgo/token"
)

// Lexer pulls tokens out of a rune stream one at a time. It never fails:
// anything it cannot classify comes back as an ILLEGAL token and the stream
// ends with an explicit EOF marker.
type Lexer struct {
	reader *bufio.Reader
	line   int
	column int
}

func New(reader io.Reader) *Lexer {
	return &Lexer{
		reader: bufio.NewReader(reader),
		line:   1,
	}
}

func (l *Lexer) read() (rune, bool) {
	r, _, err := l.reader.ReadRune()
	if err != nil {
		return 0, false
	}
	l.column++
	return r, true
}

func (l *Lexer) backup() {
	if err := l.reader.UnreadRune(); err != nil {
		panic(err)
	}
	l.column--
}

func firstChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func otherChar(r rune) bool {
	return firstChar(r) || unicode.IsDigit(r)
}

func (l *Lexer) NextToken() token.Token {
	for {
		r, ok := l.read()
		if !ok {
			return token.Token{Kind: token.EOF, Line: l.line, Column: l.column + 1}
		}

		switch {
		case r == '\n':
			l.line++
			l.column = 0
		case unicode.IsSpace(r):
			// skip
		case r == '/':
			if n, ok := l.read(); ok {
				if n == '/' {
					l.skipLine()
					continue
				}
				l.backup()
			}
			return l.kinded(token.SLASH, "/")
		case unicode.IsDigit(r):
			return l.lexNumber(r)
		case firstChar(r):
			return l.lexIdent(r)
		default:
			return l.lexSymbol(r)
		}
	}
}

func (l *Lexer) skipLine() {
	for {
		r, ok := l.read()
		if !ok {
			return
		}
		if r == '\n' {
			l.line++
			l.column = 0
			return
		}
	}
}

func (l *Lexer) kinded(kind token.Kind, literal string) token.Token {
	return token.Token{
		Kind:    kind,
		Literal: literal,
		Line:    l.line,
		Column:  l.column - len(literal) + 1,
	}
}

// two consumes the next rune only if it matches want.
func (l *Lexer) two(want rune) bool {
	r, ok := l.read()
	if !ok {
		return false
	}
	if r == want {
		return true
	}
	l.backup()
	return false
}

func (l *Lexer) lexSymbol(r rune) token.Token {
	switch r {
	case '+':
		return l.kinded(token.PLUS, "+")
	case '-':
		if l.two('>') {
			return l.kinded(token.ARROW, "->")
		}
		return l.kinded(token.MINUS, "-")
	case '*':
		return l.kinded(token.ASTERISK, "*")
	case '%':
		return l.kinded(token.MODULUS, "%")
	case '^':
		return l.kinded(token.POW, "^")
	case '=':
		if l.two('=') {
			return l.kinded(token.EQEQ, "==")
		}
		return l.kinded(token.ASSIGN, "=")
	case '!':
		if l.two('=') {
			return l.kinded(token.NOTEQ, "!=")
		}
		return l.kinded(token.ILLEGAL, "!")
	case '<':
		if l.two('=') {
			return l.kinded(token.LTEQ, "<=")
		}
		return l.kinded(token.LT, "<")
	case '>':
		if l.two('=') {
			return l.kinded(token.GTEQ, ">=")
		}
		return l.kinded(token.GT, ">")
	case ':':
		return l.kinded(token.COLON, ":")
	case ';':
		return l.kinded(token.SEMICOLON, ";")
	case '(':
		return l.kinded(token.LPAREN, "(")
	case ')':
		return l.kinded(token.RPAREN, ")")
	case '{':
		return l.kinded(token.LBRACE, "{")
	case '}':
		return l.kinded(token.RBRACE, "}")
	}
	return l.kinded(token.ILLEGAL, string(r))
}

func (l *Lexer) lexNumber(first rune) token.Token {
	start := l.column
	lit := string(first)
	isFloat := false

	for {
		r, ok := l.read()
		if !ok {
			break
		}
		if unicode.IsDigit(r) {
			lit += string(r)
			continue
		}
		if r == '.' && !isFloat {
			isFloat = true
			lit += string(r)
			continue
		}
		l.backup()
		break
	}

	kind := token.INT
	if isFloat {
		kind = token.FLOAT
	}
	return token.Token{Kind: kind, Literal: lit, Line: l.line, Column: start}
}

func (l *Lexer) lexIdent(first rune) token.Token {
	start := l.column
	lit := string(first)

	for {
		r, ok := l.read()
		if !ok {
			break
		}
		if otherChar(r) {
			lit += string(r)
			continue
		}
		l.backup()
		break
	}

	return token.Token{
		Kind:    token.LookupIdent(lit),
		Literal: lit,
		Line:    l.line,
		Column:  start,
	}
}
