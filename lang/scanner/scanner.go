// Package scanner implements the lexer: it turns a source buffer into a
// stream of lang/token.Token values, one per call to Scan. It never raises
// errors directly; malformed input is reported as a token.ERROR token
// carrying the diagnostic message as its lexeme, leaving the decision of
// how (and whether) to report it to the caller (see lang/compiler's error
// reporter).
package scanner

import (
	"unicode"
	"unicode/utf8"

	"github.com/mna/ember/lang/token"
)

// Scanner tokenizes a source buffer on demand. The zero value is not usable;
// call Init first.
type Scanner struct {
	src  []byte
	line int

	// mutable scanning state
	cur rune // current character, -1 at end of input
	off int  // byte offset of cur
	roff int // byte offset just past cur
}

// Init prepares s to scan src from the beginning.
func (s *Scanner) Init(src []byte) {
	s.src = src
	s.line = 1
	s.off = 0
	s.roff = 0
	s.cur = ' '
	s.advance()
}

// peek returns the byte following the current character without advancing
// the scanner, or 0 at end of input.
func (s *Scanner) peek() byte {
	if s.roff < len(s.src) {
		return s.src[s.roff]
	}
	return 0
}

// advance reads the next rune into s.cur; s.cur == -1 means end of input.
func (s *Scanner) advance() {
	if s.cur == '\n' {
		s.line++
	}
	if s.roff >= len(s.src) {
		s.off = len(s.src)
		s.cur = -1
		return
	}

	s.off = s.roff
	r, w := rune(s.src[s.roff]), 1
	if r >= utf8.RuneSelf {
		r, w = utf8.DecodeRune(s.src[s.roff:])
	}
	s.roff += w
	s.cur = r
}

// advanceIf advances and returns true if the current character equals want.
func (s *Scanner) advanceIf(want rune) bool {
	if s.cur == want {
		s.advance()
		return true
	}
	return false
}

func (s *Scanner) skipWhitespaceAndComments() {
	for {
		switch s.cur {
		case ' ', '\t', '\r', '\n':
			s.advance()
		case '/':
			if s.peek() != '/' {
				return
			}
			for s.cur != '\n' && s.cur != -1 {
				s.advance()
			}
		default:
			return
		}
	}
}

// Scan returns the next token in the source. Once EOF is reached, every
// subsequent call keeps returning an EOF token.
func (s *Scanner) Scan() token.Token {
	s.skipWhitespaceAndComments()

	start := s.off
	line := s.line

	make := func(kind token.Kind) token.Token {
		return token.Token{Kind: kind, Start: start, Length: s.off - start, Line: line}
	}
	errTok := func(msg string) token.Token {
		return token.Token{Kind: token.ERROR, Start: start, Length: s.off - start, Line: line, Message: msg}
	}

	switch cur := s.cur; {
	case isAlpha(cur):
		return s.identifier(start, line)
	case isDigit(cur):
		return s.number(start, line)
	}

	cur := s.cur
	s.advance()
	switch cur {
	case -1:
		return make(token.EOF)
	case '(':
		return make(token.LEFT_PAREN)
	case ')':
		return make(token.RIGHT_PAREN)
	case '{':
		return make(token.LEFT_BRACE)
	case '}':
		return make(token.RIGHT_BRACE)
	case ',':
		return make(token.COMMA)
	case '.':
		return make(token.DOT)
	case '-':
		return make(token.MINUS)
	case '+':
		return make(token.PLUS)
	case ';':
		return make(token.SEMICOLON)
	case '*':
		return make(token.STAR)
	case '/':
		return make(token.SLASH)
	case '!':
		if s.advanceIf('=') {
			return make(token.BANG_EQUAL)
		}
		return make(token.BANG)
	case '=':
		if s.advanceIf('=') {
			return make(token.EQUAL_EQUAL)
		}
		return make(token.EQUAL)
	case '<':
		if s.advanceIf('=') {
			return make(token.LESS_EQUAL)
		}
		return make(token.LESS)
	case '>':
		if s.advanceIf('=') {
			return make(token.GREATER_EQUAL)
		}
		return make(token.GREATER)
	case '"':
		return s.string(start, line)
	}

	return errTok("Unexpected character.")
}

func (s *Scanner) identifier(start, line int) token.Token {
	for isAlpha(s.cur) || isDigit(s.cur) {
		s.advance()
	}
	lit := string(s.src[start:s.off])
	return token.Token{Kind: token.LookupKeyword(lit), Start: start, Length: s.off - start, Line: line}
}

func (s *Scanner) number(start, line int) token.Token {
	for isDigit(s.cur) {
		s.advance()
	}
	if s.cur == '.' && isDigit(rune(s.peek())) {
		s.advance()
		for isDigit(s.cur) {
			s.advance()
		}
	}
	return token.Token{Kind: token.NUMBER, Start: start, Length: s.off - start, Line: line}
}

func isAlpha(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
