package scanner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/ember/lang/scanner"
	"github.com/mna/ember/lang/token"
)

func scanAll(src string) []token.Token {
	var s scanner.Scanner
	s.Init([]byte(src))

	var toks []token.Token
	for {
		tok := s.Scan()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func TestScanPunctuationAndOperators(t *testing.T) {
	toks := scanAll("(){},.-+;*/! != = == < <= > >=")
	want := []token.Kind{
		token.LEFT_PAREN, token.RIGHT_PAREN, token.LEFT_BRACE, token.RIGHT_BRACE,
		token.COMMA, token.DOT, token.MINUS, token.PLUS, token.SEMICOLON,
		token.STAR, token.SLASH, token.BANG, token.BANG_EQUAL, token.EQUAL,
		token.EQUAL_EQUAL, token.LESS, token.LESS_EQUAL, token.GREATER,
		token.GREATER_EQUAL, token.EOF,
	}
	require.Len(t, toks, len(want))
	for i, k := range want {
		assert.Equalf(t, k, toks[i].Kind, "token %d", i)
	}
}

func TestScanKeywordsAndIdentifiers(t *testing.T) {
	src := "and class orbit foo_bar _x1 while123"
	toks := scanAll(src)
	want := []token.Kind{token.AND, token.CLASS, token.IDENTIFIER, token.IDENTIFIER, token.IDENTIFIER, token.IDENTIFIER, token.EOF}
	require.Len(t, toks, len(want))
	for i, k := range want {
		assert.Equalf(t, k, toks[i].Kind, "token %d", i)
	}
	assert.Equal(t, "orbit", toks[2].Lexeme([]byte(src)))
}

func TestScanNumbers(t *testing.T) {
	src := "123 3.1415 0.5"
	toks := scanAll(src)
	require.Len(t, toks, 4)
	for i := 0; i < 3; i++ {
		assert.Equal(t, token.NUMBER, toks[i].Kind)
	}
	assert.Equal(t, "3.1415", toks[1].Lexeme([]byte(src)))
}

func TestScanDotNotFollowedByDigitIsNotPartOfNumber(t *testing.T) {
	src := "123.method"
	toks := scanAll(src)
	require.GreaterOrEqual(t, len(toks), 3)
	assert.Equal(t, token.NUMBER, toks[0].Kind)
	assert.Equal(t, "123", toks[0].Lexeme([]byte(src)))
	assert.Equal(t, token.DOT, toks[1].Kind)
	assert.Equal(t, token.IDENTIFIER, toks[2].Kind)
}

func TestScanStrings(t *testing.T) {
	src := `"hello world"`
	toks := scanAll(src)
	require.Len(t, toks, 2)
	assert.Equal(t, token.STRING, toks[0].Kind)
	assert.Equal(t, `"hello world"`, toks[0].Lexeme([]byte(src)))
}

func TestScanMultilineString(t *testing.T) {
	src := "\"line1\nline2\""
	toks := scanAll(src)
	require.Len(t, toks, 2)
	assert.Equal(t, token.STRING, toks[0].Kind)
	// the token after the string should observe the advanced line count.
	assert.Equal(t, 2, toks[1].Line)
}

func TestScanUnterminatedString(t *testing.T) {
	toks := scanAll(`"never closed`)
	require.Len(t, toks, 2)
	assert.Equal(t, token.ERROR, toks[0].Kind)
	assert.Equal(t, "Unterminated string.", toks[0].Message)
}

func TestScanUnexpectedCharacter(t *testing.T) {
	toks := scanAll("@")
	require.Len(t, toks, 2)
	assert.Equal(t, token.ERROR, toks[0].Kind)
	assert.Equal(t, "Unexpected character.", toks[0].Message)
}

func TestScanSkipsLineComments(t *testing.T) {
	src := "var x = 1; // this is a comment\nvar y = 2;"
	toks := scanAll(src)
	// no ERROR tokens should appear, and the line should advance past the comment.
	for _, tok := range toks {
		assert.NotEqual(t, token.ERROR, tok.Kind)
	}
	var foundY bool
	for _, tok := range toks {
		if tok.Kind == token.IDENTIFIER && tok.Lexeme([]byte(src)) == "y" {
			foundY = true
			assert.Equal(t, 2, tok.Line)
		}
	}
	assert.True(t, foundY)
}

func TestScanTracksLineNumbers(t *testing.T) {
	src := "var a = 1;\nvar b = 2;\nvar c = 3;"
	toks := scanAll(src)
	var lines []int
	for _, tok := range toks {
		if tok.Kind == token.VAR {
			lines = append(lines, tok.Line)
		}
	}
	assert.Equal(t, []int{1, 2, 3}, lines)
}

func TestScanEOFIsSticky(t *testing.T) {
	var s scanner.Scanner
	s.Init([]byte(""))
	first := s.Scan()
	second := s.Scan()
	assert.Equal(t, token.EOF, first.Kind)
	assert.Equal(t, token.EOF, second.Kind)
}
