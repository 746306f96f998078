package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/mna/ember/lang/scanner"
	"github.com/mna/ember/lang/token"
)

// Tokenize implements the `tokenize` command: it runs only the lexer over
// the named source file and prints one line per token to stdout, in the
// same "line kind 'lexeme'" shape as the compiler's own -d/--debug=2 token
// trace (see lang/compiler.Parser.advance).
func (c *Cmd) Tokenize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	for _, path := range args {
		if err := tokenizeFile(stdio, path); err != nil {
			fmt.Fprintf(stdio.Stderr, "%s: %s\n", path, err)
			return err
		}
	}
	return nil
}

func tokenizeFile(stdio mainer.Stdio, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var s scanner.Scanner
	s.Init(src)
	for {
		tok := s.Scan()
		fmt.Fprintf(stdio.Stdout, "%4d %-12s '%s'\n", tok.Line, tok.Kind, tok.Lexeme(src))
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}
