package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/mna/ember/lang/compiler"
)

// Compile implements the `compile` command: it reads the named source file
// and runs it through lang/compiler.Compile, printing any compile errors to
// stderr. With -d/--debug >= 1 the compiler also writes a disassembly of
// every completed function to stderr as a side effect of compilation.
func (c *Cmd) Compile(ctx context.Context, stdio mainer.Stdio, args []string) error {
	for _, path := range args {
		if err := compileFile(stdio, path, c.Debug); err != nil {
			fmt.Fprintf(stdio.Stderr, "%s: %s\n", path, err)
			return err
		}
	}
	return nil
}

func compileFile(stdio mainer.Stdio, path string, debugLevel int) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	_, err = compiler.Compile(string(src), debugLevel)
	return err
}
