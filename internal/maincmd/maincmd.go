// Package maincmd implements the command-line driver for the ember
// compiler: a process-facing collaborator that talks only to
// lang/compiler's Compile entry point, never to its internals, exactly as
// spec.md §1 scopes the compiler's external interface. Modeled directly on
// the teacher's own internal/maincmd package.
package maincmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	env "github.com/caarlos0/env/v6"
	"github.com/mna/mainer"
)

const binName = "ember"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] <command> <path>
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] <command> <path>
       %[1]s -h|--help
       %[1]s -v|--version

Single-pass bytecode compiler for the %[1]s scripting language.

The <command> can be one of:
       compile                   Compile the file and report any error;
                                 with -d/--debug >= 1, also disassemble
                                 every compiled function.
       tokenize                  Run only the lexer and print each token.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
       -d --debug <level>        Debug level 0-3 (see below). Can also be
                                 set with the EMBER_DEBUG environment
                                 variable; the flag takes precedence.

Debug levels:
       0   silent (default)
       1   disassemble each completed function
       2   also stream scanned token kinds
       3   also trace scope operations (begin/end scope, declarations)
`, binName)
)

// envConfig mirrors the subset of Cmd that may also be set via environment
// variables, parsed with github.com/caarlos0/env/v6 so an operator can
// export EMBER_DEBUG once instead of repeating -d on every invocation.
type envConfig struct {
	Debug int `env:"EMBER_DEBUG" envDefault:"0"`
}

type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`
	Debug   int  `flag:"d,debug"`

	debugSet bool

	args  []string
	cmdFn func(context.Context, mainer.Stdio, []string) error
}

func (c *Cmd) SetArgs(args []string) { c.args = args }

func (c *Cmd) SetFlags(flags map[string]bool) {
	c.debugSet = flags["debug"] || flags["d"]
}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}

	if !c.debugSet {
		var ec envConfig
		if err := env.Parse(&ec); err == nil {
			c.Debug = ec.Debug
		}
	}
	if c.Debug < 0 || c.Debug > 3 {
		return fmt.Errorf("invalid debug level: %d (must be 0-3)", c.Debug)
	}

	if len(c.args) == 0 {
		return errors.New("no command specified")
	}

	cmdName := c.args[0]
	commands := buildCmds(c)
	c.cmdFn = commands[cmdName]
	if c.cmdFn == nil {
		return fmt.Errorf("unknown command: %s", cmdName)
	}
	if len(c.args[1:]) == 0 {
		return fmt.Errorf("%s: a file path must be provided", cmdName)
	}
	return nil
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   false,
		EnvPrefix: binName + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success
	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	if err := c.cmdFn(ctx, stdio, c.args[1:]); err != nil {
		return mainer.Failure
	}
	return mainer.Success
}

// buildCmds mirrors the teacher's reflection-based command dispatch: any
// exported method with signature (context.Context, mainer.Stdio,
// []string) error becomes a command named after the method, lowercased.
func buildCmds(v interface{}) map[string]func(context.Context, mainer.Stdio, []string) error {
	cmds := make(map[string]func(context.Context, mainer.Stdio, []string) error)

	vv := reflect.ValueOf(v)
	vt := vv.Type()
	for i := 0; i < vt.NumMethod(); i++ {
		m := vt.Method(i)
		mt := m.Type
		if mt.NumIn() != 4 || mt.NumOut() != 1 {
			continue
		}
		if rt := mt.Out(0); rt.Kind() != reflect.Interface || rt.Name() != "error" {
			continue
		}
		if p0 := mt.In(0); p0.Kind() != reflect.Ptr || p0.Elem().Name() != "Cmd" {
			continue
		}
		if p1 := mt.In(1); p1.Kind() != reflect.Interface || p1.Name() != "Context" {
			continue
		}
		if p2 := mt.In(2); p2.Kind() != reflect.Struct || p2.Name() != "Stdio" {
			continue
		}
		if p3 := mt.In(3); p3.Kind() != reflect.Slice || p3.Elem().Name() != "string" {
			continue
		}
		cmds[strings.ToLower(m.Name)] = vv.Method(i).Interface().(func(context.Context, mainer.Stdio, []string) error)
	}
	return cmds
}
