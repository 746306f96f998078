// Package compiler implements the hard part of the language toolchain: a
// hand-written lexer-driven, Pratt-style precedence-climbing parser that
// emits bytecode directly as it parses, with no intermediate tree, a
// per-function scope table that distinguishes globals from locals by slot
// index, and the jump-patching bookkeeping for control-flow constructs.
// Parsing drives emission, emission drives scope bookkeeping, and scope
// bookkeeping influences which opcodes get emitted; see compiler.go for the
// glue, locals.go for the scope table, rules.go for the Pratt dispatch
// table, and expr.go/stmt.go for the expression and statement forms
// themselves.
package compiler

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mna/ember/internal/interner"
	"github.com/mna/ember/lang/scanner"
	"github.com/mna/ember/lang/token"
	"github.com/mna/ember/lang/value"
)

// Debug levels accepted by Compile, per spec.md §6.4.
const (
	DebugNone       = 0 // silent
	DebugDisasm     = 1 // disassemble each completed function
	DebugTokens     = 2 // also stream token kinds as they are scanned
	DebugScopeTrace = 3 // also trace scope operations
)

// FunctionType distinguishes the implicit top-level script function from a
// user-declared function, the one place the compiler's behavior depends on
// which kind of function it is currently building (return-from-top-level
// is an error; see (*Parser).returnStatement).
type FunctionType int

const (
	TypeScript FunctionType = iota
	TypeFunction
)

const maxLocals = 256

// Compiler holds the per-function compilation state: the function being
// built, a fixed-capacity local-variable table, the current lexical scope
// depth, and a link to the enclosing function's Compiler (forming a stack
// during nested function compilation, per spec.md's design notes §9).
type Compiler struct {
	enclosing *Compiler

	function     *value.Function
	functionType FunctionType

	locals     [maxLocals]Local
	localCount int
	scopeDepth int
}

// Local is a single entry in a Compiler's local-variable table: the
// declaring token (so name comparisons use the original source slice) and
// its depth. Globals are never locals; depth 0 appears only on the
// reserved, unnamed slot 0 that every function's table starts with; -1 means
// declared but still evaluating its initializer; any other value is the
// lexical nesting depth at which the local becomes visible.
type Local struct {
	name  token.Token
	depth int
}

const uninitialized = -1

// Parser holds the process-wide state for one Compile invocation: the
// current and previous tokens, error/panic-mode flags, and a pointer to the
// innermost Compiler currently being built.
type Parser struct {
	src     []byte
	scanner scanner.Scanner

	current  token.Token
	previous token.Token

	hadError  bool
	panicMode bool
	errors    ErrorList

	compiler *Compiler
	interner *interner.Interner

	debugLevel int
	debugOut   io.Writer
}

// Compile compiles source into a top-level script Function. On success it
// returns the function and a nil error; if any compile error was
// encountered, it returns (nil, error) — the caller (the out-of-scope VM)
// must refuse to execute a nil result, even though emission continues
// through errors so that later ones can still be discovered (spec.md §7).
//
// debugLevel selects the optional tracing described in spec.md §6.4: 0 is
// silent, 1 disassembles each completed function, 2 additionally streams
// scanned token kinds, and 3 additionally traces scope operations. Tracing
// output goes to os.Stderr.
func Compile(source string, debugLevel int) (*value.Function, error) {
	p := &Parser{
		src:        []byte(source),
		interner:   interner.New(16),
		debugLevel: debugLevel,
		debugOut:   os.Stderr,
	}
	p.scanner.Init(p.src)

	p.compiler = &Compiler{functionType: TypeScript}
	p.compiler.function = &value.Function{Chunk: &value.Chunk{}}
	// Slot 0 is always reserved (holds the function itself; unnamed).
	p.compiler.locals[0] = Local{depth: 0}
	p.compiler.localCount = 1

	p.advance()
	for !p.match(token.EOF) {
		p.declaration()
	}

	fn := p.endCompiler()
	if p.hadError {
		return nil, p.errors.Err()
	}
	return fn, nil
}

// advance moves to the next non-error token, reporting every TOKEN_ERROR
// the scanner produces along the way.
func (p *Parser) advance() {
	p.previous = p.current

	for {
		p.current = p.scanner.Scan()
		if p.debugLevel >= DebugTokens {
			fmt.Fprintf(p.debugOut, "%4d %-12s '%s'\n", p.current.Line, p.current.Kind, p.current.Lexeme(p.src))
		}
		if p.current.Kind != token.ERROR {
			break
		}
		p.errorAtCurrent(p.current.Message)
	}
}

// check reports whether the current token has the given kind.
func (p *Parser) check(kind token.Kind) bool { return p.current.Kind == kind }

// match consumes the current token and returns true if it has the given
// kind; otherwise it leaves the token stream untouched and returns false.
func (p *Parser) match(kind token.Kind) bool {
	if !p.check(kind) {
		return false
	}
	p.advance()
	return true
}

// consume advances past the current token if it has the given kind,
// otherwise reports message at the current token.
func (p *Parser) consume(kind token.Kind, message string) {
	if p.current.Kind == kind {
		p.advance()
		return
	}
	p.errorAtCurrent(message)
}

func (p *Parser) lexeme(tok token.Token) string { return tok.Lexeme(p.src) }

func (p *Parser) errorAtCurrent(message string) { p.errorAt(p.current, message) }
func (p *Parser) error(message string)          { p.errorAt(p.previous, message) }

// errorAt is the single error-reporting choke point (spec.md §7): while in
// panic mode, further errors on the same token are suppressed to avoid
// cascades.
func (p *Parser) errorAt(tok token.Token, message string) {
	if p.panicMode {
		return
	}
	p.panicMode = true

	td := tokenDesc{
		line:    tok.Line,
		lexeme:  p.lexeme(tok),
		isEOF:   tok.Kind == token.EOF,
		isError: tok.Kind == token.ERROR,
	}
	p.errors.Add(tok.Line, fmt.Sprintf("[line %d] Error%s: %s", tok.Line, locus(td), message))
	p.hadError = true
}

// synchronize discards tokens until a statement boundary is found: either
// the previous token was ';' or the current token begins a statement
// keyword (spec.md §7's exact list).
func (p *Parser) synchronize() {
	p.panicMode = false

	for p.current.Kind != token.EOF {
		if p.previous.Kind == token.SEMICOLON {
			return
		}
		switch p.current.Kind {
		case token.CLASS, token.FUN, token.VAR, token.FOR, token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}
		p.advance()
	}
}

// --- emission helpers ---

func (p *Parser) currentChunk() *value.Chunk { return p.compiler.function.Chunk }

func (p *Parser) emitByte(b byte) { p.currentChunk().WriteByte(b, p.previous.Line) }
func (p *Parser) emitOp(op value.Opcode) {
	p.currentChunk().WriteOp(op, p.previous.Line)
}
func (p *Parser) emitOps(op1, op2 value.Opcode) {
	p.emitOp(op1)
	p.emitOp(op2)
}
func (p *Parser) emitOpByte(op value.Opcode, arg byte) {
	p.emitOp(op)
	p.emitByte(arg)
}

// emitJump emits a jump opcode followed by a two-byte placeholder operand
// and returns the placeholder's offset, to be patched later by patchJump.
func (p *Parser) emitJump(op value.Opcode) int {
	p.emitOp(op)
	p.emitByte(0xff)
	p.emitByte(0xff)
	return len(p.currentChunk().Code) - 2
}

// patchJump backfills the placeholder at offset with the distance from just
// past the placeholder to the current end of the chunk (spec.md §4.G).
func (p *Parser) patchJump(offset int) {
	jump := len(p.currentChunk().Code) - offset - 2
	if jump > 0xffff {
		p.error("Too much code to jump over.")
		return
	}
	p.currentChunk().Patch(offset, byte(jump>>8))
	p.currentChunk().Patch(offset+1, byte(jump))
}

// emitLoop emits OP_LOOP with the backward distance to loopStart.
func (p *Parser) emitLoop(loopStart int) {
	p.emitOp(value.OP_LOOP)

	offset := len(p.currentChunk().Code) - loopStart + 2
	if offset > 0xffff {
		p.error("Loop body too large.")
		return
	}
	p.emitByte(byte(offset >> 8))
	p.emitByte(byte(offset))
}

func (p *Parser) emitReturn() {
	p.emitOp(value.OP_NIL)
	p.emitOp(value.OP_RETURN)
}

// makeConstant appends v to the current chunk's constant pool and returns
// its index, reporting a LimitError if the pool has grown past what
// OP_CONSTANT's single-byte operand can address.
func (p *Parser) makeConstant(v value.Value) byte {
	idx := p.currentChunk().AddConstant(v)
	if idx > 255 {
		p.error("Too many constants in one chunk.")
		return 0
	}
	return byte(idx)
}

func (p *Parser) emitConstant(v value.Value) {
	p.emitOpByte(value.OP_CONSTANT, p.makeConstant(v))
}

// parseNumberLiteral converts the previous token's lexeme to a Number constant.
func (p *Parser) parseNumberLiteral() value.Number {
	f, _ := strconv.ParseFloat(p.lexeme(p.previous), 64)
	return value.Number(f)
}

func (p *Parser) trace(format string, args ...interface{}) {
	if p.debugLevel >= DebugScopeTrace {
		fmt.Fprintf(p.debugOut, "scope: "+format+"\n", args...)
	}
}

// endCompiler finishes the current function's code (always appending an
// implicit OP_NIL/OP_RETURN, even after an explicit return — expression
// statements always pop, so the chunk never has a trailing stack item),
// disassembles it if requested, and
// pops the Compiler stack back to the enclosing one.
func (p *Parser) endCompiler() *value.Function {
	p.emitReturn()
	fn := p.compiler.function

	// Only disassemble from the outermost call: Chunk.Disassemble already
	// recurses into function constants, so disassembling every nested
	// function's own endCompiler call would print it twice.
	if p.debugLevel >= DebugDisasm && !p.hadError && p.compiler.enclosing == nil {
		fn.Chunk.Disassemble(p.debugOut, "<script>")
	}

	p.compiler = p.compiler.enclosing
	return fn
}
