package compiler

import (
	"github.com/mna/ember/lang/token"
	"github.com/mna/ember/lang/value"
)

// declaration parses one top-level-or-block declaration: a `var` or `fun`
// declaration, or any other statement. It resynchronizes at the next
// statement boundary after a compile error so later errors can still be
// discovered (spec.md §7).
func (p *Parser) declaration() {
	switch {
	case p.match(token.VAR):
		p.varDeclaration()
	case p.match(token.FUN):
		p.funDeclaration()
	default:
		p.statement()
	}

	if p.panicMode {
		p.synchronize()
	}
}

func (p *Parser) statement() {
	switch {
	case p.match(token.PRINT):
		p.printStatement()
	case p.match(token.IF):
		p.ifStatement()
	case p.match(token.WHILE):
		p.whileStatement()
	case p.match(token.FOR):
		p.forStatement()
	case p.match(token.RETURN):
		p.returnStatement()
	case p.match(token.LEFT_BRACE):
		p.beginScope()
		p.block()
		p.endScope()
	default:
		p.expressionStatement()
	}
}

// block parses declarations until the matching `}` or EOF. The caller is
// responsible for the scope: a block statement wraps it in begin/endScope,
// while a function body's scope is opened by function() and discarded with
// its Compiler rather than closed with endScope.
func (p *Parser) block() {
	for !p.check(token.RIGHT_BRACE) && !p.check(token.EOF) {
		p.declaration()
	}
	p.consume(token.RIGHT_BRACE, "Expect '}' after block.")
}

// parseVariable consumes an identifier, declares it, and — for a global —
// returns the constant pool index of its interned name (unused for
// locals, whose identity is their slot, not a name constant).
func (p *Parser) parseVariable(errMsg string) byte {
	p.consume(token.IDENTIFIER, errMsg)

	p.declareVariable()
	if p.compiler.scopeDepth > 0 {
		return 0
	}
	return p.identifierConstant(p.previous)
}

// defineVariable makes a declared variable usable: for a local, it simply
// marks the most recent Local initialized (it already lives in its slot);
// for a global, it emits OP_DEFINE_GLOBAL with the name constant index
// produced earlier by parseVariable.
func (p *Parser) defineVariable(global byte) {
	if p.compiler.scopeDepth > 0 {
		p.markInitialized()
		return
	}
	p.emitOpByte(value.OP_DEFINE_GLOBAL, global)
}

func (p *Parser) varDeclaration() {
	global := p.parseVariable("Expect variable name.")

	if p.match(token.EQUAL) {
		p.expression()
	} else {
		p.emitOp(value.OP_NIL)
	}
	p.consume(token.SEMICOLON, "Expect ';' after variable declaration.")

	p.defineVariable(global)
}

// funDeclaration parses `fun name(params) { body }`. The name is declared
// and immediately marked initialized (before the body is compiled) so the
// function can call itself recursively.
func (p *Parser) funDeclaration() {
	global := p.parseVariable("Expect function name.")
	p.markInitialized()
	p.function(TypeFunction)
	p.defineVariable(global)
}

// function compiles the parameter list and body of a function declaration
// into its own nested Compiler/Chunk, then wraps the completed function as
// a constant in the *outer* chunk (component D, spec.md §4.F).
func (p *Parser) function(functionType FunctionType) {
	name := p.interner.Intern(p.lexeme(p.previous))
	p.beginFunction(functionType, name)
	p.beginScope()

	p.consume(token.LEFT_PAREN, "Expect '(' after function name.")
	if !p.check(token.RIGHT_PAREN) {
		for {
			p.compiler.function.Arity++
			if p.compiler.function.Arity > 255 {
				p.errorAtCurrent("Can't have more than 255 parameters.")
			}
			constant := p.parseVariable("Expect parameter name.")
			p.defineVariable(constant)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RIGHT_PAREN, "Expect ')' after parameters.")
	p.consume(token.LEFT_BRACE, "Expect '{' before function body.")
	p.block()

	fn := p.endCompiler()
	p.emitConstant(fn)
}

func (p *Parser) expressionStatement() {
	p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after expression.")
	p.emitOp(value.OP_POP)
}

func (p *Parser) printStatement() {
	p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after value.")
	p.emitOp(value.OP_PRINT)
}

func (p *Parser) returnStatement() {
	if p.compiler.functionType == TypeScript {
		p.error("Cannot return from top-level code.")
	}

	if p.match(token.SEMICOLON) {
		p.emitReturn()
		return
	}
	p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after return value.")
	p.emitOp(value.OP_RETURN)
}

func (p *Parser) ifStatement() {
	p.consume(token.LEFT_PAREN, "Expect '(' after 'if'.")
	p.expression()
	p.consume(token.RIGHT_PAREN, "Expect ')' after condition.")

	thenJump := p.emitJump(value.OP_JUMP_IF_FALSE)
	p.emitOp(value.OP_POP)
	p.statement()

	elseJump := p.emitJump(value.OP_JUMP)

	p.patchJump(thenJump)
	p.emitOp(value.OP_POP)

	if p.match(token.ELSE) {
		p.statement()
	}
	p.patchJump(elseJump)
}

func (p *Parser) whileStatement() {
	loopStart := len(p.currentChunk().Code)

	p.consume(token.LEFT_PAREN, "Expect '(' after 'while'.")
	p.expression()
	p.consume(token.RIGHT_PAREN, "Expect ')' after condition.")

	exitJump := p.emitJump(value.OP_JUMP_IF_FALSE)
	p.emitOp(value.OP_POP)
	p.statement()
	p.emitLoop(loopStart)

	p.patchJump(exitJump)
	p.emitOp(value.OP_POP)
}

// forStatement desugars `for (init; cond; incr) body` to the equivalent
// while-loop bytecode shape, per spec.md §4.F: the whole construct opens
// its own scope (so a `var` in init is scoped to the loop), and when an
// increment clause is present the condition jumps over it on the first
// pass while the loop-back target moves to the increment's start.
func (p *Parser) forStatement() {
	p.beginScope()
	p.consume(token.LEFT_PAREN, "Expect '(' after 'for'.")

	switch {
	case p.match(token.SEMICOLON):
		// no initializer
	case p.match(token.VAR):
		p.varDeclaration()
	default:
		p.expressionStatement()
	}

	loopStart := len(p.currentChunk().Code)

	exitJump := -1
	if !p.match(token.SEMICOLON) {
		p.expression()
		p.consume(token.SEMICOLON, "Expect ';' after loop condition.")
		exitJump = p.emitJump(value.OP_JUMP_IF_FALSE)
		p.emitOp(value.OP_POP)
	}

	if !p.match(token.RIGHT_PAREN) {
		bodyJump := p.emitJump(value.OP_JUMP)

		incrStart := len(p.currentChunk().Code)
		p.expression()
		p.emitOp(value.OP_POP)
		p.consume(token.RIGHT_PAREN, "Expect ')' after for clauses.")

		p.emitLoop(loopStart)
		loopStart = incrStart
		p.patchJump(bodyJump)
	}

	p.statement()
	p.emitLoop(loopStart)

	if exitJump != -1 {
		p.patchJump(exitJump)
		p.emitOp(value.OP_POP)
	}

	p.endScope()
}
