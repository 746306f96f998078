package compiler

import (
	"github.com/mna/ember/lang/token"
	"github.com/mna/ember/lang/value"
)

// number emits the previous token (a NUMBER literal) as a constant.
func (p *Parser) number(canAssign bool) {
	p.emitConstant(p.parseNumberLiteral())
}

// string emits the previous token (a STRING literal, quotes included) as
// an interned constant with the surrounding quotes stripped.
func (p *Parser) string(canAssign bool) {
	lit := p.lexeme(p.previous)
	p.emitConstant(p.interner.Intern(lit[1 : len(lit)-1]))
}

// literal emits the fixed opcode for `true`, `false`, or `nil`.
func (p *Parser) literal(canAssign bool) {
	switch p.previous.Kind {
	case token.FALSE:
		p.emitOp(value.OP_FALSE)
	case token.NIL:
		p.emitOp(value.OP_NIL)
	case token.TRUE:
		p.emitOp(value.OP_TRUE)
	}
}

// grouping parses `(` expression `)`; it emits nothing of its own.
func (p *Parser) grouping(canAssign bool) {
	p.expression()
	p.consume(token.RIGHT_PAREN, "Expect ')' after expression.")
}

// unary parses a prefix `!` or `-` applied to the operand that follows it,
// parsed at PrecUnary so that e.g. `-a + b` negates only `a`.
func (p *Parser) unary(canAssign bool) {
	opKind := p.previous.Kind
	p.parsePrecedence(PrecUnary)

	switch opKind {
	case token.BANG:
		p.emitOp(value.OP_NOT)
	case token.MINUS:
		p.emitOp(value.OP_NEGATE)
	}
}

// binary parses the right operand of an infix operator at its own
// precedence + 1 (left associativity, spec.md §4.E) and emits the
// corresponding opcode(s).
func (p *Parser) binary(canAssign bool) {
	opKind := p.previous.Kind
	rule := getRule(opKind)
	p.parsePrecedence(rule.precedence + 1)

	switch opKind {
	case token.BANG_EQUAL:
		p.emitOps(value.OP_EQUAL, value.OP_NOT)
	case token.EQUAL_EQUAL:
		p.emitOp(value.OP_EQUAL)
	case token.GREATER:
		p.emitOp(value.OP_GREATER)
	case token.GREATER_EQUAL:
		p.emitOps(value.OP_LESS, value.OP_NOT)
	case token.LESS:
		p.emitOp(value.OP_LESS)
	case token.LESS_EQUAL:
		p.emitOps(value.OP_GREATER, value.OP_NOT)
	case token.PLUS:
		p.emitOp(value.OP_ADD)
	case token.MINUS:
		p.emitOp(value.OP_SUBTRACT)
	case token.STAR:
		p.emitOp(value.OP_MULTIPLY)
	case token.SLASH:
		p.emitOp(value.OP_DIVIDE)
	}
}

// and_ implements short-circuiting `and`: if the left operand is falsy, the
// jump skips the right operand entirely, leaving the falsy left value as
// the result.
func (p *Parser) and_(canAssign bool) {
	endJump := p.emitJump(value.OP_JUMP_IF_FALSE)
	p.emitOp(value.OP_POP)
	p.parsePrecedence(PrecAnd)
	p.patchJump(endJump)
}

// or_ implements short-circuiting `or`: if the left operand is truthy, a
// second jump bypasses the right operand.
func (p *Parser) or_(canAssign bool) {
	elseJump := p.emitJump(value.OP_JUMP_IF_FALSE)
	endJump := p.emitJump(value.OP_JUMP)

	p.patchJump(elseJump)
	p.emitOp(value.OP_POP)

	p.parsePrecedence(PrecOr)
	p.patchJump(endJump)
}

// call parses a parenthesized, comma-separated argument list following a
// callee already on the stack, and emits OP_CALL with the argument count.
func (p *Parser) call(canAssign bool) {
	argCount := p.argumentList()
	p.emitOpByte(value.OP_CALL, argCount)
}

func (p *Parser) argumentList() byte {
	var count int
	if !p.check(token.RIGHT_PAREN) {
		for {
			p.expression()
			if count == 255 {
				p.error("Can't have more than 255 arguments.")
			}
			count++
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RIGHT_PAREN, "Expect ')' after arguments.")
	return byte(count)
}

// variable resolves the previous token (an IDENTIFIER) as a local or
// global and emits the matching get/set pair, parsing a right-hand
// expression first if canAssign and an `=` follows.
func (p *Parser) variable(canAssign bool) {
	p.namedVariable(p.previous, canAssign)
}

func (p *Parser) namedVariable(name token.Token, canAssign bool) {
	var getOp, setOp value.Opcode
	slot := p.resolveLocal(p.compiler, name)
	if slot != -1 {
		getOp, setOp = value.OP_GET_LOCAL, value.OP_SET_LOCAL
	} else {
		slot = int(p.identifierConstant(name))
		getOp, setOp = value.OP_GET_GLOBAL, value.OP_SET_GLOBAL
	}

	if canAssign && p.match(token.EQUAL) {
		p.expression()
		p.emitOpByte(setOp, byte(slot))
	} else {
		p.emitOpByte(getOp, byte(slot))
	}
}

// identifierConstant interns name's lexeme and adds it to the constant
// pool, returning its index for use as an OP_*_GLOBAL operand.
func (p *Parser) identifierConstant(name token.Token) byte {
	return p.makeConstant(p.interner.Intern(p.lexeme(name)))
}
