package compiler

import "github.com/mna/ember/lang/token"

// Precedence levels, ascending. A binary operator's infix action recurses
// into parsePrecedence at its own level + 1, making every binary operator
// left-associative.
type Precedence int

const (
	PrecNone       Precedence = iota
	PrecAssignment            // =
	PrecOr                    // or
	PrecAnd                   // and
	PrecEquality              // == !=
	PrecComparison            // < > <= >=
	PrecTerm                  // + -
	PrecFactor                // * /
	PrecUnary                 // ! -
	PrecCall                  // ()
	PrecPrimary
)

// parseFn is the shape of every prefix and infix action in the dispatch
// table: it receives the parser and the can-assign flag computed once by
// parsePrecedence and threaded through every infix action uniformly (only
// `variable` uses it; this is harmless and kept for uniformity, per
// spec.md's design notes).
type parseFn func(p *Parser, canAssign bool)

// ParseRule is the {prefix, infix, precedence} triple a Pratt dispatcher
// looks up by token kind.
type ParseRule struct {
	prefix     parseFn
	infix      parseFn
	precedence Precedence
}

// rules is the static Pratt table (spec.md §6.2), built once at package
// init time and indexed by token.Kind. Kinds not explicitly listed keep the
// zero ParseRule: {nil, nil, PrecNone}.
var rules [token.NumKinds]ParseRule

func rule(kind token.Kind, prefix, infix parseFn, prec Precedence) {
	rules[kind] = ParseRule{prefix: prefix, infix: infix, precedence: prec}
}

func init() {
	rule(token.LEFT_PAREN, (*Parser).grouping, (*Parser).call, PrecCall)
	rule(token.MINUS, (*Parser).unary, (*Parser).binary, PrecTerm)
	rule(token.PLUS, nil, (*Parser).binary, PrecTerm)
	rule(token.SLASH, nil, (*Parser).binary, PrecFactor)
	rule(token.STAR, nil, (*Parser).binary, PrecFactor)
	rule(token.BANG, (*Parser).unary, nil, PrecNone)
	rule(token.BANG_EQUAL, nil, (*Parser).binary, PrecEquality)
	rule(token.EQUAL_EQUAL, nil, (*Parser).binary, PrecEquality)
	rule(token.GREATER, nil, (*Parser).binary, PrecComparison)
	rule(token.GREATER_EQUAL, nil, (*Parser).binary, PrecComparison)
	rule(token.LESS, nil, (*Parser).binary, PrecComparison)
	rule(token.LESS_EQUAL, nil, (*Parser).binary, PrecComparison)
	rule(token.IDENTIFIER, (*Parser).variable, nil, PrecNone)
	rule(token.STRING, (*Parser).string, nil, PrecNone)
	rule(token.NUMBER, (*Parser).number, nil, PrecNone)
	rule(token.AND, nil, (*Parser).and_, PrecAnd)
	rule(token.OR, nil, (*Parser).or_, PrecOr)
	rule(token.FALSE, (*Parser).literal, nil, PrecNone)
	rule(token.NIL, (*Parser).literal, nil, PrecNone)
	rule(token.TRUE, (*Parser).literal, nil, PrecNone)
}

func getRule(kind token.Kind) ParseRule { return rules[kind] }

// parsePrecedence is the driver of the whole expression grammar (spec.md
// §4.E): it consumes one prefix token, then keeps consuming infix
// operators whose precedence is at least minPrec.
func (p *Parser) parsePrecedence(minPrec Precedence) {
	p.advance()
	prefixRule := getRule(p.previous.Kind).prefix
	if prefixRule == nil {
		p.error("Expect expression.")
		return
	}

	canAssign := minPrec <= PrecAssignment
	prefixRule(p, canAssign)

	for minPrec <= getRule(p.current.Kind).precedence {
		p.advance()
		infixRule := getRule(p.previous.Kind).infix
		infixRule(p, canAssign)
	}

	if canAssign && p.match(token.EQUAL) {
		p.error("Invalid assignment target.")
	}
}

func (p *Parser) expression() { p.parsePrecedence(PrecAssignment) }
