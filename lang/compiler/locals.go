package compiler

import (
	"github.com/mna/ember/lang/token"
	"github.com/mna/ember/lang/value"
)

// beginScope enters a new lexical block, incrementing the current
// Compiler's scope depth.
func (p *Parser) beginScope() {
	p.compiler.scopeDepth++
	p.trace("begin_scope depth=%d", p.compiler.scopeDepth)
}

// endScope leaves the current lexical block: every local declared at the
// departing depth is popped off the value stack (OP_POP) and removed from
// the table, since slots are only ever freed contiguously from the top.
func (p *Parser) endScope() {
	c := p.compiler
	c.scopeDepth--
	p.trace("end_scope depth=%d", c.scopeDepth)

	for c.localCount > 0 && c.locals[c.localCount-1].depth > c.scopeDepth {
		p.emitOp(value.OP_POP)
		c.localCount--
	}
}

// addLocal appends a new Local for name, uninitialized (depth -1) until
// markInitialized is called. It reports a LimitError if the function's
// fixed-capacity local table is already full.
func (p *Parser) addLocal(name token.Token) {
	c := p.compiler
	if c.localCount == maxLocals {
		p.error("Too many local variables in function.")
		return
	}
	c.locals[c.localCount] = Local{name: name, depth: uninitialized}
	c.localCount++
}

// declareVariable declares the variable named by the previous token (the
// identifier just consumed by parseVariable). At global scope this is a
// no-op — globals are looked up by name at runtime, and spec.md preserves
// the source's deliberate choice to allow `var x; var x;` at that scope.
// Inside a block it checks for a name collision against every local
// declared in the *same* scope before adding the new, still-uninitialized
// Local.
func (p *Parser) declareVariable() {
	c := p.compiler
	if c.scopeDepth == 0 {
		return
	}

	name := p.previous
	for i := c.localCount - 1; i >= 0; i-- {
		local := c.locals[i]
		if local.depth != uninitialized && local.depth < c.scopeDepth {
			break
		}
		if identifiersEqual(p.src, name, local.name) {
			p.error("Variable with this name already declared in this scope.")
		}
	}
	p.trace("declare_variable %q depth=%d", p.lexeme(name), c.scopeDepth)
	p.addLocal(name)
}

// resolveLocal walks the current Compiler's locals from newest to oldest
// looking for name, returning its slot or -1 if not found (the caller then
// falls back to treating it as a global). Reading a local that is still
// mid-initializer (depth == -1) is reported as a ResolveError but its slot
// is still returned, for error recovery.
func (p *Parser) resolveLocal(c *Compiler, name token.Token) int {
	for i := c.localCount - 1; i >= 0; i-- {
		local := c.locals[i]
		if identifiersEqual(p.src, name, local.name) {
			if local.depth == uninitialized {
				p.error("Cannot read local variable in its own initializer.")
			}
			return i
		}
	}
	return -1
}

// markInitialized records that the most recently declared local is now
// fully initialized and safe to read, setting its depth to the current
// scope depth. It is a no-op at global scope (globals are defined via
// OP_DEFINE_GLOBAL instead, see defineVariable).
func (p *Parser) markInitialized() {
	c := p.compiler
	if c.scopeDepth == 0 {
		return
	}
	c.locals[c.localCount-1].depth = c.scopeDepth
	p.trace("mark_initialized slot=%d depth=%d", c.localCount-1, c.scopeDepth)
}

// identifiersEqual compares two tokens' underlying source slices
// byte-for-byte.
func identifiersEqual(src []byte, a, b token.Token) bool {
	if a.Length != b.Length {
		return false
	}
	return string(src[a.Start:a.Start+a.Length]) == string(src[b.Start:b.Start+b.Length])
}
