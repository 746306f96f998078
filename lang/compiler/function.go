package compiler

import "github.com/mna/ember/lang/value"

// beginFunction pushes a new Compiler for a nested function onto the
// compiler stack, becoming the active one (p.compiler). It reserves slot 0
// of the new function's local table the same way the top-level driver
// does: unnamed, always present, holding the function itself at runtime.
func (p *Parser) beginFunction(functionType FunctionType, name *value.String) {
	c := &Compiler{
		enclosing:    p.compiler,
		functionType: functionType,
		function: &value.Function{
			Name:  name,
			Chunk: &value.Chunk{},
		},
	}
	c.locals[0] = Local{depth: 0}
	c.localCount = 1
	p.compiler = c
}
