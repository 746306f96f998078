// Package value implements the abstract value taxonomy the compiler may
// place in a chunk's constant pool: nil, boolean, double-precision number,
// a heap-allocated string handle, and a compiled function object. It is
// intentionally thin — everything a running virtual machine would need
// beyond this (arithmetic, truthiness, equality, collections) is out of
// scope for the compiler and is left to that external collaborator; this
// package only gives the compiler something concrete to append to a
// Chunk's constant pool and to print while disassembling.
package value

import "strconv"

// Value is implemented by every constant the compiler may emit into a
// chunk's constant pool.
type Value interface {
	String() string
	Type() string
}

// Nil is the value of the `nil` literal. It carries no state.
type Nil struct{}

func (Nil) String() string { return "nil" }
func (Nil) Type() string   { return "nil" }

// Bool is the value of the `true`/`false` literals.
type Bool bool

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}
func (Bool) Type() string { return "bool" }

// Number is the value of a numeric literal, stored as a double.
type Number float64

func (n Number) String() string { return strconv.FormatFloat(float64(n), 'g', -1, 64) }
func (Number) Type() string     { return "number" }

// String is a heap-allocated, interned string handle. Two String constants
// with identical contents compiled in the same invocation share a single
// handle (see internal/interner), so pointer identity implies content
// equality for strings produced through the interner.
type String struct {
	s string
}

// NewString wraps s in a String handle. Prefer going through an
// *interner.Interner so that identical contents share one handle; this
// constructor exists for values the interner itself does not own (e.g. in
// tests).
func NewString(s string) *String { return &String{s: s} }

func (s *String) String() string { return s.s }
func (*String) Type() string     { return "string" }

// Raw returns the string's underlying Go string.
func (s *String) Raw() string { return s.s }

// Function is a compiled function object: an optional name (nil for the
// top-level script), an arity, and its own owned Chunk.
type Function struct {
	Name  *String // nil for the top-level script
	Arity int
	Chunk *Chunk
}

func (f *Function) String() string {
	if f.Name == nil {
		return "<script>"
	}
	return "<fn " + f.Name.Raw() + ">"
}
func (*Function) Type() string { return "function" }
