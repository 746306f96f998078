// Package interner provides the string-interning authority mentioned but
// left opaque by spec.md §5 ("the only shared resource is the
// string-interning facility provided by the value layer"). It hands back a
// single canonical *value.String handle per distinct byte sequence, so
// identical string and identifier-name constants compiled within one
// invocation of the compiler share a handle instead of allocating a new one
// each time.
//
// Grounded on the teacher's own lang/machine/map.go, which backs its
// language-level Map value with the same github.com/dolthub/swiss table;
// here the table does the analogous job for compile-time string constants
// instead of a runtime value.
package interner

import (
	"github.com/dolthub/swiss"
	"github.com/mna/ember/lang/value"
)

// Interner de-duplicates string constants within the scope of a single
// Compile invocation. It is not safe for concurrent use — the compiler is
// single-threaded and synchronous (spec.md §5), and an Interner must never
// be shared across separate Compile calls.
type Interner struct {
	m *swiss.Map[string, *value.String]
}

// New returns an empty Interner with initial capacity for at least size
// distinct strings.
func New(size int) *Interner {
	if size < 1 {
		size = 1
	}
	return &Interner{m: swiss.NewMap[string, *value.String](uint32(size))}
}

// Intern returns the canonical *value.String handle for s, creating and
// storing one the first time s is seen.
func (in *Interner) Intern(s string) *value.String {
	if v, ok := in.m.Get(s); ok {
		return v
	}
	v := value.NewString(s)
	in.m.Put(s, v)
	return v
}

// Len reports the number of distinct strings interned so far.
func (in *Interner) Len() int { return int(in.m.Count()) }
