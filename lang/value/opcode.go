package value

import "fmt"

// Opcode is a single bytecode instruction. The encoding of each opcode's
// operand (if any) is part of the wire contract with the virtual machine
// (spec.md §6.3) and must not change: OP_CONSTANT and the local/global
// variants take a single byte operand, OP_CALL takes a single byte argument
// count, and the three jump opcodes take a big-endian 16-bit operand.
type Opcode byte

//nolint:revive
const (
	OP_CONSTANT Opcode = iota
	OP_NIL
	OP_TRUE
	OP_FALSE
	OP_POP
	OP_GET_LOCAL
	OP_SET_LOCAL
	OP_GET_GLOBAL
	OP_DEFINE_GLOBAL
	OP_SET_GLOBAL
	OP_EQUAL
	OP_GREATER
	OP_LESS
	OP_ADD
	OP_SUBTRACT
	OP_MULTIPLY
	OP_DIVIDE
	OP_NOT
	OP_NEGATE
	OP_PRINT
	OP_JUMP
	OP_JUMP_IF_FALSE
	OP_LOOP
	OP_CALL
	OP_RETURN

	maxOpcode
)

var opcodeNames = [...]string{
	OP_CONSTANT:      "OP_CONSTANT",
	OP_NIL:           "OP_NIL",
	OP_TRUE:          "OP_TRUE",
	OP_FALSE:         "OP_FALSE",
	OP_POP:           "OP_POP",
	OP_GET_LOCAL:     "OP_GET_LOCAL",
	OP_SET_LOCAL:     "OP_SET_LOCAL",
	OP_GET_GLOBAL:    "OP_GET_GLOBAL",
	OP_DEFINE_GLOBAL: "OP_DEFINE_GLOBAL",
	OP_SET_GLOBAL:    "OP_SET_GLOBAL",
	OP_EQUAL:         "OP_EQUAL",
	OP_GREATER:       "OP_GREATER",
	OP_LESS:          "OP_LESS",
	OP_ADD:           "OP_ADD",
	OP_SUBTRACT:      "OP_SUBTRACT",
	OP_MULTIPLY:      "OP_MULTIPLY",
	OP_DIVIDE:        "OP_DIVIDE",
	OP_NOT:           "OP_NOT",
	OP_NEGATE:        "OP_NEGATE",
	OP_PRINT:         "OP_PRINT",
	OP_JUMP:          "OP_JUMP",
	OP_JUMP_IF_FALSE: "OP_JUMP_IF_FALSE",
	OP_LOOP:          "OP_LOOP",
	OP_CALL:          "OP_CALL",
	OP_RETURN:        "OP_RETURN",
}

func (op Opcode) String() string {
	if op < maxOpcode {
		return opcodeNames[op]
	}
	return fmt.Sprintf("illegal opcode (%d)", byte(op))
}

// byteOperandOps is the set of opcodes whose single operand is a raw byte:
// a constant pool index, a local slot, or (for OP_CALL) an argument count.
var byteOperandOps = map[Opcode]bool{
	OP_CONSTANT:      true,
	OP_GET_LOCAL:     true,
	OP_SET_LOCAL:     true,
	OP_GET_GLOBAL:    true,
	OP_DEFINE_GLOBAL: true,
	OP_SET_GLOBAL:    true,
	OP_CALL:          true,
}

// jumpOps is the set of opcodes whose operand is a big-endian 16-bit jump
// distance (spec.md §4.G).
var jumpOps = map[Opcode]bool{
	OP_JUMP:          true,
	OP_JUMP_IF_FALSE: true,
	OP_LOOP:          true,
}

// HasByteOperand reports whether op is followed by a single-byte operand.
func (op Opcode) HasByteOperand() bool { return byteOperandOps[op] }

// HasJumpOperand reports whether op is followed by a 2-byte jump operand.
func (op Opcode) HasJumpOperand() bool { return jumpOps[op] }

// OperandSize returns the number of bytes occupied by op's operand, 0 if it
// takes none.
func (op Opcode) OperandSize() int {
	switch {
	case op.HasJumpOperand():
		return 2
	case op.HasByteOperand():
		return 1
	default:
		return 0
	}
}
