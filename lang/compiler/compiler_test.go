package compiler_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/ember/lang/compiler"
	"github.com/mna/ember/lang/value"
)

func TestCompilePrintArithmeticExpression(t *testing.T) {
	fn, err := compiler.Compile("print 1 + 2;", compiler.DebugNone)
	require.NoError(t, err)

	want := []value.Opcode{
		value.OP_CONSTANT, // 1
		value.OP_CONSTANT, // 2
		value.OP_ADD,
		value.OP_PRINT,
		value.OP_NIL,
		value.OP_RETURN,
	}
	assertOpcodes(t, fn.Chunk, want)
	require.Len(t, fn.Chunk.Constants, 2)
	assert.Equal(t, value.Number(1), fn.Chunk.Constants[0])
	assert.Equal(t, value.Number(2), fn.Chunk.Constants[1])
}

func TestCompileGlobalVariable(t *testing.T) {
	fn, err := compiler.Compile("var x = 3; print x;", compiler.DebugNone)
	require.NoError(t, err)

	want := []value.Opcode{
		value.OP_CONSTANT, // 3
		value.OP_DEFINE_GLOBAL,
		value.OP_GET_GLOBAL,
		value.OP_PRINT,
		value.OP_NIL,
		value.OP_RETURN,
	}
	assertOpcodes(t, fn.Chunk, want)
}

func TestCompileBlockLocalSetAndTrailingPop(t *testing.T) {
	fn, err := compiler.Compile("{ var x = 1; x = 2; }", compiler.DebugNone)
	require.NoError(t, err)

	want := []value.Opcode{
		value.OP_CONSTANT, // 1, initializer
		value.OP_CONSTANT, // 2
		value.OP_SET_LOCAL,
		value.OP_POP, // expression statement pop of the assignment's value
		value.OP_POP, // endScope pop of the local itself
		value.OP_NIL,
		value.OP_RETURN,
	}
	assertOpcodes(t, fn.Chunk, want)
}

func TestCompileIfElseJumpPatching(t *testing.T) {
	fn, err := compiler.Compile(`if (true) { print 1; } else { print 2; }`, compiler.DebugNone)
	require.NoError(t, err)

	code := fn.Chunk.Code
	// OP_TRUE; OP_JUMP_IF_FALSE <jump1>; OP_POP; <then>; OP_JUMP <jump2>; OP_POP; <else>
	require.True(t, len(code) > 0)
	assert.Equal(t, value.OP_TRUE, value.Opcode(code[0]))
	assert.Equal(t, value.OP_JUMP_IF_FALSE, value.Opcode(code[1]))

	jumpOperand := fn.Chunk.ReadUint16(2)
	thenStart := 5
	elseJumpOffset := thenStart + int(jumpOperand) - 3 // offset of the OP_JUMP's own operand
	_ = elseJumpOffset

	// the condition's OP_JUMP_IF_FALSE must land exactly at the else branch's
	// leading OP_POP, just past the then branch's closing OP_JUMP.
	target := 4 + int(jumpOperand)
	assert.Equal(t, value.OP_POP, value.Opcode(code[target]))
}

func TestCompileForLoopUsesLoopTargetingIncrement(t *testing.T) {
	fn, err := compiler.Compile(`for (var i = 0; i < 3; i = i + 1) print i;`, compiler.DebugNone)
	require.NoError(t, err)

	var sawLoop bool
	afterJump := make(map[int]bool)
	lastLoopTarget := -1
	for offset := 0; offset < len(fn.Chunk.Code); {
		op := value.Opcode(fn.Chunk.Code[offset])
		if op == value.OP_JUMP {
			afterJump[offset+3] = true
		}
		if op == value.OP_LOOP {
			sawLoop = true
			jump := fn.Chunk.ReadUint16(offset + 1)
			target := offset + 3 - int(jump)
			assert.GreaterOrEqual(t, target, 0)
			assert.Less(t, target, offset)
			lastLoopTarget = target
		}
		offset += 1 + op.OperandSize()
	}
	assert.True(t, sawLoop, "expected an OP_LOOP instruction in the compiled for-loop")
	// the body's OP_LOOP goes back to the increment, which starts right after
	// the OP_JUMP that skips it on the first pass.
	assert.True(t, afterJump[lastLoopTarget], "body OP_LOOP should target the increment")
}

func TestCompileDuplicateGlobalIsAllowed(t *testing.T) {
	_, err := compiler.Compile("var a; var a;", compiler.DebugNone)
	assert.NoError(t, err)
}

func TestCompileDuplicateLocalInSameScopeErrors(t *testing.T) {
	_, err := compiler.Compile("{ var a; var a; }", compiler.DebugNone)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Variable with this name already declared in this scope.")
}

func TestCompileErrorMessageFormat(t *testing.T) {
	_, err := compiler.Compile("var;", compiler.DebugNone)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "[line 1] Error at ';'"), err.Error())
}

func TestCompileUnterminatedStringReportsErrorLocus(t *testing.T) {
	_, err := compiler.Compile(`print "oops;`, compiler.DebugNone)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[line 1] Error: Unterminated string.")
}

func TestCompileUnexpectedEOFReportsAtEnd(t *testing.T) {
	_, err := compiler.Compile("print 1", compiler.DebugNone)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at end")
}

func TestCompileReturnFromTopLevelErrors(t *testing.T) {
	_, err := compiler.Compile("return 1;", compiler.DebugNone)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Cannot return from top-level code.")
}

func TestCompileFunctionDeclarationNestsChunk(t *testing.T) {
	fn, err := compiler.Compile(`fun add(a, b) { return a + b; } print add(1, 2);`, compiler.DebugNone)
	require.NoError(t, err)

	var found *value.Function
	for _, k := range fn.Chunk.Constants {
		if nested, ok := k.(*value.Function); ok {
			found = nested
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, 2, found.Arity)
	assert.Equal(t, "add", found.Name.Raw())
}

func TestCompileInvalidAssignmentTarget(t *testing.T) {
	_, err := compiler.Compile("1 + 2 = 3;", compiler.DebugNone)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid assignment target.")
}

func TestCompileSynchronizeRecoversAndFindsLaterErrors(t *testing.T) {
	_, err := compiler.Compile("var ; var ;", compiler.DebugNone)
	require.Error(t, err)
	// both the first and the resynchronized second declaration's errors
	// should be reported, not just the first.
	assert.Equal(t, 2, strings.Count(err.Error(), "[line 1] Error"))
}

func assertOpcodes(t *testing.T, chunk *value.Chunk, want []value.Opcode) {
	t.Helper()

	var got []value.Opcode
	for offset := 0; offset < len(chunk.Code); {
		op := value.Opcode(chunk.Code[offset])
		got = append(got, op)
		offset += 1 + op.OperandSize()
	}
	require.Equal(t, want, got)
}
