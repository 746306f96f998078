package value_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/ember/lang/value"
)

func TestChunkWriteAndRead(t *testing.T) {
	var c value.Chunk
	c.WriteOp(value.OP_NIL, 1)
	c.WriteOp(value.OP_CONSTANT, 2)
	c.WriteByte(0, 2)

	require.Equal(t, []byte{byte(value.OP_NIL), byte(value.OP_CONSTANT), 0}, c.Code)
	require.Equal(t, []int{1, 2, 2}, c.Lines)
}

func TestChunkAddConstant(t *testing.T) {
	var c value.Chunk
	idx0 := c.AddConstant(value.Number(1))
	idx1 := c.AddConstant(value.Number(2))
	assert.Equal(t, 0, idx0)
	assert.Equal(t, 1, idx1)
	assert.Equal(t, value.Number(1), c.Constants[0])
}

func TestChunkPatchAndReadUint16(t *testing.T) {
	var c value.Chunk
	c.WriteOp(value.OP_JUMP, 1)
	c.WriteByte(0xff, 1)
	c.WriteByte(0xff, 1)
	offset := len(c.Code) - 2

	c.Patch(offset, 0x01)
	c.Patch(offset+1, 0x02)

	assert.Equal(t, uint16(0x0102), c.ReadUint16(offset))
}

func TestChunkDisassembleSimple(t *testing.T) {
	var c value.Chunk
	idx := c.AddConstant(value.Number(42))
	c.WriteOp(value.OP_CONSTANT, 1)
	c.WriteByte(byte(idx), 1)
	c.WriteOp(value.OP_RETURN, 1)

	var buf bytes.Buffer
	c.Disassemble(&buf, "<script>")

	out := buf.String()
	assert.Contains(t, out, "== <script> ==")
	assert.Contains(t, out, "OP_CONSTANT")
	assert.Contains(t, out, "42")
	assert.Contains(t, out, "OP_RETURN")
}

func TestChunkDisassembleRecursesIntoFunctionConstants(t *testing.T) {
	var inner value.Chunk
	inner.WriteOp(value.OP_NIL, 1)
	inner.WriteOp(value.OP_RETURN, 1)
	fn := &value.Function{Name: value.NewString("greet"), Chunk: &inner}

	var outer value.Chunk
	idx := outer.AddConstant(fn)
	outer.WriteOp(value.OP_CONSTANT, 1)
	outer.WriteByte(byte(idx), 1)
	outer.WriteOp(value.OP_RETURN, 1)

	var buf bytes.Buffer
	outer.Disassemble(&buf, "<script>")

	out := buf.String()
	assert.Contains(t, out, "== <script> ==")
	assert.Contains(t, out, "== <fn greet> ==")
}
