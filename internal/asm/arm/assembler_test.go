package arm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAssemblerSizeAndFinalize(t *testing.T) {
	a := NewAssembler(16)
	a.Mov(R0, RegisterShifterOperand(R1), AL)
	a.Nop(AL)
	require.Equal(t, 8, a.Size())

	code, entries := a.Finalize()
	require.Len(t, code, 8)
	require.Empty(t, entries)

	// Finalize's returned slice must not alias the assembler's live buffer.
	code[0] = 0xFF
	require.NotEqual(t, code[0], a.buf.Bytes()[0])
}

func TestAssemblerAddObjectAndAddExternalLabelDelegateToPool(t *testing.T) {
	a := NewAssembler(16)
	type handle struct{}
	h := &handle{}
	idx := a.AddObject(h)
	require.Equal(t, int32(1), idx)

	idx2 := a.AddExternalLabel(NewExternalLabel(0x4000))
	require.Equal(t, int32(2), idx2)
}

func TestAssemblerSetPrintStopMessageDefaultsToTrue(t *testing.T) {
	a := NewAssembler(16)
	called := false
	a.SetStopMessagePrinter(func(_ *Assembler, _ string) { called = true })
	a.Stop("hi", 0)
	require.True(t, called)

	a.SetPrintStopMessage(false)
	called = false
	a.Stop("hi", 0)
	require.False(t, called)
}
