package arm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDisassembleCoversDataProcessingMemoryAndBranch(t *testing.T) {
	a := NewAssembler(32)
	a.Mov(R0, RegisterShifterOperand(R1), AL)
	a.Add(R2, R3, ShifterOperandFromImmediateOrPanic(0xFF), AL)
	a.Ldr(R0, NewAddress(R1, 4, Offset), AL)
	l := NewLabel()
	a.Bind(l)
	a.B(l, NE)

	lines := a.Disassemble()
	require.Len(t, lines, 4)
	require.Equal(t, "mov r0, operand2(0x001)", lines[0])
	require.Contains(t, lines[1], "add r2, r3,")
	require.Equal(t, "ldr r0, [r1, #4]", lines[2])
	require.Equal(t, "bne #0", lines[3])
}

func TestDisassembleFallsBackToHexForUncoveredClasses(t *testing.T) {
	a := NewAssembler(16)
	a.Vaddd(D0, D1, D2, AL)
	lines := a.Disassemble()
	require.Len(t, lines, 1)
	require.Equal(t, "(word 0xee310b02)", lines[0])
}
