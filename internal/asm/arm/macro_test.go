package arm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadImmediateSingleMovFastPath(t *testing.T) {
	a := NewAssembler(16)
	a.LoadImmediate(R0, 0xFF, AL)
	require.Equal(t, 4, a.Size())
}

func TestLoadImmediateMvnFastPath(t *testing.T) {
	a := NewAssembler(16)
	// -256 == 0xFFFFFF00; its bitwise complement is 0xFF, encodable, so
	// this takes the Mvn path rather than falling through to movw/movt.
	a.LoadImmediate(R0, -256, AL)
	require.Equal(t, 4, a.Size())
}

func TestLoadImmediateMovwMovtFallback(t *testing.T) {
	a := NewAssembler(16)
	a.LoadImmediate(R0, 0x12345678, AL)
	require.Equal(t, 8, a.Size())
	require.Equal(t, uint32(0xE3050678), word(t, a, 0))
	require.Equal(t, uint32(0xE3410234), word(t, a, 4))
}

func TestLoadImmediateMovwOnlyWhenHighHalfZero(t *testing.T) {
	a := NewAssembler(16)
	a.LoadImmediate(R0, 0x00005678, AL)
	// Low half doesn't fit a plain shifter-operand immediate (0x5678 spans
	// 12 significant bits, wider than any rotated 8-bit field), but the
	// high half is zero, so no Movt should follow.
	require.Equal(t, 4, a.Size())
	require.Equal(t, uint32(0xE3050678), word(t, a, 0))
}

func TestAddConstantZeroIsNoOpWhenSameRegister(t *testing.T) {
	a := NewAssembler(16)
	a.AddConstant(R0, R0, 0, AL)
	require.Equal(t, 0, a.Size())
}

func TestAddConstantZeroEmitsMovWhenDifferentRegister(t *testing.T) {
	a := NewAssembler(16)
	a.AddConstant(R0, R1, 0, AL)
	require.Equal(t, 4, a.Size())
}

func TestAddConstantSingleInstructionFastPath(t *testing.T) {
	a := NewAssembler(16)
	a.AddConstant(R0, R1, 4, AL)
	require.Equal(t, 4, a.Size())
}

func TestAddConstantSubFastPathForNegativeValue(t *testing.T) {
	a := NewAssembler(16)
	a.AddConstant(R0, R1, -4, AL)
	require.Equal(t, 4, a.Size())
}

func TestAddConstantRejectsIPSourceWhenSynthesisNeeded(t *testing.T) {
	a := NewAssembler(16)
	require.Panics(t, func() { a.AddConstant(R0, IP, 0x12345678, AL) })
}

func TestPushPop(t *testing.T) {
	a := NewAssembler(16)
	a.Push(R4, AL)
	a.Pop(R4, AL)
	require.Equal(t, 8, a.Size())
}

func TestMovRegSkipsNoOp(t *testing.T) {
	a := NewAssembler(16)
	a.MovReg(R0, R0, AL)
	require.Equal(t, 0, a.Size())
	a.MovReg(R0, R1, AL)
	require.Equal(t, 4, a.Size())
}

func TestLslRejectsZeroShift(t *testing.T) {
	a := NewAssembler(16)
	require.Panics(t, func() { a.Lsl(R0, R1, 0, AL) })
}

// TestBranchLinkingThroughMultipleForwardReferences exercises the zero-
// allocation linked list threaded through two unresolved B instructions'
// own offset fields, then verifies both are patched correctly at Bind. The
// first forward reference is deliberately placed at true buffer offset 0 —
// the case that collides with the chain's own terminator sentinel unless
// linked sites are tagged before being stored.
func TestBranchLinkingThroughMultipleForwardReferences(t *testing.T) {
	a := NewAssembler(32)
	l := NewLabel()

	site1 := a.B(l, AL) // first forward reference: site 0
	site2 := a.B(l, AL) // second forward reference: site 4
	require.Equal(t, 0, site1)
	require.Equal(t, 4, site2)
	require.False(t, l.IsBound())

	a.Nop(AL) // push the bind position away from the last site
	a.Bind(l)
	require.True(t, l.IsBound())

	bound := int32(a.Size())
	require.Equal(t, int32(12), bound)

	w1 := int32(word(t, a, site1))
	w2 := int32(word(t, a, site2))
	require.Equal(t, bound-int32(site1), DecodeBranchOffset(w1))
	require.Equal(t, bound-int32(site2), DecodeBranchOffset(w2))
}

// TestBranchLinkingSingleSiteAtBufferOffsetZero is the narrowest possible
// regression case for the same collision: a single forward reference at
// buffer offset 0, with nothing chained after it.
func TestBranchLinkingSingleSiteAtBufferOffsetZero(t *testing.T) {
	a := NewAssembler(16)
	l := NewLabel()

	site := a.B(l, AL)
	require.Equal(t, 0, site)

	a.Nop(AL)
	a.Bind(l)

	bound := int32(a.Size())
	w := int32(word(t, a, site))
	require.Equal(t, bound-int32(site), DecodeBranchOffset(w))
}

// TestBranchToAlreadyBoundLabel exercises the direct (non-linked) path:
// the label is bound before the branch referencing it is ever emitted.
func TestBranchToAlreadyBoundLabel(t *testing.T) {
	a := NewAssembler(32)
	l := NewLabel()
	a.Bind(l)
	a.Nop(AL)
	site := a.B(l, AL)
	w := int32(word(t, a, site))
	require.Equal(t, int32(0)-int32(site), DecodeBranchOffset(w))
}

func TestBindAlreadyBoundPanics(t *testing.T) {
	a := NewAssembler(16)
	l := NewLabel()
	a.Bind(l)
	require.Panics(t, func() { a.Bind(l) })
}

func TestInitializeMemoryWithBreakpoints(t *testing.T) {
	mem := make([]byte, 8)
	InitializeMemoryWithBreakpoints(mem)
	require.Equal(t, uint32(breakpointWord), uint32(mem[0])|uint32(mem[1])<<8|uint32(mem[2])<<16|uint32(mem[3])<<24)
	require.Equal(t, mem[0:4], mem[4:8])
}

func TestInitializeMemoryWithBreakpointsRejectsUnalignedLength(t *testing.T) {
	require.Panics(t, func() { InitializeMemoryWithBreakpoints(make([]byte, 5)) })
}

func TestStopEmitsBranchOverMessageAndSvc(t *testing.T) {
	a := NewAssembler(32)
	a.SetPrintStopMessage(false)
	a.Stop("oops", 0x1000)
	require.Equal(t, 12, a.Size())
	require.Equal(t, uint32(0x1000), word(t, a, 4))
}

func TestStopInvokesConfiguredPrinter(t *testing.T) {
	a := NewAssembler(32)
	var got string
	a.SetStopMessagePrinter(func(_ *Assembler, message string) { got = message })
	a.Stop("oops", 0x1000)
	require.Equal(t, "oops", got)
}

func TestLoadObjectUsesPoolAndPatchesOffset(t *testing.T) {
	a := NewAssembler(32)
	type handle struct{}
	h := &handle{}
	a.LoadObject(R0, h)
	require.Equal(t, 4, a.Size())
	_, entries := a.Finalize()
	require.Len(t, entries, 1)
	require.Same(t, h, entries[0].Object)
}
