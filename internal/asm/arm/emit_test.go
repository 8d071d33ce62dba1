package arm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func word(t *testing.T, a *Assembler, off int) uint32 {
	t.Helper()
	b := a.buf.Bytes()
	require.GreaterOrEqual(t, len(b), off+4)
	return uint32(b[off]) | uint32(b[off+1])<<8 | uint32(b[off+2])<<16 | uint32(b[off+3])<<24
}

func TestEmitDataProcessingScenarios(t *testing.T) {
	cases := []struct {
		name string
		emit func(a *Assembler)
		want uint32
	}{
		{
			name: "mov r0, r1",
			emit: func(a *Assembler) { a.Mov(R0, RegisterShifterOperand(R1), AL) },
			want: 0xE1A00001,
		},
		{
			name: "add r2, r3, #0xFF",
			emit: func(a *Assembler) {
				so := ShifterOperandFromImmediateOrPanic(0xFF)
				a.Add(R2, R3, so, AL)
			},
			want: 0xE28320FF,
		},
		{
			name: "ldr r0, [r1, #4]",
			emit: func(a *Assembler) { a.Ldr(R0, NewAddress(R1, 4, Offset), AL) },
			want: 0xE5910004,
		},
		{
			name: "vadd.f64 d0, d1, d2",
			emit: func(a *Assembler) { a.Vaddd(D0, D1, D2, AL) },
			want: 0xEE310B02,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a := NewAssembler(16)
			c.emit(a)
			require.Equal(t, 4, a.Size())
			require.Equal(t, c.want, word(t, a, 0))
		})
	}
}

func TestMovwMovtEncodeImm4RdImm12Split(t *testing.T) {
	a := NewAssembler(16)
	a.Movw(R0, 0x5678, AL)
	a.Movt(R0, 0x1234, AL)
	require.Equal(t, uint32(0xE3050678), word(t, a, 0))
	require.Equal(t, uint32(0xE3410234), word(t, a, 4))
}

func TestLdrdRequiresEvenRegister(t *testing.T) {
	a := NewAssembler(16)
	require.Panics(t, func() { a.Ldrd(R1, NewAddress(R2, 0, Offset), AL) })
	require.NotPanics(t, func() { a.Ldrd(R0, NewAddress(R2, 0, Offset), AL) })
}

func TestStrdRequiresEvenRegister(t *testing.T) {
	a := NewAssembler(16)
	require.Panics(t, func() { a.Strd(R3, NewAddress(R2, 0, Offset), AL) })
}

func TestEmitRequiresCondition(t *testing.T) {
	a := NewAssembler(16)
	require.Panics(t, func() { a.Mov(R0, RegisterShifterOperand(R1), NoCondition) })
}

func TestEmitRequiresRegister(t *testing.T) {
	a := NewAssembler(16)
	require.Panics(t, func() { a.Mov(NoRegister, RegisterShifterOperand(R1), AL) })
}

func TestClzRejectsPC(t *testing.T) {
	a := NewAssembler(16)
	require.Panics(t, func() { a.Clz(PC, R1, AL) })
	require.Panics(t, func() { a.Clz(R0, PC, AL) })
}

func TestVmovsrRejectsSPAndPC(t *testing.T) {
	a := NewAssembler(16)
	require.Panics(t, func() { a.Vmovsr(S0, SP, AL) })
	require.Panics(t, func() { a.Vmovsr(S0, PC, AL) })
}

func TestVfpImmediateRoundTrip(t *testing.T) {
	a := NewAssembler(16)
	// 1.0f = 0x3f800000, representable in the VFP 8-bit immediate form.
	ok := a.TryVmovsImmediate(S0, 0x3f800000, AL)
	require.True(t, ok)
	require.Equal(t, 4, a.Size())

	a2 := NewAssembler(16)
	// An arbitrary non-representable bit pattern must not encode.
	require.False(t, a2.TryVmovsImmediate(S0, 0x3f812345, AL))
	require.Equal(t, 0, a2.Size())
}

func TestSvcRejectsOversizeImmediate(t *testing.T) {
	a := NewAssembler(16)
	require.Panics(t, func() { a.Svc(1 << 24) })
	require.NotPanics(t, func() { a.Svc((1 << 24) - 1) })
}
