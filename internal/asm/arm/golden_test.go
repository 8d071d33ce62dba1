package arm

import (
	"testing"

	goasm "github.com/twitchyliquid64/golang-asm"
	"github.com/twitchyliquid64/golang-asm/obj"
	"github.com/twitchyliquid64/golang-asm/obj/arm"
	"github.com/stretchr/testify/require"
)

// goldenProg builds a single golang-asm instruction against an independent
// ARM assembler implementation, used as an adversarial cross-check on a
// handful of high-confidence mnemonics. This is not a second production
// backend: golang-asm's Prog/Addr API only covers a sliver of what this
// package emits, so the comparison stays deliberately narrow.
func goldenProg(t *testing.T, set func(b *goasm.Builder, p *obj.Prog)) []byte {
	t.Helper()
	b, err := goasm.NewBuilder("arm", 64)
	require.NoError(t, err)
	p := b.NewProg()
	set(b, p)
	b.AddInstruction(p)
	return b.Assemble()
}

func TestGoldenMovRegisterMatchesIndependentAssembler(t *testing.T) {
	got := goldenProg(t, func(b *goasm.Builder, p *obj.Prog) {
		p.As = arm.AMOVW
		p.From = obj.Addr{Type: obj.TYPE_REG, Reg: arm.REG_R1}
		p.To = obj.Addr{Type: obj.TYPE_REG, Reg: arm.REG_R0}
	})
	require.Len(t, got, 4)

	a := NewAssembler(16)
	a.Mov(R0, RegisterShifterOperand(R1), AL)
	code, _ := a.Finalize()
	require.Equal(t, got, code)
}

func TestGoldenAddImmediateMatchesIndependentAssembler(t *testing.T) {
	got := goldenProg(t, func(b *goasm.Builder, p *obj.Prog) {
		p.As = arm.AADD
		p.From = obj.Addr{Type: obj.TYPE_CONST, Offset: 4}
		p.Reg = arm.REG_R1
		p.To = obj.Addr{Type: obj.TYPE_REG, Reg: arm.REG_R0}
	})
	require.Len(t, got, 4)

	a := NewAssembler(16)
	so := ShifterOperandFromImmediateOrPanic(4)
	a.Add(R0, R1, so, AL)
	code, _ := a.Finalize()
	require.Equal(t, got, code)
}
