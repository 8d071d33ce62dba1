package arm

import "fmt"

// This file holds the primitive instruction emitters: one Go method per
// ARM/VFP mnemonic this package supports, each producing exactly one 32-bit
// word. Higher-level operations that synthesize more than one instruction
// live in macro.go.

func requireRegister(r Register, name string) {
	if r == NoRegister {
		panic(fmt.Sprintf("arm: %s must not be NoRegister", name))
	}
}

func requireCondition(cond Condition) {
	if cond == NoCondition {
		panic("arm: condition must not be NoCondition")
	}
}

func requireNotPC(r Register, name string) {
	if r == PC {
		panic(fmt.Sprintf("arm: %s must not be PC", name))
	}
}

// emitType01 encodes a type-0/type-1 data-processing instruction: AND, EOR,
// SUB, RSB, ADD, ADC, SBC, RSC, TST, TEQ, CMP, CMN, ORR, MOV, BIC, MVN.
func (a *Assembler) emitType01(cond Condition, opcode Opcode, setCC int32, rn, rd Register, so ShifterOperand) int {
	requireRegister(rd, "rd")
	requireCondition(cond)
	enc := int32(cond)<<conditionShift |
		so.typeBit()<<typeShift |
		int32(opcode)<<opcodeShift |
		setCC<<sShift |
		int32(rn)<<rnShift |
		int32(rd)<<rdShift |
		so.encoding()
	return a.emit(enc)
}

// emitBranch emits a B/BL instruction referencing label, linking label's
// forward-reference chain through the offset field when it is not yet
// bound. link selects BL over B.
func (a *Assembler) emitBranch(cond Condition, label *Label, link bool) int {
	requireCondition(cond)
	if label.IsBound() {
		return a.emitType5(cond, label.boundPosition()-int32(a.buf.Size()), link)
	}
	// The offset field of the instruction about to be emitted becomes the
	// new head of label's linked list: it stores label's own position field
	// verbatim (0 if label has never been referenced before, otherwise the
	// tagged position of the previous unresolved site).
	position := int32(a.buf.Size())
	pos := a.emitType5Linked(cond, label.position, link)
	label.linkTo(position)
	return pos
}

func (a *Assembler) emitType5(cond Condition, offset int32, link bool) int {
	return a.emit(EncodeBranchOffset(offset, branchHeader(cond, link)))
}

func (a *Assembler) emitType5Linked(cond Condition, taggedPosition int32, link bool) int {
	return a.emit(encodeLinkedPosition(taggedPosition, branchHeader(cond, link)))
}

func branchHeader(cond Condition, link bool) int32 {
	const linkShift = 24
	var l int32
	if link {
		l = 1
	}
	return int32(cond)<<conditionShift | 5<<typeShift | l<<linkShift
}

func (a *Assembler) emitMemOp(cond Condition, load, byte bool, rd Register, ad Address) int {
	requireRegister(rd, "rd")
	requireCondition(cond)
	enc := int32(cond)<<conditionShift | bit(26)
	if load {
		enc |= bL
	}
	if byte {
		enc |= bB
	}
	enc |= int32(rd)<<rdShift | ad.encoding()
	return a.emit(enc)
}

func (a *Assembler) emitMemOpAddressMode3(cond Condition, mode int32, rd Register, ad Address) int {
	requireRegister(rd, "rd")
	requireCondition(cond)
	enc := int32(cond)<<conditionShift | bit(22) | mode | int32(rd)<<rdShift | ad.encoding3()
	return a.emit(enc)
}

func (a *Assembler) emitMultiMemOp(cond Condition, am BlockAddressMode, load bool, base Register, regs RegList) int {
	requireRegister(base, "base")
	requireCondition(cond)
	enc := int32(cond)<<conditionShift | bit(27) | int32(am)
	if load {
		enc |= bL
	}
	enc |= int32(base)<<rnShift | int32(regs)
	return a.emit(enc)
}

func (a *Assembler) emitShiftImmediate(cond Condition, shift Shift, rd, rm Register, so ShifterOperand) int {
	requireCondition(cond)
	if !so.immediate {
		panic("arm: emitShiftImmediate requires an immediate-form shift count")
	}
	enc := int32(cond)<<conditionShift | int32(MOV)<<opcodeShift | int32(rd)<<rdShift |
		so.encoding()<<shiftImmShift | int32(shift)<<shiftShift | int32(rm)
	return a.emit(enc)
}

// Data-processing family (type 0/1), S-less and S-suffixed forms.

// And encodes "and rd, rn, so".
func (a *Assembler) And(rd, rn Register, so ShifterOperand, cond Condition) int {
	return a.emitType01(cond, AND, 0, rn, rd, so)
}

// Eor encodes "eor rd, rn, so".
func (a *Assembler) Eor(rd, rn Register, so ShifterOperand, cond Condition) int {
	return a.emitType01(cond, EOR, 0, rn, rd, so)
}

// Sub encodes "sub rd, rn, so".
func (a *Assembler) Sub(rd, rn Register, so ShifterOperand, cond Condition) int {
	return a.emitType01(cond, SUB, 0, rn, rd, so)
}

// Subs encodes "subs rd, rn, so".
func (a *Assembler) Subs(rd, rn Register, so ShifterOperand, cond Condition) int {
	return a.emitType01(cond, SUB, 1, rn, rd, so)
}

// Rsb encodes "rsb rd, rn, so".
func (a *Assembler) Rsb(rd, rn Register, so ShifterOperand, cond Condition) int {
	return a.emitType01(cond, RSB, 0, rn, rd, so)
}

// Rsbs encodes "rsbs rd, rn, so".
func (a *Assembler) Rsbs(rd, rn Register, so ShifterOperand, cond Condition) int {
	return a.emitType01(cond, RSB, 1, rn, rd, so)
}

// Add encodes "add rd, rn, so".
func (a *Assembler) Add(rd, rn Register, so ShifterOperand, cond Condition) int {
	return a.emitType01(cond, ADD, 0, rn, rd, so)
}

// Adds encodes "adds rd, rn, so".
func (a *Assembler) Adds(rd, rn Register, so ShifterOperand, cond Condition) int {
	return a.emitType01(cond, ADD, 1, rn, rd, so)
}

// Adc encodes "adc rd, rn, so".
func (a *Assembler) Adc(rd, rn Register, so ShifterOperand, cond Condition) int {
	return a.emitType01(cond, ADC, 0, rn, rd, so)
}

// Sbc encodes "sbc rd, rn, so".
func (a *Assembler) Sbc(rd, rn Register, so ShifterOperand, cond Condition) int {
	return a.emitType01(cond, SBC, 0, rn, rd, so)
}

// Rsc encodes "rsc rd, rn, so".
func (a *Assembler) Rsc(rd, rn Register, so ShifterOperand, cond Condition) int {
	return a.emitType01(cond, RSC, 0, rn, rd, so)
}

// Tst encodes "tst rn, so" (S implied, Rd=R0).
func (a *Assembler) Tst(rn Register, so ShifterOperand, cond Condition) int {
	return a.emitType01(cond, TST, 1, rn, R0, so)
}

// Teq encodes "teq rn, so".
func (a *Assembler) Teq(rn Register, so ShifterOperand, cond Condition) int {
	return a.emitType01(cond, TEQ, 1, rn, R0, so)
}

// Cmp encodes "cmp rn, so".
func (a *Assembler) Cmp(rn Register, so ShifterOperand, cond Condition) int {
	return a.emitType01(cond, CMP, 1, rn, R0, so)
}

// Cmn encodes "cmn rn, so".
func (a *Assembler) Cmn(rn Register, so ShifterOperand, cond Condition) int {
	return a.emitType01(cond, CMN, 1, rn, R0, so)
}

// Orr encodes "orr rd, rn, so".
func (a *Assembler) Orr(rd, rn Register, so ShifterOperand, cond Condition) int {
	return a.emitType01(cond, ORR, 0, rn, rd, so)
}

// Orrs encodes "orrs rd, rn, so".
func (a *Assembler) Orrs(rd, rn Register, so ShifterOperand, cond Condition) int {
	return a.emitType01(cond, ORR, 1, rn, rd, so)
}

// Mov encodes "mov rd, so".
func (a *Assembler) Mov(rd Register, so ShifterOperand, cond Condition) int {
	return a.emitType01(cond, MOV, 0, R0, rd, so)
}

// Movs encodes "movs rd, so".
func (a *Assembler) Movs(rd Register, so ShifterOperand, cond Condition) int {
	return a.emitType01(cond, MOV, 1, R0, rd, so)
}

// Bic encodes "bic rd, rn, so".
func (a *Assembler) Bic(rd, rn Register, so ShifterOperand, cond Condition) int {
	return a.emitType01(cond, BIC, 0, rn, rd, so)
}

// Mvn encodes "mvn rd, so".
func (a *Assembler) Mvn(rd Register, so ShifterOperand, cond Condition) int {
	return a.emitType01(cond, MVN, 0, R0, rd, so)
}

// Mvns encodes "mvns rd, so".
func (a *Assembler) Mvns(rd Register, so ShifterOperand, cond Condition) int {
	return a.emitType01(cond, MVN, 1, R0, rd, so)
}

// Clz encodes "clz rd, rm".
func (a *Assembler) Clz(rd, rm Register, cond Condition) int {
	requireRegister(rd, "rd")
	requireRegister(rm, "rm")
	requireCondition(cond)
	requireNotPC(rd, "rd")
	requireNotPC(rm, "rm")
	enc := int32(cond)<<conditionShift | bit(24) | bit(22) | bit(21) | 0xf<<16 |
		int32(rd)<<rdShift | 0xf<<8 | bit(4) | int32(rm)
	return a.emit(enc)
}

// Movw encodes "movw rd, #imm16".
func (a *Assembler) Movw(rd Register, imm16 uint16, cond Condition) int {
	requireCondition(cond)
	enc := int32(cond)<<conditionShift | bit(25) | bit(24) |
		(int32(imm16)>>12)<<16 | int32(rd)<<rdShift | int32(imm16)&0xfff
	return a.emit(enc)
}

// Movt encodes "movt rd, #imm16".
func (a *Assembler) Movt(rd Register, imm16 uint16, cond Condition) int {
	requireCondition(cond)
	enc := int32(cond)<<conditionShift | bit(25) | bit(24) | bit(22) |
		(int32(imm16)>>12)<<16 | int32(rd)<<rdShift | int32(imm16)&0xfff
	return a.emit(enc)
}

func (a *Assembler) emitMulOp(cond Condition, opcode int32, rd, rn, rm, rs Register) int {
	requireRegister(rd, "rd")
	requireRegister(rn, "rn")
	requireRegister(rm, "rm")
	requireRegister(rs, "rs")
	requireCondition(cond)
	enc := opcode | int32(cond)<<conditionShift | int32(rn)<<rnShift | int32(rd)<<rdShift |
		int32(rs)<<rsShift | bit(7) | bit(4) | int32(rm)<<rmShift
	return a.emit(enc)
}

// Mul encodes "mul rd, rn, rm" (rd=rn*rm).
func (a *Assembler) Mul(rd, rn, rm Register, cond Condition) int {
	// Assembler registers rd, rn, rm are encoded in the instruction's
	// rn, rm, rs fields respectively.
	return a.emitMulOp(cond, 0, R0, rd, rn, rm)
}

// Mla encodes "mla rd, rn, rm, ra" (rd=rn*rm+ra).
func (a *Assembler) Mla(rd, rn, rm, ra Register, cond Condition) int {
	return a.emitMulOp(cond, bit(21), ra, rd, rn, rm)
}

// Mls encodes "mls rd, rn, rm, ra" (rd=ra-rn*rm).
func (a *Assembler) Mls(rd, rn, rm, ra Register, cond Condition) int {
	return a.emitMulOp(cond, bit(22)|bit(21), ra, rd, rn, rm)
}

// Umull encodes "umull rdLo, rdHi, rn, rm" (rdHi:rdLo = rn*rm, unsigned).
func (a *Assembler) Umull(rdLo, rdHi, rn, rm Register, cond Condition) int {
	return a.emitMulOp(cond, bit(23), rdLo, rdHi, rn, rm)
}

// Memory single-register family.

// Ldr encodes "ldr rd, ad".
func (a *Assembler) Ldr(rd Register, ad Address, cond Condition) int {
	return a.emitMemOp(cond, true, false, rd, ad)
}

// Str encodes "str rd, ad".
func (a *Assembler) Str(rd Register, ad Address, cond Condition) int {
	return a.emitMemOp(cond, false, false, rd, ad)
}

// Ldrb encodes "ldrb rd, ad".
func (a *Assembler) Ldrb(rd Register, ad Address, cond Condition) int {
	return a.emitMemOp(cond, true, true, rd, ad)
}

// Strb encodes "strb rd, ad".
func (a *Assembler) Strb(rd Register, ad Address, cond Condition) int {
	return a.emitMemOp(cond, false, true, rd, ad)
}

// Memory addressing-mode-3 family.

// Ldrh encodes "ldrh rd, ad".
func (a *Assembler) Ldrh(rd Register, ad Address, cond Condition) int {
	return a.emitMemOpAddressMode3(cond, bL|bit(7)|bH|bit(4), rd, ad)
}

// Strh encodes "strh rd, ad".
func (a *Assembler) Strh(rd Register, ad Address, cond Condition) int {
	return a.emitMemOpAddressMode3(cond, bit(7)|bH|bit(4), rd, ad)
}

// Ldrsb encodes "ldrsb rd, ad".
func (a *Assembler) Ldrsb(rd Register, ad Address, cond Condition) int {
	return a.emitMemOpAddressMode3(cond, bL|bit(7)|bit(6)|bit(4), rd, ad)
}

// Ldrsh encodes "ldrsh rd, ad".
func (a *Assembler) Ldrsh(rd Register, ad Address, cond Condition) int {
	return a.emitMemOpAddressMode3(cond, bL|bit(7)|bit(6)|bH|bit(4), rd, ad)
}

// Ldrd encodes "ldrd rd, ad". rd must be even.
func (a *Assembler) Ldrd(rd Register, ad Address, cond Condition) int {
	if rd%2 != 0 {
		panic(fmt.Sprintf("arm: ldrd destination register r%d must be even", rd))
	}
	return a.emitMemOpAddressMode3(cond, bit(7)|bit(6)|bit(4), rd, ad)
}

// Strd encodes "strd rd, ad". rd must be even.
func (a *Assembler) Strd(rd Register, ad Address, cond Condition) int {
	if rd%2 != 0 {
		panic(fmt.Sprintf("arm: strd source register r%d must be even", rd))
	}
	return a.emitMemOpAddressMode3(cond, bit(7)|bit(6)|bit(5)|bit(4), rd, ad)
}

// Memory multiple-register family.

// Ldm encodes "ldm<am> base, regs".
func (a *Assembler) Ldm(am BlockAddressMode, base Register, regs RegList, cond Condition) int {
	return a.emitMultiMemOp(cond, am, true, base, regs)
}

// Stm encodes "stm<am> base, regs".
func (a *Assembler) Stm(am BlockAddressMode, base Register, regs RegList, cond Condition) int {
	return a.emitMultiMemOp(cond, am, false, base, regs)
}

// Exclusive-monitor family.

// Ldrex encodes "ldrex rt, [rn]".
func (a *Assembler) Ldrex(rt, rn Register, cond Condition) int {
	requireRegister(rn, "rn")
	requireRegister(rt, "rt")
	requireCondition(cond)
	const ldExRnShift, ldExRtShift = 16, 12
	enc := int32(cond)<<conditionShift | bit(24) | bit(23) | bL |
		int32(rn)<<ldExRnShift | int32(rt)<<ldExRtShift |
		bit(11) | bit(10) | bit(9) | bit(8) | bit(7) | bit(4) | bit(3) | bit(2) | bit(1) | bit(0)
	return a.emit(enc)
}

// Strex encodes "strex rd, rt, [rn]".
func (a *Assembler) Strex(rd, rt, rn Register, cond Condition) int {
	requireRegister(rn, "rn")
	requireRegister(rd, "rd")
	requireRegister(rt, "rt")
	requireCondition(cond)
	const strExRnShift, strExRdShift, strExRtShift = 16, 12, 0
	enc := int32(cond)<<conditionShift | bit(24) | bit(23) |
		int32(rn)<<strExRnShift | int32(rd)<<strExRdShift |
		bit(11) | bit(10) | bit(9) | bit(8) | bit(7) | bit(4) | int32(rt)<<strExRtShift
	return a.emit(enc)
}

// Clrex encodes "clrex", the unconditional exclusive-monitor clear.
func (a *Assembler) Clrex() int {
	cond := SpecialCondition
	enc := int32(cond)<<conditionShift | bit(26) | bit(24) | bit(22) | bit(21) | bit(20) | 0xff<<12 | bit(4) | 0xf
	return a.emit(enc)
}

// System family.

// Nop encodes "nop".
func (a *Assembler) Nop(cond Condition) int {
	requireCondition(cond)
	enc := int32(cond)<<conditionShift | bit(25) | bit(24) | bit(21) | 0xf<<12
	return a.emit(enc)
}

// Svc encodes "svc #imm24".
func (a *Assembler) Svc(imm24 uint32) int {
	if imm24 >= 1<<24 {
		panic(fmt.Sprintf("arm: svc immediate %#x does not fit 24 bits", imm24))
	}
	cond := AL
	enc := int32(cond)<<conditionShift | bit(27) | bit(26) | bit(25) | bit(24) | int32(imm24)
	return a.emit(enc)
}

// Bkpt encodes "bkpt #imm16".
func (a *Assembler) Bkpt(imm16 uint16) int {
	cond := AL
	enc := int32(cond)<<conditionShift | bit(24) | bit(21) |
		(int32(imm16)>>4)<<8 | bit(6) | bit(5) | bit(4) | int32(imm16)&0xf
	return a.emit(enc)
}

// B encodes "b label" (or the conditional form with cond != AL).
func (a *Assembler) B(label *Label, cond Condition) int {
	return a.emitBranch(cond, label, false)
}

// Bl encodes "bl label".
func (a *Assembler) Bl(label *Label, cond Condition) int {
	return a.emitBranch(cond, label, true)
}

// Blx encodes "blx rm".
func (a *Assembler) Blx(rm Register, cond Condition) int {
	requireRegister(rm, "rm")
	requireCondition(cond)
	enc := int32(cond)<<conditionShift | bit(24) | bit(21) | 0xfff<<8 | bit(5) | bit(4) | int32(rm)<<rmShift
	return a.emit(enc)
}

// VFP register-split helpers. ARM packs a 5-bit S-register index as
// (4-bit field | 1 bit elsewhere) and a 5-bit D-register index as (4-bit
// field | 1 bit elsewhere), but which half goes where the "d" bit differs
// by instruction position (source vs. destination); each VFP emitter below
// applies the split inline, matching the ARM ARM bit-for-bit.

func requireSRegister(s SRegister, name string) {
	if s == NoSRegister {
		panic(fmt.Sprintf("arm: %s must not be NoSRegister", name))
	}
}

func requireDRegister(d DRegister, name string) {
	if d == NoDRegister {
		panic(fmt.Sprintf("arm: %s must not be NoDRegister", name))
	}
}

// VFP <-> core register moves.

// Vmovsr encodes "vmov sn, rt".
func (a *Assembler) Vmovsr(sn SRegister, rt Register, cond Condition) int {
	requireSRegister(sn, "sn")
	requireRegister(rt, "rt")
	requireCondition(cond)
	if rt == SP || rt == PC {
		panic("arm: vmovsr core register must not be SP or PC")
	}
	enc := int32(cond)<<conditionShift | bit(27) | bit(26) | bit(25) |
		(int32(sn)>>1)*bit(16) | int32(rt)*bit(12) | bit(11) | bit(9) |
		(int32(sn)&1)*bit(7) | bit(4)
	return a.emit(enc)
}

// Vmovrs encodes "vmov rt, sn".
func (a *Assembler) Vmovrs(rt Register, sn SRegister, cond Condition) int {
	requireSRegister(sn, "sn")
	requireRegister(rt, "rt")
	requireCondition(cond)
	if rt == SP || rt == PC {
		panic("arm: vmovrs core register must not be SP or PC")
	}
	enc := int32(cond)<<conditionShift | bit(27) | bit(26) | bit(25) | bS |
		(int32(sn)>>1)*bit(16) | int32(rt)*bit(12) | bit(11) | bit(9) |
		(int32(sn)&1)*bit(7) | bit(4)
	return a.emit(enc)
}

// Vmovsrr encodes "vmov sm, sm+1, rt, rt2" (two S-registers from two core
// registers, packed as the consecutive pair starting at sm).
func (a *Assembler) Vmovsrr(sm SRegister, rt, rt2 Register, cond Condition) int {
	requireSRegister(sm, "sm")
	if sm == S31 {
		panic("arm: vmovsrr sm must not be S31 (needs sm+1)")
	}
	requireRegister(rt, "rt")
	requireRegister(rt2, "rt2")
	requireCondition(cond)
	if rt == SP || rt == PC || rt2 == SP || rt2 == PC {
		panic("arm: vmovsrr core registers must not be SP or PC")
	}
	enc := int32(cond)<<conditionShift | bit(27) | bit(26) | bit(22) |
		int32(rt2)*bit(16) | int32(rt)*bit(12) | bit(11) | bit(9) |
		(int32(sm)&1)*bit(5) | bit(4) | (int32(sm) >> 1)
	return a.emit(enc)
}

// Vmovrrs encodes "vmov rt, rt2, sm, sm+1".
func (a *Assembler) Vmovrrs(rt, rt2 Register, sm SRegister, cond Condition) int {
	requireSRegister(sm, "sm")
	if sm == S31 {
		panic("arm: vmovrrs sm must not be S31 (needs sm+1)")
	}
	requireRegister(rt, "rt")
	requireRegister(rt2, "rt2")
	requireCondition(cond)
	if rt == SP || rt == PC || rt2 == SP || rt2 == PC {
		panic("arm: vmovrrs core registers must not be SP or PC")
	}
	if rt == rt2 {
		panic("arm: vmovrrs requires rt != rt2")
	}
	enc := int32(cond)<<conditionShift | bit(27) | bit(26) | bit(22) | bS |
		int32(rt2)*bit(16) | int32(rt)*bit(12) | bit(11) | bit(9) |
		(int32(sm)&1)*bit(5) | bit(4) | (int32(sm) >> 1)
	return a.emit(enc)
}

// Vmovdrr encodes "vmov dm, rt, rt2".
func (a *Assembler) Vmovdrr(dm DRegister, rt, rt2 Register, cond Condition) int {
	requireDRegister(dm, "dm")
	requireRegister(rt, "rt")
	requireRegister(rt2, "rt2")
	requireCondition(cond)
	if rt == SP || rt == PC || rt2 == SP || rt2 == PC {
		panic("arm: vmovdrr core registers must not be SP or PC")
	}
	enc := int32(cond)<<conditionShift | bit(27) | bit(26) | bit(22) |
		int32(rt2)*bit(16) | int32(rt)*bit(12) | bit(11) | bit(9) | bit(8) |
		(int32(dm)>>4)*bit(5) | bit(4) | (int32(dm) & 0xf)
	return a.emit(enc)
}

// Vmovrrd encodes "vmov rt, rt2, dm".
func (a *Assembler) Vmovrrd(rt, rt2 Register, dm DRegister, cond Condition) int {
	requireDRegister(dm, "dm")
	requireRegister(rt, "rt")
	requireRegister(rt2, "rt2")
	requireCondition(cond)
	if rt == SP || rt == PC || rt2 == SP || rt2 == PC {
		panic("arm: vmovrrd core registers must not be SP or PC")
	}
	if rt == rt2 {
		panic("arm: vmovrrd requires rt != rt2")
	}
	enc := int32(cond)<<conditionShift | bit(27) | bit(26) | bit(22) | bS |
		int32(rt2)*bit(16) | int32(rt)*bit(12) | bit(11) | bit(9) | bit(8) |
		(int32(dm)>>4)*bit(5) | bit(4) | (int32(dm) & 0xf)
	return a.emit(enc)
}

// VFP memory family.

// Vldrs encodes "vldr sd, ad".
func (a *Assembler) Vldrs(sd SRegister, ad Address, cond Condition) int {
	requireSRegister(sd, "sd")
	requireCondition(cond)
	enc := int32(cond)<<conditionShift | bit(27) | bit(26) | bit(24) | bL |
		(int32(sd)&1)*bit(22) | (int32(sd)>>1)*bit(12) | bit(11) | bit(9) | ad.vencoding()
	return a.emit(enc)
}

// Vstrs encodes "vstr sd, ad".
func (a *Assembler) Vstrs(sd SRegister, ad Address, cond Condition) int {
	requireSRegister(sd, "sd")
	requireCondition(cond)
	if ad.Base() == PC {
		panic("arm: vstrs base register must not be PC")
	}
	enc := int32(cond)<<conditionShift | bit(27) | bit(26) | bit(24) |
		(int32(sd)&1)*bit(22) | (int32(sd)>>1)*bit(12) | bit(11) | bit(9) | ad.vencoding()
	return a.emit(enc)
}

// Vldrd encodes "vldr dd, ad".
func (a *Assembler) Vldrd(dd DRegister, ad Address, cond Condition) int {
	requireDRegister(dd, "dd")
	requireCondition(cond)
	enc := int32(cond)<<conditionShift | bit(27) | bit(26) | bit(24) | bL |
		(int32(dd)>>4)*bit(22) | (int32(dd)&0xf)*bit(12) | bit(11) | bit(9) | bit(8) | ad.vencoding()
	return a.emit(enc)
}

// Vstrd encodes "vstr dd, ad".
func (a *Assembler) Vstrd(dd DRegister, ad Address, cond Condition) int {
	requireDRegister(dd, "dd")
	requireCondition(cond)
	if ad.Base() == PC {
		panic("arm: vstrd base register must not be PC")
	}
	enc := int32(cond)<<conditionShift | bit(27) | bit(26) | bit(24) |
		(int32(dd)>>4)*bit(22) | (int32(dd)&0xf)*bit(12) | bit(11) | bit(9) | bit(8) | ad.vencoding()
	return a.emit(enc)
}

// VFP scalar FP, s<->s and d<->d families.

func (a *Assembler) emitVFPsss(cond Condition, opcode int32, sd, sn, sm SRegister) int {
	requireSRegister(sd, "sd")
	requireSRegister(sn, "sn")
	requireSRegister(sm, "sm")
	requireCondition(cond)
	enc := int32(cond)<<conditionShift | bit(27) | bit(26) | bit(25) | bit(11) | bit(9) | opcode |
		(int32(sd)&1)*bit(22) | (int32(sn)>>1)*bit(16) | (int32(sd)>>1)*bit(12) |
		(int32(sn)&1)*bit(7) | (int32(sm)&1)*bit(5) | (int32(sm) >> 1)
	return a.emit(enc)
}

func (a *Assembler) emitVFPddd(cond Condition, opcode int32, dd, dn, dm DRegister) int {
	requireDRegister(dd, "dd")
	requireDRegister(dn, "dn")
	requireDRegister(dm, "dm")
	requireCondition(cond)
	enc := int32(cond)<<conditionShift | bit(27) | bit(26) | bit(25) | bit(11) | bit(9) | bit(8) | opcode |
		(int32(dd)>>4)*bit(22) | (int32(dn)&0xf)*bit(16) | (int32(dd)&0xf)*bit(12) |
		(int32(dn)>>4)*bit(7) | (int32(dm)>>4)*bit(5) | (int32(dm) & 0xf)
	return a.emit(enc)
}

// Vmovs encodes "vmov.f32 sd, sm" (register-register form).
func (a *Assembler) Vmovs(sd, sm SRegister, cond Condition) int {
	return a.emitVFPsss(cond, bit(23)|bit(21)|bit(20)|bit(6), sd, S0, sm)
}

// Vmovd encodes "vmov.f64 dd, dm" (register-register form).
func (a *Assembler) Vmovd(dd, dm DRegister, cond Condition) int {
	return a.emitVFPddd(cond, bit(23)|bit(21)|bit(20)|bit(6), dd, D0, dm)
}

// vfpSImmediate8 attempts to pack a single-precision bit pattern into the
// VFP 8-bit immediate form (bits 0..18 zero, exponent-field bits 25..30
// equal to 011111 or 100000). Returns ok=false if imm32 isn't of that form.
func vfpSImmediate8(imm32 uint32) (imm8 uint8, ok bool) {
	if imm32&((1<<19)-1) != 0 {
		return 0, false
	}
	field := (imm32 >> 25) & ((1 << 6) - 1)
	if field != (1 << 5) && field != (1<<5)-1 {
		return 0, false
	}
	imm8 = uint8((imm32>>31)<<7) | uint8(((imm32>>29)&1)<<6) | uint8((imm32>>19)&((1<<6)-1))
	return imm8, true
}

// vfpDImmediate8 is the double-precision analogue of vfpSImmediate8.
func vfpDImmediate8(imm64 uint64) (imm8 uint8, ok bool) {
	if imm64&((uint64(1)<<48)-1) != 0 {
		return 0, false
	}
	field := (imm64 >> 54) & ((1 << 9) - 1)
	if field != (1 << 8) && field != (1<<8)-1 {
		return 0, false
	}
	imm8 = uint8((imm64>>63)<<7) | uint8(((imm64>>61)&1)<<6) | uint8((imm64>>48)&((1<<6)-1))
	return imm8, true
}

// TryVmovsImmediate attempts "vmov.f32 sd, #imm32" (imm32 is the IEEE-754
// bit pattern of the desired constant). Reports false, emitting nothing,
// if imm32 does not match the VFP immediate encoding.
func (a *Assembler) TryVmovsImmediate(sd SRegister, imm32 uint32, cond Condition) bool {
	imm8, ok := vfpSImmediate8(imm32)
	if !ok {
		return false
	}
	a.emitVFPsss(cond, bit(23)|bit(21)|bit(20)|(int32(imm8>>4))*bit(16)|int32(imm8&0xf), sd, S0, S0)
	return true
}

// TryVmovdImmediate attempts "vmov.f64 dd, #imm64" (imm64 is the IEEE-754
// bit pattern of the desired constant). Reports false, emitting nothing,
// if imm64 does not match the VFP immediate encoding.
func (a *Assembler) TryVmovdImmediate(dd DRegister, imm64 uint64, cond Condition) bool {
	imm8, ok := vfpDImmediate8(imm64)
	if !ok {
		return false
	}
	a.emitVFPddd(cond, bit(23)|bit(21)|bit(20)|(int32(imm8>>4))*bit(16)|bit(8)|int32(imm8&0xf), dd, D0, D0)
	return true
}

// Vadds encodes "vadd.f32 sd, sn, sm".
func (a *Assembler) Vadds(sd, sn, sm SRegister, cond Condition) int {
	return a.emitVFPsss(cond, bit(21)|bit(20), sd, sn, sm)
}

// Vaddd encodes "vadd.f64 dd, dn, dm".
func (a *Assembler) Vaddd(dd, dn, dm DRegister, cond Condition) int {
	return a.emitVFPddd(cond, bit(21)|bit(20), dd, dn, dm)
}

// Vsubs encodes "vsub.f32 sd, sn, sm".
func (a *Assembler) Vsubs(sd, sn, sm SRegister, cond Condition) int {
	return a.emitVFPsss(cond, bit(21)|bit(20)|bit(6), sd, sn, sm)
}

// Vsubd encodes "vsub.f64 dd, dn, dm".
func (a *Assembler) Vsubd(dd, dn, dm DRegister, cond Condition) int {
	return a.emitVFPddd(cond, bit(21)|bit(20)|bit(6), dd, dn, dm)
}

// Vmuls encodes "vmul.f32 sd, sn, sm".
func (a *Assembler) Vmuls(sd, sn, sm SRegister, cond Condition) int {
	return a.emitVFPsss(cond, bit(21), sd, sn, sm)
}

// Vmuld encodes "vmul.f64 dd, dn, dm".
func (a *Assembler) Vmuld(dd, dn, dm DRegister, cond Condition) int {
	return a.emitVFPddd(cond, bit(21), dd, dn, dm)
}

// Vmlas encodes "vmla.f32 sd, sn, sm" (sd += sn*sm).
func (a *Assembler) Vmlas(sd, sn, sm SRegister, cond Condition) int {
	return a.emitVFPsss(cond, 0, sd, sn, sm)
}

// Vmlad encodes "vmla.f64 dd, dn, dm".
func (a *Assembler) Vmlad(dd, dn, dm DRegister, cond Condition) int {
	return a.emitVFPddd(cond, 0, dd, dn, dm)
}

// Vmlss encodes "vmls.f32 sd, sn, sm" (sd -= sn*sm).
func (a *Assembler) Vmlss(sd, sn, sm SRegister, cond Condition) int {
	return a.emitVFPsss(cond, bit(6), sd, sn, sm)
}

// Vmlsd encodes "vmls.f64 dd, dn, dm".
func (a *Assembler) Vmlsd(dd, dn, dm DRegister, cond Condition) int {
	return a.emitVFPddd(cond, bit(6), dd, dn, dm)
}

// Vdivs encodes "vdiv.f32 sd, sn, sm".
func (a *Assembler) Vdivs(sd, sn, sm SRegister, cond Condition) int {
	return a.emitVFPsss(cond, bit(23), sd, sn, sm)
}

// Vdivd encodes "vdiv.f64 dd, dn, dm".
func (a *Assembler) Vdivd(dd, dn, dm DRegister, cond Condition) int {
	return a.emitVFPddd(cond, bit(23), dd, dn, dm)
}

// Vabss encodes "vabs.f32 sd, sm".
func (a *Assembler) Vabss(sd, sm SRegister, cond Condition) int {
	return a.emitVFPsss(cond, bit(23)|bit(21)|bit(20)|bit(7)|bit(6), sd, S0, sm)
}

// Vabsd encodes "vabs.f64 dd, dm".
func (a *Assembler) Vabsd(dd, dm DRegister, cond Condition) int {
	return a.emitVFPddd(cond, bit(23)|bit(21)|bit(20)|bit(7)|bit(6), dd, D0, dm)
}

// Vnegs encodes "vneg.f32 sd, sm".
func (a *Assembler) Vnegs(sd, sm SRegister, cond Condition) int {
	return a.emitVFPsss(cond, bit(23)|bit(21)|bit(20)|bit(16)|bit(6), sd, S0, sm)
}

// Vnegd encodes "vneg.f64 dd, dm".
func (a *Assembler) Vnegd(dd, dm DRegister, cond Condition) int {
	return a.emitVFPddd(cond, bit(23)|bit(21)|bit(20)|bit(16)|bit(6), dd, D0, dm)
}

// Vsqrts encodes "vsqrt.f32 sd, sm".
func (a *Assembler) Vsqrts(sd, sm SRegister, cond Condition) int {
	return a.emitVFPsss(cond, bit(23)|bit(21)|bit(20)|bit(16)|bit(7)|bit(6), sd, S0, sm)
}

// Vsqrtd encodes "vsqrt.f64 dd, dm".
func (a *Assembler) Vsqrtd(dd, dm DRegister, cond Condition) int {
	return a.emitVFPddd(cond, bit(23)|bit(21)|bit(20)|bit(16)|bit(7)|bit(6), dd, D0, dm)
}

// VFP cross-width conversions.

func (a *Assembler) emitVFPsd(cond Condition, opcode int32, sd SRegister, dm DRegister) int {
	requireSRegister(sd, "sd")
	requireDRegister(dm, "dm")
	requireCondition(cond)
	enc := int32(cond)<<conditionShift | bit(27) | bit(26) | bit(25) | bit(11) | bit(9) | opcode |
		(int32(sd)&1)*bit(22) | (int32(sd)>>1)*bit(12) | (int32(dm)>>4)*bit(5) | (int32(dm) & 0xf)
	return a.emit(enc)
}

func (a *Assembler) emitVFPds(cond Condition, opcode int32, dd DRegister, sm SRegister) int {
	requireDRegister(dd, "dd")
	requireSRegister(sm, "sm")
	requireCondition(cond)
	enc := int32(cond)<<conditionShift | bit(27) | bit(26) | bit(25) | bit(11) | bit(9) | opcode |
		(int32(dd)>>4)*bit(22) | (int32(dd)&0xf)*bit(12) | (int32(sm)&1)*bit(5) | (int32(sm) >> 1)
	return a.emit(enc)
}

// Vcvtsd encodes "vcvt.f32.f64 sd, dm".
func (a *Assembler) Vcvtsd(sd SRegister, dm DRegister, cond Condition) int {
	return a.emitVFPsd(cond, bit(23)|bit(21)|bit(20)|bit(18)|bit(17)|bit(16)|bit(8)|bit(7)|bit(6), sd, dm)
}

// Vcvtds encodes "vcvt.f64.f32 dd, sm".
func (a *Assembler) Vcvtds(dd DRegister, sm SRegister, cond Condition) int {
	return a.emitVFPds(cond, bit(23)|bit(21)|bit(20)|bit(18)|bit(17)|bit(16)|bit(7)|bit(6), dd, sm)
}

// Vcvtis encodes "vcvt.s32.f32 sd, sm" (round toward zero, float to signed
// int, result in an S-register holding an integer bit pattern).
func (a *Assembler) Vcvtis(sd, sm SRegister, cond Condition) int {
	return a.emitVFPsss(cond, bit(23)|bit(21)|bit(20)|bit(19)|bit(18)|bit(16)|bit(7)|bit(6), sd, S0, sm)
}

// Vcvtid encodes "vcvt.s32.f64 sd, dm".
func (a *Assembler) Vcvtid(sd SRegister, dm DRegister, cond Condition) int {
	return a.emitVFPsd(cond, bit(23)|bit(21)|bit(20)|bit(19)|bit(18)|bit(16)|bit(8)|bit(7)|bit(6), sd, dm)
}

// Vcvtsi encodes "vcvt.f32.s32 sd, sm".
func (a *Assembler) Vcvtsi(sd, sm SRegister, cond Condition) int {
	return a.emitVFPsss(cond, bit(23)|bit(21)|bit(20)|bit(19)|bit(7)|bit(6), sd, S0, sm)
}

// Vcvtdi encodes "vcvt.f64.s32 dd, sm".
func (a *Assembler) Vcvtdi(dd DRegister, sm SRegister, cond Condition) int {
	return a.emitVFPds(cond, bit(23)|bit(21)|bit(20)|bit(19)|bit(8)|bit(7)|bit(6), dd, sm)
}

// Vcvtus encodes "vcvt.u32.f32 sd, sm".
func (a *Assembler) Vcvtus(sd, sm SRegister, cond Condition) int {
	return a.emitVFPsss(cond, bit(23)|bit(21)|bit(20)|bit(19)|bit(18)|bit(7)|bit(6), sd, S0, sm)
}

// Vcvtud encodes "vcvt.u32.f64 sd, dm".
func (a *Assembler) Vcvtud(sd SRegister, dm DRegister, cond Condition) int {
	return a.emitVFPsd(cond, bit(23)|bit(21)|bit(20)|bit(19)|bit(18)|bit(8)|bit(6), sd, dm)
}

// Vcvtsu encodes "vcvt.f32.u32 sd, sm".
func (a *Assembler) Vcvtsu(sd, sm SRegister, cond Condition) int {
	return a.emitVFPsss(cond, bit(23)|bit(21)|bit(20)|bit(19)|bit(6), sd, S0, sm)
}

// Vcvtdu encodes "vcvt.f64.u32 dd, sm".
func (a *Assembler) Vcvtdu(dd DRegister, sm SRegister, cond Condition) int {
	return a.emitVFPds(cond, bit(23)|bit(21)|bit(20)|bit(19)|bit(8)|bit(6), dd, sm)
}

// VFP compare and status family.

// Vcmps encodes "vcmp.f32 sd, sm".
func (a *Assembler) Vcmps(sd, sm SRegister, cond Condition) int {
	return a.emitVFPsss(cond, bit(23)|bit(21)|bit(20)|bit(18)|bit(6), sd, S0, sm)
}

// Vcmpd encodes "vcmp.f64 dd, dm".
func (a *Assembler) Vcmpd(dd, dm DRegister, cond Condition) int {
	return a.emitVFPddd(cond, bit(23)|bit(21)|bit(20)|bit(18)|bit(6), dd, D0, dm)
}

// Vcmpsz encodes "vcmp.f32 sd, #0.0".
func (a *Assembler) Vcmpsz(sd SRegister, cond Condition) int {
	return a.emitVFPsss(cond, bit(23)|bit(21)|bit(20)|bit(18)|bit(16)|bit(6), sd, S0, S0)
}

// Vcmpdz encodes "vcmp.f64 dd, #0.0".
func (a *Assembler) Vcmpdz(dd DRegister, cond Condition) int {
	return a.emitVFPddd(cond, bit(23)|bit(21)|bit(20)|bit(18)|bit(16)|bit(6), dd, D0, D0)
}

// Vmstat encodes "vmrs APSR_nzcv, FPSCR", copying the VFP comparison flags
// into the core APSR N/Z/C/V bits.
func (a *Assembler) Vmstat(cond Condition) int {
	requireCondition(cond)
	enc := int32(cond)<<conditionShift | bit(27) | bit(26) | bit(25) | bit(23) | bit(22) | bit(21) | bit(20) | bit(16) |
		int32(PC)*bit(12) | bit(11) | bit(9) | bit(4)
	return a.emit(enc)
}
