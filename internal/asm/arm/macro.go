package arm

import (
	"encoding/binary"
	"fmt"
)

// This file holds the macro assembler: operations that select among legal
// primitive encodings or synthesize multi-instruction sequences for
// operations with no single legal encoding. Every function here bottoms
// out in calls to the primitive emitters of emit.go.

// ExternalLabel identifies a branch target outside the assembled buffer —
// typically a runtime stub — by a fixed host address resolved at assembly
// time and never patched by this package.
type ExternalLabel struct {
	address uint32
}

// NewExternalLabel returns an ExternalLabel referring to address.
func NewExternalLabel(address uint32) *ExternalLabel { return &ExternalLabel{address: address} }

// Address returns the label's target address.
func (l *ExternalLabel) Address() uint32 { return l.address }

// LoadImmediate loads an arbitrary 32-bit constant into rd: a single mov or
// mvn if value (or its complement) fits the shifter-operand immediate
// form, otherwise movw/movt.
func (a *Assembler) LoadImmediate(rd Register, value int32, cond Condition) {
	if so, ok := TryShifterOperandFromImmediate(uint32(value)); ok {
		a.Mov(rd, so, cond)
		return
	}
	if so, ok := TryShifterOperandFromImmediate(^uint32(value)); ok {
		a.Mvn(rd, so, cond)
		return
	}
	a.Movw(rd, low16Bits(value), cond)
	if high := high16Bits(value); high != 0 {
		a.Movt(rd, high, cond)
	}
}

// LoadSImmediate loads the IEEE-754 bit pattern of an arbitrary single
// value into sd: the VFP immediate form if representable, otherwise
// materialized through the scratch register IP.
func (a *Assembler) LoadSImmediate(sd SRegister, imm32 uint32, cond Condition) {
	if a.TryVmovsImmediate(sd, imm32, cond) {
		return
	}
	a.LoadImmediate(IP, int32(imm32), cond)
	a.Vmovsr(sd, IP, cond)
}

// LoadDImmediate loads the IEEE-754 bit pattern of an arbitrary double
// value into dd: the VFP immediate form if representable, otherwise
// materialized through IP and a caller-supplied scratch register (the
// double needs two core registers; IP alone isn't enough).
func (a *Assembler) LoadDImmediate(dd DRegister, imm64 uint64, scratch Register, cond Condition) {
	if a.TryVmovdImmediate(dd, imm64, cond) {
		return
	}
	if scratch == NoRegister || scratch == PC || scratch == IP {
		panic("arm: LoadDImmediate needs a scratch register distinct from IP and PC")
	}
	a.LoadImmediate(IP, int32(uint32(imm64)), cond)
	a.LoadImmediate(scratch, int32(uint32(imm64>>32)), cond)
	a.Vmovdrr(dd, IP, scratch, cond)
}

// LoadFromOffset loads reg from [base, #offset] of the given width. If
// offset does not fit the addressing mode, base is first advanced into IP
// and the load re-emitted at offset 0; base must not already be IP.
func (a *Assembler) LoadFromOffset(t LoadOperandType, reg, base Register, offset int32, cond Condition) {
	if !CanHoldLoadOffset(t, offset) {
		if base == IP {
			panic("arm: LoadFromOffset base must not be IP when offset needs synthesis")
		}
		a.LoadImmediate(IP, offset, cond)
		a.Add(IP, IP, RegisterShifterOperand(base), cond)
		base, offset = IP, 0
	}
	ad := NewAddress(base, offset, Offset)
	switch t {
	case LoadSignedByte:
		a.Ldrsb(reg, ad, cond)
	case LoadUnsignedByte:
		a.Ldrb(reg, ad, cond)
	case LoadSignedHalfword:
		a.Ldrsh(reg, ad, cond)
	case LoadUnsignedHalfword:
		a.Ldrh(reg, ad, cond)
	case LoadWord:
		a.Ldr(reg, ad, cond)
	case LoadWordPair:
		a.Ldrd(reg, ad, cond)
	default:
		panic(fmt.Sprintf("arm: LoadFromOffset: unsupported operand type %d", t))
	}
}

// StoreToOffset is the store-side analogue of LoadFromOffset.
func (a *Assembler) StoreToOffset(t StoreOperandType, reg, base Register, offset int32, cond Condition) {
	if !CanHoldStoreOffset(t, offset) {
		if reg == IP || base == IP {
			panic("arm: StoreToOffset reg/base must not be IP when offset needs synthesis")
		}
		a.LoadImmediate(IP, offset, cond)
		a.Add(IP, IP, RegisterShifterOperand(base), cond)
		base, offset = IP, 0
	}
	ad := NewAddress(base, offset, Offset)
	switch t {
	case StoreByte:
		a.Strb(reg, ad, cond)
	case StoreHalfword:
		a.Strh(reg, ad, cond)
	case StoreWord:
		a.Str(reg, ad, cond)
	case StoreWordPair:
		a.Strd(reg, ad, cond)
	default:
		panic(fmt.Sprintf("arm: StoreToOffset: unsupported operand type %d", t))
	}
}

// LoadSFromOffset loads reg from [base, #offset], synthesizing the address
// through IP if offset is out of the VFP addressing range.
func (a *Assembler) LoadSFromOffset(reg SRegister, base Register, offset int32, cond Condition) {
	if !CanHoldLoadOffset(LoadSWord, offset) {
		if base == IP {
			panic("arm: LoadSFromOffset base must not be IP when offset needs synthesis")
		}
		a.LoadImmediate(IP, offset, cond)
		a.Add(IP, IP, RegisterShifterOperand(base), cond)
		base, offset = IP, 0
	}
	a.Vldrs(reg, NewAddress(base, offset, Offset), cond)
}

// StoreSToOffset is the store-side analogue of LoadSFromOffset.
func (a *Assembler) StoreSToOffset(reg SRegister, base Register, offset int32, cond Condition) {
	if !CanHoldStoreOffset(StoreSWord, offset) {
		if base == IP {
			panic("arm: StoreSToOffset base must not be IP when offset needs synthesis")
		}
		a.LoadImmediate(IP, offset, cond)
		a.Add(IP, IP, RegisterShifterOperand(base), cond)
		base, offset = IP, 0
	}
	a.Vstrs(reg, NewAddress(base, offset, Offset), cond)
}

// LoadDFromOffset is the double-precision analogue of LoadSFromOffset.
func (a *Assembler) LoadDFromOffset(reg DRegister, base Register, offset int32, cond Condition) {
	if !CanHoldLoadOffset(LoadDWord, offset) {
		if base == IP {
			panic("arm: LoadDFromOffset base must not be IP when offset needs synthesis")
		}
		a.LoadImmediate(IP, offset, cond)
		a.Add(IP, IP, RegisterShifterOperand(base), cond)
		base, offset = IP, 0
	}
	a.Vldrd(reg, NewAddress(base, offset, Offset), cond)
}

// StoreDToOffset is the store-side analogue of LoadDFromOffset.
func (a *Assembler) StoreDToOffset(reg DRegister, base Register, offset int32, cond Condition) {
	if !CanHoldStoreOffset(StoreDWord, offset) {
		if base == IP {
			panic("arm: StoreDToOffset base must not be IP when offset needs synthesis")
		}
		a.LoadImmediate(IP, offset, cond)
		a.Add(IP, IP, RegisterShifterOperand(base), cond)
		base, offset = IP, 0
	}
	a.Vstrd(reg, NewAddress(base, offset, Offset), cond)
}

// AddConstant computes rd = rn + value using the shortest legal sequence:
// a single add/sub if value or -value fits the shifter-operand immediate
// form, otherwise mvn+add/sub of the bitwise complement through IP, and as
// a last resort movw/movt+add through IP.
func (a *Assembler) AddConstant(rd, rn Register, value int32, cond Condition) {
	if value == 0 {
		if rd != rn {
			a.Mov(rd, RegisterShifterOperand(rn), cond)
		}
		return
	}
	if so, ok := TryShifterOperandFromImmediate(uint32(value)); ok {
		a.Add(rd, rn, so, cond)
		return
	}
	if so, ok := TryShifterOperandFromImmediate(uint32(-value)); ok {
		a.Sub(rd, rn, so, cond)
		return
	}
	if rn == IP {
		panic("arm: AddConstant source register must not be IP when the constant needs synthesis")
	}
	if so, ok := TryShifterOperandFromImmediate(^uint32(value)); ok {
		a.Mvn(IP, so, cond)
		a.Add(rd, rn, RegisterShifterOperand(IP), cond)
		return
	}
	if so, ok := TryShifterOperandFromImmediate(^uint32(-value)); ok {
		a.Mvn(IP, so, cond)
		a.Sub(rd, rn, RegisterShifterOperand(IP), cond)
		return
	}
	a.Movw(IP, low16Bits(value), cond)
	if high := high16Bits(value); high != 0 {
		a.Movt(IP, high, cond)
	}
	a.Add(rd, rn, RegisterShifterOperand(IP), cond)
}

// AddConstantToSelf computes rd += value, in place.
func (a *Assembler) AddConstantToSelf(rd Register, value int32, cond Condition) {
	a.AddConstant(rd, rd, value, cond)
}

// AddConstantSetFlags is AddConstant's flag-setting counterpart (adds/subs
// in place of add/sub).
func (a *Assembler) AddConstantSetFlags(rd, rn Register, value int32, cond Condition) {
	if so, ok := TryShifterOperandFromImmediate(uint32(value)); ok {
		a.Adds(rd, rn, so, cond)
		return
	}
	if so, ok := TryShifterOperandFromImmediate(uint32(-value)); ok {
		a.Subs(rd, rn, so, cond)
		return
	}
	if rn == IP {
		panic("arm: AddConstantSetFlags source register must not be IP when the constant needs synthesis")
	}
	if so, ok := TryShifterOperandFromImmediate(^uint32(value)); ok {
		a.Mvn(IP, so, cond)
		a.Adds(rd, rn, RegisterShifterOperand(IP), cond)
		return
	}
	if so, ok := TryShifterOperandFromImmediate(^uint32(-value)); ok {
		a.Mvn(IP, so, cond)
		a.Subs(rd, rn, RegisterShifterOperand(IP), cond)
		return
	}
	a.Movw(IP, low16Bits(value), cond)
	if high := high16Bits(value); high != 0 {
		a.Movt(IP, high, cond)
	}
	a.Adds(rd, rn, RegisterShifterOperand(IP), cond)
}

// AddConstantWithCarry is AddConstant's carry-propagating counterpart
// (adc/sbc), used to synthesize a 64-bit add across a register pair. The
// "negated" comparison for the subtract branch is -value-1, matching the
// borrow semantics of SBC.
func (a *Assembler) AddConstantWithCarry(rd, rn Register, value int32, cond Condition) {
	if so, ok := TryShifterOperandFromImmediate(uint32(value)); ok {
		a.Adc(rd, rn, so, cond)
		return
	}
	if so, ok := TryShifterOperandFromImmediate(uint32(-value - 1)); ok {
		a.Sbc(rd, rn, so, cond)
		return
	}
	if rn == IP {
		panic("arm: AddConstantWithCarry source register must not be IP when the constant needs synthesis")
	}
	if so, ok := TryShifterOperandFromImmediate(^uint32(value)); ok {
		a.Mvn(IP, so, cond)
		a.Adc(rd, rn, RegisterShifterOperand(IP), cond)
		return
	}
	if so, ok := TryShifterOperandFromImmediate(^uint32(-value - 1)); ok {
		a.Mvn(IP, so, cond)
		a.Sbc(rd, rn, RegisterShifterOperand(IP), cond)
		return
	}
	a.Movw(IP, low16Bits(value), cond)
	if high := high16Bits(value); high != 0 {
		a.Movt(IP, high, cond)
	}
	a.Adc(rd, rn, RegisterShifterOperand(IP), cond)
}

// Push encodes "str rd, [SP, #-4]!", the single-register push.
func (a *Assembler) Push(rd Register, cond Condition) {
	a.Str(rd, NewAddress(SP, -wordSize, PreIndex), cond)
}

// Pop encodes "ldr rd, [SP], #4", the single-register pop.
func (a *Assembler) Pop(rd Register, cond Condition) {
	a.Ldr(rd, NewAddress(SP, wordSize, PostIndex), cond)
}

// PushList encodes "stmdb sp!, regs", pushing every register in regs.
func (a *Assembler) PushList(regs RegList, cond Condition) {
	a.Stm(DB_W, SP, regs, cond)
}

// PopList encodes "ldmia sp!, regs", popping every register in regs.
func (a *Assembler) PopList(regs RegList, cond Condition) {
	a.Ldm(IA_W, SP, regs, cond)
}

// MovReg encodes "mov rd, rm", skipping the emission entirely when rd==rm.
func (a *Assembler) MovReg(rd, rm Register, cond Condition) {
	if rd != rm {
		a.Mov(rd, RegisterShifterOperand(rm), cond)
	}
}

// Lsl encodes "mov rd, rm, lsl #shiftImm". shiftImm must not be 0 — use
// MovReg for a plain copy.
func (a *Assembler) Lsl(rd, rm Register, shiftImm uint32, cond Condition) {
	if shiftImm == 0 {
		panic("arm: Lsl shift amount must not be 0; use MovReg")
	}
	a.Mov(rd, ShiftedByImmediate(rm, LSL, uint8(shiftImm)), cond)
}

// Lsr encodes "mov rd, rm, lsr #shiftImm", translating shiftImm==32 to
// UAL's imm5=0 encoding. shiftImm must not be 0.
func (a *Assembler) Lsr(rd, rm Register, shiftImm uint32, cond Condition) {
	if shiftImm == 0 {
		panic("arm: Lsr shift amount must not be 0; use MovReg")
	}
	if shiftImm == 32 {
		shiftImm = 0
	}
	a.Mov(rd, ShiftedByImmediate(rm, LSR, uint8(shiftImm)), cond)
}

// Asr encodes "mov rd, rm, asr #shiftImm", translating shiftImm==32 to
// UAL's imm5=0 encoding. shiftImm must not be 0.
func (a *Assembler) Asr(rd, rm Register, shiftImm uint32, cond Condition) {
	if shiftImm == 0 {
		panic("arm: Asr shift amount must not be 0; use MovReg")
	}
	if shiftImm == 32 {
		shiftImm = 0
	}
	a.Mov(rd, ShiftedByImmediate(rm, ASR, uint8(shiftImm)), cond)
}

// Ror encodes "mov rd, rm, ror #shiftImm". shiftImm must not be 0 — use
// Rrx for rotate-with-extend.
func (a *Assembler) Ror(rd, rm Register, shiftImm uint32, cond Condition) {
	if shiftImm == 0 {
		panic("arm: Ror shift amount must not be 0; use Rrx")
	}
	a.Mov(rd, ShiftedByImmediate(rm, ROR, uint8(shiftImm)), cond)
}

// Rrx encodes "mov rd, rm, rrx" (rotate right one bit, shifting the carry
// flag in).
func (a *Assembler) Rrx(rd, rm Register, cond Condition) {
	a.Mov(rd, ShiftedByImmediate(rm, ROR, 0), cond)
}

// Branch loads label's address into IP and jumps to it unconditionally.
// The target address is never patched once emitted.
func (a *Assembler) Branch(label *ExternalLabel) {
	a.LoadImmediate(IP, int32(label.address), AL)
	a.Mov(PC, RegisterShifterOperand(IP), AL)
}

// BranchLink calls label through the object pool and LR. When the pool
// offset doesn't fit a single Ldr, its high part is added to CP with one
// add-immediate if encodable, otherwise through movw/movt (never mvn). It
// then uses blx so branch-return prediction recognizes the call.
func (a *Assembler) BranchLink(label *ExternalLabel) {
	idx := a.pool.AddExternalLabel(label.address)
	offset := PoolOffset(idx)
	if CanHoldLoadOffset(LoadWord, offset) {
		a.Ldr(LR, NewAddress(CP, offset, Offset), AL)
	} else {
		offsetHi := offset &^ offset12Mask
		offsetLo := offset & offset12Mask
		if so, ok := TryShifterOperandFromImmediate(uint32(offsetHi)); ok {
			a.Add(LR, CP, so, AL)
		} else {
			a.Movw(LR, low16Bits(offsetHi), AL)
			if high := high16Bits(offsetHi); high != 0 {
				a.Movt(LR, high, AL)
			}
			a.Add(LR, CP, RegisterShifterOperand(LR), AL)
		}
		a.Ldr(LR, NewAddress(LR, offsetLo, Offset), AL)
	}
	a.Blx(LR, AL)
}

// BranchLinkStore stores PC into ad then calls label through IP, the
// variant used when the callee needs the return address at a fixed memory
// location rather than in LR.
func (a *Assembler) BranchLinkStore(label *ExternalLabel, ad Address) {
	a.LoadImmediate(IP, int32(label.address), AL)
	a.Str(PC, ad, AL)
	a.Blx(IP, AL)
}

// BranchLinkOffset calls the address held at [base, #offset] through IP.
func (a *Assembler) BranchLinkOffset(base Register, offset int32) {
	if base == PC || base == IP {
		panic("arm: BranchLinkOffset base must not be PC or IP")
	}
	if CanHoldLoadOffset(LoadWord, offset) {
		a.Ldr(IP, NewAddress(base, offset, Offset), AL)
	} else {
		offsetHi := offset &^ offset12Mask
		offsetLo := offset & offset12Mask
		if so, ok := TryShifterOperandFromImmediate(uint32(offsetHi)); ok {
			a.Add(IP, base, so, AL)
			a.Ldr(IP, NewAddress(IP, offsetLo, Offset), AL)
		} else {
			a.LoadImmediate(IP, offsetHi, AL)
			a.Add(IP, IP, RegisterShifterOperand(base), AL)
			a.Ldr(IP, NewAddress(IP, offsetLo, Offset), AL)
		}
	}
	a.Blx(IP, AL)
}

// LoadObject materializes a pooled object handle into rd by loading it
// from the object pool through CP, splitting the pool offset through rd
// itself when it doesn't fit a single Ldr.
func (a *Assembler) LoadObject(rd Register, obj Object) {
	idx := a.pool.AddObject(obj)
	offset := PoolOffset(idx)
	if CanHoldLoadOffset(LoadWord, offset) {
		a.Ldr(rd, NewAddress(CP, offset, Offset), AL)
		return
	}
	offsetHi := offset &^ offset12Mask
	offsetLo := offset & offset12Mask
	a.AddConstant(rd, CP, offsetHi, AL)
	a.Ldr(rd, NewAddress(rd, offsetLo, Offset), AL)
}

// MarkExceptionHandler emits a marker instruction ("tst pc, #0") that the
// stack unwinder recognizes, immediately followed by an unconditional jump
// over a PC-relative branch to label, so the handler entry stays reachable
// without the marker itself ever executing.
func (a *Assembler) MarkExceptionHandler(label *Label) {
	a.emitType01(AL, TST, 1, PC, R0, ShifterOperandFromImmediateOrPanic(0))
	over := NewLabel()
	a.B(over, AL)
	a.emitBranch(AL, label, false)
	a.Bind(over)
}

// ShifterOperandFromImmediateOrPanic is TryShifterOperandFromImmediate
// without the ok result, for callers that know statically that value fits
// (e.g. the literal 0 used by MarkExceptionHandler's marker instruction).
func ShifterOperandFromImmediateOrPanic(value uint32) ShifterOperand {
	so, ok := TryShifterOperandFromImmediate(value)
	if !ok {
		panic(fmt.Sprintf("arm: immediate %#x is not encodable as a shifter operand", value))
	}
	return so
}

// breakpointWord is the ARM BKPT #0 encoding used to fill uninitialized
// code-cache memory so stray execution traps immediately.
var breakpointWord = func() int32 {
	word := uint32(0xe1200070)
	return int32(word)
}()

// stopMessageSvcCode is the SVC immediate Stop's marker sequence traps
// with once the inline message pointer has been skipped over.
const stopMessageSvcCode = uint32(1)

// InitializeMemoryWithBreakpoints fills a 4-aligned byte range with the
// fixed breakpoint word, the pattern the code cache is seeded with before
// any real code is emitted into it.
func InitializeMemoryWithBreakpoints(mem []byte) {
	if len(mem)%4 != 0 {
		panic("arm: breakpoint-fill region length must be a multiple of 4")
	}
	for i := 0; i+4 <= len(mem); i += 4 {
		binary.LittleEndian.PutUint32(mem[i:i+4], uint32(breakpointWord))
	}
}

// StopMessagePrinter is Stop's extension point: when set and PrintStopMessage is enabled, Stop calls
// it with the message before emitting the trap sequence, so an embedding
// runtime can wire in its own "print and halt" stub call. Left nil, Stop
// still emits the branch-over/message/svc marker sequence — only the
// runtime call is skipped.
type StopMessagePrinter func(a *Assembler, message string)

// Stop emits a debugger/simulator-visible trap: a branch over an inline
// copy of messageAddr (the host address of message's storage), landing on
// an svc instruction a simulator or debugger can recognize to print
// message and continue. If PrintStopMessage is set and a StopMessagePrinter
// has been configured, it runs first.
func (a *Assembler) Stop(message string, messageAddr uint32) {
	if a.printStopMessage && a.stopMessagePrinter != nil {
		a.stopMessagePrinter(a, message)
	}
	stop := NewLabel()
	a.B(stop, AL)
	a.buf.EmitInt32(int32(messageAddr))
	a.Bind(stop)
	a.Svc(stopMessageSvcCode)
}
