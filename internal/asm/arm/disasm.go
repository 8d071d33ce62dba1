package arm

import "fmt"

// This file is a developer convenience, not a decoder: Disassemble renders
// one line per emitted word for the instruction classes this package itself
// emits (data processing, single-register memory transfer, branch), and
// falls back to a raw hex line for every word outside that range (VFP,
// multiply, block transfer, system). It is never consulted by the encoder
// and has no bearing on correctness.

var opcodeMnemonics = map[Opcode]string{
	AND: "and", EOR: "eor", SUB: "sub", RSB: "rsb",
	ADD: "add", ADC: "adc", SBC: "sbc", RSC: "rsc",
	TST: "tst", TEQ: "teq", CMP: "cmp", CMN: "cmn",
	ORR: "orr", MOV: "mov", BIC: "bic", MVN: "mvn",
}

// Disassemble renders the assembler's current buffer contents, one line per
// 32-bit word, in an AT&T-ish syntax.
func (a *Assembler) Disassemble() []string {
	data := a.buf.Bytes()
	lines := make([]string, 0, len(data)/4)
	for off := 0; off+4 <= len(data); off += 4 {
		word := a.buf.LoadInt32(off)
		lines = append(lines, disassembleWord(word))
	}
	return lines
}

func disassembleWord(word int32) string {
	cond := Condition((word >> conditionShift) & 0xf)
	class := (word >> 25) & 0x7

	switch {
	case cond == SpecialCondition:
		// Unconditional-space words (clrex) use the hex fallback below.
	case class == 5:
		link := (word>>24)&1 != 0
		mnemonic := "b"
		if link {
			mnemonic = "bl"
		}
		offset := DecodeBranchOffset(word)
		return fmt.Sprintf("%s%s #%d", mnemonic, cond, offset)
	case class == 0 || class == 1:
		opcode := Opcode((word >> opcodeShift) & 0xf)
		mnemonic, ok := opcodeMnemonics[opcode]
		if !ok {
			break
		}
		if class == 0 && word&(bit(7)|bit(4)) == bit(7)|bit(4) {
			// Multiply, halfword/doubleword transfer, exclusive monitor.
			break
		}
		if opcode >= TST && opcode <= CMN && (word>>sShift)&1 == 0 {
			// Miscellaneous space: clz, blx, bkpt, nop.
			break
		}
		setCC := (word>>sShift)&1 != 0
		if setCC && opcode != TST && opcode != TEQ && opcode != CMP && opcode != CMN {
			mnemonic += "s"
		}
		rn := Register((word >> rnShift) & 0xf)
		rd := Register((word >> rdShift) & 0xf)
		operand2 := word & 0xfff
		switch opcode {
		case MOV, MVN:
			return fmt.Sprintf("%s%s %s, operand2(0x%03x)", mnemonic, cond, rd, operand2)
		case TST, TEQ, CMP, CMN:
			return fmt.Sprintf("%s%s %s, operand2(0x%03x)", mnemonic, cond, rn, operand2)
		default:
			return fmt.Sprintf("%s%s %s, %s, operand2(0x%03x)", mnemonic, cond, rd, rn, operand2)
		}
	case class == 2:
		load := word&bL != 0
		byteAccess := word&bB != 0
		rn := Register((word >> rnShift) & 0xf)
		rd := Register((word >> rdShift) & 0xf)
		offset := word & 0xfff
		mnemonic := "str"
		if load {
			mnemonic = "ldr"
		}
		if byteAccess {
			mnemonic += "b"
		}
		return fmt.Sprintf("%s%s %s, [%s, #%d]", mnemonic, cond, rd, rn, offset)
	}
	return fmt.Sprintf("(word 0x%08x)", uint32(word))
}
