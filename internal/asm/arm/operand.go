package arm

import "fmt"

// ShifterOperand is ARM's "operand 2": either an 8-bit immediate rotated by
// an even amount (the immediate form), or a register with an optional
// constant or register shift (the register form). Exactly one form is ever
// represented by a given value; the zero value is the register form of R0
// unshifted.
type ShifterOperand struct {
	immediate bool
	// enc holds the low 12 bits of the instruction word this operand
	// contributes: (rotate:4 | imm8:8) for the immediate form, or the
	// packed shift/register fields for the register form.
	enc int32
}

// typeBit returns the value of instruction bit 25 (the "I" bit) that a
// caller emitting a data-processing instruction must OR in alongside enc.
func (so ShifterOperand) typeBit() int32 {
	if so.immediate {
		return 1
	}
	return 0
}

// encoding returns the raw 12-bit field.
func (so ShifterOperand) encoding() int32 {
	return so.enc
}

// IsImmediate reports whether so is the immediate (rotated 8-bit) form.
func (so ShifterOperand) IsImmediate() bool {
	return so.immediate
}

// TryShifterOperandFromImmediate attempts to encode value as a rotated
// 8-bit immediate: rotate_right(imm8, 2*rot) == value for some rot in
// 0..15. It tries every even rotation and returns the first one found, so
// the result is deterministic across runs for a given value. Reports false
// if no rotation makes value fit in 8 bits.
func TryShifterOperandFromImmediate(value uint32) (ShifterOperand, bool) {
	for rot := uint(0); rot < 16; rot++ {
		imm8 := rotateLeft32(value, rot*2)
		if imm8 <= 0xff {
			return ShifterOperand{immediate: true, enc: int32(rot)<<8 | int32(imm8)}, true
		}
	}
	return ShifterOperand{}, false
}

func rotateLeft32(v uint32, n uint) uint32 {
	n &= 31
	if n == 0 {
		return v
	}
	return rotateRight32(v, 32-n)
}

// RegisterShifterOperand returns the unshifted register-form operand "rm".
func RegisterShifterOperand(rm Register) ShifterOperand {
	return ShifterOperand{enc: int32(rm)}
}

// ShiftedByImmediate returns the register-form operand "rm, shift #imm5".
// imm5 is taken verbatim: callers that need UAL's "shift by 32 encodes as
// imm5=0" convention (LSR/ASR) are expected to translate before calling, as
// the macro layer does.
func ShiftedByImmediate(rm Register, shift Shift, imm5 uint8) ShifterOperand {
	return ShifterOperand{enc: int32(imm5&0x1f)<<shiftImmShift | int32(shift)<<shiftShift | int32(rm)}
}

// ShiftedByRegister returns the register-form operand "rm, shift rs".
func ShiftedByRegister(rm Register, shift Shift, rs Register) ShifterOperand {
	return ShifterOperand{enc: int32(rs)<<shiftRegisterShift | int32(shift)<<shiftShift | bit(4) | int32(rm)}
}

func (so ShifterOperand) String() string {
	if so.immediate {
		rot := uint((so.enc >> 8) & 0xf)
		imm8 := uint32(so.enc & 0xff)
		return fmt.Sprintf("#%d", rotateRight32(imm8, rot*2))
	}
	return fmt.Sprintf("operand2(0x%03x)", so.enc)
}
