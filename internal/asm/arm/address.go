package arm

import "fmt"

// AddressMode selects how an Address's offset is applied relative to its
// base register.
type AddressMode uint8

const (
	// Offset computes the effective address as rn+offset but leaves rn
	// unmodified.
	Offset AddressMode = iota
	// PreIndex computes the effective address as rn+offset and writes it
	// back into rn.
	PreIndex
	// PostIndex uses rn unmodified as the effective address, then writes
	// rn+offset back into rn.
	PostIndex
	// NegOffset is like Offset but always subtracts the magnitude of
	// offset, regardless of offset's sign.
	NegOffset
)

// Address is an ARM addressing-mode-2/3 operand: a base register plus a
// signed offset (or an index register, not modeled here since none of this
// package's load/store macros need it), combined with an AddressMode.
type Address struct {
	rn     Register
	offset int32
	mode   AddressMode
}

// NewAddress returns the Address "[rn, #offset]" (or the pre/post-indexed
// / negative-offset variants per mode).
func NewAddress(rn Register, offset int32, mode AddressMode) Address {
	return Address{rn: rn, offset: offset, mode: mode}
}

// Base returns the address's base register.
func (a Address) Base() Register { return a.rn }

// Offset returns the address's signed byte offset.
func (a Address) Offset() int32 { return a.offset }

// encoding returns the addressing-mode-2 encoding: P,U,W flags, Rn in bits
// 19..16, and the 12-bit unsigned magnitude of offset in bits 11..0.
func (a Address) encoding() int32 {
	var p, u, w int32
	mag := a.offset
	switch a.mode {
	case Offset:
		p, u, w = 1, signBit(mag), 0
	case PreIndex:
		p, u, w = 1, signBit(mag), 1
	case PostIndex:
		p, u, w = 0, signBit(mag), 0
	case NegOffset:
		p, u, w = 1, 0, 0
	default:
		panic(fmt.Sprintf("arm: invalid address mode %d", a.mode))
	}
	if mag < 0 {
		mag = -mag
	}
	if mag >= 1<<12 {
		panic(fmt.Sprintf("arm: address offset %d does not fit addressing mode 2", a.offset))
	}
	return p*bP | u*bU | w*bW | int32(a.rn)<<rnShift | mag
}

func signBit(v int32) int32 {
	if v >= 0 {
		return 1
	}
	return 0
}

// encoding3 re-splits the 8-bit unsigned offset magnitude of encoding into
// the bits[11:8]/bits[3:0] split used by addressing mode 3 (halfword,
// signed-byte, and doubleword load/store).
func (a Address) encoding3() int32 {
	enc := a.encoding()
	const offsetMask = (1 << 12) - 1
	offset := enc & offsetMask
	if offset >= 256 {
		panic(fmt.Sprintf("arm: address offset %d does not fit addressing mode 3", a.offset))
	}
	return (enc &^ offsetMask) | ((offset & 0xf0) << 4) | (offset & 0xf)
}

// vencoding computes the VFP 10-bit word-scaled addressing encoding used by
// VLDR/VSTR. Only Offset and NegOffset modes are legal; the magnitude must
// be a non-negative multiple of 4 strictly less than 1024.
func (a Address) vencoding() int32 {
	enc := a.encoding()
	const offsetMask = (1 << 12) - 1
	offset := enc & offsetMask
	if offset >= 1<<10 {
		panic(fmt.Sprintf("arm: VFP address offset %d out of range", a.offset))
	}
	if !isAligned(uint(offset), 2) {
		panic(fmt.Sprintf("arm: VFP address offset %d must be 4-aligned", a.offset))
	}
	mode := enc & ((8 | 4 | 1) << 21)
	if mode != Offset.pUWBits() && mode != NegOffset.pUWBits() {
		panic("arm: vencoding requires Offset or NegOffset addressing mode")
	}
	v := (enc & (0xf << rnShift)) | (offset >> 2)
	if mode == Offset.pUWBits() {
		v |= bU
	}
	return v
}

// pUWBits returns the P/U/W bit pattern (with offset/index bits masked out)
// that a bare AddressMode contributes, used only to recover the mode from
// an already-encoded word in vencoding.
func (m AddressMode) pUWBits() int32 {
	switch m {
	case Offset:
		return bP | bU
	case PreIndex:
		return bP | bU | bW
	case PostIndex:
		return bU
	case NegOffset:
		return bP
	default:
		panic(fmt.Sprintf("arm: invalid address mode %d", m))
	}
}

// Load/store operand widths, used by CanHoldLoadOffset/CanHoldStoreOffset
// to select the legal offset range for a given access.
type LoadOperandType int

const (
	LoadSignedByte LoadOperandType = iota
	LoadUnsignedByte
	LoadSignedHalfword
	LoadUnsignedHalfword
	LoadWord
	LoadWordPair
	LoadSWord
	LoadDWord
)

type StoreOperandType int

const (
	StoreByte StoreOperandType = iota
	StoreHalfword
	StoreWord
	StoreWordPair
	StoreSWord
	StoreDWord
)

// CanHoldLoadOffset reports whether offset is within the legal range for a
// load of the given width: addressing mode 3 (±8 bits) for signed-byte and
// halfword forms, mode 2 (±12 bits) for byte/word, and the VFP encoding
// (±10 bits, 4-aligned) for S/D loads.
func CanHoldLoadOffset(t LoadOperandType, offset int32) bool {
	switch t {
	case LoadSignedByte, LoadSignedHalfword, LoadUnsignedHalfword, LoadWordPair:
		return isAbsoluteUint(8, offset)
	case LoadUnsignedByte, LoadWord:
		return isAbsoluteUint(12, offset)
	case LoadSWord, LoadDWord:
		return isAbsoluteUint(10, offset) && isAlignedInt(offset, 2)
	default:
		panic(fmt.Sprintf("arm: invalid load operand type %d", t))
	}
}

// CanHoldStoreOffset is the store-side analogue of CanHoldLoadOffset.
func CanHoldStoreOffset(t StoreOperandType, offset int32) bool {
	switch t {
	case StoreHalfword, StoreWordPair:
		return isAbsoluteUint(8, offset)
	case StoreByte, StoreWord:
		return isAbsoluteUint(12, offset)
	case StoreSWord, StoreDWord:
		return isAbsoluteUint(10, offset) && isAlignedInt(offset, 2)
	default:
		panic(fmt.Sprintf("arm: invalid store operand type %d", t))
	}
}
