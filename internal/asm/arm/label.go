package arm

import (
	"fmt"

	"github.com/arm32jit/armasm/internal/asm"
)

const branchOffsetMask = 0x00ffffff

// Label is a forward/backward branch target within a single Assembler's
// buffer. It has three states:
//
//   - unused: position == 0, never referenced.
//   - linked: position > 0; position-1 is the buffer offset of the most
//     recently emitted branch that still needs patching. That branch's own
//     offset field holds (verbatim, still tagged) l.position as it was at
//     the moment of emission, so following the chain is just decoding one
//     word and assigning it straight back to position, terminating when a
//     decoded value of 0 (unused) is reached.
//   - bound: position < 0; -position-1 is the buffer offset the label
//     refers to.
//
// The zero value is an unused label, ready to use.
type Label struct {
	position int32
}

// NewLabel returns a fresh, unused label.
func NewLabel() *Label { return &Label{} }

func (l *Label) isUnused() bool { return l.position == 0 }
func (l *Label) isLinked() bool { return l.position > 0 }

// IsBound reports whether the label has been bound to a buffer offset.
func (l *Label) IsBound() bool { return l.position < 0 }

// boundPosition returns the buffer offset a bound label refers to. Panics
// if the label is not bound.
func (l *Label) boundPosition() int32 {
	if !l.IsBound() {
		panic("arm: label is not bound")
	}
	return -l.position - 1
}

// linkedPosition returns the buffer offset of the most recent unresolved
// site referencing this (linked) label.
func (l *Label) linkedPosition() int32 {
	return l.position - 1
}

func (l *Label) linkTo(pos int32) { l.position = pos + 1 }
func (l *Label) bindTo(pos int32) { l.position = -pos - 1 }

// EncodeBranchOffset rewrites the 24-bit offset field of a B/BL instruction
// word inst so that it encodes offset, which is the byte distance from the
// instruction to its target (offset == target - site); ARM's 8-byte PC-read
// bias is subtracted here, not by the caller.
func EncodeBranchOffset(offset int32, inst int32) int32 {
	offset -= 8
	if !isAlignedInt(offset, 2) {
		panic(fmt.Sprintf("arm: branch offset %d is not 4-byte aligned", offset))
	}
	if !isInt(26, offset) {
		panic(fmt.Sprintf("arm: branch offset %d is out of the ±32MiB range", offset))
	}
	offset >>= 2
	offset &= branchOffsetMask
	return (inst &^ branchOffsetMask) | offset
}

// DecodeBranchOffset recovers the byte offset encoded by a previous call to
// EncodeBranchOffset (or by the assembler's own EmitBranch) from a raw
// instruction word.
func DecodeBranchOffset(inst int32) int32 {
	return (((inst & branchOffsetMask) << 8) >> 6) + 8
}

// encodeLinkedPosition and decodeLinkedPosition store and recover a Label's
// own position field, verbatim, in a not-yet-resolved branch instruction's
// offset field. Unlike EncodeBranchOffset/DecodeBranchOffset, which assume
// the field holds a 4-byte-aligned real branch distance, these apply no ARM
// bias or word-scaling: they just sign-extend the raw 24-bit field, so an
// odd (tagged) position round-trips exactly. This keeps the chain's
// terminator value (0, Label's own "unused" sentinel) from ever colliding
// with a genuine linked site, since a linked position is always tagged with
// +1 and so is never itself 0.
func encodeLinkedPosition(pos int32, inst int32) int32 {
	return (inst &^ branchOffsetMask) | (pos & branchOffsetMask)
}

func decodeLinkedPosition(inst int32) int32 {
	return ((inst & branchOffsetMask) << 8) >> 8
}

// bindLabel resolves every unresolved branch site linked to l, patching
// each one's offset field to point at the buffer's current end, then marks
// l bound there. Panics if l is already bound.
func bindLabel(buf *asm.Buffer, l *Label) {
	if l.IsBound() {
		panic("arm: label already bound")
	}
	bound := int32(buf.Size())
	for l.isLinked() {
		site := l.linkedPosition()
		word := buf.LoadInt32(int(site))
		// The word's offset field holds l's own tagged position from the
		// moment this site was linked, so it can be assigned straight back
		// to l.position without re-tagging.
		next := decodeLinkedPosition(word)
		buf.StoreInt32(int(site), EncodeBranchOffset(bound-site, word))
		l.position = next
	}
	l.bindTo(bound)
}
