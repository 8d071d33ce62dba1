// Package asm holds the architecture-neutral pieces shared by per-architecture
// JIT assembler backends: a growable, little-endian code buffer.
package asm

import "encoding/binary"

// Buffer is an append-only little-endian byte buffer that backs a single
// assembler instance. It grows by doubling, amortizing the cost of appending
// one instruction at a time, and never shrinks.
//
// Unlike a code segment mapped from the OS, a Buffer owns a plain Go slice:
// the assembler using it is not responsible for any OS resource, only for
// eventually copying Bytes() into an executable mapping.
type Buffer struct {
	data []byte
}

// NewBuffer returns an empty Buffer with capacity pre-reserved for approximately
// initialCapacityHint bytes of code.
func NewBuffer(initialCapacityHint int) *Buffer {
	if initialCapacityHint <= 0 {
		initialCapacityHint = 64
	}
	return &Buffer{data: make([]byte, 0, initialCapacityHint)}
}

// Size returns the number of bytes written so far.
func (b *Buffer) Size() int {
	return len(b.data)
}

// Bytes returns the buffer contents. The returned slice aliases the buffer's
// backing array and is only valid until the next Emit.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// EmitInt32 appends a 32-bit word in little-endian order and returns the
// offset at which it was written.
func (b *Buffer) EmitInt32(v int32) int {
	pos := len(b.data)
	b.grow(4)
	binary.LittleEndian.PutUint32(b.data[pos:pos+4], uint32(v))
	return pos
}

// LoadInt32 reads the 32-bit word at the given byte offset.
func (b *Buffer) LoadInt32(pos int) int32 {
	return int32(binary.LittleEndian.Uint32(b.data[pos : pos+4]))
}

// StoreInt32 overwrites the 32-bit word at the given byte offset. pos must
// refer to a word previously written by EmitInt32.
func (b *Buffer) StoreInt32(pos int, v int32) {
	binary.LittleEndian.PutUint32(b.data[pos:pos+4], uint32(v))
}

// grow ensures n more bytes are available at the end of the buffer and
// extends its length by n.
func (b *Buffer) grow(n int) {
	want := len(b.data) + n
	if want <= cap(b.data) {
		b.data = b.data[:want]
		return
	}
	newCap := cap(b.data)
	if newCap == 0 {
		newCap = 64
	}
	for newCap < want {
		newCap *= 2
	}
	grown := make([]byte, want, newCap)
	copy(grown, b.data)
	b.data = grown
}
