package arm

import "fmt"

// Object is an opaque compile-time constant referenced from emitted code
// through the assembler's pool base register. Identity is whatever Go's ==
// computes for the concrete value a caller supplies — callers that want
// reference identity (the common case: a heap-object handle) pass a
// pointer or other comparable reference type. Object panics if compared
// against a value whose dynamic type is not comparable; that mirrors the
// host runtime's handle equality, which is always pointer/value equality.
type Object interface{}

// poolEntry is one row of the object pool: either a deduplicated pooled
// object or a never-deduplicated boxed external address.
type poolEntry struct {
	object   Object
	external bool
	// addr holds the already tag-shifted value for an external entry.
	addr int32
}

const (
	wordSize = int32(4)

	// heapObjectTag is the low-order tag bit distinguishing a heap pointer
	// from an untagged value in the embedding runtime's representation.
	// Supplied by the collaborator's object layout; opaque to this package
	// beyond being a constant to add/subtract.
	heapObjectTag = int32(1)

	// poolHeaderOffset is the byte offset from the pool object's tagged
	// pointer to its first element slot. Supplied by the collaborator.
	poolHeaderOffset = int32(3) * wordSize

	// smiTagShift is the number of low bits the embedding runtime reserves
	// to distinguish a boxed small integer from a heap pointer. External
	// addresses are stored pool-boxed by shifting right by this amount.
	smiTagShift = uint(1)

	// offset12Mask splits a pool offset into the unsigned 12-bit field a
	// single Ldr/Str can hold directly and a signed high remainder that
	// must be materialized into a register first.
	offset12Mask = int32(0xfff)
)

// Pool is the append-only side table of compile-time constants an
// Assembler's emitted code references as "[CP, #offset]". Pooled object
// handles are deduplicated by identity; external addresses never are,
// since each reference may be patched independently by the code-patching
// subsystem.
type Pool struct {
	entries []poolEntry
}

// newPool returns an empty pool.
func newPool() *Pool { return &Pool{} }

// Len returns the number of entries currently in the pool.
func (p *Pool) Len() int { return len(p.entries) }

// AddObject records h in the pool, returning an index a caller combines
// with PoolOffset to compute the load offset from the pool base register.
//
// If h already appears among the non-external entries (compared by ==),
// its existing 0-based index is returned. Otherwise h is appended and the
// new pool length is returned. This asymmetry — found returns an index,
// appended returns a length — matches PoolOffset's "index+1" addressing
// for freshly appended entries and is load-bearing: see DESIGN.md.
func (p *Pool) AddObject(h Object) int32 {
	for i, e := range p.entries {
		if !e.external && e.object == h {
			return int32(i)
		}
	}
	p.entries = append(p.entries, poolEntry{object: h})
	return int32(len(p.entries))
}

// AddExternalLabel appends addr to the pool as a boxed external address
// and returns the new pool length, never deduplicating against an existing
// entry. addr must be aligned to the host's small-integer tag shift, since
// boxing right-shifts it by smiTagShift bits; an unaligned address would
// silently lose its low bits.
func (p *Pool) AddExternalLabel(addr uint32) int32 {
	if !isAligned(uint(addr), smiTagShift) {
		panic(fmt.Sprintf("arm: external address 0x%x is not aligned to the %d-bit small-integer tag shift", addr, smiTagShift))
	}
	p.entries = append(p.entries, poolEntry{external: true, addr: int32(addr >> smiTagShift)})
	return int32(len(p.entries))
}

// PoolOffset computes the byte offset from the pool base register (CP) at
// which the entry produced by index (an AddObject/AddExternalLabel result)
// is materialized: header + 4*index - tag.
func PoolOffset(index int32) int32 {
	return poolHeaderOffset + wordSize*index - heapObjectTag
}

// PoolEntry is a read-only view of one row of a finalized Pool, consumed by
// the enclosing runtime once a pool base register is initialized.
type PoolEntry struct {
	// Object is the pooled handle, or nil for an external-address entry.
	Object Object
	// External reports whether this entry is a boxed external address
	// rather than a pooled object handle.
	External bool
	// BoxedAddress is the tag-shifted address stored for an external
	// entry; zero for an object entry.
	BoxedAddress int32
}

// Entries returns the finalized, ordered contents of the pool.
func (p *Pool) Entries() []PoolEntry {
	out := make([]PoolEntry, len(p.entries))
	for i, e := range p.entries {
		out[i] = PoolEntry{Object: e.object, External: e.external, BoxedAddress: e.addr}
	}
	return out
}
