package arm

import (
	"github.com/arm32jit/armasm/internal/asm"
)

// Assembler owns a single code buffer and object pool and exposes every
// ARM/VFP emitter this package supports. It is not safe for concurrent use,
// and a Label or Object created against one Assembler must not be used
// with another.
type Assembler struct {
	buf  *asm.Buffer
	pool *Pool

	printStopMessage   bool
	stopMessagePrinter StopMessagePrinter
}

// NewAssembler returns an empty Assembler, with its code buffer
// pre-reserving space for approximately initialCapacityHint bytes.
func NewAssembler(initialCapacityHint int) *Assembler {
	return &Assembler{
		buf:              asm.NewBuffer(initialCapacityHint),
		pool:             newPool(),
		printStopMessage: true,
	}
}

// emit appends a raw 32-bit instruction word and returns its offset.
func (a *Assembler) emit(word int32) int {
	return a.buf.EmitInt32(word)
}

// Size returns the number of bytes emitted so far. Always a multiple of 4.
func (a *Assembler) Size() int {
	return a.buf.Size()
}

// Bind resolves every unbound branch linked to label and marks it bound at
// the buffer's current end. Panics if label is already bound.
func (a *Assembler) Bind(label *Label) {
	bindLabel(a.buf, label)
}

// SetPrintStopMessage toggles whether Stop invokes its configured
// StopMessagePrinter. Defaults to true, mirroring the print_stop_message
// flag's default in the host runtime.
func (a *Assembler) SetPrintStopMessage(v bool) {
	a.printStopMessage = v
}

// SetStopMessagePrinter installs the callback Stop uses to emit a runtime
// call that prints its message, when PrintStopMessage is enabled.
func (a *Assembler) SetStopMessagePrinter(p StopMessagePrinter) {
	a.stopMessagePrinter = p
}

// AddObject records obj in the pool (deduplicated by identity) for a
// later LoadObject, returning the same index LoadObject would compute
// internally. Exposed for callers that need the index without also
// emitting a load.
func (a *Assembler) AddObject(obj Object) int32 {
	return a.pool.AddObject(obj)
}

// AddExternalLabel records label's address in the pool as a boxed,
// never-deduplicated entry. Exposed for callers that manage their own call
// sequences instead of using BranchLink.
func (a *Assembler) AddExternalLabel(label *ExternalLabel) int32 {
	return a.pool.AddExternalLabel(label.address)
}

// Finalize returns a copy of the emitted code buffer and the finalized
// object pool contents. The Assembler remains usable afterward, though
// doing so is unusual.
func (a *Assembler) Finalize() ([]byte, []PoolEntry) {
	code := make([]byte, a.buf.Size())
	copy(code, a.buf.Bytes())
	return code, a.pool.Entries()
}
