// Command armdump assembles one of a few canned ARM32 instruction
// sequences and prints the resulting machine code and object pool contents
// as hex. It exists to give this module a runnable artifact exercising the
// assembler façade the way an external caller would.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/arm32jit/armasm/internal/asm/arm"
)

func main() {
	doMain(os.Stdout, os.Exit)
}

// doMain is separated out for the purpose of unit testing.
func doMain(stdout io.Writer, exit func(code int)) {
	demo := flag.String("demo", "loadimm", "demo snippet to assemble: loadimm, pool, loop")
	flag.Parse()

	build, ok := demos[*demo]
	if !ok {
		log.Printf("unknown demo %q (want one of loadimm, pool, loop)", *demo)
		exit(1)
		return
	}

	a := arm.NewAssembler(64)
	build(a)
	code, entries := a.Finalize()

	fmt.Fprintf(stdout, "demo: %s\n", *demo)
	fmt.Fprintf(stdout, "code (%d bytes):\n", len(code))
	for i := 0; i+4 <= len(code); i += 4 {
		fmt.Fprintf(stdout, "  %#08x: %02x %02x %02x %02x\n", i, code[i], code[i+1], code[i+2], code[i+3])
	}
	fmt.Fprintf(stdout, "pool (%d entries):\n", len(entries))
	for i, e := range entries {
		if e.External {
			fmt.Fprintf(stdout, "  [%d] external addr=%#x\n", i, e.BoxedAddress)
		} else {
			fmt.Fprintf(stdout, "  [%d] object=%v\n", i, e.Object)
		}
	}
	exit(0)
}

var demos = map[string]func(*arm.Assembler){
	"loadimm": demoLoadImmediate,
	"pool":    demoPool,
	"loop":    demoLoop,
}

// demoLoadImmediate loads two constants into R0 and R1: one that fits a
// single mov, one that needs the movw/movt fallback.
func demoLoadImmediate(a *arm.Assembler) {
	a.LoadImmediate(arm.R0, 0xFF, arm.AL)
	a.LoadImmediate(arm.R1, 0x12345678, arm.AL)
}

// demoPool loads a pooled object handle and an external call target,
// exercising the object pool's two entry kinds.
func demoPool(a *arm.Assembler) {
	type stubHandle struct{ name string }
	handle := &stubHandle{name: "demo-object"}
	a.LoadObject(arm.R0, handle)
	a.BranchLink(arm.NewExternalLabel(0x10000))
}

// demoLoop assembles a small decrementing loop: mov r0, #4; loop: subs r0,
// r0, #1; bne loop. Exercises a backward branch to a label that is already
// bound when the branch is emitted.
func demoLoop(a *arm.Assembler) {
	loop := arm.NewLabel()
	a.Mov(arm.R0, arm.ShifterOperandFromImmediateOrPanic(4), arm.AL)
	a.Bind(loop)
	a.Subs(arm.R0, arm.R0, arm.ShifterOperandFromImmediateOrPanic(1), arm.AL)
	a.B(loop, arm.NE)
}
