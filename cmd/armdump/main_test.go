package main

import (
	"bytes"
	"flag"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func runMain(t *testing.T, args []string) (int, string) {
	t.Helper()
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = append([]string{"armdump"}, args...)

	var exitCode int
	stdout := &bytes.Buffer{}
	var exited bool
	func() {
		defer func() {
			if r := recover(); r != nil {
				exited = true
			}
		}()
		flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
		doMain(stdout, func(code int) {
			exitCode = code
			panic(code)
		})
	}()
	require.True(t, exited)
	return exitCode, stdout.String()
}

func TestDoMainKnownDemos(t *testing.T) {
	for _, demo := range []string{"loadimm", "pool", "loop"} {
		exitCode, out := runMain(t, []string{"-demo=" + demo})
		require.Equal(t, 0, exitCode)
		require.Contains(t, out, "demo: "+demo)
		require.Contains(t, out, "code (")
		require.Contains(t, out, "pool (")
	}
}

func TestDoMainUnknownDemoExitsNonZero(t *testing.T) {
	exitCode, _ := runMain(t, []string{"-demo=bogus"})
	require.Equal(t, 1, exitCode)
}
