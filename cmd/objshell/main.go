// Command objshell is a small interactive inspector for the object model
// core: it builds a prototype chain, runs the capability-set operations
// against it, and prints what happened — the same "script engine CLI"
// genre as the teacher's own command, but exercising avm1core/pkg/object
// instead of a bytecode VM.
package main

import (
	"fmt"
	"os"

	"avm1core/cmd/objshell/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
