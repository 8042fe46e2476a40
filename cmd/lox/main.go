// Command lox is the process entry point: argument dispatch between REPL
// and file mode, per spec.md §6.
//
// The positional-argument dispatch and "Usage: lox [script]" message are
// unchanged from spec.md; only the optional -debug flag (SPEC_FULL.md
// §4.8) is new, parsed with github.com/pborman/getopt the way
// openconfig-goyang's cmd layer parses optional flags ahead of its
// positional arguments.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/loxlang/lox"
	"github.com/loxlang/lox/internal/diag"
	"github.com/pborman/getopt"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	set := getopt.New()
	debug := set.BoolLong("debug", 0, "emit lex/parse/eval trace records to stderr")
	if err := set.Getopt(append([]string{"lox"}, argv...), nil); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	args := set.Args()

	var sink diag.Sink
	if *debug {
		sink = diag.NewLoggo()
	}

	switch len(args) {
	case 0:
		return runREPL(sink)
	case 1:
		return runFile(args[0], sink)
	default:
		fmt.Println("Usage: lox [script]")
		return 0
	}
}

func runFile(path string, sink diag.Sink) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	runner := lox.NewRunner(os.Stdout, sink)
	if err := runner.RunFile(path, string(source)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// runREPL implements spec.md §6: print "> ", read one line, lex+parse+
// execute; runtime errors are printed and the loop continues; an empty
// line terminates the REPL with exit code 0.
func runREPL(sink diag.Sink) int {
	runner := lox.NewRunner(os.Stdout, sink)
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return 0
		}
		line := scanner.Text()
		if line == "" {
			return 0
		}
		if err := runner.RunLine(line); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}
