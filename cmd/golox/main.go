// Command golox is the entry point for the golox Lox interpreter: a REPL when run
// with no arguments, or a script runner when given a file or a -c program.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"strings"

	"github.com/chzyer/readline"

	"github.com/loxproj/golox/interpreter"
	"github.com/loxproj/golox/loxerr"
	"github.com/loxproj/golox/parser"
	"github.com/loxproj/golox/resolver"
	"github.com/loxproj/golox/scanner"
)

var cmd = flag.String("c", "", "program passed in as a string")

// nolint:revive
func Usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage: golox [script]\n")
}

func main() {
	log.SetFlags(0)

	flag.Usage = Usage
	flag.Parse()

	if *cmd != "" {
		if err := run(strings.NewReader(*cmd), interpreter.New(os.Stdout)); err != nil {
			reportAndExit(err)
		}
		return
	}

	switch len(flag.Args()) {
	case 0:
		if err := runREPL(); err != nil {
			log.Fatal(err)
		}
	case 1:
		if err := runFile(flag.Arg(0)); err != nil {
			reportAndExit(err)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
}

// reportAndExit prints err, colorized where the terminal supports it, and exits with
// a status reflecting whether the failure was a static error (scan/parse/resolve) or
// a runtime error.
func reportAndExit(err error) {
	fmt.Fprintln(os.Stderr, colorize(err))
	if _, ok := err.(interface{ Errors() []*loxerr.StaticError }); ok {
		os.Exit(65)
	}
	os.Exit(70)
}

func colorize(err error) string {
	switch e := err.(type) {
	case *loxerr.RuntimeError:
		return e.ColorError()
	case interface{ Errors() []*loxerr.StaticError }:
		lines := make([]string, 0, len(e.Errors()))
		for _, staticErr := range e.Errors() {
			lines = append(lines, staticErr.ColorError())
		}
		return strings.Join(lines, "\n")
	default:
		return err.Error()
	}
}

// run scans, parses, resolves, and interprets the Lox program read from r.
func run(r io.Reader, interp *interpreter.Interpreter) error {
	src, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	var scanErrs loxerr.List
	sc := scanner.New(string(src), func(line int, message string) {
		scanErrs.Add(line, "%s", message)
	})
	tokens := sc.Scan()
	if scanErrs.Len() > 0 {
		return scanErrs.Err()
	}

	prog, err := parser.New(tokens).Parse()
	if err != nil {
		return err
	}

	if err := resolver.New().Resolve(prog); err != nil {
		return err
	}

	if err := interp.Interpret(prog); err != nil {
		if runtimeErr, ok := err.(*loxerr.RuntimeError); ok && runtimeErr.Trace != "" {
			fmt.Fprintln(os.Stderr, runtimeErr.Trace)
		}
		return err
	}
	return nil
}

func runREPL() error {
	cfg := &readline.Config{Prompt: ">>> "}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		cfg.HistoryFile = path.Join(homeDir, ".lox_history")
	} else {
		fmt.Fprintf(os.Stderr, "can't get current user's home directory (%s); command history won't be saved\n", err)
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return fmt.Errorf("starting Lox REPL: %s", err)
	}
	defer rl.Close()

	fmt.Fprintln(os.Stderr, "Welcome to Lox!")

	interp := interpreter.New(os.Stdout)
	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("reading line: %s", err)
		}
		if err := run(strings.NewReader(line), interp); err != nil {
			fmt.Fprintln(os.Stderr, colorize(err))
		}
	}
	return nil
}

func runFile(name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return run(f, interpreter.New(os.Stdout))
}
