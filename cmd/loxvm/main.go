// This file is part of loxvm - https://github.com/loxlang/loxvm
//
// Copyright 2026 The loxvm Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command loxvm compiles and runs Lox source: a file passed as an argument,
// or an interactive "> " prompt reading from stdin when no argument is
// given. Argument parsing, file reading and the REPL loop are the external
// collaborators the core compiler/vm packages know nothing about.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/loxlang/loxvm/internal/compiler"
	"github.com/loxlang/loxvm/internal/vm"
)

// Exit codes follow the conventional sysexits.h values: 65 for a
// data/compile error, 70 for an internal/runtime failure, 74 for I/O
// trouble.
const (
	exitOK       = 0
	exitDataErr  = 65
	exitSoftware = 70
	exitIOErr    = 74
	exitUsage    = 64
)

func main() {
	disasm := flag.Bool("disasm", false, "print a disassembly of each compiled chunk before running it")
	flag.Parse()

	var opts []vm.Option
	if *disasm {
		opts = append(opts, vm.WithDisassemble(os.Stderr))
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()
	machine := vm.New(out, opts...)

	args := flag.Args()
	switch len(args) {
	case 0:
		os.Exit(runREPL(machine, out))
	case 1:
		os.Exit(runFile(machine, out, args[0]))
	default:
		fmt.Fprintln(os.Stderr, "Usage: loxvm [path]")
		os.Exit(exitUsage)
	}
}

// maxSourceBytes caps the size of a file loxvm will read.
const maxSourceBytes = 1 << 20

func runFile(machine *vm.VM, out *bufio.Writer, path string) int {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loxvm: %v\n", errors.Wrap(err, "open failed"))
		return exitIOErr
	}
	defer f.Close()

	src, err := io.ReadAll(io.LimitReader(f, maxSourceBytes+1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "loxvm: %v\n", errors.Wrap(err, "read failed"))
		return exitIOErr
	}
	if len(src) > maxSourceBytes {
		fmt.Fprintf(os.Stderr, "loxvm: %s: file too large\n", path)
		return exitIOErr
	}

	return interpretAndReport(machine, out, string(src))
}

func runREPL(machine *vm.VM, out *bufio.Writer) int {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(os.Stdout, "> ")
		out.Flush()
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				fmt.Fprintf(os.Stderr, "loxvm: %v\n", errors.Wrap(err, "stdin read failed"))
				return exitIOErr
			}
			fmt.Fprintln(os.Stdout)
			return exitOK
		}
		interpretAndReport(machine, out, scanner.Text())
	}
}

func interpretAndReport(machine *vm.VM, out *bufio.Writer, source string) int {
	result, err := machine.Interpret(source)
	out.Flush()
	switch result {
	case vm.InterpretCompileError:
		if errs, ok := err.(compiler.CompileErrors); ok {
			for _, e := range errs {
				fmt.Fprintln(os.Stderr, e.String())
			}
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		return exitDataErr
	case vm.InterpretRuntimeError:
		fmt.Fprintln(os.Stderr, err)
		return exitSoftware
	default:
		return exitOK
	}
}
