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

// Package vm implements the stack-based bytecode interpreter: a fixed-size
// operand stack, a byte-at-a-time instruction decoder, and the runtime
// error surface for type mismatches. The dispatch loop is a for loop over
// the instruction pointer with a switch on the decoded opcode, each case
// responsible for its own PC advance.
package vm

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/loxlang/loxvm/internal/chunk"
	"github.com/loxlang/loxvm/internal/compiler"
	"github.com/loxlang/loxvm/internal/intern"
	"github.com/loxlang/loxvm/internal/table"
	"github.com/loxlang/loxvm/internal/value"
)

// stackMax is the fixed operand stack capacity.
const stackMax = 256

// InterpretResult mirrors the VM's observable terminal states: idle →
// compiling → running → {ok, compile_error, runtime_error}. All three
// terminal states leave the VM ready for the next Interpret call.
type InterpretResult uint8

const (
	InterpretOK InterpretResult = iota
	InterpretCompileError
	InterpretRuntimeError
)

// RuntimeError is returned, unwrapped, when a running chunk hits a type
// mismatch or an undefined global.
type RuntimeError struct {
	Message string
	Line    int
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d] in script", e.Message, e.Line)
}

// VM owns the object list and intern table across an entire process
// lifetime: a REPL's later lines can still reference string constants
// interned while compiling an earlier line. It is not safe for concurrent
// use from multiple goroutines.
type VM struct {
	chunk *chunk.Chunk
	ip    int

	stack    [stackMax]value.Value
	stackTop int

	strings *table.Table
	globals *table.Table
	objs    value.ObjectList

	// out is where OP_PRINT writes. outErr latches the first write failure:
	// it ends that run as a runtime error, and every later print on this VM,
	// in later Interpret calls too, returns it without writing again.
	out      io.Writer
	outErr   error
	disasmTo io.Writer
}

// Option configures a VM at construction time.
type Option func(*VM)

// WithDisassemble makes the VM write a disassembly of each compiled chunk
// to w before running it. Debug tooling only; never required for Run to
// behave correctly.
func WithDisassemble(w io.Writer) Option {
	return func(vm *VM) { vm.disasmTo = w }
}

// New creates a VM that writes PRINT output to w.
func New(w io.Writer, opts ...Option) *VM {
	vm := &VM{
		strings: table.New(),
		globals: table.New(),
		out:     w,
	}
	for _, opt := range opts {
		opt(vm)
	}
	return vm
}

func (vm *VM) resetStack() { vm.stackTop = 0 }

func (vm *VM) push(v value.Value) {
	vm.stack[vm.stackTop] = v
	vm.stackTop++
}

func (vm *VM) pop() value.Value {
	vm.stackTop--
	return vm.stack[vm.stackTop]
}

func (vm *VM) peek(distance int) value.Value {
	return vm.stack[vm.stackTop-1-distance]
}

// Interpret compiles and runs source. The returned error, if any, is a
// CompileErrors, a *RuntimeError, or (for a failed PRINT write or a
// recovered internal fault) a wrapped error with InterpretRuntimeError; the
// VM remains valid for the next call either way.
func (vm *VM) Interpret(source string) (InterpretResult, error) {
	c := chunk.New()
	if err := compiler.Compile(source, c, vm.strings, &vm.objs); err != nil {
		return InterpretCompileError, err
	}

	if vm.disasmTo != nil {
		c.Disassemble(vm.disasmTo, "chunk")
	}

	vm.chunk = c
	vm.ip = 0
	vm.resetStack()

	err := vm.run()
	if err != nil {
		vm.resetStack()
		return InterpretRuntimeError, err
	}
	return InterpretOK, nil
}

func (vm *VM) readByte() byte {
	b := vm.chunk.Code[vm.ip]
	vm.ip++
	return b
}

func (vm *VM) readConstant() value.Value {
	return vm.chunk.Constants[vm.readByte()]
}

func (vm *VM) runtimeError(format string, args ...interface{}) error {
	line := 0
	if vm.ip-1 >= 0 && vm.ip-1 < len(vm.chunk.Lines) {
		line = vm.chunk.Line(vm.ip - 1)
	}
	return &RuntimeError{Message: fmt.Sprintf(format, args...), Line: line}
}

func isNumber(v value.Value) bool { return v.IsNumber() }

// print writes v to the VM's output stream, per the PRINT statement's
// semantics. Once a write fails, every later print on this VM (the failing
// run ends at once, so these are prints of later Interpret calls) is a
// no-op that returns the latched error, rather than attempting (and
// failing) the write again.
func (vm *VM) print(v value.Value) error {
	if vm.outErr != nil {
		return vm.outErr
	}
	if _, err := fmt.Fprintln(vm.out, v.String()); err != nil {
		vm.outErr = errors.Wrap(err, "print failed")
		return vm.outErr
	}
	return nil
}

func (vm *VM) run() (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = errors.Wrapf(e, "internal VM fault @ip=%d", vm.ip)
			} else {
				err = errors.Errorf("internal VM fault @ip=%d: %v", vm.ip, r)
			}
		}
	}()

	for {
		op := chunk.OpCode(vm.readByte())
		switch op {
		case chunk.OpConstant:
			vm.push(vm.readConstant())

		case chunk.OpNil:
			vm.push(value.NilValue)
		case chunk.OpTrue:
			vm.push(value.BoolValue(true))
		case chunk.OpFalse:
			vm.push(value.BoolValue(false))

		case chunk.OpPop:
			vm.pop()

		case chunk.OpDefineGlobal:
			name := vm.readConstant().AsString()
			vm.globals.Set(name, vm.peek(0))
			vm.pop()

		case chunk.OpGetGlobal:
			name := vm.readConstant().AsString()
			v, ok := vm.globals.Get(name)
			if !ok {
				return vm.runtimeError("Undefined variable '%s'.", name.Chars)
			}
			vm.push(v)

		case chunk.OpSetGlobal:
			name := vm.readConstant().AsString()
			if vm.globals.Set(name, vm.peek(0)) {
				vm.globals.Delete(name)
				return vm.runtimeError("Undefined variable '%s'.", name.Chars)
			}

		case chunk.OpEqual:
			b := vm.pop()
			a := vm.pop()
			vm.push(value.BoolValue(a.Equal(b)))

		case chunk.OpGreater:
			if err := vm.binaryNumberOp(func(a, b float64) value.Value { return value.BoolValue(a > b) }); err != nil {
				return err
			}
		case chunk.OpLess:
			if err := vm.binaryNumberOp(func(a, b float64) value.Value { return value.BoolValue(a < b) }); err != nil {
				return err
			}

		case chunk.OpAdd:
			if err := vm.add(); err != nil {
				return err
			}
		case chunk.OpSubtract:
			if err := vm.binaryNumberOp(func(a, b float64) value.Value { return value.NumberValue(a - b) }); err != nil {
				return err
			}
		case chunk.OpMultiply:
			if err := vm.binaryNumberOp(func(a, b float64) value.Value { return value.NumberValue(a * b) }); err != nil {
				return err
			}
		case chunk.OpDivide:
			if err := vm.binaryNumberOp(func(a, b float64) value.Value { return value.NumberValue(a / b) }); err != nil {
				return err
			}

		case chunk.OpNot:
			vm.push(value.BoolValue(vm.pop().IsFalsey()))

		case chunk.OpNegate:
			if !isNumber(vm.peek(0)) {
				return vm.runtimeError("Operand must be a number.")
			}
			vm.push(value.NumberValue(-vm.pop().AsNumber()))

		case chunk.OpPrint:
			if err := vm.print(vm.pop()); err != nil {
				return err
			}

		case chunk.OpReturn:
			return nil

		default:
			// Unknown byte: no-op, preserving forward progress.
		}
	}
}

func (vm *VM) binaryNumberOp(f func(a, b float64) value.Value) error {
	if !isNumber(vm.peek(0)) || !isNumber(vm.peek(1)) {
		return vm.runtimeError("Operands must be numbers.")
	}
	b := vm.pop()
	a := vm.pop()
	vm.push(f(a.AsNumber(), b.AsNumber()))
	return nil
}

func (vm *VM) add() error {
	switch {
	case vm.peek(0).IsString() && vm.peek(1).IsString():
		b := vm.pop().AsString()
		a := vm.pop().AsString()
		s := intern.TakeString(vm.strings, &vm.objs, a.Chars+b.Chars)
		vm.push(value.ObjValue(s))
		return nil
	case isNumber(vm.peek(0)) && isNumber(vm.peek(1)):
		b := vm.pop()
		a := vm.pop()
		vm.push(value.NumberValue(a.AsNumber() + b.AsNumber()))
		return nil
	default:
		return vm.runtimeError("Operands must be two numbers or two strings.")
	}
}
