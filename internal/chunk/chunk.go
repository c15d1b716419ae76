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

// Package chunk implements the compiled unit the compiler emits into and the
// VM executes from: a flat bytecode sequence, a parallel line table, and an
// indexed constant pool.
package chunk

import "github.com/loxlang/loxvm/internal/value"

// OpCode identifies a single VM instruction. All operands are single bytes.
type OpCode byte

const (
	OpConstant OpCode = iota
	OpNil
	OpTrue
	OpFalse
	OpPop
	OpDefineGlobal
	OpGetGlobal
	OpSetGlobal
	OpEqual
	OpGreater
	OpLess
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpNot
	OpNegate
	OpPrint
	OpReturn

	// OpConstantLong is reserved opcode space for a future 24-bit-operand
	// constant instruction; the single-byte OpConstant index caps chunks at
	// 256 constants, which is all this implementation needs.
)

var opNames = [...]string{
	OpConstant:     "OP_CONSTANT",
	OpNil:          "OP_NIL",
	OpTrue:         "OP_TRUE",
	OpFalse:        "OP_FALSE",
	OpPop:          "OP_POP",
	OpDefineGlobal: "OP_DEFINE_GLOBAL",
	OpGetGlobal:    "OP_GET_GLOBAL",
	OpSetGlobal:    "OP_SET_GLOBAL",
	OpEqual:        "OP_EQUAL",
	OpGreater:      "OP_GREATER",
	OpLess:         "OP_LESS",
	OpAdd:          "OP_ADD",
	OpSubtract:     "OP_SUBTRACT",
	OpMultiply:     "OP_MULTIPLY",
	OpDivide:       "OP_DIVIDE",
	OpNot:          "OP_NOT",
	OpNegate:       "OP_NEGATE",
	OpPrint:        "OP_PRINT",
	OpReturn:       "OP_RETURN",
}

func (op OpCode) String() string {
	if int(op) < len(opNames) && opNames[op] != "" {
		return opNames[op]
	}
	return "OP_UNKNOWN"
}

// MaxConstants is the hard per-chunk limit imposed by OpConstant's one-byte
// operand.
const MaxConstants = 256

// Chunk is a compiled unit: bytecode plus a parallel line table and a
// constant pool. It is append-only during compilation and read-only during
// execution.
type Chunk struct {
	Code      []byte
	Lines     []int
	Constants []value.Value
}

// New returns an empty Chunk.
func New() *Chunk {
	return &Chunk{
		Code:      make([]byte, 0, 8),
		Lines:     make([]int, 0, 8),
		Constants: make([]value.Value, 0, 8),
	}
}

// Write appends a raw byte (opcode or operand) at the given source line.
func (c *Chunk) Write(b byte, line int) {
	c.Code = append(c.Code, b)
	c.Lines = append(c.Lines, line)
}

// WriteOp appends an opcode.
func (c *Chunk) WriteOp(op OpCode, line int) {
	c.Write(byte(op), line)
}

// Count returns the number of bytes emitted so far.
func (c *Chunk) Count() int { return len(c.Code) }

// Line returns the source line number recorded for the instruction byte at
// addr.
func (c *Chunk) Line(addr int) int { return c.Lines[addr] }

// AddConstant appends v to the constant pool and returns its index. The
// caller (the compiler) is responsible for checking that the pool has not
// already reached MaxConstants; AddConstant does not enforce the limit
// itself so that the compiler can report the overflow at the call site with
// source line information.
func (c *Chunk) AddConstant(v value.Value) int {
	c.Constants = append(c.Constants, v)
	return len(c.Constants) - 1
}
