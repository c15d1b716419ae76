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

// Package compiler implements the single-pass Pratt parser that drives the
// lexer and emits bytecode directly into a chunk.Chunk as it parses: one
// struct carrying scanner state, an accumulated error list, and
// byte-emitting methods, with no separate AST stage.
package compiler

import (
	"strconv"

	"github.com/loxlang/loxvm/internal/chunk"
	"github.com/loxlang/loxvm/internal/intern"
	"github.com/loxlang/loxvm/internal/lexer"
	"github.com/loxlang/loxvm/internal/table"
	"github.com/loxlang/loxvm/internal/value"
)

// Compiler holds all state for a single compile. A fresh Compiler is
// created per call to Compile; nothing survives between calls except
// whatever the caller shares explicitly (the intern table and object list,
// which persist across a VM's lifetime so a REPL's later lines can still
// reference earlier string constants).
type Compiler struct {
	scanner *lexer.Scanner
	chunk   *chunk.Chunk
	strings *table.Table
	objs    *value.ObjectList

	current   lexer.Token
	previous  lexer.Token
	hadError  bool
	panicMode bool
	errs      CompileErrors
}

// Compile compiles source into target, interning string constants into
// strings and registering every object it creates into objs. It returns
// nil on success or a non-nil CompileErrors (also usable as a plain error)
// listing every diagnostic found in this pass.
func Compile(source string, target *chunk.Chunk, strings *table.Table, objs *value.ObjectList) error {
	c := &Compiler{
		scanner: lexer.New(source),
		chunk:   target,
		strings: strings,
		objs:    objs,
	}
	c.advance()
	for !c.match(lexer.TokenEOF) {
		c.declaration()
	}
	c.emitReturn()
	if c.hadError {
		return c.errs
	}
	return nil
}

func (c *Compiler) advance() {
	c.previous = c.current
	for {
		c.current = c.scanner.Next()
		if c.current.Type != lexer.TokenError {
			break
		}
		c.errorAtCurrent(c.current.Lexeme)
	}
}

func (c *Compiler) check(t lexer.TokenType) bool { return c.current.Type == t }

func (c *Compiler) match(t lexer.TokenType) bool {
	if !c.check(t) {
		return false
	}
	c.advance()
	return true
}

func (c *Compiler) consume(t lexer.TokenType, msg string) {
	if c.current.Type == t {
		c.advance()
		return
	}
	c.errorAtCurrent(msg)
}

func (c *Compiler) errorAtCurrent(msg string) { c.errorAt(c.current, msg) }
func (c *Compiler) error(msg string)          { c.errorAt(c.previous, msg) }

func (c *Compiler) errorAt(tok lexer.Token, msg string) {
	if c.panicMode {
		return
	}
	c.panicMode = true
	c.hadError = true
	m := msg
	if tok.Type == lexer.TokenError {
		m = tok.Lexeme
	}
	c.errs = append(c.errs, CompileError{Line: tok.Line, Where: whereFor(tok), Message: m})
}

// synchronize skips tokens until it reaches a statement boundary, clearing
// panic mode so subsequent errors are reported again.
func (c *Compiler) synchronize() {
	c.panicMode = false
	for c.current.Type != lexer.TokenEOF {
		if c.previous.Type == lexer.TokenSemicolon {
			return
		}
		switch c.current.Type {
		case lexer.TokenClass, lexer.TokenFun, lexer.TokenVar, lexer.TokenFor,
			lexer.TokenIf, lexer.TokenWhile, lexer.TokenPrint, lexer.TokenReturn:
			return
		}
		c.advance()
	}
}

// --- emission helpers ---

func (c *Compiler) emitByte(b byte)        { c.chunk.Write(b, c.previous.Line) }
func (c *Compiler) emitOp(op chunk.OpCode) { c.chunk.WriteOp(op, c.previous.Line) }

func (c *Compiler) emitOps(a, b chunk.OpCode) {
	c.emitOp(a)
	c.emitOp(b)
}

func (c *Compiler) emitReturn() { c.emitOp(chunk.OpReturn) }

func (c *Compiler) makeConstant(v value.Value) byte {
	idx := c.chunk.AddConstant(v)
	if idx > 255 {
		c.error("Too many constants in one chunk.")
		return 0
	}
	return byte(idx)
}

func (c *Compiler) emitConstant(v value.Value) {
	c.emitOp(chunk.OpConstant)
	c.emitByte(c.makeConstant(v))
}

// identifierConstant interns name and adds it to the constant pool, for use
// as the operand of DEFINE_GLOBAL/GET_GLOBAL/SET_GLOBAL.
func (c *Compiler) identifierConstant(tok lexer.Token) byte {
	s := intern.CopyString(c.strings, c.objs, tok.Lexeme)
	return c.makeConstant(value.ObjValue(s))
}

// --- grammar ---

func (c *Compiler) declaration() {
	if c.match(lexer.TokenVar) {
		c.varDeclaration()
	} else {
		c.statement()
	}
	if c.panicMode {
		c.synchronize()
	}
}

func (c *Compiler) varDeclaration() {
	c.consume(lexer.TokenIdentifier, "Expect variable name.")
	global := c.identifierConstant(c.previous)

	if c.match(lexer.TokenEqual) {
		c.expression()
	} else {
		c.emitOp(chunk.OpNil)
	}
	c.consume(lexer.TokenSemicolon, "Expect ';' after variable declaration.")

	c.emitOp(chunk.OpDefineGlobal)
	c.emitByte(global)
}

func (c *Compiler) statement() {
	switch {
	case c.match(lexer.TokenPrint):
		c.printStatement()
	default:
		c.expressionStatement()
	}
}

func (c *Compiler) printStatement() {
	c.expression()
	c.consume(lexer.TokenSemicolon, "Expect ';' after value.")
	c.emitOp(chunk.OpPrint)
}

func (c *Compiler) expressionStatement() {
	c.expression()
	c.consume(lexer.TokenSemicolon, "Expect ';' after expression.")
	c.emitOp(chunk.OpPop)
}

func (c *Compiler) expression() {
	c.parsePrecedence(PrecAssignment)
}

func (c *Compiler) parsePrecedence(prec Precedence) {
	c.advance()
	prefix := ruleFor(c.previous.Type).prefix
	if prefix == nil {
		c.error("Expect expression.")
		return
	}
	canAssign := prec <= PrecAssignment
	prefix(c, canAssign)

	for prec <= ruleFor(c.current.Type).precedence {
		c.advance()
		infix := ruleFor(c.previous.Type).infix
		infix(c, canAssign)
	}

	if canAssign && c.match(lexer.TokenEqual) {
		c.error("Invalid assignment target.")
	}
}

func (c *Compiler) grouping(_ bool) {
	c.expression()
	c.consume(lexer.TokenRightParen, "Expect ')' after expression.")
}

func (c *Compiler) unary(_ bool) {
	opType := c.previous.Type
	c.parsePrecedence(PrecUnary)
	switch opType {
	case lexer.TokenBang:
		c.emitOp(chunk.OpNot)
	case lexer.TokenMinus:
		c.emitOp(chunk.OpNegate)
	}
}

func (c *Compiler) binary(_ bool) {
	opType := c.previous.Type
	r := ruleFor(opType)
	c.parsePrecedence(r.precedence + 1)
	switch opType {
	case lexer.TokenPlus:
		c.emitOp(chunk.OpAdd)
	case lexer.TokenMinus:
		c.emitOp(chunk.OpSubtract)
	case lexer.TokenStar:
		c.emitOp(chunk.OpMultiply)
	case lexer.TokenSlash:
		c.emitOp(chunk.OpDivide)
	case lexer.TokenEqualEqual:
		c.emitOp(chunk.OpEqual)
	case lexer.TokenBangEqual:
		c.emitOps(chunk.OpEqual, chunk.OpNot)
	case lexer.TokenGreater:
		c.emitOp(chunk.OpGreater)
	case lexer.TokenGreaterEqual:
		c.emitOps(chunk.OpLess, chunk.OpNot)
	case lexer.TokenLess:
		c.emitOp(chunk.OpLess)
	case lexer.TokenLessEqual:
		c.emitOps(chunk.OpGreater, chunk.OpNot)
	}
}

func (c *Compiler) literal(_ bool) {
	switch c.previous.Type {
	case lexer.TokenFalse:
		c.emitOp(chunk.OpFalse)
	case lexer.TokenNil:
		c.emitOp(chunk.OpNil)
	case lexer.TokenTrue:
		c.emitOp(chunk.OpTrue)
	}
}

func (c *Compiler) number(_ bool) {
	n, err := strconv.ParseFloat(c.previous.Lexeme, 64)
	if err != nil {
		c.error("Invalid number literal.")
		return
	}
	c.emitConstant(value.NumberValue(n))
}

// string strips the surrounding quotes from the lexeme and interns the
// result.
func (c *Compiler) string(_ bool) {
	raw := c.previous.Lexeme
	s := intern.CopyString(c.strings, c.objs, raw[1:len(raw)-1])
	c.emitConstant(value.ObjValue(s))
}

func (c *Compiler) variable(canAssign bool) {
	name := c.previous
	arg := c.identifierConstant(name)
	if canAssign && c.match(lexer.TokenEqual) {
		c.expression()
		c.emitOp(chunk.OpSetGlobal)
		c.emitByte(arg)
		return
	}
	c.emitOp(chunk.OpGetGlobal)
	c.emitByte(arg)
}
