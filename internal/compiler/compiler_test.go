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

package compiler_test

import (
	"strings"
	"testing"

	"github.com/loxlang/loxvm/internal/chunk"
	"github.com/loxlang/loxvm/internal/compiler"
	"github.com/loxlang/loxvm/internal/table"
	"github.com/loxlang/loxvm/internal/value"
)

func compile(t *testing.T, src string) (*chunk.Chunk, error) {
	t.Helper()
	c := chunk.New()
	strs := table.New()
	var objs value.ObjectList
	err := compiler.Compile(src, c, strs, &objs)
	return c, err
}

func TestCompileSimpleExpressionStatement(t *testing.T) {
	c, err := compile(t, "1 + 2;")
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}
	last := chunk.OpCode(c.Code[len(c.Code)-2])
	if last != chunk.OpPop {
		t.Errorf("expression statement should end with OP_POP before OP_RETURN, got %v", last)
	}
}

func TestCompileTooManyConstants(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 257; i++ {
		b.WriteString("1;\n")
	}
	_, err := compile(t, b.String())
	if err == nil {
		t.Fatal("expected a compile error for >256 constants")
	}
	errs, ok := err.(compiler.CompileErrors)
	if !ok {
		t.Fatalf("expected CompileErrors, got %T", err)
	}
	found := false
	for _, e := range errs {
		if e.Message == "Too many constants in one chunk." {
			found = true
		}
	}
	if !found {
		t.Errorf("expected 'Too many constants in one chunk.' among errors: %v", errs)
	}
}

func TestCompileErrorMissingExpression(t *testing.T) {
	_, err := compile(t, "print 1 +;")
	if err == nil {
		t.Fatal("expected a compile error")
	}
	errs := err.(compiler.CompileErrors)
	if len(errs) == 0 || errs[0].Message != "Expect expression." {
		t.Errorf("errs = %v, want first message 'Expect expression.'", errs)
	}
}

func TestCompileReportsMultipleErrorsInOnePass(t *testing.T) {
	_, err := compile(t, "print 1 +;\nprint 2 +;")
	errs, ok := err.(compiler.CompileErrors)
	if !ok {
		t.Fatalf("expected CompileErrors, got %T", err)
	}
	if len(errs) < 2 {
		t.Errorf("expected at least 2 errors across the two bad statements, got %d: %v", len(errs), errs)
	}
}

func TestCompileUnterminatedStringIsCompileError(t *testing.T) {
	_, err := compile(t, `print "hi;`)
	if err == nil {
		t.Fatal("expected a compile error for an unterminated string")
	}
}

func TestCompileEmptyInput(t *testing.T) {
	c, err := compile(t, "")
	if err != nil {
		t.Fatalf("empty input should compile cleanly: %v", err)
	}
	if len(c.Code) != 1 || chunk.OpCode(c.Code[0]) != chunk.OpReturn {
		t.Errorf("empty input should compile to a single OP_RETURN, got %v", c.Code)
	}
}

func TestCompileVarDeclarationWithoutInitializerEmitsNil(t *testing.T) {
	c, err := compile(t, "var x;")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if chunk.OpCode(c.Code[0]) != chunk.OpNil {
		t.Errorf("first op = %v, want OP_NIL", chunk.OpCode(c.Code[0]))
	}
	if chunk.OpCode(c.Code[1]) != chunk.OpDefineGlobal {
		t.Errorf("second op = %v, want OP_DEFINE_GLOBAL", chunk.OpCode(c.Code[1]))
	}
}
