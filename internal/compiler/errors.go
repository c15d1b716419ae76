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

package compiler

import (
	"fmt"
	"strings"

	"github.com/loxlang/loxvm/internal/lexer"
)

// CompileError is a single location-tagged diagnostic produced while
// compiling. Compilation does not stop at the first one: the compiler
// keeps going in panic-mode/synchronize fashion so it can report as many
// errors as possible in one pass.
type CompileError struct {
	Line    int
	Where   string // "at end", "at '<lexeme>'", or "" for scanner ERROR tokens
	Message string
}

func (e CompileError) String() string {
	if e.Where == "" {
		return fmt.Sprintf("[line %d] Error: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("[line %d] Error %s: %s", e.Line, e.Where, e.Message)
}

// CompileErrors collects every diagnostic from a single compile. It
// implements error so a failed Compile can be returned and wrapped like any
// other error, while still giving callers access to the individual
// diagnostics.
type CompileErrors []CompileError

func (errs CompileErrors) Error() string {
	lines := make([]string, len(errs))
	for i, e := range errs {
		lines[i] = e.String()
	}
	return strings.Join(lines, "\n")
}

func whereFor(tok lexer.Token) string {
	switch tok.Type {
	case lexer.TokenEOF:
		return "at end"
	case lexer.TokenError:
		return ""
	default:
		return "at '" + tok.Lexeme + "'"
	}
}
