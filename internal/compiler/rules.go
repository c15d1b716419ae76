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

import "github.com/loxlang/loxvm/internal/lexer"

// Precedence levels, low to high.
type Precedence uint8

const (
	PrecNone       Precedence = iota
	PrecAssignment            // =
	PrecOr                    // or
	PrecAnd                   // and
	PrecEquality              // == !=
	PrecComparison            // < > <= >=
	PrecTerm                  // + -
	PrecFactor                // * /
	PrecUnary                 // ! -
	PrecCall                  // . ()
	PrecPrimary
)

type parseFn func(c *Compiler, canAssign bool)

type rule struct {
	prefix     parseFn
	infix      parseFn
	precedence Precedence
}

var rules map[lexer.TokenType]rule

func init() {
	rules = map[lexer.TokenType]rule{
		lexer.TokenLeftParen:    {(*Compiler).grouping, nil, PrecNone},
		lexer.TokenMinus:        {(*Compiler).unary, (*Compiler).binary, PrecTerm},
		lexer.TokenPlus:         {nil, (*Compiler).binary, PrecTerm},
		lexer.TokenSlash:        {nil, (*Compiler).binary, PrecFactor},
		lexer.TokenStar:         {nil, (*Compiler).binary, PrecFactor},
		lexer.TokenBang:         {(*Compiler).unary, nil, PrecNone},
		lexer.TokenBangEqual:    {nil, (*Compiler).binary, PrecEquality},
		lexer.TokenEqualEqual:   {nil, (*Compiler).binary, PrecEquality},
		lexer.TokenGreater:      {nil, (*Compiler).binary, PrecComparison},
		lexer.TokenGreaterEqual: {nil, (*Compiler).binary, PrecComparison},
		lexer.TokenLess:         {nil, (*Compiler).binary, PrecComparison},
		lexer.TokenLessEqual:    {nil, (*Compiler).binary, PrecComparison},
		lexer.TokenString:       {(*Compiler).string, nil, PrecNone},
		lexer.TokenNumber:       {(*Compiler).number, nil, PrecNone},
		lexer.TokenIdentifier:   {(*Compiler).variable, nil, PrecNone},
		lexer.TokenFalse:        {(*Compiler).literal, nil, PrecNone},
		lexer.TokenNil:          {(*Compiler).literal, nil, PrecNone},
		lexer.TokenTrue:         {(*Compiler).literal, nil, PrecNone},
	}
}

func ruleFor(t lexer.TokenType) rule {
	if r, ok := rules[t]; ok {
		return r
	}
	return rule{nil, nil, PrecNone}
}
