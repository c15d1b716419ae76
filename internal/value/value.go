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

// Package value implements the tagged Value variant and the heap Object
// substrate (interned strings) shared by the compiler and the VM.
package value

import (
	"fmt"
	"math"
	"strconv"
)

// Type tags the variant held by a Value.
type Type uint8

const (
	Nil Type = iota
	Bool
	Number
	Obj
)

// Value is a tagged union over nil, boolean, number and object references.
// It is a plain struct rather than an interface so that arithmetic and
// comparisons in the VM's dispatch loop stay allocation-free.
type Value struct {
	typ Type
	b   bool
	n   float64
	o   Object
}

// NilValue is the singleton nil value.
var NilValue = Value{typ: Nil}

// BoolValue returns a boolean Value.
func BoolValue(b bool) Value { return Value{typ: Bool, b: b} }

// NumberValue returns a numeric Value.
func NumberValue(n float64) Value { return Value{typ: Number, n: n} }

// ObjValue returns a Value wrapping a heap Object.
func ObjValue(o Object) Value { return Value{typ: Obj, o: o} }

func (v Value) Type() Type { return v.typ }

func (v Value) IsNil() bool    { return v.typ == Nil }
func (v Value) IsBool() bool   { return v.typ == Bool }
func (v Value) IsNumber() bool { return v.typ == Number }
func (v Value) IsObj() bool    { return v.typ == Obj }
func (v Value) IsString() bool { return v.typ == Obj && v.o.Kind() == ObjKindString }

// AsBool returns the boolean payload. Callers must check IsBool first.
func (v Value) AsBool() bool { return v.b }

// AsNumber returns the numeric payload. Callers must check IsNumber first.
func (v Value) AsNumber() float64 { return v.n }

// AsObj returns the object payload. Callers must check IsObj first.
func (v Value) AsObj() Object { return v.o }

// AsString returns the underlying ObjString. Callers must check IsString first.
func (v Value) AsString() *ObjString { return v.o.(*ObjString) }

// IsFalsey reports whether v is falsey: nil or boolean false. Every other
// value, including 0 and the empty string, is truthy.
func (v Value) IsFalsey() bool {
	return v.typ == Nil || (v.typ == Bool && !v.b)
}

// Equal implements Lox value equality: same tag and structural equality for
// primitives; for objects, pointer equality (sufficient for strings, which
// are interned).
func (v Value) Equal(o Value) bool {
	if v.typ != o.typ {
		return false
	}
	switch v.typ {
	case Nil:
		return true
	case Bool:
		return v.b == o.b
	case Number:
		return v.n == o.n
	case Obj:
		return v.o == o.o
	default:
		return false
	}
}

// String renders v the way PRINT does.
func (v Value) String() string {
	switch v.typ {
	case Nil:
		return "nil"
	case Bool:
		if v.b {
			return "true"
		}
		return "false"
	case Number:
		return formatNumber(v.n)
	case Obj:
		return v.o.String()
	default:
		return fmt.Sprintf("<bad value tag %d>", v.typ)
	}
}

func formatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "nan"
	case math.IsInf(n, 1):
		return "inf"
	case math.IsInf(n, -1):
		return "-inf"
	default:
		return strconv.FormatFloat(n, 'g', -1, 64)
	}
}
