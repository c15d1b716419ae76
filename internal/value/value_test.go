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

package value_test

import (
	"math"
	"testing"

	"github.com/loxlang/loxvm/internal/value"
)

func TestEquality(t *testing.T) {
	cases := []struct {
		name string
		a, b value.Value
		want bool
	}{
		{"nil==nil", value.NilValue, value.NilValue, true},
		{"true==true", value.BoolValue(true), value.BoolValue(true), true},
		{"true!=false", value.BoolValue(true), value.BoolValue(false), false},
		{"1==1", value.NumberValue(1), value.NumberValue(1), true},
		{"1!=2", value.NumberValue(1), value.NumberValue(2), false},
		{"nil!=false", value.NilValue, value.BoolValue(false), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.a.Equal(c.b); got != c.want {
				t.Errorf("%v.Equal(%v) = %v, want %v", c.a, c.b, got, c.want)
			}
		})
	}
}

func TestEqualityReflexiveSymmetric(t *testing.T) {
	vals := []value.Value{
		value.NilValue,
		value.BoolValue(true),
		value.BoolValue(false),
		value.NumberValue(3.14),
		value.ObjValue(value.NewObjString("hi")),
	}
	for _, v := range vals {
		if !v.Equal(v) {
			t.Errorf("%v is not reflexively equal to itself", v)
		}
	}
	for i := range vals {
		for j := range vals {
			if vals[i].Equal(vals[j]) != vals[j].Equal(vals[i]) {
				t.Errorf("Equal not symmetric for %v, %v", vals[i], vals[j])
			}
		}
	}
}

func TestIsFalsey(t *testing.T) {
	falsey := []value.Value{value.NilValue, value.BoolValue(false)}
	for _, v := range falsey {
		if !v.IsFalsey() {
			t.Errorf("%v should be falsey", v)
		}
	}
	truthy := []value.Value{value.BoolValue(true), value.NumberValue(0), value.ObjValue(value.NewObjString(""))}
	for _, v := range truthy {
		if v.IsFalsey() {
			t.Errorf("%v should be truthy", v)
		}
	}
}

func TestStringFormatting(t *testing.T) {
	cases := []struct {
		v    value.Value
		want string
	}{
		{value.NilValue, "nil"},
		{value.BoolValue(true), "true"},
		{value.BoolValue(false), "false"},
		{value.NumberValue(3), "3"},
		{value.NumberValue(3.5), "3.5"},
		{value.NumberValue(math.Inf(1)), "inf"},
		{value.NumberValue(math.Inf(-1)), "-inf"},
		{value.ObjValue(value.NewObjString("hi")), "hi"},
	}
	for _, c := range cases {
		if got := c.v.String(); got != c.want {
			t.Errorf("String() = %q, want %q", got, c.want)
		}
	}
}

func TestHashStringKnownVector(t *testing.T) {
	// FNV-1a 32-bit of "test" is a well known constant.
	const want = 0xafd071e5
	if got := value.HashString("test"); got != want {
		t.Errorf("HashString(%q) = %#x, want %#x", "test", got, want)
	}
}
