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

package table_test

import (
	"testing"

	"github.com/loxlang/loxvm/internal/table"
	"github.com/loxlang/loxvm/internal/value"
)

func key(s string) *value.ObjString { return value.NewObjString(s) }

func TestSetGetDelete(t *testing.T) {
	tb := table.New()
	a := key("a")

	if isNew := tb.Set(a, value.NumberValue(1)); !isNew {
		t.Fatal("first Set should report a new key")
	}
	v, ok := tb.Get(a)
	if !ok || v.AsNumber() != 1 {
		t.Fatalf("Get after Set = (%v, %v), want (1, true)", v, ok)
	}
	if isNew := tb.Set(a, value.NumberValue(2)); isNew {
		t.Fatal("second Set for the same key should not report a new key")
	}
	v, _ = tb.Get(a)
	if v.AsNumber() != 2 {
		t.Fatalf("Get after overwrite = %v, want 2", v)
	}

	if !tb.Delete(a) {
		t.Fatal("Delete of present key should succeed")
	}
	if _, ok := tb.Get(a); ok {
		t.Fatal("Get after Delete should miss")
	}
	if tb.Delete(a) {
		t.Fatal("second Delete should report absence")
	}
}

func TestGetMissingOnEmptyTable(t *testing.T) {
	tb := table.New()
	if _, ok := tb.Get(key("nope")); ok {
		t.Fatal("Get on empty table should miss")
	}
}

func TestTombstoneDoesNotBreakProbing(t *testing.T) {
	tb := table.New()
	a, b, c := key("a"), key("b"), key("c")
	tb.Set(a, value.NumberValue(1))
	tb.Set(b, value.NumberValue(2))
	tb.Set(c, value.NumberValue(3))

	tb.Delete(b)

	// b's deletion must not break lookup of entries that probed past it.
	if _, ok := tb.Get(a); !ok {
		t.Error("a should still be found after deleting b")
	}
	if _, ok := tb.Get(c); !ok {
		t.Error("c should still be found after deleting b")
	}
}

func TestLoadFactorGrowsTable(t *testing.T) {
	tb := table.New()
	for i := 0; i < 100; i++ {
		tb.Set(key(string(rune('a'+(i%26))) + string(rune(i))), value.NumberValue(float64(i)))
		if tb.Capacity() > 0 && float64(tb.Count()) > float64(tb.Capacity())*0.75+1 {
			t.Fatalf("load factor exceeded after %d inserts: count=%d capacity=%d", i, tb.Count(), tb.Capacity())
		}
	}
}

func TestFindStringContentLookup(t *testing.T) {
	tb := table.New()
	s := value.NewObjString("hello")
	tb.Set(s, value.NilValue)

	found := tb.FindString("hello", value.HashString("hello"))
	if found != s {
		t.Fatalf("FindString should return the same pointer that was interned, got %p want %p", found, s)
	}

	if tb.FindString("missing", value.HashString("missing")) != nil {
		t.Fatal("FindString should miss on unknown content")
	}
}

func TestAddAllCopiesLiveEntriesOnly(t *testing.T) {
	from := table.New()
	to := table.New()
	a, b := key("a"), key("b")
	from.Set(a, value.NumberValue(1))
	from.Set(b, value.NumberValue(2))
	from.Delete(b)

	table.AddAll(from, to)

	if _, ok := to.Get(a); !ok {
		t.Error("AddAll should have copied a")
	}
	if _, ok := to.Get(b); ok {
		t.Error("AddAll should not have copied a deleted (tombstoned) entry")
	}
}
