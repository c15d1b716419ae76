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

// Package intern implements string canonicalization on top of table.Table:
// at most one *value.ObjString exists for any distinct byte sequence at a
// time, with the table as sole owner of record.
package intern

import (
	"github.com/loxlang/loxvm/internal/table"
	"github.com/loxlang/loxvm/internal/value"
)

// CopyString returns the canonical ObjString for s, creating and
// registering a new one if s has not been interned yet. The returned
// object is always registered in objs (the VM's object list) exactly once,
// even across repeated calls with equal content.
func CopyString(t *table.Table, objs *value.ObjectList, s string) *value.ObjString {
	hash := value.HashString(s)
	if existing := t.FindString(s, hash); existing != nil {
		return existing
	}
	obj := value.NewObjString(s)
	t.Set(obj, value.NilValue)
	objs.Register(obj)
	return obj
}

// TakeString is CopyString's counterpart for callers that already own a
// freshly built string (e.g. concatenation results) and want to hand off
// ownership: if the content is already interned, the freshly built string is
// simply discarded (Go's GC reclaims it) and the canonical object is
// returned instead of registering a duplicate.
func TakeString(t *table.Table, objs *value.ObjectList, s string) *value.ObjString {
	hash := value.HashString(s)
	if existing := t.FindString(s, hash); existing != nil {
		return existing
	}
	obj := &value.ObjString{Chars: s, Hash: hash}
	t.Set(obj, value.NilValue)
	objs.Register(obj)
	return obj
}
