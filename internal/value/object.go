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

package value

// ObjKind tags the variant of a heap Object. There is only one variant today
// (strings); the tag exists so the set can grow without changing the Object
// interface's shape.
type ObjKind uint8

const ObjKindString ObjKind = 0

// Object is implemented by every heap-resident value. Kind supports a
// type switch at the call sites that need it (print, equality); String
// renders the object the way PRINT does. The Next link threads every live
// object into the VM's intrusive object list for deterministic teardown
// bookkeeping, mirroring a tracked-allocation list even though Go's garbage
// collector ultimately owns the memory.
type Object interface {
	Kind() ObjKind
	String() string
	next() Object
	setNext(Object)
}

// header is embedded in every concrete Object to provide the intrusive list
// link without repeating it in each variant.
type header struct {
	link Object
}

func (h *header) next() Object     { return h.link }
func (h *header) setNext(o Object) { h.link = o }

// ObjString is an immutable, interned byte sequence. Its hash is computed
// once at construction; after interning, two ObjStrings with identical
// bytes are guaranteed to be the same pointer, so Value.Equal can use
// pointer identity for strings.
type ObjString struct {
	header
	Chars string
	Hash  uint32
}

func (s *ObjString) Kind() ObjKind  { return ObjKindString }
func (s *ObjString) String() string { return s.Chars }

// HashString computes the FNV-1a 32-bit hash used to key interned strings.
func HashString(s string) uint32 {
	var h uint32 = 0x811c9dc5
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= 0x01000193
	}
	return h
}

// NewObjString allocates a fresh, uninterned ObjString. Callers that need
// interning should go through the intern package's helpers instead of
// calling this directly; it exists so those helpers (and tests) can build
// the raw object.
func NewObjString(s string) *ObjString {
	return &ObjString{Chars: s, Hash: HashString(s)}
}
