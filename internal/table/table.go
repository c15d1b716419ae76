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

// Package table implements the open-addressing hash table used both as the
// VM's string-intern table and as its global-variable store. Its probe
// sequence, tombstone handling and load-factor behavior are observable and
// tested directly (see DESIGN.md), which is why it is a hand-rolled table
// rather than Go's builtin map.
package table

import "github.com/loxlang/loxvm/internal/value"

const maxLoad = 0.75

type entry struct {
	key *value.ObjString
	val value.Value
}

// isEmpty reports whether e has never held a key (as opposed to having held
// one that was later deleted, which leaves a tombstone).
func (e *entry) isEmpty() bool { return e.key == nil && e.val.IsNil() }

// isTombstone reports whether e is a deleted slot: no key, but a sentinel
// true boolean value so it is distinguishable from a never-used slot.
func (e *entry) isTombstone() bool { return e.key == nil && !e.val.IsNil() }

// Table is an open-addressing, linear-probing hash table keyed by
// *value.ObjString pointer identity (content lookups go through FindString).
type Table struct {
	count   int // live entries + tombstones, i.e. occupied slots
	entries []entry
}

// New returns an empty Table.
func New() *Table { return &Table{} }

// Count returns the number of live key/value pairs (tombstones are not
// counted).
func (t *Table) Count() int {
	live := 0
	for i := range t.entries {
		if t.entries[i].key != nil {
			live++
		}
	}
	return live
}

// Capacity returns the current number of slots, 0 until the first insert.
func (t *Table) Capacity() int { return len(t.entries) }

func findEntry(entries []entry, key *value.ObjString) *entry {
	capacity := uint32(len(entries))
	index := key.Hash % capacity
	var tombstone *entry
	for {
		e := &entries[index]
		switch {
		case e.isEmpty():
			if tombstone != nil {
				return tombstone
			}
			return e
		case e.isTombstone():
			if tombstone == nil {
				tombstone = e
			}
		case e.key == key:
			return e
		}
		index = (index + 1) % capacity
	}
}

func (t *Table) grow() {
	newCap := 8
	if len(t.entries) > 0 {
		newCap = len(t.entries) * 2
	}
	newEntries := make([]entry, newCap)
	newCount := 0
	for i := range t.entries {
		e := &t.entries[i]
		if e.key == nil {
			continue
		}
		dst := findEntry(newEntries, e.key)
		dst.key = e.key
		dst.val = e.val
		newCount++
	}
	t.entries = newEntries
	t.count = newCount
}

// Set inserts or overwrites key's value, growing the table first if that
// would push the occupancy (live entries + tombstones) past maxLoad. It
// reports whether key was not already present.
func (t *Table) Set(key *value.ObjString, val value.Value) bool {
	if float64(t.count+1) > float64(len(t.entries))*maxLoad {
		t.grow()
	}
	e := findEntry(t.entries, key)
	isNewKey := e.key == nil
	if isNewKey && e.isEmpty() {
		t.count++
	}
	e.key = key
	e.val = val
	return isNewKey
}

// Get looks up key and reports whether it was present.
func (t *Table) Get(key *value.ObjString) (value.Value, bool) {
	if len(t.entries) == 0 {
		return value.NilValue, false
	}
	e := findEntry(t.entries, key)
	if e.key == nil {
		return value.NilValue, false
	}
	return e.val, true
}

// Delete removes key, leaving a tombstone so later probes that passed
// through this slot still terminate correctly. Reports whether key was
// present.
func (t *Table) Delete(key *value.ObjString) bool {
	if len(t.entries) == 0 {
		return false
	}
	e := findEntry(t.entries, key)
	if e.key == nil {
		return false
	}
	e.key = nil
	e.val = value.BoolValue(true)
	return true
}

// AddAll copies every live entry of from into to.
func AddAll(from, to *Table) {
	for i := range from.entries {
		e := &from.entries[i]
		if e.key != nil {
			to.Set(e.key, e.val)
		}
	}
}

// FindString looks up an ObjString by content rather than pointer identity.
// It is the only lookup path that compares byte content; every other
// operation uses pointer identity. Used by the interning constructors to
// decide whether a byte sequence already has a canonical ObjString.
func (t *Table) FindString(s string, hash uint32) *value.ObjString {
	if len(t.entries) == 0 {
		return nil
	}
	capacity := uint32(len(t.entries))
	index := hash % capacity
	for {
		e := &t.entries[index]
		switch {
		case e.isEmpty():
			return nil
		case e.key != nil && e.key.Hash == hash && e.key.Chars == s:
			return e.key
		}
		index = (index + 1) % capacity
	}
}
