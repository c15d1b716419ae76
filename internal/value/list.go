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

// ObjectList is the VM-owned intrusive singly linked list of every heap
// Object created during its lifetime. Register threads a freshly allocated
// object onto the head of the list; Count and Walk let callers confirm that
// every Object the VM creates stays reachable from this list until the VM
// itself is discarded. There is no collector behind it; Go's own garbage
// collector owns the actual memory.
type ObjectList struct {
	head  Object
	count int
}

// Register appends (by prepending, O(1)) obj to the list.
func (l *ObjectList) Register(obj Object) {
	obj.setNext(l.head)
	l.head = obj
	l.count++
}

// Count returns the number of objects currently tracked.
func (l *ObjectList) Count() int { return l.count }

// Walk calls fn for every tracked object, head first.
func (l *ObjectList) Walk(fn func(Object)) {
	for o := l.head; o != nil; o = o.next() {
		fn(o)
	}
}

// Reset clears the list without visiting its members.
func (l *ObjectList) Reset() {
	l.head = nil
	l.count = 0
}
