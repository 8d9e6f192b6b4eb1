// Copyright 2021 The Bitalosdb author(hustxrb@163.com) and other contributors.
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

package mallocarray

import (
	"unsafe"

	"github.com/bits-and-blooms/bitset"
	"github.com/zuoyebang/mallocarray/internal/rawmem"
)

// InitIter walks the slots of an array once, in order, so that each can be
// written before it is read.
type InitIter[T any] struct {
	arr  *Array[T]
	next int
	set  *bitset.BitSet
}

// Slot is one element of an array under initialisation.
type Slot[T any] struct {
	it    *InitIter[T]
	index int
}

// Initialise returns a cursor over all of a's slots, none of them marked
// as set.
func (a *Array[T]) Initialise() *InitIter[T] {
	a.check()
	return &InitIter[T]{
		arr: a,
		set: bitset.New(uint(a.n)),
	}
}

// Next returns the next slot, or false once every slot has been visited.
func (it *InitIter[T]) Next() (*Slot[T], bool) {
	if it.next >= it.arr.n {
		return nil, false
	}
	s := &Slot[T]{it: it, index: it.next}
	it.next++
	return s, true
}

// Remaining returns the number of slots not yet visited.
func (it *InitIter[T]) Remaining() int {
	return it.arr.n - it.next
}

// Initialised returns the number of slots marked as set.
func (it *InitIter[T]) Initialised() int {
	return int(it.set.Count())
}

// Close abandons the cursor. Unvisited slots are zero filled and are never
// treated as live values.
func (it *InitIter[T]) Close() {
	if it.next >= it.arr.n {
		return
	}
	size := sizeOf[T]()
	start := unsafe.Add(it.arr.base(), uintptr(it.next)*size)
	rawmem.Set(start, 0, uintptr(it.arr.n-it.next)*size)
	it.next = it.arr.n
}

// Fill sets every remaining unset slot to a copy of v.
func (it *InitIter[T]) Fill(v T) {
	it.FillWith(func() T {
		return cloneValue(&v)
	})
}

// FillWith sets every remaining unset slot to the result of fn.
func (it *InitIter[T]) FillWith(fn func() T) {
	for s, ok := it.Next(); ok; s, ok = it.Next() {
		if !s.IsInit() {
			s.Put(fn())
		}
	}
}

// FillDefault sets every remaining unset slot to the zero value.
func (it *InitIter[T]) FillDefault() {
	it.FillWith(func() T {
		var zero T
		return zero
	})
}

func (s *Slot[T]) ptr() *T {
	return s.it.arr.slot(s.index)
}

func (s *Slot[T]) Index() int {
	return s.index
}

// IsInit reports whether the slot was set by Put or AssumeInit.
func (s *Slot[T]) IsInit() bool {
	return s.it.set.Test(uint(s.index))
}

// AssumeInit marks the slot as set without writing it. The caller vouches
// that the memory already holds a valid value.
func (s *Slot[T]) AssumeInit() {
	s.it.set.Set(uint(s.index))
}

// Put stores v and marks the slot as set. A value stored by an earlier Put
// is released first; the unspecified memory seen by the first Put is not.
func (s *Slot[T]) Put(v T) *T {
	p := s.ptr()
	if s.IsInit() {
		releaseAt(p)
	}
	rawmem.Put(p, v)
	s.it.set.Set(uint(s.index))
	return p
}

// Get returns the stored value, or false if the slot is not set.
func (s *Slot[T]) Get() (*T, bool) {
	if !s.IsInit() {
		return nil, false
	}
	return s.ptr(), true
}
