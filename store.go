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

	"github.com/RoaringBitmap/roaring/roaring64"
	"github.com/zuoyebang/mallocarray/internal/rawmem"
	"golang.org/x/exp/slices"
)

func handleKey(ptr unsafe.Pointer) uint64 {
	return uint64(uintptr(ptr))
}

// Store owns individually allocated values of T, typically from NewValue.
// Release releases and frees every value still held.
type Store[T any] struct {
	handles []*T
	index   *roaring64.Bitmap
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{index: roaring64.NewBitmap()}
}

// StoreFromRawParts takes ownership of handles. Duplicates are kept once.
func StoreFromRawParts[T any](handles []*T) *Store[T] {
	s := NewStore[T]()
	for _, h := range handles {
		s.Add(h)
	}
	return s
}

// Add takes ownership of p and returns it. Adding a handle the store
// already holds is a no-op.
func (s *Store[T]) Add(p *T) *T {
	if s.index.CheckedAdd(handleKey(unsafe.Pointer(p))) {
		s.handles = append(s.handles, p)
	}
	return p
}

// Remove gives up ownership of p without freeing it.
func (s *Store[T]) Remove(p *T) {
	key := handleKey(unsafe.Pointer(p))
	if !s.index.Contains(key) {
		return
	}
	s.handles = slices.DeleteFunc(s.handles, func(h *T) bool {
		return h == p
	})
	s.index.Remove(key)
}

func (s *Store[T]) Contains(p *T) bool {
	return s.index.Contains(handleKey(unsafe.Pointer(p)))
}

func (s *Store[T]) Len() int {
	return len(s.handles)
}

// Handles returns the held handles in insertion order. The store keeps
// ownership.
func (s *Store[T]) Handles() []*T {
	return slices.Clone(s.handles)
}

func (s *Store[T]) reset() {
	s.handles = nil
	s.index.Clear()
}

// IntoRawParts gives up ownership of every handle and returns them.
func (s *Store[T]) IntoRawParts() []*T {
	handles := s.handles
	s.reset()
	return handles
}

// Free frees every value without releasing it and empties the store.
func (s *Store[T]) Free() {
	for _, h := range s.handles {
		FreeValue(h)
	}
	s.reset()
}

// Release releases and frees every value and empties the store.
func (s *Store[T]) Release() {
	for _, h := range s.handles {
		DeleteValue(h)
	}
	s.reset()
}

// IntoArray moves every value, in insertion order, into a new array and
// frees the individual allocations. The moved values are not released.
func (s *Store[T]) IntoArray() *Array[T] {
	a := NewUninit[T](len(s.handles))
	it := a.Initialise()
	for _, h := range s.handles {
		slot, _ := it.Next()
		slot.Put(rawmem.Take(h))
		FreeValue(h)
	}
	s.reset()
	return a
}

type dynEntry struct {
	ptr     unsafe.Pointer
	release func(unsafe.Pointer)
}

// DynStore is a Store without a static element type. Each entry remembers
// how to release itself.
type DynStore struct {
	entries []dynEntry
	index   *roaring64.Bitmap
}

func NewDynStore() *DynStore {
	return &DynStore{index: roaring64.NewBitmap()}
}

// DynStoreFromRawParts takes ownership of ptrs, which are freed but never
// released.
func DynStoreFromRawParts(ptrs []unsafe.Pointer) *DynStore {
	s := NewDynStore()
	for _, p := range ptrs {
		s.AddRaw(p)
	}
	return s
}

func (s *DynStore) add(ptr unsafe.Pointer, release func(unsafe.Pointer)) {
	if s.index.CheckedAdd(handleKey(ptr)) {
		s.entries = append(s.entries, dynEntry{ptr: ptr, release: release})
	}
}

// DynAdd hands p to s and returns it. When *T implements Releaser the store
// will release it on teardown.
func DynAdd[T any](s *DynStore, p *T) *T {
	var release func(unsafe.Pointer)
	if hasReleaser[T]() {
		release = func(ptr unsafe.Pointer) {
			releaseAt((*T)(ptr))
		}
	}
	s.add(unsafe.Pointer(p), release)
	return p
}

// AddRaw hands an untyped handle to s. It is freed but never released.
func (s *DynStore) AddRaw(ptr unsafe.Pointer) unsafe.Pointer {
	s.add(ptr, nil)
	return ptr
}

func (s *DynStore) Remove(ptr unsafe.Pointer) {
	key := handleKey(ptr)
	if !s.index.Contains(key) {
		return
	}
	s.entries = slices.DeleteFunc(s.entries, func(e dynEntry) bool {
		return e.ptr == ptr
	})
	s.index.Remove(key)
}

func (s *DynStore) Contains(ptr unsafe.Pointer) bool {
	return s.index.Contains(handleKey(ptr))
}

func (s *DynStore) Len() int {
	return len(s.entries)
}

func (s *DynStore) reset() {
	s.entries = nil
	s.index.Clear()
}

func (s *DynStore) IntoRawParts() []unsafe.Pointer {
	ptrs := make([]unsafe.Pointer, len(s.entries))
	for i, e := range s.entries {
		ptrs[i] = e.ptr
	}
	s.reset()
	return ptrs
}

func (s *DynStore) Free() {
	for _, e := range s.entries {
		FreeRaw(e.ptr)
	}
	s.reset()
}

func (s *DynStore) Release() {
	for _, e := range s.entries {
		if e.release != nil {
			e.release(e.ptr)
		}
		FreeRaw(e.ptr)
	}
	s.reset()
}
