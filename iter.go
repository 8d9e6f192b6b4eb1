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

	"github.com/zuoyebang/mallocarray/internal/manual"
	"github.com/zuoyebang/mallocarray/internal/rawmem"
)

// IntoIter yields the elements of an array by value and frees the memory
// once: after the last element, on the first Next of an empty iterator, or
// on Close.
type IntoIter[T any] struct {
	start  unsafe.Pointer
	offset int
	n      int
	done   bool
}

// IntoIter moves a's memory into a consuming iterator. Call Close if the
// iterator may be abandoned before it is exhausted.
func (a *Array[T]) IntoIter() *IntoIter[T] {
	a.check()
	it := &IntoIter[T]{
		start: a.ptr,
		n:     a.n,
	}
	a.markMoved()
	return it
}

func (it *IntoIter[T]) slot(i int) *T {
	base := it.start
	if base == rawmem.Null {
		base = unsafe.Pointer(&zeroBase)
	}
	return (*T)(unsafe.Add(base, uintptr(i)*sizeOf[T]()))
}

func (it *IntoIter[T]) finish() {
	manual.Release(it.start)
	it.start = rawmem.Null
	it.offset = it.n
	it.done = true
}

// Next moves the next element out of the array.
func (it *IntoIter[T]) Next() (T, bool) {
	var zero T
	if it.done {
		return zero, false
	}
	if it.offset >= it.n {
		it.finish()
		return zero, false
	}

	v := rawmem.Take(it.slot(it.offset))
	it.offset++
	if it.offset == it.n {
		it.finish()
	}
	return v, true
}

// Len returns the number of elements not yet yielded.
func (it *IntoIter[T]) Len() int {
	return it.n - it.offset
}

// Done reports whether the memory has been freed.
func (it *IntoIter[T]) Done() bool {
	return it.done
}

// Close releases every element not yet yielded, in index order, when *T
// implements Releaser, then frees the memory. The iterator owns those
// elements, so the source array's ReleaseElements flag does not apply.
// Closing a finished iterator is a no-op.
func (it *IntoIter[T]) Close() {
	if it.done {
		return
	}
	if hasReleaser[T]() {
		for i := it.offset; i < it.n; i++ {
			releaseAt(it.slot(i))
		}
	}
	it.finish()
}

// Collect drains the remaining elements into a Go slice.
func (it *IntoIter[T]) Collect() []T {
	out := make([]T, 0, it.Len())
	for v, ok := it.Next(); ok; v, ok = it.Next() {
		out = append(out, v)
	}
	return out
}
