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
	"fmt"
	"strings"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/zuoyebang/mallocarray/internal/layout"
	"github.com/zuoyebang/mallocarray/internal/manual"
	"github.com/zuoyebang/mallocarray/internal/rawmem"
)

// Releaser is implemented by element pointer types that own resources which
// must be freed when the element is destroyed.
type Releaser interface {
	Release()
}

// Cloner is implemented by element pointer types whose copies must not
// share resources. Clone, Fill and NewFilled use it instead of a bitwise
// copy.
type Cloner[T any] interface {
	Clone() T
}

// Array is a fixed-length array of T stored in manually managed memory.
type Array[T any] struct {
	ptr  unsafe.Pointer
	n    int
	gone bool

	// ReleaseElements makes Release call Release on each element before
	// freeing the memory. It defaults to true when *T implements Releaser;
	// clear it when the elements are owned elsewhere.
	ReleaseElements bool
}

// zeroBase backs slices of zero-size elements whose allocation was elided.
var zeroBase uintptr

func sizeOf[T any]() uintptr {
	var v T
	return unsafe.Sizeof(v)
}

func hasReleaser[T any]() bool {
	_, ok := any((*T)(nil)).(Releaser)
	return ok
}

func releaseAt[T any](p *T) {
	if r, ok := any(p).(Releaser); ok {
		r.Release()
	}
}

func cloneValue[T any](v *T) T {
	if c, ok := any(v).(Cloner[T]); ok {
		return c.Clone()
	}
	return *v
}

func checkType[T any]() {
	if err := layout.CheckPlainData[T](); err != nil {
		panic(err)
	}
}

func byteLen[T any](n int) (uintptr, error) {
	if n < 0 {
		return 0, errors.Wrapf(ErrBoundsViolation, "negative length %d", n)
	}
	size := sizeOf[T]()
	if size != 0 && uintptr(n) > manual.MaxArrayLen/size {
		return 0, errors.Wrapf(ErrAllocationFailed, "%d elements of %d bytes overflow", n, size)
	}
	return uintptr(n) * size, nil
}

func newArray[T any](ptr unsafe.Pointer, n int) *Array[T] {
	a := &Array[T]{
		ptr:             ptr,
		n:               n,
		ReleaseElements: hasReleaser[T](),
	}
	trackLeak(a)
	return a
}

func (a *Array[T]) check() {
	if a.gone {
		panic(errors.Wrapf(ErrConsumed, "%s", typeName[T]()))
	}
}

// markMoved drops the array's claim on its memory.
func (a *Array[T]) markMoved() {
	untrackLeak(a)
	a.ptr = rawmem.Null
	a.n = 0
	a.gone = true
}

func (a *Array[T]) base() unsafe.Pointer {
	if a.ptr == rawmem.Null {
		return unsafe.Pointer(&zeroBase)
	}
	return a.ptr
}

func (a *Array[T]) slot(i int) *T {
	return (*T)(unsafe.Add(a.base(), uintptr(i)*sizeOf[T]()))
}

// Len returns the number of elements. It is 0 once the array has been
// released or moved.
func (a *Array[T]) Len() int {
	return a.n
}

// LenBytes returns the size of the array's memory in bytes.
func (a *Array[T]) LenBytes() int {
	return a.n * int(sizeOf[T]())
}

func (a *Array[T]) IsEmpty() bool {
	return a.n == 0
}

// Consumed reports whether the array was released or its memory moved.
func (a *Array[T]) Consumed() bool {
	return a.gone
}

// Slice returns the elements as a slice over the array's memory. The slice
// must not be used after the array is released or moved.
func (a *Array[T]) Slice() []T {
	a.check()
	return unsafe.Slice((*T)(a.base()), a.n)
}

// Bytes returns the array's memory as bytes, with the same lifetime rules
// as Slice.
func (a *Array[T]) Bytes() []byte {
	a.check()
	return rawmem.Bytes(a.ptr, uintptr(a.LenBytes()))
}

// Ptr returns the handle of the array's memory. It may be nil for an empty
// array.
func (a *Array[T]) Ptr() unsafe.Pointer {
	a.check()
	return a.ptr
}

// At returns a pointer to element i. It panics if i is out of range.
func (a *Array[T]) At(i int) *T {
	a.check()
	if uint(i) >= uint(a.n) {
		panic(boundsError(i, a.n))
	}
	return a.slot(i)
}

// Get returns a copy of element i.
func (a *Array[T]) Get(i int) (T, error) {
	a.check()
	if uint(i) >= uint(a.n) {
		var zero T
		return zero, boundsError(i, a.n)
	}
	return *a.slot(i), nil
}

// Set stores v at i, releasing the previous element first when
// ReleaseElements is set.
func (a *Array[T]) Set(i int, v T) error {
	a.check()
	if uint(i) >= uint(a.n) {
		return boundsError(i, a.n)
	}
	p := a.slot(i)
	if a.ReleaseElements {
		releaseAt(p)
	}
	rawmem.Put(p, v)
	return nil
}

// ReplaceAt overwrites element i without releasing what was there. It is
// meant for slots of an uninitialised array; on a live element the old
// element's resources leak.
func (a *Array[T]) ReplaceAt(i int, v T) {
	a.check()
	if uint(i) >= uint(a.n) {
		panic(boundsError(i, a.n))
	}
	rawmem.Put(a.slot(i), v)
}

// SetMemory sets every byte of the array to b.
func (a *Array[T]) SetMemory(b byte) {
	a.check()
	rawmem.Set(a.ptr, b, uintptr(a.LenBytes()))
}

// CopyFrom copies elements from src and returns how many were copied.
func (a *Array[T]) CopyFrom(src []T) int {
	return copy(a.Slice(), src)
}

// CopyFromBytes copies raw bytes from src and returns how many were copied.
func (a *Array[T]) CopyFromBytes(src []byte) int {
	return copy(a.Bytes(), src)
}

// Release destroys the array: each element is released in index order if
// ReleaseElements is set, then the memory is freed. Releasing a released or
// moved array is a no-op.
func (a *Array[T]) Release() {
	if a.gone {
		return
	}
	if a.ReleaseElements && hasReleaser[T]() {
		for i := 0; i < a.n; i++ {
			releaseAt(a.slot(i))
		}
	}
	manual.Release(a.ptr)
	a.markMoved()
}

// Free frees the memory without releasing any element.
func (a *Array[T]) Free() {
	if a.gone {
		return
	}
	manual.Release(a.ptr)
	a.markMoved()
}

func typeName[T any]() string {
	return "mallocarray.Array[" + layout.TypeOf[T]().String() + "]"
}

func (a *Array[T]) String() string {
	var b strings.Builder
	b.WriteString(typeName[T]())
	if a.gone {
		b.WriteString(": <consumed>")
		return b.String()
	}
	b.WriteString(": (")
	for i := 0; i < a.n; i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%v", *a.slot(i))
	}
	b.WriteByte(')')
	return b.String()
}
