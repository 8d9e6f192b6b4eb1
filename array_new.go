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

	"github.com/cockroachdb/errors"
	"github.com/zuoyebang/mallocarray/internal/manual"
	"github.com/zuoyebang/mallocarray/internal/rawmem"
)

// TryNewZeroed allocates n zeroed elements.
func TryNewZeroed[T any](n int) (*Array[T], error) {
	checkType[T]()
	if _, err := byteLen[T](n); err != nil {
		return nil, err
	}
	ptr, err := manual.AcquireZeroed(uintptr(n), sizeOf[T]())
	if err != nil {
		return nil, err
	}
	return newArray[T](ptr, n), nil
}

// NewZeroed is TryNewZeroed that treats allocation failure as fatal.
func NewZeroed[T any](n int) *Array[T] {
	a, err := TryNewZeroed[T](n)
	if err != nil {
		throwIfOOM(err)
	}
	return a
}

// TryNewUninit allocates n elements without initialising the memory. Read
// elements only after writing them, e.g. through Initialise.
func TryNewUninit[T any](n int) (*Array[T], error) {
	checkType[T]()
	size, err := byteLen[T](n)
	if err != nil {
		return nil, err
	}
	ptr, err := manual.Acquire(size)
	if err != nil {
		return nil, err
	}
	return newArray[T](ptr, n), nil
}

func NewUninit[T any](n int) *Array[T] {
	a, err := TryNewUninit[T](n)
	if err != nil {
		throwIfOOM(err)
	}
	return a
}

// NewFilled returns n copies of v.
func NewFilled[T any](v T, n int) *Array[T] {
	a := NewUninit[T](n)
	if n == 0 {
		return a
	}

	if sizeOf[T]() == 1 && !hasCloner[T]() {
		rawmem.Set(a.ptr, rawmem.Pun[byte](v), uintptr(n))
		return a
	}
	for i := 0; i < n; i++ {
		rawmem.Put(a.slot(i), cloneValue(&v))
	}
	return a
}

// NewFromPattern sets element i to vals[i%len(vals)]. It panics if vals is
// empty and n is not.
func NewFromPattern[T any](vals []T, n int) *Array[T] {
	if n > 0 && len(vals) == 0 {
		panic(errors.Wrapf(ErrSizeMismatch, "empty pattern for %d elements", n))
	}
	if len(vals) == 1 {
		return NewFilled(vals[0], n)
	}

	a := NewUninit[T](n)
	for i := 0; i < n; i++ {
		rawmem.Put(a.slot(i), cloneValue(&vals[i%len(vals)]))
	}
	return a
}

// FromBytes copies b into a new array. len(b) must be a multiple of the
// element size.
func FromBytes[T any](b []byte) (*Array[T], error) {
	checkType[T]()
	size := sizeOf[T]()
	if size == 0 || uintptr(len(b))%size != 0 {
		return nil, errors.Wrapf(ErrSizeMismatch, "%d bytes do not tile %s elements of %d bytes",
			len(b), typeName[T](), size)
	}

	a, err := TryNewUninit[T](int(uintptr(len(b)) / size))
	if err != nil {
		return nil, err
	}
	a.CopyFromBytes(b)
	return a, nil
}

// FromSlice copies s into a new array. Ownership of whatever the elements
// hold moves to the array.
func FromSlice[T any](s []T) *Array[T] {
	a := NewUninit[T](len(s))
	a.CopyFrom(s)
	return a
}

// FromRawParts adopts n elements at ptr. ptr must come from this package's
// allocator and must not be owned by anything else.
func FromRawParts[T any](ptr unsafe.Pointer, n int) *Array[T] {
	checkType[T]()
	return newArray[T](ptr, n)
}

// FromRawCopied copies n elements at ptr into a new array.
func FromRawCopied[T any](ptr unsafe.Pointer, n int) *Array[T] {
	a := NewUninit[T](n)
	rawmem.Copy(a.ptr, ptr, uintptr(a.LenBytes()))
	return a
}

func hasCloner[T any]() bool {
	_, ok := any((*T)(nil)).(Cloner[T])
	return ok
}
