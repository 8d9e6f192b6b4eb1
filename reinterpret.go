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
)

func tileCount[U, T any](a *Array[T]) (int, error) {
	size := sizeOf[U]()
	total := uintptr(a.LenBytes())
	if size == 0 || total%size != 0 {
		return 0, errors.Wrapf(ErrSizeMismatch, "%d bytes of %s do not tile elements of %d bytes",
			total, typeName[T](), size)
	}
	return int(total / size), nil
}

// Reinterpret moves a's memory into an array of U covering the same bytes.
// The byte length must be a multiple of U's size; on error a is untouched.
func Reinterpret[U, T any](a *Array[T]) (*Array[U], error) {
	a.check()
	checkType[U]()
	n, err := tileCount[U](a)
	if err != nil {
		return nil, err
	}

	out := newArray[U](a.ptr, n)
	out.ReleaseElements = a.ReleaseElements
	a.markMoved()
	return out, nil
}

// MustReinterpret is Reinterpret for callers that treat a size mismatch as a
// programming error.
func MustReinterpret[U, T any](a *Array[T]) *Array[U] {
	out, err := Reinterpret[U](a)
	if err != nil {
		panic(err)
	}
	return out
}

// View returns a's memory as a slice of U without moving ownership. The
// slice must not outlive a.
func View[U, T any](a *Array[T]) ([]U, error) {
	a.check()
	checkType[U]()
	n, err := tileCount[U](a)
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*U)(a.base()), n), nil
}
