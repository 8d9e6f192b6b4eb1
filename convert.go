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

// TryResize moves a's memory into an array of n elements. Elements past the
// old length are unspecified; write them before reading. When shrinking
// with ReleaseElements set, the dropped elements are released first and a
// is shortened even if the reallocation then fails.
func (a *Array[T]) TryResize(n int) (*Array[T], error) {
	a.check()
	size, err := byteLen[T](n)
	if err != nil {
		return nil, err
	}
	if n < a.n && a.ReleaseElements {
		for i := n; i < a.n; i++ {
			releaseAt(a.slot(i))
		}
		a.n = n
	}

	ptr, err := manual.Resize(a.ptr, size)
	if err != nil {
		return nil, err
	}
	out := newArray[T](ptr, n)
	out.ReleaseElements = a.ReleaseElements
	a.markMoved()
	return out, nil
}

// Resize is TryResize that treats allocation failure as fatal.
func (a *Array[T]) Resize(n int) *Array[T] {
	out, err := a.TryResize(n)
	if err != nil {
		throwIfOOM(err)
	}
	return out
}

// IntoSlice moves the elements into a Go slice and frees the array. No
// element is released.
func (a *Array[T]) IntoSlice() []T {
	out := make([]T, a.n)
	copy(out, a.Slice())
	a.Free()
	return out
}

// MoveInto moves the elements into the front of dst and frees the array. If
// dst is too short nothing moves and the array stays usable.
func (a *Array[T]) MoveInto(dst []T) error {
	a.check()
	if len(dst) < a.n {
		return errors.Wrapf(ErrBoundsViolation, "destination holds %d of %d elements", len(dst), a.n)
	}
	if a.n > 0 {
		rawmem.Move(unsafe.Pointer(&dst[0]), a.base(), uintptr(a.LenBytes()))
	}
	a.Free()
	return nil
}

// IntoRawParts gives up ownership and returns the handle and length. Pass
// them to FromRawParts, or free the handle with FreeRaw.
func (a *Array[T]) IntoRawParts() (unsafe.Pointer, int) {
	a.check()
	ptr, n := a.ptr, a.n
	a.markMoved()
	return ptr, n
}

// Leak gives up ownership and returns a slice over memory that is never
// freed.
func (a *Array[T]) Leak() []T {
	s := a.Slice()
	a.markMoved()
	return s
}
