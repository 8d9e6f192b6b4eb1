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
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/errors"
	"github.com/zuoyebang/mallocarray/internal/layout"
	"github.com/zuoyebang/mallocarray/internal/rawmem"
	"golang.org/x/exp/slices"
)

// Equal reports whether a and b have the same length and equal elements.
func Equal[T comparable](a, b *Array[T]) bool {
	return slices.Equal(a.Slice(), b.Slice())
}

// EqualSlice compares an array against a plain slice.
func EqualSlice[T comparable](a *Array[T], s []T) bool {
	return slices.Equal(a.Slice(), s)
}

// Hash returns an xxhash of the length followed by the elements in index
// order. Byte-wise hashing only agrees with == when T has no padding, so it
// panics for padded element types.
func (a *Array[T]) Hash() uint64 {
	a.check()
	if layout.Padded[T]() {
		panic(errors.AssertionFailedf("mallocarray: cannot hash padded element type %s", typeName[T]()))
	}

	var lenBuf [8]byte
	binary.LittleEndian.PutUint64(lenBuf[:], uint64(a.n))
	d := xxhash.New()
	_, _ = d.Write(lenBuf[:])
	_, _ = d.Write(a.Bytes())
	return d.Sum64()
}

// Clone returns an independent copy. Elements are copied with their Clone
// method when *T implements Cloner, bitwise otherwise.
func (a *Array[T]) Clone() *Array[T] {
	a.check()
	out := NewUninit[T](a.n)
	out.ReleaseElements = a.ReleaseElements
	for i := 0; i < a.n; i++ {
		rawmem.Put(out.slot(i), cloneValue(a.slot(i)))
	}
	return out
}

// CloneMem returns a bitwise copy of the array's memory.
func (a *Array[T]) CloneMem() *Array[T] {
	a.check()
	out := NewUninit[T](a.n)
	out.ReleaseElements = a.ReleaseElements
	rawmem.Copy(out.ptr, a.ptr, uintptr(a.LenBytes()))
	return out
}
