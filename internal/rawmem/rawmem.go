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

// Package rawmem holds byte-level operations over memory that the Go
// runtime does not manage.
package rawmem

import (
	"fmt"
	"unsafe"

	"github.com/zuoyebang/mallocarray/internal/invariants"
)

// Null is the sentinel handle that never refers to a live allocation.
var Null unsafe.Pointer

// Bytes views n bytes at ptr. A Null ptr yields an empty slice.
func Bytes(ptr unsafe.Pointer, n uintptr) []byte {
	if ptr == Null || n == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(ptr), n)
}

// Set writes b to n bytes starting at ptr.
func Set(ptr unsafe.Pointer, b byte, n uintptr) {
	buf := Bytes(ptr, n)
	if len(buf) == 0 {
		return
	}
	if b == 0 {
		for i := range buf {
			buf[i] = 0
		}
		return
	}
	buf[0] = b
	for filled := 1; filled < len(buf); filled *= 2 {
		copy(buf[filled:], buf[:filled])
	}
}

// Copy copies n bytes from src to dst. The regions must not overlap.
func Copy(dst, src unsafe.Pointer, n uintptr) {
	if n == 0 {
		return
	}
	if invariants.Enabled && overlaps(dst, src, n) {
		panic(fmt.Sprintf("rawmem: overlapping copy of %d bytes %p <- %p", n, dst, src))
	}
	copy(Bytes(dst, n), Bytes(src, n))
}

// Move copies n bytes from src to dst. The regions may overlap.
func Move(dst, src unsafe.Pointer, n uintptr) {
	if n == 0 {
		return
	}
	copy(Bytes(dst, n), Bytes(src, n))
}

func overlaps(a, b unsafe.Pointer, n uintptr) bool {
	x, y := uintptr(a), uintptr(b)
	if x > y {
		x, y = y, x
	}
	return y-x < n
}

// Put writes v to ptr without reading the previous contents.
func Put[T any](ptr *T, v T) {
	*ptr = v
}

// Take moves the value out of ptr and leaves the slot zeroed.
func Take[T any](ptr *T) T {
	v := *ptr
	var zero T
	*ptr = zero
	return v
}

// Replace stores v at ptr and returns the previous value.
func Replace[T any](ptr *T, v T) T {
	old := *ptr
	*ptr = v
	return old
}
