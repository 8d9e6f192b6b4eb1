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

package manual

import (
	"unsafe"

	"github.com/cockroachdb/errors"
)

// Null is the handle returned for elided zero-size requests. It never
// compares equal to a live allocation.
var Null unsafe.Pointer

var ErrAllocationFailed = errors.New("manual: allocation failed")

// The go:linkname directives provides backdoor access to private functions in
// the runtime. Below we're accessing the throw function.

//go:linkname throw runtime.throw
func throw(s string)

// Throw terminates the process. Unlike panic it cannot be recovered, which
// is what the runtime itself does when it runs out of memory.
func Throw(s string) {
	throw(s)
}

func failed(format string, args ...interface{}) error {
	stats.failures.Add(1)
	return errors.Wrapf(ErrAllocationFailed, format, args...)
}

// Acquire returns size bytes of uninitialised memory.
func Acquire(size uintptr) (unsafe.Pointer, error) {
	if size == 0 && ElideZeroSize {
		return Null, nil
	}
	if size > MaxArrayLen {
		return nil, failed("acquire %d bytes exceeds limit %d", size, uintptr(MaxArrayLen))
	}

	ptr := backendMalloc(size)
	if ptr == nil {
		if size == 0 {
			return Null, nil
		}
		return nil, failed("acquire %d bytes", size)
	}

	track(ptr)
	stats.acquires.Add(1)
	return ptr, nil
}

// AcquireZeroed returns count*elemSize bytes of zeroed memory.
func AcquireZeroed(count, elemSize uintptr) (unsafe.Pointer, error) {
	if elemSize != 0 && count > MaxArrayLen/elemSize {
		return nil, failed("acquire %d*%d bytes overflows limit %d", count, elemSize, uintptr(MaxArrayLen))
	}

	size := count * elemSize
	if size == 0 && ElideZeroSize {
		return Null, nil
	}

	ptr := backendCalloc(count, elemSize)
	if ptr == nil {
		if size == 0 {
			return Null, nil
		}
		return nil, failed("acquire zeroed %d*%d bytes", count, elemSize)
	}

	track(ptr)
	stats.zeroedAcquires.Add(1)
	return ptr, nil
}

// Resize changes the size of the allocation behind ptr, moving it if needed.
// Bytes past the old size are unspecified. On error ptr is still owned by
// the caller.
func Resize(ptr unsafe.Pointer, size uintptr) (unsafe.Pointer, error) {
	if ptr == Null {
		return Acquire(size)
	}
	if size == 0 && ElideZeroSize {
		Release(ptr)
		return Null, nil
	}
	if size > MaxArrayLen {
		return nil, failed("resize to %d bytes exceeds limit %d", size, uintptr(MaxArrayLen))
	}

	untrack(ptr)
	newPtr := backendRealloc(ptr, size)
	if newPtr == nil {
		if size == 0 {
			// realloc(p, 0) freed p.
			stats.releases.Add(1)
			return Null, nil
		}
		track(ptr)
		return nil, failed("resize to %d bytes", size)
	}

	track(newPtr)
	stats.resizes.Add(1)
	return newPtr, nil
}

// Release frees ptr. Releasing Null is a no-op; releasing any other handle
// twice is a fatal error when invariants are enabled and undefined otherwise.
func Release(ptr unsafe.Pointer) {
	if ptr == Null {
		return
	}

	untrack(ptr)
	backendFree(ptr)
	stats.releases.Add(1)
}
