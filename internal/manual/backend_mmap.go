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

//go:build unix && (mmapalloc || !cgo)
// +build unix
// +build mmapalloc !cgo

package manual

import (
	"os"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"
)

const Backend = "mmap"

var pageSize = uintptr(os.Getpagesize())

// Every allocation is its own anonymous mapping. The mapping slices are kept
// so that Munmap receives exactly what Mmap returned.
var mappings = struct {
	sync.Mutex
	m map[unsafe.Pointer][]byte
}{m: make(map[unsafe.Pointer][]byte)}

func mapLen(size uintptr) uintptr {
	if size == 0 {
		return pageSize
	}
	return (size + pageSize - 1) &^ (pageSize - 1)
}

func backendMalloc(size uintptr) unsafe.Pointer {
	b, err := unix.Mmap(-1, 0, int(mapLen(size)), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil
	}

	ptr := unsafe.Pointer(&b[0])
	mappings.Lock()
	mappings.m[ptr] = b
	mappings.Unlock()
	return ptr
}

func backendCalloc(count, elemSize uintptr) unsafe.Pointer {
	// Anonymous mappings are zero filled by the kernel.
	return backendMalloc(count * elemSize)
}

func lookupMapping(ptr unsafe.Pointer) []byte {
	mappings.Lock()
	b, ok := mappings.m[ptr]
	mappings.Unlock()
	if !ok {
		throw("manual: unknown mmap handle")
	}
	return b
}

func backendRealloc(ptr unsafe.Pointer, size uintptr) unsafe.Pointer {
	old := lookupMapping(ptr)
	if size <= uintptr(len(old)) {
		return ptr
	}

	newPtr := backendMalloc(size)
	if newPtr == nil {
		return nil
	}
	copy(unsafe.Slice((*byte)(newPtr), size), old)
	backendFree(ptr)
	return newPtr
}

func backendFree(ptr unsafe.Pointer) {
	b := lookupMapping(ptr)
	mappings.Lock()
	delete(mappings.m, ptr)
	mappings.Unlock()
	if err := unix.Munmap(b); err != nil {
		throw("manual: munmap failed")
	}
}
