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

//go:build cgo && !mmapalloc
// +build cgo,!mmapalloc

package manual

// #include <stdlib.h>
//
// // C.malloc is rewritten by cgo to crash on a NULL return, so the calls go
// // through plain C wrappers to keep the failure observable.
// static void *ma_malloc(size_t n) { return malloc(n); }
// static void *ma_calloc(size_t n, size_t s) { return calloc(n, s); }
// static void *ma_realloc(void *p, size_t n) { return realloc(p, n); }
// static void ma_free(void *p) { free(p); }
import "C"
import "unsafe"

// Backend names the allocator selected at build time.
const Backend = "libc"

func backendMalloc(size uintptr) unsafe.Pointer {
	return C.ma_malloc(C.size_t(size))
}

func backendCalloc(count, elemSize uintptr) unsafe.Pointer {
	return C.ma_calloc(C.size_t(count), C.size_t(elemSize))
}

func backendRealloc(ptr unsafe.Pointer, size uintptr) unsafe.Pointer {
	return C.ma_realloc(ptr, C.size_t(size))
}

func backendFree(ptr unsafe.Pointer) {
	C.ma_free(ptr)
}
