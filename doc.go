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

// Package mallocarray provides arrays whose backing memory comes from a C
// style allocator instead of the Go heap.
//
// An Array owns exactly one allocation and frees it exactly once: through
// Release (which first calls Release on every element whose pointer type
// implements Releaser, when ReleaseElements is set), through Free, or by
// handing the allocation to something else (IntoIter, Reinterpret, Resize,
// IntoSlice, ...). After a hand-off the source array is marked consumed;
// using it panics and releasing it again is a no-op.
//
// The garbage collector never scans this memory, so element types must be
// plain data: no pointers, slices, strings, maps, channels, functions or
// interfaces. Constructors panic when given such a type.
//
// Memory from NewUninit is unspecified until written. Initialise returns a
// cursor that tracks which slots have been set:
//
//	a := mallocarray.NewUninit[record](n)
//	it := a.Initialise()
//	for slot, ok := it.Next(); ok; slot, ok = it.Next() {
//		slot.Put(makeRecord(slot.Index()))
//	}
//
// The allocator backend and the zero-size policy are chosen at build time:
// the default backend is libc malloc through cgo, the mmapalloc tag (or a
// build without cgo) selects anonymous mmap pages, and the zst_noalloc tag
// stops zero-byte requests from reaching the backend.
package mallocarray
