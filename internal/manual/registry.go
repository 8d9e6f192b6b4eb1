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
	"sync"
	"unsafe"

	"github.com/RoaringBitmap/roaring/roaring64"
	"github.com/zuoyebang/mallocarray/internal/invariants"
)

// registry records the addresses of live handles.
type registry struct {
	mu   sync.Mutex
	live *roaring64.Bitmap
}

func newRegistry() *registry {
	return &registry{live: roaring64.NewBitmap()}
}

// add returns false if ptr was already live.
func (r *registry) add(ptr unsafe.Pointer) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.live.CheckedAdd(uint64(uintptr(ptr)))
}

// remove returns false if ptr was not live.
func (r *registry) remove(ptr unsafe.Pointer) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.live.CheckedRemove(uint64(uintptr(ptr)))
}

func (r *registry) contains(ptr unsafe.Pointer) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.live.Contains(uint64(uintptr(ptr)))
}

func (r *registry) len() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.live.GetCardinality()
}

var liveHandles = newRegistry()

func track(ptr unsafe.Pointer) {
	if !invariants.Enabled {
		return
	}
	if !liveHandles.add(ptr) {
		throw("manual: backend returned a live handle")
	}
}

func untrack(ptr unsafe.Pointer) {
	if !invariants.Enabled {
		return
	}
	if !liveHandles.remove(ptr) {
		throw("manual: double free or foreign handle")
	}
}

// IsLive reports whether ptr is a live handle. It always returns true when
// invariants are disabled, since no registry is kept.
func IsLive(ptr unsafe.Pointer) bool {
	if !invariants.Enabled {
		return true
	}
	return liveHandles.contains(ptr)
}
