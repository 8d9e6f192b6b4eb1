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

	"github.com/zuoyebang/mallocarray/internal/manual"
	"github.com/zuoyebang/mallocarray/internal/rawmem"
)

// TryNewValue allocates a single T outside the Go heap and stores v in it.
func TryNewValue[T any](v T) (*T, error) {
	checkType[T]()
	ptr, err := manual.Acquire(sizeOf[T]())
	if err != nil {
		return nil, err
	}
	if ptr == rawmem.Null {
		ptr = unsafe.Pointer(&zeroBase)
	}
	p := (*T)(ptr)
	rawmem.Put(p, v)
	return p, nil
}

func NewValue[T any](v T) *T {
	p, err := TryNewValue(v)
	if err != nil {
		throwIfOOM(err)
	}
	return p
}

// DeleteValue releases *p when *T implements Releaser and frees it.
func DeleteValue[T any](p *T) {
	releaseAt(p)
	FreeValue(p)
}

// FreeValue frees p without releasing it.
func FreeValue[T any](p *T) {
	FreeRaw(unsafe.Pointer(p))
}

// FreeRaw frees a handle obtained from IntoRawParts or IntoHandles.
func FreeRaw(ptr unsafe.Pointer) {
	if ptr == unsafe.Pointer(&zeroBase) {
		return
	}
	manual.Release(ptr)
}
