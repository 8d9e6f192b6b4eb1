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

package rawmem

import (
	"fmt"
	"unsafe"
)

// Pun returns the leading sizeof(U) bytes of v as a U. It panics if U is
// larger than T.
func Pun[U, T any](v T) U {
	var u U
	if unsafe.Sizeof(u) > unsafe.Sizeof(v) {
		panic(fmt.Sprintf("rawmem: pun expected at most %d bytes, got %d", unsafe.Sizeof(v), unsafe.Sizeof(u)))
	}
	return *(*U)(unsafe.Pointer(&v))
}
