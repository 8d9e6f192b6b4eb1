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

package fastrand

import (
	"encoding/binary"
	_ "unsafe" // required by go:linkname
)

// Uint32 returns a lock free uint32 value.
//
//go:linkname Uint32 runtime.fastrand
func Uint32() uint32

// Uint32n returns a lock free uint32 value in the interval [0, n).
//
//go:linkname Uint32n runtime.fastrandn
func Uint32n(n uint32) uint32

// Intn returns a value in [0, n). n must fit in a uint32.
func Intn(n int) int {
	return int(Uint32n(uint32(n)))
}

// Fill overwrites b with random bytes.
func Fill(b []byte) {
	for len(b) >= 4 {
		binary.LittleEndian.PutUint32(b, Uint32())
		b = b[4:]
	}
	if len(b) > 0 {
		v := Uint32()
		for i := range b {
			b[i] = byte(v >> (8 * i))
		}
	}
}
