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

package layout

import (
	"testing"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

type plainPair[T any, U any] struct {
	Public  T
	private U
}

func TestCheckPlainData(t *testing.T) {
	require.NoError(t, CheckPlainData[int]())
	require.NoError(t, CheckPlainData[[3]bool]())
	require.NoError(t, CheckPlainData[[3][3]float64]())
	require.NoError(t, CheckPlainData[plainPair[int, uint8]]())
	require.NoError(t, CheckPlainData[struct{}]())

	err := CheckPlainData[string]()
	require.True(t, errors.Is(err, ErrNotPlainData))
	require.Contains(t, err.Error(), "type string contains pointers")

	err = CheckPlainData[[3]chan int]()
	require.Contains(t, err.Error(), "array element type chan int contains pointers")

	err = CheckPlainData[plainPair[int, *int]]()
	require.Contains(t, err.Error(), `field "private": type *int contains pointers`)

	require.Error(t, CheckPlainData[[]byte]())
	require.Error(t, CheckPlainData[unsafe.Pointer]())
	require.Error(t, CheckPlainData[interface{}]())
}

func TestPadded(t *testing.T) {
	require.False(t, Padded[uint64]())
	require.False(t, Padded[[4]uint16]())
	require.False(t, Padded[plainPair[uint32, uint32]]())
	require.True(t, Padded[plainPair[uint8, uint32]]())
	require.True(t, Padded[plainPair[uint64, uint8]]())
	require.True(t, Padded[[2]plainPair[uint8, uint16]]())
	require.False(t, Padded[[0]plainPair[uint8, uint16]]())
}
