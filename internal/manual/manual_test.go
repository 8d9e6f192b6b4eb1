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
	"testing"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestAcquireRelease(t *testing.T) {
	before := ReadStats()

	ptr, err := Acquire(100)
	require.NoError(t, err)
	require.NotNil(t, ptr)
	require.True(t, IsLive(ptr))

	b := unsafe.Slice((*byte)(ptr), 100)
	for i := range b {
		b[i] = byte(i)
	}
	require.Equal(t, byte(99), b[99])

	Release(ptr)
	after := ReadStats()
	require.Equal(t, before.Acquires+1, after.Acquires)
	require.Equal(t, before.Releases+1, after.Releases)
	require.Equal(t, before.Live(), after.Live())

	Release(Null)
	require.Equal(t, after, ReadStats())
}

func TestAcquireZeroed(t *testing.T) {
	ptr, err := AcquireZeroed(64, 8)
	require.NoError(t, err)
	defer Release(ptr)

	for _, v := range unsafe.Slice((*uint64)(ptr), 64) {
		require.Equal(t, uint64(0), v)
	}
}

func TestAcquireOverflow(t *testing.T) {
	before := ReadStats()

	_, err := AcquireZeroed(MaxArrayLen, 16)
	require.True(t, errors.Is(err, ErrAllocationFailed))

	_, err = Acquire(MaxArrayLen + 1)
	require.True(t, errors.Is(err, ErrAllocationFailed))

	after := ReadStats()
	require.Equal(t, before.Failures+2, after.Failures)
	require.Equal(t, before.Live(), after.Live())
}

func TestResize(t *testing.T) {
	ptr, err := Resize(Null, 16)
	require.NoError(t, err)
	require.NotNil(t, ptr)

	b := unsafe.Slice((*byte)(ptr), 16)
	for i := range b {
		b[i] = byte(i + 1)
	}

	ptr, err = Resize(ptr, 1<<20)
	require.NoError(t, err)
	b = unsafe.Slice((*byte)(ptr), 1<<20)
	for i := 0; i < 16; i++ {
		require.Equal(t, byte(i+1), b[i])
	}

	ptr, err = Resize(ptr, 8)
	require.NoError(t, err)
	b = unsafe.Slice((*byte)(ptr), 8)
	require.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, b)

	_, err = Resize(ptr, MaxArrayLen+1)
	require.True(t, errors.Is(err, ErrAllocationFailed))
	require.True(t, IsLive(ptr))

	Release(ptr)
}

func TestZeroSize(t *testing.T) {
	before := ReadStats()

	ptr, err := Acquire(0)
	require.NoError(t, err)
	if ElideZeroSize {
		require.Equal(t, Null, ptr)
	}
	Release(ptr)

	ptr, err = AcquireZeroed(10, 0)
	require.NoError(t, err)
	if ElideZeroSize {
		require.Equal(t, Null, ptr)
	}
	Release(ptr)

	ptr, err = Acquire(32)
	require.NoError(t, err)
	ptr, err = Resize(ptr, 0)
	require.NoError(t, err)
	if ElideZeroSize {
		require.Equal(t, Null, ptr)
	}
	Release(ptr)

	require.Equal(t, before.Live(), ReadStats().Live())
}

func TestRegistry(t *testing.T) {
	r := newRegistry()
	buf := make([]uint64, 2)
	p0 := unsafe.Pointer(&buf[0])
	p1 := unsafe.Pointer(&buf[1])

	require.True(t, r.add(p0))
	require.False(t, r.add(p0))
	require.True(t, r.add(p1))
	require.Equal(t, uint64(2), r.len())
	require.True(t, r.contains(p1))

	require.True(t, r.remove(p0))
	require.False(t, r.remove(p0))
	require.False(t, r.contains(p0))
	require.Equal(t, uint64(1), r.len())
}

func TestBackendName(t *testing.T) {
	require.Contains(t, []string{"libc", "mmap"}, Backend)
}
