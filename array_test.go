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
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"github.com/zuoyebang/mallocarray/internal/layout"
)

func TestNewZeroed(t *testing.T) {
	requireNoLeak(t, func() {
		a := NewZeroed[uint64](100)
		require.Equal(t, 100, a.Len())
		require.Equal(t, 800, a.LenBytes())
		require.False(t, a.IsEmpty())
		for _, v := range a.Slice() {
			require.Equal(t, uint64(0), v)
		}
		a.Release()
		require.True(t, a.Consumed())
		require.Equal(t, 0, a.Len())
	})
}

func TestSliceRoundTrip(t *testing.T) {
	requireNoLeak(t, func() {
		src := []int32{5, -1, 7, 9, 0}
		a := FromSlice(src)
		require.Equal(t, src, a.Slice())
		require.True(t, EqualSlice(a, src))

		out := a.IntoSlice()
		require.Equal(t, src, out)
		require.True(t, a.Consumed())
	})
}

func TestGetSetBounds(t *testing.T) {
	a := NewZeroed[uint16](4)
	defer a.Release()

	require.NoError(t, a.Set(3, 42))
	v, err := a.Get(3)
	require.NoError(t, err)
	require.Equal(t, uint16(42), v)
	require.Equal(t, uint16(42), *a.At(3))

	_, err = a.Get(4)
	require.True(t, errors.Is(err, ErrBoundsViolation))
	err = a.Set(-1, 1)
	require.True(t, errors.Is(err, ErrBoundsViolation))

	require.Panics(t, func() { a.At(4) })
	require.Panics(t, func() { a.ReplaceAt(-1, 0) })
}

func TestNegativeLength(t *testing.T) {
	_, err := TryNewZeroed[int](-1)
	require.True(t, errors.Is(err, ErrBoundsViolation))
	_, err = TryNewUninit[int](-5)
	require.True(t, errors.Is(err, ErrBoundsViolation))
}

func TestAllocationOverflow(t *testing.T) {
	requireNoLeak(t, func() {
		_, err := TryNewZeroed[[1 << 20]byte](1 << 40)
		require.True(t, errors.Is(err, ErrAllocationFailed))
		_, err = TryNewUninit[uint64](int(^uint(0) >> 2))
		require.True(t, errors.Is(err, ErrAllocationFailed))
	})
}

func TestConsumedPanics(t *testing.T) {
	a := NewZeroed[uint32](3)
	a.Free()

	require.Equal(t, 0, a.Len())
	require.True(t, a.Consumed())
	for name, fn := range map[string]func(){
		"Slice":  func() { a.Slice() },
		"At":     func() { a.At(0) },
		"Get":    func() { _, _ = a.Get(0) },
		"Bytes":  func() { a.Bytes() },
		"Clone":  func() { a.Clone() },
		"Hash":   func() { a.Hash() },
		"Resize": func() { a.Resize(1) },
	} {
		require.PanicsWithError(t, errors.Wrapf(ErrConsumed, "%s", typeName[uint32]()).Error(), fn, name)
	}

	// Second release or free is a no-op.
	a.Release()
	a.Free()
}

func TestZeroLength(t *testing.T) {
	requireNoLeak(t, func() {
		a := NewZeroed[uint64](0)
		require.True(t, a.IsEmpty())
		require.Len(t, a.Slice(), 0)
		require.Len(t, a.Bytes(), 0)
		require.Equal(t, "mallocarray.Array[uint64]: ()", a.String())
		a.SetMemory(0xff)
		a.Release()

		z := NewFilled(struct{}{}, 1000)
		require.Equal(t, 1000, z.Len())
		require.Equal(t, 0, z.LenBytes())
		require.Len(t, z.Slice(), 1000)
		z.Release()
	})
}

func TestNewFilled(t *testing.T) {
	a := NewFilled[uint32](4, 5)
	defer a.Release()
	require.Equal(t, []uint32{4, 4, 4, 4, 4}, a.Slice())

	b := NewFilled[int8](-3, 7)
	defer b.Release()
	require.Equal(t, []int8{-3, -3, -3, -3, -3, -3, -3}, b.Slice())

	before := clonedCount.Load()
	c := NewFilled(cloned{gen: 1}, 3)
	defer c.Release()
	require.Equal(t, []cloned{{2}, {2}, {2}}, c.Slice())
	require.Equal(t, before+3, clonedCount.Load())
}

func TestNewFromPattern(t *testing.T) {
	a := NewFromPattern([]uint8{1, 2, 3}, 7)
	defer a.Release()
	require.Equal(t, []uint8{1, 2, 3, 1, 2, 3, 1}, a.Slice())

	b := NewFromPattern([]uint16{9}, 3)
	defer b.Release()
	require.Equal(t, []uint16{9, 9, 9}, b.Slice())

	e := NewFromPattern([]uint16(nil), 0)
	require.Equal(t, 0, e.Len())
	e.Release()

	require.Panics(t, func() { NewFromPattern([]uint16{}, 2) })
}

func TestFromBytes(t *testing.T) {
	a, err := FromBytes[int16]([]byte{0xff, 0xff, 0, 0})
	require.NoError(t, err)
	defer a.Release()
	require.Equal(t, []int16{-1, 0}, a.Slice())

	w, err := FromBytes[int32]([]byte{0xff, 0xff, 0xff, 0xff, 0, 0, 0, 0})
	require.NoError(t, err)
	defer w.Release()
	require.Equal(t, []int32{-1, 0}, w.Slice())

	_, err = FromBytes[int32]([]byte{0xff, 0xff, 0xff, 0xff, 0})
	require.True(t, errors.Is(err, ErrSizeMismatch))
	_, err = FromBytes[int16]([]byte{1, 2, 3})
	require.True(t, errors.Is(err, ErrSizeMismatch))
	_, err = FromBytes[struct{}]([]byte{1})
	require.True(t, errors.Is(err, ErrSizeMismatch))
}

func TestReinterpret(t *testing.T) {
	requireNoLeak(t, func() {
		a := FromSlice([]uint32{0x01020304, 0x05060708})
		b, err := Reinterpret[uint8](a)
		require.NoError(t, err)
		require.True(t, a.Consumed())
		require.Equal(t, 8, b.Len())
		require.Equal(t, []uint8{4, 3, 2, 1, 8, 7, 6, 5}, b.Slice())

		c := MustReinterpret[uint32](b)
		require.Equal(t, []uint32{0x01020304, 0x05060708}, c.Slice())

		_, err = Reinterpret[[3]byte](c)
		require.True(t, errors.Is(err, ErrSizeMismatch))
		require.False(t, c.Consumed())

		_, err = Reinterpret[struct{}](c)
		require.True(t, errors.Is(err, ErrSizeMismatch))

		v, err := View[uint16](c)
		require.NoError(t, err)
		require.Equal(t, []uint16{0x0304, 0x0102, 0x0708, 0x0506}, v)
		v[0] = 0
		require.Equal(t, uint32(0x01020000), c.Slice()[0])

		require.Panics(t, func() { MustReinterpret[[3]byte](c) })
		c.Release()
	})
}

func TestResizeArray(t *testing.T) {
	requireNoLeak(t, func() {
		a := FromSlice([]uint64{1, 2, 3})
		b := a.Resize(5)
		require.True(t, a.Consumed())
		require.Equal(t, 5, b.Len())
		require.Equal(t, []uint64{1, 2, 3}, b.Slice()[:3])

		c := b.Resize(2)
		require.Equal(t, []uint64{1, 2}, c.Slice())

		d := c.Resize(0)
		require.Equal(t, 0, d.Len())
		d.Release()
	})
}

func TestResizeReleasesTail(t *testing.T) {
	resetReleased()
	a := FromSlice([]tracked{{1}, {2}, {3}, {4}})
	require.True(t, a.ReleaseElements)
	b := a.Resize(1)
	require.Equal(t, int64(3), releasedCount.Load())
	require.Equal(t, []tracked{{1}}, b.Slice())
	b.Release()
	require.Equal(t, int64(4), releasedCount.Load())
}

func TestReleaseElements(t *testing.T) {
	resetReleased()
	a := FromSlice([]tracked{{1}, {2}, {3}})
	require.NoError(t, a.Set(0, tracked{10}))
	require.Equal(t, int64(1), releasedCount.Load())
	a.ReplaceAt(1, tracked{11})
	require.Equal(t, int64(1), releasedCount.Load())
	a.Release()
	require.Equal(t, int64(4), releasedCount.Load())

	resetReleased()
	b := FromSlice([]tracked{{1}, {2}})
	b.ReleaseElements = false
	require.NoError(t, b.Set(0, tracked{3}))
	b.Release()
	require.Equal(t, int64(0), releasedCount.Load())

	c := FromSlice([]tracked{{1}})
	c.Free()
	require.Equal(t, int64(0), releasedCount.Load())
}

func TestMoveInto(t *testing.T) {
	requireNoLeak(t, func() {
		a := FromSlice([]int{1, 2, 3})
		short := make([]int, 2)
		err := a.MoveInto(short)
		require.True(t, errors.Is(err, ErrBoundsViolation))
		require.False(t, a.Consumed())

		dst := make([]int, 4)
		require.NoError(t, a.MoveInto(dst))
		require.Equal(t, []int{1, 2, 3, 0}, dst)
		require.True(t, a.Consumed())
	})
}

func TestRawParts(t *testing.T) {
	requireNoLeak(t, func() {
		a := FromSlice([]float64{1.5, 2.5})
		ptr, n := a.IntoRawParts()
		require.True(t, a.Consumed())

		copied := FromRawCopied[float64](ptr, n)
		b := FromRawParts[float64](ptr, n)
		require.True(t, Equal(b, copied))
		b.Release()
		copied.Release()

		c := FromSlice([]float64{3})
		ptr, _ = c.IntoRawParts()
		FreeRaw(ptr)
	})
}

func TestLeak(t *testing.T) {
	before := ReadAllocatorStats().Live()
	a := FromSlice([]uint8{1, 2})
	s := a.Leak()
	require.Equal(t, []uint8{1, 2}, s)
	require.True(t, a.Consumed())
	a.Release()
	require.Equal(t, before+1, ReadAllocatorStats().Live())
}

func TestCopyAndSetMemory(t *testing.T) {
	a := NewZeroed[uint16](3)
	defer a.Release()

	require.Equal(t, 2, a.CopyFrom([]uint16{7, 8}))
	require.Equal(t, []uint16{7, 8, 0}, a.Slice())
	require.Equal(t, 6, a.CopyFromBytes([]byte{1, 0, 2, 0, 3, 0, 4, 0}))
	require.Equal(t, []uint16{1, 2, 3}, a.Slice())

	a.SetMemory(0xff)
	require.Equal(t, []uint16{0xffff, 0xffff, 0xffff}, a.Slice())
	require.NotNil(t, a.Ptr())
}

func TestEqualHashClone(t *testing.T) {
	requireNoLeak(t, func() {
		a := FromSlice([]uint32{1, 2, 3})
		b := FromSlice([]uint32{1, 2, 3})
		c := FromSlice([]uint32{1, 2})
		require.True(t, Equal(a, b))
		require.False(t, Equal(a, c))
		require.Equal(t, a.Hash(), b.Hash())
		require.NotEqual(t, a.Hash(), c.Hash())

		e1, e2 := NewZeroed[uint8](0), NewZeroed[uint16](0)
		require.Equal(t, e1.Hash(), e2.Hash())

		d := a.Clone()
		require.True(t, Equal(a, d))
		d.Slice()[0] = 9
		require.False(t, Equal(a, d))

		m := a.CloneMem()
		require.True(t, Equal(a, m))

		for _, arr := range []*Array[uint32]{a, b, c, d, m} {
			arr.Release()
		}
		e1.Release()
		e2.Release()
	})
}

func TestCloneUsesCloner(t *testing.T) {
	a := FromSlice([]cloned{{1}, {5}})
	defer a.Release()
	before := clonedCount.Load()
	b := a.Clone()
	defer b.Release()
	require.Equal(t, []cloned{{2}, {6}}, b.Slice())
	require.Equal(t, before+2, clonedCount.Load())

	m := a.CloneMem()
	defer m.Release()
	require.Equal(t, []cloned{{1}, {5}}, m.Slice())
}

func TestHashPaddedPanics(t *testing.T) {
	require.True(t, layout.Padded[padded]())
	a := NewZeroed[padded](2)
	defer a.Release()
	require.Panics(t, func() { a.Hash() })
}

func TestNotPlainData(t *testing.T) {
	require.Panics(t, func() { NewZeroed[*int](1) })
	require.Panics(t, func() { NewZeroed[string](1) })
	require.Panics(t, func() { NewZeroed[struct{ s []byte }](1) })
}

func TestString(t *testing.T) {
	a := FromSlice([]int{1, 2, 3})
	require.Equal(t, "mallocarray.Array[int]: (1 2 3)", a.String())
	a.Release()
	require.Equal(t, "mallocarray.Array[int]: <consumed>", a.String())
}
