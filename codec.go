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
	"encoding/binary"

	"github.com/cockroachdb/errors"
	"github.com/zuoyebang/mallocarray/internal/compress"
	"github.com/zuoyebang/mallocarray/internal/consts"
)

// Encode appends a self-describing frame holding a's raw bytes to dst:
//
//	magic(1) version(1) compression(1) uvarint(elemSize) uvarint(count) payload
func Encode[T any](dst []byte, a *Array[T], opts *EncodeOptions) []byte {
	a.check()
	opts = opts.EnsureDefaults()
	raw := a.Bytes()
	ct := opts.Compression
	if len(raw) < opts.CompressMinSize {
		ct = CompressionNone
	}

	dst = append(dst, consts.CodecMagic, consts.CodecVersion, byte(ct))
	dst = binary.AppendUvarint(dst, uint64(sizeOf[T]()))
	dst = binary.AppendUvarint(dst, uint64(a.n))
	if ct == CompressionNone {
		return append(dst, raw...)
	}
	return append(dst, compress.SetCompressor(ct).Encode(nil, raw)...)
}

type frameHeader struct {
	compression int
	elemSize    uint64
	count       uint64
	payload     []byte
}

func readFrameHeader(src []byte) (frameHeader, error) {
	var h frameHeader
	if len(src) < 3 || src[0] != consts.CodecMagic {
		return h, errors.Wrap(ErrCorrupt, "bad magic")
	}
	if src[1] != consts.CodecVersion {
		return h, errors.Wrapf(ErrCorrupt, "unknown version %d", src[1])
	}
	h.compression = int(src[2])
	if !compress.Valid(h.compression) {
		return h, errors.Wrapf(ErrCorrupt, "unknown compression %d", h.compression)
	}
	src = src[3:]
	var n int
	if h.elemSize, n = binary.Uvarint(src); n <= 0 {
		return h, errors.Wrap(ErrCorrupt, "bad element size")
	}
	src = src[n:]
	if h.count, n = binary.Uvarint(src); n <= 0 {
		return h, errors.Wrap(ErrCorrupt, "bad element count")
	}
	h.payload = src[n:]
	return h, nil
}

// Decode rebuilds an array from a frame written by Encode.
func Decode[T any](src []byte) (*Array[T], error) {
	checkType[T]()
	h, err := readFrameHeader(src)
	if err != nil {
		return nil, err
	}
	size := sizeOf[T]()
	if h.elemSize != uint64(size) {
		return nil, errors.Wrapf(ErrSizeMismatch, "element size %d, want %d", h.elemSize, size)
	}
	if h.count > uint64(maxInt) {
		return nil, errors.Wrapf(ErrCorrupt, "element count %d", h.count)
	}
	want, err := byteLen[T](int(h.count))
	if err != nil {
		return nil, err
	}

	payload := h.payload
	if h.compression != CompressionNone {
		payload, err = compress.SetCompressor(h.compression).DecodeLimit(h.payload, int(want))
		switch {
		case errors.Is(err, compress.ErrDecodedTooLarge):
			return nil, errors.Wrapf(ErrSizeMismatch, "payload: %v", err)
		case err != nil:
			return nil, errors.Wrapf(ErrCorrupt, "payload: %v", err)
		}
	}
	if uint64(len(payload)) != uint64(want) {
		return nil, errors.Wrapf(ErrSizeMismatch, "payload %d bytes, want %d", len(payload), want)
	}

	a, err := TryNewUninit[T](int(h.count))
	if err != nil {
		return nil, err
	}
	a.CopyFromBytes(payload)
	return a, nil
}

const maxInt = int(^uint(0) >> 1)
