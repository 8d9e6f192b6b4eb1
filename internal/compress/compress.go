// Copyright 2019-2024 Xu Ruibo (hustxurb@163.com) and Contributors
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

package compress

import (
	"github.com/cockroachdb/errors"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/zuoyebang/mallocarray/internal/consts"
)

const (
	CompressTypeNo int = 0 + iota
	CompressTypeSnappy
	CompressTypeZstd
)

var ErrDecodedTooLarge = errors.New("compress: decoded size exceeds limit")

type Compressor interface {
	Encode(dst, src []byte) []byte
	Decode(dst, src []byte) ([]byte, error)
	// DecodeLimit decodes src into a new buffer, failing with
	// ErrDecodedTooLarge before allocating when the output would exceed
	// limit bytes.
	DecodeLimit(src []byte, limit int) ([]byte, error)
	Type() int
}

func tooLarge(n uint64, limit int) error {
	return errors.Wrapf(ErrDecodedTooLarge, "%d bytes, limit %d", n, limit)
}

var (
	NoCompressor     noCompressor
	SnappyCompressor snappyCompressor
	ZstdCompressor   = newZstdCompressor(consts.DefaultZstdLevel)
)

func Valid(t int) bool {
	return t >= CompressTypeNo && t <= CompressTypeZstd
}

func SetCompressor(t int) Compressor {
	switch t {
	case CompressTypeSnappy:
		return SnappyCompressor
	case CompressTypeZstd:
		return ZstdCompressor
	default:
		return NoCompressor
	}
}

type noCompressor struct{}

func (c noCompressor) Encode(dst, src []byte) []byte {
	return append(dst[:0], src...)
}

func (c noCompressor) Decode(dst, src []byte) ([]byte, error) {
	return append(dst[:0], src...), nil
}

func (c noCompressor) DecodeLimit(src []byte, limit int) ([]byte, error) {
	if len(src) > limit {
		return nil, tooLarge(uint64(len(src)), limit)
	}
	return append([]byte(nil), src...), nil
}

func (c noCompressor) Type() int {
	return CompressTypeNo
}

type snappyCompressor struct{}

func (sc snappyCompressor) Encode(dst, src []byte) []byte {
	return snappy.Encode(dst, src)
}

func (sc snappyCompressor) Decode(dst, src []byte) ([]byte, error) {
	return snappy.Decode(dst, src)
}

func (sc snappyCompressor) DecodeLimit(src []byte, limit int) ([]byte, error) {
	n, err := snappy.DecodedLen(src)
	if err != nil {
		return nil, err
	}
	if n > limit {
		return nil, tooLarge(uint64(n), limit)
	}
	return snappy.Decode(make([]byte, n), src)
}

func (sc snappyCompressor) Type() int {
	return CompressTypeSnappy
}

// zstdCompressor shares one encoder and two decoders. EncodeAll and
// DecodeAll are safe for concurrent use.
type zstdCompressor struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
	// limited never decodes past cap(dst).
	limited *zstd.Decoder
}

func newZstdCompressor(level int) *zstdCompressor {
	enc, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)),
		zstd.WithEncoderConcurrency(1))
	if err != nil {
		panic(err)
	}
	dec, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(consts.MaxDecodedSize))
	if err != nil {
		panic(err)
	}
	limited, err := zstd.NewReader(nil,
		zstd.WithDecoderMaxMemory(consts.MaxDecodedSize),
		zstd.WithDecodeAllCapLimit(true))
	if err != nil {
		panic(err)
	}
	return &zstdCompressor{enc: enc, dec: dec, limited: limited}
}

func (zc *zstdCompressor) Encode(dst, src []byte) []byte {
	return zc.enc.EncodeAll(src, dst[:0])
}

func (zc *zstdCompressor) Decode(dst, src []byte) ([]byte, error) {
	return zc.dec.DecodeAll(src, dst[:0])
}

func (zc *zstdCompressor) DecodeLimit(src []byte, limit int) ([]byte, error) {
	var h zstd.Header
	if err := h.Decode(src); err != nil {
		return nil, err
	}
	if h.HasFCS && h.FrameContentSize > uint64(limit) {
		return nil, tooLarge(h.FrameContentSize, limit)
	}

	out, err := zc.limited.DecodeAll(src, make([]byte, 0, limit))
	switch {
	case errors.Is(err, zstd.ErrDecoderSizeExceeded):
		return nil, errors.Wrapf(ErrDecodedTooLarge, "limit %d", limit)
	case err != nil:
		return nil, err
	}
	return out, nil
}

func (zc *zstdCompressor) Type() int {
	return CompressTypeZstd
}
