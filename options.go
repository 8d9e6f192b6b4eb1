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
	"github.com/zuoyebang/mallocarray/internal/compress"
	"github.com/zuoyebang/mallocarray/internal/consts"
)

const (
	CompressionNone   = compress.CompressTypeNo
	CompressionSnappy = compress.CompressTypeSnappy
	CompressionZstd   = compress.CompressTypeZstd
)

type EncodeOptions struct {
	// Compression selects the payload codec. Zero means none.
	Compression int
	// CompressMinSize is the payload length below which compression is
	// skipped.
	CompressMinSize int
}

func (o *EncodeOptions) EnsureDefaults() *EncodeOptions {
	if o == nil {
		o = &EncodeOptions{}
	}
	if !compress.Valid(o.Compression) {
		o.Compression = CompressionNone
	}
	if o.CompressMinSize <= 0 {
		o.CompressMinSize = consts.DefaultCompressMinSize
	}
	return o
}
