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

package consts

const (
	CodecMagic   byte = 0xa7
	CodecVersion byte = 1
)

const (
	// Payloads shorter than this are framed uncompressed.
	DefaultCompressMinSize int = 64
	DefaultZstdLevel       int = 3
)

// MaxDecodedSize bounds any single in-memory zstd decode.
const MaxDecodedSize uint64 = 1 << 40

const (
	DefaultBenchGoNum  int   = 8
	DefaultBenchCount  int   = 1 << 10
	DefaultBenchLoop   int   = 1 << 10
	BenchMaxLatencyNs  int64 = 10 * 1000 * 1000 * 1000
	BenchLatencySigFig int   = 3
)
