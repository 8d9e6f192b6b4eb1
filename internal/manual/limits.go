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

const ptrSize = 4 << (^uintptr(0) >> 63)

// MaxArrayLen bounds the byte size of a single allocation: 1 PiB on 64-bit
// platforms, 2 GiB on 32-bit ones.
const MaxArrayLen uintptr = 1<<(31+19*(ptrSize/8)) - 1
