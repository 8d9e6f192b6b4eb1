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
	"github.com/cockroachdb/errors"
	"github.com/zuoyebang/mallocarray/internal/manual"
)

var (
	ErrAllocationFailed = manual.ErrAllocationFailed
	ErrSizeMismatch     = errors.New("mallocarray: size mismatch")
	ErrBoundsViolation  = errors.New("mallocarray: index out of range")
	ErrConsumed         = errors.New("mallocarray: array used after release or move")
	ErrCorrupt          = errors.New("mallocarray: corrupt encoding")
)

// throwIfOOM ends the process on allocation failure and panics on any other
// error. It backs the non-Try constructors.
func throwIfOOM(err error) {
	if errors.Is(err, ErrAllocationFailed) {
		manual.Throw("mallocarray: out of memory: " + err.Error())
	}
	panic(err)
}

func boundsError(index, length int) error {
	return errors.Wrapf(ErrBoundsViolation, "index %d, length %d", index, length)
}
