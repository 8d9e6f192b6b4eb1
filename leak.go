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
	"runtime"
	"sync/atomic"

	"github.com/zuoyebang/mallocarray/internal/base"
	"github.com/zuoyebang/mallocarray/internal/humanize"
	"github.com/zuoyebang/mallocarray/internal/invariants"
)

var leaked atomic.Int64

// Leaked reports how many arrays were garbage collected while still owning
// memory. It only counts when built with the invariants or race tag.
func Leaked() int64 {
	return leaked.Load()
}

func trackLeak[T any](a *Array[T]) {
	if !invariants.Enabled {
		return
	}
	runtime.SetFinalizer(a, func(a *Array[T]) {
		if a.gone {
			return
		}
		leaked.Add(1)
		base.GetLogger().Warnf("%s leaked: %d elements (%s) never released",
			typeName[T](), a.n, humanize.Bytes(uint64(a.n)*uint64(sizeOf[T]())))
	})
}

func untrackLeak[T any](a *Array[T]) {
	if !invariants.Enabled {
		return
	}
	runtime.SetFinalizer(a, nil)
}
