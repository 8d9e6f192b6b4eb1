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
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zuoyebang/mallocarray/internal/manual"
)

var releasedCount atomic.Int64

// tracked counts its releases in releasedCount.
type tracked struct {
	id int64
}

func (t *tracked) Release() {
	releasedCount.Add(1)
	t.id = -1
}

var clonedCount atomic.Int64

type cloned struct {
	gen int64
}

func (c *cloned) Clone() cloned {
	clonedCount.Add(1)
	return cloned{gen: c.gen + 1}
}

type padded struct {
	a uint8
	b uint32
}

// requireNoLeak fails the test if fn leaves allocator handles live.
func requireNoLeak(t *testing.T, fn func()) {
	t.Helper()
	before := manual.ReadStats().Live()
	fn()
	require.Equal(t, before, manual.ReadStats().Live())
}

func resetReleased() {
	releasedCount.Store(0)
}
