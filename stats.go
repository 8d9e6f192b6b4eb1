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
	"github.com/cockroachdb/redact"
	"github.com/zuoyebang/mallocarray/internal/humanize"
	"github.com/zuoyebang/mallocarray/internal/manual"
)

// AllocatorStats describes the allocator backend and its counters.
type AllocatorStats struct {
	manual.Stats
	Backend       string
	ElideZeroSize bool
	Leaked        int64
}

func ReadAllocatorStats() AllocatorStats {
	return AllocatorStats{
		Stats:         manual.ReadStats(),
		Backend:       manual.Backend,
		ElideZeroSize: manual.ElideZeroSize,
		Leaked:        Leaked(),
	}
}

func (s AllocatorStats) String() string {
	return redact.StringWithoutMarkers(s)
}

func (s AllocatorStats) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("allocator %s: live %s acquires %s zeroed %s resizes %s releases %s failures %d",
		redact.Safe(s.Backend),
		humanize.Count(s.Live()),
		humanize.Count(int64(s.Acquires)),
		humanize.Count(int64(s.ZeroedAcquires)),
		humanize.Count(int64(s.Resizes)),
		humanize.Count(int64(s.Releases)),
		redact.Safe(s.Failures))
	if s.ElideZeroSize {
		w.SafeString(" elide-zero-size")
	}
	if s.Leaked > 0 {
		w.Printf(" leaked %d", redact.Safe(s.Leaked))
	}
}
