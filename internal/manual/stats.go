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

import "sync/atomic"

var stats struct {
	acquires       atomic.Uint64
	zeroedAcquires atomic.Uint64
	resizes        atomic.Uint64
	releases       atomic.Uint64
	failures       atomic.Uint64
}

// Stats is a point-in-time copy of the adapter counters. Elided zero-size
// requests are not counted.
type Stats struct {
	Acquires       uint64
	ZeroedAcquires uint64
	Resizes        uint64
	Releases       uint64
	Failures       uint64
}

// Live is the number of handles acquired and not yet released.
func (s Stats) Live() int64 {
	return int64(s.Acquires+s.ZeroedAcquires) - int64(s.Releases)
}

func ReadStats() Stats {
	return Stats{
		Acquires:       stats.acquires.Load(),
		ZeroedAcquires: stats.zeroedAcquires.Load(),
		Resizes:        stats.resizes.Load(),
		Releases:       stats.releases.Load(),
		Failures:       stats.failures.Load(),
	}
}
