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

package humanize

import (
	"testing"
	"time"

	"github.com/cockroachdb/redact"
	"github.com/stretchr/testify/require"
)

func TestBytes(t *testing.T) {
	require.Equal(t, "0 B", Bytes(0).String())
	require.Equal(t, "9 B", Bytes(9).String())
	require.Equal(t, "1.0 KiB", Bytes(1024).String())
	require.Equal(t, "1.5 MiB", Bytes(3<<19).String())
	require.Equal(t, "16 GiB", Bytes(16<<30).String())
}

func TestCount(t *testing.T) {
	require.Equal(t, "7", Count(7).String())
	require.Equal(t, "-7", Count(-7).String())
	require.Equal(t, "12 K", Count(12000).String())
	require.Equal(t, "1.2 M", Count(1234567).String())
}

func TestRate(t *testing.T) {
	require.Equal(t, "2.0 K/s", Rate(1000, 500*time.Millisecond).String())
	require.Equal(t, "inf/s", Rate(1, 0).String())
}

func TestSafe(t *testing.T) {
	s := redact.Sprintf("%s", Bytes(2048))
	require.Equal(t, "2.0 KiB", string(s))
}
