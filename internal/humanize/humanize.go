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
	"fmt"
	"math"
	"time"

	"github.com/cockroachdb/redact"
)

type scale struct {
	base     float64
	suffixes []string
}

var (
	iec = scale{1024, []string{" B", " KiB", " MiB", " GiB", " TiB", " PiB", " EiB"}}
	si  = scale{1000, []string{"", " K", " M", " G", " T", " P", " E"}}
)

func (c scale) format(s uint64) string {
	if s < 10 {
		return fmt.Sprintf("%d%s", s, c.suffixes[0])
	}
	e := math.Floor(math.Log(float64(s)) / math.Log(c.base))
	if int(e) >= len(c.suffixes) {
		e = float64(len(c.suffixes) - 1)
	}
	val := math.Floor(float64(s)/math.Pow(c.base, e)*10+0.5) / 10
	f := "%.0f%s"
	if val < 10 {
		f = "%.1f%s"
	}
	return fmt.Sprintf(f, val, c.suffixes[int(e)])
}

func (c scale) signed(s int64) FormattedString {
	if s < 0 {
		return FormattedString("-" + c.format(uint64(-s)))
	}
	return FormattedString(c.format(uint64(s)))
}

// Bytes formats a byte count with binary prefixes.
func Bytes(n uint64) FormattedString {
	return FormattedString(iec.format(n))
}

// Count formats a quantity with decimal prefixes.
func Count(n int64) FormattedString {
	return si.signed(n)
}

// Rate formats n operations over d as a per-second figure.
func Rate(n int64, d time.Duration) FormattedString {
	if d <= 0 {
		return "inf/s"
	}
	per := float64(n) / d.Seconds()
	return FormattedString(si.format(uint64(per+0.5)) + "/s")
}

type FormattedString string

var _ redact.SafeValue = FormattedString("")

func (fs FormattedString) SafeValue() {}

func (fs FormattedString) String() string { return string(fs) }
