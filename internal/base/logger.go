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

package base

import (
	"fmt"
	"log"
	"os"
	"sync/atomic"
	"time"
)

const logTagFmt = "%s %s"

const libraryTag = "[mallocarray]"

// Logger is the sink for diagnostics. Leak reports use Warnf; the bench
// uses the rest.
type Logger interface {
	Info(args ...interface{})
	Cost(arg ...interface{}) func()
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
}

// NewLogger prefixes every message with tag. A nil logger writes through
// the standard log package.
func NewLogger(logger Logger, tag string) Logger {
	if logger == nil {
		return defaultLogger{tag: tag}
	}
	return customLogger{clog: logger, tag: tag}
}

type customLogger struct {
	clog Logger
	tag  string
}

func (l customLogger) Info(args ...interface{}) {
	l.clog.Info(l.tag, " ", fmt.Sprint(args...))
}

func (l customLogger) Infof(format string, args ...interface{}) {
	l.clog.Infof(logTagFmt, l.tag, fmt.Sprintf(format, args...))
}

func (l customLogger) Warnf(format string, args ...interface{}) {
	l.clog.Warnf(logTagFmt, l.tag, fmt.Sprintf(format, args...))
}

func (l customLogger) Fatalf(format string, args ...interface{}) {
	l.clog.Fatalf(logTagFmt, l.tag, fmt.Sprintf(format, args...))
}

func (l customLogger) Cost(args ...interface{}) func() {
	return l.clog.Cost(l.tag, " ", fmt.Sprint(args...))
}

type defaultLogger struct {
	tag string
}

var DefaultLogger Logger = defaultLogger{tag: libraryTag}

func (l defaultLogger) output(level, msg string) {
	_ = log.Output(3, fmt.Sprint(l.tag, " ", level, " ", msg))
}

func (l defaultLogger) Info(args ...interface{}) {
	l.output("INFO", fmt.Sprint(args...))
}

func (l defaultLogger) Infof(format string, args ...interface{}) {
	l.output("INFO", fmt.Sprintf(format, args...))
}

func (l defaultLogger) Warnf(format string, args ...interface{}) {
	l.output("WARN", fmt.Sprintf(format, args...))
}

func (l defaultLogger) Fatalf(format string, args ...interface{}) {
	l.output("FATAL", fmt.Sprintf(format, args...))
	os.Exit(1)
}

func (l defaultLogger) Cost(args ...interface{}) func() {
	begin := time.Now()
	msg := fmt.Sprint(args...)
	return func() {
		l.output("INFO", fmt.Sprint(msg, " ", FmtDuration(time.Since(begin))))
	}
}

type loggerHolder struct {
	l Logger
}

var current atomic.Value

func init() {
	current.Store(loggerHolder{l: DefaultLogger})
}

// SetLogger routes package-wide diagnostics such as leak reports to l,
// tagged with the library name. A nil logger restores DefaultLogger.
func SetLogger(l Logger) {
	if l == nil {
		current.Store(loggerHolder{l: DefaultLogger})
		return
	}
	current.Store(loggerHolder{l: NewLogger(l, libraryTag)})
}

func GetLogger() Logger {
	return current.Load().(loggerHolder).l
}

func FmtDuration(d time.Duration) string {
	if d > time.Second {
		return fmt.Sprintf("cost:%d.%03ds", d/time.Second, d/time.Millisecond%1000)
	}
	if d > time.Millisecond {
		return fmt.Sprintf("cost:%d.%03dms", d/time.Millisecond, d/time.Microsecond%1000)
	}
	if d > time.Microsecond {
		return fmt.Sprintf("cost:%d.%03dus", d/time.Microsecond, d%1000)
	}
	return fmt.Sprintf("cost:%dns", d)
}
