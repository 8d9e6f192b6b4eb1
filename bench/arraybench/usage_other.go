//go:build !unix
// +build !unix

package main

import (
	"time"

	"github.com/cockroachdb/errors"
)

type Usage struct{}

func (u *Usage) MemTotal() int64 { return 0 }

func (u *Usage) MemShr() int64 { return 0 }

func (u *Usage) CPUTotal() time.Duration { return 0 }

func GetUsage() (*Usage, error) {
	return nil, errors.New("usage not supported on this platform")
}
