//go:build !linux && unix
// +build !linux,unix

package main

import (
	"time"

	"golang.org/x/sys/unix"
)

type Usage struct {
	Utime  time.Duration `json:"utime"`   // user CPU time used
	Stime  time.Duration `json:"stime"`   // system CPU time used
	MaxRss int64         `json:"max_rss"` // maximum resident set size
	Ixrss  int64         `json:"ix_rss"`  // integral shared memory size
	Idrss  int64         `json:"id_rss"`  // integral unshared data size
	Isrss  int64         `json:"is_rss"`  // integral unshared stack size
}

func (u *Usage) MemTotal() int64 {
	return u.MaxRss
}

func (u *Usage) MemShr() int64 {
	return u.Ixrss
}

func (u *Usage) CPUTotal() time.Duration {
	return u.Utime + u.Stime
}

func GetUsage() (*Usage, error) {
	var usage unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &usage); err != nil {
		return nil, err
	}
	return &Usage{
		Utime:  time.Duration(usage.Utime.Nano()),
		Stime:  time.Duration(usage.Stime.Nano()),
		MaxRss: int64(usage.Maxrss),
		Ixrss:  int64(usage.Ixrss),
		Idrss:  int64(usage.Idrss),
		Isrss:  int64(usage.Isrss),
	}, nil
}
