//go:build linux
// +build linux

package main

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

type Usage struct {
	Utime  time.Duration `json:"utime"`
	Stime  time.Duration `json:"stime"`
	VmSize int64         `json:"vm_size"`
	VmRss  int64         `json:"vm_rss"`
	VmShr  int64         `json:"vm_share"`
}

func (u *Usage) MemTotal() int64 {
	return u.VmRss
}

func (u *Usage) MemShr() int64 {
	return u.VmShr
}

func (u *Usage) CPUTotal() time.Duration {
	return u.Utime + u.Stime
}

func GetUsage() (*Usage, error) {
	u := &Usage{}

	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return nil, err
	}
	u.Utime = time.Duration(ru.Utime.Nano())
	u.Stime = time.Duration(ru.Stime.Nano())

	fm, err := os.Open("/proc/self/statm")
	if err != nil {
		return nil, err
	}
	defer fm.Close()

	rm := bufio.NewReader(fm)
	if _, err := fmt.Fscanf(rm, "%d %d %d", &u.VmSize, &u.VmRss, &u.VmShr); err != nil {
		return nil, err
	}
	page := int64(unix.Getpagesize())
	u.VmSize *= page
	u.VmRss *= page
	u.VmShr *= page
	return u, nil
}
