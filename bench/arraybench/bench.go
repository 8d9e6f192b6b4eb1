package main

import (
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/cockroachdb/errors"
	"github.com/zuoyebang/mallocarray"
	"github.com/zuoyebang/mallocarray/internal/base"
	"github.com/zuoyebang/mallocarray/internal/consts"
	"github.com/zuoyebang/mallocarray/internal/fastrand"
	"github.com/zuoyebang/mallocarray/internal/humanize"
	"golang.org/x/sync/errgroup"
)

type record struct {
	Key   uint64
	Value uint32
	Flags uint32
}

type opFunc func(n int) error

var commands = map[string]opFunc{
	"alloc": allocOp,
	"fill":  fillOp,
	"iter":  iterOp,
	"store": storeOp,
	"codec": codecOp,
}

var errVerify = errors.New("arraybench: verification failed")

func allocOp(n int) error {
	a := mallocarray.NewZeroed[record](n)
	if a.Len() != n {
		return errors.Wrapf(errVerify, "len %d want %d", a.Len(), n)
	}
	a.Release()
	return nil
}

func fillOp(n int) error {
	a := mallocarray.NewUninit[record](n)
	defer a.Release()

	a.Initialise().FillWith(func() record {
		return record{Key: uint64(fastrand.Uint32()), Value: fastrand.Uint32()}
	})
	b := a.Clone()
	defer b.Release()
	if a.Hash() != b.Hash() {
		return errors.Wrap(errVerify, "clone hash")
	}
	return nil
}

func iterOp(n int) error {
	it := mallocarray.NewFromPattern([]uint64{1, 2, 3, 4}, n).IntoIter()
	defer it.Close()

	var sum uint64
	for i := 0; i < n/2; i++ {
		v, _ := it.Next()
		sum += v
	}
	if n >= 2 && sum == 0 {
		return errors.Wrap(errVerify, "iter sum")
	}
	return nil
}

func storeOp(n int) error {
	s := mallocarray.NewStore[record]()
	for i := 0; i < n; i++ {
		s.Add(mallocarray.NewValue(record{Key: uint64(i)}))
	}
	a := s.IntoArray()
	defer a.Release()
	if n > 0 && a.Slice()[n-1].Key != uint64(n-1) {
		return errors.Wrap(errVerify, "store order")
	}
	return nil
}

func codecOp(n int) error {
	a := mallocarray.NewUninit[uint32](n)
	defer a.Release()
	a.Initialise().FillWith(func() uint32 {
		return uint32(fastrand.Intn(64))
	})

	buf := mallocarray.Encode(nil, a, &mallocarray.EncodeOptions{Compression: *compression})
	b, err := mallocarray.Decode[uint32](buf)
	if err != nil {
		return err
	}
	defer b.Release()
	if !mallocarray.Equal(a, b) {
		return errors.Wrap(errVerify, "codec round trip")
	}
	return nil
}

type result struct {
	command string
	ops     int64
	elapsed time.Duration
	latency *hdrhistogram.Histogram
}

func newHistogram() *hdrhistogram.Histogram {
	return hdrhistogram.New(1, consts.BenchMaxLatencyNs, consts.BenchLatencySigFig)
}

func run(name string, op opFunc, goNum, loop int) (*result, error) {
	hists := make([]*hdrhistogram.Histogram, goNum)
	for i := range hists {
		hists[i] = newHistogram()
	}

	done := logger.Cost(name, " gonum:", goNum, " loop:", loop, " count:", *count)
	start := time.Now()
	var g errgroup.Group
	for i := 0; i < goNum; i++ {
		h := hists[i]
		g.Go(func() error {
			for j := 0; j < loop; j++ {
				begin := time.Now()
				if err := op(*count); err != nil {
					return err
				}
				_ = h.RecordValue(time.Since(begin).Nanoseconds())
			}
			return nil
		})
	}
	err := g.Wait()
	elapsed := time.Since(start)
	done()
	if err != nil {
		return nil, err
	}

	total := newHistogram()
	for _, h := range hists {
		total.Merge(h)
	}
	return &result{
		command: name,
		ops:     total.TotalCount(),
		elapsed: elapsed,
		latency: total,
	}, nil
}

func (r *result) print() {
	logger.Infof("%s: ops %s qps %s avg %s p50 %s p99 %s max %s",
		r.command,
		humanize.Count(r.ops),
		humanize.Rate(r.ops, r.elapsed),
		fmtNs(int64(r.latency.Mean())),
		fmtNs(r.latency.ValueAtQuantile(50)),
		fmtNs(r.latency.ValueAtQuantile(99)),
		fmtNs(r.latency.Max()))
}

func fmtNs(ns int64) string {
	return base.FmtDuration(time.Duration(ns))
}
