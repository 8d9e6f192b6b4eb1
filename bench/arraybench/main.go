package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/zuoyebang/mallocarray"
	"github.com/zuoyebang/mallocarray/internal/base"
	"github.com/zuoyebang/mallocarray/internal/consts"
	"github.com/zuoyebang/mallocarray/internal/humanize"
)

var (
	command     *string
	goNum       *int
	cpuNum      *int
	count       *int
	loop        *int
	showMemory  *int
	compression *int
)

var logger = base.NewLogger(nil, "[arraybench]")

func main() {
	command = flag.String("command", "alloc", "-command=alloc|fill|iter|store|codec")
	goNum = flag.Int("gonum", consts.DefaultBenchGoNum, "input goroutine nums")
	cpuNum = flag.Int("cpus", 0, "cpu num, 0 keeps GOMAXPROCS")
	count = flag.Int("count", consts.DefaultBenchCount, "elements per array")
	loop = flag.Int("loop", consts.DefaultBenchLoop, "operations per goroutine")
	showMemory = flag.Int("showMemory", 1, "show memory: 1=show, 0=no show")
	compression = flag.Int("compression", mallocarray.CompressionSnappy, "codec compression: 0=none 1=snappy 2=zstd")
	flag.Parse()

	if *cpuNum > 0 {
		runtime.GOMAXPROCS(*cpuNum)
	}

	op, ok := commands[*command]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n", *command)
		flag.Usage()
		os.Exit(2)
	}

	if *showMemory == 1 {
		printUsage("before")
	}

	res, err := run(*command, op, *goNum, *loop)
	if err != nil {
		logger.Fatalf("%s failed: %v", *command, err)
	}
	res.print()

	logger.Info(mallocarray.ReadAllocatorStats())
	if *showMemory == 1 {
		printUsage("after")
	}
}

func printUsage(when string) {
	usage, err := GetUsage()
	if err != nil {
		logger.Warnf("read usage: %v", err)
		return
	}
	logger.Infof("mem %s: total %s shr %s cpu %s", when,
		humanize.Bytes(uint64(usage.MemTotal())),
		humanize.Bytes(uint64(usage.MemShr())),
		usage.CPUTotal().Round(time.Millisecond))
}
