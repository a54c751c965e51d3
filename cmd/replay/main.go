package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"twap-book/pkg/obs"
	"twap-book/pkg/replay"
)

func main() {
	logLevel := flag.String("log-level", "warn", "log level: debug, info, warn or error")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Syntax: %s [--log-level LEVEL] event-log\n", os.Args[0])
		os.Exit(2)
	}

	if err := run(flag.Arg(0), *logLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(path string, logLevel string) error {
	obs := obs.New(logLevel)
	defer obs.Sync()
	ctx := context.Background()

	f, err := os.Open(path)
	if err != nil {
		obs.LogErr(ctx, "replay.open failed path=%s err=%v", path, err)
		return err
	}
	defer f.Close()

	res, err := replay.RunReader(ctx, f, obs)
	if err != nil {
		return err
	}

	fmt.Printf("Time-weighted average maximum price: %v\n", res.Average)
	return nil
}
