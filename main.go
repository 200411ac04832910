package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

type options struct {
	configPath  string
	headless    bool
	textMode    bool
	generations int
	recordPath  string
	chartPath   string
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "config.json", "path to the JSON configuration")
	flag.BoolVar(&opts.headless, "headless", false, "advance without a screen or timer, then exit")
	flag.BoolVar(&opts.textMode, "text", false, "paint plain text frames instead of the full-screen view")
	flag.IntVar(&opts.generations, "generations", 0, "stop after this many generations (overrides max_generations)")
	flag.StringVar(&opts.recordPath, "record", "", "record every generation into this MJPEG AVI file")
	flag.StringVar(&opts.chartPath, "chart", "", "write a population chart PNG on exit")
	flag.Parse()

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, stop, opts); err != nil {
		fmt.Fprintf(os.Stderr, "life-canvas: %+v\n", err)
		stop()
		os.Exit(1)
	}
}
