// Command plove extracts peripheral outline and moment features from
// character images, or builds labelled feature sets from a font.
//
// Usage:
//
//	plove [flags] image|dir ...        write one CSV row per image
//	plove -font go -output go.features  render -chars and save a feature set
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/wbrown/plove"
)

func main() {
	cfg, args, err := parseArgs(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	if cfg.Verbose {
		log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	plove.SetLogger(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	begin := time.Now()
	if cfg.Font != "" {
		err = runFont(ctx, cfg, log)
	} else {
		if len(args) == 0 {
			fmt.Fprintln(os.Stderr, "Please provide images or directories to extract, or -font")
			os.Exit(2)
		}
		err = runImages(ctx, cfg, args, log)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log.Info("done", "elapsed", time.Since(begin))
}
