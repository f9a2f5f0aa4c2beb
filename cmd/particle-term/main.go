// Command particle-term runs the hero particle field in a terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/particle-field/internal/config"
	"github.com/iburimskiy/particle-field/internal/logging"
	"github.com/iburimskiy/particle-field/internal/runloop"
	"github.com/iburimskiy/particle-field/internal/term"
)

func main() {
	debug := flag.Bool("debug", false, "write a debug log")
	seed := flag.Uint64("seed", 0, "random seed, 0 for a random one")
	flag.Parse()

	if err := run(*debug, *seed); err != nil {
		fmt.Fprintf(os.Stderr, "particle-term: %v\n", err)
		os.Exit(1)
	}
}

func run(debug bool, seed uint64) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if debug {
		cfg.Debug = true
	}
	if seed != 0 {
		cfg.Seed = seed
	}

	logFile, err := logging.Setup(cfg.Debug, cfg.LogDir)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("new screen: %w", err)
	}
	app, err := term.NewApp(screen, cfg, runloop.SystemClock{}, cfg.Rand())
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("terminal: running")
	return app.Run(ctx)
}
