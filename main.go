package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/particle-field/internal/config"
	"github.com/iburimskiy/particle-field/internal/game"
	"github.com/iburimskiy/particle-field/internal/logging"
)

func main() {
	debug := flag.Bool("debug", false, "write a debug log and show the HUD")
	seed := flag.Uint64("seed", 0, "random seed, 0 for a random one")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fatal(err)
	}
	if *debug {
		cfg.Debug = true
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	logFile, err := logging.Setup(cfg.Debug, cfg.LogDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging disabled: %v\n", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g := game.NewGame(cfg, cfg.Rand())
	err = ebiten.RunGame(g)
	g.Close()
	if err != nil && !errors.Is(err, ebiten.Termination) {
		fatal(err)
	}
	log.Printf("exit")
}

// fatal reports err in a dialog, since the window may be the only thing the
// user sees, then exits.
func fatal(err error) {
	log.Printf("fatal: %v", err)
	if dlgErr := zenity.Error(err.Error(), zenity.Title("Particle Field"), zenity.ErrorIcon); dlgErr != nil {
		log.Printf("error dialog: %v", dlgErr)
	}
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
