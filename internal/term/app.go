// Package term is the terminal host: one particle field drawn onto a tcell
// screen, driven by a ticker on a single goroutine.
package term

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/particle-field/internal/config"
	"github.com/iburimskiy/particle-field/internal/field"
	"github.com/iburimskiy/particle-field/internal/runloop"
)

var _ field.Host = (*App)(nil)

// App is the Host for one simulator on a terminal screen.
type App struct {
	*runloop.Loop

	cfg     config.Config
	screen  tcell.Screen
	surface *Surface
	sim     *field.Simulator
}

// NewApp initialises screen, enables mouse motion and focus reporting, and
// mounts a simulator configured from cfg.Hero. The narrow threshold comes from
// cfg.TermNarrowColumns instead of the field's pixel width.
func NewApp(screen tcell.Screen, cfg config.Config, clock runloop.Clock, rng *rand.Rand) (*App, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()
	screen.HideCursor()
	screen.Clear()

	a := &App{
		Loop:    runloop.NewLoop(clock),
		cfg:     cfg,
		screen:  screen,
		surface: NewSurface(cfg.CellWidth, cfg.CellHeight),
		sim:     field.New("terminal", terminalField(cfg), rng),
	}
	a.sim.Mount(a)
	return a, nil
}

func terminalField(cfg config.Config) config.Field {
	f := cfg.Hero
	f.NarrowWidth = float64(cfg.TermNarrowColumns) * cfg.CellWidth
	return f
}

func (a *App) Surface() field.Surface {
	return a.surface
}

// Bounds is the screen size in surface pixels
func (a *App) Bounds() (float64, float64) {
	cols, rows := a.screen.Size()
	return float64(cols) * a.cfg.CellWidth, float64(rows) * a.cfg.CellHeight
}

func (a *App) Simulator() *field.Simulator {
	return a.sim
}

// HandleEvent applies one tcell event and reports whether the app should quit
func (a *App) HandleEvent(ev tcell.Event) (quit bool) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
		a.NotifyResize()
	case *tcell.EventMouse:
		col, row := ev.Position()
		// aim at the cell centre
		a.PointerMove((float64(col)+0.5)*a.cfg.CellWidth, (float64(row)+0.5)*a.cfg.CellHeight)
	case *tcell.EventFocus:
		a.SetHidden(!ev.Focused)
		if !ev.Focused {
			a.PointerLeave()
		}
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyRune:
			if ev.Rune() == 'q' {
				return true
			}
		}
	}
	return false
}

// Frame runs one display frame: timers, the simulator, then the screen
func (a *App) Frame() {
	a.Tick()
	a.surface.Flush(a.screen)
	a.screen.Show()
}

// Run ticks at cfg.FrameInterval until ctx is done or a quit key arrives.
// Events are read on a separate goroutine and applied on this one.
func (a *App) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(a.cfg.FrameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if a.HandleEvent(ev) {
				log.Printf("terminal: quit requested")
				return nil
			}
		case <-ticker.C:
			a.Frame()
		}
	}
}

// Close unmounts the simulator and restores the terminal
func (a *App) Close() {
	a.sim.Unmount()
	a.screen.Fini()
}
