// Package game is the desktop host: an ebiten window split into a hero and a
// contact section, each running an independent particle field.
package game

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/particle-field/internal/config"
	"github.com/iburimskiy/particle-field/internal/field"
	"github.com/iburimskiy/particle-field/internal/runloop"
)

var (
	// page background, top to bottom of each section
	backgroundTop    = color.RGBA{R: 17, G: 24, B: 39, A: 255}
	backgroundBottom = color.RGBA{R: 31, G: 41, B: 55, A: 255}
	dividerColor     = color.RGBA{R: 255, G: 255, B: 255, A: 24}
)

type Game struct {
	cfg   config.Config
	clock runloop.Clock

	sections []*section
	width    int
	height   int

	// frame pacing
	tap        *frameTap
	started    time.Time
	lastUpdate time.Time

	// input edge detection
	prevKey map[ebiten.Key]bool

	// state
	hud    bool
	paused bool
	closed bool
}

// NewGame builds both sections at the configured window size and mounts
// their simulators.
func NewGame(cfg config.Config, rng *rand.Rand) *Game {
	clock := runloop.SystemClock{}
	g := &Game{
		cfg:     cfg,
		clock:   clock,
		width:   cfg.WindowWidth,
		height:  cfg.WindowHeight,
		tap:     newFrameTap(config.FrameTapSize),
		started: clock.Now(),
		prevKey: map[ebiten.Key]bool{},
		hud:     cfg.Debug,
	}

	fields := []struct {
		name string
		cfg  config.Field
	}{
		{"hero", cfg.Hero},
		{"contact", cfg.Contact},
	}
	for _, f := range fields {
		sim := field.New(f.name, f.cfg, rand.New(rand.NewPCG(rng.Uint64(), rng.Uint64())))
		g.sections = append(g.sections, newSection(f.name, clock, &imageSurface{}, sim))
	}
	g.relayout()

	for _, s := range g.sections {
		if !s.sim.Mount(s) {
			log.Printf("section %s: simulator not started", s.name)
		}
	}
	return g
}

// sectionRects splits a w×h window into the hero and contact rectangles
func sectionRects(w, h int, heroFraction float64) (hero, contact image.Rectangle) {
	split := int(float64(h)*heroFraction + 0.5)
	return image.Rect(0, 0, w, split), image.Rect(0, split, w, h)
}

func (g *Game) relayout() {
	hero, contact := sectionRects(g.width, g.height, g.cfg.HeroFraction)
	g.sections[0].setRect(hero)
	g.sections[1].setRect(contact)
}

func (g *Game) Update() error {

	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if justPressed(ebiten.KeyD) {
		g.hud = !g.hud
	}
	if justPressed(ebiten.KeySpace) {
		g.paused = !g.paused
		log.Printf("paused=%v", g.paused)
	}

	now := g.clock.Now()
	if !g.lastUpdate.IsZero() {
		g.tap.record(now.Sub(g.lastUpdate))
	}
	g.lastUpdate = now

	hidden := g.paused || ebiten.IsWindowMinimized()
	mouseX, mouseY := ebiten.CursorPosition()
	inWindow := mouseX >= 0 && mouseX < g.width && mouseY >= 0 && mouseY < g.height && ebiten.IsFocused()

	for _, s := range g.sections {
		s.SetHidden(hidden)
		s.trackPointer(mouseX, mouseY, inWindow)
		s.Tick()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	for _, s := range g.sections {
		g.drawBackground(screen, s.rect)
		if surf, ok := s.surface.(*imageSurface); ok {
			surf.drawTo(screen, s.rect.Min.X, s.rect.Min.Y)
		}
	}
	if len(g.sections) > 1 {
		y := float32(g.sections[1].rect.Min.Y)
		vector.StrokeLine(screen, 0, y, float32(g.width), y, 1, dividerColor, false)
	}

	if g.paused {
		ebitenutil.DebugPrintAt(screen, "Paused - Space to resume", 12, 12)
	}
	if g.hud {
		g.drawHUD(screen)
	}
}

// drawBackground paints the vertical page gradient behind one section
func (g *Game) drawBackground(screen *ebiten.Image, r image.Rectangle) {
	h := r.Dy()
	const band = 4
	for y := 0; y < h; y += band {
		c := lerpColor(backgroundTop, backgroundBottom, float64(y)/float64(h))
		vector.DrawFilledRect(screen, float32(r.Min.X), float32(r.Min.Y+y), float32(r.Dx()), band, c, false)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	var b strings.Builder
	fmt.Fprintf(&b, "FPS %.0f  TPS %.0f  up %s  tick %.1fms\n",
		ebiten.ActualFPS(), ebiten.ActualTPS(),
		formatDuration(g.clock.Now().Sub(g.started)),
		float64(g.tap.average().Microseconds())/1000)
	for _, s := range g.sections {
		b.WriteString(sectionStatus(s))
		b.WriteByte('\n')
	}
	ebitenutil.DebugPrintAt(screen, b.String(), 12, 28)
}

func sectionStatus(s *section) string {
	st := s.sim.Stats()
	bounds := s.sim.Bounds()
	return fmt.Sprintf("%-7s %4.0fx%-4.0f n=%d links=%d skip=%d steps=%d hidden=%d regen=%d",
		s.name, bounds.W, bounds.H, len(s.sim.Particles()), st.Links, s.sim.FrameSkip(),
		st.Steps, st.HiddenSkips, st.Regenerations)
}

// Layout follows the window; size changes reach the sections as resize
// notifications and are debounced by the simulators.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.relayout()
	}
	return outsideWidth, outsideHeight
}

// Close unmounts every simulator and releases the offscreen images
func (g *Game) Close() {
	if g.closed {
		return
	}
	g.closed = true
	for _, s := range g.sections {
		s.sim.Unmount()
		if surf, ok := s.surface.(*imageSurface); ok {
			surf.release()
		}
	}
}
