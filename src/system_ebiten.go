package main

import (
	"time"

	mgl "github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var mouseButtonNames = map[ebiten.MouseButton]string{
	ebiten.MouseButtonLeft:   "Left",
	ebiten.MouseButtonRight:  "Right",
	ebiten.MouseButtonMiddle: "Middle",
}

// Game is the windowed frontend. Each Update is one engine tick.
type Game struct {
	sys   *System
	rd    *Renderer
	keys  []ebiten.Key
	chars []rune
}

func NewGame(s *System) *Game {
	return &Game{sys: s, rd: NewRenderer(s.theme, s.fonts)}
}

func (g *Game) Update() error {
	if g.sys.gameEnd {
		return ebiten.Termination
	}
	dt := time.Second / time.Duration(ebiten.TPS())
	g.feedText()
	g.sys.tick(g.sample(dt))
	if g.sys.gameEnd {
		return ebiten.Termination
	}
	return nil
}

// sample reads the devices into an InputSample.
func (g *Game) sample(dt time.Duration) InputSample {
	s := InputSample{
		Keys:  make(map[string]bool),
		Mouse: make(map[string]bool),
		Dt:    dt,
	}
	g.keys = inpututil.AppendPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		s.Keys[k.String()] = true
	}
	for b, name := range mouseButtonNames {
		s.Mouse[name] = ebiten.IsMouseButtonPressed(b)
	}
	x, y := ebiten.CursorPosition()
	s.Pos = mgl.Vec2{float32(x), float32(y)}
	return s
}

// feedText sends typed characters and editing keys to the focused widget.
func (g *Game) feedText() {
	c := g.sys.gui.Canvas()
	if c.Focused() == nil {
		return
	}
	g.chars = ebiten.AppendInputChars(g.chars[:0])
	for _, r := range g.chars {
		c.HandleText(r)
	}
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyBackspace) ||
		inpututil.KeyPressDuration(ebiten.KeyBackspace) > ebiten.TPS()/2:
		c.HandleKey(EK_backspace)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		c.HandleKey(EK_return)
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyC):
		c.HandleKey(EK_copy)
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyV):
		c.HandleKey(EK_paste)
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyX):
		c.HandleKey(EK_cut)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.rd.Draw(screen, g.sys.gui)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(g.sys.windowSize[0]), int(g.sys.windowSize[1])
}

// runWindowed opens the window and blocks until it closes or a script
// quits.
func (s *System) runWindowed() error {
	ebiten.SetWindowTitle(s.windowTitle)
	ebiten.SetWindowSize(int(s.windowSize[0]), int(s.windowSize[1]))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(s.cfg.Video.Fullscreen)
	ebiten.SetVsyncEnabled(s.cfg.Video.VSync)
	if err := ebiten.RunGame(NewGame(s)); err != nil && err != ebiten.Termination {
		return err
	}
	return nil
}
