//go:build ebiten

package view

import (
	"errors"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"bitlife/src/simulation"
	"bitlife/src/universe"
)

//WindowSupported reports whether the binary was built with the window host.
const WindowSupported = true

//Window shows the universe in an ebiten window.
//The simulation is driven by its own loop; the window only reads frames and forwards input.
type Window struct {
	e     simulation.Engine
	scale int
	seed  int64

	img *ebiten.Image
	buf []byte
	w   uint32
	h   uint32

	onColor  color.Color
	offColor color.Color
}

//NewWindow creates a window drawing every cell as a scale x scale square.
func NewWindow(scale int, seed int64) *Window {
	return &Window{scale: scale, seed: seed, onColor: color.White, offColor: color.Black}
}

//Register implements simulation.Viewer.
func (win *Window) Register(e simulation.Engine) {
	win.e = e
}

//Refresh implements simulation.Viewer, frames are pulled on Draw.
func (win *Window) Refresh() {}

//Start opens the window and blocks until it is closed.
func (win *Window) Start() {
	o := win.e.Options()
	ebiten.SetWindowTitle("bitlife")
	ebiten.SetWindowSize(int(o.Width)*win.scale, int(o.Height)*win.scale)
	if err := ebiten.RunGame(win); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Panicln(err)
	}
}

//Update handles keyboard and mouse input.
func (win *Window) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyQ), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		win.e.Step()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		win.e.Run()
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		win.e.Stop()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		win.e.Clear()
	case inpututil.IsKeyJustPressed(ebiten.KeyW):
		win.seed++
		win.e.SettleWithRandomData(win.seed)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if x >= 0 && y >= 0 {
			_ = win.e.InverseCell(uint32(y/win.scale), uint32(x/win.scale))
		}
	}
	return nil
}

//Draw renders the current frame.
func (win *Window) Draw(screen *ebiten.Image) {
	f := win.e.Frame()
	win.ensureImage(f)
	fillFrameRGBA(win.buf, f, win.onColor, win.offColor)
	win.img.WritePixels(win.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(win.scale), float64(win.scale))
	screen.DrawImage(win.img, op)
}

//Layout returns the logical screen size.
func (win *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	o := win.e.Options()
	return int(o.Width) * win.scale, int(o.Height) * win.scale
}

//ensureImage reallocates the image when the universe was resized.
func (win *Window) ensureImage(f universe.Frame) {
	if win.img != nil && win.w == f.Width && win.h == f.Height {
		return
	}
	win.w, win.h = f.Width, f.Height
	win.img = ebiten.NewImage(int(f.Width), int(f.Height))
	win.buf = make([]byte, 4*int(f.Width)*int(f.Height))
}
