//go:build !ebiten

package view

import "bitlife/src/simulation"

//Window is a placeholder for builds without the ebiten tag.
type Window struct{}

//WindowSupported reports whether the binary was built with the window host.
const WindowSupported = false

//NewWindow panics to indicate that the ebiten build tag is required for the window.
func NewWindow(int, int64) *Window {
	panic("view.NewWindow requires building with the 'ebiten' tag")
}

//Register is a no-op placeholder.
func (win *Window) Register(simulation.Engine) {}

//Refresh is a no-op placeholder.
func (win *Window) Refresh() {}

//Start is a no-op placeholder.
func (win *Window) Start() {}
