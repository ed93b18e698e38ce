package view

import (
	"image/color"

	"bitlife/src/universe"
)

//fillFrameRGBA converts the packed frame cells into RGBA pixels in buf.
//buf must hold 4 bytes for every cell of the frame.
func fillFrameRGBA(buf []byte, f universe.Frame, on, off color.Color) {
	rOn, gOn, bOn, aOn := on.RGBA()
	rOff, gOff, bOff, aOff := off.RGBA()
	onPx := [4]byte{uint8(rOn >> 8), uint8(gOn >> 8), uint8(bOn >> 8), uint8(aOn >> 8)}
	offPx := [4]byte{uint8(rOff >> 8), uint8(gOff >> 8), uint8(bOff >> 8), uint8(aOff >> 8)}

	base := 0
	for row := uint32(0); row < f.Height; row++ {
		for col := uint32(0); col < f.Width; col++ {
			if f.Alive(row, col) {
				copy(buf[base:base+4], onPx[:])
			} else {
				copy(buf[base:base+4], offPx[:])
			}
			base += 4
		}
	}
}
