package simulation

import "bitlife/src/universe"

//Engine is what viewers and the command line host see of a simulation
type Engine interface {
	Status() Status
	Options() Options
	Frame() universe.Frame
	StateCh() chan Status
	AddTemplate(tmpl Template)
	Templates() []string
	SettleTemplate(name string) error
	SettleWithRandomData(seed int64)
	Settle(vc []universe.Coord) error
	InverseCell(row uint32, col uint32) error
	Resize(width uint32, height uint32) error
	RegisterViewer(v Viewer)
	Run()
	Stop()
	Step()
	Clear()
	Flush()
	Close()
}

var _ Engine = (*Simulation)(nil)
