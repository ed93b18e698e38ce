package universe

import (
	"strings"

	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"
)

//Cell is the state of a single grid position
type Cell uint8

const (
	Dead  Cell = 0
	Alive Cell = 1
)

//default dimensions of a new universe
const (
	DefWidth  = 64
	DefHeight = 64
)

//Coord addresses a cell by its row and column
type Coord struct {
	Row uint32
	Col uint32
}

/*
	Universe is a toroidal Game of Life grid.
	Cells are packed one bit per position, row-major: (row, col) lives at bit width*row+col.
	The universe is not safe for concurrent use; the caller serializes all calls.
*/
type Universe struct {
	width  uint32
	height uint32
	cells  *bitset.BitSet
}

//New creates the default 64x64 universe
//cell i is alive when i is divisible by 2 or by 7
func New() *Universe {
	u := Universe{width: DefWidth, height: DefHeight}
	size := uint(u.width) * uint(u.height)
	u.cells = bitset.New(size)
	for i := uint(0); i < size; i++ {
		u.cells.SetTo(i, i%2 == 0 || i%7 == 0)
	}
	return &u
}

//Width returns the number of columns
func (u *Universe) Width() uint32 {
	return u.width
}

//Height returns the number of rows
func (u *Universe) Height() uint32 {
	return u.height
}

//SetWidth sets the width of the universe
//All cells are reset to the dead state, even when the width is unchanged
func (u *Universe) SetWidth(width uint32) error {
	if width == 0 {
		return errors.Wrapf(ErrInvalidDimension, "width %v", width)
	}
	u.width = width
	u.resetCells()
	return nil
}

//SetHeight sets the height of the universe
//All cells are reset to the dead state, even when the height is unchanged
func (u *Universe) SetHeight(height uint32) error {
	if height == 0 {
		return errors.Wrapf(ErrInvalidDimension, "height %v", height)
	}
	u.height = height
	u.resetCells()
	return nil
}

//Cells returns the packed cell words without copying
//cell i is bit i%64 of word i/64
//The slice is borrowed: it must not be modified and is only valid until the next call that mutates the universe
func (u *Universe) Cells() []uint64 {
	return u.cells.Bytes()
}

//Len returns the number of cells
func (u *Universe) Len() uint {
	return u.cells.Len()
}

//Snapshot returns a copy of the cell bitset
func (u *Universe) Snapshot() *bitset.BitSet {
	return u.cells.Clone()
}

//LiveCells returns the count of live cells
func (u *Universe) LiveCells() uint {
	return u.cells.Count()
}

//Index returns the flat index of the cell at row, col
func (u *Universe) Index(row uint32, col uint32) (uint, error) {
	if !u.contains(row, col) {
		return 0, outOfBounds(row, col, u.width, u.height)
	}
	return u.index(row, col), nil
}

//CellAt returns the state of the cell at row, col
func (u *Universe) CellAt(row uint32, col uint32) (Cell, error) {
	i, err := u.Index(row, col)
	if err != nil {
		return Dead, err
	}
	if u.cells.Test(i) {
		return Alive, nil
	}
	return Dead, nil
}

//SetCells makes every listed cell alive, other cells are left untouched
//The coordinates are validated before any cell is changed, so an out of bounds pair leaves the universe as it was
func (u *Universe) SetCells(coords []Coord) error {
	for _, c := range coords {
		if !u.contains(c.Row, c.Col) {
			return outOfBounds(c.Row, c.Col, u.width, u.height)
		}
	}
	for _, c := range coords {
		u.cells.Set(u.index(c.Row, c.Col))
	}
	return nil
}

//Toggle inverts the state of the cell at row, col
func (u *Universe) Toggle(row uint32, col uint32) error {
	i, err := u.Index(row, col)
	if err != nil {
		return err
	}
	u.cells.Flip(i)
	return nil
}

//Clear kills all cells, the dimensions are kept
func (u *Universe) Clear() {
	u.cells.ClearAll()
}

//Tick advances the universe by one generation
//the next state is calculated into a copy of the buffer which then replaces the current one,
//so every cell sees its neighbours from the same generation
func (u *Universe) Tick() {
	next := u.cells.Clone()
	for row := uint32(0); row < u.height; row++ {
		for col := uint32(0); col < u.width; col++ {
			i := u.index(row, col)
			next.SetTo(i, NextCellState(u.cells.Test(i), u.liveNeighborCount(row, col)))
		}
	}
	u.cells = next
}

//Neighbors returns the toroidal neighbours of the cell at row, col, the same positions liveNeighborCount reads
//there are 8 of them unless the grid is one cell wide or high, positions repeat on grids smaller than 3x3
func (u *Universe) Neighbors(row uint32, col uint32) ([]Coord, error) {
	if !u.contains(row, col) {
		return nil, outOfBounds(row, col, u.width, u.height)
	}
	n := make([]Coord, 0, 8)
	u.walkNeighbors(row, col, func(r uint32, c uint32) {
		n = append(n, Coord{Row: r, Col: c})
	})
	return n, nil
}

//String renders the universe one line per row, ◼ for alive and ◻ for dead cells
func (u *Universe) String() string {
	var b strings.Builder
	for row := uint32(0); row < u.height; row++ {
		for col := uint32(0); col < u.width; col++ {
			if u.cells.Test(u.index(row, col)) {
				b.WriteString("◼")
			} else {
				b.WriteString("◻")
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

//contains reports whether row, col is inside the grid
func (u *Universe) contains(row uint32, col uint32) bool {
	return row < u.height && col < u.width
}

//index expects row < height and col < width
func (u *Universe) index(row uint32, col uint32) uint {
	return uint(u.width)*uint(row) + uint(col)
}

//walkNeighbors calls cb for each of the 8 neighbours of row, col, wrapping around the edges
//offsets of height-1 and width-1 step one row up and one column left after the modulo
func (u *Universe) walkNeighbors(row uint32, col uint32, cb func(r uint32, c uint32)) {
	h, w := uint(u.height), uint(u.width)
	for _, dr := range [3]uint{h - 1, 0, 1} {
		for _, dc := range [3]uint{w - 1, 0, 1} {
			//skip my position
			if dr == 0 && dc == 0 {
				continue
			}
			cb(uint32((uint(row)+dr)%h), uint32((uint(col)+dc)%w))
		}
	}
}

//liveNeighborCount counts the live cells among the 8 neighbours of row, col
func (u *Universe) liveNeighborCount(row uint32, col uint32) (count uint8) {
	u.walkNeighbors(row, col, func(r uint32, c uint32) {
		if u.cells.Test(u.index(r, c)) {
			count++
		}
	})
	return
}

//resetCells allocates a dead buffer sized for the current dimensions
func (u *Universe) resetCells() {
	u.cells = bitset.New(uint(u.width) * uint(u.height))
}
