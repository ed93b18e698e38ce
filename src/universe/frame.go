package universe

//Frame is a copy of the universe cells taken at one moment
//unlike Cells() it stays valid after the universe moves on
type Frame struct {
	Width  uint32
	Height uint32
	Words  []uint64 //packed cells, cell i is bit i%64 of word i/64
}

//Frame copies the current cells
func (u *Universe) Frame() Frame {
	words := u.cells.Bytes()
	f := Frame{Width: u.width, Height: u.height, Words: make([]uint64, len(words))}
	copy(f.Words, words)
	return f
}

//Alive reports whether the cell at row, col is alive, positions outside the frame are dead
func (f Frame) Alive(row uint32, col uint32) bool {
	if row >= f.Height || col >= f.Width {
		return false
	}
	i := uint(f.Width)*uint(row) + uint(col)
	w := i / 64
	if w >= uint(len(f.Words)) {
		return false
	}
	return f.Words[w]&(1<<(i%64)) != 0
}

//LiveCells counts the live cells of the frame
func (f Frame) LiveCells() (n int) {
	for row := uint32(0); row < f.Height; row++ {
		for col := uint32(0); col < f.Width; col++ {
			if f.Alive(row, col) {
				n++
			}
		}
	}
	return
}
