package universe

//NextCellState returns the state of a cell in the next generation
//given its current state and the number of its live neighbours
func NextCellState(alive bool, liveNeighbors uint8) bool {
	switch {
	case alive && liveNeighbors < 2:
		//underpopulation
		return false
	case alive && (liveNeighbors == 2 || liveNeighbors == 3):
		return true
	case alive && liveNeighbors > 3:
		//overpopulation
		return false
	case !alive && liveNeighbors == 3:
		//reproduction
		return true
	}
	return alive
}
