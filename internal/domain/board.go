package domain

// Board holds stone ownership for every cell of the triangular grid. Cells
// are addressed by linear index over the full size×size square; indices whose
// decoded triple is invalid are never occupied and never reported available.
type Board struct {
	Size  int
	Cells []PlayerID
}

func NewBoard(size int) *Board {
	return &Board{
		Size:  size,
		Cells: make([]PlayerID, size*size),
	}
}

// TotalCells is the size of the linear index domain (valid cells included).
func (b *Board) TotalCells() int {
	return b.Size * b.Size
}

func (b *Board) Owner(idx int) PlayerID {
	return b.Cells[idx]
}

// Place puts a stone for player on the given cell.
func (b *Board) Place(c Coordinates, player PlayerID) error {
	if !c.IsValid(b.Size) {
		return ErrInvalidCell
	}
	idx := c.Index(b.Size)
	if b.Cells[idx] != Empty {
		return ErrCellOccupied
	}
	b.Cells[idx] = player
	return nil
}

// AvailableCells returns the indices of all valid empty cells in index order.
func (b *Board) AvailableCells() []int {
	available := []int{}
	for idx := range b.Cells {
		if b.Cells[idx] != Empty {
			continue
		}
		if CoordinatesFromIndex(idx, b.Size).IsValid(b.Size) {
			available = append(available, idx)
		}
	}
	return available
}

func (b *Board) IsFull() bool {
	return len(b.AvailableCells()) == 0
}

// this creates a deep copy of the board
func (b *Board) Copy() *Board {
	cells := make([]PlayerID, len(b.Cells))
	copy(cells, b.Cells)
	return &Board{Size: b.Size, Cells: cells}
}

// CellInts flattens ownership to plain ints for persistence and transport.
func (b *Board) CellInts() []int {
	out := make([]int, len(b.Cells))
	for i, p := range b.Cells {
		out[i] = int(p)
	}
	return out
}
