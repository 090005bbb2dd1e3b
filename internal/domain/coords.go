package domain

// Coordinates locates a cell on the triangular board. The three components
// count the distance to each side of the triangle, so every on-board cell
// satisfies X+Y+Z == size-1 with all components non-negative.
type Coordinates struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// CoordinatesFromIndex decodes a linear cell index back into a triple.
// Indices cover the full size×size square; triples with a negative Z fall
// outside the playable triangle and report as invalid.
func CoordinatesFromIndex(idx, size int) Coordinates {
	x := idx / size
	y := idx % size
	return Coordinates{X: x, Y: y, Z: size - 1 - x - y}
}

// Index maps a triple to its linear cell index.
func (c Coordinates) Index(size int) int {
	return c.X*size + c.Y
}

// IsValid reports whether the triple lies inside the playable triangle.
func (c Coordinates) IsValid(size int) bool {
	return c.X >= 0 && c.Y >= 0 && c.Z >= 0 &&
		c.X < size && c.Y < size &&
		c.X+c.Y+c.Z == size-1
}

// Side A is the edge where X runs out, and likewise for B and C.

func (c Coordinates) TouchesSideA() bool { return c.X == 0 }
func (c Coordinates) TouchesSideB() bool { return c.Y == 0 }
func (c Coordinates) TouchesSideC() bool { return c.Z == 0 }

// Neighbors returns the six hex-adjacent triples. No validity filtering is
// done here; callers drop the ones that fall off the board.
func (c Coordinates) Neighbors() [6]Coordinates {
	return [6]Coordinates{
		{c.X + 1, c.Y - 1, c.Z},
		{c.X - 1, c.Y + 1, c.Z},
		{c.X, c.Y + 1, c.Z - 1},
		{c.X, c.Y - 1, c.Z + 1},
		{c.X + 1, c.Y, c.Z - 1},
		{c.X - 1, c.Y, c.Z + 1},
	}
}
