package domain

const (
	sideA = 1 << 0
	sideB = 1 << 1
	sideC = 1 << 2

	allSides = sideA | sideB | sideC
)

func sideMask(c Coordinates) int {
	mask := 0
	if c.TouchesSideA() {
		mask |= sideA
	}
	if c.TouchesSideB() {
		mask |= sideB
	}
	if c.TouchesSideC() {
		mask |= sideC
	}
	return mask
}

// HasConnectedAllSides reports whether player owns a single connected group
// of stones that touches all three sides of the board. This is the reference
// win check used by the game state machine; the bot carries its own faster
// version over the same rule.
func HasConnectedAllSides(b *Board, player PlayerID) bool {
	visited := make([]bool, b.TotalCells())

	for start := range b.Cells {
		if b.Cells[start] != player || visited[start] {
			continue
		}

		// BFS one component, collecting the sides it reaches.
		mask := 0
		queue := []int{start}
		visited[start] = true

		for len(queue) > 0 {
			idx := queue[0]
			queue = queue[1:]

			coords := CoordinatesFromIndex(idx, b.Size)
			mask |= sideMask(coords)
			if mask == allSides {
				return true
			}

			for _, n := range coords.Neighbors() {
				if !n.IsValid(b.Size) {
					continue
				}
				nIdx := n.Index(b.Size)
				if b.Cells[nIdx] == player && !visited[nIdx] {
					visited[nIdx] = true
					queue = append(queue, nIdx)
				}
			}
		}
	}

	return false
}
