package bot

import "math"

const (
	// WinScore is the terminal score for a connected board.
	WinScore  = 100000
	LoseScore = -WinScore

	infinity = math.MaxInt32 / 2
)

const (
	// Heuristic weights, highest priority first.
	edgeWeight       = 5  // per distinct edge touched
	connectionWeight = 25 // per same-owner adjacency
	clusterBonus     = 40 // per stone with 2+ friendly neighbors
	centerBase       = 50 // center-distance baseline per stone
	centerWeight     = 5  // scaled down as the board fills
)

// evaluate scores the position from the bot's point of view. Wins dominate
// everything; otherwise the score is the difference of both players'
// positional strength, so an empty board evaluates to exactly zero.
func evaluate(s *searchState) int {
	if s.checkWin(s.botID) {
		return WinScore
	}
	if s.checkWin(s.oppID) {
		return LoseScore
	}

	return positionStrength(s, s.botID) - positionStrength(s, s.oppID)
}

// positionStrength combines edge coverage, local connectivity and center
// control for one player in a single pass over the occupied cells.
func positionStrength(s *searchState, player uint8) int {
	score := 0
	var edgesTouched uint8
	totalConnections := 0
	centerControl := 0
	occupied := 0

	s.forEachOccupied(func(idx int) bool {
		occupied++
		if s.owner[idx] != player {
			return true
		}

		edgesTouched |= s.edges[idx]

		friendly := 0
		for _, neighbor := range s.neighbors[idx] {
			if s.owner[neighbor] == player {
				friendly++
			}
		}
		totalConnections += friendly
		if friendly >= 2 {
			score += clusterBonus
		}

		// Distance from the board's centroid; stones near the middle keep
		// more connection options open.
		c := s.coords[idx]
		offCenter := absInt(c.X-c.Y) + absInt(c.Y-c.Z) + absInt(c.Z-c.X)
		centerControl += centerBase - offCenter

		return true
	})

	edgesCount := 0
	for mask := edgesTouched; mask != 0; mask &= mask - 1 {
		edgesCount++
	}

	// Center control matters early and fades as the board fills up.
	progress := float64(occupied) / float64(len(s.owner))
	centerScale := (1.0 - progress) * centerWeight

	score += edgesCount * edgeWeight
	score += totalConnections * connectionWeight
	score += int(float64(centerControl) * centerScale)

	return score
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
