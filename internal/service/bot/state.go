package bot

import (
	"fmt"

	"github.com/gameofy/backend/internal/domain"
)

const (
	edgeA uint8 = 1 << 0
	edgeB uint8 = 1 << 1
	edgeC uint8 = 1 << 2

	allEdges uint8 = edgeA | edgeB | edgeC
)

// searchState is the mutable board snapshot the search runs on. It is built
// once per ChooseMove call from the game state and then mutated in place
// through make/undo pairs; nothing here survives the call.
type searchState struct {
	owner     []uint8
	size      int
	available *bitset

	// Immutable per-cell caches, computed once at construction.
	coords    []domain.Coordinates
	neighbors [][]int
	edges     []uint8

	botID uint8
	oppID uint8

	// Scratch buffers reused by every connectivity check so the hot path
	// stays allocation free. Cleared at the start of each check.
	visited []bool
	stack   []int
}

func newSearchState(g *domain.Game, botPlayer domain.PlayerID) *searchState {
	size := g.Board.Size
	total := g.Board.TotalCells()

	s := &searchState{
		owner:     make([]uint8, total),
		size:      size,
		available: newBitset(total),
		coords:    make([]domain.Coordinates, total),
		neighbors: make([][]int, total),
		edges:     make([]uint8, total),
		botID:     uint8(botPlayer),
		oppID:     uint8(botPlayer.Other()),
		visited:   make([]bool, total),
		stack:     make([]int, 0, total/4),
	}

	for idx := 0; idx < total; idx++ {
		coords := domain.CoordinatesFromIndex(idx, size)
		s.coords[idx] = coords

		if !coords.IsValid(size) {
			continue
		}

		for _, n := range coords.Neighbors() {
			if n.IsValid(size) {
				s.neighbors[idx] = append(s.neighbors[idx], n.Index(size))
			}
		}

		if coords.TouchesSideA() {
			s.edges[idx] |= edgeA
		}
		if coords.TouchesSideB() {
			s.edges[idx] |= edgeB
		}
		if coords.TouchesSideC() {
			s.edges[idx] |= edgeC
		}
	}

	for idx, owner := range g.Board.Cells {
		s.owner[idx] = uint8(owner)
	}
	for _, idx := range g.Board.AvailableCells() {
		s.available.set(idx)
	}

	return s
}

// makeMove places a stone. The cell must be available; anything else means
// move enumeration is broken, which is not recoverable.
func (s *searchState) makeMove(idx int, player uint8) {
	if !s.available.test(idx) {
		panic(fmt.Sprintf("bot: makeMove on unavailable cell %d", idx))
	}
	s.owner[idx] = player
	s.available.clear(idx)
}

// undoMove is the exact inverse of makeMove.
func (s *searchState) undoMove(idx int) {
	if s.owner[idx] == 0 {
		panic(fmt.Sprintf("bot: undoMove on empty cell %d", idx))
	}
	s.owner[idx] = 0
	s.available.set(idx)
}

func (s *searchState) forEachAvailable(fn func(idx int) bool) {
	s.available.ones(fn)
}

func (s *searchState) forEachOccupied(fn func(idx int) bool) {
	s.available.zeroes(fn)
}

// collectMoves gathers the available cells into dst in index order.
func (s *searchState) collectMoves(dst []int) []int {
	return s.available.appendOnes(dst[:0])
}

// checkWin reports whether player has one connected group touching all three
// board edges.
func (s *searchState) checkWin(player uint8) bool {
	for i := range s.visited {
		s.visited[i] = false
	}

	for idx := range s.owner {
		if s.owner[idx] == player && s.edges[idx] != 0 && !s.visited[idx] {
			if s.dfsCollectEdges(idx, player) == allEdges {
				return true
			}
		}
	}

	return false
}

// dfsCollectEdges walks one same-owner component from start, OR-ing together
// the edge flags of every visited cell. Bails out as soon as all three edges
// are covered.
func (s *searchState) dfsCollectEdges(start int, player uint8) uint8 {
	var edgesMask uint8

	s.stack = s.stack[:0]
	s.stack = append(s.stack, start)
	s.visited[start] = true

	for len(s.stack) > 0 {
		idx := s.stack[len(s.stack)-1]
		s.stack = s.stack[:len(s.stack)-1]

		edgesMask |= s.edges[idx]
		if edgesMask == allEdges {
			return edgesMask
		}

		for _, neighbor := range s.neighbors[idx] {
			if s.owner[neighbor] == player && !s.visited[neighbor] {
				s.visited[neighbor] = true
				s.stack = append(s.stack, neighbor)
			}
		}
	}

	return edgesMask
}
