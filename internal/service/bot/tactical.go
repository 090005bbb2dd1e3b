package bot

import "log"

// tacticalMove runs the cheap two-sided one-ply scan before deep search:
// take an immediate win if one exists, otherwise deny the opponent's
// immediate win. Returns the cell index, or -1 when neither case applies.
// The snapshot is fully restored before returning.
func tacticalMove(s *searchState) int {
	moves := s.collectMoves(nil)

	for _, idx := range moves {
		s.makeMove(idx, s.botID)
		win := s.checkWin(s.botID)
		s.undoMove(idx)
		if win {
			log.Printf("[BOT] instant win at cell %d", idx)
			return idx
		}

		s.makeMove(idx, s.oppID)
		threat := s.checkWin(s.oppID)
		s.undoMove(idx)
		if threat {
			log.Printf("[BOT] blocking immediate threat at cell %d", idx)
			return idx
		}
	}

	return -1
}
