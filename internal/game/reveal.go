package game

import "github.com/gammazero/deque"

// neighborhood in row-major order: up-left, up, up-right, left, right,
// down-left, down, down-right.
var directions = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Reveal opens the cell at (x, y) and reports whether that cell held a
// mine. The first call of a session places the mines first, anchored
// at (x, y), so it never returns true.
//
// Out-of-bounds coordinates and cells already revealed or flagged are
// silent no-ops. Revealing a 0-valued cell cascades through its whole
// zero region and that region's numbered border; a cascade can never
// reach a mine, since a mine's neighbors are all numbered.
func (s *GameSession) Reveal(x, y int) bool {
	if !s.Placed {
		s.placeMines(x, y)
	}
	if !s.InBounds(x, y) {
		return false
	}
	c := &s.Board[x][y]
	if c.Revealed || c.Flagged {
		return false
	}
	c.Revealed = true
	s.Revealed++
	if c.Value == Mine {
		return true
	}
	if c.Value == 0 {
		s.floodFrom(x, y)
	}
	return false
}

// floodFrom opens everything reachable from an already-revealed
// 0-valued cell. A worklist replaces the obvious recursion to keep the
// call stack flat on large boards.
func (s *GameSession) floodFrom(x, y int) {
	var q deque.Deque[[2]int]
	q.PushBack([2]int{x, y})
	for q.Len() > 0 {
		p := q.PopFront()
		for _, d := range directions {
			nx, ny := p[0]+d[0], p[1]+d[1]
			if !s.InBounds(nx, ny) {
				continue
			}
			n := &s.Board[nx][ny]
			if n.Revealed || n.Flagged {
				continue
			}
			n.Revealed = true
			s.Revealed++
			if n.Value == 0 {
				q.PushBack([2]int{nx, ny})
			}
		}
	}
}

// ChordReveal opens all unflagged neighbors of a revealed numbered
// cell, provided exactly as many of its neighbors are flagged as its
// number says. It reports whether any of those reveals hit a mine;
// every qualifying neighbor is opened regardless of earlier hits. On
// any other center cell it does nothing and reports false.
func (s *GameSession) ChordReveal(x, y int) bool {
	if !s.InBounds(x, y) {
		return false
	}
	c := s.Board[x][y]
	if !c.Revealed || c.Value < 1 {
		return false
	}
	flagged := 0
	for _, d := range directions {
		nx, ny := x+d[0], y+d[1]
		if s.InBounds(nx, ny) && s.Board[nx][ny].Flagged {
			flagged++
		}
	}
	if flagged != int(c.Value) {
		return false
	}
	hit := false
	for _, d := range directions {
		nx, ny := x+d[0], y+d[1]
		if !s.InBounds(nx, ny) {
			continue
		}
		if n := s.Board[nx][ny]; n.Flagged || n.Revealed {
			continue
		}
		if s.Reveal(nx, ny) {
			hit = true
		}
	}
	return hit
}

// ToggleFlag flips the flag on an unrevealed cell. Before the first
// reveal has placed the mines, out of bounds, or on a revealed cell it
// does nothing. Nothing stops a player flagging more cells than there
// are mines.
func (s *GameSession) ToggleFlag(x, y int) {
	if !s.Placed || !s.InBounds(x, y) {
		return
	}
	c := &s.Board[x][y]
	if c.Revealed {
		return
	}
	if c.Flagged {
		c.Flagged = false
		s.Flags--
	} else {
		c.Flagged = true
		s.Flags++
	}
}
