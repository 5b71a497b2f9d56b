package game

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

// placeMines seeds the board with exactly MineCount mines, none of
// them inside the 3x3 safe zone around the anchor (x0, y0), then
// derives every non-mine cell's neighbor count. Runs once per session;
// later calls are no-ops.
//
// Placement enumerates the eligible cells and partially shuffles them
// instead of rejection-sampling random coordinates, so it terminates
// on any board the constructor accepts. On boards too small to keep
// the whole 3x3 zone mine-free the zone shrinks to the anchor cell
// alone, which the mine-count cap guarantees is always avoidable.
func (s *GameSession) placeMines(x0, y0 int) {
	if s.Placed {
		return
	}

	candidates := make([]int, 0, s.Width*s.Height)
	for x := range s.Height {
		for y := range s.Width {
			if absDiff(x, x0) > 1 || absDiff(y, y0) > 1 {
				candidates = append(candidates, x*s.Width+y)
			}
		}
	}
	if len(candidates) < s.MineCount {
		candidates = candidates[:0]
		for x := range s.Height {
			for y := range s.Width {
				if x != x0 || y != y0 {
					candidates = append(candidates, x*s.Width+y)
				}
			}
		}
	}

	k := len(candidates)
	for range s.MineCount {
		i := s.rnd.IntN(k)
		s.Board[candidates[i]/s.Width][candidates[i]%s.Width].Value = Mine
		k--
		candidates[i] = candidates[k]
	}

	for x := range s.Height {
		for y := range s.Width {
			if s.Board[x][y].Value != Mine {
				s.Board[x][y].Value = CellValue(s.countAdjacentMines(x, y))
			}
		}
	}

	s.Placed = true
}

func (s *GameSession) countAdjacentMines(x, y int) (n int) {
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if s.InBounds(x+dx, y+dy) && s.Board[x+dx][y+dy].Value == Mine {
				n++
			}
		}
	}
	return n
}
