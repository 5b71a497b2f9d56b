package game

import (
	"errors"
	"math/rand/v2"
	"testing"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func mustSession(t *testing.T, width, height, mineCount int) *GameSession {
	t.Helper()
	s, err := New(width, height, mineCount, testRand())
	if err != nil {
		t.Fatalf("could not create %dx%d(%d) session: %v", width, height, mineCount, err)
	}
	return s
}

// craft builds a session with mines at the given (x, y) positions and
// neighbor counts derived, bypassing random placement.
func craft(t *testing.T, width, height int, mines [][2]int) *GameSession {
	t.Helper()
	s, err := New(width, height, len(mines), testRand())
	if err != nil {
		t.Fatalf("could not create session: %v", err)
	}
	for _, m := range mines {
		s.Board[m[0]][m[1]].Value = Mine
	}
	for x := range s.Height {
		for y := range s.Width {
			if s.Board[x][y].Value != Mine {
				s.Board[x][y].Value = CellValue(s.countAdjacentMines(x, y))
			}
		}
	}
	s.Placed = true
	return s
}

func countMines(s *GameSession) (n int) {
	for x := range s.Height {
		for y := range s.Width {
			if s.Board[x][y].Value == Mine {
				n++
			}
		}
	}
	return n
}

func TestNewValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                     string
		width, height, mineCount int
		err                      error
	}{
		{"zero width", 0, 5, 1, ErrInvalidBoardSize},
		{"zero height", 5, 0, 1, ErrInvalidBoardSize},
		{"negative dims", -3, -3, 1, ErrInvalidBoardSize},
		{"zero mines", 9, 9, 0, ErrInvalidMineCount},
		{"negative mines", 9, 9, -4, ErrInvalidMineCount},
		{"too many mines", 9, 9, 41, ErrInvalidMineCount},
		{"1x1 has no room", 1, 1, 1, ErrInvalidMineCount},
		{"single mine", 9, 9, 1, nil},
		{"half the board", 9, 9, 40, nil},
		{"beginner", 9, 9, 10, nil},
		{"expert", 16, 30, 99, nil},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			s, err := New(test.width, test.height, test.mineCount, testRand())
			if !errors.Is(err, test.err) {
				t.Fatalf("have error %v, want %v", err, test.err)
			}
			if test.err != nil {
				return
			}
			if s.Placed || s.Revealed != 0 || s.Flags != 0 {
				t.Errorf("new session is not blank: %+v", s)
			}
			for x := range s.Height {
				for y := range s.Width {
					if c := s.Board[x][y]; c.Value != 0 || c.Revealed || c.Flagged {
						t.Fatalf("cell (%d,%d) not blank: %+v", x, y, c)
					}
				}
			}
		})
	}
}

func TestMinePlacement(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                     string
		width, height, mineCount int
	}{
		{"9x9(10)", 9, 9, 10},
		{"16x16(40)", 16, 16, 40},
		{"30x16(99)", 30, 16, 99},
		{"30x16(170)", 30, 16, 170},
		{"4x4(8)", 4, 4, 8},
		{"5x1(2)", 5, 1, 2},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			for x0 := range test.height {
				for y0 := range test.width {
					s := mustSession(t, test.width, test.height, test.mineCount)
					s.Reveal(x0, y0)

					if !s.Placed {
						t.Fatal("first reveal did not place mines")
					}
					if n := countMines(s); n != test.mineCount {
						t.Fatalf("board @ %d:%d holds %d mines, want %d", x0, y0, n, test.mineCount)
					}
					if s.Board[x0][y0].Value == Mine {
						t.Fatalf("first click @ %d:%d landed on a mine", x0, y0)
					}

					// Neighbor counts must match an exhaustive scan.
					for x := range s.Height {
						for y := range s.Width {
							c := s.Board[x][y]
							if c.Value == Mine {
								continue
							}
							if want := s.countAdjacentMines(x, y); int(c.Value) != want {
								t.Fatalf("cell (%d,%d) counts %d, scan says %d", x, y, c.Value, want)
							}
						}
					}
				}
			}
		})
	}
}

func TestFirstClickSafeZone(t *testing.T) {
	t.Parallel()

	// 9x9 with 10 mines always has room to keep the whole 3x3 zone
	// clear, wherever the first click lands.
	for x0 := range 9 {
		for y0 := range 9 {
			s := mustSession(t, 9, 9, 10)
			s.Reveal(x0, y0)
			for dx := -1; dx <= 1; dx++ {
				for dy := -1; dy <= 1; dy++ {
					x, y := x0+dx, y0+dy
					if !s.InBounds(x, y) {
						continue
					}
					if s.Board[x][y].Value == Mine {
						t.Fatalf("mine at (%d,%d) inside safe zone of first click (%d,%d)", x, y, x0, y0)
					}
				}
			}
		}
	}
}

func TestTinyBoardPlacementTerminates(t *testing.T) {
	t.Parallel()

	// 3x3 with 4 mines: a center click's full safe zone would cover
	// the whole board, so it must degrade to the clicked cell alone.
	s := mustSession(t, 3, 3, 4)
	if s.Reveal(1, 1) {
		t.Fatal("first click hit a mine")
	}
	if n := countMines(s); n != 4 {
		t.Fatalf("placed %d mines, want 4", n)
	}
}

func TestFloodFillClosure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                     string
		width, height, mineCount int
	}{
		{"9x9(10)", 9, 9, 10},
		{"16x16(40)", 16, 16, 40},
		{"30x16(99)", 30, 16, 99},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			s := mustSession(t, test.width, test.height, test.mineCount)
			s.Reveal(test.height/2, test.width/2)

			revealed := 0
			for x := range s.Height {
				for y := range s.Width {
					c := s.Board[x][y]
					if c.Revealed {
						revealed++
					}
					// Every revealed zero cell's neighborhood is fully
					// revealed, and every unrevealed cell borders no
					// revealed zero cell: together these pin the
					// revealed set to exactly the zero-region closure.
					if c.Revealed && c.Value == 0 {
						for _, d := range directions {
							nx, ny := x+d[0], y+d[1]
							if s.InBounds(nx, ny) && !s.Board[nx][ny].Revealed {
								t.Fatalf("zero cell (%d,%d) has unrevealed neighbor (%d,%d)", x, y, nx, ny)
							}
						}
					}
					if !c.Revealed {
						for _, d := range directions {
							nx, ny := x+d[0], y+d[1]
							if s.InBounds(nx, ny) &&
								s.Board[nx][ny].Revealed && s.Board[nx][ny].Value == 0 {
								t.Fatalf("unrevealed cell (%d,%d) borders revealed zero cell (%d,%d)", x, y, nx, ny)
							}
						}
					}
				}
			}
			if revealed != s.Revealed {
				t.Errorf("session counts %d revealed cells, scan says %d", s.Revealed, revealed)
			}
		})
	}
}

func TestRevealNoops(t *testing.T) {
	t.Parallel()

	s := craft(t, 4, 4, [][2]int{{3, 3}})

	if s.Reveal(-1, 0) || s.Reveal(0, -1) || s.Reveal(4, 0) || s.Reveal(0, 4) {
		t.Error("out-of-bounds reveal reported a mine hit")
	}
	if s.Revealed != 0 {
		t.Fatalf("out-of-bounds reveal changed state: %d cells revealed", s.Revealed)
	}

	s.Reveal(2, 2) // numbered cell next to the mine, no cascade
	if !s.Board[2][2].Revealed || s.Revealed != 1 {
		t.Fatalf("numbered reveal: revealed=%d", s.Revealed)
	}
	s.Reveal(2, 2)
	if s.Revealed != 1 {
		t.Error("re-revealing a revealed cell changed state")
	}

	s.ToggleFlag(3, 2)
	if s.Reveal(3, 2) {
		t.Error("revealing a flagged cell reported a mine hit")
	}
	if c := s.Board[3][2]; c.Revealed || !c.Flagged {
		t.Errorf("revealing a flagged cell changed it: %+v", c)
	}
}

func TestRevealMine(t *testing.T) {
	t.Parallel()

	s := craft(t, 4, 4, [][2]int{{3, 3}})
	if !s.Reveal(3, 3) {
		t.Fatal("revealing a mine did not report the hit")
	}
	if !s.Board[3][3].Revealed {
		t.Error("mine cell not marked revealed")
	}
	if s.Revealed != 1 {
		t.Errorf("mine reveal cascaded: %d cells revealed", s.Revealed)
	}
}

func TestToggleFlag(t *testing.T) {
	t.Parallel()

	s := mustSession(t, 9, 9, 10)

	s.ToggleFlag(0, 0)
	if s.Board[0][0].Flagged || s.Flags != 0 {
		t.Fatal("flag before first reveal took effect")
	}

	s.Reveal(4, 4)

	s.ToggleFlag(-1, 5)
	s.ToggleFlag(5, 9)
	if s.Flags != 0 {
		t.Fatal("out-of-bounds flag took effect")
	}

	s.ToggleFlag(4, 4)
	if s.Board[4][4].Flagged || s.Flags != 0 {
		t.Fatal("flag on a revealed cell took effect")
	}

	var ux, uy int
	found := false
	for x := range s.Height {
		for y := range s.Width {
			if !s.Board[x][y].Revealed && !found {
				ux, uy, found = x, y, true
			}
		}
	}
	if !found {
		t.Fatal("no unrevealed cell to flag")
	}

	s.ToggleFlag(ux, uy)
	if !s.Board[ux][uy].Flagged || s.Flags != 1 {
		t.Fatalf("flag not set: flags=%d", s.Flags)
	}
	s.ToggleFlag(ux, uy)
	if s.Board[ux][uy].Flagged || s.Flags != 0 {
		t.Fatalf("flag not cleared: flags=%d", s.Flags)
	}
}

func TestMinesRemainingGoesNegative(t *testing.T) {
	t.Parallel()

	s := craft(t, 3, 3, [][2]int{{2, 2}})
	s.ToggleFlag(0, 0)
	s.ToggleFlag(0, 1)
	if r := s.MinesRemaining(); r != -1 {
		t.Errorf("have %d mines remaining, want -1", r)
	}
}
