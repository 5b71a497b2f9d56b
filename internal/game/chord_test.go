package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChordRequiresRevealedNumber(t *testing.T) {
	t.Parallel()

	s := craft(t, 4, 4, [][2]int{{0, 0}})

	if s.ChordReveal(1, 1) {
		t.Error("chord on an unrevealed cell reported a hit")
	}
	if s.Revealed != 0 {
		t.Fatal("chord on an unrevealed cell changed state")
	}

	// (3, 3) is far from the single mine, so it is a zero cell.
	s.Reveal(3, 3)
	before := s.Revealed
	if s.ChordReveal(3, 3) || s.Revealed != before {
		t.Error("chord on a zero cell took effect")
	}

	s.Board[0][0].Revealed = true
	s.Revealed++
	before = s.Revealed
	if s.ChordReveal(0, 0) || s.Revealed != before {
		t.Error("chord on a mine cell took effect")
	}

	if s.ChordReveal(-1, 2) || s.ChordReveal(2, 17) {
		t.Error("chord out of bounds took effect")
	}
}

func TestChordFlagCountMismatch(t *testing.T) {
	t.Parallel()

	s := craft(t, 3, 3, [][2]int{{0, 0}})

	s.Reveal(1, 1) // the "1" next to the mine
	before := s.Revealed

	// No flags around: nothing may change.
	if s.ChordReveal(1, 1) || s.Revealed != before {
		t.Fatal("chord with zero flags took effect")
	}

	// Two flags around a "1": still a mismatch.
	s.ToggleFlag(0, 0)
	s.ToggleFlag(0, 1)
	if s.ChordReveal(1, 1) || s.Revealed != before {
		t.Fatal("chord with surplus flags took effect")
	}
}

func TestChordRevealsUnflaggedNeighbors(t *testing.T) {
	t.Parallel()

	s := craft(t, 4, 4, [][2]int{{0, 0}})

	s.Reveal(1, 1)
	s.ToggleFlag(0, 0) // correct flag on the mine

	if s.ChordReveal(1, 1) {
		t.Fatal("correct chord reported a mine hit")
	}

	// All neighbors of (1,1) except the flagged mine must now be open,
	// and (2,2) is a zero cell so the cascade runs on to the rest of
	// the board.
	for x := range s.Height {
		for y := range s.Width {
			c := s.Board[x][y]
			if x == 0 && y == 0 {
				if c.Revealed || !c.Flagged {
					t.Fatalf("flagged mine disturbed: %+v", c)
				}
				continue
			}
			if !c.Revealed {
				t.Errorf("cell (%d,%d) not revealed after chord cascade", x, y)
			}
		}
	}
	if !s.Won() {
		t.Error("all safe cells revealed but session not won")
	}
}

func TestChordHitsMineUnderWrongFlag(t *testing.T) {
	t.Parallel()

	s := craft(t, 3, 3, [][2]int{{0, 0}})

	s.Reveal(1, 1)
	s.ToggleFlag(0, 1) // wrong cell flagged

	if !s.ChordReveal(1, 1) {
		t.Fatal("chord did not report the mine hit")
	}
	if !s.Board[0][0].Revealed {
		t.Error("mine cell not revealed by chord")
	}
	if c := s.Board[0][1]; !c.Flagged || c.Revealed {
		t.Errorf("flagged cell disturbed by chord: %+v", c)
	}
	// Every unflagged neighbor is processed even after the hit.
	for _, p := range [][2]int{{0, 2}, {1, 0}, {1, 2}, {2, 0}, {2, 1}, {2, 2}} {
		if !s.Board[p[0]][p[1]].Revealed {
			t.Errorf("neighbor (%d,%d) skipped after mine hit", p[0], p[1])
		}
	}
}

func TestWinScenario3x3(t *testing.T) {
	t.Parallel()

	// Single mine in the far corner: revealing (0,0) must cascade
	// through the whole board, leaving only the mine covered, with a
	// band of 1s around it.
	s := craft(t, 3, 3, [][2]int{{2, 2}})

	require.False(t, s.Won(), "blank session counts as won")
	require.False(t, s.Reveal(0, 0), "first reveal hit a mine")

	assert.Equal(t, 8, s.Revealed)
	assert.True(t, s.Won())

	wantValues := [3][3]CellValue{
		{0, 0, 0},
		{0, 1, 1},
		{0, 1, Mine},
	}
	for x := range 3 {
		for y := range 3 {
			c := s.Board[x][y]
			assert.Equal(t, wantValues[x][y], c.Value, "value at (%d,%d)", x, y)
			assert.Equal(t, !(x == 2 && y == 2), c.Revealed, "revealed at (%d,%d)", x, y)
		}
	}

	// The mine stays covered; winning never clears or places flags.
	assert.Zero(t, s.FlagCount())
}

func TestWinIgnoresFlags(t *testing.T) {
	t.Parallel()

	s := craft(t, 3, 3, [][2]int{{2, 2}})
	s.ToggleFlag(0, 0)
	s.ToggleFlag(0, 0) // toggled back off
	s.ToggleFlag(2, 2)

	s.Reveal(0, 0)
	if !s.Won() {
		t.Error("flag state affected win detection")
	}
	if s.Flags != 1 {
		t.Errorf("winning changed the flag counter: %d", s.Flags)
	}
	if !s.Board[2][2].Flagged {
		t.Error("winning cleared a flag")
	}
}
