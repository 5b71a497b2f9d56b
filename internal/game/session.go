// Package game implements the minesweeper board engine: lazy mine
// placement anchored at the first revealed cell, worklist flood fill,
// chord reveals and win detection.
//
// Coordinates follow the original engine's convention: x indexes rows
// and runs over [0, Height), y indexes columns and runs over
// [0, Width). Callers iterating `for x in height, for y in width` get
// the board in its natural orientation.
package game

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
)

var (
	ErrInvalidBoardSize = errors.New("board must be at least 1x1")
	ErrInvalidMineCount = errors.New("mine count must be between 1 and half the cell count")
)

// GameSession owns one board for its whole life. Width, Height and
// MineCount never change after construction; a restart or a difficulty
// switch means building a fresh session.
//
// The session starts with an empty board. Mines are placed by the
// first Reveal call, anchored at its coordinates, so the first click
// can never hit a mine; Placed tracks that transition.
type GameSession struct {
	Width, Height int
	MineCount     int
	Board         [][]Cell // Board[x][y], x < Height, y < Width

	Placed   bool
	Revealed int // cells with Revealed set, maintained incrementally
	Flags    int

	// Caller-managed fields carried alongside the board. The engine
	// never reads or validates them.
	CurrentPlayer      string
	BestPlayer         string
	CurrentTimeSeconds int64
	BestTimeSeconds    int64

	rnd *rand.Rand
}

// New validates the requested shape and builds a blank session: every
// cell unrevealed, unflagged and worth 0 until the first reveal places
// the mines. A mine count above half the cell count is rejected so
// placement always has room outside the first click's safe zone.
func New(width, height, mineCount int, rnd *rand.Rand) (*GameSession, error) {
	if width < 1 || height < 1 {
		return nil, ErrInvalidBoardSize
	}
	if mineCount < 1 || mineCount > width*height/2 {
		return nil, ErrInvalidMineCount
	}
	board := make([][]Cell, height)
	for x := range board {
		board[x] = make([]Cell, width)
	}
	return &GameSession{
		Width:     width,
		Height:    height,
		MineCount: mineCount,
		Board:     board,
		rnd:       rnd,
	}, nil
}

func (s *GameSession) InBounds(x, y int) bool {
	return 0 <= x && x < s.Height && 0 <= y && y < s.Width
}

// CellAt reports the cell at (x, y), or false when out of bounds.
func (s *GameSession) CellAt(x, y int) (Cell, bool) {
	if !s.InBounds(x, y) {
		return Cell{}, false
	}
	return s.Board[x][y], true
}

func (s *GameSession) FlagCount() int {
	return s.Flags
}

// MinesRemaining is the display counter: total mines minus flags
// placed. Flagging is unbounded, so this may go negative.
func (s *GameSession) MinesRemaining() int {
	return s.MineCount - s.Flags
}

// SafeCellCount is the number of non-mine cells, i.e. how many reveals
// a winning game takes.
func (s *GameSession) SafeCellCount() int {
	return s.Width*s.Height - s.MineCount
}

// Won reports whether every non-mine cell has been revealed. Flags do
// not enter into it.
func (s *GameSession) Won() bool {
	return s.Revealed == s.Width*s.Height-s.MineCount
}

// Bytes gob-encodes the session for storage. The random source is not
// part of the snapshot; Decode re-attaches one.
func (s *GameSession) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s); err != nil {
		return nil, fmt.Errorf("unable to encode game session: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode restores a session from a [GameSession.Bytes] snapshot. rnd
// is only consulted if the session has not placed its mines yet.
func Decode(buf []byte, rnd *rand.Rand) (*GameSession, error) {
	var s GameSession
	if err := gob.NewDecoder(bytes.NewReader(buf)).Decode(&s); err != nil {
		return nil, fmt.Errorf("unable to decode game session: %w", err)
	}
	s.rnd = rnd
	return &s, nil
}

// String dumps the board as the player sees it, one row per line.
func (s *GameSession) String() string {
	var b strings.Builder
	for x := range s.Height {
		for y := range s.Width {
			fmt.Fprint(&b, s.Board[x][y].String(), " ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}
