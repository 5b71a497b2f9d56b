package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gorilla/schema"

	"github.com/OresteGabo/minesweeperpro/internal/game"
	"github.com/OresteGabo/minesweeperpro/internal/repository"
)

type NewGameParams struct {
	Width     int `schema:"width,required"`
	Height    int `schema:"height,required"`
	MineCount int `schema:"mine_count,required"`
}

func ParseNewGameParams(src map[string][]string) (NewGameParams, error) {
	var params NewGameParams
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&params, src)
	return params, err
}

type Position struct {
	X int `schema:"x,required"`
	Y int `schema:"y,required"`
}

func ParsePosition(src map[string][]string) (Position, error) {
	var pos Position
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&pos, src)
	return pos, err
}

type GameMove int

const (
	Open GameMove = iota
	Flag
	Chord
)

func ParseGameMove(s string) (GameMove, error) {
	switch s {
	case "open":
		return Open, nil
	case "flag":
		return Flag, nil
	case "chord":
		return Chord, nil
	}
	return 0, fmt.Errorf("unknown move %q", s)
}

type GameSessionDTO struct {
	GameSessionId  string   `json:"game_session_id"`
	Grid           []string `json:"grid"`
	Width          int      `json:"width"`
	Height         int      `json:"height"`
	MineCount      int      `json:"mine_count"`
	MinesRemaining int      `json:"mines_remaining"`
	Dead           bool     `json:"dead"`
	Won            bool     `json:"won"`
	StartedAt      int64    `json:"started_at"`
	EndedAt        *int64   `json:"ended_at,omitempty"`
}

// renderCell picks the glyph a client may see. Covered cells stay
// opaque while the game is live; a finished game discloses the mines
// and crosses out wrong flags.
func renderCell(c game.Cell, over bool) byte {
	switch {
	case c.Flagged:
		if over && c.Value != game.Mine {
			return 'x'
		}
		return '*'
	case c.Revealed && c.Value == game.Mine:
		return '!'
	case !c.Revealed:
		if over && c.Value == game.Mine {
			return 'o'
		}
		return '-'
	case c.Value == 0:
		return '.'
	default:
		return strconv.Itoa(int(c.Value))[0]
	}
}

func renderGrid(s *game.GameSession, over bool) []string {
	grid := make([]string, s.Height)
	for x := range s.Height {
		var row strings.Builder
		for y := range s.Width {
			row.WriteByte(renderCell(s.Board[x][y], over))
		}
		grid[x] = row.String()
	}
	return grid
}

func NewGameSessionDTO(
	session *repository.GameSession, state *game.GameSession,
) *GameSessionDTO {
	var endedAt *int64
	if session.EndedAt.Valid {
		e := session.EndedAt.Time.UnixMilli()
		endedAt = &e
	}
	return &GameSessionDTO{
		GameSessionId:  strconv.FormatInt(session.GameSessionId, 10),
		Grid:           renderGrid(state, session.Dead || session.Won),
		Width:          state.Width,
		Height:         state.Height,
		MineCount:      state.MineCount,
		MinesRemaining: state.MinesRemaining(),
		Dead:           session.Dead,
		Won:            session.Won,
		StartedAt:      session.StartedAt.Time.UnixMilli(),
		EndedAt:        endedAt,
	}
}
