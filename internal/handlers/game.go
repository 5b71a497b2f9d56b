package handlers

import (
	"errors"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/OresteGabo/minesweeperpro/internal/config"
	"github.com/OresteGabo/minesweeperpro/internal/game"
	"github.com/OresteGabo/minesweeperpro/internal/middleware"
	"github.com/OresteGabo/minesweeperpro/internal/repository"
)

type GameHandler struct {
	logger *slog.Logger
	repo   *repository.Queries
	ws     *config.WebSocket
	rnd    *rand.Rand
}

func NewGameHandler(
	logger *slog.Logger,
	db *pgxpool.Pool,
	ws *config.WebSocket,
	rnd *rand.Rand,
) *GameHandler {
	return &GameHandler{
		logger: logger,
		repo:   repository.New(db),
		ws:     ws,
		rnd:    rnd,
	}
}

// NewGame creates a blank session. No starting position is needed:
// mines are placed by the first "open" move, which keeps the first
// click safe.
func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	params, err := ParseNewGameParams(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	state, err := game.New(params.Width, params.Height, params.MineCount, g.rnd)
	if errors.Is(err, game.ErrInvalidBoardSize) || errors.Is(err, game.ErrInvalidMineCount) {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to create a game session", "error", err)
		return
	}

	var playerId *int64
	if claims, ok := middleware.PlayerClaims(r); ok {
		playerId = &claims.PlayerId
		state.CurrentPlayer = claims.Username
	}

	session, err := g.repo.CreateGameSession(r.Context(), state, playerId)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to store game session", "error", err)
		return
	}

	sendJSONOrLog(w, g.logger, NewGameSessionDTO(session, state))
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	session, state, ok := g.loadSession(w, r)
	if !ok {
		return
	}
	sendJSONOrLog(w, g.logger, NewGameSessionDTO(session, state))
}

func (g GameHandler) MakeAMove(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	move, err := ParseGameMove(query.Get("move"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	pos, err := ParsePosition(query)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	session, state, ok := g.loadSession(w, r)
	if !ok {
		return
	}

	if session.Dead || session.Won {
		// Finished games are immutable; send the final position back.
		sendJSONOrLog(w, g.logger, NewGameSessionDTO(session, state))
		return
	}

	session, err = g.applyMove(r, session, state, move, pos)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to update game session", "error", err)
		return
	}

	sendJSONOrLog(w, g.logger, NewGameSessionDTO(session, state))
}

// Forfeit marks a running session dead without touching the board, so
// the engine's counters stay coherent.
func (g GameHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
	session, state, ok := g.loadSession(w, r)
	if !ok {
		return
	}

	if !session.Dead && !session.Won {
		dead := true
		now := time.Now().UTC()
		updated, err := g.repo.UpdateGameSession(
			r.Context(), session.GameSessionId,
			repository.UpdateGameSessionParams{Dead: &dead, EndedAt: &now},
		)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			g.logger.Error("unable to update game session", "error", err)
			return
		}
		session = updated
	}

	sendJSONOrLog(w, g.logger, NewGameSessionDTO(session, state))
}

func (g GameHandler) Highscores(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := repository.HighscoreFilter{}

	if query.Has("username") {
		username := query.Get("username")
		filter.Username = &username
	}
	if query.Has("width") {
		params, err := ParseNewGameParams(query)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			sendJSONOrLog(w, g.logger, wrapError(err))
			return
		}
		filter.Board = &repository.BoardParams{
			Width:     params.Width,
			Height:    params.Height,
			MineCount: params.MineCount,
		}
	}

	highscores, err := g.repo.GetHighscores(r.Context(), filter)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to fetch highscores", "error", err)
		return
	}

	sendJSONOrLog(w, g.logger, highscores)
}

// loadSession fetches the stored session named by the {id} path value
// and revives the engine state from its snapshot.
func (g GameHandler) loadSession(
	w http.ResponseWriter, r *http.Request,
) (*repository.GameSession, *game.GameSession, bool) {
	sessionId, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return nil, nil, false
	}

	session, err := g.repo.FetchGameSession(r.Context(), sessionId)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return nil, nil, false
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to fetch game session", "error", err)
		return nil, nil, false
	}

	state, err := game.Decode(session.State, g.rnd)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("stored game_session.state is invalid", "error", err)
		return nil, nil, false
	}

	return session, state, true
}

// applyMove runs one engine operation against the revived state and
// persists the outcome. Playtime is measured here, against the stored
// started_at; the engine itself has no clock.
func (g GameHandler) applyMove(
	r *http.Request,
	session *repository.GameSession,
	state *game.GameSession,
	move GameMove,
	pos Position,
) (*repository.GameSession, error) {
	var dead bool
	switch move {
	case Open:
		dead = state.Reveal(pos.X, pos.Y)
	case Flag:
		state.ToggleFlag(pos.X, pos.Y)
	case Chord:
		dead = state.ChordReveal(pos.X, pos.Y)
	}
	won := !dead && state.Won()

	params := repository.UpdateGameSessionParams{}
	if dead || won {
		now := time.Now().UTC()
		params.Dead = &dead
		params.Won = &won
		params.EndedAt = &now

		state.CurrentTimeSeconds = int64(now.Sub(session.StartedAt.Time) / time.Second)
		if won && (state.BestTimeSeconds == 0 ||
			state.CurrentTimeSeconds < state.BestTimeSeconds) {
			state.BestTimeSeconds = state.CurrentTimeSeconds
			state.BestPlayer = state.CurrentPlayer
		}
	}

	b, err := state.Bytes()
	if err != nil {
		return nil, err
	}
	params.State = &b

	return g.repo.UpdateGameSession(r.Context(), session.GameSessionId, params)
}
