package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"
)

// The websocket speaks a line protocol, one command per line:
//
//	g       resend the current position
//	o x y   open the cell at row x, column y
//	f x y   toggle a flag
//	c x y   chord-reveal around a revealed number
type wsCommand struct {
	op   string
	x, y int
}

func parseWsCommand(line string) (*wsCommand, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil, fmt.Errorf("empty command")
	}
	cmd := &wsCommand{op: parts[0]}
	switch cmd.op {
	case "g":
		if len(parts) != 1 {
			return nil, fmt.Errorf("%q takes no arguments", cmd.op)
		}
		return cmd, nil
	case "o", "f", "c":
		if len(parts) != 3 {
			return nil, fmt.Errorf("%q takes two arguments", cmd.op)
		}
		var err error
		if cmd.x, err = strconv.Atoi(parts[1]); err != nil {
			return nil, fmt.Errorf("first argument must be an int")
		}
		if cmd.y, err = strconv.Atoi(parts[2]); err != nil {
			return nil, fmt.Errorf("second argument must be an int")
		}
		return cmd, nil
	}
	return nil, fmt.Errorf("unknown command %q", cmd.op)
}

func (cmd wsCommand) move() (GameMove, Position) {
	var m GameMove
	switch cmd.op {
	case "o":
		m = Open
	case "f":
		m = Flag
	case "c":
		m = Chord
	}
	return m, Position{X: cmd.x, Y: cmd.y}
}

// ConnectWS upgrades the request and plays the session over a
// websocket, pushing the position back after every batch of commands.
func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	session, state, ok := g.loadSession(w, r)
	if !ok {
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Error("unable to upgrade connection", "error", err)
		return
	}
	defer c.Close()

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				g.logger.Warn("abnormal ws break", "error", err)
			}
			return
		}
		if mt != websocket.TextMessage {
			return
		}

		for _, line := range strings.Split(strings.TrimSpace(string(message)), "\n") {
			cmd, err := parseWsCommand(line)
			if err != nil {
				if werr := c.WriteJSON(wrapError(err)); werr != nil {
					g.logger.Error("unable to write json", "error", werr)
					return
				}
				continue
			}
			if cmd.op == "g" || session.Dead || session.Won {
				continue
			}
			move, pos := cmd.move()
			session, err = g.applyMove(r, session, state, move, pos)
			if err != nil {
				g.logger.Error("unable to update game session", "error", err)
				return
			}
		}

		if err := c.WriteJSON(NewGameSessionDTO(session, state)); err != nil {
			g.logger.Error("unable to write json", "error", err)
			return
		}
	}
}
