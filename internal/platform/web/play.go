package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/starpusher/internal/core"
	"github.com/vovakirdan/starpusher/internal/games/starpusher"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Command is a message from the client.
type Command struct {
	Action    string `json:"action"`
	Direction string `json:"direction,omitempty"`
	Level     int    `json:"level,omitempty"` // 1-indexed, for "select"
}

// Reply is a message to the client.
type Reply struct {
	Type   string               `json:"type"` // "state" or "error"
	State  *starpusher.Snapshot `json:"state,omitempty"`
	Events []string             `json:"events,omitempty"`
	Error  string               `json:"error,omitempty"`
}

// conn serializes writes to one websocket connection.
type conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *conn) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteJSON(v)
}

func (c *conn) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// play upgrades to a websocket and runs one game for the connection.
// Query parameters: level (1-indexed start level), player (name for records).
func (s *Server) play(w http.ResponseWriter, r *http.Request) {
	g, ok := s.createGame(w, chi.URLParam(r, "pack"))
	if !ok {
		return
	}

	start := 0
	if v := r.URL.Query().Get("level"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > g.LevelCount() {
			respondError(w, http.StatusBadRequest, "invalid level")
			return
		}
		start = n
	}
	player := r.URL.Query().Get("player")
	if player == "" {
		player = "web"
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "err", err)
		return
	}
	c := &conn{ws: ws}
	defer ws.Close()

	seed := s.config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: s.config.TickRate, Seed: seed})
	if start > 0 {
		//nolint:errcheck // Range checked above
		g.SelectLevel(start - 1)
	}

	s.logger.Info("web session started", "pack", g.ID(), "player", player, "remote", r.RemoteAddr)
	defer s.logger.Info("web session ended", "pack", g.ID(), "player", player, "remote", r.RemoteAddr)

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := c.ping(); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	ws.SetReadLimit(maxMessageSize)
	ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	snap := g.Snapshot()
	if err := c.writeJSON(Reply{Type: "state", State: &snap}); err != nil {
		return
	}

	for {
		var cmd Command
		if err := ws.ReadJSON(&cmd); err != nil {
			if isDecodeError(err) {
				// Bad JSON: tell the client and keep the game.
				if c.writeJSON(Reply{Type: "error", Error: "invalid message"}) != nil {
					return
				}
				continue
			}
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				s.logger.Warn("websocket read", "err", err)
			}
			return
		}
		ws.SetReadDeadline(time.Now().Add(pongWait))

		if err := c.writeJSON(s.handleCommand(g, cmd, player)); err != nil {
			return
		}
	}
}

// handleCommand applies one client command and builds the reply.
func (s *Server) handleCommand(g *starpusher.Game, cmd Command, player string) Reply {
	switch cmd.Action {
	case "state":
		snap := g.Snapshot()
		return Reply{Type: "state", State: &snap}
	case "select":
		if err := g.SelectLevel(cmd.Level - 1); err != nil {
			return Reply{Type: "error", Error: err.Error()}
		}
		snap := g.Snapshot()
		return Reply{Type: "state", State: &snap, Events: []string{core.EventLevelChanged.String()}}
	}

	a, err := starpusher.ParseCommand(cmd.Action, cmd.Direction)
	if err != nil {
		return Reply{Type: "error", Error: err.Error()}
	}
	snap, events := g.Apply(a)
	s.recordSolves(g, events, player)

	reply := Reply{Type: "state", State: &snap}
	for _, ev := range events {
		reply.Events = append(reply.Events, ev.Kind.String())
	}
	return reply
}

// isDecodeError reports whether err came from decoding a message rather
// than from the connection.
func isDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}
