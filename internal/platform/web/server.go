// Package web serves Star Pusher over HTTP: JSON endpoints to browse packs
// and records, and a websocket endpoint to play a pack remotely.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/vovakirdan/starpusher/internal/core"
	"github.com/vovakirdan/starpusher/internal/games/starpusher"
	"github.com/vovakirdan/starpusher/internal/registry"
	"github.com/vovakirdan/starpusher/internal/storage"
)

// Config holds configuration for the web server.
type Config struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// TickRate is only passed to games on Reset; remote play is turn based.
	TickRate int

	// Seed for cosmetic randomness. 0 picks a time-based seed per connection.
	Seed int64
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address:  ":8080",
		TickRate: 30,
	}
}

// Server is the HTTP frontend.
type Server struct {
	config Config
	store  *storage.Store
	logger *log.Logger
	router chi.Router
	http   *http.Server
}

// PackInfo describes a pack in GET /packs.
type PackInfo struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Levels       int    `json:"levels"`
	LevelsSolved int    `json:"levels_solved"`
}

// LevelInfo describes a level in GET /packs/{pack}/levels.
type LevelInfo struct {
	Level     int    `json:"level"` // 1-indexed
	Name      string `json:"name"`
	BestSteps *int   `json:"best_steps,omitempty"`
	BestBy    string `json:"best_by,omitempty"`
	Solves    int    `json:"solves"`
}

// SolveInfo is one row of GET /packs/{pack}/levels/{level}/solves.
type SolveInfo struct {
	Player    string    `json:"player"`
	Steps     int       `json:"steps"`
	CreatedAt time.Time `json:"created_at"`
}

// NewServer creates the server. store may be nil, in which case records
// are empty and solves are not kept.
func NewServer(cfg Config, store *storage.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		config: cfg,
		store:  store,
		logger: logger,
	}
	s.router = s.routes()
	return s
}

// routes configures all routes and returns the router.
func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(s.recoverer)
	r.Use(s.requestLogger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/packs", func(r chi.Router) {
		r.Get("/", s.listPacks)
		r.Get("/{pack}/levels", s.listLevels)
		r.Get("/{pack}/levels/{level}/solves", s.listSolves)
	})

	r.Get("/play/{pack}", s.play)

	return r
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.http = &http.Server{
		Addr:              s.config.Address,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting web server", "address", s.config.Address)
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}

func (s *Server) listPacks(w http.ResponseWriter, r *http.Request) {
	var stats map[string]*storage.PackStats
	if s.store != nil {
		var err error
		if stats, err = s.store.GetAllPackStats(); err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	packs := registry.List()
	out := make([]PackInfo, 0, len(packs))
	for _, p := range packs {
		info := PackInfo{ID: p.ID, Title: p.Title, Levels: p.Levels}
		if st, ok := stats[p.ID]; ok {
			info.LevelsSolved = st.LevelsSolved
		}
		out = append(out, info)
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) listLevels(w http.ResponseWriter, r *http.Request) {
	g, ok := s.createGame(w, chi.URLParam(r, "pack"))
	if !ok {
		return
	}

	best := map[int]storage.LevelBest{}
	if s.store != nil {
		bests, err := s.store.PackBests(g.ID())
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		for _, lb := range bests {
			best[lb.Level] = lb
		}
	}

	out := make([]LevelInfo, g.LevelCount())
	for i := range out {
		out[i] = LevelInfo{Level: i + 1, Name: g.LevelName(i)}
		if lb, ok := best[i]; ok {
			steps := lb.Steps
			out[i].BestSteps = &steps
			out[i].BestBy = lb.Player
			out[i].Solves = lb.Solves
		}
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) listSolves(w http.ResponseWriter, r *http.Request) {
	g, ok := s.createGame(w, chi.URLParam(r, "pack"))
	if !ok {
		return
	}
	level, err := strconv.Atoi(chi.URLParam(r, "level"))
	if err != nil || level < 1 || level > g.LevelCount() {
		respondError(w, http.StatusNotFound, "no such level")
		return
	}
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil || limit < 1 {
			respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
	}

	out := []SolveInfo{}
	if s.store != nil {
		solves, err := s.store.TopSolves(g.ID(), level-1, limit)
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		for _, sv := range solves {
			out = append(out, SolveInfo{Player: sv.Player, Steps: sv.Steps, CreatedAt: sv.CreatedAt})
		}
	}
	respondJSON(w, http.StatusOK, out)
}

// createGame instantiates a pack, writing a 404 when it does not exist.
func (s *Server) createGame(w http.ResponseWriter, packID string) (*starpusher.Game, bool) {
	g, err := registry.Create(packID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return nil, false
	}
	sp, ok := g.(*starpusher.Game)
	if !ok {
		respondError(w, http.StatusNotFound, "pack is not playable remotely")
		return nil, false
	}
	return sp, true
}

// recordSolves stores the solves among events. Failures are logged only.
func (s *Server) recordSolves(g *starpusher.Game, events []core.Event, player string) {
	for _, ev := range events {
		if ev.Kind != core.EventLevelSolved {
			continue
		}
		s.logger.Info("level solved", "pack", g.ID(), "level", ev.Level+1, "steps", ev.Steps, "player", player)
		if s.store == nil {
			continue
		}
		_, err := s.store.SaveSolve(storage.Solve{
			PackID:    g.ID(),
			Level:     ev.Level,
			LevelName: g.LevelName(ev.Level),
			Steps:     ev.Steps,
			Player:    player,
		})
		if err != nil {
			s.logger.Warn("save solve", "err", err)
		}
	}
}

// requestLogger logs each request after it completes.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

// recoverer turns handler panics into 500 responses.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic in handler", "path", r.URL.Path, "panic", rec)
				respondError(w, http.StatusInternalServerError, "internal error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// respondJSON writes a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // The client may have gone away
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error JSON response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
