package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/starpusher/internal/platform/web"
)

var flagWebAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the HTTP and websocket server",
	Long: `Start an HTTP server with a JSON API over packs and solves, and
websocket play.

Endpoints:
  GET /health
  GET /packs
  GET /packs/{pack}/levels
  GET /packs/{pack}/levels/{level}/solves?limit=N
  GET /play/{pack}?level=N&player=NAME   (websocket)

Websocket commands are JSON objects such as
  {"action": "move", "direction": "left"}
  {"action": "turn", "direction": "right"}
  {"action": "grab"}  {"action": "undo"}  {"action": "select", "level": 3}

Examples:
  starpusher web
  starpusher web --addr :9090`,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP listen address (host:port)")
}

func runWeb(cmd *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := web.DefaultConfig()
	cfg.Address = flagWebAddr
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return web.NewServer(cfg, store, logger.WithPrefix("starpusher-web")).ListenAndServe(ctx)
}
