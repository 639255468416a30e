package main

import (
	"github.com/spf13/cobra"

	mcpserver "github.com/vovakirdan/starpusher/internal/platform/mcp"
)

var (
	flagMCPPack   string
	flagMCPLevel  int
	flagMCPPlayer string
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the game as MCP tools over stdio",
	Long: `Start a Model Context Protocol server on stdin/stdout. An MCP client
can list packs, pick a level and play it with the move, turn, grab, undo
and reset_level tools. Solves are recorded under --player.

Logs go to stderr, stdout carries the protocol.

Examples:
  starpusher mcp
  starpusher mcp --pack switches --level 2`,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&flagMCPPack, "pack", "classic", "Pack to open")
	mcpCmd.Flags().IntVar(&flagMCPLevel, "level", 0, "Level to open (1-indexed)")
	mcpCmd.Flags().StringVar(&flagMCPPlayer, "player", "mcp", "Name recorded with solves")
}

func runMCP(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := mcpserver.DefaultConfig()
	cfg.Pack = flagMCPPack
	cfg.Level = flagMCPLevel
	cfg.Player = flagMCPPlayer
	cfg.Seed = flagSeed

	server, err := mcpserver.NewServer(cfg, store, logger.WithPrefix("starpusher-mcp"))
	if err != nil {
		return err
	}
	return server.ServeStdio()
}
