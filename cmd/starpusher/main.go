// starpusher is a Sokoban-style puzzle game for the terminal: push every
// star onto a goal, grab and swing stars around, open doors with buttons.
//
// Usage:
//
//	starpusher list               - List level packs
//	starpusher levels <pack>      - List the levels of a pack
//	starpusher play <pack>        - Play a pack
//	starpusher menu               - Pick packs and levels interactively
//	starpusher scores <pack>      - Show best solutions
//	starpusher serve              - Start SSH server for remote play
//	starpusher web                - Start HTTP/websocket server
//	starpusher mcp                - Serve the game as MCP tools on stdio
//
// Global flags:
//
//	--config <path>      - Config YAML (default: search order)
//	--difficulty <name>  - easy, normal or hard
//	--levels <path>      - Extra level file or directory of level files
//	--fps <rate>         - Set tick rate (default: 30)
//	--seed <value>       - Set RNG seed for the scenery
//	--db <path>          - Set database path (default: ~/.starpusher/solves.db)
//	--log-level <level>  - debug, info, warn or error
//	--log-file <path>    - Log file for play and menu
//	--theme <name>       - default or mono
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig     string
	flagDifficulty string
	flagLevels     string
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagLogLevel   string
	flagLogFile    string
	flagTheme      string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "starpusher",
	Short: "Star Pusher - push stars onto goals in your terminal",
	Long: `Star Pusher is a Sokoban-style puzzle game. Push every star onto a
goal to solve a level. You can also grab a star, carry it and swing it
around you, and open doors by resting something on a button.

Available commands:
  list     - Show all level packs
  levels   - Show the levels of a pack
  play     - Play a pack directly
  menu     - Interactive pack and level picker
  scores   - View best solutions
  serve    - Start SSH server for remote play
  web      - Start HTTP server with websocket play
  mcp      - Serve the game to an MCP client over stdio

Examples:
  starpusher list
  starpusher play classic
  starpusher play switches --level 3
  starpusher menu --difficulty easy
  starpusher play my-levels --levels ./my-levels.txt
  starpusher serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Extra level file or directory to load as packs")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.starpusher/solves.db", "Path to solves database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write play and menu logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagTheme, "theme", "default", "Colour theme: default, mono")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(mcpCmd)
}
