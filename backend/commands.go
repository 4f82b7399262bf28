package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string

	decideInput      string
	decideSide       int
	decideDifficulty string
	decideWinLength  int

	rootCmd = &cobra.Command{
		Use:               "kuro",
		Short:             "Line game decision engine and game server",
		SilenceUsage:      true,
		PersistentPreRunE: loadRuntimeConfig,
		RunE:              runServe,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP and websocket API",
		RunE:  runServe,
	}

	decideCmd = &cobra.Command{
		Use:   "decide",
		Short: "Print the engine's move for a board read from a JSON file or stdin",
		Long: `decide reads {"board": [[0,1,2],...], "side": 1, "difficulty": "standard",
"win_length": 3} and prints the chosen move as JSON. 0 is empty, 1 is X, 2 is O.`,
		RunE: runDecide,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML or JSON config file")

	decideCmd.Flags().StringVarP(&decideInput, "input", "i", "-", "request file, - for stdin")
	decideCmd.Flags().IntVar(&decideSide, "side", 0, "override side to move (1=X, 2=O)")
	decideCmd.Flags().StringVar(&decideDifficulty, "difficulty", "", "override difficulty (easy|standard)")
	decideCmd.Flags().IntVar(&decideWinLength, "win-length", 0, "override win length")

	rootCmd.AddCommand(serveCmd, decideCmd)
}

func loadRuntimeConfig(cmd *cobra.Command, args []string) error {
	config, err := LoadConfig(configPath)
	if err != nil {
		return err
	}
	configStore.Update(config)
	slog.SetDefault(newLogger(config))
	return nil
}

func runDecide(cmd *cobra.Command, args []string) error {
	var (
		data []byte
		err  error
	)
	if decideInput == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(decideInput)
	}
	if err != nil {
		return fmt.Errorf("read request: %w", err)
	}
	var payload decideRequest
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("parse request: %w", err)
	}
	if decideSide != 0 {
		payload.Side = decideSide
	}
	if decideDifficulty != "" {
		payload.Difficulty = decideDifficulty
	}
	if decideWinLength != 0 {
		payload.WinLength = decideWinLength
	}

	response, err := decide(payload, GetConfig())
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(response)
}
