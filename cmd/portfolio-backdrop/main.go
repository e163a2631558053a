package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"portfolio-backdrop/internal/config"
	"portfolio-backdrop/internal/utils"
)

var (
	// Global flags
	configPath  string
	debugFlag   bool
	logLevel    string
	inspectAddr string
	recordPath  string

	// settings is the resolved configuration, set by PersistentPreRunE.
	settings *config.Config
	// settingsPath is the file settings came from, "" for defaults.
	settingsPath string
)

var rootCmd = &cobra.Command{
	Use:   "portfolio-backdrop",
	Short: "Animated particle field backdrop",
	Long: `portfolio-backdrop renders a slowly rotating field of drifting particles
that shy away from the pointer, with a floating wireframe cube behind them.

Run without a subcommand to open a window. Use "terminal" to draw into the
current terminal and "headless" to run the simulation without any display.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		utils.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWindow(cmd.Context())
	},
}

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Open a raylib window (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWindow(cmd.Context())
	},
}

var terminalCmd = &cobra.Command{
	Use:   "terminal",
	Short: "Draw the field into the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTerminal(cmd.Context())
	},
}

var headlessFrames int

var headlessCmd = &cobra.Command{
	Use:   "headless",
	Short: "Run the simulation without a display",
	Long: `Steps the field on a wall-clock ticker and publishes frames to the
inspector and recorder only. With --frames 0 it runs until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(settings, settingsPath)
		if err != nil {
			return err
		}
		defer a.Close()
		return runHeadless(cmd.Context(), a, headlessFrames)
	},
}

var (
	replayPlay bool
	replayFPS  int
)

var replayCmd = &cobra.Command{
	Use:   "replay FILE",
	Short: "Summarise or play back a frame recording",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if replayPlay {
			return playRecording(cmd.Context(), args[0], replayFPS)
		}
		return summariseRecording(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to backdrop.yaml (default: search standard locations)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging and the debug overlay")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&inspectAddr, "inspect", "", "Serve the HTTP inspector on this address")
	rootCmd.PersistentFlags().StringVar(&recordPath, "record", "", "Record frames to this file")

	headlessCmd.Flags().IntVarP(&headlessFrames, "frames", "n", 0, "Stop after this many frames (0 = until interrupted)")
	replayCmd.Flags().BoolVar(&replayPlay, "play", false, "Play the recording in the terminal instead of summarising it")
	replayCmd.Flags().IntVar(&replayFPS, "fps", 60, "Playback rate for --play")

	rootCmd.AddCommand(windowCmd, terminalCmd, headlessCmd, replayCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
