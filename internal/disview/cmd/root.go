package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"disview/internal/config"
	dlog "disview/internal/disview/log"
)

var rootCmd = &cobra.Command{
	Use:   "disview [file]",
	Short: "Present binaries as navigable disassembly",
	Long: `Disview shows the disassembly of an executable or object file as a
read-only, symbol-navigable view. It probes whether the backend (objdump by
default) recognizes the file, runs it, and presents the listing; quitting
restores the original file identity.`,
	Example: `
# Open a binary in the interactive viewer
disview /tmp/a.out

# Check why a file is rejected
disview probe /etc/passwd

# Dump the listing to stdout
disview dump --raw /tmp/a.out
  `,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		debug, _ := cmd.Flags().GetBool("debug")
		dlog.Setup(debug)

		noTUI, _ := cmd.Flags().GetBool("no-tui")
		if noTUI || !term.IsTerminal(os.Stdout.Fd()) {
			return runDump(cmd.Context(), args[0], false)
		}

		cfg := config.FromEnv()
		program := tea.NewProgram(
			NewModel(cfg, args[0]),
			tea.WithAltScreen(),
			tea.WithContext(cmd.Context()),
		)

		if _, err := program.Run(); err != nil {
			slog.Error("TUI run error", "error", err)
			return fmt.Errorf("TUI error: %v", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	rootCmd.Flags().BoolP("no-tui", "n", false, "Print the listing instead of opening the viewer")
}

func Execute() {
	// Check if --no-tui flag is present, or if output is being piped,
	// to bypass fang's markdown rendering
	noTUI := false
	for _, arg := range os.Args[1:] {
		if arg == "--no-tui" || arg == "-n" {
			noTUI = true
			break
		}
	}

	if !noTUI && !term.IsTerminal(os.Stdout.Fd()) {
		noTUI = true
	}

	if noTUI {
		// Use cobra directly to avoid fang's automatic markdown rendering
		if err := rootCmd.Execute(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	} else {
		// Use fang for enhanced CLI experience with markdown rendering
		if err := fang.Execute(
			context.Background(),
			rootCmd,
			fang.WithNotifySignal(os.Interrupt),
		); err != nil {
			os.Exit(1)
		}
	}
}
