package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"disview/internal/config"
	"disview/internal/logging"
	"disview/internal/ui/colorize"
	"disview/internal/view"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [file]",
	Short: "Print the disassembly listing and exit",
	Long: `Dump probes the file and, if the backend recognizes it, prints the
full disassembly listing to stdout.`,
	Example: `
# Colorized listing
disview dump /tmp/a.out

# Raw backend output, suitable for piping
disview dump --raw /tmp/a.out | grep '<main>:'
  `,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetBool("raw")
		return runDump(cmd.Context(), args[0], raw)
	},
}

func init() {
	dumpCmd.Flags().Bool("raw", false, "Skip colorization")
	rootCmd.AddCommand(dumpCmd)
}

func runDump(ctx context.Context, path string, raw bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	logger := logging.NewLogger()
	defer logger.Close()

	hook := view.NewHook(config.FromEnv())
	v, res, err := hook.Open(ctx, path)
	if err != nil {
		return err
	}
	if v == nil {
		logger.Debug("probe rejected", "path", path, "reason", res.Reason)
		return fmt.Errorf("cannot disassemble %s: %s", path, res.Reason)
	}
	defer v.Teardown()

	logger.Debug("disassembled", "path", res.Identity.Path,
		"bytes", len(v.Content()), "symbols", len(v.Symbols()))

	text := v.Content()
	if !raw {
		text = colorize.Listing(text)
	}
	fmt.Fprint(os.Stdout, text)
	return nil
}
