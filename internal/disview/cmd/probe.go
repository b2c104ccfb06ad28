package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"disview/internal/backend"
	"disview/internal/config"
)

var probeCmd = &cobra.Command{
	Use:   "probe [file]",
	Short: "Report whether the backend can disassemble a file",
	Long: `Probe runs the recognition checks without producing a view and
prints the outcome. The exit status is nonzero when the file is rejected.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		prober := backend.NewProber(config.FromEnv())
		res := prober.Probe(cmd.Context(), args[0])

		fmt.Printf("%s: %s\n", args[0], res.Reason)
		if !res.OK {
			return fmt.Errorf("%s", res.Reason)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(probeCmd)
}
