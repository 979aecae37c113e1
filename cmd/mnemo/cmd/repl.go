package cmd

import (
	"os"

	"github.com/bastiangx/mnemo/internal/cli"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func newReplCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Try words interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if limit <= 0 {
				limit = a.cfg.CLI.DefaultLimit
			}
			log.SetReportTimestamp(false)
			log.Debug("Input info:", "limit", limit, "split", a.cfg.CLI.DefaultSplit)

			h := cli.NewInputHandler(a.engine, a.lookup, limit, a.cfg.CLI.DefaultSplit, os.Stderr)
			return h.Start(cmd.Context(), os.Stdin)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Associations shown per piece (default from config)")
	return cmd
}
