package cmd

import (
	"github.com/bastiangx/mnemo/internal/cli"
	"github.com/bastiangx/mnemo/internal/utils"
	"github.com/spf13/cobra"
)

func newDefineCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "define <word>",
		Short:   "Show the closest real word and its definitions",
		Example: `  mnemo define paralize`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			h := cli.NewInputHandler(a.engine, a.lookup, a.cfg.CLI.DefaultLimit, a.cfg.CLI.DefaultSplit, cmd.OutOrStdout())
			h.ShowEntry(cmd.Context(), utils.NormalizeWord(args[0]), true)
			return nil
		},
	}
}

func newClosestCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "closest <word>",
		Short:   "Show the closest real word",
		Example: `  mnemo closest paralize`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			h := cli.NewInputHandler(a.engine, a.lookup, a.cfg.CLI.DefaultLimit, a.cfg.CLI.DefaultSplit, cmd.OutOrStdout())
			h.ShowEntry(cmd.Context(), utils.NormalizeWord(args[0]), false)
			return nil
		},
	}
}
