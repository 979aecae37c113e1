package cmd

import (
	"fmt"

	"github.com/bastiangx/mnemo/internal/cli"
	"github.com/bastiangx/mnemo/internal/utils"
	"github.com/bastiangx/mnemo/pkg/present"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

type splitOptions struct {
	limit   int
	noSplit bool
	json    bool
}

func newSplitCmd() *cobra.Command {
	var opts splitOptions

	cmd := &cobra.Command{
		Use:   "split <word>",
		Short: "Find the best split of a word and its associations",
		Example: `  mnemo split pavement
  mnemo split pavement --limit 3 --json
  mnemo split hello --no-split`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			limit := opts.limit
			if limit <= 0 {
				limit = a.cfg.CLI.DefaultLimit
			}
			word := utils.NormalizeWord(args[0])
			if !utils.IsValidRequest(word, limit) {
				return fmt.Errorf("not a word: %q", args[0])
			}

			if !opts.json {
				h := cli.NewInputHandler(a.engine, a.lookup, limit, !opts.noSplit, cmd.OutOrStdout())
				h.ShowSplit(cmd.Context(), word)
				return nil
			}

			candidate, err := a.engine.Best(cmd.Context(), word, limit, !opts.noSplit)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(present.FromCandidate(candidate))
		},
	}

	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "Associations shown per piece (default from config)")
	cmd.Flags().BoolVar(&opts.noSplit, "no-split", false, "Look up the whole word only")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Output the response as JSON")
	return cmd
}
