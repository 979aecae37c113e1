package cmd

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
				ReportCaller:    false,
				ReportTimestamp: false,
			})

			styles := log.DefaultStyles()
			styles.Values["version"] = lipgloss.NewStyle().Bold(true).
				Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
				Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
			styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
				Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
			logger.SetStyles(styles)

			logger.Print("")
			logger.Print("[ mnemo ] Splits words into memorable sound-alikes")
			logger.Print("", "version", Version)
			logger.Print("")
			logger.Print("use -h or --help to see available options")
			logger.Print("Github Repo", "gh", gh)
		},
	}
}
