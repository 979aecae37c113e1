// Package cmd provides the CLI commands for mnemo.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/mnemo/internal/logger"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

const (
	Version = "0.3.0"
	AppName = "mnemo"
	gh      = "https://github.com/bastiangx/mnemo"
)

var (
	configPath string
	debugMode  bool
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   AppName,
		Short: "Split words into memorable sound-alike pieces",
		Long: `mnemo finds the way to cut a word in two whose halves sound most like
common real words, and lists those associations.

Run 'mnemo serve' for the HTTP API, 'mnemo ipc' for msgpack over
stdin/stdout, or 'mnemo repl' to try words interactively.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Setup(debugMode)
		},
	}
	cmd.SetVersionTemplate(AppName + " version {{.Version}}\n")

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a custom config file")
	cmd.PersistentFlags().BoolVarP(&debugMode, "debug", "d", false, "Toggle debug logging")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newIPCCmd())
	cmd.AddCommand(newSplitCmd())
	cmd.AddCommand(newReplCmd())
	cmd.AddCommand(newDefineCmd())
	cmd.AddCommand(newClosestCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command with a context cancelled on SIGINT or SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		log.Error(err)
		return err
	}
	return nil
}
