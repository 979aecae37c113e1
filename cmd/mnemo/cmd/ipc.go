package cmd

import (
	"os"

	"github.com/bastiangx/mnemo/pkg/config"
	"github.com/bastiangx/mnemo/pkg/server"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func newIPCCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ipc",
		Short: "Serve msgpack requests over stdin/stdout",
		Long: `Serve msgpack requests over stdin/stdout.

Send {"id": "1", "w": "pavement", "l": 5} to split a word, or
{"id": "2", "action": "define", "w": "paralize"} for definitions.
Logs are written to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			srv := server.NewServer(a.engine, a.lookup, a.cfg.Server, os.Stdin, os.Stdout)
			watchConfig(cmd.Context(), a.configPath, func(cfg *config.Config) {
				srv.SetServerConfig(cfg.Server)
			})

			log.Debug("spawning IPC", "pid", os.Getpid())
			return srv.Serve(cmd.Context())
		},
	}
}
