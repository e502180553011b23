package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"negscreen/internal/server"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the screening HTTP API",
	Long: `Serve starts the HTTP API exposing the screening pipeline.

Endpoints:
  POST /screen   run a negative news screening
  GET  /health   liveness check

Example:
  negscreen serve
  negscreen serve --addr :9000`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	cfg := loadConfig()
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	p := newPipeline(cfg, log)
	srv := server.New(p, cfg.Server, log)
	return srv.ListenAndServe()
}
