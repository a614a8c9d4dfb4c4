package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shonlittle/acme-invoice/internal/pipeline"
	"github.com/shonlittle/acme-invoice/internal/server"
)

var (
	serveAddr    string
	serveSamples string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API for invoice processing",
	Long: `Serve starts an HTTP API exposing the pipeline:

  GET  /api/health          - liveness check
  GET  /api/samples         - list sample invoices
  POST /api/process         - process an uploaded invoice (multipart)
  POST /api/process-sample  - process a sample invoice by path

Example:
  acme-invoice serve
  acme-invoice serve --addr :9000 --samples data/invoices`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	addProcessingFlags(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8000", "listen address")
	serveCmd.Flags().StringVar(&serveSamples, "samples", "data/invoices", "sample invoices directory")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := buildConfig()
	cfg.Server.Addr = serveAddr
	cfg.Server.SamplesDir = serveSamples

	gateway, cleanup, err := buildGateway(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	reasoner, err := buildReasoner(cfg)
	if err != nil {
		return err
	}

	p := pipeline.New(cfg, gateway, reasoner)
	srv := server.New(p, cfg.Server.SamplesDir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stderr, "Listening on %s (samples: %s)\n", cfg.Server.Addr, cfg.Server.SamplesDir)
	return srv.ListenAndServe(ctx, cfg.Server.Addr, cfg.Server.AllowedOrigins)
}
