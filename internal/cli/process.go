package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/shonlittle/acme-invoice/internal/model"
	"github.com/shonlittle/acme-invoice/internal/pipeline"
)

var processTimeout time.Duration

// processCmd represents the process command
var processCmd = &cobra.Command{
	Use:   "process <invoice-file>",
	Short: "Process a single invoice through the full pipeline",
	Long: `Process runs one invoice file through extraction, validation,
approval and payment, then writes the complete result record as JSON.

Supported formats: .json, .csv, .txt, .xlsx, .html, .htm, .pdf

Example:
  acme-invoice process data/invoices/invoice_happy.json
  acme-invoice process invoice.csv --no-db --out results
  acme-invoice process invoice.txt --backend grok`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)

	addProcessingFlags(processCmd)
	processCmd.Flags().DurationVar(&processTimeout, "timeout", 2*time.Minute, "overall processing timeout")
}

func runProcess(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), processTimeout)
	defer cancel()

	cfg := buildConfig()

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
	result := p.Process(ctx, path)

	renderer := pipeline.NewRenderer()
	outPath := renderer.OutputPath(cfg.Output.Dir, path)
	if err := renderer.RenderJSON(result, outPath); err != nil {
		return fmt.Errorf("write result: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Result written to %s\n\n", outPath)
	}
	renderer.RenderSummary(os.Stdout, []*model.Result{result})

	return nil
}
