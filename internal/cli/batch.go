package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/shonlittle/acme-invoice/internal/pipeline"
	"github.com/shonlittle/acme-invoice/internal/worker"
)

var (
	batchWorkers int
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <directory-or-manifest>",
	Short: "Process many invoices concurrently",
	Long: `Batch processes every invoice in a directory, or every path listed
in a manifest file (one path per line, # comments allowed). Invoices run
independently on a worker pool; each produces its own result JSON.

Example:
  acme-invoice batch data/invoices
  acme-invoice batch invoices.txt --workers 8 --out results`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	addProcessingFlags(batchCmd)
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 4, "number of concurrent workers")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "overall batch timeout")
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg := buildConfig()
	if batchWorkers > 0 {
		cfg.Concurrency.Workers = batchWorkers
	}

	paths, err := worker.CollectPaths(args[0])
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no invoice files found in %s", args[0])
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Processing %d invoices with %d workers\n", len(paths), cfg.Concurrency.Workers)
	}

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
	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers)
	results := processor.ProcessPaths(ctx, paths)

	renderer := pipeline.NewRenderer()
	for _, result := range results {
		outPath := renderer.OutputPath(cfg.Output.Dir, result.InvoicePath)
		if err := renderer.RenderJSON(result, outPath); err != nil {
			return fmt.Errorf("write result for %s: %w", result.InvoicePath, err)
		}
	}

	renderer.RenderSummary(os.Stdout, results)

	stats := worker.Aggregate(results)
	fmt.Printf("\nProcessed %d invoices: %d approved, %d paid, %d with errors\n",
		stats.Total, stats.Approved, stats.Paid, stats.Errored)

	return nil
}
