package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shonlittle/acme-invoice/internal/model"
)

// Runner processes a single invoice file end to end.
type Runner interface {
	Process(ctx context.Context, path string) *model.Result
}

// InvoiceJob is one invoice run submitted to the pool.
type InvoiceJob struct {
	Path   string
	Runner Runner
}

// Execute runs the pipeline for the job's invoice.
func (j *InvoiceJob) Execute(ctx context.Context) Result {
	return &InvoiceResult{
		Path:   j.Path,
		Result: j.Runner.Process(ctx, j.Path),
	}
}

// InvoiceResult wraps one pipeline result for the pool.
type InvoiceResult struct {
	Path   string
	Result *model.Result
}

// GetError returns nil: the pipeline never fails a run, it records
// failures inside the result's error list.
func (r *InvoiceResult) GetError() error {
	return nil
}

// invoiceExtensions are the formats the extractor registry understands.
var invoiceExtensions = map[string]bool{
	".json": true,
	".csv":  true,
	".txt":  true,
	".xlsx": true,
	".html": true,
	".htm":  true,
	".pdf":  true,
}

// BatchProcessor processes many invoices concurrently. Each invoice run
// is independent; aggregation happens only after all workers finish.
type BatchProcessor struct {
	runner      Runner
	concurrency int
}

// NewBatchProcessor creates a new batch processor.
func NewBatchProcessor(runner Runner, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		runner:      runner,
		concurrency: concurrency,
	}
}

// ProcessPaths runs the pipeline over every path with a pool of workers.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*model.Result {
	if len(paths) == 0 {
		return []*model.Result{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, path := range paths {
		pool.Submit(&InvoiceJob{Path: path, Runner: b.runner})
	}

	raw := pool.Wait()

	results := make([]*model.Result, 0, len(raw))
	for _, r := range raw {
		results = append(results, r.(*InvoiceResult).Result)
	}
	return results
}

// CollectPaths resolves a batch input: a directory yields every invoice
// file in it (sorted), anything else is read as a manifest of one path
// per line, with blank lines and # comments skipped.
func CollectPaths(input string) ([]string, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("stat batch input: %w", err)
	}

	if info.IsDir() {
		entries, err := os.ReadDir(input)
		if err != nil {
			return nil, fmt.Errorf("read invoice directory: %w", err)
		}

		var paths []string
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if invoiceExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
				paths = append(paths, filepath.Join(input, entry.Name()))
			}
		}
		sort.Strings(paths)
		return paths, nil
	}

	file, err := os.Open(input)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan manifest: %w", err)
	}

	return paths, nil
}

// BatchStats aggregates outcomes across a completed batch.
type BatchStats struct {
	Total    int
	Approved int
	Paid     int
	Errored  int
}

// Aggregate tallies stats from finished results. Call only after the
// pool has drained; results must not still be streaming in.
func Aggregate(results []*model.Result) BatchStats {
	stats := BatchStats{Total: len(results)}
	for _, result := range results {
		if result.Approval != nil && result.Approval.Approved {
			stats.Approved++
		}
		if result.Payment != nil && result.Payment.Status == model.PaymentPaid {
			stats.Paid++
		}
		if len(result.Errors) > 0 {
			stats.Errored++
		}
	}
	return stats
}
