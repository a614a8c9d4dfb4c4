package worker

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"sync"
	"testing"

	"github.com/shonlittle/acme-invoice/internal/model"
)

// recordingRunner returns canned results and records which paths it saw.
type recordingRunner struct {
	mu    sync.Mutex
	seen  []string
	build func(path string) *model.Result
}

func (r *recordingRunner) Process(_ context.Context, path string) *model.Result {
	r.mu.Lock()
	r.seen = append(r.seen, path)
	r.mu.Unlock()

	if r.build != nil {
		return r.build(path)
	}
	return model.NewResult(path)
}

func TestBatchProcessor_ProcessesEveryPath(t *testing.T) {
	runner := &recordingRunner{}
	processor := NewBatchProcessor(runner, 3)

	paths := []string{"a.json", "b.csv", "c.txt", "d.xlsx", "e.html"}
	results := processor.ProcessPaths(context.Background(), paths)

	if len(results) != len(paths) {
		t.Fatalf("Expected %d results, got %d", len(paths), len(results))
	}

	sort.Strings(runner.seen)
	want := append([]string(nil), paths...)
	sort.Strings(want)
	if !reflect.DeepEqual(runner.seen, want) {
		t.Errorf("Expected every path processed once, got %v", runner.seen)
	}
}

func TestBatchProcessor_EmptyInput(t *testing.T) {
	processor := NewBatchProcessor(&recordingRunner{}, 2)

	results := processor.ProcessPaths(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("Expected no results, got %d", len(results))
	}
}

func TestCollectPaths_Directory(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.json", "a.csv", "notes.md", "c.txt", ".hidden.json"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	paths, err := CollectPaths(dir)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	want := []string{
		filepath.Join(dir, ".hidden.json"),
		filepath.Join(dir, "a.csv"),
		filepath.Join(dir, "b.json"),
		filepath.Join(dir, "c.txt"),
	}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("Expected supported files sorted, got %v", paths)
	}
}

func TestCollectPaths_Manifest(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "invoices.list")
	content := `# demo batch
data/invoices/a.json

data/invoices/b.csv
data/invoices/a.json
`
	if err := os.WriteFile(manifest, []byte(content), 0644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	paths, err := CollectPaths(manifest)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	want := []string{"data/invoices/a.json", "data/invoices/b.csv"}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("Expected comments, blanks and duplicates skipped, got %v", paths)
	}
}

func TestCollectPaths_MissingInput(t *testing.T) {
	if _, err := CollectPaths(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("Expected an error for a missing input")
	}
}

func TestAggregate(t *testing.T) {
	results := []*model.Result{
		{
			Approval: &model.ApprovalDecision{Approved: true},
			Payment:  &model.PaymentResult{Status: model.PaymentPaid},
		},
		{
			Approval: &model.ApprovalDecision{Approved: false},
			Payment:  &model.PaymentResult{Status: model.PaymentSkipped},
		},
		{
			Errors: []string{"Unsupported file type"},
		},
	}

	stats := Aggregate(results)
	if stats.Total != 3 {
		t.Errorf("Expected total 3, got %d", stats.Total)
	}
	if stats.Approved != 1 {
		t.Errorf("Expected 1 approved, got %d", stats.Approved)
	}
	if stats.Paid != 1 {
		t.Errorf("Expected 1 paid, got %d", stats.Paid)
	}
	if stats.Errored != 1 {
		t.Errorf("Expected 1 errored, got %d", stats.Errored)
	}
}
