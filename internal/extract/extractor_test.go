package extract

import "testing"

func TestRegistry_ForPath(t *testing.T) {
	registry := NewRegistry(nil)

	tests := []struct {
		path string
		want string
	}{
		{"invoice.json", "structured-json"},
		{"invoice.csv", "flat-kv-csv"},
		{"invoice.txt", "free-text"},
		{"invoice.xlsx", "spreadsheet-xlsx"},
		{"invoice.html", "derived-text"},
		{"invoice.htm", "derived-text"},
		{"invoice.pdf", "derived-text"},
		{"INVOICE.JSON", "structured-json"}, // extension match is case-insensitive
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			e, err := registry.ForPath(tt.path)
			if err != nil {
				t.Fatalf("Expected extractor for %s, got error %v", tt.path, err)
			}
			if e.Name() != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, e.Name())
			}
		})
	}
}

func TestRegistry_UnsupportedExtension(t *testing.T) {
	registry := NewRegistry(nil)

	if _, err := registry.ForPath("invoice.docx"); err == nil {
		t.Error("Expected an error for an unsupported extension")
	}
	if _, err := registry.ForPath("no-extension"); err == nil {
		t.Error("Expected an error for a path without extension")
	}
}

func TestParseMoney(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"1250.00", 1250.00, false},
		{"$1,250.00", 1250.00, false},
		{" 15,000 ", 15000, false},
		{"0", 0, false},
		{"12.5abc", 0, true},
		{"twelve", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseMoney(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error for %q, got %v", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error for %q, got %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}
