package refdata

import (
	"path/filepath"
	"testing"
)

func TestOpenSQLite_SeedsAndLooksUp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "refdata.db")

	store, err := OpenSQLite(path, true)
	if err != nil {
		t.Fatalf("Expected open to succeed, got %v", err)
	}
	defer func() { _ = store.Close() }()

	item, found, err := store.LookupItem("GadgetX")
	if err != nil {
		t.Fatalf("Expected lookup to succeed, got %v", err)
	}
	if !found {
		t.Fatal("Expected GadgetX to be seeded")
	}
	if item.Stock != 5 || item.UnitPrice != 400.00 {
		t.Errorf("Expected GadgetX stock=5 price=400.00, got stock=%d price=%.2f", item.Stock, item.UnitPrice)
	}

	vendor, found, err := store.LookupVendor("Widgets Inc.")
	if err != nil {
		t.Fatalf("Expected lookup to succeed, got %v", err)
	}
	if !found {
		t.Fatal("Expected Widgets Inc. to be seeded")
	}
	if !vendor.Trusted {
		t.Error("Expected Widgets Inc. to be trusted")
	}
	if vendor.PaymentTerms != "Net 15" {
		t.Errorf("Expected Net 15 terms, got %s", vendor.PaymentTerms)
	}

	untrusted, found, err := store.LookupVendor("NoProd Industries")
	if err != nil || !found {
		t.Fatalf("Expected NoProd Industries to be seeded, got found=%v err=%v", found, err)
	}
	if untrusted.Trusted {
		t.Error("Expected NoProd Industries to be untrusted")
	}
}

func TestOpenSQLite_MissIsNotAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "refdata.db")

	store, err := OpenSQLite(path, true)
	if err != nil {
		t.Fatalf("Expected open to succeed, got %v", err)
	}
	defer func() { _ = store.Close() }()

	_, found, err := store.LookupItem("NoSuchItem")
	if err != nil {
		t.Fatalf("Expected a clean miss, got %v", err)
	}
	if found {
		t.Error("Expected NoSuchItem not to be found")
	}

	_, found, err = store.LookupVendor("NoSuchVendor")
	if err != nil {
		t.Fatalf("Expected a clean miss, got %v", err)
	}
	if found {
		t.Error("Expected NoSuchVendor not to be found")
	}
}

func TestOpenSQLite_SeedIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "refdata.db")

	first, err := OpenSQLite(path, true)
	if err != nil {
		t.Fatalf("Expected first open to succeed, got %v", err)
	}
	_ = first.Close()

	second, err := OpenSQLite(path, true)
	if err != nil {
		t.Fatalf("Expected reopen to succeed, got %v", err)
	}
	defer func() { _ = second.Close() }()

	var count int
	if err := second.db.QueryRow("SELECT COUNT(*) FROM inventory").Scan(&count); err != nil {
		t.Fatalf("count inventory: %v", err)
	}
	if count != len(inventorySeed) {
		t.Errorf("Expected %d inventory rows after reopen, got %d", len(inventorySeed), count)
	}
}
