package refdata

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const inventoryTableSQL = `
CREATE TABLE IF NOT EXISTS inventory (
    item TEXT PRIMARY KEY,
    stock INTEGER NOT NULL,
    unit_price REAL NOT NULL,
    category TEXT,
    min_order_qty INTEGER DEFAULT 1,
    max_order_qty INTEGER DEFAULT 1000,
    active INTEGER DEFAULT 1
)`

const vendorsTableSQL = `
CREATE TABLE IF NOT EXISTS vendors (
    vendor_name TEXT PRIMARY KEY,
    address TEXT,
    payment_terms TEXT DEFAULT 'Net 30',
    trusted INTEGER DEFAULT 1
)`

// Demo seed rows matching the sample invoices.
var inventorySeed = []ItemInfo{
	{Name: "WidgetA", Stock: 15, UnitPrice: 250.00, Category: "Widgets", MinOrderQty: 1, MaxOrderQty: 100, Active: true},
	{Name: "WidgetB", Stock: 10, UnitPrice: 500.00, Category: "Widgets", MinOrderQty: 1, MaxOrderQty: 50, Active: true},
	{Name: "GadgetX", Stock: 5, UnitPrice: 400.00, Category: "Gadgets", MinOrderQty: 1, MaxOrderQty: 20, Active: true},
	{Name: "FakeItem", Stock: 0, UnitPrice: 0.00, Category: "Unknown", MinOrderQty: 1, MaxOrderQty: 0, Active: false},
}

var vendorSeed = []VendorInfo{
	{Name: "Widgets Inc.", Address: "100 Main St, Chicago, IL 60601", PaymentTerms: "Net 15", Trusted: true},
	{Name: "Precision Parts Ltd.", Address: "742 Evergreen Terrace, Springfield, IL 62704", PaymentTerms: "Net 30", Trusted: true},
	{Name: "Acme Industrial Supplies", PaymentTerms: "Net 15", Trusted: true},
	{Name: "NoProd Industries", PaymentTerms: "Net 30", Trusted: false},
}

// SQLiteStore is a Gateway backed by an embedded SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if necessary) the reference database. With
// autoSeed set, empty tables are filled with the demo rows; the whole
// initialization is idempotent.
func OpenSQLite(path string, autoSeed bool) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open reference database: %w", err)
	}

	for _, stmt := range []string{inventoryTableSQL, vendorsTableSQL} {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("create reference tables: %w", err)
		}
	}

	store := &SQLiteStore{db: db}
	if autoSeed {
		if err := store.seed(); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	return store, nil
}

func (s *SQLiteStore) seed() error {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM inventory").Scan(&count); err != nil {
		return fmt.Errorf("count inventory: %w", err)
	}
	if count == 0 {
		for _, item := range inventorySeed {
			_, err := s.db.Exec(
				"INSERT INTO inventory VALUES (?, ?, ?, ?, ?, ?, ?)",
				item.Name, item.Stock, item.UnitPrice, item.Category,
				item.MinOrderQty, item.MaxOrderQty, boolToInt(item.Active),
			)
			if err != nil {
				return fmt.Errorf("seed inventory: %w", err)
			}
		}
	}

	if err := s.db.QueryRow("SELECT COUNT(*) FROM vendors").Scan(&count); err != nil {
		return fmt.Errorf("count vendors: %w", err)
	}
	if count == 0 {
		for _, vendor := range vendorSeed {
			_, err := s.db.Exec(
				"INSERT INTO vendors VALUES (?, ?, ?, ?)",
				vendor.Name, nullable(vendor.Address), vendor.PaymentTerms, boolToInt(vendor.Trusted),
			)
			if err != nil {
				return fmt.Errorf("seed vendors: %w", err)
			}
		}
	}

	return nil
}

// LookupItem returns the inventory record for an item name.
func (s *SQLiteStore) LookupItem(name string) (*ItemInfo, bool, error) {
	var item ItemInfo
	var active int
	err := s.db.QueryRow(
		"SELECT item, stock, unit_price, category, min_order_qty, max_order_qty, active FROM inventory WHERE item = ?",
		name,
	).Scan(&item.Name, &item.Stock, &item.UnitPrice, &item.Category, &item.MinOrderQty, &item.MaxOrderQty, &active)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("lookup item %q: %w", name, err)
	}
	item.Active = active != 0
	return &item, true, nil
}

// LookupVendor returns the vendor record for a vendor name.
func (s *SQLiteStore) LookupVendor(name string) (*VendorInfo, bool, error) {
	var vendor VendorInfo
	var address sql.NullString
	var trusted int
	err := s.db.QueryRow(
		"SELECT vendor_name, address, payment_terms, trusted FROM vendors WHERE vendor_name = ?",
		name,
	).Scan(&vendor.Name, &address, &vendor.PaymentTerms, &trusted)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("lookup vendor %q: %w", name, err)
	}
	vendor.Address = address.String
	vendor.Trusted = trusted != 0
	return &vendor, true, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
