package refdata

// ItemInfo is the inventory record for a line-item lookup.
type ItemInfo struct {
	Name        string  `json:"item"`
	Stock       int     `json:"stock"`
	UnitPrice   float64 `json:"unit_price"`
	Category    string  `json:"category"`
	MinOrderQty int     `json:"min_order_qty"`
	MaxOrderQty int     `json:"max_order_qty"`
	Active      bool    `json:"active"`
}

// VendorInfo is the vendor record for a vendor lookup.
type VendorInfo struct {
	Name         string `json:"vendor_name"`
	Address      string `json:"address,omitempty"`
	PaymentTerms string `json:"payment_terms"`
	Trusted      bool   `json:"trusted"`
}

// Gateway is the reference-data lookup contract. Lookups are idempotent,
// side-effect-free reads, safe for concurrent use across invoices.
type Gateway interface {
	// LookupItem returns the inventory record for an item name, and
	// whether the item exists at all.
	LookupItem(name string) (*ItemInfo, bool, error)

	// LookupVendor returns the vendor record for a vendor name, and
	// whether the vendor exists at all.
	LookupVendor(name string) (*VendorInfo, bool, error)
}
