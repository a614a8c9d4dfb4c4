package refdata

import "sync"

// MemoryStore is a Gateway backed by in-memory maps. Used by tests and as
// an offline snapshot when no database is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	items   map[string]ItemInfo
	vendors map[string]VendorInfo
}

// NewMemoryStore creates a store over the given snapshots. Nil maps are
// treated as empty.
func NewMemoryStore(items map[string]ItemInfo, vendors map[string]VendorInfo) *MemoryStore {
	if items == nil {
		items = map[string]ItemInfo{}
	}
	if vendors == nil {
		vendors = map[string]VendorInfo{}
	}
	return &MemoryStore{items: items, vendors: vendors}
}

// NewDemoStore creates a memory store preloaded with the demo seed rows,
// mirroring what OpenSQLite seeds on first run.
func NewDemoStore() *MemoryStore {
	items := make(map[string]ItemInfo, len(inventorySeed))
	for _, item := range inventorySeed {
		items[item.Name] = item
	}
	vendors := make(map[string]VendorInfo, len(vendorSeed))
	for _, vendor := range vendorSeed {
		vendors[vendor.Name] = vendor
	}
	return NewMemoryStore(items, vendors)
}

// LookupItem returns the inventory record for an item name.
func (s *MemoryStore) LookupItem(name string) (*ItemInfo, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[name]
	if !ok {
		return nil, false, nil
	}
	return &item, true, nil
}

// LookupVendor returns the vendor record for a vendor name.
func (s *MemoryStore) LookupVendor(name string) (*VendorInfo, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	vendor, ok := s.vendors[name]
	if !ok {
		return nil, false, nil
	}
	return &vendor, true, nil
}
