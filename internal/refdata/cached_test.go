package refdata

import (
	"testing"
	"time"
)

// countingGateway counts calls that reach the backing store.
type countingGateway struct {
	backing     Gateway
	itemCalls   int
	vendorCalls int
}

func (c *countingGateway) LookupItem(name string) (*ItemInfo, bool, error) {
	c.itemCalls++
	return c.backing.LookupItem(name)
}

func (c *countingGateway) LookupVendor(name string) (*VendorInfo, bool, error) {
	c.vendorCalls++
	return c.backing.LookupVendor(name)
}

func TestCachedGateway_HitsBackingOnce(t *testing.T) {
	counting := &countingGateway{backing: NewDemoStore()}
	cached := NewCachedGateway(counting, time.Minute)

	for i := 0; i < 5; i++ {
		item, found, err := cached.LookupItem("WidgetA")
		if err != nil {
			t.Fatalf("Expected lookup to succeed, got %v", err)
		}
		if !found || item.UnitPrice != 250.00 {
			t.Fatal("Expected WidgetA from the demo store")
		}
	}

	if counting.itemCalls != 1 {
		t.Errorf("Expected 1 backing call, got %d", counting.itemCalls)
	}
}

func TestCachedGateway_CachesMisses(t *testing.T) {
	counting := &countingGateway{backing: NewDemoStore()}
	cached := NewCachedGateway(counting, time.Minute)

	for i := 0; i < 3; i++ {
		_, found, err := cached.LookupItem("NoSuchItem")
		if err != nil {
			t.Fatalf("Expected a clean miss, got %v", err)
		}
		if found {
			t.Fatal("Expected NoSuchItem not to be found")
		}
	}

	// A batch of identical unknown items hits the store once
	if counting.itemCalls != 1 {
		t.Errorf("Expected the miss to be cached, got %d backing calls", counting.itemCalls)
	}
}

func TestCachedGateway_VendorLookups(t *testing.T) {
	counting := &countingGateway{backing: NewDemoStore()}
	cached := NewCachedGateway(counting, time.Minute)

	for i := 0; i < 4; i++ {
		vendor, found, err := cached.LookupVendor("NoProd Industries")
		if err != nil {
			t.Fatalf("Expected lookup to succeed, got %v", err)
		}
		if !found || vendor.Trusted {
			t.Fatal("Expected untrusted NoProd Industries")
		}
	}

	if counting.vendorCalls != 1 {
		t.Errorf("Expected 1 backing call, got %d", counting.vendorCalls)
	}
}

func TestMemoryStore_DemoMatchesSQLiteSeed(t *testing.T) {
	store := NewDemoStore()

	for _, seed := range inventorySeed {
		item, found, err := store.LookupItem(seed.Name)
		if err != nil || !found {
			t.Fatalf("Expected %s in demo store, got found=%v err=%v", seed.Name, found, err)
		}
		if item.Stock != seed.Stock || item.UnitPrice != seed.UnitPrice {
			t.Errorf("Expected %s to match seed row", seed.Name)
		}
	}

	for _, seed := range vendorSeed {
		vendor, found, err := store.LookupVendor(seed.Name)
		if err != nil || !found {
			t.Fatalf("Expected %s in demo store, got found=%v err=%v", seed.Name, found, err)
		}
		if vendor.Trusted != seed.Trusted {
			t.Errorf("Expected %s trusted=%v", seed.Name, seed.Trusted)
		}
	}
}
