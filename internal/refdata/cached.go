package refdata

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// CachedGateway is a read-through cache over another Gateway. Misses are
// cached too, so a batch full of the same unknown item hits the backing
// store once.
type CachedGateway struct {
	backing Gateway
	cache   *gocache.Cache
	ttl     time.Duration
}

type cachedItem struct {
	info  *ItemInfo
	found bool
}

type cachedVendor struct {
	info  *VendorInfo
	found bool
}

// NewCachedGateway wraps a gateway with an in-memory TTL cache.
func NewCachedGateway(backing Gateway, ttl time.Duration) *CachedGateway {
	return &CachedGateway{
		backing: backing,
		cache:   gocache.New(ttl, 2*ttl),
		ttl:     ttl,
	}
}

// LookupItem returns the inventory record for an item name.
func (g *CachedGateway) LookupItem(name string) (*ItemInfo, bool, error) {
	key := "item:" + name
	if val, ok := g.cache.Get(key); ok {
		entry := val.(cachedItem)
		return entry.info, entry.found, nil
	}

	info, found, err := g.backing.LookupItem(name)
	if err != nil {
		return nil, false, err
	}
	g.cache.Set(key, cachedItem{info: info, found: found}, g.ttl)
	return info, found, nil
}

// LookupVendor returns the vendor record for a vendor name.
func (g *CachedGateway) LookupVendor(name string) (*VendorInfo, bool, error) {
	key := "vendor:" + name
	if val, ok := g.cache.Get(key); ok {
		entry := val.(cachedVendor)
		return entry.info, entry.found, nil
	}

	info, found, err := g.backing.LookupVendor(name)
	if err != nil {
		return nil, false, err
	}
	g.cache.Set(key, cachedVendor{info: info, found: found}, g.ttl)
	return info, found, nil
}
