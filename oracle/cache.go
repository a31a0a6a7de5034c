package oracle

import (
	"context"
	"math/big"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/vaultd/collateral"
)

// Cached is a read-through rate cache over any PriceOracle, for hosts that
// tolerate slightly stale rates in exchange for fewer daemon round trips.
// Failures are never cached, so a recovering oracle is observed immediately.
type Cached struct {
	base  collateral.PriceOracle
	cache *gocache.Cache
}

// Compile-time interface check
var _ collateral.PriceOracle = (*Cached)(nil)

// NewCached decorates base with a TTL cache. Entries expire after ttl.
func NewCached(base collateral.PriceOracle, ttl time.Duration) *Cached {
	return &Cached{
		base:  base,
		cache: gocache.New(ttl, 2*ttl),
	}
}

// GetPrice implements collateral.PriceOracle.
func (c *Cached) GetPrice(ctx context.Context, token string) (*big.Int, error) {
	if v, ok := c.cache.Get(token); ok {
		return new(big.Int).Set(v.(*big.Int)), nil
	}
	rate, err := c.base.GetPrice(ctx, token)
	if err != nil {
		return nil, err
	}
	c.cache.Set(token, new(big.Int).Set(rate), gocache.DefaultExpiration)
	return new(big.Int).Set(rate), nil
}
