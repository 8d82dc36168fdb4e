package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/andrew-solarstorm/go-packages/common"

	"github.com/stellarpath/route-engine/internal/domain"
)

type RouterConfig struct {
	// PairBackendURL is the base URL of the pair aggregation backend.
	PairBackendURL string
	PairBackendKey string

	// Network names the chain the pair snapshots belong to.
	Network string

	// Protocols lists the liquidity protocols the router quotes against.
	Protocols []domain.Protocol

	// MaxHops bounds route enumeration.
	MaxHops int

	// SplitParts is the granularity of the split optimizer.
	SplitParts int

	// PairCacheSeconds is how long a pair snapshot is served from cache.
	PairCacheSeconds int
}

func (c *RouterConfig) Key() string {
	return ROUTER_CONFIG_KEY
}

func (c *RouterConfig) Load() error {
	c.PairBackendURL = common.GetEnvOrDefault("PAIR_BACKEND_URL", "")
	c.PairBackendKey = common.GetEnvOrDefault("PAIR_BACKEND_API_KEY", "")
	c.Network = common.GetEnvOrDefault("NETWORK", "mainnet")
	c.MaxHops = common.GetEnvOrDefaultInt("ROUTER_MAX_HOPS", 2)
	c.SplitParts = common.GetEnvOrDefaultInt("ROUTER_SPLIT_PARTS", 10)
	c.PairCacheSeconds = common.GetEnvOrDefaultInt("PAIR_CACHE_SECONDS", 20)

	raw := common.GetEnvOrDefault("ROUTER_PROTOCOLS", "soroswap")
	c.Protocols = c.Protocols[:0]
	for _, name := range strings.Split(raw, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		protocol, err := domain.ParseProtocol(name)
		if err != nil {
			return fmt.Errorf("ROUTER_PROTOCOLS: %w", err)
		}
		c.Protocols = append(c.Protocols, protocol)
	}
	return c.Validate()
}

func (c *RouterConfig) Validate() error {
	if c.PairBackendURL == "" {
		return errors.New("PAIR_BACKEND_URL is required")
	}
	if len(c.Protocols) == 0 {
		return errors.New("at least one routing protocol is required")
	}
	if c.MaxHops < 1 || c.SplitParts < 1 {
		return errors.New("ROUTER_MAX_HOPS and ROUTER_SPLIT_PARTS must be positive")
	}
	return nil
}
