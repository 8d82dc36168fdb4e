package market

import (
	"time"

	container "github.com/thehyperflames/dicontainer-go"

	"github.com/stellarpath/route-engine/internal/config"
	"github.com/stellarpath/route-engine/internal/domain"
	"github.com/stellarpath/route-engine/internal/services"
)

const MARKET_SERVICE = "market-service"

// MarketService owns one cached pair supplier per enabled protocol.
type MarketService struct {
	container.BaseDIInstance

	conf      *config.RouterConfig
	log       *services.ServiceLogger
	suppliers map[domain.Protocol]PairSupplier
	caches    []*CachingSupplier
}

func (svc *MarketService) ID() string {
	return MARKET_SERVICE
}

func (svc *MarketService) Configure(c container.IContainer) error {
	svc.conf = c.GetConfig(config.ROUTER_CONFIG_KEY).(*config.RouterConfig)
	svc.log = services.NewServiceLogger(svc)

	ttl := time.Duration(svc.conf.PairCacheSeconds) * time.Second
	svc.suppliers = make(map[domain.Protocol]PairSupplier, len(svc.conf.Protocols))
	for _, protocol := range svc.conf.Protocols {
		backend := NewBackendSupplier(
			svc.conf.PairBackendURL,
			svc.conf.PairBackendKey,
			svc.conf.Network,
			protocol.String(),
			svc.log.Logger(),
		)
		cache := NewCachingSupplier(backend, ttl)
		svc.suppliers[protocol] = cache
		svc.caches = append(svc.caches, cache)
	}
	return nil
}

func (svc *MarketService) Start() error {
	svc.log.Info().Int("protocols", len(svc.suppliers)).Msg("market service started")
	return nil
}

func (svc *MarketService) Stop() error {
	return nil
}

// Suppliers returns the per-protocol supplier map the router routes over.
func (svc *MarketService) Suppliers() map[domain.Protocol]PairSupplier {
	return svc.suppliers
}

// ResetCaches drops every cached pair snapshot.
func (svc *MarketService) ResetCaches() {
	for _, cache := range svc.caches {
		cache.Reset()
	}
}
