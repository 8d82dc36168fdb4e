package router

import (
	container "github.com/thehyperflames/dicontainer-go"

	"github.com/stellarpath/route-engine/internal/config"
	"github.com/stellarpath/route-engine/internal/domain"
	"github.com/stellarpath/route-engine/internal/services"
	"github.com/stellarpath/route-engine/internal/services/market"
)

const ROUTER_SERVICE = "router-service"

// RouterService wires the routing engine into the service container.
type RouterService struct {
	container.BaseDIInstance

	conf      *config.RouterConfig
	marketSvc *market.MarketService
	log       *services.ServiceLogger
	engine    *Router
}

func (svc *RouterService) ID() string {
	return ROUTER_SERVICE
}

func (svc *RouterService) Configure(c container.IContainer) error {
	svc.conf = c.GetConfig(config.ROUTER_CONFIG_KEY).(*config.RouterConfig)
	svc.marketSvc = c.Instance(market.MARKET_SERVICE).(*market.MarketService)
	svc.log = services.NewServiceLogger(svc)

	svc.engine = New(Config{
		Network:    svc.conf.Network,
		Protocols:  svc.conf.Protocols,
		MaxHops:    svc.conf.MaxHops,
		SplitParts: svc.conf.SplitParts,
	}, svc.marketSvc.Suppliers(), svc.log.Logger())

	svc.engine.SetHooks(Hooks{
		OnQuoteRejected: func(protocol domain.Protocol, reason error) {
			svc.log.Debug().Str("protocol", protocol.String()).Err(reason).Msg("quote rejected")
		},
	})
	return nil
}

func (svc *RouterService) Start() error {
	svc.log.Info().
		Int("max_hops", svc.conf.MaxHops).
		Int("split_parts", svc.conf.SplitParts).
		Msg("router service started")
	return nil
}

func (svc *RouterService) Stop() error {
	return nil
}

// Engine exposes the routing core to the HTTP layer.
func (svc *RouterService) Engine() *Router {
	return svc.engine
}
