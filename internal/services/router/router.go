// Package router turns pair snapshots into priced trades: it enumerates
// candidate routes, evaluates them per protocol, picks the best quote, and
// optionally splits a trade across protocols.
package router

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/stellarpath/route-engine/internal/domain"
	"github.com/stellarpath/route-engine/internal/metrics"
	"github.com/stellarpath/route-engine/internal/services/market"
)

// DefaultSplitParts is the granularity of the split optimizer.
const DefaultSplitParts = 10

// Config carries the routing parameters fixed at construction.
type Config struct {
	Network    string
	Protocols  []domain.Protocol
	MaxHops    int
	SplitParts int
}

// Router is the trade-routing engine. It is safe for concurrent use; all
// mutable state lives in the per-call stack.
type Router struct {
	cfg       Config
	suppliers map[domain.Protocol]market.PairSupplier
	hooks     Hooks
	log       zerolog.Logger
}

// New builds a Router over one PairSupplier per enabled protocol. Protocols
// without a supplier contribute no pairs.
func New(cfg Config, suppliers map[domain.Protocol]market.PairSupplier, log zerolog.Logger) *Router {
	if cfg.MaxHops <= 0 {
		cfg.MaxHops = DefaultMaxHops
	}
	if cfg.SplitParts <= 0 {
		cfg.SplitParts = DefaultSplitParts
	}
	if len(cfg.Protocols) == 0 {
		cfg.Protocols = []domain.Protocol{domain.ProtocolSoroswap}
	}
	return &Router{
		cfg:       cfg,
		suppliers: suppliers,
		log:       log.With().Str("component", "router").Logger(),
	}
}

// SetHooks installs observability callbacks. Not safe to call concurrently
// with routing.
func (r *Router) SetHooks(hooks Hooks) {
	r.hooks = hooks
}

// Route finds the single best trade for the given amount. A nil trade with a
// nil error means no route could serve the request, including when every pair
// supplier failed; errors are reserved for configuration faults.
func (r *Router) Route(ctx context.Context, amount domain.AssetAmount, quoteAsset domain.Asset, tradeType domain.TradeType) (*domain.Trade, error) {
	started := time.Now()
	trade, err := r.route(ctx, amount, quoteAsset, tradeType)
	metrics.QuoteDuration.Observe(time.Since(started).Seconds())

	status := "ok"
	switch {
	case err != nil:
		status = "error"
	case trade == nil:
		status = "no_route"
	}
	metrics.QuoteRequests.WithLabelValues(tradeType.String(), status).Inc()
	return trade, err
}

func (r *Router) route(ctx context.Context, amount domain.AssetAmount, quoteAsset domain.Asset, tradeType domain.TradeType) (*domain.Trade, error) {
	assetIn, assetOut := tradeAssets(amount, quoteAsset, tradeType)

	routes := EnumerateRoutes(assetIn, assetOut, r.fetchPairs(ctx), r.cfg.MaxHops)
	metrics.RoutesEvaluated.Observe(float64(len(routes)))
	if len(routes) == 0 {
		return nil, nil
	}

	best, err := r.bestQuote(routes, amount, tradeType, r.cfg.Protocols)
	if err != nil {
		return nil, err
	}
	if best == nil {
		return nil, nil
	}
	return r.buildTrade(*best)
}

// bestQuote evaluates every route under each listed protocol, merges the
// surviving quotes, and stable-sorts them so equal quotes keep enumeration
// order: descending output for exact input, ascending input for exact output.
func (r *Router) bestQuote(routes []domain.Route, amount domain.AssetAmount, tradeType domain.TradeType, protocols []domain.Protocol) (*domain.Quote, error) {
	var candidates []*domain.Quote
	for _, protocol := range protocols {
		var (
			quoted []RouteQuotes
			tally  RejectionTally
			err    error
		)
		if tradeType == domain.ExactInput {
			quoted, tally, err = QuoteRoutesExactIn([]domain.AssetAmount{amount}, routes, protocol, r.hooks)
		} else {
			quoted, tally, err = QuoteRoutesExactOut([]domain.AssetAmount{amount}, routes, protocol, r.hooks)
		}
		if err != nil {
			return nil, err
		}
		metrics.QuoteRejections.WithLabelValues("insufficient_reserves").Add(float64(tally.InsufficientReserves))
		metrics.QuoteRejections.WithLabelValues("insufficient_input").Add(float64(tally.InsufficientInput))
		if tally.Total() > 0 {
			r.log.Debug().
				Str("protocol", protocol.String()).
				Int("rejected", tally.Total()).
				Msg("quotes rejected")
		}
		for _, rq := range quoted {
			if q := rq.Quotes[0]; q != nil {
				candidates = append(candidates, q)
			}
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	if tradeType == domain.ExactInput {
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].AmountOut.Value.Cmp(candidates[j].AmountOut.Value) > 0
		})
	} else {
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].AmountIn.Value.Cmp(candidates[j].AmountIn.Value) < 0
		})
	}
	return candidates[0], nil
}

// buildTrade finalizes a winning quote with its price impact.
func (r *Router) buildTrade(quote domain.Quote) (*domain.Trade, error) {
	impact, err := ComputePriceImpact(quote.Route, quote.AmountIn, quote.AmountOut)
	if err != nil {
		return nil, err
	}
	trade := domain.Trade{
		Protocol:    quote.Protocol,
		TradeType:   quote.TradeType,
		Route:       quote.Route,
		AmountIn:    quote.AmountIn,
		AmountOut:   quote.AmountOut,
		PriceImpact: impact,
	}
	metrics.PriceImpact.WithLabelValues(string(ClassifyImpact(impact))).Observe(float64(ImpactBps(impact)))
	if r.hooks.OnRouteFound != nil {
		r.hooks.OnRouteFound(trade)
	}
	r.log.Debug().
		Str("protocol", trade.Protocol.String()).
		Str("trade_type", trade.TradeType.String()).
		Strs("path", trade.Path()).
		Msg("route selected")
	return &trade, nil
}

// fetchPairs calls every enabled protocol's supplier once and merges the
// results. A failing supplier contributes zero pairs; the failure is logged
// and counted, never raised, so a routing call over all-failed suppliers
// resolves to the ordinary no-route result.
func (r *Router) fetchPairs(ctx context.Context) []domain.Pair {
	var (
		merged   []domain.Pair
		failures int
	)
	for _, protocol := range r.cfg.Protocols {
		supplier, ok := r.suppliers[protocol]
		if !ok {
			continue
		}
		records, err := supplier.Pairs(ctx)
		if err != nil {
			failures++
			r.log.Warn().Err(err).Str("protocol", protocol.String()).Msg("pair supplier failed")
			continue
		}
		pairs, err := market.BuildPairs(r.cfg.Network, records)
		if err != nil {
			failures++
			r.log.Warn().Err(err).Str("protocol", protocol.String()).Msg("pair snapshot malformed")
			continue
		}
		merged = append(merged, pairs...)
	}
	if len(merged) == 0 && failures > 0 {
		r.log.Warn().Int("failures", failures).Msg("no usable pairs from any supplier")
	}
	return merged
}

// tradeAssets resolves the route endpoints: for exact input the fixed amount
// is the input side, for exact output it is the output side.
func tradeAssets(amount domain.AssetAmount, quoteAsset domain.Asset, tradeType domain.TradeType) (assetIn, assetOut domain.Asset) {
	if tradeType == domain.ExactInput {
		return amount.Asset, quoteAsset
	}
	return quoteAsset, amount.Asset
}
