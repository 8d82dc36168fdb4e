package router

import "github.com/stellarpath/route-engine/internal/domain"

// DefaultMaxHops bounds route enumeration when the caller supplies no limit.
const DefaultMaxHops = 2

// EnumerateRoutes discovers every route from assetIn to assetOut through the
// supplied pair set, exhaustively, up to maxHops pairs per route. A pair may
// appear at most once per route (identity is positional, so duplicate pool
// snapshots each count); assets may repeat through distinct pairs. Emission
// order follows pair order and is deterministic for a fixed input.
func EnumerateRoutes(assetIn, assetOut domain.Asset, pairs []domain.Pair, maxHops int) []domain.Route {
	if maxHops <= 0 {
		maxHops = DefaultMaxHops
	}
	if assetIn.Equals(assetOut) {
		return nil
	}
	e := &enumerator{
		pairs:    pairs,
		used:     make([]bool, len(pairs)),
		assetIn:  assetIn,
		assetOut: assetOut,
	}
	e.walk(assetIn, nil, maxHops)
	return e.routes
}

type enumerator struct {
	pairs    []domain.Pair
	used     []bool
	assetIn  domain.Asset
	assetOut domain.Asset
	routes   []domain.Route
}

func (e *enumerator) walk(current domain.Asset, path []domain.Pair, hopsLeft int) {
	for i, pair := range e.pairs {
		if e.used[i] || !pair.InvolvesAsset(current) {
			continue
		}
		next, err := pair.OtherAsset(current)
		if err != nil {
			continue
		}
		if next.Equals(e.assetOut) {
			route, err := domain.NewRoute(e.assetIn, e.assetOut, append(path, pair))
			if err == nil {
				e.routes = append(e.routes, route)
			}
			continue
		}
		if hopsLeft > 1 {
			e.used[i] = true
			e.walk(next, append(path, pair), hopsLeft-1)
			e.used[i] = false
		}
	}
}
