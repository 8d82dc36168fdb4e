package router

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/stellarpath/route-engine/internal/domain"
	"github.com/stellarpath/route-engine/internal/metrics"
)

// SplitEntry is one protocol's share of a split trade.
type SplitEntry struct {
	Protocol domain.Protocol
	Path     []string
	Parts    int
	Amount   *big.Int
}

// SplitPlan is the result of distributing a trade across protocols in
// discrete parts. Amount is the combined quote: total output for exact-input
// plans, total required input for exact-output plans.
type SplitPlan struct {
	TradeType   domain.TradeType
	Amount      *big.Int
	Entries     []SplitEntry
	PriceImpact domain.Fraction
}

// protocolRow holds one protocol's quotes for every part count 0..parts.
// A nil value marks a part count that protocol could not serve.
type protocolRow struct {
	values  []*big.Int
	paths   [][]string
	impacts []domain.Fraction
}

// RouteSplit distributes the trade over the enabled protocols in
// cfg.SplitParts discrete parts and returns the combination the dynamic
// program scores best. A nil plan with a nil error means no protocol could
// serve any share of the trade.
func (r *Router) RouteSplit(ctx context.Context, amount domain.AssetAmount, quoteAsset domain.Asset, tradeType domain.TradeType) (*SplitPlan, error) {
	started := time.Now()
	defer func() {
		metrics.SplitDuration.Observe(time.Since(started).Seconds())
	}()

	assetIn, assetOut := tradeAssets(amount, quoteAsset, tradeType)
	routes := EnumerateRoutes(assetIn, assetOut, r.fetchPairs(ctx), r.cfg.MaxHops)
	if len(routes) == 0 {
		return nil, nil
	}

	parts := r.cfg.SplitParts
	protocols := r.cfg.Protocols
	rows := make([]protocolRow, len(protocols))
	errs := make([]error, len(protocols))

	// Each protocol's row is independent of the others, so the quoting work
	// fans out. The DP combination below stays strictly sequential.
	var wg sync.WaitGroup
	for i, protocol := range protocols {
		wg.Add(1)
		go func(i int, protocol domain.Protocol) {
			defer wg.Done()
			rows[i], errs[i] = r.quoteRow(routes, amount, tradeType, protocol, parts)
		}(i, protocol)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	total, distribution := findBestDistribution(tradeType, parts, rows)
	if total == nil {
		return nil, nil
	}

	plan := &SplitPlan{TradeType: tradeType, Amount: total}
	weighted := domain.FractionFromInt(0)
	usedParts := int64(0)
	for i, p := range distribution {
		if p == 0 {
			continue
		}
		plan.Entries = append(plan.Entries, SplitEntry{
			Protocol: protocols[i],
			Path:     rows[i].paths[p],
			Parts:    p,
			Amount:   new(big.Int).Set(rows[i].values[p]),
		})
		weighted = weighted.Add(rows[i].impacts[p].Mul(domain.FractionFromInt(int64(p))))
		usedParts += int64(p)
	}
	if usedParts > 0 {
		plan.PriceImpact = weighted.Div(domain.FractionFromInt(usedParts))
	}
	return plan, nil
}

// quoteRow fills one protocol's DP row: the best single-route quote for each
// share amount*k/parts, k in 1..parts. Index 0 stays a valid zero.
func (r *Router) quoteRow(routes []domain.Route, amount domain.AssetAmount, tradeType domain.TradeType, protocol domain.Protocol, parts int) (protocolRow, error) {
	row := protocolRow{
		values:  make([]*big.Int, parts+1),
		paths:   make([][]string, parts+1),
		impacts: make([]domain.Fraction, parts+1),
	}
	row.values[0] = new(big.Int)
	for k := 1; k <= parts; k++ {
		share := amount.Scale(int64(k), int64(parts))
		quote, err := r.bestQuote(routes, share, tradeType, []domain.Protocol{protocol})
		if err != nil {
			return protocolRow{}, err
		}
		if quote == nil {
			continue
		}
		impact, err := ComputePriceImpact(quote.Route, quote.AmountIn, quote.AmountOut)
		if err != nil {
			return protocolRow{}, err
		}
		if tradeType == domain.ExactInput {
			row.values[k] = quote.AmountOut.Quotient()
		} else {
			row.values[k] = quote.AmountIn.Quotient()
		}
		row.paths[k] = quote.Route.Path()
		row.impacts[k] = impact
	}
	return row, nil
}

// findBestDistribution solves the part-allocation knapsack over the protocol
// rows: maximize total output for exact input, minimize total input for exact
// output. Ties keep the first allocation encountered, so identical inputs
// always produce identical plans. Returns a nil total when no allocation of
// all parts is feasible.
func findBestDistribution(tradeType domain.TradeType, parts int, rows []protocolRow) (*big.Int, []int) {
	n := len(rows)
	if n == 0 {
		return nil, nil
	}
	width := parts + 1

	// Flat row-major tables: cell (i, j) lives at i*width+j. A nil answer
	// marks an infeasible cell.
	answer := make([]*big.Int, n*width)
	parent := make([]int, n*width)

	for j := 0; j < width; j++ {
		answer[j] = rows[0].values[j]
		parent[j] = 0
	}
	for i := 1; i < n; i++ {
		for j := 0; j < width; j++ {
			idx := i*width + j
			answer[idx] = answer[(i-1)*width+j]
			parent[idx] = j
			for k := 1; k <= j; k++ {
				prev := answer[(i-1)*width+(j-k)]
				add := rows[i].values[k]
				if prev == nil || add == nil {
					continue
				}
				combined := new(big.Int).Add(prev, add)
				if better(tradeType, combined, answer[idx]) {
					answer[idx] = combined
					parent[idx] = j - k
				}
			}
		}
	}

	final := answer[(n-1)*width+parts]
	if final == nil || final.Sign() == 0 {
		return nil, nil
	}

	distribution := make([]int, n)
	partsLeft := parts
	for i := n - 1; i >= 0 && partsLeft > 0; i-- {
		distribution[i] = partsLeft - parent[i*width+partsLeft]
		partsLeft = parent[i*width+partsLeft]
	}
	return new(big.Int).Set(final), distribution
}

// better reports whether candidate strictly beats current under the trade
// type's objective. A nil current loses to any feasible candidate.
func better(tradeType domain.TradeType, candidate, current *big.Int) bool {
	if current == nil {
		return true
	}
	if tradeType == domain.ExactInput {
		return candidate.Cmp(current) > 0
	}
	return candidate.Cmp(current) < 0
}
