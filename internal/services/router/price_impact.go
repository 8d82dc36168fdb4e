package router

import (
	"math/big"

	"github.com/stellarpath/route-engine/internal/domain"
)

// Price impact thresholds in basis points.
const (
	priceImpactLow      int64 = 100
	priceImpactModerate int64 = 300
	priceImpactHigh     int64 = 500
	priceImpactExtreme  int64 = 1000
)

// PriceImpactSeverity buckets an impact for alerting and metrics labels.
type PriceImpactSeverity string

const (
	SeverityNone     PriceImpactSeverity = "none"     // < 1%
	SeverityLow      PriceImpactSeverity = "low"      // 1-3%
	SeverityModerate PriceImpactSeverity = "moderate" // 3-5%
	SeverityHigh     PriceImpactSeverity = "high"     // 5-10%
	SeverityExtreme  PriceImpactSeverity = "extreme"  // > 10%
)

// ComputePriceImpact measures how far the realized execution fell below the
// route's mid price, as a fraction of one, with the cumulative liquidity
// provider fee (1 - 0.997^hops) stripped out so only true reserve slippage
// remains.
func ComputePriceImpact(route domain.Route, amountIn, amountOut domain.AssetAmount) (domain.Fraction, error) {
	mid, err := route.MidPrice()
	if err != nil {
		return domain.Fraction{}, err
	}
	midQuote := amountIn.Value.Mul(mid)
	if midQuote.IsZero() {
		return domain.Fraction{}, domain.ErrInsufficientInputAmount
	}
	slippage := midQuote.Sub(amountOut.Value).Div(midQuote)
	return slippage.Sub(realizedLPFee(route.Hops())), nil
}

// realizedLPFee is 1 - (997/1000)^hops, the share of input consumed by pool
// fees along the route.
func realizedLPFee(hops int) domain.Fraction {
	num := big.NewInt(1)
	den := big.NewInt(1)
	for i := 0; i < hops; i++ {
		num.Mul(num, big.NewInt(997))
		den.Mul(den, big.NewInt(1000))
	}
	kept := domain.NewFraction(num, den)
	return domain.FractionFromInt(1).Sub(kept)
}

// ImpactBps truncates a fraction-of-one impact to basis points, clamping
// negatives (positive slippage) to zero.
func ImpactBps(impact domain.Fraction) int64 {
	if impact.Sign() <= 0 {
		return 0
	}
	bps := impact.Mul(domain.FractionFromInt(10000)).Quotient()
	if !bps.IsInt64() {
		return 1 << 62
	}
	return bps.Int64()
}

// ClassifyImpact maps an impact fraction onto its severity bucket.
func ClassifyImpact(impact domain.Fraction) PriceImpactSeverity {
	bps := ImpactBps(impact)
	switch {
	case bps < priceImpactLow:
		return SeverityNone
	case bps < priceImpactModerate:
		return SeverityLow
	case bps < priceImpactHigh:
		return SeverityModerate
	case bps < priceImpactExtreme:
		return SeverityHigh
	default:
		return SeverityExtreme
	}
}
