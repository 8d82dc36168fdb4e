package domain

// Quote is the evaluated result of pushing one amount through one route under
// one protocol. Quotes compare by their variable side: output for exact-input
// trades, input for exact-output trades.
type Quote struct {
	Route     Route
	Protocol  Protocol
	TradeType TradeType
	AmountIn  AssetAmount
	AmountOut AssetAmount
}

// Trade is a fully priced quote ready to hand to a caller: truncated amounts,
// the asset path, and the price impact net of liquidity-provider fees.
type Trade struct {
	Protocol    Protocol
	TradeType   TradeType
	Route       Route
	AmountIn    AssetAmount
	AmountOut   AssetAmount
	PriceImpact Fraction
}

// ExecutionPrice is the realized output-per-input price of the trade.
func (t Trade) ExecutionPrice() Fraction {
	return t.AmountOut.Value.Div(t.AmountIn.Value)
}

// Path lists the asset addresses the trade traverses.
func (t Trade) Path() []string {
	return t.Route.Path()
}
