package router

import (
	"errors"

	"github.com/stellarpath/route-engine/internal/domain"
)

// RouteQuotes pairs a candidate route with its quotes, one slot per requested
// amount in request order. A nil slot means that (route, amount) combination
// produced no quote.
type RouteQuotes struct {
	Route  domain.Route
	Quotes []*domain.Quote
}

// RejectionTally counts the recoverable per-route quote failures seen during
// one evaluation pass.
type RejectionTally struct {
	InsufficientReserves int
	InsufficientInput    int
}

func (t RejectionTally) Total() int {
	return t.InsufficientReserves + t.InsufficientInput
}

// Hooks lets callers observe routing decisions without the engine printing
// anything itself. Either field may be nil.
type Hooks struct {
	OnRouteFound    func(trade domain.Trade)
	OnQuoteRejected func(protocol domain.Protocol, reason error)
}

// QuoteRoutesExactIn evaluates every (amount, route) combination under one
// protocol by folding the input forward through each hop. Recoverable pricing
// failures leave a nil quote and are tallied; an unsupported protocol aborts
// the whole pass.
func QuoteRoutesExactIn(amounts []domain.AssetAmount, routes []domain.Route, protocol domain.Protocol, hooks Hooks) ([]RouteQuotes, RejectionTally, error) {
	var tally RejectionTally
	results := make([]RouteQuotes, len(routes))
	for i, route := range routes {
		results[i] = RouteQuotes{Route: route, Quotes: make([]*domain.Quote, len(amounts))}
		for j, amount := range amounts {
			quote, err := quoteExactIn(route, amount, protocol)
			if err != nil {
				if fatal := tally.record(err, protocol, hooks); fatal != nil {
					return nil, tally, fatal
				}
				continue
			}
			results[i].Quotes[j] = quote
		}
	}
	return results, tally, nil
}

// QuoteRoutesExactOut mirrors QuoteRoutesExactIn for a fixed output, folding
// the required input backward from the last hop.
func QuoteRoutesExactOut(amounts []domain.AssetAmount, routes []domain.Route, protocol domain.Protocol, hooks Hooks) ([]RouteQuotes, RejectionTally, error) {
	var tally RejectionTally
	results := make([]RouteQuotes, len(routes))
	for i, route := range routes {
		results[i] = RouteQuotes{Route: route, Quotes: make([]*domain.Quote, len(amounts))}
		for j, amount := range amounts {
			quote, err := quoteExactOut(route, amount, protocol)
			if err != nil {
				if fatal := tally.record(err, protocol, hooks); fatal != nil {
					return nil, tally, fatal
				}
				continue
			}
			results[i].Quotes[j] = quote
		}
	}
	return results, tally, nil
}

// record tallies a recoverable failure and returns the error unchanged when
// it is fatal.
func (t *RejectionTally) record(err error, protocol domain.Protocol, hooks Hooks) error {
	switch {
	case errors.Is(err, domain.ErrInsufficientReserves):
		t.InsufficientReserves++
	case errors.Is(err, domain.ErrInsufficientInputAmount):
		t.InsufficientInput++
	default:
		return err
	}
	if hooks.OnQuoteRejected != nil {
		hooks.OnQuoteRejected(protocol, err)
	}
	return nil
}

func quoteExactIn(route domain.Route, amountIn domain.AssetAmount, protocol domain.Protocol) (*domain.Quote, error) {
	current := amountIn
	for _, pair := range route.Pairs() {
		out, _, err := pair.OutputAmount(current, protocol)
		if err != nil {
			return nil, err
		}
		current = out
	}
	return &domain.Quote{
		Route:     route,
		Protocol:  protocol,
		TradeType: domain.ExactInput,
		AmountIn:  amountIn,
		AmountOut: current,
	}, nil
}

func quoteExactOut(route domain.Route, amountOut domain.AssetAmount, protocol domain.Protocol) (*domain.Quote, error) {
	pairs := route.Pairs()
	current := amountOut
	for i := len(pairs) - 1; i >= 0; i-- {
		in, _, err := pairs[i].InputAmount(current, protocol)
		if err != nil {
			return nil, err
		}
		current = in
	}
	return &domain.Quote{
		Route:     route,
		Protocol:  protocol,
		TradeType: domain.ExactOutput,
		AmountIn:  current,
		AmountOut: amountOut,
	}, nil
}
