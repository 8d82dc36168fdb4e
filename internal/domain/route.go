package domain

import "fmt"

// Route is an ordered walk through liquidity pairs from an input asset to an
// output asset. Construction validates connectivity once so downstream code
// can fold over the hops without re-checking.
type Route struct {
	input  Asset
	output Asset
	pairs  []Pair
	path   []Asset
}

// NewRoute validates that pairs forms a connected walk from input to output
// and precomputes the hop-by-hop asset path.
func NewRoute(input, output Asset, pairs []Pair) (Route, error) {
	if len(pairs) == 0 {
		return Route{}, fmt.Errorf("%w: empty pair sequence", ErrInvalidRoute)
	}
	path := make([]Asset, 0, len(pairs)+1)
	path = append(path, input)
	current := input
	for i, pair := range pairs {
		if !pair.InvolvesAsset(current) {
			return Route{}, fmt.Errorf("%w: hop %d does not involve %s", ErrInvalidRoute, i, current.Address)
		}
		next, err := pair.OtherAsset(current)
		if err != nil {
			return Route{}, fmt.Errorf("%w: %v", ErrInvalidRoute, err)
		}
		path = append(path, next)
		current = next
	}
	if !current.Equals(output) {
		return Route{}, fmt.Errorf("%w: walk ends at %s, want %s", ErrInvalidRoute, current.Address, output.Address)
	}
	cp := make([]Pair, len(pairs))
	copy(cp, pairs)
	return Route{input: input, output: output, pairs: cp, path: path}, nil
}

func (r Route) Input() Asset  { return r.input }
func (r Route) Output() Asset { return r.output }
func (r Route) Hops() int     { return len(r.pairs) }

func (r Route) Pairs() []Pair {
	cp := make([]Pair, len(r.pairs))
	copy(cp, r.pairs)
	return cp
}

// Path lists the asset addresses visited, input first.
func (r Route) Path() []string {
	out := make([]string, len(r.path))
	for i, a := range r.path {
		out[i] = a.Address
	}
	return out
}

// MidPrice is the product of the hop spot prices, i.e. the fee-free price of
// the input asset in units of the output asset.
func (r Route) MidPrice() (Fraction, error) {
	price := FractionFromInt(1)
	for i, pair := range r.pairs {
		spot, err := pair.SpotPriceOf(r.path[i])
		if err != nil {
			return Fraction{}, err
		}
		price = price.Mul(spot)
	}
	return price, nil
}
