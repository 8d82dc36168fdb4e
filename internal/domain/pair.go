package domain

import (
	"fmt"
	"math/big"
)

// DefaultFeeBps is the pool fee assumed when a pair record carries none.
const DefaultFeeBps = 30

var (
	feeNumerator   = big.NewInt(997)
	feeDenominator = big.NewInt(1000)
	bpsDenominator = big.NewInt(10000)
)

// Pair is an immutable two-asset liquidity pool snapshot. Assets are held in
// canonical order (asset0 sorts before asset1 by lowercase address) so a pool
// has one identity regardless of construction order. Pricing methods return
// the post-trade pair instead of mutating the receiver.
type Pair struct {
	asset0, asset1     Asset
	reserve0, reserve1 *big.Int
	feeBps             int64
}

// NewPair builds a canonicalized pair from the two sides in either order.
// feeBps <= 0 falls back to DefaultFeeBps.
func NewPair(assetA Asset, reserveA *big.Int, assetB Asset, reserveB *big.Int, feeBps int64) (Pair, error) {
	before, err := assetA.SortsBefore(assetB)
	if err != nil {
		return Pair{}, err
	}
	if feeBps <= 0 {
		feeBps = DefaultFeeBps
	}
	p := Pair{feeBps: feeBps}
	if before {
		p.asset0, p.asset1 = assetA, assetB
		p.reserve0 = new(big.Int).Set(reserveA)
		p.reserve1 = new(big.Int).Set(reserveB)
	} else {
		p.asset0, p.asset1 = assetB, assetA
		p.reserve0 = new(big.Int).Set(reserveB)
		p.reserve1 = new(big.Int).Set(reserveA)
	}
	return p, nil
}

func (p Pair) Asset0() Asset { return p.asset0 }
func (p Pair) Asset1() Asset { return p.asset1 }
func (p Pair) FeeBps() int64 { return p.feeBps }

func (p Pair) Reserve0() *big.Int { return new(big.Int).Set(p.reserve0) }
func (p Pair) Reserve1() *big.Int { return new(big.Int).Set(p.reserve1) }

func (p Pair) InvolvesAsset(a Asset) bool {
	return p.asset0.Equals(a) || p.asset1.Equals(a)
}

// OtherAsset returns the counterpart of a in the pair.
func (p Pair) OtherAsset(a Asset) (Asset, error) {
	switch {
	case p.asset0.Equals(a):
		return p.asset1, nil
	case p.asset1.Equals(a):
		return p.asset0, nil
	default:
		return Asset{}, fmt.Errorf("asset %s not in pair %s/%s", a.Address, p.asset0.Address, p.asset1.Address)
	}
}

func (p Pair) reserveOf(a Asset) (*big.Int, error) {
	switch {
	case p.asset0.Equals(a):
		return p.reserve0, nil
	case p.asset1.Equals(a):
		return p.reserve1, nil
	default:
		return nil, fmt.Errorf("asset %s not in pair %s/%s", a.Address, p.asset0.Address, p.asset1.Address)
	}
}

// SpotPriceOf is the marginal price of asset a in units of the other asset,
// i.e. reserveOther/reserveA, ignoring fees.
func (p Pair) SpotPriceOf(a Asset) (Fraction, error) {
	other, err := p.OtherAsset(a)
	if err != nil {
		return Fraction{}, err
	}
	rIn, _ := p.reserveOf(a)
	rOut, _ := p.reserveOf(other)
	return NewFraction(rOut, rIn), nil
}

// OutputAmount prices a swap of input against the pair under the given
// protocol's formula and returns the output together with the post-trade
// pair.
func (p Pair) OutputAmount(input AssetAmount, protocol Protocol) (AssetAmount, Pair, error) {
	outAsset, err := p.OtherAsset(input.Asset)
	if err != nil {
		return AssetAmount{}, Pair{}, err
	}
	reserveIn, _ := p.reserveOf(input.Asset)
	reserveOut, _ := p.reserveOf(outAsset)
	in := input.Quotient()

	switch protocol {
	case ProtocolSoroswap:
		return p.outputConstantProduct(input.Asset, outAsset, reserveIn, reserveOut, in)
	case ProtocolPhoenix:
		return p.outputTaxOnOutput(input.Asset, outAsset, reserveIn, reserveOut, in)
	case ProtocolAquarius:
		return p.outputFeeOnOutput(input.Asset, outAsset, reserveIn, reserveOut, in)
	default:
		return AssetAmount{}, Pair{}, fmt.Errorf("%w: %d", ErrUnsupportedProtocol, protocol)
	}
}

// out = in*997*reserveOut / (reserveIn*1000 + in*997), truncated.
func (p Pair) outputConstantProduct(inAsset, outAsset Asset, reserveIn, reserveOut, in *big.Int) (AssetAmount, Pair, error) {
	if reserveIn.Sign() == 0 || reserveOut.Sign() == 0 {
		return AssetAmount{}, Pair{}, ErrInsufficientReserves
	}
	inWithFee := new(big.Int).Mul(in, feeNumerator)
	num := new(big.Int).Mul(inWithFee, reserveOut)
	den := new(big.Int).Mul(reserveIn, feeDenominator)
	den.Add(den, inWithFee)
	out := num.Quo(num, den)

	if out.Sign() == 0 {
		return AssetAmount{}, Pair{}, ErrInsufficientInputAmount
	}
	if out.Cmp(reserveOut) > 0 {
		return AssetAmount{}, Pair{}, ErrInsufficientReserves
	}
	updated, err := p.withTrade(inAsset, in, out)
	if err != nil {
		return AssetAmount{}, Pair{}, err
	}
	return NewAssetAmount(outAsset, out), updated, nil
}

// beforeTax = reserveOut - ceil(reserveIn*reserveOut / (reserveIn+in)); the
// tax share is floored off the output and burned from the tracked reserve.
// Only the zero-reserve guard applies on this code path.
func (p Pair) outputTaxOnOutput(inAsset, outAsset Asset, reserveIn, reserveOut, in *big.Int) (AssetAmount, Pair, error) {
	if reserveIn.Sign() == 0 || reserveOut.Sign() == 0 {
		return AssetAmount{}, Pair{}, ErrInsufficientReserves
	}
	newReserveIn := new(big.Int).Add(reserveIn, in)
	num := new(big.Int).Mul(reserveIn, reserveOut)
	newReserveOut, rem := new(big.Int).QuoRem(num, newReserveIn, new(big.Int))
	if rem.Sign() != 0 {
		newReserveOut.Add(newReserveOut, bigOne)
	}
	beforeTax := new(big.Int).Sub(reserveOut, newReserveOut)

	tax := new(big.Int).Mul(beforeTax, big.NewInt(p.feeBps))
	tax.Quo(tax, bpsDenominator)
	out := new(big.Int).Sub(beforeTax, tax)

	updated, err := p.withTrade(inAsset, in, beforeTax)
	if err != nil {
		return AssetAmount{}, Pair{}, err
	}
	return NewAssetAmount(outAsset, out), updated, nil
}

// beforeFee = in*reserveOut / (reserveIn+in), fee floored off the output.
// The pool reserve moves by beforeFee; the fee accrues outside the pair.
func (p Pair) outputFeeOnOutput(inAsset, outAsset Asset, reserveIn, reserveOut, in *big.Int) (AssetAmount, Pair, error) {
	if reserveIn.Sign() == 0 || reserveOut.Sign() == 0 {
		return AssetAmount{}, Pair{}, ErrInsufficientReserves
	}
	num := new(big.Int).Mul(in, reserveOut)
	den := new(big.Int).Add(reserveIn, in)
	beforeFee := num.Quo(num, den)

	if beforeFee.Sign() == 0 {
		return AssetAmount{}, Pair{}, ErrInsufficientInputAmount
	}
	if beforeFee.Cmp(reserveOut) > 0 {
		return AssetAmount{}, Pair{}, ErrInsufficientReserves
	}
	fee := new(big.Int).Mul(beforeFee, big.NewInt(p.feeBps))
	fee.Quo(fee, bpsDenominator)
	out := new(big.Int).Sub(beforeFee, fee)

	updated, err := p.withTrade(inAsset, in, beforeFee)
	if err != nil {
		return AssetAmount{}, Pair{}, err
	}
	return NewAssetAmount(outAsset, out), updated, nil
}

// InputAmount prices the input required to withdraw output from the pair.
// The same constant-product inversion serves every protocol.
func (p Pair) InputAmount(output AssetAmount, protocol Protocol) (AssetAmount, Pair, error) {
	switch protocol {
	case ProtocolSoroswap, ProtocolPhoenix, ProtocolAquarius:
	default:
		return AssetAmount{}, Pair{}, fmt.Errorf("%w: %d", ErrUnsupportedProtocol, protocol)
	}
	inAsset, err := p.OtherAsset(output.Asset)
	if err != nil {
		return AssetAmount{}, Pair{}, err
	}
	reserveOut, _ := p.reserveOf(output.Asset)
	reserveIn, _ := p.reserveOf(inAsset)
	out := output.Quotient()

	if reserveIn.Sign() == 0 || reserveOut.Sign() == 0 || out.Cmp(reserveOut) >= 0 {
		return AssetAmount{}, Pair{}, ErrInsufficientReserves
	}

	num := new(big.Int).Mul(reserveIn, out)
	num.Mul(num, feeDenominator)
	den := new(big.Int).Sub(reserveOut, out)
	den.Mul(den, feeNumerator)
	in := num.Quo(num, den)
	in.Add(in, bigOne)

	updated, err := p.withTrade(inAsset, in, out)
	if err != nil {
		return AssetAmount{}, Pair{}, err
	}
	return NewAssetAmount(inAsset, in), updated, nil
}

// withTrade rebuilds the pair with in added to the input side's reserve and
// outFromPool removed from the other side.
func (p Pair) withTrade(inAsset Asset, in, outFromPool *big.Int) (Pair, error) {
	r0 := new(big.Int).Set(p.reserve0)
	r1 := new(big.Int).Set(p.reserve1)
	if p.asset0.Equals(inAsset) {
		r0.Add(r0, in)
		r1.Sub(r1, outFromPool)
	} else {
		r1.Add(r1, in)
		r0.Sub(r0, outFromPool)
	}
	return Pair{
		asset0:   p.asset0,
		asset1:   p.asset1,
		reserve0: r0,
		reserve1: r1,
		feeBps:   p.feeBps,
	}, nil
}
