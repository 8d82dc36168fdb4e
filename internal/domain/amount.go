package domain

import (
	"fmt"
	"math/big"
)

// AssetAmount binds an exact fractional value to the asset it denominates.
type AssetAmount struct {
	Asset Asset
	Value Fraction
}

// NewAssetAmount wraps a raw integer quantity of an asset.
func NewAssetAmount(asset Asset, raw *big.Int) AssetAmount {
	return AssetAmount{Asset: asset, Value: FractionFromBig(raw)}
}

func AssetAmountFromFraction(asset Asset, value Fraction) AssetAmount {
	return AssetAmount{Asset: asset, Value: value}
}

// Quotient is the truncated integer quantity.
func (a AssetAmount) Quotient() *big.Int {
	return a.Value.Quotient()
}

func (a AssetAmount) Add(other AssetAmount) (AssetAmount, error) {
	if !a.Asset.Equals(other.Asset) {
		return AssetAmount{}, fmt.Errorf("adding amounts of different assets: %s vs %s", a.Asset.Address, other.Asset.Address)
	}
	return AssetAmount{Asset: a.Asset, Value: a.Value.Add(other.Value)}, nil
}

func (a AssetAmount) Sub(other AssetAmount) (AssetAmount, error) {
	if !a.Asset.Equals(other.Asset) {
		return AssetAmount{}, fmt.Errorf("subtracting amounts of different assets: %s vs %s", a.Asset.Address, other.Asset.Address)
	}
	return AssetAmount{Asset: a.Asset, Value: a.Value.Sub(other.Value)}, nil
}

// Scale returns amount * k / n without losing precision.
func (a AssetAmount) Scale(k, n int64) AssetAmount {
	scaled := a.Value.Mul(NewFraction(big.NewInt(k), big.NewInt(n)))
	return AssetAmountFromFraction(a.Asset, scaled)
}
