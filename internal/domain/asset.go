package domain

import "strings"

// Asset is a token identified by its contract address on a given network.
// Addresses are opaque strings; identity is case-insensitive.
type Asset struct {
	Network  string
	Address  string
	Decimals int
}

func NewAsset(network, address string, decimals int) Asset {
	return Asset{Network: network, Address: address, Decimals: decimals}
}

// Equals reports whether two assets are the same token: same network and
// case-insensitive address match.
func (a Asset) Equals(other Asset) bool {
	return a.Network == other.Network &&
		strings.EqualFold(a.Address, other.Address)
}

// SortsBefore reports whether this asset precedes other in the canonical
// pair ordering (lexicographic on the lower-cased address). Comparing an
// asset with itself is malformed and fails.
func (a Asset) SortsBefore(other Asset) (bool, error) {
	la, lb := strings.ToLower(a.Address), strings.ToLower(other.Address)
	if la == lb {
		return false, ErrInvalidAssetOrdering
	}
	return la < lb, nil
}
