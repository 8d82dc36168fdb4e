// Package market supplies liquidity pair snapshots to the routing engine.
// Each protocol gets its own PairSupplier; the router merges the results per
// routing call.
package market

import (
	"context"
	"fmt"
	"math/big"

	"github.com/stellarpath/route-engine/internal/domain"
)

// DefaultAssetDecimals applies when a pair record does not carry decimals.
const DefaultAssetDecimals = 7

// PairRecord is the wire form of one pool snapshot as served by the pair
// backend. Reserves arrive as decimal strings to survive 64-bit overflow.
type PairRecord struct {
	Asset0   string `json:"token0"`
	Asset1   string `json:"token1"`
	Reserve0 string `json:"reserve0"`
	Reserve1 string `json:"reserve1"`
	FeeBps   int64  `json:"feeBps,omitempty"`
}

// PairSupplier yields the current pair set of a single protocol.
type PairSupplier interface {
	Pairs(ctx context.Context) ([]PairRecord, error)
}

// SupplierFunc adapts a plain function to PairSupplier.
type SupplierFunc func(ctx context.Context) ([]PairRecord, error)

func (f SupplierFunc) Pairs(ctx context.Context) ([]PairRecord, error) {
	return f(ctx)
}

// StaticSupplier serves a fixed record set, or a fixed error. Used in tests
// and local setups.
type StaticSupplier struct {
	Records []PairRecord
	Err     error
}

func (s *StaticSupplier) Pairs(context.Context) ([]PairRecord, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Records, nil
}

// MalformedRecordError reports a pair record that could not be turned into a
// domain pair.
type MalformedRecordError struct {
	Index  int
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed pair record %d: %s", e.Index, e.Reason)
}

// BuildPairs converts wire records into canonical domain pairs on the given
// network.
func BuildPairs(network string, records []PairRecord) ([]domain.Pair, error) {
	pairs := make([]domain.Pair, 0, len(records))
	for i, rec := range records {
		r0, ok := new(big.Int).SetString(rec.Reserve0, 10)
		if !ok {
			return nil, &MalformedRecordError{Index: i, Reason: fmt.Sprintf("reserve0 %q is not a base-10 integer", rec.Reserve0)}
		}
		r1, ok := new(big.Int).SetString(rec.Reserve1, 10)
		if !ok {
			return nil, &MalformedRecordError{Index: i, Reason: fmt.Sprintf("reserve1 %q is not a base-10 integer", rec.Reserve1)}
		}
		a0 := domain.NewAsset(network, rec.Asset0, DefaultAssetDecimals)
		a1 := domain.NewAsset(network, rec.Asset1, DefaultAssetDecimals)
		pair, err := domain.NewPair(a0, r0, a1, r1, rec.FeeBps)
		if err != nil {
			return nil, &MalformedRecordError{Index: i, Reason: err.Error()}
		}
		pairs = append(pairs, pair)
	}
	return pairs, nil
}
