package domain

import (
	"errors"
	"math/big"
	"testing"
)

func testAsset(addr string) Asset {
	return NewAsset("testnet", addr, 7)
}

func mustPair(t *testing.T, a Asset, ra int64, b Asset, rb int64, feeBps int64) Pair {
	t.Helper()
	return mustPairBig(t, a, big.NewInt(ra), b, big.NewInt(rb), feeBps)
}

func mustPairBig(t *testing.T, a Asset, ra *big.Int, b Asset, rb *big.Int, feeBps int64) Pair {
	t.Helper()
	p, err := NewPair(a, ra, b, rb, feeBps)
	if err != nil {
		t.Fatalf("NewPair: %v", err)
	}
	return p
}

func bigFromString(t *testing.T, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		t.Fatalf("bad integer literal %q", s)
	}
	return v
}

func TestNewPairCanonicalOrder(t *testing.T) {
	a := testAsset("aaa")
	b := testAsset("bbb")

	forward := mustPair(t, a, 100, b, 200, 0)
	reversed := mustPair(t, b, 200, a, 100, 0)

	for _, p := range []Pair{forward, reversed} {
		if !p.Asset0().Equals(a) || !p.Asset1().Equals(b) {
			t.Fatalf("pair not canonical: %s/%s", p.Asset0().Address, p.Asset1().Address)
		}
		if p.Reserve0().Int64() != 100 || p.Reserve1().Int64() != 200 {
			t.Fatalf("reserves did not follow canonical order")
		}
	}
	if forward.FeeBps() != DefaultFeeBps {
		t.Fatalf("fee default: got %d", forward.FeeBps())
	}
}

func TestNewPairSameAsset(t *testing.T) {
	a := testAsset("aaa")
	upper := testAsset("AAA")
	_, err := NewPair(a, big.NewInt(1), upper, big.NewInt(2), 0)
	if !errors.Is(err, ErrInvalidAssetOrdering) {
		t.Fatalf("want ErrInvalidAssetOrdering, got %v", err)
	}
}

func TestOutputAmountConstantProduct(t *testing.T) {
	a := testAsset("aaa")
	b := testAsset("bbb")
	pair := mustPair(t, a, 1_000_000, b, 1_000_000, 0)

	out, updated, err := pair.OutputAmount(NewAssetAmount(a, big.NewInt(1000)), ProtocolSoroswap)
	if err != nil {
		t.Fatalf("OutputAmount: %v", err)
	}
	if got := out.Quotient().Int64(); got != 996 {
		t.Fatalf("output: got %d, want 996", got)
	}
	if !out.Asset.Equals(b) {
		t.Fatalf("output asset: got %s", out.Asset.Address)
	}

	// the receiver is untouched, the returned pair reflects the trade
	if pair.Reserve0().Int64() != 1_000_000 || pair.Reserve1().Int64() != 1_000_000 {
		t.Fatalf("receiver mutated")
	}
	if updated.Reserve0().Int64() != 1_001_000 || updated.Reserve1().Int64() != 999_004 {
		t.Fatalf("updated reserves: %d/%d", updated.Reserve0().Int64(), updated.Reserve1().Int64())
	}
}

func TestOutputAmountConstantProductErrors(t *testing.T) {
	a := testAsset("aaa")
	b := testAsset("bbb")

	empty := mustPair(t, a, 0, b, 1_000_000, 0)
	_, _, err := empty.OutputAmount(NewAssetAmount(a, big.NewInt(1000)), ProtocolSoroswap)
	if !errors.Is(err, ErrInsufficientReserves) {
		t.Fatalf("zero reserve: want ErrInsufficientReserves, got %v", err)
	}

	pool := mustPair(t, a, 1_000_000, b, 1_000_000, 0)
	_, _, err = pool.OutputAmount(NewAssetAmount(a, big.NewInt(1)), ProtocolSoroswap)
	if !errors.Is(err, ErrInsufficientInputAmount) {
		t.Fatalf("dust input: want ErrInsufficientInputAmount, got %v", err)
	}

	_, _, err = pool.OutputAmount(NewAssetAmount(a, big.NewInt(10)), Protocol(99))
	if !errors.Is(err, ErrUnsupportedProtocol) {
		t.Fatalf("want ErrUnsupportedProtocol, got %v", err)
	}
}

func TestOutputAmountPhoenix(t *testing.T) {
	xlm := testAsset("aaaxlm")
	usdc := testAsset("bbbusdc")
	rIn := bigFromString(t, "8291494350066")
	rOut := bigFromString(t, "706515116511")

	tests := []struct {
		in   string
		want string
	}{
		{"1000000000000", "75810794757"},
		{"100000000000", "8394161299"},
	}
	for _, tc := range tests {
		pair := mustPairBig(t, xlm, rIn, usdc, rOut, 30)
		out, updated, err := pair.OutputAmount(NewAssetAmount(xlm, bigFromString(t, tc.in)), ProtocolPhoenix)
		if err != nil {
			t.Fatalf("OutputAmount(%s): %v", tc.in, err)
		}
		if got := out.Quotient().String(); got != tc.want {
			t.Fatalf("OutputAmount(%s): got %s, want %s", tc.in, got, tc.want)
		}

		// the tax is burned: the tracked reserve drops by the pre-tax amount
		in := bigFromString(t, tc.in)
		beforeTax := new(big.Int).Mul(in, rOut)
		beforeTax.Quo(beforeTax, new(big.Int).Add(rIn, in))
		wantReserve := new(big.Int).Sub(rOut, beforeTax)
		if updated.Reserve1().Cmp(wantReserve) != 0 {
			t.Fatalf("updated reserve: got %s, want %s", updated.Reserve1(), wantReserve)
		}
	}
}

func TestOutputAmountAquarius(t *testing.T) {
	xlm := testAsset("aaaxlm")
	usdc := testAsset("bbbusdc")
	pair := mustPairBig(t, xlm,
		bigFromString(t, "10995320835786"), usdc,
		bigFromString(t, "1029760349373"), 30)

	out, _, err := pair.OutputAmount(NewAssetAmount(xlm, bigFromString(t, "1000000000000")), ProtocolAquarius)
	if err != nil {
		t.Fatalf("OutputAmount: %v", err)
	}
	if got := out.Quotient().String(); got != "85589296224" {
		t.Fatalf("got %s, want 85589296224", got)
	}
}

func TestInputAmountRoundTrip(t *testing.T) {
	a := testAsset("aaa")
	b := testAsset("bbb")
	pair := mustPair(t, a, 1_000_000, b, 1_000_000, 0)

	in, _, err := pair.InputAmount(NewAssetAmount(b, big.NewInt(500)), ProtocolSoroswap)
	if err != nil {
		t.Fatalf("InputAmount: %v", err)
	}
	if got := in.Quotient().Int64(); got != 502 {
		t.Fatalf("input: got %d, want 502", got)
	}

	// feeding the computed input back must buy at least the requested output
	out, _, err := pair.OutputAmount(in, ProtocolSoroswap)
	if err != nil {
		t.Fatalf("OutputAmount: %v", err)
	}
	if out.Quotient().Int64() < 500 {
		t.Fatalf("round trip shortfall: %d < 500", out.Quotient().Int64())
	}
}

func TestOutputThenInputNeverFavorsTrader(t *testing.T) {
	// pricing the swap output, then asking the post-trade pair what the same
	// output costs, must come back at or above the original input
	a := testAsset("aaa")
	b := testAsset("bbb")
	pair := mustPair(t, a, 1_000_000, b, 1_000_000, 0)

	out, updated, err := pair.OutputAmount(NewAssetAmount(a, big.NewInt(1000)), ProtocolSoroswap)
	if err != nil {
		t.Fatalf("OutputAmount: %v", err)
	}
	in, _, err := updated.InputAmount(out, ProtocolSoroswap)
	if err != nil {
		t.Fatalf("InputAmount: %v", err)
	}
	if got := in.Quotient().Int64(); got < 1000 {
		t.Fatalf("round trip favored trader: %d < 1000", got)
	}
}

func TestInputAmountExhaustsReserve(t *testing.T) {
	a := testAsset("aaa")
	b := testAsset("bbb")
	pair := mustPair(t, a, 1_000_000, b, 1_000_000, 0)

	for _, out := range []int64{1_000_000, 2_000_000} {
		_, _, err := pair.InputAmount(NewAssetAmount(b, big.NewInt(out)), ProtocolSoroswap)
		if !errors.Is(err, ErrInsufficientReserves) {
			t.Fatalf("out=%d: want ErrInsufficientReserves, got %v", out, err)
		}
	}
}

func TestSpotPriceOf(t *testing.T) {
	a := testAsset("aaa")
	b := testAsset("bbb")
	pair := mustPair(t, a, 1_000_000, b, 2_000_000, 0)

	price, err := pair.SpotPriceOf(a)
	if err != nil {
		t.Fatalf("SpotPriceOf: %v", err)
	}
	if price.Cmp(FractionFromInt(2)) != 0 {
		t.Fatalf("spot price of a: want 2")
	}
	inverse, err := pair.SpotPriceOf(b)
	if err != nil {
		t.Fatalf("SpotPriceOf: %v", err)
	}
	if inverse.Mul(price).Cmp(FractionFromInt(1)) != 0 {
		t.Fatalf("spot prices are not inverses")
	}
}
