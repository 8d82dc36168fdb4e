package router

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/rs/zerolog"
	"github.com/zeebo/assert"

	"github.com/stellarpath/route-engine/internal/domain"
	"github.com/stellarpath/route-engine/internal/services/market"
)

const testNetwork = "testnet"

func asset(addr string) domain.Asset {
	return domain.NewAsset(testNetwork, addr, 7)
}

func record(a, b string, ra, rb int64) market.PairRecord {
	return market.PairRecord{
		Asset0:   a,
		Asset1:   b,
		Reserve0: big.NewInt(ra).String(),
		Reserve1: big.NewInt(rb).String(),
	}
}

func pool(t *testing.T, a, b string, ra, rb int64) domain.Pair {
	t.Helper()
	p, err := domain.NewPair(asset(a), big.NewInt(ra), asset(b), big.NewInt(rb), 0)
	assert.NoError(t, err)
	return p
}

func newTestRouter(cfg Config, suppliers map[domain.Protocol]market.PairSupplier) *Router {
	cfg.Network = testNetwork
	return New(cfg, suppliers, zerolog.Nop())
}

func amountOf(addr string, v int64) domain.AssetAmount {
	return domain.NewAssetAmount(asset(addr), big.NewInt(v))
}

func TestRoutePrefersDirectHop(t *testing.T) {
	supplier := &market.StaticSupplier{Records: []market.PairRecord{
		record("axlm", "busdc", 1_000_000, 1_000_000),
		record("busdc", "cdog", 1_000_000, 1_000_000),
		record("axlm", "cdog", 1_000_000, 1_000_000),
	}}
	r := newTestRouter(
		Config{Protocols: []domain.Protocol{domain.ProtocolSoroswap}},
		map[domain.Protocol]market.PairSupplier{domain.ProtocolSoroswap: supplier},
	)

	trade, err := r.Route(context.Background(), amountOf("axlm", 1000), asset("cdog"), domain.ExactInput)
	assert.NoError(t, err)
	assert.NotNil(t, trade)

	// the direct pool loses only one fee, so it must win over the two-hop path
	assert.Equal(t, int64(996), trade.AmountOut.Quotient().Int64())
	assert.DeepEqual(t, []string{"axlm", "cdog"}, trade.Path())
	assert.Equal(t, domain.ProtocolSoroswap, trade.Protocol)
	assert.Equal(t, 0, trade.ExecutionPrice().Cmp(domain.NewFraction(big.NewInt(996), big.NewInt(1000))))
}

func TestRouteExactOutputPicksCheapestInput(t *testing.T) {
	supplier := &market.StaticSupplier{Records: []market.PairRecord{
		record("axlm", "busdc", 1_000_000, 1_000_000),
		record("busdc", "cdog", 1_000_000, 1_000_000),
		record("axlm", "cdog", 1_000_000, 1_000_000),
	}}
	r := newTestRouter(
		Config{Protocols: []domain.Protocol{domain.ProtocolSoroswap}},
		map[domain.Protocol]market.PairSupplier{domain.ProtocolSoroswap: supplier},
	)

	trade, err := r.Route(context.Background(), amountOf("cdog", 500), asset("axlm"), domain.ExactOutput)
	assert.NoError(t, err)
	assert.NotNil(t, trade)
	assert.Equal(t, int64(502), trade.AmountIn.Quotient().Int64())
	assert.Equal(t, int64(500), trade.AmountOut.Quotient().Int64())
	assert.DeepEqual(t, []string{"axlm", "cdog"}, trade.Path())
}

func TestRouteNoLiquidityIsNotAnError(t *testing.T) {
	supplier := &market.StaticSupplier{}
	r := newTestRouter(
		Config{Protocols: []domain.Protocol{domain.ProtocolSoroswap}},
		map[domain.Protocol]market.PairSupplier{domain.ProtocolSoroswap: supplier},
	)

	trade, err := r.Route(context.Background(), amountOf("axlm", 1000), asset("cdog"), domain.ExactInput)
	assert.NoError(t, err)
	assert.Nil(t, trade)
}

func TestRouteAllSuppliersFailedIsNoRoute(t *testing.T) {
	// a dead backend is a no-route condition for the caller, never an error
	supplier := &market.StaticSupplier{Err: errors.New("backend down")}
	r := newTestRouter(
		Config{Protocols: []domain.Protocol{domain.ProtocolSoroswap}},
		map[domain.Protocol]market.PairSupplier{domain.ProtocolSoroswap: supplier},
	)

	trade, err := r.Route(context.Background(), amountOf("axlm", 1000), asset("cdog"), domain.ExactInput)
	assert.NoError(t, err)
	assert.Nil(t, trade)
}

func TestRouteSurvivesPartialSupplierFailure(t *testing.T) {
	healthy := &market.StaticSupplier{Records: []market.PairRecord{
		record("axlm", "cdog", 1_000_000, 1_000_000),
	}}
	broken := &market.StaticSupplier{Err: errors.New("backend down")}
	r := newTestRouter(
		Config{Protocols: []domain.Protocol{domain.ProtocolSoroswap, domain.ProtocolPhoenix}},
		map[domain.Protocol]market.PairSupplier{
			domain.ProtocolSoroswap: healthy,
			domain.ProtocolPhoenix:  broken,
		},
	)

	trade, err := r.Route(context.Background(), amountOf("axlm", 1000), asset("cdog"), domain.ExactInput)
	assert.NoError(t, err)
	assert.NotNil(t, trade)
}

func TestRouteComparesProtocols(t *testing.T) {
	supplier := &market.StaticSupplier{Records: []market.PairRecord{
		record("axlm", "cdog", 1_000_000, 1_000_000),
	}}
	suppliers := map[domain.Protocol]market.PairSupplier{
		domain.ProtocolSoroswap: supplier,
		domain.ProtocolAquarius: supplier,
	}
	r := newTestRouter(
		Config{Protocols: []domain.Protocol{domain.ProtocolSoroswap, domain.ProtocolAquarius}},
		suppliers,
	)

	trade, err := r.Route(context.Background(), amountOf("axlm", 1000), asset("cdog"), domain.ExactInput)
	assert.NoError(t, err)
	assert.NotNil(t, trade)

	// aquarius keeps 997 of the 999 gross output, beating soroswap's 996
	assert.Equal(t, domain.ProtocolAquarius, trade.Protocol)
	assert.Equal(t, int64(997), trade.AmountOut.Quotient().Int64())
}

func TestQuoteRoutesTallyAndFatal(t *testing.T) {
	dust := pool(t, "axlm", "cdog", 1_000_000, 1_000_000)
	route, err := domain.NewRoute(asset("axlm"), asset("cdog"), []domain.Pair{dust})
	assert.NoError(t, err)

	quoted, tally, err := QuoteRoutesExactIn(
		[]domain.AssetAmount{amountOf("axlm", 1), amountOf("axlm", 1000)},
		[]domain.Route{route}, domain.ProtocolSoroswap, Hooks{})
	assert.NoError(t, err)
	assert.Equal(t, 1, tally.InsufficientInput)
	assert.Equal(t, 1, tally.Total())
	assert.Nil(t, quoted[0].Quotes[0])
	assert.NotNil(t, quoted[0].Quotes[1])

	_, _, err = QuoteRoutesExactIn(
		[]domain.AssetAmount{amountOf("axlm", 1000)},
		[]domain.Route{route}, domain.Protocol(99), Hooks{})
	assert.True(t, errors.Is(err, domain.ErrUnsupportedProtocol))
}
