package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	container "github.com/thehyperflames/dicontainer-go"

	"github.com/stellarpath/route-engine/internal/common"
	"github.com/stellarpath/route-engine/internal/config"
	"github.com/stellarpath/route-engine/internal/http"
	"github.com/stellarpath/route-engine/internal/services/market"
	"github.com/stellarpath/route-engine/internal/services/router"
)

// @title StellarPath Route Engine API
// @version 1.0
// @description Multi-protocol AMM trade routing and quoting engine. Finds the
// @description best single route or the optimal split across Soroswap, Phoenix
// @description and Aquarius liquidity for exact-input and exact-output trades.
// @BasePath /
// @schemes http
// @tag.name quote
// @tag.description Best-route and split-route quotes with price impact analysis
// @tag.name pairs
// @tag.description Inspect and refresh the pair snapshots the router trades over

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("no .env file loaded")
	}

	general := &config.GeneralConfig{}
	conf := container.NewConf(
		general,
		&config.RouterConfig{},
	)

	dic, err := container.New(
		conf,

		&market.MarketService{},
		&router.RouterService{},
		&http.HTTPService{},
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to create di container")
		return
	}

	common.SetupLogging(general.LogLevel, general.Env)

	if err := dic.Run(); err != nil {
		log.Error().Err(err).Msg("failed to run di container")
		return
	}

	log.Info().Msg("shutting down services")
	if err := dic.Stop(); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
	log.Info().Msg("shutdown complete")
}
