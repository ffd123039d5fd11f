package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vantran/live-auction-BE/api"
	"github.com/vantran/live-auction-BE/internal/auction"
	"github.com/vantran/live-auction-BE/internal/clock"
	"github.com/vantran/live-auction-BE/internal/event"
	"github.com/vantran/live-auction-BE/internal/timesync"
	"github.com/vantran/live-auction-BE/internal/util"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	config, err := util.LoadConfig("./app.env")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	log.Info().Msg("configurations loaded successfully")

	hub := event.NewHub()
	go hub.Run()

	clk := clock.NewRealClock()

	store := auction.NewStore()
	seedCatalog(store)

	serializer := auction.NewSerializer(store, clk)
	controller := auction.NewController(store, clk, serializer, config.DefaultAuctionMinutes())

	broadcaster, err := timesync.NewBroadcaster(hub, clk, config.ServerTimeInterval)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create server time broadcaster")
	}
	if err = broadcaster.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start server time broadcaster")
	}
	defer broadcaster.Stop()

	var authorizer api.Authorizer
	if config.AdminToken != "" {
		authorizer = api.NewStaticTokenAuthorizer(config.AdminToken)
	} else {
		log.Warn().Msg("ADMIN_TOKEN is not set, admin endpoints are unprotected")
		authorizer = api.AllowAllAuthorizer{}
	}

	server := api.NewServer(store, serializer, controller, hub, authorizer, &config, clk)

	log.Info().Str("address", config.HTTPServerAddress).Msg("starting HTTP server")
	if err = server.Start(config.HTTPServerAddress); err != nil {
		log.Fatal().Err(err).Msg("failed to start HTTP server")
	}
}

// seedCatalog loads the demo items a fresh process starts with. They are
// Not-Started until an admin issues a start command.
func seedCatalog(store *auction.Store) {
	seeds := []struct {
		id    string
		title string
		price int64
	}{
		{"1", "Vintage Watch", 50},
		{"2", "Rare Painting", 100},
		{"3", "Antique Vase", 75},
	}

	for _, seed := range seeds {
		if err := store.AddSeedItem(seed.id, seed.title, seed.price, 1); err != nil {
			log.Fatal().Err(err).Str("item_id", seed.id).Msg("failed to seed catalog")
		}
	}
}
