package main

import (
	"context"
	"fmt"
	"os"

	auction "auction-house/internal/auctionService"
	bidding "auction-house/internal/biddingService"
	"auction-house/internal/config"
	"auction-house/internal/events"
	images "auction-house/internal/imageService"
	"auction-house/internal/repository"
	"auction-house/internal/server"
	"auction-house/utils"
)

func main() {
	cfg := config.Load()

	store, err := buildStore(cfg)
	if err != nil {
		utils.Fatal("failed to initialize auction store", map[string]any{
			"backend": cfg.StoreBackend,
			"error":   err.Error(),
		})
	}

	publisher := events.NewRabbitPublisher(cfg.AmqpURL, cfg.PublishTimeout)

	auctionService := auction.NewAuctionService(store, publisher)
	bidService := bidding.NewBidService(store)
	ledger := images.NewLedger(store)

	router := server.SetupRouter(auctionService, bidService, ledger, cfg.APIToken)

	addr := ":" + cfg.Port
	fmt.Printf("Starting auction server on %s (store=%s)...\n", addr, cfg.StoreBackend)
	if err := router.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

// buildStore selects the record store backend from configuration
func buildStore(cfg config.Config) (repository.AuctionStore, error) {
	switch cfg.StoreBackend {
	case "dynamodb":
		return repository.NewDynamoStore(context.Background(), repository.DynamoConfig{
			Region:   cfg.DynamoRegion,
			Table:    cfg.DynamoTable,
			Endpoint: cfg.DynamoEndpoint,
		})
	default:
		return repository.NewMemoryStore(), nil
	}
}
