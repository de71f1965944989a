package server

import (
	auction "auction-house/internal/auctionService"
	bidding "auction-house/internal/biddingService"
	images "auction-house/internal/imageService"
	handler "auction-house/services/auction/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(auctionService *auction.AuctionService, bidService *bidding.BidService, ledger *images.Ledger, apiToken string) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	auctionHandler := handler.NewAuctionHandler(auctionService)
	bidHandler := handler.NewBiddingHandler(bidService)
	imageHandler := handler.NewImageHandler(ledger)

	gate := AuthGateMiddleware(apiToken)

	auctions := router.Group("/auctions")
	{
		auctions.POST("", gate, auctionHandler.CreateAuctionHandler)
		auctions.GET("", auctionHandler.ListAuctionsHandler)
		auctions.POST("/filter", auctionHandler.FilterAuctionsHandler)
		auctions.GET("/:auction_id", auctionHandler.GetAuctionHandler)
		auctions.POST("/:auction_id/bids", gate, bidHandler.PlaceBidHandler)
		auctions.GET("/:auction_id/bids", bidHandler.GetBidHistoryHandler)
		auctions.POST("/:auction_id/images", gate, imageHandler.AttachImageHandler)
		auctions.GET("/:auction_id/images", imageHandler.ListImagesHandler)
	}

	return router
}
