package helpers

import (
	"time"

	model "auction-house/internal/models"
)

// Request/Response DTOs
type CreateAuctionRequest struct {
	Category      string    `json:"category" binding:"required"`
	Location      string    `json:"location" binding:"required"`
	StartTime     time.Time `json:"start_time" binding:"required"`
	EndTime       time.Time `json:"end_time" binding:"required"`
	StartingPrice float64   `json:"starting_price" binding:"required,gt=0"`
}

// CreateAuctionResponse carries the stored auction plus a warning when the
// record was persisted but the created event could not be delivered.
type CreateAuctionResponse struct {
	Auction        model.Auction `json:"auction"`
	PublishWarning string        `json:"publish_warning,omitempty"`
}

type PlaceBidRequest struct {
	Bidder string  `json:"bidder" binding:"required"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

type BidResponse struct {
	BidID     string  `json:"bid_id"`
	AuctionID string  `json:"auction_id"`
	Bidder    string  `json:"bidder"`
	Amount    float64 `json:"amount"`
	CreatedAt string  `json:"created_at"`
}

type AttachImageRequest struct {
	Location    string `json:"location" binding:"required"`
	Description string `json:"description"`
	AddedBy     string `json:"added_by"`
}
