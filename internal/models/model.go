package models

import "time"

// Auction represents a sellable item whose price evolves through bids
// over a bounded time window. The document is owned by the record store;
// all mutation goes through its atomic primitives.
type Auction struct {
	AuctionID     string        `json:"auction_id" dynamodbav:"auction_id"`
	Category      string        `json:"category" dynamodbav:"category"`
	Location      string        `json:"location" dynamodbav:"location"`
	StartTime     time.Time     `json:"start_time" dynamodbav:"start_time"`
	EndTime       time.Time     `json:"end_time" dynamodbav:"end_time"`
	StartingPrice float64       `json:"starting_price" dynamodbav:"starting_price"`
	CurrentPrice  float64       `json:"current_price" dynamodbav:"current_price"`
	BidHistory    []Bid         `json:"bid_history" dynamodbav:"bid_history"`
	ImageHistory  []ImageRecord `json:"image_history" dynamodbav:"image_history"`
}

// Bid is an accepted offer that became the auction's current price.
// BidID and CreatedAt are assigned at acceptance time, never by the bidder.
type Bid struct {
	BidID     string    `json:"bid_id" dynamodbav:"bid_id"`
	AuctionID string    `json:"auction_id" dynamodbav:"auction_id"`
	Bidder    string    `json:"bidder" dynamodbav:"bidder"`
	Amount    float64   `json:"amount" dynamodbav:"amount"`
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
}

// ImageRecord is the metadata of one image attached to an auction.
// Location is an opaque reference into blob storage; image bytes never
// pass through this service.
type ImageRecord struct {
	ImageID     string    `json:"image_id" dynamodbav:"image_id"`
	Location    string    `json:"location" dynamodbav:"location"`
	Description string    `json:"description,omitempty" dynamodbav:"description"`
	AddedBy     string    `json:"added_by,omitempty" dynamodbav:"added_by"`
	CreatedAt   time.Time `json:"created_at" dynamodbav:"created_at"`
}

// FilterCriteria is a set of optional predicates over the auction
// collection. Zero-value fields impose no constraint.
type FilterCriteria struct {
	Category string     `json:"category,omitempty"`
	Location string     `json:"location,omitempty"`
	MinPrice *float64   `json:"min_price,omitempty"`
	MaxPrice *float64   `json:"max_price,omitempty"`
	DateFrom *time.Time `json:"date_from,omitempty"`
	DateTo   *time.Time `json:"date_to,omitempty"`
}
