package repository

import (
	"fmt"
	"sync"

	"auction-house/internal/auctionerrors"
	model "auction-house/internal/models"
	"auction-house/utils"
)

// AuctionStore defines the auction document storage interface. It is the
// single serialization point for all mutation: no caller may read-modify-write
// an auction through any other path.
type AuctionStore interface {
	CreateAuction(auction model.Auction) (model.Auction, error)
	GetAuction(auctionID string) (model.Auction, error)
	ListAuctions() ([]model.Auction, error)
	CommitBid(auctionID string, expectedPrice float64, bid model.Bid) error
	AppendImage(auctionID string, record model.ImageRecord) error
}

// MemoryStore is a concurrency-safe in-memory implementation of AuctionStore
type MemoryStore struct {
	mu       sync.RWMutex
	auctions map[string]*model.Auction // key: auctionID -> value: auction document
}

// NewMemoryStore creates a new in-memory store instance
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		auctions: make(map[string]*model.Auction),
	}
}

// CreateAuction assigns a fresh identifier, initializes empty bid and image
// histories, sets the current price to the starting price and persists the
// document.
func (s *MemoryStore) CreateAuction(auction model.Auction) (model.Auction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	auction.AuctionID = utils.GenerateID()
	auction.CurrentPrice = auction.StartingPrice
	auction.BidHistory = []model.Bid{}
	auction.ImageHistory = []model.ImageRecord{}

	// Fresh ids should never collide; defensive check only.
	if _, ok := s.auctions[auction.AuctionID]; ok {
		return model.Auction{}, fmt.Errorf("create auction %s: %w", auction.AuctionID, auctionerrors.ErrAuctionExists)
	}

	stored := cloneAuction(auction)
	s.auctions[auction.AuctionID] = &stored

	return cloneAuction(stored), nil
}

// GetAuction returns the auction with the given id
func (s *MemoryStore) GetAuction(auctionID string) (model.Auction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.auctions[auctionID]
	if !ok {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	return cloneAuction(*a), nil
}

// ListAuctions returns all auctions in no guaranteed order
func (s *MemoryStore) ListAuctions() ([]model.Auction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	auctions := make([]model.Auction, 0, len(s.auctions))
	for _, a := range s.auctions {
		auctions = append(auctions, cloneAuction(*a))
	}
	return auctions, nil
}

// CommitBid sets the current price to the bid amount and appends the bid to
// the bid history as one atomic step. The write succeeds only if the stored
// price still equals expectedPrice, so two concurrent bids validated against
// the same price cannot both commit.
func (s *MemoryStore) CommitBid(auctionID string, expectedPrice float64, bid model.Bid) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.auctions[auctionID]
	if !ok {
		return fmt.Errorf("commit bid for auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	if a.CurrentPrice != expectedPrice {
		return fmt.Errorf("commit bid for auction %s: expected price %.2f, stored %.2f: %w",
			auctionID, expectedPrice, a.CurrentPrice, auctionerrors.ErrStalePrice)
	}

	a.CurrentPrice = bid.Amount
	a.BidHistory = append(a.BidHistory, bid)
	return nil
}

// AppendImage appends an image record to the auction's image history.
// Independent of the price path; prior entries are never replaced.
func (s *MemoryStore) AppendImage(auctionID string, record model.ImageRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.auctions[auctionID]
	if !ok {
		return fmt.Errorf("append image for auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}

	a.ImageHistory = append(a.ImageHistory, record)
	return nil
}

// cloneAuction returns a copy whose history slices do not alias the stored
// document, so transient reads stay isolated from later mutation.
func cloneAuction(a model.Auction) model.Auction {
	c := a
	c.BidHistory = make([]model.Bid, len(a.BidHistory))
	copy(c.BidHistory, a.BidHistory)
	c.ImageHistory = make([]model.ImageRecord, len(a.ImageHistory))
	copy(c.ImageHistory, a.ImageHistory)
	return c
}
